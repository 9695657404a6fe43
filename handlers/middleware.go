package handlers

import (
	"log"
	"time"

	"github.com/pocketbase/pocketbase/core"
)

// Download content types the handlers serve.
const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// RequestLog is bound globally via se.Router.BindFunc so every API call
// leaves a line in the server log with its duration.
func RequestLog(e *core.RequestEvent) error {
	start := time.Now()
	err := e.Next()
	if err != nil {
		log.Printf("%s %s: %v (%s)", e.Request.Method, e.Request.URL.Path, err,
			time.Since(start).Round(time.Millisecond))
		return err
	}
	log.Printf("%s %s (%s)", e.Request.Method, e.Request.URL.Path,
		time.Since(start).Round(time.Millisecond))
	return nil
}

// errorJSON sends the uniform error payload handlers return on failure.
func errorJSON(e *core.RequestEvent, status int, msg string) error {
	return e.JSON(status, map[string]string{"error": msg})
}
