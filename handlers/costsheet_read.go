package handlers

import (
	"fmt"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/services"
)

// uploadedWorkbook pulls the "file" part out of a multipart upload. The
// caller closes the returned file.
func uploadedWorkbook(e *core.RequestEvent) (multipart.File, error) {
	if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
		return nil, fmt.Errorf("parse multipart form: %w", err)
	}
	file, _, err := e.Request.FormFile("file")
	if err != nil {
		return nil, fmt.Errorf("missing file field: %w", err)
	}
	return file, nil
}

// HandleCostSheetRead parses an uploaded workbook back into the project
// tree and returns it with the pricing reconciliation and any read issues.
// Route: POST /costsheets/read
func HandleCostSheetRead(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, err := uploadedWorkbook(e)
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, "Please attach a cost sheet workbook")
		}
		defer file.Close()

		result, err := services.ReadCostSheet(file)
		if err != nil {
			log.Printf("costsheet_read: %v", err)
			return errorJSON(e, http.StatusBadRequest, "Workbook could not be read as a cost sheet")
		}

		return e.JSON(http.StatusOK, result)
	}
}
