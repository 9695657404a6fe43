package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/services"
)

// HandleCostSheetRevision bumps the revision letter of an uploaded workbook
// and downloads the revised copy. The "update_date" form field refreshes the
// date cells to today as well.
// Route: POST /costsheets/revision
func HandleCostSheetRevision(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, err := uploadedWorkbook(e)
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, "Please attach a cost sheet workbook")
		}
		defer file.Close()

		updateDate := e.Request.FormValue("update_date") == "true" ||
			e.Request.FormValue("update_date") == "1"

		result, err := services.ReviseCostSheet(file, updateDate)
		if err != nil {
			log.Printf("costsheet_revision: %v", err)
			return errorJSON(e, http.StatusBadRequest, "Workbook could not be revised")
		}

		e.Response.Header().Set("Content-Type", contentTypeXLSX)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
		e.Response.Header().Set("X-Revision", result.NewRevision)
		e.Response.Write(result.Bytes)
		return nil
	}
}
