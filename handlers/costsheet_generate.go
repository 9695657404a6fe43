package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/services"
)

// HandleProjectCostSheet generates and downloads the cost-sheet workbook for
// a stored project.
// Route: GET /projects/{id}/costsheet
func HandleProjectCostSheet(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return errorJSON(e, http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("costsheet_generate: could not find project %s: %v", projectID, err)
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		project, err := loadProjectTree(record)
		if err != nil {
			log.Printf("costsheet_generate: project %s: %v", projectID, err)
			return errorJSON(e, http.StatusInternalServerError, "Stored project data is not readable")
		}

		return writeCostSheetResponse(e, project)
	}
}

// HandleCostSheetGenerate builds a workbook straight from a posted project
// tree without touching the database.
// Route: POST /costsheets/generate
func HandleCostSheetGenerate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var project services.Project
		if err := json.NewDecoder(e.Request.Body).Decode(&project); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid project JSON")
		}
		if project.ProjectNumber == "" {
			return errorJSON(e, http.StatusBadRequest, "Project number is required")
		}
		return writeCostSheetResponse(e, &project)
	}
}

func writeCostSheetResponse(e *core.RequestEvent, project *services.Project) error {
	xlsxBytes, err := services.WriteCostSheet(project, templateSource())
	if err != nil {
		log.Printf("costsheet_generate: failed to generate: %v", err)
		return errorJSON(e, http.StatusInternalServerError, "Failed to generate cost sheet")
	}

	filename := services.CostSheetFilename(project.ProjectNumber, project.Date)

	e.Response.Header().Set("Content-Type", contentTypeXLSX)
	e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	e.Response.Write(xlsxBytes)
	return nil
}

// templateSource picks where master workbooks come from: a directory of
// template revisions when HALTON_TEMPLATE_DIR is set, the built-in scaffold
// otherwise.
func templateSource() services.TemplateSource {
	if dir := os.Getenv("HALTON_TEMPLATE_DIR"); dir != "" {
		return services.DirTemplateSource{Dir: dir}
	}
	return services.BuiltinTemplate{}
}
