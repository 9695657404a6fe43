package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/services"
)

// HandleProjectCreate stores a posted project tree as a new record.
// Route: POST /projects
func HandleProjectCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		var project services.Project
		if err := json.NewDecoder(e.Request.Body).Decode(&project); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid project JSON")
		}
		if project.ProjectNumber == "" {
			return errorJSON(e, http.StatusBadRequest, "Project number is required")
		}
		if project.ProjectName == "" {
			return errorJSON(e, http.StatusBadRequest, "Project name is required")
		}

		existing, _ := app.FindRecordsByFilter(
			"projects",
			"project_number = {:number}",
			"", 1, 0,
			map[string]any{"number": project.ProjectNumber},
		)
		if len(existing) > 0 {
			return errorJSON(e, http.StatusConflict, "A project with this number already exists")
		}

		projectsCol, err := app.FindCollectionByNameOrId("projects")
		if err != nil {
			log.Printf("project_create: could not find projects collection: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Something went wrong. Please try again.")
		}

		record := core.NewRecord(projectsCol)
		if err := applyProjectTree(record, &project); err != nil {
			log.Printf("project_create: %v", err)
			return errorJSON(e, http.StatusBadRequest, "Project data could not be stored")
		}
		if err := app.Save(record); err != nil {
			log.Printf("project_create: could not save project: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Failed to save project")
		}

		return e.JSON(http.StatusOK, projectSummary(record))
	}
}
