package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/services"
)

// HandleProjectSave replaces a stored project's tree and metadata.
// Route: POST /projects/{id}/save
func HandleProjectSave(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return errorJSON(e, http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_save: could not find project %s: %v", projectID, err)
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		var project services.Project
		if err := json.NewDecoder(e.Request.Body).Decode(&project); err != nil {
			return errorJSON(e, http.StatusBadRequest, "Invalid project JSON")
		}
		if project.ProjectNumber == "" {
			return errorJSON(e, http.StatusBadRequest, "Project number is required")
		}

		if err := applyProjectTree(record, &project); err != nil {
			log.Printf("project_save: %v", err)
			return errorJSON(e, http.StatusBadRequest, "Project data could not be stored")
		}
		if err := app.Save(record); err != nil {
			log.Printf("project_save: could not save project %s: %v", projectID, err)
			return errorJSON(e, http.StatusInternalServerError, "Failed to save project")
		}

		return e.JSON(http.StatusOK, projectSummary(record))
	}
}
