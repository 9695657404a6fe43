package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectView returns one project record with its stored tree.
// Route: GET /projects/{id}
func HandleProjectView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("id")
		if projectID == "" {
			return errorJSON(e, http.StatusBadRequest, "Missing project ID")
		}

		record, err := app.FindRecordById("projects", projectID)
		if err != nil {
			log.Printf("project_view: could not find project %s: %v", projectID, err)
			return errorJSON(e, http.StatusNotFound, "Project not found")
		}

		payload := projectSummary(record)
		project, err := loadProjectTree(record)
		if err != nil {
			// A record saved without a tree is still viewable.
			log.Printf("project_view: project %s: %v", projectID, err)
		} else {
			payload["data"] = project
		}

		return e.JSON(http.StatusOK, payload)
	}
}
