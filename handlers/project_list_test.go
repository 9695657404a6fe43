package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"costsheetgen/testhelpers"
)

func TestHandleProjectList_Empty(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleProjectList(app)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	payload := decodeJSONMap(t, rec)
	if got := payload["total_count"]; got != float64(0) {
		t.Errorf("total_count = %v, want 0", got)
	}
	if projects, ok := payload["projects"].([]any); !ok || len(projects) != 0 {
		t.Errorf("projects = %v, want empty list", payload["projects"])
	}
}

func TestHandleProjectList_NewestFirst(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	testhelpers.CreateTestProject(t, app, "P1000", "Alpha Site")
	testhelpers.CreateTestProject(t, app, "P2000", "Beta Site")

	handler := HandleProjectList(app)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	payload := decodeJSONMap(t, rec)
	if got := payload["total_count"]; got != float64(2) {
		t.Fatalf("total_count = %v, want 2", got)
	}

	projects, ok := payload["projects"].([]any)
	if !ok || len(projects) != 2 {
		t.Fatalf("projects = %v, want 2 entries", payload["projects"])
	}

	first, ok := projects[0].(map[string]any)
	if !ok {
		t.Fatalf("projects[0] is not an object: %v", projects[0])
	}
	if first["project_number"] != "P2000" {
		t.Errorf("first listed project = %v, want the newest (P2000)", first["project_number"])
	}
}

func TestHandleProjectList_SummaryFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	saveProjectTree(t, app, sampleProjectTree())

	handler := HandleProjectList(app)

	req := httptest.NewRequest(http.MethodGet, "/projects", nil)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	payload := decodeJSONMap(t, rec)
	projects := payload["projects"].([]any)
	if len(projects) != 1 {
		t.Fatalf("expected 1 project, got %d", len(projects))
	}
	entry := projects[0].(map[string]any)

	tests := []struct {
		field string
		want  string
	}{
		{"project_number", "P7210"},
		{"name", "Harbour View Restaurant"},
		{"customer", "Coastline Catering Ltd"},
		{"location", "York"},
		{"delivery_location", "Leeds"},
		{"estimator", "Rachel Govan"},
		{"project_type", "Canopy Project"},
		{"quote_date", "14/07/2025"},
	}
	for _, tt := range tests {
		if got := entry[tt.field]; got != tt.want {
			t.Errorf("%s = %v, want %q", tt.field, got, tt.want)
		}
	}

	// The list view never includes the full tree.
	if _, present := entry["data"]; present {
		t.Error("list entries must not carry the stored tree")
	}
}
