package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"costsheetgen/testhelpers"
)

func TestHandleProjectDelete_RemovesRecord(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	record := saveProjectTree(t, app, sampleProjectTree())

	handler := HandleProjectDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/projects/"+record.Id, nil)
	req.SetPathValue("id", record.Id)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}

	if _, err := app.FindRecordById("projects", record.Id); err == nil {
		t.Error("expected record to be gone after delete")
	}
}

func TestHandleProjectDelete_NotFound(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleProjectDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/projects/nonexistent", nil)
	req.SetPathValue("id", "nonexistent")
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestHandleProjectDelete_MissingID(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	handler := HandleProjectDelete(app)

	req := httptest.NewRequest(http.MethodDelete, "/projects/", nil)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
