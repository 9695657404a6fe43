package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"costsheetgen/testhelpers"
)

func TestHandleQuotationContext(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuotationContext(app)

	req := multipartRequest(t, "/quotations/context", generateWorkbook(t), nil)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	payload := decodeJSONMap(t, rec)

	templates, ok := payload["templates"].([]any)
	if !ok || len(templates) != 1 || templates[0] != "canopy" {
		t.Errorf("templates = %v, want [canopy]", payload["templates"])
	}

	ctx, ok := payload["context"].(map[string]any)
	if !ok {
		t.Fatalf("payload has no context object: %v", payload)
	}
	if ctx["project_number"] != "P7210" {
		t.Errorf("context project_number = %v, want %q", ctx["project_number"], "P7210")
	}
	if ctx["dear_line"] != "Dan Fisher," {
		t.Errorf("context dear_line = %v, want %q", ctx["dear_line"], "Dan Fisher,")
	}
	scope, ok := ctx["scope_of_works"].([]any)
	if !ok || len(scope) != 1 || scope[0] != "1no extract canopy" {
		t.Errorf("scope_of_works = %v, want [1no extract canopy]", ctx["scope_of_works"])
	}

	analysis, ok := payload["analysis"].(map[string]any)
	if !ok {
		t.Fatalf("payload has no analysis object: %v", payload)
	}
	if analysis["canopy_count"] != float64(1) {
		t.Errorf("canopy_count = %v, want 1", analysis["canopy_count"])
	}
	if analysis["is_recoair_only"] != false {
		t.Errorf("is_recoair_only = %v, want false", analysis["is_recoair_only"])
	}
}

func TestHandleQuotationContext_MissingFile(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuotationContext(app)

	req := httptest.NewRequest(http.MethodPost, "/quotations/context", nil)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestHandleQuotationSummary(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuotationSummary(app)

	req := multipartRequest(t, "/quotations/summary", generateWorkbook(t), nil)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != contentTypePDF {
		t.Errorf("Content-Type = %q, want %q", got, contentTypePDF)
	}
	wantDisposition := `attachment; filename="P7210 Quotation Summary 14072025.pdf"`
	if got := rec.Header().Get("Content-Disposition"); got != wantDisposition {
		t.Errorf("Content-Disposition = %q, want %q", got, wantDisposition)
	}
	if !strings.HasPrefix(rec.Body.String(), "%PDF-") {
		t.Error("response body does not look like a PDF")
	}
}

func TestHandleQuotationSummary_NotAWorkbook(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	handler := HandleQuotationSummary(app)

	req := multipartRequest(t, "/quotations/summary", []byte("garbage"), nil)
	rec := httptest.NewRecorder()

	e := newTestRequestEvent(app, req, rec)

	if err := handler(e); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
