package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/services"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
func newTestRequestEvent(app *pocketbase.PocketBase, req *http.Request, rec *httptest.ResponseRecorder) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	return e
}

// sampleProjectTree builds a one-area canopy project with round numbers:
// a 2000 canopy plus 600 delivery and 200 commissioning, so the job total
// lands on 2800. Names are short enough for every tab name to fit Excel's
// sheet name limit.
func sampleProjectTree() *services.Project {
	return &services.Project{
		ProjectNumber:    "P7210",
		ProjectName:      "Harbour View Restaurant",
		ProjectType:      services.ProjectTypeCanopy,
		Customer:         "Coastline Catering Ltd",
		Company:          "Airedale Catering Equipment",
		Address:          "12 Quayside, York, YO1 9TA",
		SalesContact:     "Dan Fisher / 07801 223344",
		Estimator:        "Rachel Govan",
		EstimatorRank:    "Lead Estimator",
		DeliveryLocation: "Leeds",
		Location:         "York",
		Date:             "14/07/2025",
		Levels: []services.Level{
			{
				Name:  "Ground",
				Index: 1,
				Areas: []services.Area{
					{
						Name: "Kitchen",
						Canopies: []services.Canopy{
							{
								Reference:     "C1",
								Configuration: "Wall",
								Model:         "KVF",
								Width:         1500,
								Length:        2400,
								Height:        555,
								Sections:      1,
								ExtractVolume: "1.0",
								MUAVolume:     "0.8",
								SupplyStatic:  "40",
								ExtractStatic: "50",
								Lighting:      "LED STRIP L12 inc DALI",
								CanopyPrice:   2000,
							},
						},
						DeliveryInstallationPrice: 600,
						CommissioningPrice:        200,
					},
				},
			},
		},
	}
}

// saveProjectTree persists a project tree the way the create handler does and
// returns the stored record.
func saveProjectTree(t *testing.T, app *pocketbase.PocketBase, p *services.Project) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	if err := applyProjectTree(record, p); err != nil {
		t.Fatalf("applyProjectTree() error: %v", err)
	}
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save project record: %v", err)
	}
	return record
}

// generateWorkbook renders the sample tree to cost-sheet bytes for upload
// tests.
func generateWorkbook(t *testing.T) []byte {
	t.Helper()
	b, err := services.WriteCostSheet(sampleProjectTree(), services.BuiltinTemplate{})
	if err != nil {
		t.Fatalf("WriteCostSheet() error: %v", err)
	}
	return b
}

// jsonRequest builds a request whose body is the JSON encoding of v.
func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()
	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// multipartRequest builds a POST with the given bytes attached as the "file"
// part, plus any extra form fields.
func multipartRequest(t *testing.T, target string, fileBytes []byte, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "upload.xlsx")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(fileBytes); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write form field %q: %v", k, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// decodeJSONMap decodes a JSON response body into a generic map.
func decodeJSONMap(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return m
}
