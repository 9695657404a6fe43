package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/services"
)

// applyProjectTree copies the tree's metadata onto the record's queryable
// columns and stores the whole tree in the data field. The tree is
// normalized first so what lands in the database is the canonical form.
func applyProjectTree(rec *core.Record, p *services.Project) error {
	services.NormalizeProject(p)

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal project tree: %w", err)
	}

	rec.Set("project_number", p.ProjectNumber)
	rec.Set("name", p.ProjectName)
	rec.Set("customer", p.Customer)
	rec.Set("company", p.Company)
	rec.Set("address", p.Address)
	rec.Set("location", p.Location)
	rec.Set("delivery_location", p.DeliveryLocation)
	rec.Set("sales_contact", p.SalesContact)
	rec.Set("estimator", p.Estimator)
	rec.Set("estimator_rank", p.EstimatorRank)
	rec.Set("project_type", p.ProjectType)
	rec.Set("quote_date", p.Date)
	rec.Set("revision", p.Revision)
	rec.Set("data", string(data))
	return nil
}

// loadProjectTree decodes the stored tree back into the domain model.
func loadProjectTree(rec *core.Record) (*services.Project, error) {
	raw := rec.GetString("data")
	if raw == "" {
		return nil, fmt.Errorf("project %s has no stored tree", rec.Id)
	}
	var p services.Project
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("unmarshal project tree: %w", err)
	}
	return &p, nil
}

// projectSummary is the list/detail view of a project record without the
// full tree.
func projectSummary(rec *core.Record) map[string]any {
	created := ""
	if dt := rec.GetDateTime("created"); !dt.IsZero() {
		created = dt.Time().Format("02 Jan 2006")
	}
	updated := ""
	if dt := rec.GetDateTime("updated"); !dt.IsZero() {
		updated = dt.Time().Format("02 Jan 2006")
	}
	return map[string]any{
		"id":                rec.Id,
		"project_number":    rec.GetString("project_number"),
		"name":              rec.GetString("name"),
		"customer":          rec.GetString("customer"),
		"company":           rec.GetString("company"),
		"location":          rec.GetString("location"),
		"delivery_location": rec.GetString("delivery_location"),
		"estimator":         rec.GetString("estimator"),
		"project_type":      rec.GetString("project_type"),
		"quote_date":        rec.GetString("quote_date"),
		"revision":          rec.GetString("revision"),
		"created":           created,
		"updated":           updated,
	}
}
