// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given number and name.
// The record carries no stored tree; tests that need one set the data field
// themselves.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, number, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project_number", number)
	record.Set("name", name)
	record.Set("project_type", "Canopy Project")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestEstimator creates an estimator reference record.
func CreateTestEstimator(t *testing.T, app *pocketbase.PocketBase, name, rank string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimators")
	if err != nil {
		t.Fatalf("failed to find estimators collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("rank", rank)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimator: %v", err)
	}

	return record
}
