package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/services"
)

// HandleReferenceDropdowns returns everything the intake form needs to fill
// its dropdowns: the seeded reference records plus the static workbook
// catalogues.
// Route: GET /api/reference/dropdowns
func HandleReferenceDropdowns(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		payload := map[string]any{
			"estimators":         referenceRecords(app, "estimators", "name", "rank"),
			"sales_contacts":     referenceRecords(app, "sales_contacts", "name", "phone"),
			"companies":          referenceRecords(app, "companies", "name", "address"),
			"delivery_locations": referenceNames(app, "delivery_locations"),
			"canopy_models":      canopyModelRecords(app),

			"project_types":           []string{services.ProjectTypeCanopy, services.ProjectTypeRecoAir},
			"configurations":          services.ConfigurationOptions,
			"lighting":                services.LightingOptions,
			"special_works":           services.SpecialWorksOptions,
			"cladding_types":          services.CladdingTypeOptions,
			"wall_cladding_positions": services.WallCladdingPositions,
			"fire_system_types":       services.FireSystemTypeOptions,
			"tank_installs":           services.TankInstallOptions,
			"recoair_models":          services.RecoAirModelOptions,
			"recoair_locations":       services.RecoAirLocationOptions,
		}
		return e.JSON(http.StatusOK, payload)
	}
}

// referenceRecords flattens a reference collection to the named fields.
func referenceRecords(app *pocketbase.PocketBase, collection string, fields ...string) []map[string]string {
	records := allRecords(app, collection)
	out := make([]map[string]string, 0, len(records))
	for _, rec := range records {
		m := make(map[string]string, len(fields))
		for _, f := range fields {
			m[f] = rec.GetString(f)
		}
		out = append(out, m)
	}
	return out
}

// referenceNames flattens a reference collection to its name column.
func referenceNames(app *pocketbase.PocketBase, collection string) []string {
	records := allRecords(app, collection)
	out := make([]string, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.GetString("name"))
	}
	return out
}

func canopyModelRecords(app *pocketbase.PocketBase) []map[string]any {
	records := allRecords(app, "canopy_models")
	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, map[string]any{
			"code":    rec.GetString("code"),
			"has_mua": rec.GetBool("has_mua"),
			"is_wash": rec.GetBool("is_wash"),
		})
	}
	return out
}

func allRecords(app *pocketbase.PocketBase, collection string) []*core.Record {
	col, err := app.FindCollectionByNameOrId(collection)
	if err != nil {
		log.Printf("dropdowns: could not find %s collection: %v", collection, err)
		return nil
	}
	records, err := app.FindAllRecords(col)
	if err != nil {
		log.Printf("dropdowns: could not query %s: %v", collection, err)
		return nil
	}
	return records
}
