package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/services"
)

// ── Definition structs ───────────────────────────────────────────────────

type estimatorDef struct {
	name string
	rank string
}

type contactDef struct {
	name  string
	phone string
}

type companyDef struct {
	name    string
	address string
}

// The estimating office reference lists. These drive the intake form
// dropdowns and the hidden ProjectData sheet of generated workbooks.

var estimatorSeed = []estimatorDef{
	{"Simon Hartley", "Estimating Manager"},
	{"Rachel Govan", "Lead Estimator"},
	{"Tom Ellison", "Senior Estimator"},
	{"Priya Nair", "Estimator"},
	{"Daniel Okafor", "Estimator"},
}

var salesContactSeed = []contactDef{
	{"Dan Fisher", "07801 223344"},
	{"Kate McIntyre", "07704 554213"},
	{"Marc Reynolds", "07921 045678"},
	{"Joanna Steele", "07833 912404"},
}

var companySeed = []companyDef{
	{"Hallmark Kitchen Projects", "Unit 7, Riverside Business Park, Leeds, LS10 1DF"},
	{"Caterforce Design & Build", "82 Borough High Street, London, SE1 1LL"},
	{"Arlen Foodservice Consultants", "Ashworth House, Deansgate, Manchester, M3 4LQ"},
	{"Westbrook Contracts Ltd", "14 Harbour Road, Bristol, BS1 5TD"},
	{"Pennine Catering Installations", "Crown Works, Otley Road, Bradford, BD2 4SR"},
}

// Seed populates the reference collections with the estimating office's
// standing data. It is safe to call on every startup because it returns
// early once estimator records exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if estimators already exist ────────────────
	estimatorsCol, err := app.FindCollectionByNameOrId("estimators")
	if err != nil {
		return fmt.Errorf("seed: could not find estimators collection: %w", err)
	}
	existing, err := app.FindAllRecords(estimatorsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query estimators: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: reference collections are empty – inserting seed data …")

	// ── lookup helper collections ────────────────────────────────────
	contactsCol, err := app.FindCollectionByNameOrId("sales_contacts")
	if err != nil {
		return fmt.Errorf("seed: could not find sales_contacts collection: %w", err)
	}
	companiesCol, err := app.FindCollectionByNameOrId("companies")
	if err != nil {
		return fmt.Errorf("seed: could not find companies collection: %w", err)
	}
	locationsCol, err := app.FindCollectionByNameOrId("delivery_locations")
	if err != nil {
		return fmt.Errorf("seed: could not find delivery_locations collection: %w", err)
	}
	modelsCol, err := app.FindCollectionByNameOrId("canopy_models")
	if err != nil {
		return fmt.Errorf("seed: could not find canopy_models collection: %w", err)
	}

	for _, d := range estimatorSeed {
		r := core.NewRecord(estimatorsCol)
		r.Set("name", d.name)
		r.Set("rank", d.rank)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save estimator %q: %w", d.name, err)
		}
	}

	for _, d := range salesContactSeed {
		r := core.NewRecord(contactsCol)
		r.Set("name", d.name)
		r.Set("phone", d.phone)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save sales contact %q: %w", d.name, err)
		}
	}

	for _, d := range companySeed {
		r := core.NewRecord(companiesCol)
		r.Set("name", d.name)
		r.Set("address", d.address)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save company %q: %w", d.name, err)
		}
	}

	for _, name := range services.DeliveryLocationOptions {
		r := core.NewRecord(locationsCol)
		r.Set("name", name)
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save delivery location %q: %w", name, err)
		}
	}

	// Capability flags come from the same model-code rules the canopy
	// entities apply, so the records can never drift from the domain logic.
	for _, code := range services.ValidCanopyModels {
		probe := services.Canopy{Model: code}
		r := core.NewRecord(modelsCol)
		r.Set("code", code)
		r.Set("has_mua", probe.HasMakeUpAir())
		r.Set("is_wash", probe.IsWashCanopy())
		if err := app.Save(r); err != nil {
			return fmt.Errorf("seed: save canopy model %q: %w", code, err)
		}
	}

	log.Printf("seed: inserted %d estimators, %d sales contacts, %d companies, %d delivery locations, %d canopy models\n",
		len(estimatorSeed), len(salesContactSeed), len(companySeed),
		len(services.DeliveryLocationOptions), len(services.ValidCanopyModels))
	return nil
}
