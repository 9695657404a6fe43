package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/collections"
	"costsheetgen/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed reference data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Every API call gets a log line
		se.Router.BindFunc(handlers.RequestLog)

		// ── Reference data ───────────────────────────────────────
		se.Router.GET("/api/reference/dropdowns", handlers.HandleReferenceDropdowns(app))

		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app))
		se.Router.POST("/projects", handlers.HandleProjectCreate(app))
		se.Router.GET("/projects/{id}", handlers.HandleProjectView(app))
		se.Router.POST("/projects/{id}/save", handlers.HandleProjectSave(app))
		se.Router.DELETE("/projects/{id}", handlers.HandleProjectDelete(app))

		// ── Cost sheets ──────────────────────────────────────────
		se.Router.GET("/projects/{id}/costsheet", handlers.HandleProjectCostSheet(app))
		se.Router.POST("/costsheets/generate", handlers.HandleCostSheetGenerate(app))
		se.Router.POST("/costsheets/read", handlers.HandleCostSheetRead(app))
		se.Router.POST("/costsheets/revision", handlers.HandleCostSheetRevision(app))

		// ── Quotation artifacts ──────────────────────────────────
		se.Router.POST("/quotations/context", handlers.HandleQuotationContext(app))
		se.Router.POST("/quotations/summary", handlers.HandleQuotationSummary(app))

		return se.Next()
	})

	// File-mode subcommands alongside PocketBase's own serve command
	registerCostSheetCommands(app)

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
