package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"costsheetgen/services"
)

// HandleQuotationContext reads an uploaded workbook and returns the context
// document for the Word quotation templates, along with which template
// families the project needs (a mixed canopy/RecoAir project needs both).
// Route: POST /quotations/context
func HandleQuotationContext(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, err := uploadedWorkbook(e)
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, "Please attach a cost sheet workbook")
		}
		defer file.Close()

		result, err := services.ReadCostSheet(file)
		if err != nil {
			log.Printf("quotation_context: %v", err)
			return errorJSON(e, http.StatusBadRequest, "Workbook could not be read as a cost sheet")
		}

		analysis := services.AnalyzeProject(result.Project)

		return e.JSON(http.StatusOK, map[string]any{
			"context":   services.BuildWordContext(result.Project),
			"templates": analysis.QuotationTemplates(),
			"analysis":  analysis,
			"issues":    result.Issues,
		})
	}
}

// HandleQuotationSummary reads an uploaded workbook and downloads the
// one-page pricing summary PDF.
// Route: POST /quotations/summary
func HandleQuotationSummary(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		file, err := uploadedWorkbook(e)
		if err != nil {
			return errorJSON(e, http.StatusBadRequest, "Please attach a cost sheet workbook")
		}
		defer file.Close()

		result, err := services.ReadCostSheet(file)
		if err != nil {
			log.Printf("quotation_summary: %v", err)
			return errorJSON(e, http.StatusBadRequest, "Workbook could not be read as a cost sheet")
		}

		pdfBytes, err := services.GenerateQuotationPDF(result.Project)
		if err != nil {
			log.Printf("quotation_summary: failed to generate: %v", err)
			return errorJSON(e, http.StatusInternalServerError, "Failed to generate summary PDF")
		}

		number := result.Project.ProjectNumber
		if number == "" {
			number = "Project"
		}
		stamp := strings.ReplaceAll(services.SheetDate(result.Project.Date), "/", "")
		filename := fmt.Sprintf("%s Quotation Summary %s.pdf", number, stamp)

		e.Response.Header().Set("Content-Type", contentTypePDF)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}
