package services

import (
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestReviseCostSheet_FirstIssue(t *testing.T) {
	b, _ := generateSample(t)

	got, err := ReviseCostSheet(bytesReader(b), false)
	if err != nil {
		t.Fatalf("ReviseCostSheet() error = %v", err)
	}
	if got.OldRevision != "" || got.NewRevision != "A" {
		t.Errorf("revision %q -> %q, want \"\" -> A", got.OldRevision, got.NewRevision)
	}
	if got.Date != "02/06/2025" {
		t.Errorf("Date = %q, want the workbook's own 02/06/2025", got.Date)
	}
	if got.Filename != "P9001 Cost Sheet 02062025.xlsx" {
		t.Errorf("Filename = %q", got.Filename)
	}

	f, err := excelize.OpenReader(bytesReader(got.Bytes))
	if err != nil {
		t.Fatalf("OpenReader(revised) error = %v", err)
	}
	defer f.Close()

	revCells := []struct {
		sheet string
		cell  string
	}{
		{"CANOPY - First (1) - Bar", "O7"},
		{"CANOPY (UV) - First (1) - Bar", "O7"},
		{"CANOPY - First (1) - Kitchen", "O7"},
		{"FIRE SUPP - First (1) - Kitchen", "O7"},
		{"SDU - First (1) - Kitchen", "O7"},
		{"RECOAIR - Second (2) - Prep", "O7"},
		{"JOB TOTAL", "K7"},
	}
	for _, rc := range revCells {
		if v, _ := f.GetCellValue(rc.sheet, rc.cell); v != "A" {
			t.Errorf("%s!%s = %q, want A", rc.sheet, rc.cell, v)
		}
	}

	// Hidden masters keep their blank revision cells.
	if v, _ := f.GetCellValue("CANOPY", "O7"); v != "" {
		t.Errorf("master revision cell = %q, want untouched", v)
	}

	// The revised workbook still reads back cleanly.
	rr, err := ReadCostSheetBytes(got.Bytes)
	if err != nil {
		t.Fatalf("ReadCostSheetBytes(revised) error = %v", err)
	}
	if rr.Project.Revision != "A" {
		t.Errorf("re-read revision = %q, want A", rr.Project.Revision)
	}
	if !rr.Reconciliation.OK() {
		t.Errorf("revised workbook fails reconciliation: %v", rr.Reconciliation.Discrepancies)
	}
}

func TestReviseCostSheet_Sequence(t *testing.T) {
	b, _ := generateSample(t)

	first, err := ReviseCostSheet(bytesReader(b), false)
	if err != nil {
		t.Fatalf("first revision error = %v", err)
	}
	second, err := ReviseCostSheet(bytesReader(first.Bytes), false)
	if err != nil {
		t.Fatalf("second revision error = %v", err)
	}
	if second.OldRevision != "A" || second.NewRevision != "B" {
		t.Errorf("revision %q -> %q, want A -> B", second.OldRevision, second.NewRevision)
	}
}

func TestReviseCostSheet_UpdateDate(t *testing.T) {
	b, _ := generateSample(t)

	got, err := ReviseCostSheet(bytesReader(b), true)
	if err != nil {
		t.Fatalf("ReviseCostSheet() error = %v", err)
	}
	today := SheetDate("")
	if got.Date != today {
		t.Errorf("Date = %q, want today %q", got.Date, today)
	}
	if got.Filename != CostSheetFilename("P9001", today) {
		t.Errorf("Filename = %q, want it built from today's date", got.Filename)
	}

	f, err := excelize.OpenReader(bytesReader(got.Bytes))
	if err != nil {
		t.Fatalf("OpenReader(revised) error = %v", err)
	}
	defer f.Close()
	if v, _ := f.GetCellValue("CANOPY - First (1) - Kitchen", "G7"); v != today {
		t.Errorf("date cell = %q, want refreshed to %q", v, today)
	}
}

func TestReviseCostSheet_BadRevisionCell(t *testing.T) {
	b, _ := generateSample(t)
	b = mutateWorkbook(t, b, func(f *excelize.File) {
		f.SetCellValue("CANOPY - First (1) - Bar", "O7", "A1")
	})

	_, err := ReviseCostSheet(bytesReader(b), false)
	if err == nil {
		t.Fatal("a non-letter revision should refuse to bump")
	}
	if !strings.Contains(err.Error(), "A1") {
		t.Errorf("error %q does not name the bad revision", err)
	}
}
