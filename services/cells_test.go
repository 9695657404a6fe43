package services

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestParseWorkbookNumber(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		expect  float64
		wantErr bool
	}{
		{"plain integer", "1200", 1200, false},
		{"decimal", "2.5", 2.5, false},
		{"pounds with grouping", "£1,234.56", 1234.56, false},
		{"euro symbol", "€99", 99, false},
		{"dollar symbol", "$45.50", 45.5, false},
		{"negative", "-450.5", -450.5, false},
		{"space grouped", "1 200", 1200, false},
		{"symbol only", "£", 0, true},
		{"text", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseWorkbookNumber(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseWorkbookNumber(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseWorkbookNumber(%q) error = %v", tt.input, err)
			}
			if got != tt.expect {
				t.Errorf("parseWorkbookNumber(%q) = %v, want %v", tt.input, got, tt.expect)
			}
		})
	}
}

func TestSheetCells_TypedReads(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", "hello")
	f.SetCellValue(sheet, "B1", "£1,234.56")
	f.SetCellValue(sheet, "C1", NotApplicable)
	f.SetCellValue(sheet, "D1", "2.9")
	f.SetCellValue(sheet, "E1", "abc")
	f.SetCellValue(sheet, "F1", 3.0)

	issues := &ReadIssues{}
	c := NewSheetCells(f, sheet, issues)

	if got := c.Text("A1", "greeting"); got != "hello" {
		t.Errorf("Text(A1) = %q", got)
	}
	if got := c.Text("Z9", "missing"); got != "" {
		t.Errorf("Text on empty cell = %q, want \"\"", got)
	}
	if got := c.Number("B1", "price"); got != 1234.56 {
		t.Errorf("Number(B1) = %v, want 1234.56", got)
	}
	if got := c.Number("C1", "placeholder"); got != 0 {
		t.Errorf("Number on placeholder = %v, want 0", got)
	}
	if got := c.Int("D1", "fraction"); got != 2 {
		t.Errorf("Int(D1) = %d, want truncation to 2", got)
	}
	if got := c.Int("F1", "whole float"); got != 3 {
		t.Errorf("Int(F1) = %d, want 3", got)
	}
	if !issues.Empty() {
		t.Fatalf("clean reads recorded issues: %v", issues.Strings())
	}

	// Bad values coerce to zero and surface as issues rather than errors.
	if got := c.Number("E1", "bad price"); got != 0 {
		t.Errorf("Number(E1) = %v, want 0", got)
	}
	if got := c.RequiredText("Z8", "needed"); got != "" {
		t.Errorf("RequiredText on empty = %q", got)
	}
	if issues.Len() != 2 {
		t.Errorf("issue count = %d, want 2: %v", issues.Len(), issues.Strings())
	}
}

func TestReadIssueString(t *testing.T) {
	tests := []struct {
		name   string
		issue  ReadIssue
		expect string
	}{
		{
			"sheet level",
			ReadIssue{Sheet: "JOB TOTAL", Detail: "sheet missing"},
			"JOB TOTAL: sheet missing",
		},
		{
			"cell without field",
			ReadIssue{Sheet: "CANOPY - First (1) - Kitchen", Cell: "N9", Detail: "bad value"},
			"CANOPY - First (1) - Kitchen!N9: bad value",
		},
		{
			"cell with field",
			ReadIssue{Sheet: "CANOPY - First (1) - Kitchen", Cell: "N9", Field: "subtotal", Detail: "want a number, got \"x\""},
			"CANOPY - First (1) - Kitchen!N9 (subtotal): want a number, got \"x\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.issue.String(); got != tt.expect {
				t.Errorf("String() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestSheetWriter_MergedRangeRedirect(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	if err := f.MergeCell(sheet, "B1", "D1"); err != nil {
		t.Fatalf("MergeCell() error = %v", err)
	}

	w, err := NewSheetWriter(f, sheet)
	if err != nil {
		t.Fatalf("NewSheetWriter() error = %v", err)
	}

	if got := w.Target("C1"); got != "B1" {
		t.Errorf("Target(C1) = %q, want merge anchor B1", got)
	}
	if got := w.Target("A5"); got != "A5" {
		t.Errorf("Target(A5) = %q, want passthrough", got)
	}

	// A write aimed inside the range lands on the anchor.
	if err := w.SetText("C1", "Kitchen Title"); err != nil {
		t.Fatalf("SetText() error = %v", err)
	}
	got, err := f.GetCellValue(sheet, "B1")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if got != "Kitchen Title" {
		t.Errorf("anchor value = %q, want Kitchen Title", got)
	}
}

func TestSheetWriter_SkipsEmptyAndZero(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	f.SetCellValue(sheet, "A1", PlaceholderRef)

	w, err := NewSheetWriter(f, sheet)
	if err != nil {
		t.Fatalf("NewSheetWriter() error = %v", err)
	}

	if err := w.SetText("A1", ""); err != nil {
		t.Fatalf("SetText empty error = %v", err)
	}
	if err := w.SetNumber("B1", 0); err != nil {
		t.Fatalf("SetNumber zero error = %v", err)
	}

	if got, _ := f.GetCellValue(sheet, "A1"); got != PlaceholderRef {
		t.Errorf("empty SetText overwrote the placeholder: %q", got)
	}
	if got, _ := f.GetCellValue(sheet, "B1"); got != "" {
		t.Errorf("zero SetNumber wrote %q", got)
	}
}

func TestSanitizeCell(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"plain text", "Kitchen", "Kitchen"},
		{"formula", "=SUM(A1:A9)", "'=SUM(A1:A9)"},
		{"plus", "+1+2", "'+1+2"},
		{"minus expression", "-2+3", "'-2+3"},
		{"at sign", "@cmd", "'@cmd"},
		{"pipe", "|pipe", "'|pipe"},
		{"placeholder dash survives", "-", "-"},
		{"single char", "x", "x"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeCell(tt.input); got != tt.expect {
				t.Errorf("sanitizeCell(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}
