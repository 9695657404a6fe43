package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbooks arrive hand-edited, so cell reads never fail hard: every
// coercion problem is folded into a ReadIssues collector and the read
// carries on with a zero value. Callers report the whole batch at the end.

// ReadIssue records one recoverable problem found while reading a workbook.
// Cell is empty for sheet-level (structural) problems.
type ReadIssue struct {
	Sheet  string `json:"sheet"`
	Cell   string `json:"cell,omitempty"`
	Field  string `json:"field,omitempty"`
	Detail string `json:"detail"`
}

func (i ReadIssue) String() string {
	switch {
	case i.Cell == "":
		return fmt.Sprintf("%s: %s", i.Sheet, i.Detail)
	case i.Field == "":
		return fmt.Sprintf("%s!%s: %s", i.Sheet, i.Cell, i.Detail)
	default:
		return fmt.Sprintf("%s!%s (%s): %s", i.Sheet, i.Cell, i.Field, i.Detail)
	}
}

// ReadIssues accumulates recoverable read problems across a workbook pass.
type ReadIssues struct {
	issues []ReadIssue
}

// Add records a cell-level issue.
func (c *ReadIssues) Add(sheet, cell, field, detail string) {
	c.issues = append(c.issues, ReadIssue{Sheet: sheet, Cell: cell, Field: field, Detail: detail})
}

// AddSheet records a sheet-level (structural) issue.
func (c *ReadIssues) AddSheet(sheet, detail string) {
	c.issues = append(c.issues, ReadIssue{Sheet: sheet, Detail: detail})
}

// All returns the collected issues in the order they were recorded.
func (c *ReadIssues) All() []ReadIssue {
	return c.issues
}

// Len returns the number of collected issues.
func (c *ReadIssues) Len() int {
	return len(c.issues)
}

// Empty reports whether no issues were collected.
func (c *ReadIssues) Empty() bool {
	return len(c.issues) == 0
}

// Strings renders every issue on its own line, for logs and responses.
func (c *ReadIssues) Strings() []string {
	out := make([]string, len(c.issues))
	for i, issue := range c.issues {
		out[i] = issue.String()
	}
	return out
}

// SheetCells reads typed values from one worksheet. Missing cells and
// unparseable values become zero values plus a collected issue.
type SheetCells struct {
	f      *excelize.File
	sheet  string
	issues *ReadIssues
}

// NewSheetCells wraps one worksheet of f for typed reads.
func NewSheetCells(f *excelize.File, sheet string, issues *ReadIssues) *SheetCells {
	return &SheetCells{f: f, sheet: sheet, issues: issues}
}

// Sheet returns the worksheet name the reader is bound to.
func (s *SheetCells) Sheet() string {
	return s.sheet
}

func (s *SheetCells) raw(cell, field string) string {
	v, err := s.f.GetCellValue(s.sheet, cell)
	if err != nil {
		s.issues.Add(s.sheet, cell, field, fmt.Sprintf("read failed: %v", err))
		return ""
	}
	return strings.TrimSpace(v)
}

// Text reads a trimmed string. Empty cells are fine and return "".
func (s *SheetCells) Text(cell, field string) string {
	return s.raw(cell, field)
}

// RequiredText reads a trimmed string and records an issue when it is empty.
func (s *SheetCells) RequiredText(cell, field string) string {
	v := s.raw(cell, field)
	if v == "" {
		s.issues.Add(s.sheet, cell, field, "required value is empty")
	}
	return v
}

// Number reads a price or measurement. Empty cells and the "-" placeholder
// coerce to zero without an issue; anything else unparseable records one.
func (s *SheetCells) Number(cell, field string) float64 {
	raw := s.raw(cell, field)
	if raw == "" || raw == NotApplicable {
		return 0
	}
	n, err := parseWorkbookNumber(raw)
	if err != nil {
		s.issues.Add(s.sheet, cell, field, fmt.Sprintf("want a number, got %q", raw))
		return 0
	}
	return n
}

// Int reads a count. Numeric strings and whole-valued floats are accepted;
// fractional values truncate toward zero.
func (s *SheetCells) Int(cell, field string) int {
	raw := s.raw(cell, field)
	if raw == "" || raw == NotApplicable {
		return 0
	}
	n, err := parseWorkbookNumber(raw)
	if err != nil {
		s.issues.Add(s.sheet, cell, field, fmt.Sprintf("want an integer, got %q", raw))
		return 0
	}
	return int(n)
}

// parseWorkbookNumber parses a cell rendered through a number format, so
// currency symbols and thousands separators may be present.
func parseWorkbookNumber(raw string) (float64, error) {
	clean := strings.NewReplacer("£", "", "$", "", "€", "", ",", "", " ", "").Replace(raw)
	if clean == "" {
		return 0, fmt.Errorf("empty after cleanup")
	}
	return strconv.ParseFloat(clean, 64)
}

// SheetWriter writes values into one worksheet. A write aimed inside a
// merged range is redirected to the range anchor, which is the only member
// the file format renders.
type SheetWriter struct {
	f      *excelize.File
	sheet  string
	anchor map[string]string
}

// NewSheetWriter wraps one worksheet of f for writes, indexing its merged
// ranges up front.
func NewSheetWriter(f *excelize.File, sheet string) (*SheetWriter, error) {
	merged, err := f.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("merge cells of %s: %w", sheet, err)
	}
	anchor := map[string]string{}
	for _, mc := range merged {
		start := mc.GetStartAxis()
		sc, sr, err := excelize.CellNameToCoordinates(start)
		if err != nil {
			return nil, fmt.Errorf("merge range %s: %w", start, err)
		}
		ec, er, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return nil, fmt.Errorf("merge range %s: %w", mc.GetEndAxis(), err)
		}
		for col := sc; col <= ec; col++ {
			for row := sr; row <= er; row++ {
				cell, err := excelize.CoordinatesToCellName(col, row)
				if err != nil {
					return nil, fmt.Errorf("merge member (%d,%d): %w", col, row, err)
				}
				anchor[cell] = start
			}
		}
	}
	return &SheetWriter{f: f, sheet: sheet, anchor: anchor}, nil
}

// Target resolves the cell a write to addr lands in.
func (w *SheetWriter) Target(addr string) string {
	if a, ok := w.anchor[addr]; ok {
		return a
	}
	return addr
}

// Set writes a value, redirecting into merged ranges as needed.
func (w *SheetWriter) Set(cell string, v any) error {
	if err := w.f.SetCellValue(w.sheet, w.Target(cell), v); err != nil {
		return fmt.Errorf("set %s!%s: %w", w.sheet, cell, err)
	}
	return nil
}

// SetText writes a sanitized string, skipping empty values so template
// placeholders underneath stay intact.
func (w *SheetWriter) SetText(cell, s string) error {
	if s == "" {
		return nil
	}
	return w.Set(cell, sanitizeCell(s))
}

// SetNumber writes a numeric value, skipping zero so untouched slots keep
// the template's blank look.
func (w *SheetWriter) SetNumber(cell string, n float64) error {
	if n == 0 {
		return nil
	}
	return w.Set(cell, n)
}

// sanitizeCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel treats cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data
// theft when a workbook is opened. Single-character strings cannot carry a
// payload, which keeps the "-" placeholder readable as written.
func sanitizeCell(s string) string {
	if len(s) < 2 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}
