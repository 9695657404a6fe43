package services

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// RevisionResult is a revised workbook plus what changed.
type RevisionResult struct {
	Bytes       []byte `json:"-"`
	OldRevision string `json:"old_revision"`
	NewRevision string `json:"new_revision"`
	Date        string `json:"date"`
	Filename    string `json:"filename"`
}

// ReviseCostSheet bumps an existing workbook's revision letter (A to B, Z to
// AA) and rewrites the revision cell of every visible sheet at its family's
// address. With updateDate the date cells refresh to today as well.
func ReviseCostSheet(r io.Reader, updateDate bool) (*RevisionResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	old := currentRevision(f)
	next, err := NextRevision(old)
	if err != nil {
		return nil, fmt.Errorf("revision %q: %w", old, err)
	}

	date := ""
	if updateDate {
		date = time.Now().Format(sheetDateLayout)
	}
	projectNumber := ""

	for _, name := range f.GetSheetList() {
		visible, err := f.GetSheetVisible(name)
		if err != nil || !visible {
			continue
		}
		ref, err := ParseSheetName(name)
		if err != nil {
			continue
		}
		h := ref.Kind.Header()
		if h.Revision == "" {
			continue
		}
		w, err := NewSheetWriter(f, name)
		if err != nil {
			return nil, err
		}
		if err := w.Set(h.Revision, next); err != nil {
			return nil, err
		}
		if updateDate && h.Date != "" {
			if err := w.Set(h.Date, date); err != nil {
				return nil, err
			}
		}
		if projectNumber == "" && h.ProjectNumber != "" {
			issues := &ReadIssues{}
			projectNumber = NewSheetCells(f, name, issues).Text(h.ProjectNumber, "project number")
		}
		if date == "" && h.Date != "" {
			issues := &ReadIssues{}
			date = NewSheetCells(f, name, issues).Text(h.Date, "date")
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &RevisionResult{
		Bytes:       buf.Bytes(),
		OldRevision: old,
		NewRevision: next,
		Date:        date,
		Filename:    CostSheetFilename(projectNumber, date),
	}, nil
}

// currentRevision finds the workbook's revision letter: the first non-empty
// revision cell across the visible sheets.
func currentRevision(f *excelize.File) string {
	issues := &ReadIssues{}
	for _, name := range f.GetSheetList() {
		visible, err := f.GetSheetVisible(name)
		if err != nil || !visible {
			continue
		}
		ref, err := ParseSheetName(name)
		if err != nil {
			continue
		}
		h := ref.Kind.Header()
		if h.Revision == "" {
			continue
		}
		if rev := NewSheetCells(f, name, issues).Text(h.Revision, "revision"); rev != "" {
			return rev
		}
	}
	return ""
}
