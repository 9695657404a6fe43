package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// summaryRow is one area line of the quotation summary table.
type summaryRow struct {
	Level      string
	Area       string
	Canopies   int
	Equipment  float64
	Delivery   float64
	Commission float64
	Total      float64
}

// GenerateQuotationPDF renders an A4 pricing summary of the project for
// internal review: one row per area, then the rollup with both flat-pack
// totals. It returns the raw PDF bytes or an error.
func GenerateQuotationPDF(p *Project) ([]byte, error) {
	totals := ComputeTotals(p)

	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addQuotationHeader(m, p)
	addSummaryTableHeader(m)
	for _, r := range summaryRows(p, totals) {
		addSummaryTableRow(m, r)
	}
	addTotalsBlock(m, totals)
	addGeneratedFooter(m)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

// summaryRows zips the project tree with its recomputed area totals, which
// ComputeTotals emits in the same nested order.
func summaryRows(p *Project, totals ProjectTotals) []summaryRow {
	rows := make([]summaryRow, 0, len(totals.Areas))
	i := 0
	for _, level := range p.Levels {
		for _, area := range level.Areas {
			if i >= len(totals.Areas) {
				break
			}
			at := totals.Areas[i]
			i++
			rows = append(rows, summaryRow{
				Level:      level.Name,
				Area:       area.Name,
				Canopies:   len(area.Canopies),
				Equipment:  at.TotalExcludingFlatPack - at.DeliveryTotal - at.CommissioningTotal,
				Delivery:   at.DeliveryTotal,
				Commission: at.CommissioningTotal,
				Total:      at.TotalIncludingFlatPack,
			})
		}
	}
	return rows
}

// addQuotationHeader adds the title and the project metadata lines.
func addQuotationHeader(m core.Maroto, p *Project) {
	m.AddRows(
		row.New(12).Add(
			col.New(12).Add(
				text.New(fmt.Sprintf("%s - Quotation Summary", p.ProjectNumber), props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
				}),
			),
		),
	)

	meta := props.Text{
		Size:  9,
		Align: align.Left,
		Color: &props.Color{Red: 80, Green: 80, Blue: 80},
	}
	metaRight := meta
	metaRight.Align = align.Right

	m.AddRows(
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("%s, %s", p.ProjectName, p.Location), meta),
			),
			col.New(6).Add(
				text.New(fmt.Sprintf("Date: %s", SheetDate(p.Date)), metaRight),
			),
		),
		row.New(8).Add(
			col.New(6).Add(
				text.New(fmt.Sprintf("Customer: %s", p.Customer), meta),
			),
			col.New(6).Add(
				text.New(revisionLabel(p.Revision), metaRight),
			),
		),
	)

	m.AddRows(row.New(4))
}

func revisionLabel(rev string) string {
	if rev == "" {
		return "Initial issue"
	}
	return fmt.Sprintf("Revision %s", rev)
}

// addSummaryTableHeader adds the column header row for the area table.
func addSummaryTableHeader(m core.Maroto) {
	headerBg := &props.Color{Red: 33, Green: 37, Blue: 41}
	headerText := props.Text{
		Size:  8,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &props.Color{Red: 255, Green: 255, Blue: 255},
	}
	headerTextLeft := headerText
	headerTextLeft.Align = align.Left

	headerCell := props.Cell{BackgroundColor: headerBg}

	m.AddRows(
		row.New(8).Add(
			col.New(3).Add(
				text.New("Area", headerTextLeft),
			).WithStyle(&headerCell),
			col.New(1).Add(
				text.New("Canopies", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Equipment", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Delivery", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Commissioning", headerText),
			).WithStyle(&headerCell),
			col.New(2).Add(
				text.New("Area Total", headerText),
			).WithStyle(&headerCell),
		),
	)
}

// addSummaryTableRow adds one area line.
func addSummaryTableRow(m core.Maroto, r summaryRow) {
	baseText := props.Text{
		Size:  8,
		Align: align.Center,
	}
	leftText := baseText
	leftText.Align = align.Left
	rightText := baseText
	rightText.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(3).Add(text.New(fmt.Sprintf("%s - %s", r.Level, r.Area), leftText)),
			col.New(1).Add(text.New(strconv.Itoa(r.Canopies), baseText)),
			col.New(2).Add(text.New(FormatGBP(r.Equipment), rightText)),
			col.New(2).Add(text.New(FormatGBP(r.Delivery), rightText)),
			col.New(2).Add(text.New(FormatGBP(r.Commission), rightText)),
			col.New(2).Add(text.New(FormatGBP(r.Total), rightText)),
		),
	)
}

// addTotalsBlock adds the rollup with both named totals, flat pack between
// them so the relationship is visible on the page.
func addTotalsBlock(m core.Maroto, totals ProjectTotals) {
	m.AddRows(row.New(6))

	summaryBg := &props.Color{Red: 240, Green: 240, Blue: 240}
	summaryCell := &props.Cell{BackgroundColor: summaryBg}

	labelStyle := props.Text{
		Size:  9,
		Style: fontstyle.Bold,
		Align: align.Right,
	}
	valueStyle := labelStyle

	line := func(label string, amount float64) {
		m.AddRows(
			row.New(8).Add(
				col.New(8).Add(
					text.New(label, labelStyle),
				).WithStyle(summaryCell),
				col.New(4).Add(
					text.New(FormatGBP(amount), valueStyle),
				).WithStyle(summaryCell),
			),
		)
	}

	line("Total Excluding Flat Pack", totals.TotalExcludingFlatPack)
	line("Flat Pack", totals.FlatPackTotal)
	line("Total Including Flat Pack", totals.TotalIncludingFlatPack)
}

// addGeneratedFooter adds the generated-date line at the bottom.
func addGeneratedFooter(m core.Maroto) {
	m.AddRows(row.New(6))
	m.AddRows(
		row.New(6).Add(
			col.New(12).Add(
				text.New(
					fmt.Sprintf("Generated on %s", time.Now().Format(quoteDateLayout)),
					props.Text{
						Size:  7,
						Align: align.Left,
						Color: &props.Color{Red: 140, Green: 140, Blue: 140},
					},
				),
			),
		),
	)
}
