// Package services implements the cost-sheet domain: workbook reading and
// writing, pricing rollups and reconciliation, and the quotation outputs
// built from them.
package services

import (
	"fmt"
	"math"
)

// Rollups are recomputed from unit-level figures and cross-checked against
// the workbook's own JOB TOTAL cells. Flat pack is the recurring trap: it
// is excluded from delivery and from the "excluding" rollup but part of the
// canonical job total, so both sums are always carried side by side.

// AreaTotals itemises one area's recomputed prices.
type AreaTotals struct {
	Level string `json:"level"`
	Area  string `json:"area"`

	CanopyTotal        float64 `json:"canopy_total"`
	FireSuppTotal      float64 `json:"fire_suppression_total"`
	CladdingTotal      float64 `json:"cladding_total"`
	UVExtraOverTotal   float64 `json:"uv_extra_over_total"`
	RecoAirTotal       float64 `json:"recoair_total"`
	SDUTotal           float64 `json:"sdu_total"`
	DeliveryTotal      float64 `json:"delivery_total"`
	CommissioningTotal float64 `json:"commissioning_total"`
	FlatPackTotal      float64 `json:"flat_pack_total"`

	TotalExcludingFlatPack float64 `json:"total_excluding_flat_pack"`
	TotalIncludingFlatPack float64 `json:"total_including_flat_pack"`
}

// SheetSubtotal returns the canopy-sheet rollup: unit, suppression and
// cladding prices, without delivery or commissioning.
func (t AreaTotals) SheetSubtotal() float64 {
	return t.CanopyTotal + t.FireSuppTotal + t.CladdingTotal
}

// ProjectTotals is the job-level rollup across every area.
type ProjectTotals struct {
	Areas []AreaTotals `json:"areas"`

	CanopyTotal        float64 `json:"canopy_total"`
	FireSuppTotal      float64 `json:"fire_suppression_total"`
	CladdingTotal      float64 `json:"cladding_total"`
	UVExtraOverTotal   float64 `json:"uv_extra_over_total"`
	RecoAirTotal       float64 `json:"recoair_total"`
	SDUTotal           float64 `json:"sdu_total"`
	DeliveryTotal      float64 `json:"delivery_total"`
	CommissioningTotal float64 `json:"commissioning_total"`
	FlatPackTotal      float64 `json:"flat_pack_total"`

	TotalExcludingFlatPack float64 `json:"total_excluding_flat_pack"`
	TotalIncludingFlatPack float64 `json:"total_including_flat_pack"`
}

// ComputeTotals rolls the project tree up into per-area and job totals.
// TotalIncludingFlatPack is defined as TotalExcludingFlatPack plus the flat
// pack sum, so the two never drift apart.
func ComputeTotals(p *Project) ProjectTotals {
	var out ProjectTotals
	for _, level := range p.Levels {
		for _, area := range level.Areas {
			at := AreaTotals{Level: level.Name, Area: area.Name}

			for _, c := range area.Canopies {
				at.CanopyTotal += c.CanopyPrice
				at.CladdingTotal += c.CladdingPrice
				if c.FireSuppression != nil {
					at.FireSuppTotal += c.FireSuppression.Price
				}
			}
			at.UVExtraOverTotal = area.UVExtraOverPrice

			for _, u := range area.RecoAirUnits {
				qty := u.Quantity
				if qty < 1 {
					qty = 1
				}
				at.RecoAirTotal += u.Price * float64(qty)
				at.DeliveryTotal += u.Delivery
				at.CommissioningTotal += u.Commissioning
			}
			for _, u := range area.SDUs {
				at.SDUTotal += u.Price
			}
			if area.FlatPack != nil {
				at.FlatPackTotal = area.FlatPack.Price
			}
			at.DeliveryTotal += area.DeliveryInstallationPrice
			at.CommissioningTotal += area.CommissioningPrice

			at.TotalExcludingFlatPack = at.CanopyTotal + at.FireSuppTotal + at.CladdingTotal +
				at.UVExtraOverTotal + at.RecoAirTotal + at.SDUTotal +
				at.DeliveryTotal + at.CommissioningTotal
			at.TotalIncludingFlatPack = at.TotalExcludingFlatPack + at.FlatPackTotal

			out.Areas = append(out.Areas, at)

			out.CanopyTotal += at.CanopyTotal
			out.FireSuppTotal += at.FireSuppTotal
			out.CladdingTotal += at.CladdingTotal
			out.UVExtraOverTotal += at.UVExtraOverTotal
			out.RecoAirTotal += at.RecoAirTotal
			out.SDUTotal += at.SDUTotal
			out.DeliveryTotal += at.DeliveryTotal
			out.CommissioningTotal += at.CommissioningTotal
			out.FlatPackTotal += at.FlatPackTotal
			out.TotalExcludingFlatPack += at.TotalExcludingFlatPack
		}
	}
	out.TotalIncludingFlatPack = out.TotalExcludingFlatPack + out.FlatPackTotal
	return out
}

// DeliveryPrice derives the delivery figure from a sheet's
// delivery+installation subtotal and its commissioning cell. It is never
// negative: a commissioning figure exceeding the subtotal clamps to zero.
func DeliveryPrice(subtotal, commissioning float64) float64 {
	if d := subtotal - commissioning; d > 0 {
		return d
	}
	return 0
}

// JobTotalCells holds the JOB TOTAL sheet's own rollup as read back.
type JobTotalCells struct {
	IncludingFlatPack float64 `json:"including_flat_pack"` // C24, the canonical total
	ExcludingFlatPack float64 `json:"excluding_flat_pack"` // T24
}

// SheetCheck pairs one sheet's rollup cell with its recomputed counterpart.
type SheetCheck struct {
	Sheet    string  `json:"sheet"`
	Cell     float64 `json:"cell_value"`
	Computed float64 `json:"computed"`
}

// Reconciliation reports how the recomputed totals compare with the
// workbook's own figures. Discrepancies are findings for human review, not
// errors: generation proceeds regardless.
type Reconciliation struct {
	Totals        ProjectTotals `json:"totals"`
	Job           JobTotalCells `json:"job_total_cells"`
	Tolerance     float64       `json:"tolerance"`
	Discrepancies []string      `json:"discrepancies,omitempty"`
}

// OK reports whether every figure matched within tolerance.
func (r Reconciliation) OK() bool {
	return len(r.Discrepancies) == 0
}

// ReconcileTotals cross-checks computed totals against the JOB TOTAL cells
// and the per-sheet rollups. The job-level tolerance is one penny per
// contributing sheet; each individual sheet must match to the penny.
func ReconcileTotals(totals ProjectTotals, job JobTotalCells, sheets []SheetCheck) Reconciliation {
	rec := Reconciliation{
		Totals:    totals,
		Job:       job,
		Tolerance: 0.01 * math.Max(1, float64(len(sheets))),
	}

	for _, s := range sheets {
		if pennyDiff(s.Cell, s.Computed, 0.01) {
			rec.Discrepancies = append(rec.Discrepancies,
				fmt.Sprintf("%s subtotal: sheet holds %s, recomputed %s",
					s.Sheet, FormatGBP(s.Cell), FormatGBP(s.Computed)))
		}
	}

	if pennyDiff(job.IncludingFlatPack, totals.TotalIncludingFlatPack, rec.Tolerance) {
		rec.Discrepancies = append(rec.Discrepancies,
			fmt.Sprintf("job total (inc. flat pack): sheet holds %s, recomputed %s",
				FormatGBP(job.IncludingFlatPack), FormatGBP(totals.TotalIncludingFlatPack)))
	}
	if pennyDiff(job.ExcludingFlatPack, totals.TotalExcludingFlatPack, rec.Tolerance) {
		rec.Discrepancies = append(rec.Discrepancies,
			fmt.Sprintf("job total (exc. flat pack): sheet holds %s, recomputed %s",
				FormatGBP(job.ExcludingFlatPack), FormatGBP(totals.TotalExcludingFlatPack)))
	}
	return rec
}

// pennyDiff reports whether a and b differ by more than tol, with a hair of
// slack for float representation.
func pennyDiff(a, b, tol float64) bool {
	return math.Abs(a-b) > tol+1e-9
}
