package services

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// WriteCostSheet renders a project tree into a workbook built from the
// template source and returns the file bytes. The tree is normalized in
// place, so the caller gets back exactly what a re-read would produce.
//
// Every area sheet is a copy of its hidden family master, named per the tab
// convention and coloured per area. Rollup cells hold computed values, not
// formulas, so a generated workbook reads back without a recalculation
// pass.
func WriteCostSheet(p *Project, source TemplateSource) ([]byte, error) {
	f, err := source.Template()
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	defer f.Close()

	NormalizeProject(p)

	if err := writeWorkbook(f, p); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeWorkbook(f *excelize.File, p *Project) error {
	areaIndex := 0
	for li := range p.Levels {
		level := &p.Levels[li]
		for ai := range level.Areas {
			area := &level.Areas[ai]
			if err := writeAreaSheets(f, p, level, area, areaIndex); err != nil {
				return err
			}
			areaIndex++
		}
	}

	if err := writeJobTotalSheet(f, p); err != nil {
		return err
	}
	if err := writeProjectDataSheet(f, p); err != nil {
		return err
	}
	if err := writeContractSheets(f, p); err != nil {
		return err
	}

	orderWorkbookSheets(f)
	return nil
}

// writeAreaSheets instantiates every sheet one area's options call for.
func writeAreaSheets(f *excelize.File, p *Project, level *Level, area *Area, areaIndex int) error {
	color := TabColorForArea(areaIndex)
	base := SheetRef{LevelName: level.Name, LevelIndex: level.Index, AreaName: area.Name}

	if len(area.Canopies) > 0 {
		if len(area.Canopies) > MaxCanopiesPerSheet {
			return fmt.Errorf("area %q holds %d canopies, a sheet takes %d",
				area.Name, len(area.Canopies), MaxCanopiesPerSheet)
		}

		ref := base
		ref.Kind = KindCanopy
		w, err := cloneMaster(f, ref, color)
		if err != nil {
			return err
		}
		if err := writeCanopySheet(w, p, ref, area, 0); err != nil {
			return err
		}

		if area.Options.UVC || area.Options.UVExtraOver {
			uvRef := base
			uvRef.Kind = KindCanopyUV
			uw, err := cloneMaster(f, uvRef, color)
			if err != nil {
				return err
			}
			if err := writeCanopySheet(uw, p, uvRef, area, area.UVExtraOverPrice); err != nil {
				return err
			}
		}

		if area.Options.FireSuppression {
			fsRef := base
			fsRef.Kind = KindFireSupp
			fw, err := cloneMaster(f, fsRef, color)
			if err != nil {
				return err
			}
			if err := writeFireSuppSheet(fw, p, fsRef, area); err != nil {
				return err
			}
		}
	}

	if area.Options.RecoAir && len(area.RecoAirUnits) > 0 {
		if len(area.RecoAirUnits) > RecoAirLastRow-RecoAirFirstRow+1 {
			return fmt.Errorf("area %q holds %d RecoAir units, a sheet takes %d",
				area.Name, len(area.RecoAirUnits), RecoAirLastRow-RecoAirFirstRow+1)
		}
		raRef := base
		raRef.Kind = KindRecoAir
		rw, err := cloneMaster(f, raRef, color)
		if err != nil {
			return err
		}
		if err := writeRecoAirSheet(rw, p, raRef, area, areaIndex); err != nil {
			return err
		}
	}

	if area.Options.SDU && len(area.SDUs) > 0 {
		sduRef := base
		sduRef.Kind = KindSDU
		sw, err := cloneMaster(f, sduRef, color)
		if err != nil {
			return err
		}
		if err := writeSDUSheet(sw, p, sduRef, area); err != nil {
			return err
		}
	}

	return nil
}

// cloneMaster copies the hidden family master into a named, visible,
// coloured area sheet and wraps it for writing.
func cloneMaster(f *excelize.File, ref SheetRef, color string) (*SheetWriter, error) {
	srcIdx, err := f.GetSheetIndex(string(ref.Kind))
	if err != nil || srcIdx == -1 {
		return nil, fmt.Errorf("template has no %s master", ref.Kind)
	}
	name := ref.Name()
	dstIdx, err := f.NewSheet(name)
	if err != nil {
		return nil, fmt.Errorf("create sheet %s: %w", name, err)
	}
	if err := f.CopySheet(srcIdx, dstIdx); err != nil {
		return nil, fmt.Errorf("copy %s master to %s: %w", ref.Kind, name, err)
	}
	if err := f.SetSheetVisible(name, true); err != nil {
		return nil, fmt.Errorf("unhide %s: %w", name, err)
	}
	f.SetSheetProps(name, &excelize.SheetPropsOptions{TabColorRGB: &color})
	return NewSheetWriter(f, name)
}

// writeSheetHeader stamps the family's metadata cells.
func writeSheetHeader(w *SheetWriter, ref SheetRef, p *Project) error {
	h := ref.Kind.Header()
	fields := []struct {
		cell  string
		value string
	}{
		{h.ProjectNumber, p.ProjectNumber},
		{h.Customer, p.Customer},
		{h.Estimator, Initials(p.Estimator)},
		{h.ProjectName, p.ProjectName},
		{h.Location, p.Location},
		{h.Date, p.Date},
		{h.Revision, p.Revision},
	}
	if h.Title != "" && ref.IsAreaSheet() {
		fields = append(fields, struct {
			cell  string
			value string
		}{h.Title, ref.Title()})
	}
	for _, fld := range fields {
		if fld.cell == "" {
			continue
		}
		if err := w.SetText(fld.cell, fld.value); err != nil {
			return err
		}
	}
	return nil
}

// writeCanopySheet populates one canopy-family sheet. extraOver shifts the
// sheet subtotal for the UV variant, whose rollup carries the premium.
func writeCanopySheet(w *SheetWriter, p *Project, ref SheetRef, area *Area, extraOver float64) error {
	if err := writeSheetHeader(w, ref, p); err != nil {
		return err
	}

	subtotal := 0.0
	for i := range area.Canopies {
		c := &area.Canopies[i]
		b := CanopyBlockAt(i)

		if err := w.SetText(b.Ref(), c.Reference); err != nil {
			return err
		}
		if err := w.SetText(b.Configuration(), c.Configuration); err != nil {
			return err
		}
		if err := w.SetText(b.Model(), c.Model); err != nil {
			return err
		}
		if err := w.SetNumber(b.Width(), c.Width); err != nil {
			return err
		}
		if err := w.SetNumber(b.Length(), c.Length); err != nil {
			return err
		}
		if err := w.SetNumber(b.Height(), c.Height); err != nil {
			return err
		}
		if err := w.SetNumber(b.Sections(), float64(c.Sections)); err != nil {
			return err
		}
		if err := writeFigure(w, b.ExtractVolume(), c.ExtractVolume); err != nil {
			return err
		}
		if err := writeFigure(w, b.ExtractStatic(), c.ExtractStatic); err != nil {
			return err
		}
		if err := writeFigure(w, b.MUAVolume(), c.MUAVolume); err != nil {
			return err
		}
		if err := writeFigure(w, b.SupplyStatic(), c.SupplyStatic); err != nil {
			return err
		}
		if err := w.SetText(b.Lighting(), c.Lighting); err != nil {
			return err
		}
		for j, work := range c.SpecialWorks {
			if j >= 3 {
				break
			}
			if err := w.SetText(b.SpecialWorks(j), work); err != nil {
				return err
			}
		}
		if err := w.SetText(b.CladdingType(), c.CladdingType); err != nil {
			return err
		}
		if c.WallCladding != nil {
			if err := w.Set(b.WallCladding(), CladdingMarkerValue); err != nil {
				return err
			}
		}
		if c.Wash != nil {
			if err := writeFigure(w, b.ColdWaterSupply(), c.Wash.ColdWaterSupply); err != nil {
				return err
			}
			if err := writeFigure(w, b.HotWaterSupply(), c.Wash.HotWaterSupply); err != nil {
				return err
			}
			if err := writeFigure(w, b.HotWaterStorage(), c.Wash.HotWaterStorage); err != nil {
				return err
			}
		}

		if err := w.SetNumber(b.CanopyPrice(), c.CanopyPrice); err != nil {
			return err
		}
		if c.FireSuppression != nil {
			if err := w.SetNumber(b.FireSuppPrice(), c.FireSuppression.Price); err != nil {
				return err
			}
			subtotal += c.FireSuppression.Price
		}
		if err := w.SetNumber(b.CladdingPrice(), c.CladdingPrice); err != nil {
			return err
		}
		subtotal += c.CanopyPrice + c.CladdingPrice

		if c.Options.FireSuppression {
			if err := w.Set(b.OptionFireSuppression(), OptionLabelFireSuppression); err != nil {
				return err
			}
		}
		if c.Options.UVC {
			if err := w.Set(b.OptionUV(), OptionLabelUV); err != nil {
				return err
			}
		}
		if c.Options.SDU {
			if err := w.Set(b.OptionSDU(), OptionLabelSDU); err != nil {
				return err
			}
		}
		if c.Options.RecoAir {
			if err := w.Set(b.OptionRecoAir(), OptionLabelRecoAir); err != nil {
				return err
			}
		}
	}

	if err := w.SetNumber(CellSheetTotal, subtotal+extraOver); err != nil {
		return err
	}
	if err := w.SetNumber(CellDeliveryInstallation, area.DeliveryInstallationPrice+area.CommissioningPrice); err != nil {
		return err
	}
	if err := w.SetNumber(ref.Kind.CommissioningCell(), area.CommissioningPrice); err != nil {
		return err
	}
	if err := writeDeliveryLocation(w, p); err != nil {
		return err
	}

	// The plain canopy sheet carries the project-wide cladding summary.
	if ref.Kind == KindCanopy {
		if err := writeCladdingSummary(w, p); err != nil {
			return err
		}
	}
	return nil
}

// writeCladdingSummary writes every clad canopy in the project into the
// summary block, keyed by canopy reference so a reader never has to guess
// which canopy a row belongs to.
func writeCladdingSummary(w *SheetWriter, p *Project) error {
	row := CladdingSummaryFirstRow
	for _, level := range p.Levels {
		for _, area := range level.Areas {
			for _, c := range area.Canopies {
				if c.WallCladding == nil || row > CladdingSummaryLastRow {
					continue
				}
				if err := w.SetText(cellRef(CladdingItemCol, row), c.Reference); err != nil {
					return err
				}
				if err := w.SetText(cellRef(CladdingDimensionsCol, row), c.WallCladding.Dimensions()); err != nil {
					return err
				}
				if err := w.SetText(cellRef(CladdingPositionsCol, row), c.WallCladding.PositionKey()); err != nil {
					return err
				}
				row++
			}
		}
	}
	return nil
}

// writeFireSuppSheet populates a fire-suppression sheet. Only canopies with
// the option occupy blocks, packed from the top so references line up with
// however many suppression systems the area takes.
func writeFireSuppSheet(w *SheetWriter, p *Project, ref SheetRef, area *Area) error {
	if err := writeSheetHeader(w, ref, p); err != nil {
		return err
	}

	slot := 0
	subtotal := 0.0
	for i := range area.Canopies {
		c := &area.Canopies[i]
		if !c.Options.FireSuppression && c.FireSuppression == nil {
			continue
		}
		if slot >= MaxFireSuppPerSheet {
			return fmt.Errorf("area %q has more suppression systems than a sheet takes", area.Name)
		}
		b := FireSuppBlockAt(slot)
		slot++

		if err := w.SetText(b.Ref(), c.Reference); err != nil {
			return err
		}
		if c.FireSuppression == nil {
			continue
		}
		if err := w.SetText(b.SystemType(), c.FireSuppression.SystemType); err != nil {
			return err
		}
		if err := w.SetText(b.TankInstall(), c.FireSuppression.TankInstall); err != nil {
			return err
		}
		if err := w.SetNumber(b.Price(), c.FireSuppression.Price); err != nil {
			return err
		}
		subtotal += c.FireSuppression.Price
	}

	if err := w.SetNumber(CellSheetTotal, subtotal); err != nil {
		return err
	}
	return writeDeliveryLocation(w, p)
}

// writeRecoAirSheet populates a RECOAIR sheet: one row per unit, shared
// price cell, flat pack and the sheet-wide delivery/commissioning figures.
func writeRecoAirSheet(w *SheetWriter, p *Project, ref SheetRef, area *Area, areaIndex int) error {
	if err := writeSheetHeader(w, ref, p); err != nil {
		return err
	}

	if err := w.SetText(CellRecoAirItemRef, fmt.Sprintf("%d.%02d", ref.LevelIndex, areaIndex+1)); err != nil {
		return err
	}

	var delivery, commissioning float64
	for i := range area.RecoAirUnits {
		u := &area.RecoAirUnits[i]
		r := RecoAirRowAt(i)

		if err := w.Set(r.Selection(), u.Quantity); err != nil {
			return err
		}
		if err := w.SetText(r.Model(), u.Model); err != nil {
			return err
		}
		if err := w.SetNumber(r.ExtractVolume(), u.ExtractVolume); err != nil {
			return err
		}
		if err := w.SetNumber(r.Width(), float64(u.Width)); err != nil {
			return err
		}
		if err := w.SetNumber(r.Length(), float64(u.Length)); err != nil {
			return err
		}
		if err := w.SetNumber(r.Height(), float64(u.Height)); err != nil {
			return err
		}
		if err := w.SetText(r.Location(), u.Location); err != nil {
			return err
		}
		delivery += u.Delivery
		commissioning += u.Commissioning
	}

	if len(area.RecoAirUnits) > 0 {
		if err := w.SetNumber(CellRecoAirUnitPrice, area.RecoAirUnits[0].Price); err != nil {
			return err
		}
	}
	if area.FlatPack != nil {
		if err := w.SetText(CellFlatPackDescription, area.FlatPack.Description); err != nil {
			return err
		}
		if err := w.SetNumber(CellFlatPackPrice, area.FlatPack.Price); err != nil {
			return err
		}
	}
	if err := w.SetNumber(CellDeliveryInstallation, delivery+commissioning); err != nil {
		return err
	}
	if err := w.SetNumber(ref.Kind.CommissioningCell(), commissioning); err != nil {
		return err
	}
	return writeDeliveryLocation(w, p)
}

// writeSDUSheet populates the services-distribution-unit sheet for an area.
// Normalization has already folded legacy per-canopy units into one.
func writeSDUSheet(w *SheetWriter, p *Project, ref SheetRef, area *Area) error {
	if err := writeSheetHeader(w, ref, p); err != nil {
		return err
	}

	sdu := &area.SDUs[0]
	if err := w.SetText(CellSDUItemRef, sdu.CanopyRef); err != nil {
		return err
	}
	if err := w.SetText(CellSDUModel, sdu.Model); err != nil {
		return err
	}
	if err := w.SetNumber(CellSDUPrice, sdu.Price); err != nil {
		return err
	}

	counts := []struct {
		cell string
		n    int
	}{
		{CellSDUDistributionBoard, sdu.Electrical.DistributionBoard},
		{CellSDUSinglePhaseSpur, sdu.Electrical.SinglePhaseSpur},
		{CellSDUThreePhaseIsolator, sdu.Electrical.ThreePhaseIsolator},
		{CellSDUGasManifold, sdu.Gas.Manifold},
		{CellSDUGasConnection15, sdu.Gas.Connection15},
		{CellSDUGasConnection20, sdu.Gas.Connection20},
		{CellSDUWaterManifold22, sdu.Water.Manifold22},
		{CellSDUWaterManifoldHW, sdu.Water.ManifoldHW},
		{CellSDUWaterConnection15, sdu.Water.Connection15},
	}
	for _, c := range counts {
		if err := w.SetNumber(c.cell, float64(c.n)); err != nil {
			return err
		}
	}
	return nil
}

// writeJobTotalSheet stamps metadata and the computed rollup into the
// ground-truth sheet. The totals mirror across the sheet's two panes.
func writeJobTotalSheet(f *excelize.File, p *Project) error {
	w, err := NewSheetWriter(f, string(KindJobTotal))
	if err != nil {
		return err
	}
	if err := writeSheetHeader(w, SheetRef{Kind: KindJobTotal}, p); err != nil {
		return err
	}

	totals := ComputeTotals(p)
	for _, cell := range []string{CellJobTotalWithFlatPack, "C28"} {
		if err := w.Set(cell, totals.TotalIncludingFlatPack); err != nil {
			return err
		}
	}
	for _, cell := range []string{CellJobTotalNoFlatPack, "T28"} {
		if err := w.Set(cell, totals.TotalExcludingFlatPack); err != nil {
			return err
		}
	}
	return nil
}

// writeProjectDataSheet fills the hidden metadata sheet the reader prefers
// over re-deriving header text.
func writeProjectDataSheet(f *excelize.File, p *Project) error {
	idx, err := f.GetSheetIndex(string(KindProjectData))
	if err != nil || idx == -1 {
		// Older template revisions lack the sheet; nothing to carry.
		return nil
	}
	w, err := NewSheetWriter(f, string(KindProjectData))
	if err != nil {
		return err
	}
	values := map[int]string{
		ProjectDataCompanyRow:      p.Company,
		ProjectDataAddressRow:      p.Address,
		ProjectDataEstimatorRow:    p.Estimator,
		ProjectDataRankRow:         p.EstimatorRank,
		ProjectDataSalesContactRow: p.SalesContact,
		ProjectDataLocationRow:     p.DeliveryLocation,
	}
	for row, value := range values {
		if err := w.Set(cellRef("A", row), projectDataLabels[row]); err != nil {
			return err
		}
		if err := w.SetText(cellRef("B", row), value); err != nil {
			return err
		}
	}
	return nil
}

// writeContractSheets unhides and stamps the contract-class singletons an
// option asks for, when the template carries them.
func writeContractSheets(f *excelize.File, p *Project) error {
	wantMarvel, wantVentClg := false, false
	for _, level := range p.Levels {
		for _, area := range level.Areas {
			wantMarvel = wantMarvel || area.Options.Marvel
			wantVentClg = wantVentClg || area.Options.VentClg
		}
	}

	stamps := []struct {
		kind SheetKind
		want bool
	}{
		{KindMarvel, wantMarvel},
		{KindVentClg, wantVentClg},
	}
	for _, s := range stamps {
		if !s.want {
			continue
		}
		idx, err := f.GetSheetIndex(string(s.kind))
		if err != nil || idx == -1 {
			continue
		}
		if err := f.SetSheetVisible(string(s.kind), true); err != nil {
			return fmt.Errorf("unhide %s: %w", s.kind, err)
		}
		w, err := NewSheetWriter(f, string(s.kind))
		if err != nil {
			return err
		}
		if err := writeSheetHeader(w, SheetRef{Kind: s.kind}, p); err != nil {
			return err
		}
	}
	return nil
}

// writeDeliveryLocation stamps the delivery cell unless the project still
// holds the dropdown placeholder.
func writeDeliveryLocation(w *SheetWriter, p *Project) error {
	loc := p.DeliveryLocation
	if loc == "" || loc == DeliveryLocationPlaceholder {
		return nil
	}
	return w.SetText(CellDeliveryLocation, loc)
}

// writeFigure writes a display figure: numeric strings land as numbers so
// the sheet can format them, anything else (the placeholder included) lands
// as text.
func writeFigure(w *SheetWriter, cell, figure string) error {
	if figure == "" {
		return nil
	}
	if n, err := strconv.ParseFloat(figure, 64); err == nil {
		return w.Set(cell, n)
	}
	return w.SetText(cell, figure)
}

// orderWorkbookSheets applies the tab order: area groups, then the
// remaining sheets, then JOB TOTAL, then Lists.
func orderWorkbookSheets(f *excelize.File) {
	ordered := OrderSheets(f.GetSheetList())
	for i := len(ordered) - 2; i >= 0; i-- {
		f.MoveSheet(ordered[i], ordered[i+1])
	}
}
