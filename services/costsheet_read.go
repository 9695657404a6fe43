package services

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadResult carries everything one workbook read produces: the assembled
// project tree, the pricing reconciliation, and every recoverable problem
// found along the way.
type ReadResult struct {
	Project        *Project       `json:"project"`
	Reconciliation Reconciliation `json:"reconciliation"`
	Issues         []ReadIssue    `json:"issues,omitempty"`
}

// ReadCostSheet parses a cost-sheet workbook back into a project tree.
// Workbooks come back hand-edited, so field problems never abort the read;
// they surface in the result's issue list instead. Only a workbook that
// cannot be opened, or one with no recognisable sheets at all, is an error.
func ReadCostSheet(r io.Reader) (*ReadResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

// ReadCostSheetBytes parses an in-memory workbook.
func ReadCostSheetBytes(b []byte) (*ReadResult, error) {
	return ReadCostSheet(bytes.NewReader(b))
}

// areaSheets gathers every worksheet belonging to one area, in workbook
// order. SDU holds a slice because legacy workbooks carried one SDU tab per
// canopy.
type areaSheets struct {
	ref    SheetRef // identity; Kind is whichever sheet was seen first
	byKind map[SheetKind][]string
}

func (g *areaSheets) first(kind SheetKind) string {
	if names := g.byKind[kind]; len(names) > 0 {
		return names[0]
	}
	return ""
}

func readWorkbook(f *excelize.File) (*ReadResult, error) {
	issues := &ReadIssues{}

	var groups []*areaSheets
	byKey := map[string]*areaSheets{}
	for _, name := range f.GetSheetList() {
		ref, err := ParseSheetName(name)
		if err != nil || !ref.IsAreaSheet() {
			continue
		}
		g, ok := byKey[ref.AreaKey()]
		if !ok {
			g = &areaSheets{ref: ref, byKind: map[SheetKind][]string{}}
			byKey[ref.AreaKey()] = g
			groups = append(groups, g)
		}
		g.byKind[ref.Kind] = append(g.byKind[ref.Kind], name)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("workbook has no area sheets")
	}

	rd := &workbookReader{f: f, issues: issues, cladding: map[string]WallCladding{}}

	p := &Project{}
	rd.readMetadata(p, groups)

	for _, g := range groups {
		area := rd.readArea(g)
		level := levelFor(p, g.ref)
		level.Areas = append(level.Areas, area)
	}

	rd.readProjectData(p)
	if p.DeliveryLocation == "" {
		p.DeliveryLocation = rd.deliveryLocation
	}
	rd.attachCladding(p)

	NormalizeProject(p)

	totals := ComputeTotals(p)
	job := rd.readJobTotal()
	rec := ReconcileTotals(totals, job, rd.checks)

	return &ReadResult{Project: p, Reconciliation: rec, Issues: issues.All()}, nil
}

// levelFor finds or creates the level a sheet ref belongs to, keeping the
// workbook's level order.
func levelFor(p *Project, ref SheetRef) *Level {
	for i := range p.Levels {
		if p.Levels[i].Index == ref.LevelIndex && p.Levels[i].Name == ref.LevelName {
			return &p.Levels[i]
		}
	}
	p.Levels = append(p.Levels, Level{Name: ref.LevelName, Index: ref.LevelIndex})
	return &p.Levels[len(p.Levels)-1]
}

// workbookReader walks one workbook's sheets, accumulating issues, subtotal
// checks and the cross-sheet cladding summary as it goes.
type workbookReader struct {
	f                *excelize.File
	issues           *ReadIssues
	checks           []SheetCheck
	cladding         map[string]WallCladding // canopy reference -> summary entry
	deliveryLocation string
}

func (rd *workbookReader) cells(sheet string) *SheetCells {
	return NewSheetCells(rd.f, sheet, rd.issues)
}

// readMetadata pulls the project header from the first area sheet carrying
// one, falling back to JOB TOTAL.
func (rd *workbookReader) readMetadata(p *Project, groups []*areaSheets) {
	var sheet string
	var header HeaderCells
	for _, g := range groups {
		for _, kind := range AreaKinds {
			if name := g.first(kind); name != "" && kind.Header().ProjectNumber != "" {
				sheet, header = name, kind.Header()
				break
			}
		}
		if sheet != "" {
			break
		}
	}
	if sheet == "" {
		if idx, err := rd.f.GetSheetIndex(string(KindJobTotal)); err == nil && idx != -1 {
			sheet, header = string(KindJobTotal), KindJobTotal.Header()
		}
	}
	if sheet == "" {
		rd.issues.AddSheet("workbook", "no sheet carries project metadata")
		return
	}

	c := rd.cells(sheet)
	p.ProjectNumber = c.Text(header.ProjectNumber, "project number")
	p.Customer = c.Text(header.Customer, "customer")
	p.Estimator = c.Text(header.Estimator, "estimator")
	p.ProjectName = c.Text(header.ProjectName, "project name")
	p.Location = c.Text(header.Location, "location")
	p.Date = c.Text(header.Date, "date")
	p.Revision = c.Text(header.Revision, "revision")
}

// readArea assembles one area from its sheet group.
func (rd *workbookReader) readArea(g *areaSheets) Area {
	area := Area{Name: g.ref.AreaName}

	canopySheet := g.first(KindCanopy)
	if canopySheet != "" {
		rd.readCanopySheet(canopySheet, &area)
	}
	if uv := g.first(KindCanopyUV); uv != "" {
		rd.readUVSheet(uv, canopySheet, &area)
	}
	if fs := g.first(KindFireSupp); fs != "" {
		rd.readFireSuppSheet(fs, &area)
	}
	if ra := g.first(KindRecoAir); ra != "" {
		rd.readRecoAirSheet(ra, &area)
	}
	sduSheets := g.byKind[KindSDU]
	if len(sduSheets) > 1 {
		rd.issues.AddSheet(sduSheets[1], fmt.Sprintf("area %q has %d SDU sheets; units will be merged", g.ref.AreaName, len(sduSheets)))
	}
	for _, sdu := range sduSheets {
		rd.readSDUSheet(sdu, &area)
	}

	rd.checkOptionLabels(g, &area)
	return area
}

// checkOptionLabels cross-checks the option labels stamped on canopy blocks
// against the sheets the area actually has, in both directions.
func (rd *workbookReader) checkOptionLabels(g *areaSheets, area *Area) {
	var labelled CanopyOptions
	for _, c := range area.Canopies {
		labelled.FireSuppression = labelled.FireSuppression || c.Options.FireSuppression
		labelled.UVC = labelled.UVC || c.Options.UVC
		labelled.SDU = labelled.SDU || c.Options.SDU
		labelled.RecoAir = labelled.RecoAir || c.Options.RecoAir
	}
	canopySheet := g.first(KindCanopy)
	if canopySheet == "" {
		return
	}
	report := func(flagged, present bool, kind SheetKind) {
		switch {
		case flagged && !present:
			rd.issues.AddSheet(canopySheet, fmt.Sprintf("canopy flags the %s option but the area has no %s sheet", kind, kind))
		case present && !flagged && len(area.Canopies) > 0:
			rd.issues.AddSheet(canopySheet, fmt.Sprintf("area has a %s sheet but no canopy flags the option", kind))
		}
	}
	report(labelled.FireSuppression, g.first(KindFireSupp) != "", KindFireSupp)
	report(labelled.UVC, g.first(KindCanopyUV) != "", KindCanopyUV)
	report(labelled.SDU, len(g.byKind[KindSDU]) > 0, KindSDU)
	report(labelled.RecoAir, g.first(KindRecoAir) != "", KindRecoAir)
}

// readCanopySheet fills the area's canopies, delivery figures and the
// sheet's slice of the cladding summary.
func (rd *workbookReader) readCanopySheet(sheet string, area *Area) {
	c := rd.cells(sheet)

	subtotal := 0.0
	for i := 0; i < MaxCanopiesPerSheet; i++ {
		b := CanopyBlockAt(i)
		ref := c.Text(b.Ref(), "canopy reference")
		if ref == "" || strings.EqualFold(ref, PlaceholderRef) {
			// Slots fill from the top without gaps, so the scan stops here.
			break
		}

		canopy := Canopy{
			Reference:     ref,
			Configuration: c.Text(b.Configuration(), "configuration"),
			Model:         c.Text(b.Model(), "model"),
			Width:         c.Number(b.Width(), "width"),
			Length:        c.Number(b.Length(), "length"),
			Height:        c.Number(b.Height(), "height"),
			Sections:      c.Int(b.Sections(), "sections"),
			ExtractVolume: c.Text(b.ExtractVolume(), "extract volume"),
			ExtractStatic: c.Text(b.ExtractStatic(), "extract static"),
			MUAVolume:     c.Text(b.MUAVolume(), "mua volume"),
			SupplyStatic:  c.Text(b.SupplyStatic(), "supply static"),
			CanopyPrice:   c.Number(b.CanopyPrice(), "canopy price"),
			CladdingPrice: c.Number(b.CladdingPrice(), "cladding price"),
		}
		if strings.EqualFold(canopy.Model, PlaceholderModel) {
			canopy.Model = ""
			rd.issues.Add(sheet, b.Model(), "model", "canopy has no model selected")
		}

		if lighting := c.Text(b.Lighting(), "lighting"); !strings.EqualFold(lighting, PlaceholderLighting) {
			canopy.Lighting = lighting
		}
		for j := 0; j < 3; j++ {
			if work := c.Text(b.SpecialWorks(j), "special works"); work != "" {
				canopy.SpecialWorks = append(canopy.SpecialWorks, work)
			}
		}
		canopy.CladdingType = c.Text(b.CladdingType(), "cladding type")
		if c.Text(b.WallCladding(), "wall cladding") == CladdingMarkerValue {
			canopy.WallCladding = &WallCladding{}
		}

		if canopy.IsWashCanopy() {
			canopy.Wash = &WashCapabilities{
				ColdWaterSupply: c.Text(b.ColdWaterSupply(), "cold water supply"),
				HotWaterSupply:  c.Text(b.HotWaterSupply(), "hot water supply"),
				HotWaterStorage: c.Text(b.HotWaterStorage(), "hot water storage"),
			}
		}

		if fsPrice := c.Number(b.FireSuppPrice(), "fire suppression price"); fsPrice != 0 {
			canopy.FireSuppression = &FireSuppression{Price: fsPrice}
			subtotal += fsPrice
		}

		canopy.Options.FireSuppression = c.Text(b.OptionFireSuppression(), "") == OptionLabelFireSuppression
		canopy.Options.UVC = c.Text(b.OptionUV(), "") == OptionLabelUV
		canopy.Options.SDU = c.Text(b.OptionSDU(), "") == OptionLabelSDU
		canopy.Options.RecoAir = c.Text(b.OptionRecoAir(), "") == OptionLabelRecoAir

		subtotal += canopy.CanopyPrice + canopy.CladdingPrice
		area.Canopies = append(area.Canopies, canopy)
	}

	commissioning := c.Number(CellCommissioning, "commissioning")
	area.CommissioningPrice = commissioning
	area.DeliveryInstallationPrice = DeliveryPrice(c.Number(CellDeliveryInstallation, "delivery & installation"), commissioning)

	if loc := c.Text(CellDeliveryLocation, "delivery location"); loc != "" && loc != DeliveryLocationPlaceholder && rd.deliveryLocation == "" {
		rd.deliveryLocation = loc
	}

	rd.checks = append(rd.checks, SheetCheck{
		Sheet:    sheet,
		Cell:     c.Number(CellSheetTotal, "sheet subtotal"),
		Computed: subtotal,
	})

	rd.readCladdingSummary(c)
}

// readCladdingSummary collects the sheet's summary rows into the
// cross-sheet map; entries attach to canopies by reference once every sheet
// is in.
func (rd *workbookReader) readCladdingSummary(c *SheetCells) {
	for row := CladdingSummaryFirstRow; row <= CladdingSummaryLastRow; row++ {
		ref := c.Text(cellRef(CladdingItemCol, row), "cladding item")
		if ref == "" {
			continue
		}
		ref = strings.ToUpper(ref)
		entry := WallCladding{Positions: parseCladdingPositions(c.Text(cellRef(CladdingPositionsCol, row), "cladding positions"))}
		dims := c.Text(cellRef(CladdingDimensionsCol, row), "cladding dimensions")
		var ok bool
		entry.Width, entry.Height, ok = parseCladdingDimensions(dims)
		if !ok && dims != "" {
			rd.issues.Add(c.Sheet(), cellRef(CladdingDimensionsCol, row), "cladding dimensions",
				fmt.Sprintf("want WIDTHxHEIGHT, got %q", dims))
		}
		rd.cladding[ref] = entry
	}
}

// attachCladding resolves the collected summary entries against the
// assembled canopies.
func (rd *workbookReader) attachCladding(p *Project) {
	matched := map[string]bool{}
	for li := range p.Levels {
		for ai := range p.Levels[li].Areas {
			area := &p.Levels[li].Areas[ai]
			for ci := range area.Canopies {
				canopy := &area.Canopies[ci]
				ref := strings.ToUpper(strings.TrimSpace(canopy.Reference))
				entry, ok := rd.cladding[ref]
				if !ok {
					continue
				}
				matched[ref] = true
				wc := entry
				canopy.WallCladding = &wc
			}
		}
	}
	for ref := range rd.cladding {
		if !matched[ref] {
			rd.issues.AddSheet("cladding summary", fmt.Sprintf("entry %q matches no canopy", ref))
		}
	}
}

// readUVSheet recovers the UV-C extra-over premium: the UV sheet's subtotal
// less its companion canopy sheet's.
func (rd *workbookReader) readUVSheet(sheet, canopySheet string, area *Area) {
	area.Options.UVC = true
	if canopySheet == "" {
		rd.issues.AddSheet(sheet, "UV sheet has no companion canopy sheet")
		return
	}
	c := rd.cells(sheet)
	base := rd.cells(canopySheet)
	extra := c.Number(CellSheetTotal, "sheet subtotal") - base.Number(CellSheetTotal, "sheet subtotal")
	switch {
	case extra > 0:
		area.UVExtraOverPrice = extra
		area.Options.UVExtraOver = true
	case extra < 0:
		rd.issues.Add(sheet, CellSheetTotal, "sheet subtotal", "UV subtotal is below the canopy sheet's")
	}
}

// readFireSuppSheet fills suppression details onto the area's canopies,
// matched by reference.
func (rd *workbookReader) readFireSuppSheet(sheet string, area *Area) {
	area.Options.FireSuppression = true
	c := rd.cells(sheet)

	subtotal := 0.0
	for i := 0; i < MaxFireSuppPerSheet; i++ {
		b := FireSuppBlockAt(i)
		ref := c.Text(b.Ref(), "canopy reference")
		if ref == "" || strings.EqualFold(ref, PlaceholderRef) {
			break
		}

		canopy := findCanopy(area, ref)
		if canopy == nil {
			rd.issues.Add(sheet, b.Ref(), "canopy reference",
				fmt.Sprintf("suppression system references unknown canopy %q", ref))
			continue
		}
		if canopy.FireSuppression == nil {
			canopy.FireSuppression = &FireSuppression{}
		}
		fs := canopy.FireSuppression
		fs.SystemType = c.Text(b.SystemType(), "system type")
		fs.TankInstall = c.Text(b.TankInstall(), "tank install")
		fs.TankQuantity = ParseTankQuantity(fs.TankInstall)
		if price := c.Number(b.Price(), "price"); price != 0 {
			fs.Price = price
		}
		canopy.Options.FireSuppression = true
		subtotal += fs.Price
	}

	rd.checks = append(rd.checks, SheetCheck{
		Sheet:    sheet,
		Cell:     c.Number(CellSheetTotal, "sheet subtotal"),
		Computed: subtotal,
	})
}

func findCanopy(area *Area, ref string) *Canopy {
	for i := range area.Canopies {
		if strings.EqualFold(area.Canopies[i].Reference, ref) {
			return &area.Canopies[i]
		}
	}
	return nil
}

// readRecoAirSheet reads the selected unit rows and spreads the sheet's
// delivery and commissioning figures equally across them.
func (rd *workbookReader) readRecoAirSheet(sheet string, area *Area) {
	area.Options.RecoAir = true
	c := rd.cells(sheet)

	price := c.Number(CellRecoAirUnitPrice, "unit price")
	for i := 0; i <= RecoAirLastRow-RecoAirFirstRow; i++ {
		r := RecoAirRowAt(i)
		qty := c.Int(r.Selection(), "selection")
		if qty < 1 {
			continue
		}
		area.RecoAirUnits = append(area.RecoAirUnits, RecoAirUnit{
			Model:         c.Text(r.Model(), "model"),
			Quantity:      qty,
			ExtractVolume: c.Number(r.ExtractVolume(), "extract volume"),
			Width:         c.Int(r.Width(), "width"),
			Length:        c.Int(r.Length(), "length"),
			Height:        c.Int(r.Height(), "height"),
			Location:      c.Text(r.Location(), "location"),
			Price:         price,
		})
	}

	if desc, flat := c.Text(CellFlatPackDescription, "flat pack description"), c.Number(CellFlatPackPrice, "flat pack price"); desc != "" || flat != 0 {
		area.FlatPack = &FlatPack{Description: desc, Price: flat}
	}

	commissioning := c.Number(KindRecoAir.CommissioningCell(), "commissioning")
	delivery := DeliveryPrice(c.Number(CellDeliveryInstallation, "delivery & installation"), commissioning)
	if n := len(area.RecoAirUnits); n > 0 {
		for i := range area.RecoAirUnits {
			area.RecoAirUnits[i].Delivery = delivery / float64(n)
			area.RecoAirUnits[i].Commissioning = commissioning / float64(n)
		}
	} else if delivery != 0 || commissioning != 0 {
		rd.issues.AddSheet(sheet, "delivery figures present but no unit rows selected")
	}
}

// readSDUSheet reads one services-distribution-unit sheet into the area.
// Legacy workbooks carry one tab per canopy; normalization merges the units
// afterwards.
func (rd *workbookReader) readSDUSheet(sheet string, area *Area) {
	area.Options.SDU = true
	c := rd.cells(sheet)

	sdu := SDUUnit{
		CanopyRef: c.Text(CellSDUItemRef, "canopy reference"),
		Model:     c.Text(CellSDUModel, "model"),
		Price:     c.Number(CellSDUPrice, "price"),
	}
	if sdu.CanopyRef == "" {
		// Legacy per-canopy tabs carry the reference in the name instead.
		if ref, err := ParseSheetName(sheet); err == nil {
			sdu.CanopyRef = ref.CanopyRef
		}
	}
	sdu.Electrical = SDUElectrical{
		DistributionBoard:  c.Int(CellSDUDistributionBoard, "distribution board"),
		SinglePhaseSpur:    c.Int(CellSDUSinglePhaseSpur, "single phase switched spur"),
		ThreePhaseIsolator: c.Int(CellSDUThreePhaseIsolator, "three phase isolator"),
	}
	sdu.Gas = SDUGas{
		Manifold:     c.Int(CellSDUGasManifold, "gas manifold"),
		Connection15: c.Int(CellSDUGasConnection15, "15mm gas connection"),
		Connection20: c.Int(CellSDUGasConnection20, "20mm gas connection"),
	}
	sdu.Water = SDUWater{
		Manifold22:   c.Int(CellSDUWaterManifold22, "22mm cws manifold"),
		ManifoldHW:   c.Int(CellSDUWaterManifoldHW, "hws manifold"),
		Connection15: c.Int(CellSDUWaterConnection15, "15mm water connection"),
	}
	area.SDUs = append(area.SDUs, sdu)
}

// readProjectData overlays the hidden metadata sheet, which carries the
// fields the visible headers abbreviate or omit.
func (rd *workbookReader) readProjectData(p *Project) {
	idx, err := rd.f.GetSheetIndex(string(KindProjectData))
	if err != nil || idx == -1 {
		return
	}
	c := rd.cells(string(KindProjectData))

	assign := func(row int, dst *string) {
		if v := c.Text(cellRef("B", row), projectDataLabels[row]); v != "" {
			*dst = v
		}
	}
	assign(ProjectDataCompanyRow, &p.Company)
	assign(ProjectDataAddressRow, &p.Address)
	assign(ProjectDataEstimatorRow, &p.Estimator)
	assign(ProjectDataRankRow, &p.EstimatorRank)
	assign(ProjectDataSalesContactRow, &p.SalesContact)
	assign(ProjectDataLocationRow, &p.DeliveryLocation)
}

// readJobTotal reads the workbook's own rollup cells.
func (rd *workbookReader) readJobTotal() JobTotalCells {
	idx, err := rd.f.GetSheetIndex(string(KindJobTotal))
	if err != nil || idx == -1 {
		rd.issues.AddSheet(string(KindJobTotal), "sheet missing; job totals unavailable")
		return JobTotalCells{}
	}
	c := rd.cells(string(KindJobTotal))
	return JobTotalCells{
		IncludingFlatPack: c.Number(CellJobTotalWithFlatPack, "total including flat pack"),
		ExcludingFlatPack: c.Number(CellJobTotalNoFlatPack, "total excluding flat pack"),
	}
}

// parseCladdingDimensions splits "1000X2100" into width and height.
func parseCladdingDimensions(s string) (width, height int, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0, false
	}
	parts := strings.SplitN(strings.ToUpper(s), "X", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, errW := strconv.Atoi(strings.TrimSpace(parts[0]))
	h, errH := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errW != nil || errH != nil {
		return 0, 0, false
	}
	return w, h, true
}

// parseCladdingPositions splits the "/"-joined position key back into its
// parts.
func parseCladdingPositions(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "/") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
