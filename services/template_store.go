package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// TemplateSource supplies the master template workbook a generation run
// starts from. Template versioning lives outside this repo; a source only
// has to hand back an open workbook the writer may mutate and own.
type TemplateSource interface {
	Template() (*excelize.File, error)
}

// DirTemplateSource serves the latest .xlsx revision from a directory,
// falling back to the built-in master when the directory has none. Revisions
// are ranked by the R-number in the filename ("... R19.2.xlsx"); files
// without one rank below versioned files, modification time breaks ties.
type DirTemplateSource struct {
	Dir string
}

// Template opens the highest-revision workbook in the directory.
func (s DirTemplateSource) Template() (*excelize.File, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return BuildTemplateWorkbook()
		}
		return nil, fmt.Errorf("read template dir %s: %w", s.Dir, err)
	}

	type rev struct {
		name         string
		major, minor int
		versioned    bool
		mod          int64
	}
	var revs []rev
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".xlsx") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		r := rev{name: e.Name(), mod: info.ModTime().UnixNano()}
		r.major, r.minor, r.versioned = templateVersion(e.Name())
		revs = append(revs, r)
	}
	if len(revs) == 0 {
		return BuildTemplateWorkbook()
	}
	sort.Slice(revs, func(i, j int) bool {
		a, b := revs[i], revs[j]
		if a.versioned != b.versioned {
			return a.versioned
		}
		if a.major != b.major {
			return a.major > b.major
		}
		if a.minor != b.minor {
			return a.minor > b.minor
		}
		return a.mod > b.mod
	})

	path := filepath.Join(s.Dir, revs[0].name)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open template %s: %w", path, err)
	}
	return f, nil
}

// templateVersion extracts the template revision from a filename, e.g.
// "Cost Sheet R19.2.xlsx" -> (19, 2). A bare "R19" counts as 19.0.
func templateVersion(name string) (major, minor int, ok bool) {
	upper := strings.ToUpper(name)
	for i := 0; i < len(upper); i++ {
		if upper[i] != 'R' {
			continue
		}
		j := i + 1
		for j < len(upper) && upper[j] >= '0' && upper[j] <= '9' {
			j++
		}
		if j == i+1 {
			continue
		}
		major, _ = strconv.Atoi(upper[i+1 : j])
		if j < len(upper) && upper[j] == '.' {
			k := j + 1
			for k < len(upper) && upper[k] >= '0' && upper[k] <= '9' {
				k++
			}
			if k > j+1 {
				minor, _ = strconv.Atoi(upper[j+1 : k])
			}
		}
		return major, minor, true
	}
	return 0, 0, false
}

// BuiltinTemplate generates the master workbook in code.
type BuiltinTemplate struct{}

// Template builds a fresh master workbook.
func (BuiltinTemplate) Template() (*excelize.File, error) {
	return BuildTemplateWorkbook()
}

// BuildTemplateWorkbook constructs the master cost-sheet workbook: one
// hidden template sheet per equipment family, the JOB TOTAL rollup, the
// hidden Lists catalogue and the hidden ProjectData sheet. The writer
// copies and unhides family masters per area.
func BuildTemplateWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()

	// The default sheet becomes JOB TOTAL so the workbook always has one
	// visible sheet.
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, string(KindJobTotal)); err != nil {
		f.Close()
		return nil, fmt.Errorf("name job total sheet: %w", err)
	}
	buildJobTotalSheet(f)

	for _, kind := range []SheetKind{KindCanopy, KindCanopyUV, KindEbox} {
		if err := newMasterSheet(f, kind); err != nil {
			f.Close()
			return nil, err
		}
		buildCanopyMaster(f, string(kind))
	}
	if err := newMasterSheet(f, KindFireSupp); err != nil {
		f.Close()
		return nil, err
	}
	buildFireSuppMaster(f, string(KindFireSupp))

	if err := newMasterSheet(f, KindRecoAir); err != nil {
		f.Close()
		return nil, err
	}
	buildRecoAirMaster(f, string(KindRecoAir))

	if err := newMasterSheet(f, KindSDU); err != nil {
		f.Close()
		return nil, err
	}
	buildSDUMaster(f, string(KindSDU))

	buildListsSheet(f)
	buildProjectDataSheet(f)

	return f, nil
}

func newMasterSheet(f *excelize.File, kind SheetKind) error {
	if _, err := f.NewSheet(string(kind)); err != nil {
		return fmt.Errorf("create %s master: %w", kind, err)
	}
	f.SetSheetVisible(string(kind), false)
	return nil
}

// buildCanopyMaster lays out a canopy-family master: header block, ten
// 17-row unit blocks with placeholders and dropdowns, rollup cells.
func buildCanopyMaster(f *excelize.File, sheet string) {
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	})
	priceStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
		NumFmt: 4, // #,##0.00
	})

	f.SetCellValue(sheet, "B1", sheet)
	f.SetCellStyle(sheet, "B1", "B1", titleStyle)
	f.MergeCell(sheet, "B1", "L1")

	writeHeaderScaffold(f, sheet, unitHeader)

	// Unit blocks.
	for i := 0; i < MaxCanopiesPerSheet; i++ {
		b := CanopyBlockAt(i)
		f.SetCellValue(sheet, b.Ref(), PlaceholderRef)
		f.SetCellValue(sheet, b.Model(), PlaceholderModel)
		f.SetCellValue(sheet, b.Lighting(), PlaceholderLighting)
		f.SetCellStyle(sheet, b.Ref(), b.Ref(), labelStyle)
		f.SetCellStyle(sheet, b.CanopyPrice(), b.CladdingPrice(), priceStyle)

		addDropList(f, sheet, b.Configuration(), ConfigurationOptions)
		addDropList(f, sheet, b.Model(), ValidCanopyModels)
		addDropList(f, sheet, b.Lighting(), LightingOptions)
		for j := 0; j < 3; j++ {
			addDropList(f, sheet, b.SpecialWorks(j), SpecialWorksOptions)
		}
		addDropList(f, sheet, b.CladdingType(), CladdingTypeOptions)
		addDropList(f, sheet, b.WallCladding(), WallCladdingOptions)
	}

	f.SetCellValue(sheet, "B9", "SHEET TOTAL")
	f.SetCellStyle(sheet, "B9", "B9", labelStyle)
	f.SetCellValue(sheet, "B182", "DELIVERY & INSTALLATION")
	f.SetCellValue(sheet, "B183", "COMMISSIONING")
	addDropList(f, sheet, CellDeliveryLocation, append([]string{DeliveryLocationPlaceholder}, DeliveryLocationOptions...))

	f.SetColWidth(sheet, "B", "B", 18)
	f.SetColWidth(sheet, "C", "D", 24)
	f.SetColWidth(sheet, "N", "N", 14)

	// Keep the header block on screen while scrolling unit blocks.
	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      0,
		YSplit:      CanopyFirstRow - 1,
		TopLeftCell: fmt.Sprintf("A%d", CanopyFirstRow),
		ActivePane:  "bottomLeft",
	})
}

// buildFireSuppMaster lays out the fire-suppression master, sharing the
// canopy stride so unit references line up row-for-row.
func buildFireSuppMaster(f *excelize.File, sheet string) {
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	f.SetCellValue(sheet, "B1", sheet)
	f.SetCellStyle(sheet, "B1", "B1", titleStyle)
	f.MergeCell(sheet, "B1", "L1")

	writeHeaderScaffold(f, sheet, unitHeader)

	for i := 0; i < MaxFireSuppPerSheet; i++ {
		b := FireSuppBlockAt(i)
		f.SetCellValue(sheet, b.Ref(), PlaceholderRef)
		addDropList(f, sheet, b.SystemType(), FireSystemTypeOptions)
		addDropList(f, sheet, b.TankInstall(), TankInstallOptions)
	}

	f.SetCellValue(sheet, "B9", "SHEET TOTAL")
	f.SetCellValue(sheet, "B182", "DELIVERY & INSTALLATION")
	addDropList(f, sheet, CellDeliveryLocation, append([]string{DeliveryLocationPlaceholder}, DeliveryLocationOptions...))

	f.SetColWidth(sheet, "B", "B", 18)
	f.SetColWidth(sheet, "C", "C", 26)
}

// buildRecoAirMaster lays out the RECOAIR master: unit rows 14-28, shared
// price cell, flat-pack block, delivery/commissioning cells.
func buildRecoAirMaster(f *excelize.File, sheet string) {
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	})

	f.SetCellValue(sheet, "B1", sheet)
	f.SetCellStyle(sheet, "B1", "B1", titleStyle)
	f.MergeCell(sheet, "B1", "L1")

	writeHeaderScaffold(f, sheet, unitHeader)

	f.SetCellValue(sheet, "B12", "ITEM")
	f.SetCellStyle(sheet, "B12", "B12", labelStyle)

	headers := map[string]string{
		"C13": "MODEL",
		"D13": "EXTRACT m³/s",
		"E13": "QTY",
		"F13": "WIDTH",
		"G13": "LENGTH",
		"H13": "HEIGHT",
		"I13": "LOCATION",
	}
	for cell, text := range headers {
		f.SetCellValue(sheet, cell, text)
		f.SetCellStyle(sheet, cell, cell, labelStyle)
	}
	for i := RecoAirFirstRow; i <= RecoAirLastRow; i++ {
		r := RecoAirRow{Row: i}
		addDropList(f, sheet, r.Model(), RecoAirModelOptions)
		addDropList(f, sheet, r.Location(), RecoAirLocationOptions)
	}

	f.SetCellValue(sheet, "M12", "UNIT PRICE")
	f.SetCellValue(sheet, "B40", "FLAT PACK")
	f.MergeCell(sheet, CellFlatPackDescription, "M40")
	f.SetCellValue(sheet, "B182", "DELIVERY & INSTALLATION")
	f.SetCellValue(sheet, "B193", "COMMISSIONING")
	addDropList(f, sheet, CellDeliveryLocation, append([]string{DeliveryLocationPlaceholder}, DeliveryLocationOptions...))

	f.SetColWidth(sheet, "C", "C", 28)
	f.SetColWidth(sheet, "N", "N", 14)
}

// buildSDUMaster lays out the services-distribution-unit master with its
// electrical, gas and water service blocks.
func buildSDUMaster(f *excelize.File, sheet string) {
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 10},
	})

	f.SetCellValue(sheet, "B1", sheet)
	f.SetCellStyle(sheet, "B1", "B1", titleStyle)
	f.MergeCell(sheet, "B1", "L1")

	writeHeaderScaffold(f, sheet, sduHeader)

	f.SetCellValue(sheet, "B11", "ITEM")
	f.SetCellValue(sheet, "C11", "MODEL")
	f.SetCellValue(sheet, "M12", "PRICE")

	labels := map[string]string{
		"B15": "ELECTRICAL SERVICES",
		"B16": "Distribution board",
		"B17": "Single phase switched spur",
		"B18": "Three phase isolator",
		"E15": "GAS SERVICES",
		"E16": "Gas manifold",
		"E17": "Gas connection 15mm",
		"E18": "Gas connection 20mm",
		"H15": "WATER SERVICES",
		"H16": "CWS manifold 22mm",
		"H17": "HWS manifold",
		"H18": "Water connection 15mm",
	}
	for cell, text := range labels {
		f.SetCellValue(sheet, cell, text)
	}
	for _, cell := range []string{"B15", "E15", "H15"} {
		f.SetCellStyle(sheet, cell, cell, labelStyle)
	}

	f.SetColWidth(sheet, "B", "B", 26)
	f.SetColWidth(sheet, "E", "E", 22)
	f.SetColWidth(sheet, "H", "H", 22)
}

// buildJobTotalSheet lays out the rollup sheet. The total cells mirror
// across the sheet so the front page and the summary pane agree.
func buildJobTotalSheet(f *excelize.File) {
	sheet := string(KindJobTotal)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
	})

	f.SetCellValue(sheet, "B1", "JOB TOTAL")
	f.SetCellStyle(sheet, "B1", "B1", titleStyle)

	writeHeaderScaffold(f, sheet, jobTotalHeader)

	f.SetCellValue(sheet, "B24", "TOTAL (INC FLAT PACK)")
	f.SetCellValue(sheet, "S24", "TOTAL (EXC FLAT PACK)")
	f.SetCellValue(sheet, "B28", "TOTAL (INC FLAT PACK)")
	f.SetCellValue(sheet, "S28", "TOTAL (EXC FLAT PACK)")
	for _, cell := range []string{"B24", "S24", "B28", "S28"} {
		f.SetCellStyle(sheet, cell, cell, labelStyle)
	}

	f.SetColWidth(sheet, "B", "B", 26)
	f.SetColWidth(sheet, "C", "C", 16)
	f.SetColWidth(sheet, "S", "S", 26)
	f.SetColWidth(sheet, "T", "T", 16)
}

// buildListsSheet writes the dropdown catalogues into a hidden sheet, one
// catalogue per column.
func buildListsSheet(f *excelize.File) {
	sheet := string(KindLists)
	f.NewSheet(sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E5E7EB"}, Pattern: 1},
	})

	catalogues := []struct {
		name    string
		entries []string
	}{
		{"Lighting", LightingOptions},
		{"Special Works", SpecialWorksOptions},
		{"Cladding", CladdingTypeOptions},
		{"Configurations", ConfigurationOptions},
		{"Canopy Models", ValidCanopyModels},
		{"Fire Systems", FireSystemTypeOptions},
		{"Tank Installs", TankInstallOptions},
		{"RecoAir Models", RecoAirModelOptions},
		{"Unit Locations", RecoAirLocationOptions},
		{"Delivery Locations", DeliveryLocationOptions},
	}

	cols := columnLetters(len(catalogues))
	for i, cat := range catalogues {
		head := fmt.Sprintf("%s1", cols[i])
		f.SetCellValue(sheet, head, cat.name)
		f.SetCellStyle(sheet, head, head, headerStyle)
		for j, entry := range cat.entries {
			f.SetCellValue(sheet, fmt.Sprintf("%s%d", cols[i], j+2), entry)
		}
		f.SetColWidth(sheet, cols[i], cols[i], 24)
	}

	f.SetSheetVisible(sheet, false)
}

// buildProjectDataSheet writes the hidden label/value sheet that carries
// metadata with no cell of its own on the visible sheets.
func buildProjectDataSheet(f *excelize.File) {
	sheet := string(KindProjectData)
	f.NewSheet(sheet)
	for row, label := range projectDataLabels {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
	}
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "B", 40)
	f.SetSheetVisible(sheet, false)
}

// writeHeaderScaffold writes the label cells and merges the wide value
// fields of a sheet family's header block.
func writeHeaderScaffold(f *excelize.File, sheet string, h HeaderCells) {
	labels := []struct {
		value string
		text  string
	}{
		{h.ProjectNumber, "Job No"},
		{h.Customer, "Customer"},
		{h.Estimator, "Sales Manager / Estimator"},
		{h.ProjectName, "Project Name"},
		{h.Location, "Location"},
		{h.Date, "Date"},
		{h.Revision, "Revision"},
	}
	for _, l := range labels {
		if l.value == "" {
			continue
		}
		col, row, err := excelize.CellNameToCoordinates(l.value)
		if err != nil || col < 2 {
			continue
		}
		labelCell, err := excelize.CoordinatesToCellName(col-1, row)
		if err != nil {
			continue
		}
		f.SetCellValue(sheet, labelCell, l.text)
	}

	// Wide value fields merge across three columns.
	for _, value := range []string{h.ProjectNumber, h.Customer, h.Estimator, h.ProjectName, h.Location, h.Date} {
		if value == "" {
			continue
		}
		col, row, err := excelize.CellNameToCoordinates(value)
		if err != nil {
			continue
		}
		end, err := excelize.CoordinatesToCellName(col+2, row)
		if err != nil {
			continue
		}
		f.MergeCell(sheet, value, end)
	}
}

// addDropList attaches an in-cell dropdown, trimming the option list to
// Excel's 255-character inline formula limit.
func addDropList(f *excelize.File, sheet, cell string, options []string) {
	dv := excelize.NewDataValidation(true)
	dv.Sqref = fmt.Sprintf("%s:%s", cell, cell)
	if err := dv.SetDropList(fitDropList(options)); err != nil {
		return
	}
	f.AddDataValidation(sheet, dv)
}

// fitDropList drops trailing options until the joined inline list fits the
// 255-character formula limit, leaving a little headroom the way the
// estimating templates always have.
func fitDropList(options []string) []string {
	const budget = 250
	length := 0
	for i, opt := range options {
		length += len(opt) + 1
		if length > budget {
			return options[:i]
		}
	}
	return options
}

// thinBorders returns excelize borders for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}

// columnLetters returns Excel column letters for n columns: A, B, ... Z, AA.
func columnLetters(n int) []string {
	cols := make([]string, n)
	for i := 0; i < n; i++ {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cols[i] = name
	}
	return cols
}
