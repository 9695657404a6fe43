package services

import "fmt"

// The cost-sheet template family uses fixed cell coordinates. Everything the
// readers and writers know about where a field lives is declared here, so a
// template revision means editing this file and nothing else.

// SheetKind identifies the worksheet family a sheet belongs to. The value is
// the tab-name prefix for area sheets and the literal tab name for workbook
// singletons (JOB TOTAL, Lists).
type SheetKind string

const (
	KindCanopy      SheetKind = "CANOPY"
	KindCanopyUV    SheetKind = "CANOPY (UV)"
	KindFireSupp    SheetKind = "FIRE SUPP"
	KindEbox        SheetKind = "EBOX"
	KindRecoAir     SheetKind = "RECOAIR"
	KindSDU         SheetKind = "SDU"
	KindMarvel      SheetKind = "MARVEL"
	KindVentClg     SheetKind = "VENT CLG"
	KindSpiralDuct  SheetKind = "SPIRAL DUCT"
	KindSupplyDuct  SheetKind = "SUPPLY DUCT"
	KindExtractDuct SheetKind = "EXTRACT DUCT"
	KindContract    SheetKind = "CONTRACT"
	KindJobTotal    SheetKind = "JOB TOTAL"
	KindLists       SheetKind = "Lists"
	KindProjectData SheetKind = "ProjectData"
	KindUnknown     SheetKind = "UNKNOWN"
)

// AreaKinds lists the families that are instantiated once per area, in the
// order they appear within an area's sheet group.
var AreaKinds = []SheetKind{KindCanopy, KindCanopyUV, KindFireSupp, KindEbox, KindRecoAir, KindSDU}

// orderRank gives the within-area tab ordering: the plain canopy sheet
// leads, its UV variant follows, then the accessory families.
func (k SheetKind) orderRank() int {
	switch k {
	case KindCanopy:
		return 0
	case KindCanopyUV:
		return 1
	case KindFireSupp:
		return 2
	case KindEbox:
		return 3
	case KindRecoAir:
		return 4
	case KindSDU:
		return 5
	default:
		return 6
	}
}

// HeaderCells names the project-metadata cells of a sheet family. An empty
// address means the family has no cell for that field.
type HeaderCells struct {
	Title         string // "{Level} - {Area}" display title
	ProjectNumber string
	Customer      string
	Estimator     string // initials, not the full name
	ProjectName   string
	Location      string
	Date          string
	Revision      string
}

var (
	// Unit-class sheets: CANOPY, CANOPY (UV), FIRE SUPP, EBOX, RECOAIR.
	unitHeader = HeaderCells{
		Title:         "B1",
		ProjectNumber: "C3",
		Customer:      "C5",
		Estimator:     "C7",
		ProjectName:   "G3",
		Location:      "G5",
		Date:          "G7",
		Revision:      "O7",
	}

	// SDU sheets shift the two header columns one to the right.
	sduHeader = HeaderCells{
		Title:         "B1",
		ProjectNumber: "D3",
		Customer:      "D5",
		Estimator:     "D7",
		ProjectName:   "H3",
		Location:      "H5",
		Date:          "H7",
		Revision:      "O7",
	}

	// Contract-class sheets only carry the revision marker.
	contractHeader = HeaderCells{
		Revision: "K7",
	}

	// JOB TOTAL takes the unit-class metadata block with the contract-class
	// revision cell.
	jobTotalHeader = HeaderCells{
		ProjectNumber: "C3",
		Customer:      "C5",
		Estimator:     "C7",
		ProjectName:   "G3",
		Location:      "G5",
		Date:          "G7",
		Revision:      "K7",
	}

	// VENT CLG is its own animal: a compact header block in column H.
	ventClgHeader = HeaderCells{
		Customer:      "H3",
		ProjectNumber: "H4",
		Date:          "H5",
		Revision:      "K7",
	}
)

// Header returns the metadata cell map for the sheet family.
func (k SheetKind) Header() HeaderCells {
	switch k {
	case KindCanopy, KindCanopyUV, KindFireSupp, KindEbox, KindRecoAir:
		return unitHeader
	case KindSDU:
		return sduHeader
	case KindJobTotal:
		return jobTotalHeader
	case KindVentClg:
		return ventClgHeader
	case KindMarvel, KindSpiralDuct, KindSupplyDuct, KindExtractDuct, KindContract:
		return contractHeader
	default:
		return HeaderCells{}
	}
}

// Canopy sheets repeat a 17-row block per unit, model row first at row 14.
// Ten blocks fill the sheet exactly: the last ends on row 181, one above the
// delivery subtotal. Fire-suppression sheets share the stride but stop at
// six blocks.
const (
	CanopyFirstRow      = 14
	CanopyRowStride     = 17
	MaxCanopiesPerSheet = 10
	MaxFireSuppPerSheet = 6
)

// Sheet-wide cells shared by the area sheet families.
const (
	CellSheetTotal           = "N9"   // area subtotal for this sheet
	CellDeliveryInstallation = "N182" // delivery & installation subtotal
	CellCommissioning        = "N183" // commissioning on canopy-class sheets
	CellRecoAirCommissioning = "N193" // commissioning on RECOAIR sheets
	CellDeliveryLocation     = "D183"
)

// CommissioningCell returns the commissioning subtotal address for the
// family; RECOAIR keeps it lower down the sheet than the canopy family does.
func (k SheetKind) CommissioningCell() string {
	if k == KindRecoAir {
		return CellRecoAirCommissioning
	}
	return CellCommissioning
}

// RECOAIR sheets: one unit row per model slot, plus shared per-sheet cells.
const (
	RecoAirFirstRow = 14
	RecoAirLastRow  = 28

	CellRecoAirItemRef      = "C12"
	CellRecoAirUnitPrice    = "N12" // base price shared by every selected row
	CellFlatPackDescription = "D40"
	CellFlatPackPrice       = "N40"
)

// SDU sheets: one services-distribution unit per sheet.
const (
	CellSDUItemRef = "B12"
	CellSDUModel   = "C12"
	CellSDUPrice   = "N12"

	// Electrical services block.
	CellSDUDistributionBoard = "C16"
	CellSDUSinglePhaseSpur   = "C17"
	CellSDUThreePhaseIsolator = "C18"

	// Gas services block.
	CellSDUGasManifold     = "F16"
	CellSDUGasConnection15 = "F17"
	CellSDUGasConnection20 = "F18"

	// Water services block.
	CellSDUWaterManifold22 = "I16"
	CellSDUWaterManifoldHW = "I17"
	CellSDUWaterConnection15 = "I18"
)

// JOB TOTAL rollup cells. C24 is the canonical job total and includes
// flat-pack recovery; T24 carries the total without it.
const (
	CellJobTotalWithFlatPack = "C24"
	CellJobTotalNoFlatPack   = "T24"
)

// Wall-cladding summary block on canopy sheets. The marker value doubles as
// each block's cladding dropdown selection; the item column keys each
// summary row to the canopy it belongs to.
const (
	CladdingSummaryFirstRow = 19
	CladdingSummaryLastRow  = 24
	CladdingMarkerValue     = "2M² (HFL)"
	CladdingItemCol         = "O"
	CladdingDimensionsCol   = "P"
	CladdingPositionsCol    = "Q"
)

// CanopyBlock addresses one canopy entry on a CANOPY-family sheet. Base is
// the model/configuration row: 14, 31, 48 and so on, one stride apart.
type CanopyBlock struct {
	Base int
}

// CanopyBlockAt returns the i-th (0-based) block on a canopy sheet.
func CanopyBlockAt(i int) CanopyBlock {
	return CanopyBlock{Base: CanopyFirstRow + i*CanopyRowStride}
}

func (b CanopyBlock) Ref() string           { return cellRef("B", b.Base-2) }
func (b CanopyBlock) Configuration() string { return cellRef("C", b.Base) }
func (b CanopyBlock) Model() string         { return cellRef("D", b.Base) }
func (b CanopyBlock) Width() string         { return cellRef("E", b.Base) }
func (b CanopyBlock) Length() string        { return cellRef("F", b.Base) }
func (b CanopyBlock) Height() string        { return cellRef("G", b.Base) }
func (b CanopyBlock) Sections() string      { return cellRef("H", b.Base) }
func (b CanopyBlock) ExtractVolume() string { return cellRef("I", b.Base) }
func (b CanopyBlock) MUAVolume() string     { return cellRef("K", b.Base) }
func (b CanopyBlock) SupplyStatic() string  { return cellRef("L", b.Base) }
func (b CanopyBlock) Lighting() string      { return cellRef("C", b.Base+1) }
func (b CanopyBlock) CladdingType() string  { return cellRef("D", b.Base+2) }
func (b CanopyBlock) WallCladding() string  { return cellRef("C", b.Base+5) }
func (b CanopyBlock) ExtractStatic() string { return cellRef("F", b.Base+8) }

// SpecialWorks returns the i-th (0..2) special-works dropdown cell.
func (b CanopyBlock) SpecialWorks(i int) string { return cellRef("C", b.Base+2+i) }

// Cold/hot water cells only carry data for wash-capable (CMW*) models.
func (b CanopyBlock) ColdWaterSupply() string { return cellRef("F", b.Base+11) }
func (b CanopyBlock) HotWaterSupply() string  { return cellRef("F", b.Base+12) }
func (b CanopyBlock) HotWaterStorage() string { return cellRef("F", b.Base+13) }

// Price column.
func (b CanopyBlock) CanopyPrice() string   { return cellRef("N", b.Base-2) }
func (b CanopyBlock) FireSuppPrice() string { return cellRef("N", b.Base-1) }
func (b CanopyBlock) CladdingPrice() string { return cellRef("N", b.Base) }

// Option labels written into column B under the unit to flag enabled extras.
func (b CanopyBlock) OptionFireSuppression() string { return cellRef("B", b.Base+4) }
func (b CanopyBlock) OptionUV() string              { return cellRef("B", b.Base+5) }
func (b CanopyBlock) OptionSDU() string             { return cellRef("B", b.Base+6) }
func (b CanopyBlock) OptionRecoAir() string         { return cellRef("B", b.Base+7) }

// Option label values.
const (
	OptionLabelFireSuppression = "FIRE SUPPRESSION SYSTEM"
	OptionLabelUV              = "UV-C SYSTEM"
	OptionLabelSDU             = "SDU"
	OptionLabelRecoAir         = "RECOAIR"
)

// Placeholder values marking an untouched template slot.
const (
	PlaceholderRef      = "ITEM"
	PlaceholderModel    = "CANOPY TYPE"
	PlaceholderLighting = "LIGHT SELECTION"
)

// FireSuppBlock addresses one unit entry on a FIRE SUPP sheet. The sheets
// share the canopy stride so references line up row-for-row.
type FireSuppBlock struct {
	Base int
}

// FireSuppBlockAt returns the i-th (0-based) block on a fire-suppression sheet.
func FireSuppBlockAt(i int) FireSuppBlock {
	return FireSuppBlock{Base: CanopyFirstRow + i*CanopyRowStride}
}

func (b FireSuppBlock) Ref() string         { return cellRef("B", b.Base-2) }
func (b FireSuppBlock) SystemType() string  { return cellRef("C", b.Base+2) }
func (b FireSuppBlock) TankInstall() string { return cellRef("C", b.Base+3) }
func (b FireSuppBlock) Price() string       { return cellRef("N", b.Base-2) }

// RecoAirRow addresses one unit row on a RECOAIR sheet. A row is selected
// when its selection cell holds an integer quantity of at least one.
type RecoAirRow struct {
	Row int
}

// RecoAirRowAt returns the i-th (0-based) unit row on a RecoAir sheet.
func RecoAirRowAt(i int) RecoAirRow {
	return RecoAirRow{Row: RecoAirFirstRow + i}
}

func (r RecoAirRow) Selection() string     { return cellRef("E", r.Row) }
func (r RecoAirRow) Model() string         { return cellRef("C", r.Row) }
func (r RecoAirRow) ExtractVolume() string { return cellRef("D", r.Row) }
func (r RecoAirRow) Width() string         { return cellRef("F", r.Row) }
func (r RecoAirRow) Length() string        { return cellRef("G", r.Row) }
func (r RecoAirRow) Height() string        { return cellRef("H", r.Row) }
func (r RecoAirRow) Location() string      { return cellRef("I", r.Row) }

// RecoAirLocationInternal is the default unit placement.
const RecoAirLocationInternal = "INTERNAL"

// Hidden ProjectData sheet: label/value pairs in columns A/B.
const (
	ProjectDataCompanyRow      = 1
	ProjectDataAddressRow      = 2
	ProjectDataEstimatorRow    = 3
	ProjectDataRankRow         = 4
	ProjectDataSalesContactRow = 5
	ProjectDataLocationRow     = 6
)

// projectDataLabels maps ProjectData sheet rows to their column-A labels.
var projectDataLabels = map[int]string{
	ProjectDataCompanyRow:      "Company",
	ProjectDataAddressRow:      "Address",
	ProjectDataEstimatorRow:    "Estimator_Full_Name",
	ProjectDataRankRow:         "Estimator_Rank",
	ProjectDataSalesContactRow: "Sales_Contact",
	ProjectDataLocationRow:     "Delivery_Location",
}

// tabColors cycles per area so every sheet belonging to the same area shares
// a tab colour.
var tabColors = []string{
	"#92D050", // light green
	"#00B0F0", // light blue
	"#FF9900", // orange
	"#FF00FF", // pink
	"#7030A0", // purple
	"#FF0000", // red
	"#00FF00", // green
	"#0070C0", // blue
	"#FFC000", // gold
	"#00FFFF", // cyan
}

// TabColorForArea returns the tab colour for the i-th area in the workbook.
func TabColorForArea(i int) string {
	if i < 0 {
		i = 0
	}
	return tabColors[i%len(tabColors)]
}

func cellRef(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
