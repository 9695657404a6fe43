package services

import (
	"fmt"
	"strconv"
	"strings"
)

// NotApplicable is the placeholder written to cells and display fields whose
// value does not apply to the unit, e.g. make-up-air figures on a canopy
// model without a supply section.
const NotApplicable = "-"

// Project is the root of the quotation tree. The reader returns a fresh
// tree; the writer consumes one without retaining it.
type Project struct {
	ProjectNumber    string  `json:"project_number"`
	ProjectName      string  `json:"project_name"`
	ProjectType      string  `json:"project_type"`
	Customer         string  `json:"customer"`
	Company          string  `json:"company"`
	Address          string  `json:"address"`
	SalesContact     string  `json:"sales_contact"`
	Estimator        string  `json:"estimator"`
	EstimatorRank    string  `json:"estimator_rank"`
	DeliveryLocation string  `json:"delivery_location"`
	Location         string  `json:"location"`
	Date             string  `json:"date"` // DD/MM/YYYY
	Revision         string  `json:"revision"`
	Levels           []Level `json:"levels"`
}

// Project types offered by the intake form.
const (
	ProjectTypeCanopy  = "Canopy Project"
	ProjectTypeRecoAir = "RecoAir Project"
)

// Level is one building floor. Index seeds the "(n)" segment of tab names.
type Level struct {
	Name  string `json:"level_name"`
	Index int    `json:"level_number"`
	Areas []Area `json:"areas"`
}

// AreaOptions gates which equipment sheets exist for an area. The last four
// flags are recorded for the quotation but have no sheet family in the
// current template revision.
type AreaOptions struct {
	FireSuppression bool `json:"fire_suppression"`
	UVC             bool `json:"uvc"`
	SDU             bool `json:"sdu"`
	RecoAir         bool `json:"recoair"`
	UVExtraOver     bool `json:"uv_extra_over"`
	Marvel          bool `json:"marvel"`
	VentClg         bool `json:"vent_clg"`
	Reactaway       bool `json:"reactaway"`
	Pollustop       bool `json:"pollustop"`
	Aerolys         bool `json:"aerolys"`
	XEU             bool `json:"xeu"`
}

// Area is one kitchen or zone within a level.
type Area struct {
	Name         string        `json:"name"`
	Options      AreaOptions   `json:"options"`
	Canopies     []Canopy      `json:"canopies"`
	RecoAirUnits []RecoAirUnit `json:"recoair_units,omitempty"`
	SDUs         []SDUUnit     `json:"sdu_units,omitempty"`
	FlatPack     *FlatPack     `json:"flat_pack,omitempty"`

	// Delivery excludes commissioning and is never negative.
	DeliveryInstallationPrice float64 `json:"delivery_installation_price"`
	CommissioningPrice        float64 `json:"commissioning_price"`
	UVExtraOverPrice          float64 `json:"uv_extra_over_price,omitempty"`
}

// Canopy is the primary priced unit. Volume and static figures are display
// strings so the not-applicable placeholder survives a round trip.
type Canopy struct {
	Reference     string  `json:"reference_number"`
	Configuration string  `json:"configuration"`
	Model         string  `json:"model"`
	Width         float64 `json:"width"`
	Length        float64 `json:"length"`
	Height        float64 `json:"height"`
	Sections      int     `json:"sections"`

	ExtractVolume string `json:"extract_volume"`
	ExtractStatic string `json:"extract_static"`
	MUAVolume     string `json:"mua_volume"`
	SupplyStatic  string `json:"supply_static"`

	Lighting     string   `json:"lighting_type"`
	SpecialWorks []string `json:"special_works,omitempty"`
	CladdingType string   `json:"cladding_type,omitempty"`

	WallCladding    *WallCladding     `json:"wall_cladding,omitempty"`
	Wash            *WashCapabilities `json:"wash,omitempty"`
	FireSuppression *FireSuppression  `json:"fire_suppression,omitempty"`

	Options CanopyOptions `json:"options"`

	CanopyPrice   float64 `json:"canopy_price"`
	CladdingPrice float64 `json:"cladding_price"`
}

// CanopyOptions flags the extras quoted against a single canopy.
type CanopyOptions struct {
	FireSuppression bool `json:"fire_suppression"`
	UVC             bool `json:"uvc"`
	SDU             bool `json:"sdu"`
	RecoAir         bool `json:"recoair"`
}

// WallCladding describes optional wall cladding quoted with a canopy.
type WallCladding struct {
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Positions []string `json:"position"`
}

// Dimensions renders the summary-cell form, e.g. "1000X2100".
func (w WallCladding) Dimensions() string {
	return fmt.Sprintf("%dX%d", w.Width, w.Height)
}

// PositionKey joins positions the way the summary column stores them.
func (w WallCladding) PositionKey() string {
	return strings.Join(w.Positions, "/")
}

// Description renders the quotation line text for the cladding item.
func (w WallCladding) Description() string {
	switch len(w.Positions) {
	case 0:
		return "Cladding to walls"
	case 1:
		return fmt.Sprintf("Cladding to %s walls", w.Positions[0])
	case 2:
		return fmt.Sprintf("Cladding to %s and %s walls", w.Positions[0], w.Positions[1])
	default:
		head := strings.Join(w.Positions[:len(w.Positions)-1], ", ")
		return fmt.Sprintf("Cladding to %s and %s walls", head, w.Positions[len(w.Positions)-1])
	}
}

// WashCapabilities carries the water figures of cold-mist wash canopies.
type WashCapabilities struct {
	ColdWaterSupply string `json:"cws_capacity"`
	HotWaterSupply  string `json:"hws_requirement"`
	HotWaterStorage string `json:"hw_storage"`
}

// FireSuppression carries the suppression system quoted for one canopy.
type FireSuppression struct {
	SystemType   string  `json:"system_type"`
	TankInstall  string  `json:"tank_install"`
	TankQuantity int     `json:"tank_quantity"`
	Price        float64 `json:"price"`
}

// RecoAirUnit is one heat-recovery unit row on a RECOAIR sheet. Delivery
// and commissioning are the unit's equal share of the sheet-wide figures.
type RecoAirUnit struct {
	Model         string  `json:"model"`
	Quantity      int     `json:"quantity"`
	ExtractVolume float64 `json:"extract_volume"`
	Width         int     `json:"width"`
	Length        int     `json:"length"`
	Height        int     `json:"height"`
	Location      string  `json:"location"`
	Price         float64 `json:"price"`
	Delivery      float64 `json:"delivery"`
	Commissioning float64 `json:"commissioning"`
}

// FlatPack is the disassembled-shipping add-on quoted on a RECOAIR sheet.
type FlatPack struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// SDUUnit is a services-distribution unit associated with a canopy.
type SDUUnit struct {
	CanopyRef  string        `json:"canopy_ref"`
	Model      string        `json:"model"`
	Electrical SDUElectrical `json:"electrical_services"`
	Gas        SDUGas        `json:"gas_services"`
	Water      SDUWater      `json:"water_services"`
	Price      float64       `json:"price"`
}

// SDUElectrical counts the electrical services in the unit.
type SDUElectrical struct {
	DistributionBoard  int `json:"distribution_board"`
	SinglePhaseSpur    int `json:"single_phase_switched_spur"`
	ThreePhaseIsolator int `json:"three_phase_isolator"`
}

// SDUGas counts the gas services in the unit.
type SDUGas struct {
	Manifold     int `json:"gas_manifold"`
	Connection15 int `json:"gas_connections_15mm"`
	Connection20 int `json:"gas_connections_20mm"`
}

// SDUWater counts the water services in the unit.
type SDUWater struct {
	Manifold22   int `json:"cws_manifold_22mm"`
	ManifoldHW   int `json:"hws_manifold"`
	Connection15 int `json:"water_connections_15mm"`
}

// HasMakeUpAir reports whether the model code includes a make-up-air
// section. The template family encodes it as the letter F.
func (c Canopy) HasMakeUpAir() bool {
	return strings.Contains(strings.ToUpper(c.Model), "F")
}

// IsWashCanopy reports whether the model is a cold-mist wash unit.
func (c Canopy) IsWashCanopy() bool {
	return strings.HasPrefix(strings.ToUpper(c.Model), "CMW")
}

// NormalizeCanopy applies the model-code rules once, when the entity is
// built, so neither the readers nor the presentation layer re-derive them:
// codes are stored upper-case; a code without F has no make-up-air
// subsystem, so its MUA volume and supply static collapse to the
// placeholder; CMW codes carry wash capabilities and no extract static;
// blank display figures become the placeholder.
func NormalizeCanopy(c *Canopy) {
	c.Reference = strings.ToUpper(strings.TrimSpace(c.Reference))
	c.Model = strings.ToUpper(strings.TrimSpace(c.Model))
	c.Configuration = strings.TrimSpace(c.Configuration)

	c.ExtractVolume = displayFigure(c.ExtractVolume)
	c.ExtractStatic = displayFigure(c.ExtractStatic)
	c.MUAVolume = displayFigure(c.MUAVolume)
	c.SupplyStatic = displayFigure(c.SupplyStatic)

	if !c.HasMakeUpAir() {
		c.MUAVolume = NotApplicable
		c.SupplyStatic = NotApplicable
	}

	if c.IsWashCanopy() {
		c.ExtractStatic = NotApplicable
		if c.Wash == nil {
			c.Wash = &WashCapabilities{}
		}
		c.Wash.ColdWaterSupply = displayFigure(c.Wash.ColdWaterSupply)
		c.Wash.HotWaterSupply = displayFigure(c.Wash.HotWaterSupply)
		c.Wash.HotWaterStorage = displayFigure(c.Wash.HotWaterStorage)
	} else {
		c.Wash = nil
	}

	if c.FireSuppression != nil {
		c.Options.FireSuppression = true
		if c.FireSuppression.TankQuantity == 0 {
			c.FireSuppression.TankQuantity = ParseTankQuantity(c.FireSuppression.TankInstall)
		}
	}
}

func displayFigure(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return NotApplicable
	}
	return s
}

// DefaultEstimatorRank is used when the estimator has no recorded rank.
const DefaultEstimatorRank = "Estimator"

// NormalizeProject applies the construction-time rules across the whole
// tree: header text takes the casing the sheets use, the date defaults to
// today, level indexes fill in from position, and every canopy goes through
// NormalizeCanopy. Both the form intake and the workbook reader call this,
// so downstream code never re-derives any of it.
func NormalizeProject(p *Project) {
	p.ProjectNumber = strings.TrimSpace(p.ProjectNumber)
	p.ProjectName = TitleCaseWords(p.ProjectName)
	p.Customer = TitleCaseWords(p.Customer)
	p.Location = TitleCaseWords(p.Location)
	p.Revision = strings.ToUpper(strings.TrimSpace(p.Revision))
	p.Date = SheetDate(p.Date)
	if strings.TrimSpace(p.EstimatorRank) == "" {
		p.EstimatorRank = DefaultEstimatorRank
	}

	for li := range p.Levels {
		level := &p.Levels[li]
		if level.Index < 1 {
			level.Index = li + 1
		}
		for ai := range level.Areas {
			area := &level.Areas[ai]
			area.Name = strings.TrimSpace(area.Name)
			if area.DeliveryInstallationPrice < 0 {
				area.DeliveryInstallationPrice = 0
			}
			for ci := range area.Canopies {
				c := &area.Canopies[ci]
				NormalizeCanopy(c)
				// Content on a canopy implies the area carries the option.
				area.Options.FireSuppression = area.Options.FireSuppression || c.Options.FireSuppression
				area.Options.UVC = area.Options.UVC || c.Options.UVC
				area.Options.SDU = area.Options.SDU || c.Options.SDU
				area.Options.RecoAir = area.Options.RecoAir || c.Options.RecoAir
			}
			if len(area.RecoAirUnits) > 0 {
				area.Options.RecoAir = true
			}
			mergeAreaSDUs(area)
			if len(area.SDUs) > 0 {
				area.Options.SDU = true
			}
			if area.UVExtraOverPrice > 0 {
				area.Options.UVExtraOver = true
			}
			for ui := range area.RecoAirUnits {
				u := &area.RecoAirUnits[ui]
				u.Model = strings.ToUpper(strings.TrimSpace(u.Model))
				if u.Quantity < 1 {
					u.Quantity = 1
				}
				if strings.TrimSpace(u.Location) == "" {
					u.Location = RecoAirLocationInternal
				}
			}
			for si := range area.SDUs {
				sdu := &area.SDUs[si]
				sdu.CanopyRef = strings.ToUpper(strings.TrimSpace(sdu.CanopyRef))
				if strings.TrimSpace(sdu.Model) == "" {
					sdu.Model = string(KindSDU)
				}
			}
		}
	}

	if strings.TrimSpace(p.ProjectType) == "" {
		p.ProjectType = deriveProjectType(p)
	}
}

// deriveProjectType classifies the project from its content: RecoAir units
// and no canopies anywhere makes it a RecoAir project.
func deriveProjectType(p *Project) string {
	hasCanopies, hasRecoAir := false, false
	for _, level := range p.Levels {
		for _, area := range level.Areas {
			hasCanopies = hasCanopies || len(area.Canopies) > 0
			hasRecoAir = hasRecoAir || len(area.RecoAirUnits) > 0
		}
	}
	if hasRecoAir && !hasCanopies {
		return ProjectTypeRecoAir
	}
	return ProjectTypeCanopy
}

// mergeAreaSDUs folds multiple distribution units into one. Workbooks from
// the per-canopy tab era read back as several units; the current sheet
// family holds a single aggregated unit per area, so service counts and
// prices sum and the canopy references join.
func mergeAreaSDUs(area *Area) {
	if len(area.SDUs) < 2 {
		return
	}
	merged := area.SDUs[0]
	var refs []string
	if merged.CanopyRef != "" {
		refs = append(refs, merged.CanopyRef)
	}
	for _, u := range area.SDUs[1:] {
		if u.CanopyRef != "" {
			refs = append(refs, u.CanopyRef)
		}
		if merged.Model == "" {
			merged.Model = u.Model
		}
		merged.Price += u.Price
		merged.Electrical.DistributionBoard += u.Electrical.DistributionBoard
		merged.Electrical.SinglePhaseSpur += u.Electrical.SinglePhaseSpur
		merged.Electrical.ThreePhaseIsolator += u.Electrical.ThreePhaseIsolator
		merged.Gas.Manifold += u.Gas.Manifold
		merged.Gas.Connection15 += u.Gas.Connection15
		merged.Gas.Connection20 += u.Gas.Connection20
		merged.Water.Manifold22 += u.Water.Manifold22
		merged.Water.ManifoldHW += u.Water.ManifoldHW
		merged.Water.Connection15 += u.Water.Connection15
	}
	merged.CanopyRef = strings.Join(refs, "/")
	area.SDUs = []SDUUnit{merged}
}

// ParseTankQuantity extracts the tank count from free-text cell values like
// "2 TANK SYSTEM". Blank and placeholder values are zero; when no
// whitespace-separated part parses as an integer, the first digit run
// anywhere in the string counts.
func ParseTankQuantity(raw string) int {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" || s == NotApplicable {
		return 0
	}
	for _, part := range strings.Fields(s) {
		if n, err := strconv.Atoi(part); err == nil {
			return n
		}
	}
	start := -1
	for i, r := range s {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			n, _ := strconv.Atoi(s[start:i])
			return n
		}
	}
	if start >= 0 {
		n, _ := strconv.Atoi(s[start:])
		return n
	}
	return 0
}

// NextRevision bumps a revision letter in bijective base-26: "" issues "A",
// "A" becomes "B", "Z" rolls over to "AA".
func NextRevision(rev string) (string, error) {
	rev = strings.ToUpper(strings.TrimSpace(rev))
	if rev == "" {
		return "A", nil
	}
	n := 0
	for _, r := range rev {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("revision %q is not a letter sequence", rev)
		}
		n = n*26 + int(r-'A') + 1
	}
	n++
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out), nil
}
