package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// BuildWordContext flattens a project tree into the context document the
// quotation templates render from. Every key the templates reference is
// present; fields that do not apply carry the "-" placeholder rather than
// being omitted, so templates never branch on key existence.
func BuildWordContext(p *Project) map[string]any {
	totals := ComputeTotals(p)
	now := time.Now()

	ctx := map[string]any{
		"client_name":    orPlaceholder(p.Customer),
		"company":        orPlaceholder(p.Company),
		"address":        orPlaceholder(p.Address),
		"project_number": orPlaceholder(p.ProjectNumber),
		"project_name":   orPlaceholder(p.ProjectName),
		"project_type":   orPlaceholder(p.ProjectType),
		"location":       orPlaceholder(p.Location),
		"revision":       p.Revision,
		"date":           QuoteDate(p.Date),
		"current_date":   now.Format(quoteDateLayout),
		"current_year":   now.Year(),
		"halton_ref":     haltonRef(p.ProjectNumber, p.Date),
		"dear_line":      dearLine(p.SalesContact),
		"sales_contact":  orPlaceholder(p.SalesContact),

		"estimator":           orPlaceholder(p.Estimator),
		"estimator_rank":      orPlaceholder(p.EstimatorRank),
		"estimator_initials":  Initials(p.Estimator),
		"estimator_with_rank": estimatorWithRank(p),

		"delivery_location": orPlaceholder(p.DeliveryLocation),
		"subject_line":      subjectLine(p),
		"scope_of_works":    scopeOfWorks(p),
		"total_canopies":    countCanopies(p),
		"pricing_totals":    totals,
	}

	var levels []map[string]any
	for _, level := range p.Levels {
		levels = append(levels, levelContext(level))
	}
	ctx["levels"] = levels
	ctx["wall_cladding_items"] = claddingItems(p)
	ctx["fire_suppression_items"] = fireSuppressionItems(p)
	ctx["sdu_areas"] = sduAreas(p)
	return ctx
}

// estimatorWithRank renders "Name, Rank", degrading to the bare name when
// either half is missing.
func estimatorWithRank(p *Project) string {
	return strings.TrimSuffix(fmt.Sprintf("%s, %s", p.Estimator, p.EstimatorRank), ", ")
}

func levelContext(level Level) map[string]any {
	var areas []map[string]any
	for _, area := range level.Areas {
		areas = append(areas, areaContext(area))
	}
	return map[string]any{
		"level_name":   level.Name,
		"level_number": level.Index,
		"areas":        areas,
	}
}

func areaContext(area Area) map[string]any {
	var canopies []map[string]any
	for _, c := range area.Canopies {
		canopies = append(canopies, canopyContext(c))
	}
	var units []map[string]any
	for _, u := range area.RecoAirUnits {
		units = append(units, recoAirContext(u))
	}

	ctx := map[string]any{
		"name":                        area.Name,
		"canopies":                    canopies,
		"recoair_units":               units,
		"delivery_installation_price": area.DeliveryInstallationPrice,
		"commissioning_price":         area.CommissioningPrice,
		"options":                     area.Options,
	}
	if area.Options.UVExtraOver {
		ctx["uv_extra_over_price"] = area.UVExtraOverPrice
	}
	if area.FlatPack != nil {
		ctx["flat_pack_description"] = area.FlatPack.Description
		ctx["flat_pack_price"] = area.FlatPack.Price
	}
	return ctx
}

func canopyContext(c Canopy) map[string]any {
	ctx := map[string]any{
		"reference_number": c.Reference,
		"model":            orPlaceholder(c.Model),
		"configuration":    orPlaceholder(c.Configuration),
		"width":            c.Width,
		"length":           c.Length,
		"height":           c.Height,
		"sections":         c.Sections,
		"extract_volume":   orPlaceholder(c.ExtractVolume),
		"extract_static":   stripPascals(c.ExtractStatic),
		"mua_volume":       muaVolumeDisplay(c.MUAVolume),
		"supply_static":    stripPascals(c.SupplyStatic),
		"lighting":         LightingDisplay(c.Lighting),
		"canopy_price":     c.CanopyPrice,
		"cladding_price":   c.CladdingPrice,
	}
	if len(c.SpecialWorks) > 0 {
		ctx["special_works"] = c.SpecialWorks
	}
	if c.Wash != nil {
		ctx["cws_capacity"] = orPlaceholder(c.Wash.ColdWaterSupply)
		ctx["hws_requirement"] = orPlaceholder(c.Wash.HotWaterSupply)
		ctx["hw_storage"] = orPlaceholder(c.Wash.HotWaterStorage)
	}
	if c.FireSuppression != nil {
		ctx["fire_suppression_price"] = c.FireSuppression.Price
	}
	return ctx
}

func recoAirContext(u RecoAirUnit) map[string]any {
	return map[string]any{
		"model":          u.Model,
		"quantity":       u.Quantity,
		"extract_volume": u.ExtractVolume,
		"width":          u.Width,
		"length":         u.Length,
		"height":         u.Height,
		"location":       u.Location,
		"price":          u.Price,
		"delivery":       u.Delivery,
		"commissioning":  u.Commissioning,
	}
}

// claddingItems lists the priced wall-cladding lines. A canopy contributes
// one entry exactly when its cladding carries a price.
func claddingItems(p *Project) []map[string]any {
	items := []map[string]any{}
	for _, level := range p.Levels {
		for _, area := range level.Areas {
			for _, c := range area.Canopies {
				if c.WallCladding == nil || c.CladdingPrice <= 0 {
					continue
				}
				items = append(items, map[string]any{
					"item_number": c.Reference,
					"description": c.WallCladding.Description(),
					"width":       c.WallCladding.Width,
					"height":      c.WallCladding.Height,
					"dimensions":  c.WallCladding.Dimensions(),
					"price":       c.CladdingPrice,
				})
			}
		}
	}
	return items
}

// fireSuppressionItems lists every suppression system in the project with
// its quote-line display strings.
func fireSuppressionItems(p *Project) []map[string]any {
	items := []map[string]any{}
	for _, level := range p.Levels {
		for _, area := range level.Areas {
			for _, c := range area.Canopies {
				if c.FireSuppression == nil {
					continue
				}
				fs := c.FireSuppression
				items = append(items, map[string]any{
					"item_number":        c.Reference,
					"system_description": fireSystemDisplay(fs.SystemType),
					"manual_release":     "1no station",
					"tank_quantity":      tankQuantityDisplay(fs.TankQuantity),
					"price":              fs.Price,
				})
			}
		}
	}
	return items
}

// sduAreas lists every services distribution unit with the level/area it
// serves.
func sduAreas(p *Project) []map[string]any {
	out := []map[string]any{}
	for _, level := range p.Levels {
		for _, area := range level.Areas {
			for _, u := range area.SDUs {
				out = append(out, map[string]any{
					"level_area_combined": fmt.Sprintf("%s - %s", level.Name, area.Name),
					"canopy_reference":    orPlaceholder(u.CanopyRef),
					"model":               u.Model,
					"electrical_services": u.Electrical,
					"gas_services":        u.Gas,
					"water_services":      u.Water,
					"sdu_price":           u.Price,
				})
			}
		}
	}
	return out
}

// haltonRef renders the quotation reference "<number>/<MM>/<YY>" from the
// project number and sheet date.
func haltonRef(projectNumber, date string) string {
	t, err := time.Parse(sheetDateLayout, strings.TrimSpace(date))
	if err != nil {
		t = time.Now()
	}
	return fmt.Sprintf("%s/%s", projectNumber, t.Format("01/06"))
}

// dearLine opens the letter with the sales contact's name, falling back to
// the neutral salutation. A contact stored as "Name / phone" keeps the name.
func dearLine(salesContact string) string {
	name := strings.TrimSpace(salesContact)
	if i := strings.Index(name, "/"); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	if name == "" {
		return "Sir/Madam,"
	}
	return name + ","
}

func subjectLine(p *Project) string {
	parts := []string{}
	if p.ProjectName != "" {
		parts = append(parts, p.ProjectName)
	}
	if p.Location != "" {
		parts = append(parts, p.Location)
	}
	if len(parts) == 0 {
		return NotApplicable
	}
	return strings.Join(parts, ", ")
}

// scopeOfWorks summarises the quoted equipment, one line per family.
func scopeOfWorks(p *Project) []string {
	var canopies, uvCanopies, washCanopies, cladded, suppression, sdus, recoair int
	for _, level := range p.Levels {
		for _, area := range level.Areas {
			for _, c := range area.Canopies {
				canopies++
				if c.Options.UVC {
					uvCanopies++
				}
				if c.IsWashCanopy() {
					washCanopies++
				}
				if c.WallCladding != nil {
					cladded++
				}
				if c.FireSuppression != nil {
					suppression++
				}
			}
			sdus += len(area.SDUs)
			for _, u := range area.RecoAirUnits {
				recoair += u.Quantity
			}
		}
	}

	line := func(n int, singular, plural string) string {
		if n == 1 {
			return fmt.Sprintf("1no %s", singular)
		}
		return fmt.Sprintf("%dno %s", n, plural)
	}

	var scope []string
	if canopies > 0 {
		scope = append(scope, line(canopies, "extract canopy", "extract canopies"))
	}
	if uvCanopies > 0 {
		scope = append(scope, line(uvCanopies, "UV-C capture ready canopy", "UV-C capture ready canopies"))
	}
	if washCanopies > 0 {
		scope = append(scope, line(washCanopies, "cold mist wash canopy", "cold mist wash canopies"))
	}
	if cladded > 0 {
		scope = append(scope, line(cladded, "area of wall cladding", "areas of wall cladding"))
	}
	if suppression > 0 {
		scope = append(scope, line(suppression, "fire suppression system", "fire suppression systems"))
	}
	if sdus > 0 {
		scope = append(scope, line(sdus, "services distribution unit", "services distribution units"))
	}
	if recoair > 0 {
		scope = append(scope, line(recoair, "RecoAir heat recovery unit", "RecoAir heat recovery units"))
	}
	return scope
}

func countCanopies(p *Project) int {
	n := 0
	for _, level := range p.Levels {
		for _, area := range level.Areas {
			n += len(area.Canopies)
		}
	}
	return n
}

// fireSystemDisplay folds the system dropdown value into the quote-line
// family name. Ansul R102 is the house system and the default.
func fireSystemDisplay(systemType string) string {
	s := strings.ToUpper(strings.TrimSpace(systemType))
	switch {
	case strings.Contains(s, "NOBEL"):
		return "Nobel system"
	case strings.Contains(s, "AMEREX"):
		return "Amerex system"
	default:
		return "Ansul R102 system"
	}
}

// tankQuantityDisplay shows the parsed count, or TBD when the tank text had
// none.
func tankQuantityDisplay(n int) string {
	if n < 1 {
		return "TBD"
	}
	return strconv.Itoa(n)
}

// stripPascals removes a trailing unit marker from a static-pressure figure,
// keeping the placeholder as is.
func stripPascals(figure string) string {
	s := strings.TrimSpace(figure)
	if s == "" || s == NotApplicable {
		return NotApplicable
	}
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSuffix(s, "Pa"), "PA"))
	return orPlaceholder(s)
}

// muaVolumeDisplay renders the make-up-air volume to one decimal place.
func muaVolumeDisplay(figure string) string {
	s := strings.TrimSpace(figure)
	if s == "" || s == NotApplicable {
		return NotApplicable
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return fmt.Sprintf("%.1f", n)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotApplicable
	}
	return s
}
