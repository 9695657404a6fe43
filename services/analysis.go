package services

// ProjectAnalysis classifies a project's content. Quotation generation uses
// it to decide which template families the document renderer needs: a
// RecoAir-only project renders the RecoAir quotation alone, a mixed project
// renders both documents.
type ProjectAnalysis struct {
	HasCanopies   bool `json:"has_canopies"`
	HasRecoAir    bool `json:"has_recoair"`
	HasUV         bool `json:"has_uv"`
	IsRecoAirOnly bool `json:"is_recoair_only"`

	CanopyCount      int `json:"canopy_count"`
	RecoAirUnitCount int `json:"recoair_unit_count"`
}

// Template family identifiers the renderer distinguishes.
const (
	QuotationTemplateCanopy  = "canopy"
	QuotationTemplateRecoAir = "recoair"
)

// AnalyzeProject walks the tree once and classifies it.
func AnalyzeProject(p *Project) ProjectAnalysis {
	var a ProjectAnalysis
	for _, level := range p.Levels {
		for _, area := range level.Areas {
			a.CanopyCount += len(area.Canopies)
			for _, u := range area.RecoAirUnits {
				a.RecoAirUnitCount += u.Quantity
			}
			if area.Options.UVC || area.Options.UVExtraOver {
				a.HasUV = true
			}
			for _, c := range area.Canopies {
				if c.Options.UVC {
					a.HasUV = true
				}
			}
		}
	}
	a.HasCanopies = a.CanopyCount > 0
	a.HasRecoAir = a.RecoAirUnitCount > 0
	a.IsRecoAirOnly = a.HasRecoAir && !a.HasCanopies
	return a
}

// QuotationTemplates returns the template families this project's quotation
// needs, in render order.
func (a ProjectAnalysis) QuotationTemplates() []string {
	switch {
	case a.IsRecoAirOnly:
		return []string{QuotationTemplateRecoAir}
	case a.HasRecoAir:
		return []string{QuotationTemplateCanopy, QuotationTemplateRecoAir}
	default:
		return []string{QuotationTemplateCanopy}
	}
}
