package services

import (
	"testing"
	"time"
)

func TestNormalizeCanopy_ModelRules(t *testing.T) {
	t.Run("model without F collapses make-up air", func(t *testing.T) {
		c := Canopy{Model: "kvt", Reference: " c1 ", MUAVolume: "1.2", SupplyStatic: "30", ExtractVolume: "0.8"}
		NormalizeCanopy(&c)
		if c.Model != "KVT" || c.Reference != "C1" {
			t.Errorf("casing: model %q ref %q", c.Model, c.Reference)
		}
		if c.MUAVolume != NotApplicable || c.SupplyStatic != NotApplicable {
			t.Errorf("MUA figures = %q / %q, want placeholders", c.MUAVolume, c.SupplyStatic)
		}
		if c.ExtractVolume != "0.8" {
			t.Errorf("extract volume = %q, want 0.8", c.ExtractVolume)
		}
	})

	t.Run("model with F keeps make-up air", func(t *testing.T) {
		c := Canopy{Model: "KVF", MUAVolume: "1.2", SupplyStatic: "30"}
		NormalizeCanopy(&c)
		if c.MUAVolume != "1.2" || c.SupplyStatic != "30" {
			t.Errorf("MUA figures = %q / %q, want kept", c.MUAVolume, c.SupplyStatic)
		}
	})

	t.Run("blank figures become placeholders", func(t *testing.T) {
		c := Canopy{Model: "KVF"}
		NormalizeCanopy(&c)
		if c.ExtractVolume != NotApplicable || c.ExtractStatic != NotApplicable {
			t.Errorf("blank figures = %q / %q, want placeholders", c.ExtractVolume, c.ExtractStatic)
		}
	})

	t.Run("wash canopy gains wash block and loses extract static", func(t *testing.T) {
		c := Canopy{Model: "CMWF", ExtractStatic: "45"}
		NormalizeCanopy(&c)
		if c.ExtractStatic != NotApplicable {
			t.Errorf("extract static = %q, want placeholder", c.ExtractStatic)
		}
		if c.Wash == nil {
			t.Fatal("wash block missing on CMW model")
		}
		if c.Wash.ColdWaterSupply != NotApplicable {
			t.Errorf("blank wash figure = %q, want placeholder", c.Wash.ColdWaterSupply)
		}
	})

	t.Run("non-wash canopy drops a stray wash block", func(t *testing.T) {
		c := Canopy{Model: "KVI", Wash: &WashCapabilities{ColdWaterSupply: "1.5"}}
		NormalizeCanopy(&c)
		if c.Wash != nil {
			t.Error("wash block should be dropped for non-CMW models")
		}
	})

	t.Run("fire suppression content sets the option and tank count", func(t *testing.T) {
		c := Canopy{Model: "KVF", FireSuppression: &FireSuppression{TankInstall: "2 TANK"}}
		NormalizeCanopy(&c)
		if !c.Options.FireSuppression {
			t.Error("fire suppression option not set from content")
		}
		if c.FireSuppression.TankQuantity != 2 {
			t.Errorf("tank quantity = %d, want 2", c.FireSuppression.TankQuantity)
		}
	})

	t.Run("preset tank quantity is kept", func(t *testing.T) {
		c := Canopy{Model: "KVF", FireSuppression: &FireSuppression{TankInstall: "2 TANK", TankQuantity: 3}}
		NormalizeCanopy(&c)
		if c.FireSuppression.TankQuantity != 3 {
			t.Errorf("tank quantity = %d, want preset 3 kept", c.FireSuppression.TankQuantity)
		}
	})
}

func TestCanopyCapabilities(t *testing.T) {
	tests := []struct {
		model  string
		hasMUA bool
		isWash bool
	}{
		{"KVF", true, false},
		{"KVI", false, false},
		{"KVT", false, false},
		{"KVX", false, false},
		{"UWF", true, false},
		{"CMWF", true, true},
		{"CMWI", false, true},
		{"cmwf", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			c := Canopy{Model: tt.model}
			if got := c.HasMakeUpAir(); got != tt.hasMUA {
				t.Errorf("HasMakeUpAir(%q) = %v, want %v", tt.model, got, tt.hasMUA)
			}
			if got := c.IsWashCanopy(); got != tt.isWash {
				t.Errorf("IsWashCanopy(%q) = %v, want %v", tt.model, got, tt.isWash)
			}
		})
	}
}

func TestParseTankQuantity(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect int
	}{
		{"empty", "", 0},
		{"placeholder", "-", 0},
		{"one tank", "1 TANK", 1},
		{"two tank system", "2 TANK SYSTEM", 2},
		{"distance variant", "2 TANK DISTANCE", 2},
		{"lowercase padded", " 4 tank ", 4},
		{"no number", "TANK", 0},
		{"digits embedded", "3TANKS", 3},
		{"named system", "NOBEL", 0},
		{"trailing digits", "TANK X2", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTankQuantity(tt.input); got != tt.expect {
				t.Errorf("ParseTankQuantity(%q) = %d, want %d", tt.input, got, tt.expect)
			}
		})
	}
}

func TestNextRevision(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		expect  string
		wantErr bool
	}{
		{"initial issue", "", "A", false},
		{"simple bump", "A", "B", false},
		{"end of alphabet", "Y", "Z", false},
		{"rollover", "Z", "AA", false},
		{"double letter", "AA", "AB", false},
		{"double rollover", "AZ", "BA", false},
		{"triple rollover", "ZZ", "AAA", false},
		{"lowercase trimmed", " a ", "B", false},
		{"digit rejected", "A1", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextRevision(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NextRevision(%q) expected error, got %q", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NextRevision(%q) error = %v", tt.input, err)
			}
			if got != tt.expect {
				t.Errorf("NextRevision(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestNormalizeProject_TreeRules(t *testing.T) {
	p := &Project{
		ProjectNumber: " P1001 ",
		ProjectName:   "riverside hotel",
		Customer:      "CATERING SOLUTIONS LTD",
		Revision:      "a",
		Levels: []Level{
			{
				Name: "First",
				Areas: []Area{
					{
						Name: " Kitchen ",
						Canopies: []Canopy{
							{Reference: "C1", Model: "KVF", FireSuppression: &FireSuppression{TankInstall: "1 TANK", Price: 800}},
						},
						DeliveryInstallationPrice: -50,
					},
				},
			},
		},
	}
	NormalizeProject(p)

	if p.ProjectNumber != "P1001" {
		t.Errorf("project number = %q", p.ProjectNumber)
	}
	if p.ProjectName != "Riverside Hotel" || p.Customer != "Catering Solutions Ltd" {
		t.Errorf("header casing: %q / %q", p.ProjectName, p.Customer)
	}
	if p.Revision != "A" {
		t.Errorf("revision = %q, want A", p.Revision)
	}
	if p.Date == "" {
		t.Error("date should default to today")
	}
	if p.EstimatorRank != DefaultEstimatorRank {
		t.Errorf("estimator rank = %q, want default", p.EstimatorRank)
	}
	if p.ProjectType != ProjectTypeCanopy {
		t.Errorf("project type = %q, want derived %q", p.ProjectType, ProjectTypeCanopy)
	}

	level := p.Levels[0]
	if level.Index != 1 {
		t.Errorf("level index = %d, want positional 1", level.Index)
	}
	area := level.Areas[0]
	if area.Name != "Kitchen" {
		t.Errorf("area name = %q", area.Name)
	}
	if area.DeliveryInstallationPrice != 0 {
		t.Errorf("negative delivery = %v, want clamped to 0", area.DeliveryInstallationPrice)
	}
	if !area.Options.FireSuppression {
		t.Error("area fire suppression option not derived from canopy content")
	}
}

func TestNormalizeProject_MergesSDUs(t *testing.T) {
	p := &Project{
		Levels: []Level{{
			Name: "First",
			Areas: []Area{{
				Name: "Kitchen",
				SDUs: []SDUUnit{
					{CanopyRef: "c1", Price: 100, Electrical: SDUElectrical{DistributionBoard: 1}, Gas: SDUGas{Manifold: 1}},
					{CanopyRef: "C2", Price: 50, Electrical: SDUElectrical{DistributionBoard: 2}, Water: SDUWater{Connection15: 3}},
				},
			}},
		}},
	}
	NormalizeProject(p)

	area := p.Levels[0].Areas[0]
	if len(area.SDUs) != 1 {
		t.Fatalf("SDU count = %d, want 1 after merge", len(area.SDUs))
	}
	got := area.SDUs[0]
	if got.CanopyRef != "C1/C2" {
		t.Errorf("merged ref = %q, want C1/C2", got.CanopyRef)
	}
	if got.Price != 150 {
		t.Errorf("merged price = %v, want 150", got.Price)
	}
	if got.Electrical.DistributionBoard != 3 {
		t.Errorf("merged distribution boards = %d, want 3", got.Electrical.DistributionBoard)
	}
	if got.Gas.Manifold != 1 || got.Water.Connection15 != 3 {
		t.Errorf("merged services = %+v / %+v", got.Gas, got.Water)
	}
	if got.Model != string(KindSDU) {
		t.Errorf("blank model = %q, want %q", got.Model, KindSDU)
	}
	if !area.Options.SDU {
		t.Error("SDU option not set from content")
	}
}

func TestNormalizeProject_RecoAirDefaults(t *testing.T) {
	p := &Project{
		Levels: []Level{{
			Name: "Roof",
			Areas: []Area{{
				Name:         "Plant",
				RecoAirUnits: []RecoAirUnit{{Model: "ra1.0 standard", Quantity: 0}},
			}},
		}},
	}
	NormalizeProject(p)

	area := p.Levels[0].Areas[0]
	u := area.RecoAirUnits[0]
	if u.Model != "RA1.0 STANDARD" {
		t.Errorf("model = %q, want upper-cased", u.Model)
	}
	if u.Quantity != 1 {
		t.Errorf("quantity = %d, want floor of 1", u.Quantity)
	}
	if u.Location != RecoAirLocationInternal {
		t.Errorf("location = %q, want %q default", u.Location, RecoAirLocationInternal)
	}
	if !area.Options.RecoAir {
		t.Error("RecoAir option not set from content")
	}
	if p.ProjectType != ProjectTypeRecoAir {
		t.Errorf("project type = %q, want %q for a RecoAir-only tree", p.ProjectType, ProjectTypeRecoAir)
	}
}

func TestNormalizeProject_KeepsExplicitProjectType(t *testing.T) {
	p := &Project{
		ProjectType: ProjectTypeCanopy,
		Levels: []Level{{
			Name:  "Roof",
			Areas: []Area{{Name: "Plant", RecoAirUnits: []RecoAirUnit{{Model: "RA2.0 STANDARD", Quantity: 1}}}},
		}},
	}
	NormalizeProject(p)
	if p.ProjectType != ProjectTypeCanopy {
		t.Errorf("project type = %q, want explicit value kept", p.ProjectType)
	}
}

func TestWallCladdingRendering(t *testing.T) {
	wc := WallCladding{Width: 1000, Height: 2100, Positions: []string{"rear", "left hand"}}
	if got := wc.Dimensions(); got != "1000X2100" {
		t.Errorf("Dimensions() = %q", got)
	}
	if got := wc.PositionKey(); got != "rear/left hand" {
		t.Errorf("PositionKey() = %q", got)
	}
	if got := wc.Description(); got != "Cladding to rear and left hand walls" {
		t.Errorf("Description() = %q", got)
	}

	if got := (WallCladding{}).Description(); got != "Cladding to walls" {
		t.Errorf("empty Description() = %q", got)
	}
	one := WallCladding{Positions: []string{"rear"}}
	if got := one.Description(); got != "Cladding to rear walls" {
		t.Errorf("single Description() = %q", got)
	}
	three := WallCladding{Positions: []string{"rear", "left hand", "front"}}
	if got := three.Description(); got != "Cladding to rear, left hand and front walls" {
		t.Errorf("triple Description() = %q", got)
	}
}

func TestNormalizeProject_DateDefaultsToToday(t *testing.T) {
	p := &Project{}
	NormalizeProject(p)
	if _, err := time.Parse("02/01/2006", p.Date); err != nil {
		t.Errorf("defaulted date %q does not parse: %v", p.Date, err)
	}
}
