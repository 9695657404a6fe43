package services

import (
	"testing"
)

func TestValidCanopyModels(t *testing.T) {
	if len(ValidCanopyModels) == 0 {
		t.Fatal("ValidCanopyModels should not be empty")
	}

	// Check some expected values
	expected := map[string]bool{
		"KVF": true, "KVI": true, "KVT": true, "CMWF": true, "UVX": true,
	}
	found := make(map[string]bool)
	for _, opt := range ValidCanopyModels {
		if opt == "" {
			t.Error("ValidCanopyModels contains empty string")
		}
		found[opt] = true
	}
	for k := range expected {
		if !found[k] {
			t.Errorf("expected model %q not found", k)
		}
	}
}

func TestCanopyModelCapabilityProbes(t *testing.T) {
	// The model-code rules hold across the whole catalogue: F means
	// make-up air, CMW means wash.
	for _, model := range ValidCanopyModels {
		c := Canopy{Model: model}
		switch model {
		case "KVF", "KWF", "UVF", "UWF", "CMWF":
			if !c.HasMakeUpAir() {
				t.Errorf("%s should report make-up air", model)
			}
		case "KVI", "KVT", "KVX", "UVI", "UVX", "CXW":
			if c.HasMakeUpAir() {
				t.Errorf("%s should not report make-up air", model)
			}
		}
		if wantWash := model == "CMWF" || model == "CMWI"; c.IsWashCanopy() != wantWash {
			t.Errorf("%s wash capability = %v, want %v", model, c.IsWashCanopy(), wantWash)
		}
	}
}

func TestFireSystemTypeOptions(t *testing.T) {
	if len(FireSystemTypeOptions) == 0 {
		t.Fatal("FireSystemTypeOptions should not be empty")
	}

	expected := map[string]bool{
		"1 TANK SYSTEM": true, "NOBEL": true, "AMAREX": true, "6 TANK DISTANCE": true,
	}
	found := make(map[string]bool)
	for _, opt := range FireSystemTypeOptions {
		found[opt] = true
	}
	for k := range expected {
		if !found[k] {
			t.Errorf("expected system type %q not found", k)
		}
	}
}

func TestTankInstallOptionsParse(t *testing.T) {
	// Every tank-install entry yields a usable tank count.
	for _, opt := range TankInstallOptions {
		if n := ParseTankQuantity(opt); n < 1 || n > 6 {
			t.Errorf("ParseTankQuantity(%q) = %d, want a count between 1 and 6", opt, n)
		}
	}
}

func TestRecoAirCatalogues(t *testing.T) {
	if len(RecoAirModelOptions) == 0 {
		t.Fatal("RecoAirModelOptions should not be empty")
	}
	found := make(map[string]bool)
	for _, opt := range RecoAirModelOptions {
		found[opt] = true
	}
	for _, want := range []string{"RA1.0 STANDARD", "RA4.0 STANDARD", "RAH0.5"} {
		if !found[want] {
			t.Errorf("expected RecoAir model %q not found", want)
		}
	}

	locs := make(map[string]bool)
	for _, opt := range RecoAirLocationOptions {
		locs[opt] = true
	}
	if !locs[RecoAirLocationInternal] || !locs["EXTERNAL"] {
		t.Errorf("RecoAirLocationOptions = %v, want INTERNAL and EXTERNAL", RecoAirLocationOptions)
	}
}

func TestDeliveryLocationOptions(t *testing.T) {
	if len(DeliveryLocationOptions) == 0 {
		t.Fatal("DeliveryLocationOptions should not be empty")
	}
	for _, opt := range DeliveryLocationOptions {
		if opt == "" {
			t.Error("DeliveryLocationOptions contains empty string")
		}
		if opt == DeliveryLocationPlaceholder {
			t.Error("the placeholder must not be a selectable location")
		}
	}
}

func TestWallCladdingPositions(t *testing.T) {
	expected := map[string]bool{
		"rear": true, "front": true, "left hand": true, "right hand": true,
	}
	if len(WallCladdingPositions) != len(expected) {
		t.Errorf("expected %d positions, got %d", len(expected), len(WallCladdingPositions))
	}
	for _, p := range WallCladdingPositions {
		if !expected[p] {
			t.Errorf("unexpected position %q", p)
		}
	}
}
