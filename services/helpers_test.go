package services

import (
	"bytes"
	"testing"
)

// bytesReader wraps a byte slice in a bytes.Reader for use with excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}

// sampleProject builds a three-area project covering the main equipment
// families: a canopy with fire suppression, wall cladding and an SDU, a
// wash canopy with a UV extra-over, and a RecoAir area with a flat pack.
// Names are kept short so every generated tab name fits Excel's limit.
func sampleProject() *Project {
	return &Project{
		ProjectNumber:    "P9001",
		ProjectName:      "Riverside Hotel",
		ProjectType:      ProjectTypeCanopy,
		Customer:         "Catering Solutions Ltd",
		Company:          "Airedale Catering Equipment",
		Address:          "Unit 7, Riverside Park, Leeds LS10 1DX",
		SalesContact:     "Marc Reynolds / 07921 045678",
		Estimator:        "Rachel Govan",
		EstimatorRank:    "Lead Estimator",
		DeliveryLocation: "Leeds",
		Location:         "Leeds",
		Date:             "02/06/2025",
		Levels: []Level{
			{
				Name:  "First",
				Index: 1,
				Areas: []Area{
					{
						Name: "Kitchen",
						Canopies: []Canopy{
							{
								Reference:     "C1",
								Configuration: "Wall",
								Model:         "KVT",
								Width:         1200,
								Length:        2000,
								Height:        555,
								Sections:      1,
								ExtractVolume: "0.8",
								ExtractStatic: "45",
								Lighting:      "LED STRIP L12 inc DALI",
								SpecialWorks:  []string{"ROUND CORNERS"},
								CladdingType:  "Standard Stainless Steel",
								WallCladding: &WallCladding{
									Width:     1000,
									Height:    2100,
									Positions: []string{"rear", "left hand"},
								},
								FireSuppression: &FireSuppression{
									SystemType:  "1 TANK SYSTEM",
									TankInstall: "1 TANK",
									Price:       800,
								},
								Options:       CanopyOptions{FireSuppression: true, SDU: true},
								CanopyPrice:   1200,
								CladdingPrice: 150,
							},
						},
						SDUs: []SDUUnit{
							{
								CanopyRef:  "C1",
								Model:      "SDU",
								Electrical: SDUElectrical{DistributionBoard: 1, SinglePhaseSpur: 2, ThreePhaseIsolator: 1},
								Gas:        SDUGas{Manifold: 1, Connection15: 2},
								Water:      SDUWater{Manifold22: 1, Connection15: 2},
								Price:      2750,
							},
						},
						DeliveryInstallationPrice: 850,
						CommissioningPrice:        250,
					},
					{
						Name: "Bar",
						Canopies: []Canopy{
							{
								Reference:     "C2",
								Configuration: "Island",
								Model:         "CMWF",
								Width:         2400,
								Length:        1800,
								Height:        555,
								Sections:      2,
								ExtractVolume: "1.4",
								MUAVolume:     "1.1",
								SupplyStatic:  "30",
								Lighting:      "Small LED Spots inc DALI",
								Wash: &WashCapabilities{
									ColdWaterSupply: "1.5",
									HotWaterSupply:  "0.2",
									HotWaterStorage: "60",
								},
								Options:     CanopyOptions{UVC: true},
								CanopyPrice: 3200,
							},
						},
						UVExtraOverPrice:          450,
						DeliveryInstallationPrice: 400,
						CommissioningPrice:        150,
					},
				},
			},
			{
				Name:  "Second",
				Index: 2,
				Areas: []Area{
					{
						Name: "Prep",
						RecoAirUnits: []RecoAirUnit{
							{
								Model:         "RA1.0 STANDARD",
								Quantity:      1,
								ExtractVolume: 1.2,
								Width:         1000,
								Length:        2200,
								Height:        2100,
								Location:      "INTERNAL",
								Price:         9850,
								Delivery:      500,
								Commissioning: 300,
							},
						},
						FlatPack: &FlatPack{
							Description: "Flat pack delivery and reassembly on site",
							Price:       1200,
						},
					},
				},
			},
		},
	}
}

// findArea locates one area of a project by level and area name.
func findArea(t *testing.T, p *Project, levelName, areaName string) *Area {
	t.Helper()
	for li := range p.Levels {
		if p.Levels[li].Name != levelName {
			continue
		}
		for ai := range p.Levels[li].Areas {
			if p.Levels[li].Areas[ai].Name == areaName {
				return &p.Levels[li].Areas[ai]
			}
		}
	}
	t.Fatalf("project has no area %q on level %q", areaName, levelName)
	return nil
}

// generateSample renders the sample project through the built-in template
// and returns the workbook bytes alongside the normalized tree.
func generateSample(t *testing.T) ([]byte, *Project) {
	t.Helper()
	p := sampleProject()
	b, err := WriteCostSheet(p, BuiltinTemplate{})
	if err != nil {
		t.Fatalf("WriteCostSheet() error = %v", err)
	}
	return b, p
}
