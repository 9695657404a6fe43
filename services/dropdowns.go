package services

// Business catalogues behind the workbook dropdowns and the reference
// collections. Entries are quoted verbatim from the template family,
// spelling quirks included, because generated workbooks must match what the
// estimating team already uses.

// ConfigurationOptions lists the canopy mounting configurations.
var ConfigurationOptions = []string{
	"Wall",
	"Island",
	"Single",
	"Double",
	"Corner",
}

// ValidCanopyModels lists the model codes a canopy slot accepts. Codes with
// an F carry a make-up-air section; CMW codes are cold-mist wash units.
var ValidCanopyModels = []string{
	"KVF",
	"KVI",
	"KVT",
	"KVX",
	"KVX-M",
	"KWF",
	"KWI",
	"UVF",
	"UVI",
	"UVX",
	"UWF",
	"CMWF",
	"CMWI",
	"CXW",
}

// LightingOptions lists the canopy lighting dropdown entries.
var LightingOptions = []string{
	"LED STRIP L6 Inc DALI",
	"LED STRIP L12 inc DALI",
	"LED STRIP L18 Inc DALI",
	"Small LED Spots inc DALI",
	"LARGE LED Spots inc DALI",
}

// SpecialWorksOptions lists the three special-works dropdown entries per
// canopy block.
var SpecialWorksOptions = []string{
	"ROUND CORNERS",
	"CUT OUT",
	"CASTELLE LOCKING",
	"HEADER DUCT S/S",
	"HEADER DUCT",
	"PAINT FINSH",
	"UV ON DEMAND",
	"E/over for emergency strip light",
	"E/over for small emer. spot light",
	"E/over for large emer. spot light",
	"COLD MIST ON DEMAND",
	"CMW  PIPEWORK HWS/CWS",
	"CANOPY GROUND SUPPORT",
	"2nd EXTRACT PLENUM",
	"SUPPLY AIR PLENUM",
	"CAPTUREJET PLENUM",
	"COALESCER",
}

// CladdingTypeOptions lists the cladding material dropdown entries.
var CladdingTypeOptions = []string{
	"Standard Stainless Steel",
	"Brushed Stainless Steel",
	"Painted Steel",
	"Galvanized Steel",
	"Aluminum Composite",
	"No Cladding",
}

// WallCladdingOptions marks a block's wall-cladding cell as populated.
var WallCladdingOptions = []string{
	"",
	CladdingMarkerValue,
}

// WallCladdingPositions lists where cladding can be fitted; positions
// combine with "/" in the summary column.
var WallCladdingPositions = []string{
	"rear",
	"left hand",
	"right hand",
	"front",
}

// FireSystemTypeOptions lists the suppression system dropdown entries.
var FireSystemTypeOptions = []string{
	"1 TANK SYSTEM",
	"1 TANK TRAVEL HUB",
	"1 TANK DISTANCE",
	"NOBEL",
	"AMAREX",
	"OTHER",
	"2 TANK SYSTEM",
	"2 TANK TRAVEL HUB",
	"2 TANK DISTANCE",
	"3 TANK SYSTEM",
	"3 TANK TRAVEL HUB",
	"3 TANK DISTANCE",
	"4 TANK SYSTEM",
	"4 TANK TRAVEL HUB",
	"4 TANK DISTANCE",
	"5 TANK SYSTEM",
	"5 TANK TRAVEL HUB",
	"5 TANK DISTANCE",
	"6 TANK SYSTEM",
	"6 TANK TRAVEL HUB",
	"6 TANK DISTANCE",
}

// TankInstallOptions lists the tank installation dropdown entries.
var TankInstallOptions = []string{
	"1 TANK",
	"1 TANK DISTANCE",
	"2 TANK",
	"2 TANK DISTANCE",
	"3 TANK",
	"3 TANK DISTANCE",
	"4 TANK",
	"5 TANK",
	"6 TANK",
}

// RecoAirModelOptions lists the heat-recovery unit sizes quoted on RECOAIR
// sheets. Control-package suffixes are free text after the size code.
var RecoAirModelOptions = []string{
	"RA0.5 STANDARD",
	"RA1.0 STANDARD",
	"RA1.5 STANDARD",
	"RA2.0 STANDARD",
	"RA2.5 STANDARD",
	"RA3.0 STANDARD",
	"RA3.5 STANDARD",
	"RA4.0 STANDARD",
	"RAH0.5",
	"RAH1.0",
	"RAH1.5",
	"RAH2.0",
	"RAH2.5",
	"RAH3.0",
	"RAH3.5",
	"RAH4.0",
}

// RecoAirLocationOptions lists where a RecoAir unit can be installed.
var RecoAirLocationOptions = []string{
	RecoAirLocationInternal,
	"EXTERNAL",
}

// DeliveryLocationPlaceholder is the unselected state of the delivery
// dropdown; the writer never copies it into a generated sheet.
const DeliveryLocationPlaceholder = "Select..."

// DeliveryLocationOptions lists the delivery zones quoted against.
var DeliveryLocationOptions = []string{
	"Aberdeen",
	"Birmingham",
	"Bristol",
	"Cardiff",
	"Edinburgh",
	"Glasgow",
	"Leeds",
	"Liverpool",
	"London (Central)",
	"London (Greater)",
	"Manchester",
	"Newcastle",
	"Norwich",
	"Nottingham",
	"Plymouth",
	"Sheffield",
	"Southampton",
}
