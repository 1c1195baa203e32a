package engine

import "fmt"

// TransportMode is the enumerated set of supported commute modes.
type TransportMode string

const (
	ModeCarPetrol   TransportMode = "car_petrol"
	ModeCarDiesel   TransportMode = "car_diesel"
	ModeCarElectric TransportMode = "car_electric"
	ModeMotorbike   TransportMode = "motorbike"
	ModeBus         TransportMode = "bus"
	ModeTrain       TransportMode = "train"
	ModeBicycle     TransportMode = "bicycle"
	ModeWalking     TransportMode = "walking"
)

// TransportModes returns all supported modes in declaration order.
func TransportModes() []TransportMode {
	return []TransportMode{
		ModeCarPetrol, ModeCarDiesel, ModeCarElectric, ModeMotorbike,
		ModeBus, ModeTrain, ModeBicycle, ModeWalking,
	}
}

// ParseTransportMode validates a mode string against the enumerated set.
// An unrecognized mode is a caller error, never a computed zero: walking
// and cycling are legitimately zero-emission, an unknown string is not.
func ParseTransportMode(s string) (TransportMode, error) {
	for _, m := range TransportModes() {
		if string(m) == s {
			return m, nil
		}
	}
	return "", invalidInput("transport_mode", fmt.Sprintf("unrecognized mode %q", s))
}

// ActivityInput is the flat record of self-reported lifestyle activities
// for one calculation. Commute distance, transport mode, electricity
// usage, and waste mass are mandatory and use pointers so an absent
// field is distinguishable from an explicit zero; the remaining activity
// fields are optional and default to zero.
//
// HouseSizeM2, Occupants, and ACHoursPerDay are contextual fields read
// only by the refinement layer; absent means unknown, not zero.
type ActivityInput struct {
	// Transport. CommuteKm is the daily one-way-inclusive commute
	// distance in km.
	CommuteKm     *float64 `json:"commute_km"`
	TransportMode string   `json:"transport_mode"`

	// Food, kg per week.
	BeefKg       float64 `json:"beef_kg"`
	PorkKg       float64 `json:"pork_kg"`
	ChickenKg    float64 `json:"chicken_kg"`
	FishKg       float64 `json:"fish_kg"`
	DairyKg      float64 `json:"dairy_kg"`
	VegetablesKg float64 `json:"vegetables_kg"`
	FruitsKg     float64 `json:"fruits_kg"`

	// Energy, kWh per month.
	ElectricityKwh *float64 `json:"electricity_kwh"`
	NaturalGasKwh  float64  `json:"natural_gas_kwh"`

	// Waste, kg per week.
	WasteKg    *float64 `json:"waste_kg"`
	RecycledKg float64  `json:"recycled_kg"`

	// Consumption, per month.
	ClothingKg       float64 `json:"clothing_kg"`
	ElectronicsItems float64 `json:"electronics_items"`

	// Contextual fields for refinement. Absent means unknown.
	HouseSizeM2   *float64 `json:"house_size,omitempty"`
	Occupants     *int     `json:"occupants,omitempty"`
	ACHoursPerDay *float64 `json:"ac_hours,omitempty"`
}

// Validate checks mandatory presence, numeric ranges, and the transport
// mode enumeration. All validation happens here, up front: calculators
// assume a valid input and a calculation either fully succeeds or fails
// as a whole.
func (in *ActivityInput) Validate() error {
	if in.CommuteKm == nil {
		return invalidInput("commute_km", "mandatory field missing")
	}
	if in.TransportMode == "" {
		return invalidInput("transport_mode", "mandatory field missing")
	}
	if in.ElectricityKwh == nil {
		return invalidInput("electricity_kwh", "mandatory field missing")
	}
	if in.WasteKg == nil {
		return invalidInput("waste_kg", "mandatory field missing")
	}

	if _, err := ParseTransportMode(in.TransportMode); err != nil {
		return err
	}

	nonNegative := []struct {
		field string
		value float64
	}{
		{"commute_km", *in.CommuteKm},
		{"beef_kg", in.BeefKg},
		{"pork_kg", in.PorkKg},
		{"chicken_kg", in.ChickenKg},
		{"fish_kg", in.FishKg},
		{"dairy_kg", in.DairyKg},
		{"vegetables_kg", in.VegetablesKg},
		{"fruits_kg", in.FruitsKg},
		{"electricity_kwh", *in.ElectricityKwh},
		{"natural_gas_kwh", in.NaturalGasKwh},
		{"waste_kg", *in.WasteKg},
		{"recycled_kg", in.RecycledKg},
		{"clothing_kg", in.ClothingKg},
		{"electronics_items", in.ElectronicsItems},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return invalidInput(f.field, fmt.Sprintf("must be >= 0, got %v", f.value))
		}
	}

	return in.validateContext()
}

// validateContext checks the optional contextual fields. Split out so
// Refine can re-validate them when given a previously computed baseline.
func (in *ActivityInput) validateContext() error {
	if in.HouseSizeM2 != nil && *in.HouseSizeM2 < 0 {
		return invalidInput("house_size", fmt.Sprintf("must be >= 0, got %v", *in.HouseSizeM2))
	}
	if in.Occupants != nil && *in.Occupants < 1 {
		return invalidInput("occupants", fmt.Sprintf("must be >= 1, got %d", *in.Occupants))
	}
	if in.ACHoursPerDay != nil && (*in.ACHoursPerDay < 0 || *in.ACHoursPerDay > 24) {
		return invalidInput("ac_hours", fmt.Sprintf("must be in [0, 24], got %v", *in.ACHoursPerDay))
	}
	return nil
}

// foodItems pairs each food subtype key with its reported weekly mass,
// in the factor table's key space.
func (in *ActivityInput) foodItems() []struct {
	Subtype string
	Kg      float64
} {
	return []struct {
		Subtype string
		Kg      float64
	}{
		{"beef", in.BeefKg},
		{"pork", in.PorkKg},
		{"chicken", in.ChickenKg},
		{"fish", in.FishKg},
		{"dairy", in.DairyKg},
		{"vegetables", in.VegetablesKg},
		{"fruits", in.FruitsKg},
	}
}
