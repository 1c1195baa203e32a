// Package equiv converts abstract carbon footprint values (kg CO2e) into
// relatable real-world equivalencies like "kilometres driven" or "tree
// seedlings grown", using EPA-published conversion factors. The engine's
// insight strings and the offset recommender's impact descriptions use it
// to keep displayed numbers graspable.
package equiv

import (
	"fmt"
	"math"
)

// EPA Greenhouse Gas Equivalencies Calculator constants (2024 edition),
// converted to metric where the source publishes imperial units.
// equivalency = kg_CO2e / factor.
const (
	// KgPerKmDriven is kg CO2e per km for an average passenger vehicle.
	// EPA publishes 0.192 kg/mile; divided by 1.609 km/mile.
	KgPerKmDriven = 0.1193

	// KgPerSmartphoneCharge is kg CO2e per full smartphone charge.
	KgPerSmartphoneCharge = 0.00822

	// KgPerTreeSeedlingDecade is kg CO2e absorbed by one tree seedling
	// grown for ten years.
	KgPerTreeSeedlingDecade = 60.0
)

// MinDisplayKg is the smallest footprint worth expressing as an
// equivalency; below it the numbers are meaninglessly small.
const MinDisplayKg = 1.0

// Equivalency holds the relatable expressions of one footprint value.
type Equivalency struct {
	InputKg           float64 `json:"input_kg"`
	KmDriven          float64 `json:"km_driven"`
	SmartphoneCharges float64 `json:"smartphone_charges"`
	TreeSeedlings     float64 `json:"tree_seedlings"`

	// DisplayText is the prose form, e.g.
	// "equivalent to driving ~1,250 km or charging ~18,248 smartphones".
	DisplayText string `json:"display_text"`

	// IsEmpty is true when the input was below MinDisplayKg.
	IsEmpty bool `json:"is_empty"`
}

// ForKilograms computes equivalencies for a footprint in kg CO2e.
// Negative, NaN, and infinite inputs yield an empty Equivalency; the
// callers treat equivalencies as decoration, never as a failure path.
func ForKilograms(kg float64) Equivalency {
	if math.IsNaN(kg) || math.IsInf(kg, 0) || kg < MinDisplayKg {
		return Equivalency{InputKg: kg, IsEmpty: true}
	}

	km := kg / KgPerKmDriven
	phones := kg / KgPerSmartphoneCharge
	trees := kg / KgPerTreeSeedlingDecade

	return Equivalency{
		InputKg:           kg,
		KmDriven:          km,
		SmartphoneCharges: phones,
		TreeSeedlings:     trees,
		DisplayText: fmt.Sprintf("equivalent to driving ~%s km or charging ~%s smartphones",
			FormatNumber(int64(math.Round(km))), FormatNumber(int64(math.Round(phones)))),
	}
}
