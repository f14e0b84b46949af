package salary

import "math"

// Bracket is a USD/year salary band for one experience tier.
type Bracket struct {
	MinMin float64 `json:"minMin"`
	MinMax float64 `json:"minMax"`
	MedMin float64 `json:"medMin"`
	MedMax float64 `json:"medMax"`
	MaxMin float64 `json:"maxMin"`
	MaxMax float64 `json:"maxMax"`
}

var (
	entryBracket  = Bracket{MinMin: 15000, MinMax: 50000, MedMin: 20000, MedMax: 80000, MaxMin: 30000, MaxMax: 120000}
	juniorBracket = Bracket{MinMin: 30000, MinMax: 70000, MedMin: 50000, MedMax: 100000, MaxMin: 70000, MaxMax: 150000}
	midBracket    = Bracket{MinMin: 60000, MinMax: 100000, MedMin: 80000, MedMax: 150000, MaxMin: 120000, MaxMax: 220000}
	seniorBracket = Bracket{MinMin: 90000, MinMax: 150000, MedMin: 120000, MedMax: 220000, MaxMin: 150000, MaxMax: 350000}
)

// Brackets returns the four experience tiers in ascending order.
func Brackets() []Bracket {
	return []Bracket{entryBracket, juniorBracket, midBracket, seniorBracket}
}

// SelectBracket picks the tier for the given years of experience.
// Upper bounds are inclusive: 1, 3 and 7 years.
func SelectBracket(years float64) Bracket {
	years = sanitizeYears(years)
	switch {
	case years <= 1:
		return entryBracket
	case years <= 3:
		return juniorBracket
	case years <= 7:
		return midBracket
	default:
		return seniorBracket
	}
}

func sanitizeYears(years float64) float64 {
	if math.IsNaN(years) || math.IsInf(years, 0) || years < 0 {
		return 0
	}
	return years
}
