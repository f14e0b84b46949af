package salary

import "strings"

// RegionGroup maps a set of location keywords to a cost multiplier.
type RegionGroup struct {
	Name       string
	Keywords   []string
	Multiplier float64
}

// DefaultMultiplier applies when no region group matches.
const DefaultMultiplier = 0.2

// RegionGroups is evaluated in order and the first group with a matching
// keyword wins, so "Bangalore, USA branch" resolves to india.
// Keywords are plain substrings: "us" also matches inside "russia".
var RegionGroups = []RegionGroup{
	{
		Name:       "india",
		Keywords:   []string{"india", "bangalore", "bengaluru", "mumbai", "delhi", "kolkata", "hyderabad", "pune", "chennai"},
		Multiplier: 0.35,
	},
	{
		Name:       "europe",
		Keywords:   []string{"europe", "germany", "france", "spain", "italy", "poland", "netherlands", "sweden", "norway", "denmark", "finland", "uk", "united kingdom"},
		Multiplier: 0.9,
	},
	{
		Name:       "anz-canada",
		Keywords:   []string{"canada", "australia", "new zealand"},
		Multiplier: 0.95,
	},
	{
		Name:       "us",
		Keywords:   []string{"usa", "united states", "us", "san francisco", "new york", "seattle", "boston", "austin"},
		Multiplier: 1.1,
	},
}

// Region returns the first matching region group name and its multiplier.
// An empty name means the default multiplier was used.
func Region(location string) (string, float64) {
	loc := strings.ToLower(location)
	if loc == "" {
		return "", DefaultMultiplier
	}
	for _, g := range RegionGroups {
		for _, kw := range g.Keywords {
			if strings.Contains(loc, kw) {
				return g.Name, g.Multiplier
			}
		}
	}
	return "", DefaultMultiplier
}

// LocationMultiplier maps free-text location to a coarse cost multiplier.
func LocationMultiplier(location string) float64 {
	_, m := Region(location)
	return m
}
