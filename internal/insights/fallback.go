package insights

import "github.com/muhammadolammi/careerworker/internal/salary"

// Fallback returns static insights for when the model is unavailable.
// displayLocation labels the roles; location drives the salary multiplier.
func Fallback(displayLocation string, experience float64, location string) Insights {
	ranges := []salary.RawRange{
		{Role: "Junior Developer", Min: 50000, Median: 70000, Max: 90000, Location: displayLocation},
		{Role: "Mid-level Developer", Min: 80000, Median: 105000, Max: 130000, Location: displayLocation},
		{Role: "Senior Developer", Min: 110000, Median: 140000, Max: 170000, Location: displayLocation},
		{Role: "Product Manager", Min: 100000, Median: 130000, Max: 160000, Location: displayLocation},
		{Role: "Data Scientist", Min: 100000, Median: 135000, Max: 170000, Location: displayLocation},
	}
	return Insights{
		SalaryRanges:      salary.Normalize(ranges, experience, location),
		GrowthRate:        6.5,
		DemandLevel:       DemandHigh,
		TopSkills:         []string{"JavaScript", "React", "Node.js", "SQL", "Cloud"},
		MarketOutlook:     OutlookPositive,
		KeyTrends:         []string{"AI adoption", "Cloud migration", "Remote collaboration", "Cybersecurity focus", "Data-driven decisions"},
		RecommendedSkills: []string{"TypeScript", "AWS/GCP", "Kubernetes", "Prompt Engineering", "System Design"},
	}
}
