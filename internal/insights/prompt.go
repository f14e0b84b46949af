package insights

import "fmt"

// Prompt asks for insights in the JSON shape Parse expects.
func Prompt(industry, location string, experience float64) string {
	return fmt.Sprintf(`
    Analyze the current state of the %s industry in %s for a professional with approximately %g years of experience, and provide insights in ONLY the following JSON format without any additional notes or explanations:
    {
      "salaryRanges": [
        { "role": "string", "min": number, "max": number, "median": number, "location": "string" }
      ],
      "growthRate": number,
      "demandLevel": "HIGH" | "MEDIUM" | "LOW",
      "topSkills": ["skill1", "skill2"],
      "marketOutlook": "POSITIVE" | "NEUTRAL" | "NEGATIVE",
      "keyTrends": ["trend1", "trend2"],
      "recommendedSkills": ["skill1", "skill2"]
    }

    IMPORTANT: Return ONLY the JSON. No additional text, notes, or markdown formatting.
    Include at least 5 common roles for salary ranges. Salaries must be realistic for the given location and experience level (avoid unrealistic values like $300k+ for entry-level).
    Growth rate should be a percentage between 0 and 100.
    Include at least 5 skills and trends.
`, industry, location, experience)
}
