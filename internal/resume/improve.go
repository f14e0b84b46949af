package resume

import (
	"fmt"
	"strings"
)

// Entry types a resume section can be improved for.
const (
	EntryExperience = "experience"
	EntryEducation  = "education"
	EntryProject    = "project"
	EntrySummary    = "summary"
)

// ImproveInstruction is the standing instruction for the rewriting agent.
func ImproveInstruction() string {
	return `
You are an expert resume writer helping a professional improve one section of their resume.

Make the text more impactful, quantifiable, and aligned with industry standards:
1. Use action verbs.
2. Include metrics and results where possible.
3. Highlight relevant technical skills.
4. Keep it concise but detailed.
5. Focus on achievements over responsibilities.
6. Use industry-specific keywords.

Do not invent employers, dates, or numbers that the text does not support.
Return only the improved paragraph, without any additional text, headings, or explanations.
`
}

// ImproveMessage is the per-request user message for the rewriting agent.
func ImproveMessage(entryType, industry, current string) string {
	entryType = strings.ToLower(strings.TrimSpace(entryType))
	if entryType == "" {
		entryType = EntryExperience
	}
	return fmt.Sprintf("Industry:\n%s\n\nSection type:\n%s\n\nCurrent content:\n%s", industry, entryType, strings.TrimSpace(current))
}
