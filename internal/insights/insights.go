// Package insights generates industry insights for a user profile and
// normalizes the salary data the model returns.
package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/muhammadolammi/careerworker/internal/llm"
	"github.com/muhammadolammi/careerworker/internal/salary"
)

const (
	DemandHigh   = "HIGH"
	DemandMedium = "MEDIUM"
	DemandLow    = "LOW"

	OutlookPositive = "POSITIVE"
	OutlookNeutral  = "NEUTRAL"
	OutlookNegative = "NEGATIVE"

	// RefreshPeriod is how long generated insights stay current.
	RefreshPeriod = 7 * 24 * time.Hour
)

// Source says where a set of insights came from.
type Source string

const (
	SourceAI       Source = "ai"
	SourceFallback Source = "fallback"
)

type Insights struct {
	SalaryRanges      []salary.Range `json:"salaryRanges"`
	GrowthRate        float64        `json:"growthRate"`
	DemandLevel       string         `json:"demandLevel"`
	TopSkills         []string       `json:"topSkills"`
	MarketOutlook     string         `json:"marketOutlook"`
	KeyTrends         []string       `json:"keyTrends"`
	RecommendedSkills []string       `json:"recommendedSkills"`
}

type Request struct {
	Industry   string  `json:"industry"`
	Location   string  `json:"location"`
	Experience float64 `json:"experience"`
}

// rawInsights mirrors the prompt's JSON contract. salaryRanges is kept raw
// so that a malformed array degrades to no roles instead of a parse error.
type rawInsights struct {
	SalaryRanges      json.RawMessage `json:"salaryRanges"`
	GrowthRate        salary.Amount   `json:"growthRate"`
	DemandLevel       string          `json:"demandLevel"`
	TopSkills         []string        `json:"topSkills"`
	MarketOutlook     string          `json:"marketOutlook"`
	KeyTrends         []string        `json:"keyTrends"`
	RecommendedSkills []string        `json:"recommendedSkills"`
}

type Service struct {
	gen    llm.Generator
	logger *slog.Logger
}

// NewService returns a Service. A nil generator always yields fallback
// insights, which is how the worker runs without an API key.
func NewService(gen llm.Generator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{gen: gen, logger: logger}
}

// Generate never fails because of the model: any generation or parse error
// falls back to a static set of insights. Only context cancellation is
// returned as an error.
func (s *Service) Generate(ctx context.Context, req Request) (Insights, Source, error) {
	industry := ReadableIndustry(req.Industry)
	location := ReadableLocation(req.Location)

	if s.gen == nil {
		return Fallback(location, req.Experience, req.Location), SourceFallback, nil
	}

	text, err := s.gen.Generate(ctx, Prompt(industry, location, req.Experience))
	if err == nil {
		var out Insights
		out, err = Parse(text, req.Experience, req.Location)
		if err == nil {
			return out, SourceAI, nil
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Insights{}, "", ctxErr
	}

	s.logger.Error("AI insights generation failed, using fallback", "industry", industry, "error", err)
	return Fallback(location, req.Experience, req.Location), SourceFallback, nil
}

// Parse decodes a model reply and normalizes its salary ranges.
func Parse(text string, experience float64, location string) (Insights, error) {
	var raw rawInsights
	if err := json.Unmarshal([]byte(llm.CleanJSON(text)), &raw); err != nil {
		return Insights{}, fmt.Errorf("json unmarshal error: %w", err)
	}
	return Insights{
		SalaryRanges:      salary.Normalize(salary.DecodeRanges(raw.SalaryRanges), experience, location),
		GrowthRate:        raw.GrowthRate.Value(),
		DemandLevel:       normalizeEnum(raw.DemandLevel, DemandMedium, DemandHigh, DemandMedium, DemandLow),
		TopSkills:         nonNil(raw.TopSkills),
		MarketOutlook:     normalizeEnum(raw.MarketOutlook, OutlookNeutral, OutlookPositive, OutlookNeutral, OutlookNegative),
		KeyTrends:         nonNil(raw.KeyTrends),
		RecommendedSkills: nonNil(raw.RecommendedSkills),
	}, nil
}

// ReadableIndustry turns an industry slug into prompt text.
func ReadableIndustry(industry string) string {
	return strings.TrimSpace(strings.ReplaceAll(industry, "-", " "))
}

func ReadableLocation(location string) string {
	loc := strings.TrimSpace(location)
	if loc == "" {
		return "Global"
	}
	return loc
}

// NextUpdate is when insights generated at now should be refreshed.
func NextUpdate(now time.Time) time.Time {
	return now.Add(RefreshPeriod)
}

func normalizeEnum(v, fallback string, allowed ...string) string {
	v = strings.ToUpper(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return fallback
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
