package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

const getIndustryInsight = `-- name: GetIndustryInsight :one
SELECT id, industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, last_updated, next_update
FROM industry_insights WHERE industry=$1
`

func (q *Queries) GetIndustryInsight(ctx context.Context, industry string) (IndustryInsight, error) {
	row := q.db.QueryRowContext(ctx, getIndustryInsight, industry)
	var i IndustryInsight
	err := row.Scan(
		&i.ID,
		&i.Industry,
		&i.SalaryRanges,
		&i.GrowthRate,
		&i.DemandLevel,
		pq.Array(&i.TopSkills),
		&i.MarketOutlook,
		pq.Array(&i.KeyTrends),
		pq.Array(&i.RecommendedSkills),
		&i.LastUpdated,
		&i.NextUpdate,
	)
	return i, err
}

const upsertIndustryInsight = `-- name: UpsertIndustryInsight :exec
INSERT INTO industry_insights (
industry, salary_ranges, growth_rate, demand_level, top_skills, market_outlook, key_trends, recommended_skills, next_update)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (industry)
DO UPDATE SET
    salary_ranges = EXCLUDED.salary_ranges,
    growth_rate = EXCLUDED.growth_rate,
    demand_level = EXCLUDED.demand_level,
    top_skills = EXCLUDED.top_skills,
    market_outlook = EXCLUDED.market_outlook,
    key_trends = EXCLUDED.key_trends,
    recommended_skills = EXCLUDED.recommended_skills,
    last_updated = CURRENT_TIMESTAMP,
    next_update = EXCLUDED.next_update
`

type UpsertIndustryInsightParams struct {
	Industry          string
	SalaryRanges      json.RawMessage
	GrowthRate        float64
	DemandLevel       string
	TopSkills         []string
	MarketOutlook     string
	KeyTrends         []string
	RecommendedSkills []string
	NextUpdate        time.Time
}

func (q *Queries) UpsertIndustryInsight(ctx context.Context, arg UpsertIndustryInsightParams) error {
	_, err := q.db.ExecContext(ctx, upsertIndustryInsight,
		arg.Industry,
		arg.SalaryRanges,
		arg.GrowthRate,
		arg.DemandLevel,
		pq.Array(arg.TopSkills),
		arg.MarketOutlook,
		pq.Array(arg.KeyTrends),
		pq.Array(arg.RecommendedSkills),
		arg.NextUpdate,
	)
	return err
}

const listStaleIndustries = `-- name: ListStaleIndustries :many
SELECT industry FROM industry_insights WHERE next_update <= $1 ORDER BY next_update
`

func (q *Queries) ListStaleIndustries(ctx context.Context, now time.Time) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, listStaleIndustries, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var industry string
		if err := rows.Scan(&industry); err != nil {
			return nil, err
		}
		items = append(items, industry)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getIndustryProfile = `-- name: GetIndustryProfile :one
SELECT COALESCE(location, ''), COALESCE(experience, 0) FROM users
WHERE industry=$1
ORDER BY updated_at DESC
LIMIT 1
`

type IndustryProfile struct {
	Location   string
	Experience float64
}

// GetIndustryProfile returns the most recently updated profile in an
// industry, used to parameterize scheduled refreshes.
func (q *Queries) GetIndustryProfile(ctx context.Context, industry string) (IndustryProfile, error) {
	row := q.db.QueryRowContext(ctx, getIndustryProfile, industry)
	var i IndustryProfile
	err := row.Scan(&i.Location, &i.Experience)
	return i, err
}
