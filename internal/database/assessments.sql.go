package database

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
)

const createAssessment = `-- name: CreateAssessment :one
INSERT INTO assessments (user_id, quiz_score, questions, category, improvement_tip)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, user_id, quiz_score, questions, category, improvement_tip, created_at
`

type CreateAssessmentParams struct {
	UserID         uuid.UUID
	QuizScore      float64
	Questions      json.RawMessage
	Category       string
	ImprovementTip sql.NullString
}

func (q *Queries) CreateAssessment(ctx context.Context, arg CreateAssessmentParams) (Assessment, error) {
	row := q.db.QueryRowContext(ctx, createAssessment,
		arg.UserID,
		arg.QuizScore,
		arg.Questions,
		arg.Category,
		arg.ImprovementTip,
	)
	var i Assessment
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.QuizScore,
		&i.Questions,
		&i.Category,
		&i.ImprovementTip,
		&i.CreatedAt,
	)
	return i, err
}

const listAssessmentsByUser = `-- name: ListAssessmentsByUser :many
SELECT id, user_id, quiz_score, questions, category, improvement_tip, created_at FROM assessments
WHERE user_id=$1
ORDER BY created_at ASC
`

func (q *Queries) ListAssessmentsByUser(ctx context.Context, userID uuid.UUID) ([]Assessment, error) {
	rows, err := q.db.QueryContext(ctx, listAssessmentsByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Assessment
	for rows.Next() {
		var i Assessment
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.QuizScore,
			&i.Questions,
			&i.Category,
			&i.ImprovementTip,
			&i.CreatedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
