package database

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const createExamAttempt = `-- name: CreateExamAttempt :one
INSERT INTO exam_attempts (
    user_id, exam_title, industry, start_time, end_time, time_spent, status,
    total_score, percentage_score, correct_answers, total_questions, is_passing, answers
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
RETURNING id, user_id, exam_title, industry, start_time, end_time, time_spent, status, total_score, percentage_score, correct_answers, total_questions, is_passing, answers, created_at
`

type CreateExamAttemptParams struct {
	UserID          uuid.UUID
	ExamTitle       string
	Industry        string
	StartTime       time.Time
	EndTime         time.Time
	TimeSpent       int32
	Status          string
	TotalScore      float64
	PercentageScore float64
	CorrectAnswers  int32
	TotalQuestions  int32
	IsPassing       bool
	Answers         json.RawMessage
}

func (q *Queries) CreateExamAttempt(ctx context.Context, arg CreateExamAttemptParams) (ExamAttempt, error) {
	row := q.db.QueryRowContext(ctx, createExamAttempt,
		arg.UserID,
		arg.ExamTitle,
		arg.Industry,
		arg.StartTime,
		arg.EndTime,
		arg.TimeSpent,
		arg.Status,
		arg.TotalScore,
		arg.PercentageScore,
		arg.CorrectAnswers,
		arg.TotalQuestions,
		arg.IsPassing,
		arg.Answers,
	)
	var i ExamAttempt
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.ExamTitle,
		&i.Industry,
		&i.StartTime,
		&i.EndTime,
		&i.TimeSpent,
		&i.Status,
		&i.TotalScore,
		&i.PercentageScore,
		&i.CorrectAnswers,
		&i.TotalQuestions,
		&i.IsPassing,
		&i.Answers,
		&i.CreatedAt,
	)
	return i, err
}

const listRecentExamAttempts = `-- name: ListRecentExamAttempts :many
SELECT id, user_id, exam_title, industry, start_time, end_time, time_spent, status, total_score, percentage_score, correct_answers, total_questions, is_passing, answers, created_at FROM exam_attempts
WHERE user_id=$1
ORDER BY created_at DESC
LIMIT $2
`

type ListRecentExamAttemptsParams struct {
	UserID uuid.UUID
	Limit  int32
}

func (q *Queries) ListRecentExamAttempts(ctx context.Context, arg ListRecentExamAttemptsParams) ([]ExamAttempt, error) {
	rows, err := q.db.QueryContext(ctx, listRecentExamAttempts, arg.UserID, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ExamAttempt
	for rows.Next() {
		var i ExamAttempt
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.ExamTitle,
			&i.Industry,
			&i.StartTime,
			&i.EndTime,
			&i.TimeSpent,
			&i.Status,
			&i.TotalScore,
			&i.PercentageScore,
			&i.CorrectAnswers,
			&i.TotalQuestions,
			&i.IsPassing,
			&i.Answers,
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
