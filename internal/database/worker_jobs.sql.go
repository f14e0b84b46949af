package database

import (
	"context"

	"github.com/google/uuid"
)

const updateJobStatus = `-- name: UpdateJobStatus :exec
INSERT INTO worker_jobs (id, kind, status, message)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id)
DO UPDATE SET
    status = EXCLUDED.status,
    message = EXCLUDED.message,
    updated_at = CURRENT_TIMESTAMP
`

type UpdateJobStatusParams struct {
	ID      uuid.UUID
	Kind    string
	Status  string
	Message string
}

func (q *Queries) UpdateJobStatus(ctx context.Context, arg UpdateJobStatusParams) error {
	_, err := q.db.ExecContext(ctx, updateJobStatus, arg.ID, arg.Kind, arg.Status, arg.Message)
	return err
}
