package database

import (
	"context"

	"github.com/google/uuid"
)

const getResumeUpload = `-- name: GetResumeUpload :one
SELECT id, user_id, original_filename, mime, size_bytes, object_key, created_at FROM resume_uploads WHERE id=$1
`

func (q *Queries) GetResumeUpload(ctx context.Context, id uuid.UUID) (ResumeUpload, error) {
	row := q.db.QueryRowContext(ctx, getResumeUpload, id)
	var i ResumeUpload
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.OriginalFilename,
		&i.Mime,
		&i.SizeBytes,
		&i.ObjectKey,
		&i.CreatedAt,
	)
	return i, err
}

const upsertResumeContent = `-- name: UpsertResumeContent :exec
INSERT INTO resumes (user_id, content)
VALUES ($1, $2)
ON CONFLICT (user_id)
DO UPDATE SET
    content = EXCLUDED.content,
    updated_at = CURRENT_TIMESTAMP
`

type UpsertResumeContentParams struct {
	UserID  uuid.UUID
	Content string
}

func (q *Queries) UpsertResumeContent(ctx context.Context, arg UpsertResumeContentParams) error {
	_, err := q.db.ExecContext(ctx, upsertResumeContent, arg.UserID, arg.Content)
	return err
}
