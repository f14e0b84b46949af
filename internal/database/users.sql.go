package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const getUserByID = `-- name: GetUserByID :one
SELECT id, industry, location, experience, skills, updated_at FROM users WHERE id=$1
`

func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var i User
	err := row.Scan(
		&i.ID,
		&i.Industry,
		&i.Location,
		&i.Experience,
		pq.Array(&i.Skills),
		&i.UpdatedAt,
	)
	return i, err
}
