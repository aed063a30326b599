package resumes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, in NewResume) (Resume, error) {
	const query = `
INSERT INTO resumes (user_id, file_url)
VALUES ($1, $2)
RETURNING id, uploaded_at`
	resume := Resume{UserID: in.UserID, FileURL: in.FileURL}
	if err := r.DB.QueryRowContext(ctx, query, in.UserID, in.FileURL).Scan(&resume.ID, &resume.UploadedAt); err != nil {
		return Resume{}, fmt.Errorf("insert resume: %w", err)
	}
	return resume, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (Resume, error) {
	const query = `
SELECT id, user_id, file_url, uploaded_at
FROM resumes
WHERE id = $1`
	var resume Resume
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&resume.ID, &resume.UserID, &resume.FileURL, &resume.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

func (r *PGRepo) ListByUser(ctx context.Context, userID int64) ([]Resume, error) {
	const query = `
SELECT id, user_id, file_url, uploaded_at
FROM resumes
WHERE user_id = $1
ORDER BY id ASC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		var resume Resume
		if err := rows.Scan(&resume.ID, &resume.UserID, &resume.FileURL, &resume.UploadedAt); err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
