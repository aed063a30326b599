package suggestions

import (
	"context"
	"database/sql"
	"fmt"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, in NewSuggestion) (Suggestion, error) {
	const query = `
INSERT INTO suggestions (resume_id, category, content, improvement)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at`
	s := Suggestion{
		ResumeID:    in.ResumeID,
		Category:    in.Category,
		Content:     in.Content,
		Improvement: in.Improvement,
	}
	if err := r.DB.QueryRowContext(ctx, query, in.ResumeID, in.Category, in.Content, in.Improvement).Scan(&s.ID, &s.CreatedAt); err != nil {
		return Suggestion{}, fmt.Errorf("insert suggestion: %w", err)
	}
	return s, nil
}

func (r *PGRepo) ListByResume(ctx context.Context, resumeID int64) ([]Suggestion, error) {
	const query = `
SELECT id, resume_id, category, content, improvement, created_at
FROM suggestions
WHERE resume_id = $1
ORDER BY id ASC`
	rows, err := r.DB.QueryContext(ctx, query, resumeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Suggestion, 0)
	for rows.Next() {
		var s Suggestion
		if err := rows.Scan(&s.ID, &s.ResumeID, &s.Category, &s.Content, &s.Improvement, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
