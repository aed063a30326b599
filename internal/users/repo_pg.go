package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, in NewUser) (User, error) {
	const query = `
INSERT INTO users (email, name, photo_url, firebase_id)
VALUES ($1, $2, $3, $4)
RETURNING id`
	var photo sql.NullString
	if in.PhotoURL != nil {
		photo = sql.NullString{String: *in.PhotoURL, Valid: true}
	}
	var id int64
	err := r.DB.QueryRowContext(ctx, query, in.Email, in.Name, photo, in.ExternalAuthID).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return User{}, ErrConflict
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return User{
		ID:             id,
		Email:          in.Email,
		Name:           in.Name,
		PhotoURL:       copyString(in.PhotoURL),
		ExternalAuthID: in.ExternalAuthID,
	}, nil
}

func (r *PGRepo) GetByID(ctx context.Context, id int64) (User, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *PGRepo) GetByExternalAuthID(ctx context.Context, externalAuthID string) (User, error) {
	return r.getOne(ctx, "firebase_id = $1", externalAuthID)
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.getOne(ctx, "lower(email) = lower($1)", email)
}

func (r *PGRepo) getOne(ctx context.Context, where string, arg any) (User, error) {
	query := `
SELECT id, email, name, photo_url, firebase_id
FROM users
WHERE ` + where + `
LIMIT 1`
	var user User
	var photo sql.NullString
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&photo,
		&user.ExternalAuthID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	if photo.Valid {
		user.PhotoURL = &photo.String
	}
	return user, nil
}

var _ Repo = (*PGRepo)(nil)
