package users

import "context"

// Repo stores users. Lookups of absent users return ErrNotFound.
type Repo interface {
	Create(ctx context.Context, in NewUser) (User, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByExternalAuthID(ctx context.Context, externalAuthID string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
}
