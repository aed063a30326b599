package resumes

import "context"

// Repo stores resumes. GetByID returns ErrNotFound for absent ids; ListByUser
// returns creation order and an empty slice when the user has none.
type Repo interface {
	Create(ctx context.Context, in NewResume) (Resume, error)
	GetByID(ctx context.Context, id int64) (Resume, error)
	ListByUser(ctx context.Context, userID int64) ([]Resume, error)
}
