package suggestions

import "context"

// Repo stores suggestions. ListByResume returns creation order.
type Repo interface {
	Create(ctx context.Context, in NewSuggestion) (Suggestion, error)
	ListByResume(ctx context.Context, resumeID int64) ([]Suggestion, error)
}
