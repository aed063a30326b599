package suggestions

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu          sync.RWMutex
	nextID      int64
	suggestions []Suggestion
	now         func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, now: func() time.Time { return time.Now().UTC() }}
}

func (r *MemoryRepo) Create(ctx context.Context, in NewSuggestion) (Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return Suggestion{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	s := Suggestion{
		ID:          r.nextID,
		ResumeID:    in.ResumeID,
		Category:    in.Category,
		Content:     in.Content,
		Improvement: in.Improvement,
		CreatedAt:   r.now(),
	}
	r.nextID++
	r.suggestions = append(r.suggestions, s)
	return s, nil
}

func (r *MemoryRepo) ListByResume(ctx context.Context, resumeID int64) ([]Suggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Suggestion, 0)
	for _, s := range r.suggestions {
		if s.ResumeID == resumeID {
			out = append(out, s)
		}
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
