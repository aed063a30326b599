package resumes

import (
	"context"
	"sync"
	"time"
)

type MemoryRepo struct {
	mu      sync.RWMutex
	nextID  int64
	resumes []Resume
	now     func() time.Time
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1, now: func() time.Time { return time.Now().UTC() }}
}

func (r *MemoryRepo) Create(ctx context.Context, in NewResume) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	resume := Resume{
		ID:         r.nextID,
		UserID:     in.UserID,
		FileURL:    in.FileURL,
		UploadedAt: r.now(),
	}
	r.nextID++
	r.resumes = append(r.resumes, resume)
	return resume, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Resume, error) {
	if err := ctx.Err(); err != nil {
		return Resume{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	// ids are dense and start at 1, so the slot is id-1.
	if id < 1 || id > int64(len(r.resumes)) {
		return Resume{}, ErrNotFound
	}
	return r.resumes[id-1], nil
}

func (r *MemoryRepo) ListByUser(ctx context.Context, userID int64) ([]Resume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Resume, 0)
	for _, resume := range r.resumes {
		if resume.UserID == userID {
			out = append(out, resume)
		}
	}
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
