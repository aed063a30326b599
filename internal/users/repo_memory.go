package users

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is a process-local Repo. Ids start at 1 and are never reused.
type MemoryRepo struct {
	mu     sync.RWMutex
	nextID int64
	users  []User
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{nextID: 1}
}

func (r *MemoryRepo) Create(ctx context.Context, in NewUser) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ExternalAuthID == in.ExternalAuthID || strings.EqualFold(u.Email, in.Email) {
			return User{}, ErrConflict
		}
	}
	user := User{
		ID:             r.nextID,
		Email:          in.Email,
		Name:           in.Name,
		PhotoURL:       copyString(in.PhotoURL),
		ExternalAuthID: in.ExternalAuthID,
	}
	r.nextID++
	r.users = append(r.users, user)
	return clone(user), nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (User, error) {
	return r.find(ctx, func(u User) bool { return u.ID == id })
}

func (r *MemoryRepo) GetByExternalAuthID(ctx context.Context, externalAuthID string) (User, error) {
	return r.find(ctx, func(u User) bool { return u.ExternalAuthID == externalAuthID })
}

func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	return r.find(ctx, func(u User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *MemoryRepo) find(ctx context.Context, match func(User) bool) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			return clone(u), nil
		}
	}
	return User{}, ErrNotFound
}

func clone(u User) User {
	u.PhotoURL = copyString(u.PhotoURL)
	return u
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

var _ Repo = (*MemoryRepo)(nil)
