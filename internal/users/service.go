package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Register creates the user, or returns the existing one when the external
// identity is already registered under the same email. A known identity with
// a different email is a conflict and discloses nothing. created reports
// which happened.
func (s *Service) Register(ctx context.Context, in NewUser) (user User, created bool, err error) {
	if s == nil || s.Repo == nil {
		return User{}, false, errors.New("users service not configured")
	}
	in.Email = strings.TrimSpace(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.ExternalAuthID = strings.TrimSpace(in.ExternalAuthID)
	if in.PhotoURL != nil && strings.TrimSpace(*in.PhotoURL) == "" {
		in.PhotoURL = nil
	}
	if in.Email == "" || in.Name == "" || in.ExternalAuthID == "" {
		return User{}, false, fmt.Errorf("%w: email, name and firebaseId are required", ErrInvalidInput)
	}

	existing, err := s.Repo.GetByExternalAuthID(ctx, in.ExternalAuthID)
	switch {
	case err == nil:
		return sameRegistration(existing, in)
	case !errors.Is(err, ErrNotFound):
		return User{}, false, err
	}

	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return User{}, false, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, false, err
	}

	user, err = s.Repo.Create(ctx, in)
	if errors.Is(err, ErrConflict) {
		// Lost a race with a concurrent registration of the same identity.
		if existing, lookupErr := s.Repo.GetByExternalAuthID(ctx, in.ExternalAuthID); lookupErr == nil {
			return sameRegistration(existing, in)
		}
		return User{}, false, err
	}
	if err != nil {
		return User{}, false, err
	}
	return user, true, nil
}

func sameRegistration(existing User, in NewUser) (User, bool, error) {
	if !strings.EqualFold(existing.Email, in.Email) {
		return User{}, false, fmt.Errorf("%w: firebaseId already registered", ErrConflict)
	}
	return existing, false, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}
	if id <= 0 {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, id)
}

// ResolveUserID maps an identity-provider subject to the internal user id.
func (s *Service) ResolveUserID(ctx context.Context, subject string) (int64, bool, error) {
	if s == nil || s.Repo == nil {
		return 0, false, errors.New("users service not configured")
	}
	user, err := s.Repo.GetByExternalAuthID(ctx, subject)
	if errors.Is(err, ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return user.ID, true, nil
}
