package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken is returned for any credential that fails verification.
var ErrInvalidToken = errors.New("invalid token")

// Identity is the verified subject of a bearer credential.
type Identity struct {
	Subject       string `json:"subject"`
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
}

// Verifier validates a raw bearer token and returns its identity.
type Verifier interface {
	Verify(ctx context.Context, rawToken string) (Identity, error)
}
