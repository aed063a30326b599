package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
)

const (
	firebaseIssuerPrefix = "https://securetoken.google.com/"
	firebaseJWKSURL      = "https://www.googleapis.com/service_accounts/v1/jwk/securetoken@system.gserviceaccount.com"
)

// FirebaseVerifier validates Firebase Authentication ID tokens.
type FirebaseVerifier struct {
	verifier *oidc.IDTokenVerifier
}

type firebaseClaims struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	EmailVerified bool   `json:"email_verified"`
}

// NewFirebaseVerifier builds a verifier backed by Google's securetoken key set.
// Keys are fetched lazily on first use and cached per the response headers.
func NewFirebaseVerifier(ctx context.Context, projectID string) (*FirebaseVerifier, error) {
	return NewFirebaseVerifierWithKeySet(projectID, oidc.NewRemoteKeySet(ctx, firebaseJWKSURL))
}

// NewFirebaseVerifierWithKeySet builds a verifier against an explicit key set.
func NewFirebaseVerifierWithKeySet(projectID string, keySet oidc.KeySet) (*FirebaseVerifier, error) {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}
	v := oidc.NewVerifier(firebaseIssuerPrefix+projectID, keySet, &oidc.Config{
		ClientID:             projectID,
		SupportedSigningAlgs: []string{oidc.RS256},
	})
	return &FirebaseVerifier{verifier: v}, nil
}

// Verify checks signature, issuer, audience and expiry.
func (f *FirebaseVerifier) Verify(ctx context.Context, rawToken string) (Identity, error) {
	token, err := f.verifier.Verify(ctx, rawToken)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if strings.TrimSpace(token.Subject) == "" {
		return Identity{}, ErrInvalidToken
	}
	var claims firebaseClaims
	if err := token.Claims(&claims); err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return Identity{
		Subject:       token.Subject,
		Email:         claims.Email,
		Name:          claims.Name,
		Picture:       claims.Picture,
		EmailVerified: claims.EmailVerified,
	}, nil
}

var _ Verifier = (*FirebaseVerifier)(nil)
