package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const devTokenIssuer = "resume-booster-dev"

// Claims is the payload of a development HS256 token.
type Claims struct {
	Email         string `json:"email,omitempty"`
	Name          string `json:"name,omitempty"`
	Picture       string `json:"picture,omitempty"`
	EmailVerified bool   `json:"email_verified,omitempty"`
	jwt.RegisteredClaims
}

// HMACVerifier validates HS256 tokens minted by SignHMAC.
type HMACVerifier struct {
	secret []byte
}

// NewHMACVerifier returns a verifier for the shared secret.
func NewHMACVerifier(secret string) (*HMACVerifier, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("JWT_SECRET is required for dev auth")
	}
	return &HMACVerifier{secret: []byte(secret)}, nil
}

// Verify parses and validates the token.
func (h *HMACVerifier) Verify(ctx context.Context, rawToken string) (Identity, error) {
	if err := ctx.Err(); err != nil {
		return Identity{}, err
	}
	var claims Claims
	_, err := jwt.ParseWithClaims(rawToken, &claims, func(t *jwt.Token) (any, error) {
		return h.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(devTokenIssuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{
		Subject:       claims.Subject,
		Email:         claims.Email,
		Name:          claims.Name,
		Picture:       claims.Picture,
		EmailVerified: claims.EmailVerified,
	}, nil
}

// SignHMAC mints an HS256 token for the identity, valid for ttl.
func SignHMAC(secret string, id Identity, ttl time.Duration) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", errors.New("secret is required")
	}
	if strings.TrimSpace(id.Subject) == "" {
		return "", errors.New("subject is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now().UTC()
	claims := Claims{
		Email:         id.Email,
		Name:          id.Name,
		Picture:       id.Picture,
		EmailVerified: id.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    devTokenIssuer,
			Subject:   id.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

var _ Verifier = (*HMACVerifier)(nil)
