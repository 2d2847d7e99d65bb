package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const (
	// SessionTTL is how long a session token stays valid after issuance
	SessionTTL = 24 * time.Hour

	tokenIssuer = "tutor-api"
)

// ErrInvalidToken is returned for malformed, expired, or badly signed tokens
var ErrInvalidToken = errors.New("invalid or expired token")

// SessionIssuer issues and verifies signed, time-limited session tokens.
// There is no server-side revocation: expiry is the only lifetime bound.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionIssuer creates a session issuer over a shared signing secret
func NewSessionIssuer(secret string) *SessionIssuer {
	return &SessionIssuer{
		secret: []byte(secret),
		ttl:    SessionTTL,
	}
}

// Issue produces a signed HS256 token embedding the user id, expiring
// SessionTTL from now.
func (s *SessionIssuer) Issue(userID uuid.UUID) (string, error) {
	now := time.Now().UTC()

	token, err := jwt.NewBuilder().
		Issuer(tokenIssuer).
		Subject(userID.String()).
		IssuedAt(now).
		Expiration(now.Add(s.ttl)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, s.secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), nil
}

// Verify checks the signature, expiry, and issuer of a token and returns the
// embedded user id. Any failure is reported as ErrInvalidToken.
func (s *SessionIssuer) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse([]byte(tokenString),
		jwt.WithKey(jwa.HS256, s.secret),
		jwt.WithValidate(true),
		jwt.WithIssuer(tokenIssuer),
	)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(token.Subject())
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}

	return userID, nil
}
