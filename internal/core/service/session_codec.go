package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultSessionTTL is how long an issued session stays valid.
const DefaultSessionTTL = 30 * 24 * time.Hour

// ErrMissingSecret is returned when a SessionCodec would be created without a
// signing secret. Running unsigned would make session forgery trivial, so
// callers must treat this as fatal.
var ErrMissingSecret = errors.New("session secret is not set")

// SessionCodec encodes a user's session into a self-verifying opaque cookie
// value (HS256-signed JWT carrying only the user id and time bounds) and
// decodes it back. No session state is held server-side; the signature and
// expiry embedded in the value are the whole lifecycle.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionCodec builds a codec from the process-wide signing secret.
// An empty secret is refused. A non-positive ttl falls back to
// DefaultSessionTTL.
func NewSessionCodec(secret string, ttl time.Duration) (*SessionCodec, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionCodec{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// TTL returns the session lifetime, which is also the cookie Max-Age.
func (c *SessionCodec) TTL() time.Duration {
	return c.ttl
}

// Encode mints a signed session value for userID, expiring ttl from now.
func (c *SessionCodec) Encode(userID string) (string, error) {
	now := c.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Decode verifies value and returns the embedded user id. Any failure —
// missing value, malformed token, wrong algorithm, bad signature, expired —
// yields ok=false; there is no partially trusted outcome.
func (c *SessionCodec) Decode(value string) (userID string, ok bool) {
	if value == "" {
		return "", false
	}

	claims := jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(value, &claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil || !tkn.Valid || claims.Subject == "" {
		return "", false
	}

	return claims.Subject, true
}
