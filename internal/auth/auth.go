package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrUnauthorized is returned by every privileged operation invoked
// without a live admin session.
var ErrUnauthorized = errors.New("unauthorized")

// CookieName is the admin session cookie.
const CookieName = "admin_session"

// TokenStore persists admin session tokens with a server-side expiry.
type TokenStore interface {
	SaveAdminSession(ctx context.Context, token string, ttl time.Duration) error
	CheckAdminSession(ctx context.Context, token string) (bool, error)
}

// Session is the capability handed to privileged service calls. It is
// only obtainable through Gate.Verify or Gate.Check.
type Session struct {
	Token string
}

// Gate authenticates against a single shared secret and checks session
// tokens. There is no logout; sessions end only by expiry.
type Gate struct {
	secret []byte
	tokens TokenStore
	ttl    time.Duration
}

// NewGate creates a session gate over the configured shared secret.
func NewGate(secret string, tokens TokenStore, ttl time.Duration) *Gate {
	return &Gate{
		secret: []byte(secret),
		tokens: tokens,
		ttl:    ttl,
	}
}

// Verify compares candidate against the shared secret. On a match it
// mints an opaque session token and stores it with the configured TTL.
func (g *Gate) Verify(ctx context.Context, candidate string) (Session, error) {
	if subtle.ConstantTimeCompare([]byte(candidate), g.secret) != 1 {
		return Session{}, ErrUnauthorized
	}

	token := uuid.New().String()
	if err := g.tokens.SaveAdminSession(ctx, token, g.ttl); err != nil {
		return Session{}, err
	}
	return Session{Token: token}, nil
}

// Check re-derives the session from the token alone. Each privileged
// operation calls this independently; no session state is shared
// between calls.
func (g *Gate) Check(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrUnauthorized
	}
	ok, err := g.tokens.CheckAdminSession(ctx, token)
	if err != nil {
		return Session{}, err
	}
	if !ok {
		return Session{}, ErrUnauthorized
	}
	return Session{Token: token}, nil
}

// TTL returns the session lifetime, used for the cookie max-age.
func (g *Gate) TTL() time.Duration {
	return g.ttl
}
