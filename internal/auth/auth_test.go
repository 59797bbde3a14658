package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTokenStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]time.Time)}
}

func (m *memTokenStore) SaveAdminSession(_ context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = time.Now().Add(ttl)
	return nil
}

func (m *memTokenStore) CheckAdminSession(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expiry, ok := m.tokens[token]
	if !ok || time.Now().After(expiry) {
		return false, nil
	}
	return true, nil
}

func TestVerifyWrongPassword(t *testing.T) {
	gate := NewGate("s3cret", newMemTokenStore(), time.Hour)

	_, err := gate.Verify(context.Background(), "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestVerifyMintsCheckableToken(t *testing.T) {
	store := newMemTokenStore()
	gate := NewGate("s3cret", store, time.Hour)

	sess, err := gate.Verify(context.Background(), "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, sess.Token)

	checked, err := gate.Check(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.Token, checked.Token)
}

func TestCheckUnknownToken(t *testing.T) {
	gate := NewGate("s3cret", newMemTokenStore(), time.Hour)

	_, err := gate.Check(context.Background(), "no-such-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCheckEmptyToken(t *testing.T) {
	gate := NewGate("s3cret", newMemTokenStore(), time.Hour)

	_, err := gate.Check(context.Background(), "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCheckExpiredToken(t *testing.T) {
	store := newMemTokenStore()
	gate := NewGate("s3cret", store, -time.Second)

	sess, err := gate.Verify(context.Background(), "s3cret")
	require.NoError(t, err)

	_, err = gate.Check(context.Background(), sess.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
