package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"storefront-service/internal/auth"
	"storefront-service/internal/service"

	"github.com/gin-gonic/gin"
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
	return ok && time.Now().Before(expiry), nil
}

// the gate aborts privileged requests in middleware, so a handler with
// only the gate wired is enough to exercise authorization
func gateOnlyRouter(t *testing.T) (*gin.Engine, *Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &Handler{gate: auth.NewGate("s3cret", newMemTokenStore(), 24*time.Hour)}
	router := gin.New()
	h.SetupRoutes(router)
	return router, h
}

func TestPrivilegedRoutesRejectMissingCookie(t *testing.T) {
	router, _ := gateOnlyRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/v1/admin/orders"},
		{http.MethodPatch, "/api/v1/admin/orders/abc/status"},
		{http.MethodPost, "/api/v1/admin/products"},
		{http.MethodDelete, "/api/v1/admin/products/abc"},
		{http.MethodPost, "/api/v1/admin/team/categories"},
		{http.MethodDelete, "/api/v1/admin/team/members/abc"},
		{http.MethodPut, "/api/v1/admin/team/member-order"},
		{http.MethodGet, "/api/v1/admin/messages"},
	} {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, w.Body.String(), "unauthorized")
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	router, _ := gateOnlyRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())
}

func TestAdminLoginSetsSessionCookie(t *testing.T) {
	router, _ := gateOnlyRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login",
		strings.NewReader(`{"password":"s3cret"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, auth.CookieName, cookie.Name)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 24*60*60, cookie.MaxAge)
}

func TestSessionCheckReflectsCookie(t *testing.T) {
	router, h := gateOnlyRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/session", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "false")

	sess, err := h.gate.Verify(context.Background(), "s3cret")
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/admin/session", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sess.Token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "true")
}

func TestExpiredSessionIsRejected(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{gate: auth.NewGate("s3cret", newMemTokenStore(), -time.Second)}
	router := gin.New()
	h.SetupRoutes(router)

	sess, err := h.gate.Verify(context.Background(), "s3cret")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sess.Token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProductDetailRouteRegistered(t *testing.T) {
	router, _ := gateOnlyRouter(t)

	found := false
	for _, r := range router.Routes() {
		if r.Method == http.MethodGet && r.Path == "/api/v1/products/:id" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestWriteErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &Handler{}

	for _, tc := range []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: from delivered to pending_approval", service.ErrIllegalTransition), http.StatusConflict},
		{fmt.Errorf("%w: customer name is required", service.ErrValidation), http.StatusBadRequest},
		{service.ErrEmptyCart, http.StatusBadRequest},
		{fmt.Errorf("%w: %q", service.ErrUnknownStatus, "shipped"), http.StatusBadRequest},
		{auth.ErrUnauthorized, http.StatusUnauthorized},
		{errors.New("pq: connection refused"), http.StatusInternalServerError},
	} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		h.writeError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, "%v", tc.err)
	}
}
