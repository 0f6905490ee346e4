package httpserver

import (
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cellmon/internal/auth"
	"cellmon/internal/cell"
	"cellmon/internal/fleet"
	"cellmon/internal/http/handlers"
)

func newRouter(t *testing.T, tokens *auth.TokenService) http.Handler {
	t.Helper()

	gen := cell.NewGenerator(rand.New(rand.NewPCG(3, 3)))
	svc, err := fleet.New(gen, []string{"nmc"}, zap.NewNop())
	require.NoError(t, err)

	hasher := auth.NewBcryptHasher(4)
	hash, err := hasher.Hash("pw")
	require.NoError(t, err)

	deps := RouterDeps{
		Login:     handlers.NewLoginHandler(hasher, hash, tokens, zap.NewNop()),
		Dashboard: handlers.NewDashboardHandlers(svc, zap.NewNop()),
		Export:    handlers.NewExportHandlers(svc, zap.NewNop()),
		Health:    handlers.NewHealthHandler(),
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("# scrape ok\n"))
		}),
	}
	return NewRouter(deps, AuthMiddleware(tokens))
}

func TestRouterHealthIsPublic(t *testing.T) {
	router := newRouter(t, auth.NewTokenService("s", time.Minute))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterServesMetrics(t *testing.T) {
	router := newRouter(t, auth.NewTokenService("s", time.Minute))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "scrape ok")

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/metrics", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouterMethodGuard(t *testing.T) {
	router := newRouter(t, auth.NewTokenService("s", time.Minute))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/login", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestRouterRequiresAuth(t *testing.T) {
	tokens := auth.NewTokenService("s", time.Minute)
	router := newRouter(t, tokens)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/cells", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token, err := tokens.GenerateToken()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/cells", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejectsMalformedHeader(t *testing.T) {
	tokens := auth.NewTokenService("s", time.Minute)
	mw := AuthMiddleware(tokens)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := RoleFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, auth.OperatorRole, role)
		w.WriteHeader(http.StatusOK)
	})

	for _, header := range []string{"", "Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		mw(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}

	token, err := tokens.GenerateToken()
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
