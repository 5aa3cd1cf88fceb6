package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"farmalink-service/internal/app/config"
	"farmalink-service/internal/pkg/constvars"
	"farmalink-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMiddlewares(secret string) *Middlewares {
	return &Middlewares{
		Log: zap.NewNop(),
		InternalConfig: &config.InternalConfig{
			JWT: config.JWT{Secret: secret},
		},
	}
}

func TestAuthenticate(t *testing.T) {
	const secret = "test-secret"
	middlewares := newTestMiddlewares(secret)

	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(constvars.CONTEXT_USER_ID_KEY).(string)
		assert.True(t, ok, "user id should be set in context")
		assert.Equal(t, "usr-1", userID)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := utils.GenerateJWT("usr-1", secret, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/pagos/crear-preferencia", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)

		rr := httptest.NewRecorder()
		middlewares.Authenticate(nextHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/pagos/crear-preferencia", nil)
		rr := httptest.NewRecorder()
		middlewares.Authenticate(nextHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/pagos/crear-preferencia", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Basic abc123")
		rr := httptest.NewRecorder()
		middlewares.Authenticate(nextHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := utils.GenerateJWT("usr-1", "otro-secreto", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/pagos/crear-preferencia", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rr := httptest.NewRecorder()
		middlewares.Authenticate(nextHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := utils.GenerateJWT("usr-1", secret, -time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodPost, "/api/pagos/crear-preferencia", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rr := httptest.NewRecorder()
		middlewares.Authenticate(nextHandler).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	middlewares := newTestMiddlewares("s")

	t.Run("generates when absent", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rr := httptest.NewRecorder()
		middlewares.RequestIDMiddleware(next).ServeHTTP(rr, req)

		assert.NotEmpty(t, seen)
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("keeps client request id", func(t *testing.T) {
		var seen string
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "cliente-123")
		rr := httptest.NewRecorder()
		middlewares.RequestIDMiddleware(next).ServeHTTP(rr, req)

		assert.Equal(t, "cliente-123", seen)
	})
}
