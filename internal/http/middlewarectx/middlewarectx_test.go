package middlewarectx_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/gym-membership/internal/http/middlewarectx"
	"github.com/magabrotheeeer/gym-membership/internal/lib/jwt"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	logger := newNoopLogger()

	validToken, err := maker.GenerateToken("11111111-1111-1111-1111-111111111111", "ivan@example.com")
	assert.NoError(t, err)

	expiredMaker := jwt.NewJWTMaker("test-secret", -time.Hour)
	expiredToken, err := expiredMaker.GenerateToken("11111111-1111-1111-1111-111111111111", "ivan@example.com")
	assert.NoError(t, err)

	foreignMaker := jwt.NewJWTMaker("other-secret", time.Hour)
	foreignToken, err := foreignMaker.GenerateToken("11111111-1111-1111-1111-111111111111", "ivan@example.com")
	assert.NoError(t, err)

	handlerCalled := false
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		assert.Equal(t, "11111111-1111-1111-1111-111111111111", middlewarectx.MemberUID(r.Context()))
		assert.Equal(t, "ivan@example.com", middlewarectx.Email(r.Context()))
		assert.False(t, middlewarectx.IsAdmin(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	middleware := middlewarectx.JWTMiddleware(maker, logger)(nextHandler)

	tests := []struct {
		name           string
		authHeader     string
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "нет заголовка Authorization",
			authHeader:     "",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "не Bearer схема",
			authHeader:     "Basic sometoken",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "мусор вместо токена",
			authHeader:     "Bearer not-a-jwt",
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "просроченный токен",
			authHeader:     "Bearer " + expiredToken,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "токен с чужой подписью",
			authHeader:     "Bearer " + foreignToken,
			wantStatusCode: http.StatusUnauthorized,
			wantCalled:     false,
		},
		{
			name:           "валидный токен",
			authHeader:     "Bearer " + validToken,
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false

			req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}

func TestAdminKeyMiddleware(t *testing.T) {
	logger := newNoopLogger()

	handlerCalled := false
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		assert.True(t, middlewarectx.IsAdmin(r.Context()))
		w.WriteHeader(http.StatusOK)
	})

	middleware := middlewarectx.AdminKeyMiddleware("super-secret-key", logger)(nextHandler)

	tests := []struct {
		name           string
		header         string
		query          string
		wantStatusCode int
		wantCalled     bool
	}{
		{
			name:           "ключ не передан",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "неверный ключ в заголовке",
			header:         "wrong-key",
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:           "верный ключ в заголовке",
			header:         "super-secret-key",
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "верный ключ в устаревшем query-параметре",
			query:          "super-secret-key",
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
		{
			name:           "заголовок имеет приоритет над query",
			header:         "wrong-key",
			query:          "super-secret-key",
			wantStatusCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false

			target := "/somepath"
			if tt.query != "" {
				target += "?api_key=" + tt.query
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			rec := httptest.NewRecorder()

			middleware.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
		})
	}
}

func TestAdminKeyMiddleware_EmptyConfiguredKey(t *testing.T) {
	middleware := middlewarectx.AdminKeyMiddleware("", newNoopLogger())(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			t.Fatal("handler should not be called")
		}))

	req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
	req.Header.Set("X-API-Key", "")
	rec := httptest.NewRecorder()

	middleware.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOrJWTMiddleware(t *testing.T) {
	maker := jwt.NewJWTMaker("test-secret", time.Hour)
	logger := newNoopLogger()

	token, err := maker.GenerateToken("22222222-2222-2222-2222-222222222222", "anna@example.com")
	assert.NoError(t, err)

	var gotAdmin bool
	var gotUID string
	nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAdmin = middlewarectx.IsAdmin(r.Context())
		gotUID = middlewarectx.MemberUID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	middleware := middlewarectx.AdminOrJWTMiddleware("super-secret-key", maker, logger)(nextHandler)

	t.Run("административный ключ", func(t *testing.T) {
		gotAdmin, gotUID = false, ""
		req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
		req.Header.Set("X-API-Key", "super-secret-key")
		rec := httptest.NewRecorder()

		middleware.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, gotAdmin)
		assert.Empty(t, gotUID)
	})

	t.Run("токен участника", func(t *testing.T) {
		gotAdmin, gotUID = false, ""
		req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		middleware.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, gotAdmin)
		assert.Equal(t, "22222222-2222-2222-2222-222222222222", gotUID)
	})

	t.Run("без учётных данных", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
		rec := httptest.NewRecorder()

		middleware.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	middleware := middlewarectx.RateLimitMiddleware(newNoopLogger(), 1, 2)(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
		rec := httptest.NewRecorder()
		middleware.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
