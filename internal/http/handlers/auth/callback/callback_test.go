package callback

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/gym-membership/internal/models"
)

// MockService реализует интерфейс callback.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) ExchangeCode(ctx context.Context, code string) (string, *models.Member, error) {
	args := m.Called(ctx, code)
	var member *models.Member
	if res := args.Get(1); res != nil {
		member = res.(*models.Member)
	}
	return args.String(0), member, args.Error(2)
}

func TestCallbackHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	member := &models.Member{
		UUID:  "11111111-1111-1111-1111-111111111111",
		Email: "oauth@example.com",
	}

	t.Run("GET без next отвечает конвертом с токеном", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ExchangeCode", mock.Anything, "good-code").
			Return("jwt-token", member, nil)

		handler := New(logger, mockService)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=good-code", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token":"jwt-token"`)
		mockService.AssertExpectations(t)
	})

	t.Run("GET с next перенаправляет с токеном", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ExchangeCode", mock.Anything, "good-code").
			Return("jwt-token", member, nil)

		handler := New(logger, mockService)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=good-code&next=/app", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/app?success=true&token=jwt-token", w.Header().Get("Location"))
	})

	t.Run("GET с абсолютным next отвечает конвертом вместо редиректа", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ExchangeCode", mock.Anything, "good-code").
			Return("jwt-token", member, nil)

		handler := New(logger, mockService)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=good-code&next=https://evil.example/phish", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
		assert.Contains(t, w.Body.String(), `"token":"jwt-token"`)
	})

	t.Run("GET с protocol-relative next отвечает конвертом вместо редиректа", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ExchangeCode", mock.Anything, "good-code").
			Return("jwt-token", member, nil)

		handler := New(logger, mockService)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=good-code&next=//evil.example/phish", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Location"))
	})

	t.Run("GET без кода", func(t *testing.T) {
		handler := New(logger, new(MockService))

		req := httptest.NewRequest(http.MethodGet, "/auth/callback", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "authorization code is missing")
	})

	t.Run("GET с next при ошибке обмена перенаправляет с error", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ExchangeCode", mock.Anything, "bad-code").
			Return("", nil, errors.New("invalid_grant"))

		handler := New(logger, mockService)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=bad-code&next=/app", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Contains(t, w.Header().Get("Location"), "error=")
	})

	t.Run("POST с кодом в теле", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ExchangeCode", mock.Anything, "good-code").
			Return("jwt-token", member, nil)

		handler := New(logger, mockService)

		req := httptest.NewRequest(http.MethodPost, "/auth/callback", strings.NewReader(`{"code":"good-code"}`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token":"jwt-token"`)
	})

	t.Run("POST без кода — ошибка валидации", func(t *testing.T) {
		handler := New(logger, new(MockService))

		req := httptest.NewRequest(http.MethodPost, "/auth/callback", strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "field Code is a required field")
	})

	t.Run("провайдер отклонил код", func(t *testing.T) {
		mockService := new(MockService)
		mockService.On("ExchangeCode", mock.Anything, "expired-code").
			Return("", nil, errors.New("invalid_grant"))

		handler := New(logger, mockService)

		req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=expired-code", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "could not exchange authorization code")
	})
}
