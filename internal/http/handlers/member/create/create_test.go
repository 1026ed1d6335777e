package create

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
	"github.com/magabrotheeeer/gym-membership/internal/storage/repository"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.DummyMember) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание участника",
			body: `{"name":"Иван Петров","email":"ivan@example.com","phone":"+1 555-123-4567"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return("11111111-1111-1111-1111-111111111111", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"uuid":"11111111-1111-1111-1111-111111111111"`,
		},
		{
			name:           "некорректный JSON",
			body:           `{name:`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "некорректный телефон",
			body:           `{"name":"Иван Петров","email":"ivan@example.com","phone":"abc"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Phone must be a valid phone number`,
		},
		{
			name:           "некорректная почта",
			body:           `{"name":"Иван Петров","email":"not-an-email","phone":"+1 555-123-4567"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Email must be a valid email address`,
		},
		{
			name: "дубликат почты",
			body: `{"name":"Иван Петров","email":"ivan@example.com","phone":"+1 555-123-4567"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return("", repository.ErrAlreadyExists)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `member with this email or phone already exists`,
		},
		{
			name: "несуществующий тариф",
			body: `{"name":"Иван Петров","email":"ivan@example.com","phone":"+1 555-123-4567","subscription_plan_id":"22222222-2222-2222-2222-222222222222"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return("", repository.ErrInvalidReference)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `subscription plan does not exist`,
		},
		{
			name: "ошибка хранилища",
			body: `{"name":"Иван Петров","email":"ivan@example.com","phone":"+1 555-123-4567"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return("", errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `could not create member`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/members", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
