package create

import (
	"context"
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

func (m *MockService) Create(ctx context.Context, req models.DummyTransaction) (string, error) {
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
			name: "успешное создание транзакции",
			body: `{"member_id":"11111111-1111-1111-1111-111111111111","amount":2990,"payment_method":"card","status":"completed"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return("44444444-4444-4444-4444-444444444444", nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"uuid":"44444444-4444-4444-4444-444444444444"`,
		},
		{
			name:           "нулевая сумма",
			body:           `{"member_id":"11111111-1111-1111-1111-111111111111","amount":0,"payment_method":"card"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field Amount must be greater than 0`,
		},
		{
			name:           "недопустимый способ оплаты",
			body:           `{"member_id":"11111111-1111-1111-1111-111111111111","amount":2990,"payment_method":"crypto"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field PaymentMethod must be one of: cash card transfer online`,
		},
		{
			name:           "member_id не uuid",
			body:           `{"member_id":"42","amount":2990,"payment_method":"card"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `field MemberID can contain only uuid`,
		},
		{
			name: "несуществующий участник",
			body: `{"member_id":"11111111-1111-1111-1111-111111111111","amount":2990,"payment_method":"card"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return("", repository.ErrInvalidReference)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `referenced member or plan does not exist`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
