package register

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
	"github.com/vinhyan/elite-fitness/internal/services/auth"
)

// MockService реализует интерфейс register.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, username, password string) error {
	args := m.Called(ctx, username, password)
	return args.Error(0)
}

func TestRegisterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная регистрация",
			body: `{"username":"newuser","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "newuser", "secret123").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"account_created":true`,
		},
		{
			name:           "некорректный JSON",
			body:           `{"username":`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "пустой пароль",
			body:           `{"username":"newuser","password":""}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is a required field`,
		},
		{
			name: "короткие имя и пароль допустимы",
			body: `{"username":"bob","password":"pw"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "bob", "pw").Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"account_created":true`,
		},
		{
			name: "имя уже занято",
			body: `{"username":"existing","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "existing", "secret123").Return(auth.ErrUsernameTaken)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `Username already exists!`,
		},
		{
			name: "ошибка сервиса",
			body: `{"username":"newuser","password":"secret123"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, "newuser", "secret123").Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"internal error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/create-account", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
