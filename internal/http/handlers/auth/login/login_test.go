package login

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vinhyan/elite-fitness/internal/lib/availability"
	"github.com/vinhyan/elite-fitness/internal/models"
	"github.com/vinhyan/elite-fitness/internal/services/auth"
	"github.com/vinhyan/elite-fitness/internal/session"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockCatalog реализует интерфейс login.Catalog
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) Available(ctx context.Context, username string) ([]models.Class, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Class), args.Error(1)
}

// MockSessions реализует интерфейс login.Sessions
type MockSessions struct {
	mock.Mock
}

func (m *MockSessions) Create(ctx context.Context, sess session.Session) (string, error) {
	args := m.Called(ctx, sess)
	return args.String(0), args.Error(1)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	testUser := &models.User{Username: "testuser", PasswordHash: "hash", Subscribed: false}
	classes := []models.Class{
		{ClassID: "CF001", Name: "CrossFit", DurationMinutes: 60, Price: 25},
	}

	tests := []struct {
		name           string
		body           string
		setupMocks     func(s *MockService, c *MockCatalog, ss *MockSessions)
		expectedStatus int
		expectedBody   string
		expectCookie   bool
	}{
		{
			name: "успешный вход выставляет cookie",
			body: `{"username":"testuser","password":"secret123"}`,
			setupMocks: func(s *MockService, c *MockCatalog, ss *MockSessions) {
				s.On("Login", mock.Anything, "testuser", "secret123").Return(testUser, nil)
				ss.On("Create", mock.Anything, session.Session{Username: "testuser"}).
					Return("token-123", nil)
				c.On("Available", mock.Anything, "testuser").Return(classes, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"CF001"`,
			expectCookie:   true,
		},
		{
			name: "неверные учетные данные",
			body: `{"username":"testuser","password":"wrong"}`,
			setupMocks: func(s *MockService, _ *MockCatalog, _ *MockSessions) {
				s.On("Login", mock.Anything, "testuser", "wrong").
					Return(nil, auth.ErrInvalidCredentials)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `Invalid username or password! Please try again!`,
		},
		{
			name:           "пустой пароль",
			body:           `{"username":"testuser","password":""}`,
			setupMocks:     func(_ *MockService, _ *MockCatalog, _ *MockSessions) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Password is a required field`,
		},
		{
			name: "каталог пуст после входа",
			body: `{"username":"testuser","password":"secret123"}`,
			setupMocks: func(s *MockService, c *MockCatalog, ss *MockSessions) {
				s.On("Login", mock.Anything, "testuser", "secret123").Return(testUser, nil)
				ss.On("Create", mock.Anything, mock.Anything).Return("token-123", nil)
				c.On("Available", mock.Anything, "testuser").
					Return(nil, availability.ErrCatalogEmpty)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `We currently do not have any classes...`,
			expectCookie:   true,
		},
		{
			name: "ошибка сервиса",
			body: `{"username":"testuser","password":"secret123"}`,
			setupMocks: func(s *MockService, _ *MockCatalog, _ *MockSessions) {
				s.On("Login", mock.Anything, "testuser", "secret123").
					Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"internal error"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			mockCatalog := new(MockCatalog)
			mockSessions := new(MockSessions)
			tt.setupMocks(mockService, mockCatalog, mockSessions)

			handler := New(logger, mockService, mockCatalog, mockSessions, "ef_session", 24*time.Hour)

			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			if tt.expectCookie {
				cookies := rr.Result().Cookies()
				assert.Len(t, cookies, 1)
				assert.Equal(t, "ef_session", cookies[0].Name)
				assert.Equal(t, "token-123", cookies[0].Value)
				assert.True(t, cookies[0].HttpOnly)
			}

			mockService.AssertExpectations(t)
			mockCatalog.AssertExpectations(t)
			mockSessions.AssertExpectations(t)
		})
	}
}
