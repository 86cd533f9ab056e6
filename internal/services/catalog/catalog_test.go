package catalog_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/vinhyan/elite-fitness/internal/lib/availability"
	"github.com/vinhyan/elite-fitness/internal/models"
	"github.com/vinhyan/elite-fitness/internal/services/catalog"
)

// Мок для ClassRepository
type ClassRepoMock struct {
	mock.Mock
}

func (m *ClassRepoMock) ListClasses(ctx context.Context) ([]models.Class, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Class), args.Error(1)
}

// Мок для CartRepository
type CartRepoMock struct {
	mock.Mock
}

func (m *CartRepoMock) ListCartLines(ctx context.Context, username string) ([]models.CartLine, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CartLine), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	if args.Bool(0) {
		*(result.(*[]models.Class)) = args.Get(2).([]models.Class)
	}
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var testClasses = []models.Class{
	{ClassID: "CF001", Name: "CrossFit", DurationMinutes: 60, Price: 25},
	{ClassID: "KB002", Name: "Kickboxing", DurationMinutes: 60, Price: 25},
	{ClassID: "PL003", Name: "Pilates", DurationMinutes: 60, Price: 25},
}

func TestService_List(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(cl *ClassRepoMock, ca *CacheMock)
		want       []models.Class
		wantErr    bool
	}{
		{
			name: "cache hit skips storage",
			setupMocks: func(_ *ClassRepoMock, ca *CacheMock) {
				ca.On("Get", "catalog:classes", mock.Anything).Return(true, nil, testClasses).Once()
			},
			want: testClasses,
		},
		{
			name: "cache miss reads storage and fills cache",
			setupMocks: func(cl *ClassRepoMock, ca *CacheMock) {
				ca.On("Get", "catalog:classes", mock.Anything).Return(false, nil, nil).Once()
				cl.On("ListClasses", mock.Anything).Return(testClasses, nil).Once()
				ca.On("Set", "catalog:classes", testClasses, time.Hour).Return(nil).Once()
			},
			want: testClasses,
		},
		{
			name: "cache errors are not fatal",
			setupMocks: func(cl *ClassRepoMock, ca *CacheMock) {
				ca.On("Get", "catalog:classes", mock.Anything).Return(false, errors.New("redis down"), nil).Once()
				cl.On("ListClasses", mock.Anything).Return(testClasses, nil).Once()
				ca.On("Set", "catalog:classes", testClasses, time.Hour).Return(errors.New("redis down")).Once()
			},
			want: testClasses,
		},
		{
			name: "storage error",
			setupMocks: func(cl *ClassRepoMock, ca *CacheMock) {
				ca.On("Get", "catalog:classes", mock.Anything).Return(false, nil, nil).Once()
				cl.On("ListClasses", mock.Anything).Return(nil, errors.New("db error")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classRepo := new(ClassRepoMock)
			cartRepo := new(CartRepoMock)
			cacheMock := new(CacheMock)
			svc := catalog.New(classRepo, cartRepo, cacheMock, newTestLogger())

			tt.setupMocks(classRepo, cacheMock)

			got, err := svc.List(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			classRepo.AssertExpectations(t)
			cacheMock.AssertExpectations(t)
		})
	}
}

func TestService_Available(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(cl *ClassRepoMock, cart *CartRepoMock, ca *CacheMock)
		want       []models.Class
		wantErr    error
	}{
		{
			name: "booked classes are excluded",
			setupMocks: func(_ *ClassRepoMock, cart *CartRepoMock, ca *CacheMock) {
				ca.On("Get", "catalog:classes", mock.Anything).Return(true, nil, testClasses).Once()
				cart.On("ListCartLines", mock.Anything, "testuser").Return([]models.CartLine{
					{Username: "testuser", ClassID: "KB002", PriceAtAdd: 25},
				}, nil).Once()
			},
			want: []models.Class{testClasses[0], testClasses[2]},
		},
		{
			name: "empty cart returns full catalog",
			setupMocks: func(_ *ClassRepoMock, cart *CartRepoMock, ca *CacheMock) {
				ca.On("Get", "catalog:classes", mock.Anything).Return(true, nil, testClasses).Once()
				cart.On("ListCartLines", mock.Anything, "testuser").Return([]models.CartLine{}, nil).Once()
			},
			want: testClasses,
		},
		{
			name: "empty catalog",
			setupMocks: func(cl *ClassRepoMock, _ *CartRepoMock, ca *CacheMock) {
				ca.On("Get", "catalog:classes", mock.Anything).Return(false, nil, nil).Once()
				cl.On("ListClasses", mock.Anything).Return([]models.Class{}, nil).Once()
				ca.On("Set", "catalog:classes", []models.Class{}, time.Hour).Return(nil).Once()
			},
			wantErr: availability.ErrCatalogEmpty,
		},
		{
			name: "everything already booked",
			setupMocks: func(_ *ClassRepoMock, cart *CartRepoMock, ca *CacheMock) {
				ca.On("Get", "catalog:classes", mock.Anything).Return(true, nil, testClasses).Once()
				cart.On("ListCartLines", mock.Anything, "testuser").Return([]models.CartLine{
					{Username: "testuser", ClassID: "CF001"},
					{Username: "testuser", ClassID: "KB002"},
					{Username: "testuser", ClassID: "PL003"},
				}, nil).Once()
			},
			wantErr: availability.ErrExhausted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classRepo := new(ClassRepoMock)
			cartRepo := new(CartRepoMock)
			cacheMock := new(CacheMock)
			svc := catalog.New(classRepo, cartRepo, cacheMock, newTestLogger())

			tt.setupMocks(classRepo, cartRepo, cacheMock)

			got, err := svc.Available(context.Background(), "testuser")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			classRepo.AssertExpectations(t)
			cartRepo.AssertExpectations(t)
			cacheMock.AssertExpectations(t)
		})
	}
}
