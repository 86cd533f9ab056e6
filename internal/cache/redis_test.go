package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinhyan/elite-fitness/internal/config"
	"github.com/vinhyan/elite-fitness/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := []models.Class{
		{ClassID: "CF001", Name: "Cross Fit with Daniel - Beginner", DurationMinutes: 60, Price: 25},
	}
	err := cache.Set("catalog:classes", expected, time.Minute)
	require.NoError(t, err)

	var actual []models.Class
	found, err := cache.Get("catalog:classes", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out []models.Class
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("catalog:classes", []models.Class{{ClassID: "YG004"}}, time.Minute))
	require.NoError(t, cache.Invalidate("catalog:classes"))

	var out []models.Class
	found, err := cache.Get("catalog:classes", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
