package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clube49/loyalty-club/internal/config"
	"github.com/clube49/loyalty-club/internal/models"
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

	expected := models.Profile{
		UserUID: "uid-1",
		Email:   "member@example.com",
		Credits: 5.0,
	}
	err := cache.Set("profile:uid-1", expected, time.Minute)
	require.NoError(t, err)

	var actual models.Profile
	found, err := cache.Get("profile:uid-1", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected.Email, actual.Email)
	assert.InDelta(t, expected.Credits, actual.Credits, 0.001)
}

func TestGet_Missing(t *testing.T) {
	cache := setupTestCache(t)

	var out models.Profile
	found, err := cache.Get("profile:missing", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("coupons:catalog", []string{"a", "b"}, time.Minute))
	require.NoError(t, cache.Invalidate("coupons:catalog"))

	var out []string
	found, err := cache.Get("coupons:catalog", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
