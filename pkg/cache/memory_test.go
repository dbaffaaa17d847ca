package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	mc := NewMemoryCache(time.Minute)
	defer mc.Close()
	ctx := context.Background()

	type record struct {
		Ticker string  `json:"ticker"`
		Price  float64 `json:"price"`
	}

	require.NoError(t, mc.Set(ctx, "quote:AAPL", record{Ticker: "AAPL", Price: 214.29}, time.Minute))

	var got record
	require.NoError(t, mc.Get(ctx, "quote:AAPL", &got))
	assert.Equal(t, "AAPL", got.Ticker)
	assert.Equal(t, 214.29, got.Price)

	ok, err := mc.Exists(ctx, "quote:AAPL")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache(time.Minute)
	defer mc.Close()

	var dest string
	err := mc.Get(context.Background(), "missing", &dest)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache(time.Minute)
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	var dest string
	assert.ErrorIs(t, mc.Get(ctx, "k", &dest), ErrCacheMiss)

	ok, err := mc.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheDelete(t *testing.T) {
	mc := NewMemoryCache(time.Minute)
	defer mc.Close()
	ctx := context.Background()

	require.NoError(t, mc.Set(ctx, "a", 1, time.Minute))
	require.NoError(t, mc.Set(ctx, "b", 2, time.Minute))
	require.NoError(t, mc.Delete(ctx, "a", "b"))

	var dest int
	assert.ErrorIs(t, mc.Get(ctx, "a", &dest), ErrCacheMiss)
	assert.ErrorIs(t, mc.Get(ctx, "b", &dest), ErrCacheMiss)
}
