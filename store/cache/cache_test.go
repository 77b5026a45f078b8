package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSetGet(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute, CleanupInterval: time.Minute, MaxItems: 10})
	defer c.Close()

	ctx := context.Background()
	c.Set(ctx, "a", 1)

	v, ok := c.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = c.Get(ctx, "missing")
	require.False(t, ok)
}

func TestExpiry(t *testing.T) {
	c := New(Config{DefaultTTL: time.Minute, CleanupInterval: time.Minute, MaxItems: 10})
	defer c.Close()

	ctx := context.Background()
	c.SetWithTTL(ctx, "a", 1, -time.Second)

	_, ok := c.Get(ctx, "a")
	require.False(t, ok)
}

func TestMaxItemsEviction(t *testing.T) {
	evicted := make(map[string]bool)
	c := New(Config{
		DefaultTTL:      time.Minute,
		CleanupInterval: time.Minute,
		MaxItems:        2,
		OnEviction:      func(key string, _ any) { evicted[key] = true },
	})
	defer c.Close()

	ctx := context.Background()
	c.SetWithTTL(ctx, "a", 1, time.Second)
	c.SetWithTTL(ctx, "b", 2, time.Minute)
	c.SetWithTTL(ctx, "c", 3, time.Minute)

	require.True(t, evicted["a"])
	_, ok := c.Get(ctx, "c")
	require.True(t, ok)
}
