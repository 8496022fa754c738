package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*DashboardCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewDashboardCache(client, ttl), mr
}

func TestDashboardCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, ok := c.Get(ctx, "days=7")
	require.False(t, ok)

	c.Set(ctx, "days=7", []byte(`{"summary":{}}`))

	data, ok := c.Get(ctx, "days=7")
	require.True(t, ok)
	require.JSONEq(t, `{"summary":{}}`, string(data))
}

func TestDashboardCacheExpires(t *testing.T) {
	c, mr := newTestCache(t, time.Second)
	ctx := context.Background()

	c.Set(ctx, "days=7", []byte(`{}`))
	mr.FastForward(2 * time.Second)

	_, ok := c.Get(ctx, "days=7")
	require.False(t, ok)
}

func TestDashboardCacheNilClient(t *testing.T) {
	c := NewDashboardCache(nil, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "days=7", []byte(`{}`))
	_, ok := c.Get(ctx, "days=7")
	require.False(t, ok)
}

func TestDashboardCacheEmptyKeyAndValue(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "", []byte(`{}`))
	c.Set(ctx, "days=7", nil)

	require.Empty(t, mr.Keys())
}
