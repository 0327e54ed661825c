package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func newTestCache(t *testing.T, maxSizeMB int64) (*MemoryCache, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	mc := NewMemoryCache(maxSizeMB, time.Hour)
	mc.now = clock.now
	t.Cleanup(mc.Stop)
	return mc, clock
}

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	mc, _ := newTestCache(t, 1)

	_, found := mc.Get(ctx, "missing")
	assert.False(t, found)

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), time.Minute))
	got, found := mc.Get(ctx, "k")
	require.True(t, found)
	assert.Equal(t, []byte("v"), got)
	assert.True(t, mc.Has(ctx, "k"))

	stats := mc.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(2), stats.Size)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	mc, clock := newTestCache(t, 1)

	require.NoError(t, mc.Set(ctx, "k", []byte("v"), time.Minute))
	clock.t = clock.t.Add(time.Minute)

	assert.False(t, mc.Has(ctx, "k"))
	_, found := mc.Get(ctx, "k")
	assert.False(t, found)
	assert.Equal(t, 0, mc.Stats().Entries)
	assert.Equal(t, int64(0), mc.Stats().Size)
}

func TestMemoryCache_ReplaceAdjustsSize(t *testing.T) {
	ctx := context.Background()
	mc, _ := newTestCache(t, 1)

	require.NoError(t, mc.Set(ctx, "k", []byte("long value"), 0))
	require.NoError(t, mc.Set(ctx, "k", []byte("v"), 0))

	assert.Equal(t, int64(2), mc.Stats().Size)
	assert.Equal(t, 1, mc.Stats().Entries)
}

func TestMemoryCache_EvictsClosestToExpiry(t *testing.T) {
	ctx := context.Background()
	mc, _ := newTestCache(t, 1)
	half := strings.Repeat("x", 600*1024)

	require.NoError(t, mc.Set(ctx, "soon", []byte(half), time.Minute))
	require.NoError(t, mc.Set(ctx, "later", []byte(half), time.Hour))

	assert.False(t, mc.Has(ctx, "soon"))
	assert.True(t, mc.Has(ctx, "later"))
	assert.Equal(t, int64(1), mc.Stats().Evictions)
}

func TestMemoryCache_DropsOversizedValues(t *testing.T) {
	ctx := context.Background()
	mc, _ := newTestCache(t, 1)

	require.NoError(t, mc.Set(ctx, "big", make([]byte, 2*1024*1024), time.Minute))
	assert.False(t, mc.Has(ctx, "big"))
}

func TestMemoryCache_DeleteClear(t *testing.T) {
	ctx := context.Background()
	mc, _ := newTestCache(t, 0)

	require.NoError(t, mc.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, mc.Set(ctx, "b", []byte("2"), time.Minute))

	require.NoError(t, mc.Delete(ctx, "a"))
	require.NoError(t, mc.Delete(ctx, "a"))
	assert.False(t, mc.Has(ctx, "a"))
	assert.Equal(t, int64(1), mc.Stats().Deletes)

	require.NoError(t, mc.Clear(ctx))
	assert.False(t, mc.Has(ctx, "b"))
	assert.Equal(t, int64(0), mc.Stats().Size)
}

func TestMemoryCache_StopIsIdempotent(t *testing.T) {
	mc := NewMemoryCache(1, 10*time.Millisecond)
	mc.Stop()
	mc.Stop()
}
