package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGet(t *testing.T) {
	c := New[float64](time.Minute, 0)
	defer c.Stop()

	c.Set("INFY.NS", 1502.35)

	got, ok := c.Get("INFY.NS")
	require.True(t, ok)
	assert.Equal(t, 1502.35, got)
}

func TestGetMissingKey(t *testing.T) {
	c := New[float64](time.Minute, 0)
	defer c.Stop()

	got, ok := c.Get("nope")
	assert.False(t, ok)
	assert.Equal(t, float64(0), got)
}

func TestExpiredEntryBehavesAsAbsent(t *testing.T) {
	c := New[string](20*time.Millisecond, 0)
	defer c.Stop()

	c.Set("k", "v")
	time.Sleep(40 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok, "expired entry must be invisible even before the janitor runs")
}

func TestSetTTLOverridesDefault(t *testing.T) {
	c := New[string](10*time.Millisecond, 0)
	defer c.Stop()

	c.SetTTL("long", "v", time.Minute)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("long")
	assert.True(t, ok)
}

func TestOverwriteWins(t *testing.T) {
	c := New[float64](time.Minute, 0)
	defer c.Stop()

	c.Set("k", 1)
	c.Set("k", 2)

	got, _ := c.Get("k")
	assert.Equal(t, float64(2), got)
}

func TestJanitorRemovesExpiredEntries(t *testing.T) {
	c := New[int](10*time.Millisecond, 20*time.Millisecond)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	require.Equal(t, 2, c.Len())

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 0, c.Len())
}

func TestConcurrentReadersAndWriters(t *testing.T) {
	c := New[int](time.Minute, time.Millisecond)
	defer c.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			c.Set(fmt.Sprintf("key-%d", i%10), i)
		}(i)
		go func(i int) {
			defer wg.Done()
			c.Get(fmt.Sprintf("key-%d", i%10))
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Len(), 10)
}

func TestStopIsIdempotent(t *testing.T) {
	c := New[int](time.Minute, time.Millisecond)
	c.Stop()
	c.Stop()

	// Still usable after Stop.
	c.Set("k", 1)
	_, ok := c.Get("k")
	assert.True(t, ok)
}
