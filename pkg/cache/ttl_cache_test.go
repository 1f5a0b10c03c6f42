package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	c := New[string, int](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestExpiredEntryIsNotReturned(t *testing.T) {
	c := New[string, int](20*time.Millisecond, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	time.Sleep(40 * time.Millisecond)

	// Fiziksel silme henüz olmamış olabilir ama Get stale değer DÖNDÜRMEZ.
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	c := New[string, string](time.Minute, time.Minute)
	defer c.Close()

	c.Set("a", "x")
	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestEvictExpiredShrinksMap(t *testing.T) {
	c := New[string, int](10*time.Millisecond, time.Minute)
	defer c.Close()

	c.Set("a", 1)
	c.Set("b", 2)
	time.Sleep(30 * time.Millisecond)

	c.evictExpired()
	assert.Equal(t, 0, c.Len())
}
