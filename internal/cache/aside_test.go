package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedBlog struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

func withTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(c)
	t.Cleanup(func() {
		SetClient(nil)
		_ = c.Close()
	})
	return mr
}

func TestAsideLoadsOnceThenServesFromCache(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	loads := 0
	load := func(dest *cachedBlog) func() error {
		return func() error {
			loads++
			dest.ID = 7
			dest.Title = "Cached Title"
			return nil
		}
	}

	var first cachedBlog
	require.NoError(t, Aside(ctx, BlogKey(7), &first, BlogTTL, load(&first)))
	assert.Equal(t, 1, loads)

	var second cachedBlog
	require.NoError(t, Aside(ctx, BlogKey(7), &second, BlogTTL, load(&second)))
	assert.Equal(t, 1, loads, "second read should hit the cache")
	assert.Equal(t, first, second)
}

func TestAsideInvalidate(t *testing.T) {
	withTestRedis(t)
	ctx := context.Background()

	loads := 0
	var blog cachedBlog
	load := func() error {
		loads++
		blog.ID = 3
		return nil
	}

	require.NoError(t, Aside(ctx, BlogKey(3), &blog, BlogTTL, load))
	InvalidateBlog(ctx, 3)
	require.NoError(t, Aside(ctx, BlogKey(3), &blog, BlogTTL, load))
	assert.Equal(t, 2, loads, "invalidation should force a reload")
}

func TestAsideWithoutClientCallsLoader(t *testing.T) {
	SetClient(nil)

	loads := 0
	var blog cachedBlog
	err := Aside(context.Background(), BlogKey(1), &blog, time.Minute, func() error {
		loads++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, loads)
}
