package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryClient_ExpiresEntries(t *testing.T) {
	c := NewMemoryClient()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte(`{"a":1}`), time.Minute))
	v, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, v)

	now = now.Add(time.Minute)
	_, err = c.Get(ctx, "k")
	assert.Equal(t, ErrCacheMiss, err)
}

func TestMemoryClient_Incr(t *testing.T) {
	c := NewMemoryClient()
	ctx := context.Background()

	n, err := c.Incr(ctx, "hits")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	require.NoError(t, c.Set(ctx, "hits", 5, 0))
	n, err = c.Incr(ctx, "hits")
	require.NoError(t, err)
	assert.EqualValues(t, 6, n)

	got, err := c.GetInt(ctx, "hits")
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}
