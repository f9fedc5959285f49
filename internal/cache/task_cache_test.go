package cache

import (
	"context"
	"testing"
	"time"

	dom "github.com/AlyonaQA/ptm-server/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *TaskCache {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewTaskCache(rdb, time.Minute)
}

func TestTaskCache_SetGet(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	tasks := []dom.Task{
		{ID: "t1", Title: "a", Status: dom.StatusOpen, UserID: "u1"},
		{ID: "t2", Title: "b", Status: dom.StatusDone, UserID: "u1"},
	}
	require.NoError(t, c.Set(ctx, "u1", "s=;q=", tasks))

	got, err := c.Get(ctx, "u1", "s=;q=")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "t1", got[0].ID)
}

func TestTaskCache_MissReturnsNil(t *testing.T) {
	c := newTestCache(t)

	got, err := c.Get(context.Background(), "u1", "s=;q=")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestTaskCache_EmptyResultIsAHit(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u1", "s=DONE;q=", nil))

	got, err := c.Get(ctx, "u1", "s=DONE;q=")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestTaskCache_InvalidateScopedToOwner(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "u1", "s=;q=", []dom.Task{{ID: "t1"}}))
	require.NoError(t, c.Set(ctx, "u1", "s=;q=foo", []dom.Task{{ID: "t1"}}))
	require.NoError(t, c.Set(ctx, "u2", "s=;q=", []dom.Task{{ID: "t9"}}))

	require.NoError(t, c.Invalidate(ctx, "u1"))

	got, err := c.Get(ctx, "u1", "s=;q=")
	require.NoError(t, err)
	require.Nil(t, got)
	got, err = c.Get(ctx, "u1", "s=;q=foo")
	require.NoError(t, err)
	require.Nil(t, got)

	// the other owner's entries survive
	got, err = c.Get(ctx, "u2", "s=;q=")
	require.NoError(t, err)
	require.Len(t, got, 1)
}
