package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dealerfin/dealerfin/internal/domain/model"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestQuoteCache(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		_, rdb := setupRedis(t)
		c := NewQuoteCache(rdb, time.Minute)

		_, ok, err := c.Get(ctx, "civic|lease|720")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, c.Set(ctx, "civic|lease|720", []byte(`{"monthly_payment":"412.50"}`)))

		got, ok, err := c.Get(ctx, "civic|lease|720")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.JSONEq(t, `{"monthly_payment":"412.50"}`, string(got))
	})

	t.Run("entries expire", func(t *testing.T) {
		mr, rdb := setupRedis(t)
		c := NewQuoteCache(rdb, 10*time.Minute)

		require.NoError(t, c.Set(ctx, "k", []byte("v")))
		assert.Equal(t, 10*time.Minute, mr.TTL(quoteKeyPrefix+"k"))

		mr.FastForward(11 * time.Minute)
		_, ok, err := c.Get(ctx, "k")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("server errors surface", func(t *testing.T) {
		mr, rdb := setupRedis(t)
		c := NewQuoteCache(rdb, time.Minute)
		mr.SetError("LOADING")

		_, _, err := c.Get(ctx, "k")
		require.Error(t, err)
	})
}

func TestNotificationFeed(t *testing.T) {
	ctx := context.Background()
	user := uuid.New()

	note := func(i int) model.Notification {
		return model.Notification{
			ID:        uuid.New(),
			UserID:    user,
			Type:      "finance.offer.created",
			Title:     fmt.Sprintf("offer %d", i),
			CreatedAt: time.Date(2026, 1, 1, 0, i, 0, 0, time.UTC),
		}
	}

	t.Run("newest first", func(t *testing.T) {
		_, rdb := setupRedis(t)
		feed := NewNotificationFeed(rdb, 50)

		for i := 1; i <= 3; i++ {
			require.NoError(t, feed.Push(ctx, note(i)))
		}

		got, err := feed.List(ctx, user, 10)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "offer 3", got[0].Title)
		assert.Equal(t, "offer 1", got[2].Title)
		assert.True(t, got[0].CreatedAt.Equal(note(3).CreatedAt))
	})

	t.Run("capped at capacity", func(t *testing.T) {
		mr, rdb := setupRedis(t)
		feed := NewNotificationFeed(rdb, 5)

		for i := 1; i <= 8; i++ {
			require.NoError(t, feed.Push(ctx, note(i)))
		}

		items, err := mr.List(feedKey(user))
		require.NoError(t, err)
		assert.Len(t, items, 5)

		got, err := feed.List(ctx, user, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "offer 8", got[0].Title)
		assert.Equal(t, "offer 7", got[1].Title)
	})

	t.Run("redelivered notification is pushed once", func(t *testing.T) {
		mr, rdb := setupRedis(t)
		feed := NewNotificationFeed(rdb, 50)

		n := note(1)
		require.NoError(t, feed.Push(ctx, n))
		require.NoError(t, feed.Push(ctx, n))
		require.NoError(t, feed.Push(ctx, note(2)))

		got, err := feed.List(ctx, user, 10)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "offer 2", got[0].Title)
		assert.Equal(t, n.ID, got[1].ID)
		assert.Equal(t, seenTTL, mr.TTL(seenKey(n.ID)))
	})

	t.Run("empty feed", func(t *testing.T) {
		_, rdb := setupRedis(t)
		feed := NewNotificationFeed(rdb, 50)

		got, err := feed.List(ctx, uuid.New(), 50)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("feeds are per user", func(t *testing.T) {
		_, rdb := setupRedis(t)
		feed := NewNotificationFeed(rdb, 50)
		require.NoError(t, feed.Push(ctx, note(1)))

		got, err := feed.List(ctx, uuid.New(), 50)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestReadinessCheck(t *testing.T) {
	mr, rdb := setupRedis(t)
	check := ReadinessCheck(rdb)

	require.NoError(t, check(context.Background()))

	mr.SetError("ERR server shutting down")
	require.Error(t, check(context.Background()))
}
