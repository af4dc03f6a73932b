package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ranking struct {
	IDs []int64 `json:"ids"`
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = Close()
		mr.Close()
	})
	return mr
}

func TestAsideWithoutClientCallsFetch(t *testing.T) {
	SetClient(nil)
	calls := 0
	var dest ranking
	for i := 0; i < 2; i++ {
		err := Aside(context.Background(), PopularKey(10), &dest, time.Minute, func() error {
			calls++
			dest = ranking{IDs: []int64{1}}
			return nil
		})
		require.NoError(t, err)
	}
	assert.Equal(t, 2, calls)
}

func TestAsideCachesAndInvalidates(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	calls := 0
	load := func(dest *ranking) error {
		return Aside(ctx, PopularKey(2), dest, time.Minute, func() error {
			calls++
			*dest = ranking{IDs: []int64{3, 1}}
			return nil
		})
	}

	var first ranking
	require.NoError(t, load(&first))
	assert.True(t, mr.Exists(PopularKey(2)))
	assert.Equal(t, []int64{3, 1}, first.IDs)

	var second ranking
	require.NoError(t, load(&second))
	assert.Equal(t, 1, calls, "second read is served from redis")
	assert.Equal(t, first, second)

	require.NoError(t, mr.Set(PopularKey(5), `{"ids":[9]}`))
	InvalidatePopular(ctx)
	assert.False(t, mr.Exists(PopularKey(2)))
	assert.False(t, mr.Exists(PopularKey(5)))

	var third ranking
	require.NoError(t, load(&third))
	assert.Equal(t, 2, calls)
}

func TestAsideExpires(t *testing.T) {
	mr := setupRedis(t)
	ctx := context.Background()

	var dest ranking
	require.NoError(t, Aside(ctx, PopularKey(1), &dest, time.Second, func() error {
		dest = ranking{IDs: []int64{1}}
		return nil
	}))
	mr.FastForward(2 * time.Second)
	assert.False(t, mr.Exists(PopularKey(1)))
}

func TestAsideFetchErrorIsNotCached(t *testing.T) {
	mr := setupRedis(t)
	boom := errors.New("boom")

	var dest ranking
	err := Aside(context.Background(), PopularKey(3), &dest, time.Minute, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists(PopularKey(3)))
}

func TestAsideCorruptEntryIsRefetched(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set(PopularKey(4), "not json"))

	var dest ranking
	require.NoError(t, Aside(context.Background(), PopularKey(4), &dest, time.Minute, func() error {
		dest = ranking{IDs: []int64{4}}
		return nil
	}))
	assert.Equal(t, []int64{4}, dest.IDs)

	got, err := mr.Get(PopularKey(4))
	require.NoError(t, err)
	assert.JSONEq(t, `{"ids":[4]}`, got)
}

func TestInitRedisEmptyAddrDisablesCache(t *testing.T) {
	InitRedis("")
	assert.Nil(t, GetClient())
}
