package storage

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/food-order/internal/core/domain"
)

func newTestRedis(t *testing.T) (*RedisAdapter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisAdapter(client, time.Hour), mr
}

func TestCart_MissingSessionIsEmpty(t *testing.T) {
	adapter, _ := newTestRedis(t)

	cart, err := adapter.GetCart(context.Background(), "nobody")
	require.NoError(t, err)
	assert.True(t, cart.IsEmpty())
	assert.Nil(t, cart.RestaurantID)
}

func TestCart_SaveAndLoad(t *testing.T) {
	adapter, mr := newTestRedis(t)
	ctx := context.Background()

	cart := domain.NewCart()
	cart.Add(domain.MenuItem{ID: 7, RestaurantID: 3})
	cart.Add(domain.MenuItem{ID: 7, RestaurantID: 3})
	require.NoError(t, adapter.SaveCart(ctx, "s1", cart))

	loaded, err := adapter.GetCart(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded.RestaurantID)
	assert.Equal(t, int64(3), *loaded.RestaurantID)
	assert.Equal(t, 2, loaded.Quantity(7))

	raw, err := mr.Get(cartKeyPrefix + "s1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"restaurant_id":3,"items":{"7":2}}`, raw)
	assert.Equal(t, time.Hour, mr.TTL(cartKeyPrefix+"s1"))
}

func TestCart_Clear(t *testing.T) {
	adapter, mr := newTestRedis(t)
	ctx := context.Background()

	cart := domain.NewCart()
	cart.Add(domain.MenuItem{ID: 1, RestaurantID: 1})
	require.NoError(t, adapter.SaveCart(ctx, "s1", cart))
	require.NoError(t, adapter.ClearCart(ctx, "s1"))

	assert.False(t, mr.Exists(cartKeyPrefix+"s1"))
	loaded, err := adapter.GetCart(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, loaded.IsEmpty())
}

func TestCheckoutGuard_SingleHolder(t *testing.T) {
	adapter, _ := newTestRedis(t)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		winners atomic.Int32
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := adapter.AcquireCheckout(ctx, "s1")
			if err == nil && ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestCheckoutGuard_ReleaseRequiresToken(t *testing.T) {
	adapter, mr := newTestRedis(t)
	ctx := context.Background()

	token, ok, err := adapter.AcquireCheckout(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, adapter.ReleaseCheckout(ctx, "s1", "someone-else"))
	assert.True(t, mr.Exists(checkoutKeyPrefix+"s1"))

	require.NoError(t, adapter.ReleaseCheckout(ctx, "s1", token))
	assert.False(t, mr.Exists(checkoutKeyPrefix+"s1"))

	_, ok, err = adapter.AcquireCheckout(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCheckoutGuard_Expires(t *testing.T) {
	adapter, mr := newTestRedis(t)
	ctx := context.Background()

	_, ok, err := adapter.AcquireCheckout(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(checkoutGuardTTL + time.Second)

	_, ok, err = adapter.AcquireCheckout(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFlashes_PopOnce(t *testing.T) {
	adapter, _ := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, adapter.AddFlash(ctx, "s1", domain.Flash{Level: domain.FlashSuccess, Message: "first"}))
	require.NoError(t, adapter.AddFlash(ctx, "s1", domain.Flash{Level: domain.FlashError, Message: "second"}))

	flashes, err := adapter.PopFlashes(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, flashes, 2)
	assert.Equal(t, "first", flashes[0].Message)
	assert.Equal(t, domain.FlashError, flashes[1].Level)

	flashes, err = adapter.PopFlashes(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, flashes)
}
