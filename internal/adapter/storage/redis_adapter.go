package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rl1809/food-order/internal/core/domain"
)

const (
	cartKeyPrefix     = "session:cart:"
	flashKeyPrefix    = "session:flash:"
	checkoutKeyPrefix = "session:checkout:"
	checkoutGuardTTL  = 30 * time.Second
	DefaultSessionTTL = 14 * 24 * time.Hour
)

// releaseCheckoutScript deletes the guard only if it still holds the caller's token.
var releaseCheckoutScript = redis.NewScript(`
local key = KEYS[1]
local token = ARGV[1]

if redis.call('GET', key) == token then
	return redis.call('DEL', key)
end

return 0
`)

type RedisAdapter struct {
	client     *redis.Client
	sessionTTL time.Duration
}

func NewRedisAdapter(client *redis.Client, sessionTTL time.Duration) *RedisAdapter {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	return &RedisAdapter{client: client, sessionTTL: sessionTTL}
}

func (r *RedisAdapter) GetCart(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := r.client.Get(ctx, cartKeyPrefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		cart := domain.NewCart()
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	if cart.Items == nil {
		cart.Items = map[string]int{}
	}
	return &cart, nil
}

func (r *RedisAdapter) SaveCart(ctx context.Context, sessionID string, cart domain.Cart) error {
	if cart.Items == nil {
		cart.Items = map[string]int{}
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return r.client.Set(ctx, cartKeyPrefix+sessionID, data, r.sessionTTL).Err()
}

func (r *RedisAdapter) ClearCart(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, cartKeyPrefix+sessionID).Err()
}

func (r *RedisAdapter) AcquireCheckout(ctx context.Context, sessionID string) (string, bool, error) {
	token := uuid.NewString()
	ok, err := r.client.SetNX(ctx, checkoutKeyPrefix+sessionID, token, checkoutGuardTTL).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (r *RedisAdapter) ReleaseCheckout(ctx context.Context, sessionID, token string) error {
	return releaseCheckoutScript.Run(ctx, r.client, []string{checkoutKeyPrefix + sessionID}, token).Err()
}

func (r *RedisAdapter) AddFlash(ctx context.Context, sessionID string, flash domain.Flash) error {
	data, err := json.Marshal(flash)
	if err != nil {
		return fmt.Errorf("encode flash: %w", err)
	}

	key := flashKeyPrefix + sessionID
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.Expire(ctx, key, r.sessionTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *RedisAdapter) PopFlashes(ctx context.Context, sessionID string) ([]domain.Flash, error) {
	key := flashKeyPrefix + sessionID
	pipe := r.client.TxPipeline()
	values := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, err
	}

	flashes := make([]domain.Flash, 0, len(values.Val()))
	for _, v := range values.Val() {
		var f domain.Flash
		if err := json.Unmarshal([]byte(v), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}
