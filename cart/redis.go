package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix   = "cart:"
	maxUpdateRetries = 5
)

// RedisStore keeps carts as JSON values under "cart:{id}" so several
// storefront processes can share visitor sessions. Each write refreshes
// the key's TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient builds a client from a redis:// URL, falling back to
// treating the value as a plain host:port address.
func NewRedisClient(url string) *redis.Client {
	opts, err := redis.ParseURL(url)
	if err != nil {
		opts = &redis.Options{
			Addr:         url,
			MinIdleConns: 1,
			DialTimeout:  10 * time.Second,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 5 * time.Second,
			PoolSize:     10,
		}
	}
	return redis.NewClient(opts)
}

// NewRedisStore wraps client. Carts expire ttl after their last write.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Name identifies the store in the module registry.
func (s *RedisStore) Name() string { return "cart-redis-store" }

// Start checks the connection.
func (s *RedisStore) Start(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Stop closes the client.
func (s *RedisStore) Stop() error {
	return s.client.Close()
}

// Load returns the cart, or nil if the key does not exist.
func (s *RedisStore) Load(ctx context.Context, id string) ([]Item, error) {
	if id == "" {
		return nil, ErrNoCartID
	}
	val, err := s.client.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart from redis: %w", err)
	}
	return decodeItems(val)
}

// Update runs fn inside a WATCH transaction and retries when another
// writer touched the same cart in between.
func (s *RedisStore) Update(ctx context.Context, id string, fn func([]Item) ([]Item, error)) error {
	if id == "" {
		return ErrNoCartID
	}
	key := redisKey(id)
	txf := func(tx *redis.Tx) error {
		val, err := tx.Get(ctx, key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("get cart from redis: %w", err)
		}
		var current []Item
		if err == nil {
			if current, err = decodeItems(val); err != nil {
				return err
			}
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(next) == 0 {
				pipe.Del(ctx, key)
				return nil
			}
			data, err := json.Marshal(next)
			if err != nil {
				return fmt.Errorf("marshal cart: %w", err)
			}
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("update cart %s: too much contention", id)
}

// Delete removes the cart key.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, redisKey(id)).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("delete cart from redis: %w", err)
	}
	return nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func decodeItems(data []byte) ([]Item, error) {
	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart: %w", err)
	}
	return items, nil
}
