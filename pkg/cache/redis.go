package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"church-app-go/pkg/logger"
	rds "github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const scanBatch = 200

type Redis struct {
	client *rds.Client
	log    logger.Logger
	prefix string
}

// NewRedis parses a redis:// URL, connects and pings. Keys are namespaced
// with prefix.
func NewRedis(ctx context.Context, url, prefix string, log logger.Logger) (*Redis, error) {
	opts, err := rds.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	r := FromClient(rds.NewClient(opts), prefix, log)
	if err := r.Ping(ctx); err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return r, nil
}

func FromClient(client *rds.Client, prefix string, log logger.Logger) *Redis {
	return &Redis{client: client, log: log, prefix: prefix}
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

func (r *Redis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.SetBytes(ctx, key, payload, ttl)
}

func (r *Redis) Get(ctx context.Context, key string, dest any) error {
	payload, err := r.GetBytes(ctx, key)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, dest)
}

func (r *Redis) SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.log.Debug("cache: set", "key", key)
	return r.client.Set(ctx, r.key(key), value, ttl).Err()
}

func (r *Redis) GetBytes(ctx context.Context, key string) ([]byte, error) {
	payload, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, rds.Nil) {
			r.log.Debug("cache: miss", "key", key)
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return payload, nil
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, k := range keys {
		full = append(full, r.key(k))
	}
	return r.client.Del(ctx, full...).Err()
}

// DeletePrefix removes every key starting with prefix. Uses SCAN.
func (r *Redis) DeletePrefix(ctx context.Context, prefix string) error {
	var cursor uint64
	match := r.key(prefix) + "*"
	for {
		keys, next, err := r.client.Scan(ctx, cursor, match, scanBatch).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Incr bumps a fixed-window counter. The expiry is set when the window opens;
// the returned duration is the time left in the window.
func (r *Redis) Incr(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	full := r.key(key)

	count, err := r.client.Incr(ctx, full).Result()
	if err != nil {
		return 0, 0, err
	}
	if count == 1 {
		if err := r.client.PExpire(ctx, full, window).Err(); err != nil {
			return 0, 0, err
		}
	}

	left, err := r.client.PTTL(ctx, full).Result()
	if err != nil {
		return 0, 0, err
	}
	if left < 0 {
		left = window
	}
	return count, left, nil
}
