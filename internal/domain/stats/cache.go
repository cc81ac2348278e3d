package stats

import (
	"context"
	"errors"
	"time"
)

var errCacheMiss = errors.New("cache miss")

type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, any) error {
	return errCacheMiss
}

func (noopCache) Set(context.Context, string, any, time.Duration) error {
	return nil
}
