package kvstore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/Spok95/school-analytics/internal/ctxutil"
)

// Redis хранит каждую коллекцию строкой под ключом prefix+key.
type Redis struct {
	client *redis.Client
	prefix string
}

func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

func (r *Redis) Read(ctx context.Context, key string) (string, bool, error) {
	ctx, cancel := ctxutil.WithStoreTimeout(ctx)
	defer cancel()

	v, err := r.client.Get(ctx, r.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Write(ctx context.Context, key, value string) error {
	ctx, cancel := ctxutil.WithStoreTimeout(ctx)
	defer cancel()
	return r.client.Set(ctx, r.prefix+key, value, 0).Err()
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
