package redis

import (
	"context"
	"errors"

	goredis "github.com/redis/go-redis/v9"

	"gastropos/internal/store/kv"
)

const DefaultPrefix = "gastropos:"

// KV stores each collection document under prefix+key.
type KV struct {
	client *goredis.Client
	prefix string
}

var _ kv.KV = (*KV)(nil)

func New(client *goredis.Client, prefix string) *KV {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &KV{client: client, prefix: prefix}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := k.client.Get(ctx, k.prefix+key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	return k.client.Set(ctx, k.prefix+key, value, 0).Err()
}

func (k *KV) Delete(ctx context.Context, key string) error {
	return k.client.Del(ctx, k.prefix+key).Err()
}
