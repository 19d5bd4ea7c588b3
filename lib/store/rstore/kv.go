package rstore

import (
	"context"
	"errors"
	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store"
	"github.com/redis/go-redis/v9"
	"time"
)

const (
	// scanBatch is the COUNT hint for SCAN and the chunk size for multi-key commands
	scanBatch = 500
)

// NewKeyValue creates a new key-value adapter. Every item is stored under its own
// remote key "<name>:<key>", so items can expire individually.
func NewKeyValue[T any](ctx context.Context, name string, config common.ClientConfig, c codec.ICodec) (*KeyValue[T], error) {
	a, err := newAdapter(ctx, "KeyValue", name, config, c)
	if err != nil {
		return nil, err
	}
	return &KeyValue[T]{a}, nil
}

type KeyValue[T any] struct {
	adapter
}

var _ store.Expiring[any] = (*KeyValue[any])(nil)

// --------------------------------------------------------------------------
// Interface Methods (docu see store.Keyed and store.Expiring)
// --------------------------------------------------------------------------

func (kv *KeyValue[T]) Set(ctx context.Context, key string, value T) error {
	return kv.SetTTL(ctx, key, value, 0)
}

func (kv *KeyValue[T]) SetTTL(ctx context.Context, key string, value T, ttl time.Duration) error {
	data, err := kv.encode(value)
	if err != nil {
		return kv.observe("set", err)
	}
	// expiry is enforced by the store
	err = kv.client.Set(ctx, kv.keys.Key(key), data, max(ttl, 0)).Err()
	return kv.observe("set", err)
}

func (kv *KeyValue[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	data, loaded, err := getBytes(kv.client.Get(ctx, kv.keys.Key(key)))
	if err != nil || !loaded {
		return zero, false, kv.observe("get", err)
	}
	v, err := decodeValue[T](kv.codec, data)
	if err != nil {
		return zero, false, kv.observe("get", err)
	}
	return v, true, kv.observe("get", nil)
}

func (kv *KeyValue[T]) GetAll(ctx context.Context) (map[string]T, error) {
	keys, err := kv.scanKeys(ctx)
	if err != nil {
		return nil, kv.observe("getAll", err)
	}

	result := make(map[string]T, len(keys))
	for start := 0; start < len(keys); start += scanBatch {
		chunk := keys[start:min(start+scanBatch, len(keys))]
		values, err := kv.client.MGet(ctx, chunk...).Result()
		if err != nil {
			return nil, kv.observe("getAll", err)
		}
		for i, raw := range values {
			// expired or deleted between SCAN and MGET
			str, ok := raw.(string)
			if !ok {
				continue
			}
			v, err := decodeValue[T](kv.codec, []byte(str))
			if err != nil {
				return nil, kv.observe("getAll", err)
			}
			item, _ := kv.keys.Item(chunk[i])
			result[item] = v
		}
	}
	return result, kv.observe("getAll", nil)
}

func (kv *KeyValue[T]) Delete(ctx context.Context, key string) error {
	err := kv.client.Del(ctx, kv.keys.Key(key)).Err()
	return kv.observe("delete", err)
}

func (kv *KeyValue[T]) Exists(ctx context.Context, key string) (bool, error) {
	n, err := kv.client.Exists(ctx, kv.keys.Key(key)).Result()
	return n > 0, kv.observe("exists", err)
}

// Clear deletes every key of the namespace
func (kv *KeyValue[T]) Clear(ctx context.Context) error {
	keys, err := kv.scanKeys(ctx)
	if err != nil {
		return kv.observe("clear", err)
	}
	for start := 0; start < len(keys); start += scanBatch {
		chunk := keys[start:min(start+scanBatch, len(keys))]
		if err := kv.client.Del(ctx, chunk...).Err(); err != nil {
			return kv.observe("clear", err)
		}
	}
	return kv.observe("clear", nil)
}

// TTL returns the remaining time to live of a key.
// The boolean is false if the key does not exist or has no expiry.
func (kv *KeyValue[T]) TTL(ctx context.Context, key string) (time.Duration, bool, error) {
	ttl, err := kv.client.TTL(ctx, kv.keys.Key(key)).Result()
	if errors.Is(err, redis.Nil) {
		err = nil
	}
	if err != nil || ttl < 0 {
		return 0, false, kv.observe("ttl", err)
	}
	return ttl, true, kv.observe("ttl", nil)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// scanKeys collects the physical keys of the namespace with SCAN (KEYS would block the store)
func (kv *KeyValue[T]) scanKeys(ctx context.Context) ([]string, error) {
	var keys []string
	iter := kv.client.Scan(ctx, 0, kv.keys.Pattern(), scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	return keys, iter.Err()
}
