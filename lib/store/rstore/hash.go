package rstore

import (
	"context"
	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store"
)

// NewHash creates a new hash map adapter. All fields live in the single remote hash <name>.
func NewHash[T any](ctx context.Context, name string, config common.ClientConfig, c codec.ICodec) (*Hash[T], error) {
	a, err := newAdapter(ctx, "Hash", name, config, c)
	if err != nil {
		return nil, err
	}
	return &Hash[T]{a}, nil
}

type Hash[T any] struct {
	adapter
}

var (
	_ store.Keyed[any] = (*Hash[any])(nil)
	_ store.Sized      = (*Hash[any])(nil)
)

// --------------------------------------------------------------------------
// Interface Methods (docu see store.Keyed and store.Sized)
// --------------------------------------------------------------------------

func (h *Hash[T]) Set(ctx context.Context, key string, value T) error {
	data, err := h.encode(value)
	if err != nil {
		return h.observe("set", err)
	}
	err = h.client.HSet(ctx, h.keys.Base(), key, data).Err()
	return h.observe("set", err)
}

func (h *Hash[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	data, loaded, err := getBytes(h.client.HGet(ctx, h.keys.Base(), key))
	if err != nil || !loaded {
		return zero, false, h.observe("get", err)
	}
	v, err := decodeValue[T](h.codec, data)
	if err != nil {
		return zero, false, h.observe("get", err)
	}
	return v, true, h.observe("get", nil)
}

func (h *Hash[T]) GetAll(ctx context.Context) (map[string]T, error) {
	data, err := h.client.HGetAll(ctx, h.keys.Base()).Result()
	if err != nil {
		return nil, h.observe("getAll", err)
	}

	result := make(map[string]T, len(data))
	for key, raw := range data {
		v, err := decodeValue[T](h.codec, []byte(raw))
		if err != nil {
			return nil, h.observe("getAll", err)
		}
		result[key] = v
	}
	return result, h.observe("getAll", nil)
}

func (h *Hash[T]) Delete(ctx context.Context, key string) error {
	err := h.client.HDel(ctx, h.keys.Base(), key).Err()
	return h.observe("delete", err)
}

func (h *Hash[T]) Exists(ctx context.Context, key string) (bool, error) {
	ok, err := h.client.HExists(ctx, h.keys.Base(), key).Result()
	return ok, h.observe("exists", err)
}

func (h *Hash[T]) Size(ctx context.Context) (int64, error) {
	n, err := h.client.HLen(ctx, h.keys.Base()).Result()
	return n, h.observe("size", err)
}

func (h *Hash[T]) IsEmpty(ctx context.Context) (bool, error) {
	n, err := h.Size(ctx)
	return n == 0, err
}
