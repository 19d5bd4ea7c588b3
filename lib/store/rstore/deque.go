package rstore

import (
	"context"
	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store"
	"github.com/redis/go-redis/v9"
)

// NewQueue creates a new first-in-first-out queue adapter on the remote list <name>
func NewQueue[T any](ctx context.Context, name string, config common.ClientConfig, c codec.ICodec) (*Queue[T], error) {
	a, err := newAdapter(ctx, "Queue", name, config, c)
	if err != nil {
		return nil, err
	}
	return &Queue[T]{deque[T]{adapter: a, lifo: false}}, nil
}

// NewStack creates a new last-in-first-out stack adapter on the remote list <name>
func NewStack[T any](ctx context.Context, name string, config common.ClientConfig, c codec.ICodec) (*Stack[T], error) {
	a, err := newAdapter(ctx, "Stack", name, config, c)
	if err != nil {
		return nil, err
	}
	return &Stack[T]{deque[T]{adapter: a, lifo: true}}, nil
}

// Queue pushes at the tail and pops at the head
type Queue[T any] struct {
	deque[T]
}

// Stack pushes at the tail and pops at the tail
type Stack[T any] struct {
	deque[T]
}

var (
	_ store.Ordered[any] = (*Queue[any])(nil)
	_ store.Ordered[any] = (*Stack[any])(nil)
)

// deque implements store.Ordered on a remote list. Values are always pushed at the
// tail, lifo decides at which end they are popped.
type deque[T any] struct {
	adapter
	lifo bool
}

// --------------------------------------------------------------------------
// Interface Methods (docu see store.Ordered)
// --------------------------------------------------------------------------

func (d *deque[T]) Set(ctx context.Context, value T) error {
	data, err := d.encode(value)
	if err != nil {
		return d.observe("set", err)
	}
	err = d.client.RPush(ctx, d.keys.Base(), data).Err()
	return d.observe("set", err)
}

func (d *deque[T]) Get(ctx context.Context) (T, bool, error) {
	var zero T
	data, loaded, err := getBytes(d.pop(ctx))
	if err != nil || !loaded {
		return zero, false, d.observe("get", err)
	}
	v, err := decodeValue[T](d.codec, data)
	if err != nil {
		return zero, false, d.observe("get", err)
	}
	return v, true, d.observe("get", nil)
}

// getManyPrealloc bounds the capacity reserved up front by GetMany
const getManyPrealloc = 64

func (d *deque[T]) GetMany(ctx context.Context, count int) ([]T, error) {
	values := make([]T, 0, min(max(count, 0), getManyPrealloc))
	for i := 0; i < count; i++ {
		v, loaded, err := d.Get(ctx)
		if err != nil {
			return values, err
		}
		if !loaded {
			break
		}
		values = append(values, v)
	}
	return values, nil
}

func (d *deque[T]) GetAll(ctx context.Context) ([]T, error) {
	data, err := d.client.LRange(ctx, d.keys.Base(), 0, -1).Result()
	if err != nil {
		return nil, d.observe("getAll", err)
	}
	values, err := decodeAll[T](d.codec, data)
	return values, d.observe("getAll", err)
}

func (d *deque[T]) Size(ctx context.Context) (int64, error) {
	n, err := d.client.LLen(ctx, d.keys.Base()).Result()
	return n, d.observe("size", err)
}

func (d *deque[T]) IsEmpty(ctx context.Context) (bool, error) {
	n, err := d.Size(ctx)
	return n == 0, err
}

// pop issues the pop command for the deque's order
func (d *deque[T]) pop(ctx context.Context) *redis.StringCmd {
	if d.lifo {
		return d.client.RPop(ctx, d.keys.Base())
	}
	return d.client.LPop(ctx, d.keys.Base())
}
