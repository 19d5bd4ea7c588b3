package rstore

import (
	"context"
	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store"
	"reflect"
)

// NewList creates a new list adapter on the remote list <name>
func NewList[T any](ctx context.Context, name string, config common.ClientConfig, c codec.ICodec) (*List[T], error) {
	a, err := newAdapter(ctx, "List", name, config, c)
	if err != nil {
		return nil, err
	}
	return &List[T]{a}, nil
}

// List keeps values in insertion order and addresses them by index
type List[T any] struct {
	adapter
}

var _ store.Indexed[any] = (*List[any])(nil)

// --------------------------------------------------------------------------
// Interface Methods (docu see store.Indexed)
// --------------------------------------------------------------------------

func (l *List[T]) Set(ctx context.Context, value T) error {
	data, err := l.encode(value)
	if err != nil {
		return l.observe("set", err)
	}
	err = l.client.RPush(ctx, l.keys.Base(), data).Err()
	return l.observe("set", err)
}

func (l *List[T]) Get(ctx context.Context, index int64) (T, bool, error) {
	var zero T
	data, loaded, err := getBytes(l.client.LIndex(ctx, l.keys.Base(), index))
	if err != nil || !loaded {
		return zero, false, l.observe("get", err)
	}
	v, err := decodeValue[T](l.codec, data)
	if err != nil {
		return zero, false, l.observe("get", err)
	}
	return v, true, l.observe("get", nil)
}

func (l *List[T]) GetAll(ctx context.Context) ([]T, error) {
	data, err := l.client.LRange(ctx, l.keys.Base(), 0, -1).Result()
	if err != nil {
		return nil, l.observe("getAll", err)
	}
	values, err := decodeAll[T](l.codec, data)
	return values, l.observe("getAll", err)
}

// Delete removes all occurrences of value (compared by encoded form)
func (l *List[T]) Delete(ctx context.Context, value T) error {
	data, err := l.encode(value)
	if err != nil {
		return l.observe("delete", err)
	}
	err = l.client.LRem(ctx, l.keys.Base(), 0, data).Err()
	return l.observe("delete", err)
}

func (l *List[T]) Size(ctx context.Context) (int64, error) {
	n, err := l.client.LLen(ctx, l.keys.Base()).Result()
	return n, l.observe("size", err)
}

func (l *List[T]) IsEmpty(ctx context.Context) (bool, error) {
	n, err := l.Size(ctx)
	return n == 0, err
}

// --------------------------------------------------------------------------
// List specific methods
// --------------------------------------------------------------------------

// Exists returns whether the list exists in the store (a list without elements does not)
func (l *List[T]) Exists(ctx context.Context) (bool, error) {
	n, err := l.client.Exists(ctx, l.keys.Base()).Result()
	return n > 0, l.observe("exists", err)
}

// Contains returns whether the list holds at least one value equal to value
func (l *List[T]) Contains(ctx context.Context, value T) (bool, error) {
	n, err := l.Count(ctx, value)
	return n > 0, err
}

// Count returns the number of values structurally equal to value.
// value is normalized through the codec first, so it compares like a stored value.
func (l *List[T]) Count(ctx context.Context, value T) (int, error) {
	data, err := l.encode(value)
	if err != nil {
		return 0, err
	}
	needle, err := decodeValue[T](l.codec, data)
	if err != nil {
		return 0, err
	}

	values, err := l.GetAll(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, v := range values {
		if reflect.DeepEqual(v, needle) {
			count++
		}
	}
	return count, nil
}
