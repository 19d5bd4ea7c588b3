package rstore

import (
	"context"
	"errors"
	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store"
	"github.com/redis/go-redis/v9"
)

// NewSortedSet creates a new sorted set adapter on the remote sorted set <name>.
// Like Set, members are identified by their encoded form.
func NewSortedSet[T any](ctx context.Context, name string, config common.ClientConfig, c codec.ICodec) (*SortedSet[T], error) {
	a, err := newAdapter(ctx, "SortedSet", name, config, c)
	if err != nil {
		return nil, err
	}
	return &SortedSet[T]{a}, nil
}

type SortedSet[T any] struct {
	adapter
}

var _ store.Scored[any] = (*SortedSet[any])(nil)

// --------------------------------------------------------------------------
// Interface Methods (docu see store.Scored)
// --------------------------------------------------------------------------

func (z *SortedSet[T]) Set(ctx context.Context, value T, score float64) error {
	data, err := z.encode(value)
	if err != nil {
		return z.observe("set", err)
	}
	err = z.client.ZAdd(ctx, z.keys.Base(), redis.Z{Score: score, Member: string(data)}).Err()
	return z.observe("set", err)
}

func (z *SortedSet[T]) Get(ctx context.Context, value T) (float64, bool, error) {
	data, err := z.encode(value)
	if err != nil {
		return 0, false, z.observe("get", err)
	}
	score, err := z.client.ZScore(ctx, z.keys.Base(), string(data)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, z.observe("get", nil)
	}
	if err != nil {
		return 0, false, z.observe("get", err)
	}
	return score, true, z.observe("get", nil)
}

func (z *SortedSet[T]) GetByRank(ctx context.Context, start, stop int64) ([]T, error) {
	data, err := z.client.ZRange(ctx, z.keys.Base(), start, stop).Result()
	if err != nil {
		return nil, z.observe("getByRank", err)
	}
	values, err := decodeAll[T](z.codec, data)
	return values, z.observe("getByRank", err)
}

func (z *SortedSet[T]) GetAll(ctx context.Context) ([]T, error) {
	return z.GetByRank(ctx, 0, -1)
}

func (z *SortedSet[T]) Delete(ctx context.Context, value T) error {
	data, err := z.encode(value)
	if err != nil {
		return z.observe("delete", err)
	}
	err = z.client.ZRem(ctx, z.keys.Base(), string(data)).Err()
	return z.observe("delete", err)
}

func (z *SortedSet[T]) Exists(ctx context.Context, value T) (bool, error) {
	_, ok, err := z.Get(ctx, value)
	return ok, err
}

func (z *SortedSet[T]) Size(ctx context.Context) (int64, error) {
	n, err := z.client.ZCard(ctx, z.keys.Base()).Result()
	return n, z.observe("size", err)
}

func (z *SortedSet[T]) IsEmpty(ctx context.Context) (bool, error) {
	n, err := z.Size(ctx)
	return n == 0, err
}
