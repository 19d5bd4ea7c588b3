package rstore

import (
	"context"
	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store"
)

// NewSet creates a new set adapter on the remote set <name>.
// Membership is decided on the encoded form of a value, so the codec must be
// deterministic (the json codec is).
func NewSet[T any](ctx context.Context, name string, config common.ClientConfig, c codec.ICodec) (*Set[T], error) {
	a, err := newAdapter(ctx, "Set", name, config, c)
	if err != nil {
		return nil, err
	}
	return &Set[T]{a}, nil
}

type Set[T any] struct {
	adapter
}

var _ store.Membership[any] = (*Set[any])(nil)

// --------------------------------------------------------------------------
// Interface Methods (docu see store.Membership)
// --------------------------------------------------------------------------

func (s *Set[T]) Set(ctx context.Context, value T) error {
	data, err := s.encode(value)
	if err != nil {
		return s.observe("set", err)
	}
	err = s.client.SAdd(ctx, s.keys.Base(), data).Err()
	return s.observe("set", err)
}

func (s *Set[T]) GetAll(ctx context.Context) ([]T, error) {
	data, err := s.client.SMembers(ctx, s.keys.Base()).Result()
	if err != nil {
		return nil, s.observe("getAll", err)
	}
	values, err := decodeAll[T](s.codec, data)
	return values, s.observe("getAll", err)
}

func (s *Set[T]) Delete(ctx context.Context, value T) error {
	data, err := s.encode(value)
	if err != nil {
		return s.observe("delete", err)
	}
	err = s.client.SRem(ctx, s.keys.Base(), data).Err()
	return s.observe("delete", err)
}

func (s *Set[T]) Exists(ctx context.Context, value T) (bool, error) {
	data, err := s.encode(value)
	if err != nil {
		return false, s.observe("exists", err)
	}
	ok, err := s.client.SIsMember(ctx, s.keys.Base(), data).Result()
	return ok, s.observe("exists", err)
}

func (s *Set[T]) Size(ctx context.Context) (int64, error) {
	n, err := s.client.SCard(ctx, s.keys.Base()).Result()
	return n, s.observe("size", err)
}

func (s *Set[T]) IsEmpty(ctx context.Context) (bool, error) {
	n, err := s.Size(ctx)
	return n == 0, err
}
