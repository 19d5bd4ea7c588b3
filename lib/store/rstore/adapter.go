package rstore

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store"
	"github.com/redis/go-redis/v9"
)

// adapter is a struct that stores all data needed by a structure adapter.
// Used by all adapters with the composition pattern. It is immutable after
// construction, so adapters need no internal synchronization.
type adapter struct {
	kind   string
	keys   store.KeyScheme
	client *redis.Client
	codec  codec.ICodec
}

// newAdapter validates the structure name, connects to the store and fills in the default codec
func newAdapter(ctx context.Context, kind, name string, config common.ClientConfig, c codec.ICodec) (adapter, error) {
	if name == "" {
		Logger.Errorf("Refusing to create %s adapter without a name", kind)
		return adapter{}, store.NewError(store.RetCInvalidArgument, fmt.Sprintf("%s name must not be empty", kind))
	}

	if c == nil {
		c = codec.Default()
	}

	client, err := Connect(ctx, config)
	if err != nil {
		return adapter{}, err
	}

	return adapter{
		kind:   kind,
		keys:   store.NewKeyScheme(name),
		client: client,
		codec:  c,
	}, nil
}

// Name returns the logical structure name
func (a *adapter) Name() string {
	return a.keys.Name
}

// String returns a short description of the adapter (e.g. "Queue(name=jobs)")
func (a *adapter) String() string {
	return fmt.Sprintf("%s(name=%s)", a.kind, a.keys.Name)
}

// Close releases the connection of the adapter
func (a *adapter) Close() error {
	return a.client.Close()
}

// Clear removes the structure. Used by all adapters that live in a single remote key.
func (a *adapter) Clear(ctx context.Context) error {
	err := a.client.Del(ctx, a.keys.Base()).Err()
	return a.observe("clear", err)
}

// observe records the operation in the metrics and returns err unchanged
func (a *adapter) observe(op string, err error) error {
	recordOperation(a.kind, op, err)
	return err
}

// encode serializes a caller value. Values the codec cannot handle are rejected as invalid arguments.
func (a *adapter) encode(v any) ([]byte, error) {
	data, err := a.codec.Encode(v)
	if err != nil {
		return nil, store.WrapError(store.RetCInvalidArgument, fmt.Sprintf("encoding value for %s", a), err)
	}
	return data, nil
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// decodeValue decodes a stored value into T
func decodeValue[T any](c codec.ICodec, data []byte) (T, error) {
	var v T
	if err := c.Decode(data, &v); err != nil {
		return v, store.WrapError(store.RetCDecode, fmt.Sprintf("decoding %d bytes with %s codec", len(data), c.Name()), err)
	}
	return v, nil
}

// decodeAll decodes a list of stored values into T
func decodeAll[T any](c codec.ICodec, data []string) ([]T, error) {
	values := make([]T, 0, len(data))
	for _, d := range data {
		v, err := decodeValue[T](c, []byte(d))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// getBytes interprets the reply of a single value read. A missing value is not an error.
func getBytes(cmd *redis.StringCmd) (data []byte, loaded bool, err error) {
	data, err = cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}
