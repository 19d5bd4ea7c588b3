package rstore

import (
	"context"
	"errors"
	"fmt"
	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store"
	"github.com/redis/go-redis/v9"
	"strings"
	"time"
)

const (
	// DefaultConsumerName is used when no consumer name is given
	DefaultConsumerName = "default"
	// PayloadField is the stream entry field holding the encoded value
	PayloadField = "data"
)

// NewStream creates a new stream adapter for the stream name, read through the
// consumer group group as consumer. An empty consumer means DefaultConsumerName.
//
// The group is created anchored at the start of the stream, creating the stream
// if needed. A group that already exists is reused. Construction fails if the
// store cannot be reached or the group cannot be created; no adapter is returned then.
func NewStream[T any](
	ctx context.Context,
	name, group, consumer string,
	config common.ClientConfig,
	c codec.ICodec,
) (*Stream[T], error) {
	if group == "" {
		Logger.Errorf("Refusing to create stream adapter for %s without a consumer group", name)
		return nil, store.NewError(store.RetCInvalidArgument, fmt.Sprintf("consumer group name for stream %s must not be empty", name))
	}
	if consumer == "" {
		consumer = DefaultConsumerName
	}

	a, err := newAdapter(ctx, "Stream", name, config, c)
	if err != nil {
		return nil, err
	}

	s := &Stream[T]{
		adapter:  a,
		group:    group,
		consumer: consumer,
	}

	if err := s.ensureGroup(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}

	return s, nil
}

// Stream is an append-only log consumed through a consumer group.
//
// Read acknowledges every entry it returns before returning. Delivery is therefore
// at-most-once from the caller's point of view: an entry that was read but not
// processed (e.g. because the process crashed) is not redelivered.
type Stream[T any] struct {
	adapter
	group    string
	consumer string
}

var _ store.Log[any] = (*Stream[any])(nil)

// Group returns the consumer group name
func (s *Stream[T]) Group() string {
	return s.group
}

// Consumer returns the consumer name
func (s *Stream[T]) Consumer() string {
	return s.consumer
}

// Append encodes value and appends it to the stream. It returns the store assigned entry id.
func (s *Stream[T]) Append(ctx context.Context, value T) (string, error) {
	data, err := s.encode(value)
	if err != nil {
		return "", s.observe("append", err)
	}

	id, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.keys.Base(),
		Values: map[string]any{PayloadField: data},
	}).Result()
	return id, s.observe("append", err)
}

// Read reads up to count undelivered entries for the group (count <= 0 means no limit).
// If none are available it waits up to block for at least one; block <= 0 returns immediately.
// Every delivered entry is acknowledged within this call. No entries is not an error.
//
// Entries that cannot be decoded are left out of the result, and the error joins one
// decode error per such entry. The decodable entries of the batch are returned alongside it.
func (s *Stream[T]) Read(ctx context.Context, count int64, block time.Duration) (store.ReadResult[T], error) {
	result := store.ReadResult[T]{
		Stream:  s.keys.Base(),
		Entries: []store.Entry[T]{},
	}

	args := &redis.XReadGroupArgs{
		Group:    s.group,
		Consumer: s.consumer,
		Streams:  []string{s.keys.Base(), ">"},
		Count:    count,
		Block:    -1, // a BLOCK of 0 would wait forever
	}
	if block > 0 {
		args.Block = max(block, time.Millisecond)
	}

	streams, err := s.client.XReadGroup(ctx, args).Result()
	if errors.Is(err, redis.Nil) {
		return result, s.observe("read", nil)
	}
	if err != nil {
		return result, s.observe("read", err)
	}

	var messages []redis.XMessage
	for _, stream := range streams {
		if stream.Stream == s.keys.Base() {
			messages = append(messages, stream.Messages...)
		}
	}
	if len(messages) == 0 {
		return result, s.observe("read", nil)
	}

	ids := make([]string, len(messages))
	for i, msg := range messages {
		ids[i] = msg.ID
	}
	if err := s.ackDelivered(ctx, ids); err != nil {
		return result, s.observe("read", err)
	}

	var decodeErrs []error
	for _, msg := range messages {
		v, err := s.decodeEntry(msg)
		if err != nil {
			Logger.Errorf("Dropping undecodable entry %s of stream %s: %v", msg.ID, s.keys.Base(), err)
			decodeErrs = append(decodeErrs, err)
			continue
		}
		result.Entries = append(result.Entries, store.Entry[T]{
			ID:     msg.ID,
			Fields: msg.Values,
			Value:  v,
		})
	}

	return result, s.observe("read", errors.Join(decodeErrs...))
}

// ackDelivered acknowledges the entries delivered by a read. On failure the ids stay
// pending for the consumer, so they are logged and named in the error.
func (s *Stream[T]) ackDelivered(ctx context.Context, ids []string) error {
	if err := s.Acknowledge(ctx, ids...); err != nil {
		Logger.Errorf("Entries %s of stream %s stay pending for consumer %s/%s: %v",
			strings.Join(ids, ","), s.keys.Base(), s.group, s.consumer, err)
		return fmt.Errorf("acknowledging delivered entries %s: %w", strings.Join(ids, ","), err)
	}
	return nil
}

// Acknowledge marks the entries as processed for the group
func (s *Stream[T]) Acknowledge(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	n, err := s.client.XAck(ctx, s.keys.Base(), s.group, ids...).Result()
	recordAcks(s.keys.Base(), n)
	return s.observe("ack", err)
}

// Delete removes an entry from the stream, independent of its acknowledgment state
func (s *Stream[T]) Delete(ctx context.Context, id string) error {
	err := s.client.XDel(ctx, s.keys.Base(), id).Err()
	return s.observe("delete", err)
}

// Size returns the number of entries in the stream
func (s *Stream[T]) Size(ctx context.Context) (int64, error) {
	n, err := s.client.XLen(ctx, s.keys.Base()).Result()
	return n, s.observe("size", err)
}

// IsEmpty returns whether the stream has no entries
func (s *Stream[T]) IsEmpty(ctx context.Context) (bool, error) {
	n, err := s.Size(ctx)
	return n == 0, err
}

// GetAll returns every entry of the stream in order. It does not affect the group.
func (s *Stream[T]) GetAll(ctx context.Context) ([]store.Entry[T], error) {
	messages, err := s.client.XRange(ctx, s.keys.Base(), "-", "+").Result()
	if err != nil {
		return nil, s.observe("getAll", err)
	}

	entries := make([]store.Entry[T], 0, len(messages))
	for _, msg := range messages {
		v, err := s.decodeEntry(msg)
		if err != nil {
			return nil, s.observe("getAll", err)
		}
		entries = append(entries, store.Entry[T]{ID: msg.ID, Fields: msg.Values, Value: v})
	}
	return entries, s.observe("getAll", nil)
}

// Pending returns the number of entries delivered to the group but not yet acknowledged
func (s *Stream[T]) Pending(ctx context.Context) (int64, error) {
	pending, err := s.client.XPending(ctx, s.keys.Base(), s.group).Result()
	if err != nil {
		return 0, s.observe("pending", err)
	}
	return pending.Count, s.observe("pending", nil)
}

// String returns a short description of the adapter
func (s *Stream[T]) String() string {
	return fmt.Sprintf("Stream(name=%s, group=%s, consumer=%s)", s.keys.Name, s.group, s.consumer)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ensureGroup creates the consumer group at the start of the stream.
// "group already exists" is success, every other failure is a group creation error.
func (s *Stream[T]) ensureGroup(ctx context.Context) error {
	err := s.client.XGroupCreateMkStream(ctx, s.keys.Base(), s.group, "0").Err()
	switch {
	case err == nil:
		Logger.Debugf("Created consumer group %s on stream %s", s.group, s.keys.Base())
		return nil
	case isBusyGroupError(err):
		Logger.Debugf("Consumer group %s on stream %s already exists", s.group, s.keys.Base())
		return nil
	default:
		Logger.Errorf("Error creating consumer group %s on stream %s: %v", s.group, s.keys.Base(), err)
		return store.WrapError(store.RetCGroupCreation, fmt.Sprintf("creating consumer group %s on stream %s", s.group, s.keys.Base()), err)
	}
}

// decodeEntry decodes the payload field of a stream entry
func (s *Stream[T]) decodeEntry(msg redis.XMessage) (T, error) {
	var zero T
	raw, ok := msg.Values[PayloadField]
	if !ok {
		return zero, store.NewError(store.RetCDecode, fmt.Sprintf("entry %s of stream %s has no %q field", msg.ID, s.keys.Base(), PayloadField))
	}
	str, ok := raw.(string)
	if !ok {
		return zero, store.NewError(store.RetCDecode, fmt.Sprintf("entry %s of stream %s has a non-string %q field", msg.ID, s.keys.Base(), PayloadField))
	}
	v, err := decodeValue[T](s.codec, []byte(str))
	if err != nil {
		return zero, fmt.Errorf("entry %s of stream %s: %w", msg.ID, s.keys.Base(), err)
	}
	return v, nil
}

// isBusyGroupError checks if the store reported that the group already exists
func isBusyGroupError(err error) bool {
	return strings.HasPrefix(err.Error(), "BUSYGROUP")
}
