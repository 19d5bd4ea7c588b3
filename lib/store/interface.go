package store

import (
	"context"
	"time"
)

// --------------------------------------------------------------------------
// Capability Interfaces
// --------------------------------------------------------------------------
//
// The adapters share a vocabulary (Set, Get, GetAll, Delete, Clear, Exists, Size)
// but not its arity: a key-value Exists takes a key, a set Exists takes a member,
// a list Exists takes nothing. Instead of one rigid interface every adapter
// implements the capabilities that match its native semantics.
//
// Read methods that can find nothing return (zero, false, nil). A stored null is
// returned as (zero, true, nil).

// Clearer is implemented by every structure adapter.
type Clearer interface {
	// Clear removes the whole structure from the store.
	Clear(ctx context.Context) error
}

// Sized is implemented by structures that can report their cardinality.
type Sized interface {
	// Size returns the number of elements in the structure.
	Size(ctx context.Context) (int64, error)
	// IsEmpty returns whether Size is zero.
	IsEmpty(ctx context.Context) (bool, error)
}

// Keyed is a structure addressed by string keys (key-value namespace, hash map).
type Keyed[T any] interface {
	Clearer
	// Set inserts or updates the value for a key.
	Set(ctx context.Context, key string, value T) error
	// Get returns the value for a key. The boolean indicates whether a value was found.
	Get(ctx context.Context, key string) (value T, loaded bool, err error)
	// GetAll returns all key-value pairs of the structure.
	GetAll(ctx context.Context) (map[string]T, error)
	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Exists returns whether the key is present.
	Exists(ctx context.Context, key string) (bool, error)
}

// Expiring is a Keyed structure whose entries can carry a time-to-live.
type Expiring[T any] interface {
	Keyed[T]
	// SetTTL sets the value for a key and lets the store expire it after ttl.
	// A ttl <= 0 means no expiry.
	SetTTL(ctx context.Context, key string, value T, ttl time.Duration) error
}

// Ordered is a structure with a fixed removal order (queue = FIFO, stack = LIFO).
type Ordered[T any] interface {
	Clearer
	Sized
	// Set pushes a value.
	Set(ctx context.Context, value T) error
	// Get pops the next value according to the structure's order.
	Get(ctx context.Context) (value T, loaded bool, err error)
	// GetMany pops up to count values, stopping early when the structure is empty.
	GetMany(ctx context.Context, count int) ([]T, error)
	// GetAll returns all values without removing them, in storage order.
	GetAll(ctx context.Context) ([]T, error)
}

// Indexed is a structure addressed by position (list).
type Indexed[T any] interface {
	Clearer
	Sized
	// Set appends a value.
	Set(ctx context.Context, value T) error
	// Get returns the value at index. Negative indices count from the end.
	Get(ctx context.Context, index int64) (value T, loaded bool, err error)
	// GetAll returns all values in insertion order.
	GetAll(ctx context.Context) ([]T, error)
	// Delete removes all occurrences of value.
	Delete(ctx context.Context, value T) error
}

// Membership is an unordered collection of unique values (set).
type Membership[T any] interface {
	Clearer
	Sized
	// Set adds a value.
	Set(ctx context.Context, value T) error
	// GetAll returns all members in no particular order.
	GetAll(ctx context.Context) ([]T, error)
	// Delete removes a member.
	Delete(ctx context.Context, value T) error
	// Exists returns whether value is a member.
	Exists(ctx context.Context, value T) (bool, error)
}

// Scored is a collection of unique values ordered by a score (sorted set).
type Scored[T any] interface {
	Clearer
	Sized
	// Set adds a value or updates its score.
	Set(ctx context.Context, value T, score float64) error
	// Get returns the score of value. The boolean indicates whether value is a member.
	Get(ctx context.Context, value T) (score float64, loaded bool, err error)
	// GetByRank returns the members between the ranks start and stop (inclusive,
	// negative ranks count from the highest score).
	GetByRank(ctx context.Context, start, stop int64) ([]T, error)
	// GetAll returns all members ordered by ascending score.
	GetAll(ctx context.Context) ([]T, error)
	// Delete removes a member.
	Delete(ctx context.Context, value T) error
	// Exists returns whether value is a member.
	Exists(ctx context.Context, value T) (bool, error)
}

// Log is an append-only stream consumed through a consumer group.
type Log[T any] interface {
	Clearer
	// Append adds a value to the log and returns the store assigned entry id.
	Append(ctx context.Context, value T) (id string, err error)
	// Read reads up to count undelivered entries for the group, waiting up to block
	// for at least one. Returned entries are already acknowledged.
	Read(ctx context.Context, count int64, block time.Duration) (ReadResult[T], error)
	// Acknowledge marks entries as processed for the group.
	Acknowledge(ctx context.Context, ids ...string) error
	// Delete removes an entry from the log.
	Delete(ctx context.Context, id string) error
}

// Channel is a fire-and-forget publish/subscribe channel.
type Channel[T any] interface {
	// Publish sends value to every current subscriber of channel.
	Publish(ctx context.Context, channel string, value T) error
	// Subscribe invokes callback for every message published to channel after the
	// call returns, until the subscription or ctx ends.
	Subscribe(ctx context.Context, channel string, callback func(T)) (Subscription, error)
}

// Subscription is a running subscription that can be torn down.
type Subscription interface {
	// Channel returns the subscribed channel name.
	Channel() string
	// Close stops delivery and waits for the delivery worker to exit.
	Close() error
	// Done is closed once the delivery worker has exited.
	Done() <-chan struct{}
}

// --------------------------------------------------------------------------
// Stream Read Result
// --------------------------------------------------------------------------

// Entry is a single log entry as returned by a group read.
type Entry[T any] struct {
	// ID is the store assigned, monotonically increasing entry id
	ID string
	// Fields is the raw field map as stored
	Fields map[string]any
	// Value is the decoded payload
	Value T
}

// ReadResult wraps the entries of a read together with the stream name.
type ReadResult[T any] struct {
	Stream  string
	Entries []Entry[T]
}
