package rstore

import (
	"context"
	"fmt"
	"github.com/ValentinKolb/dStruct/lib/codec"
	"github.com/ValentinKolb/dStruct/lib/common"
	"github.com/ValentinKolb/dStruct/lib/store"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/redis/go-redis/v9"
	"sync"
	"sync/atomic"
)

// NewPubSub creates a new publish/subscribe adapter. Channels are not namespaced,
// the channel name is passed per call.
func NewPubSub[T any](ctx context.Context, config common.ClientConfig, c codec.ICodec) (*PubSub[T], error) {
	if c == nil {
		c = codec.Default()
	}

	client, err := Connect(ctx, config)
	if err != nil {
		return nil, err
	}

	return &PubSub[T]{
		client: client,
		codec:  c,
		subs:   xsync.NewMapOf[uint64, *subscription[T]](),
	}, nil
}

// PubSub publishes values to channels and delivers published values to callbacks.
// Delivery is fire-and-forget: messages published while nobody is subscribed are lost.
type PubSub[T any] struct {
	client *redis.Client
	codec  codec.ICodec
	subs   *xsync.MapOf[uint64, *subscription[T]]
	nextID atomic.Uint64
}

var _ store.Channel[any] = (*PubSub[any])(nil)

// --------------------------------------------------------------------------
// Interface Methods (docu see store.Channel)
// --------------------------------------------------------------------------

func (p *PubSub[T]) Publish(ctx context.Context, channel string, value T) error {
	data, err := p.codec.Encode(value)
	if err != nil {
		err = store.WrapError(store.RetCInvalidArgument, fmt.Sprintf("encoding value for channel %s", channel), err)
		recordOperation("PubSub", "publish", err)
		return err
	}
	err = p.client.Publish(ctx, channel, data).Err()
	recordOperation("PubSub", "publish", err)
	return err
}

// Subscribe registers callback for channel. The subscription is confirmed by the
// store before Subscribe returns. The callback is invoked sequentially from a
// single worker goroutine. Messages that cannot be decoded are logged and skipped.
func (p *PubSub[T]) Subscribe(ctx context.Context, channel string, callback func(T)) (store.Subscription, error) {
	if channel == "" {
		return nil, store.NewError(store.RetCInvalidArgument, "channel name must not be empty")
	}
	if callback == nil {
		return nil, store.NewError(store.RetCInvalidArgument, "callback must not be nil")
	}

	ps := p.client.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		Logger.Errorf("Error subscribing to channel %s: %v", channel, err)
		recordOperation("PubSub", "subscribe", err)
		return nil, err
	}
	recordOperation("PubSub", "subscribe", nil)

	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscription[T]{
		id:      p.nextID.Add(1),
		channel: channel,
		ps:      ps,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	p.subs.Store(sub.id, sub)

	go p.deliver(subCtx, sub, callback)

	Logger.Debugf("Subscribed to channel %s", channel)
	return sub, nil
}

// Close ends all subscriptions and closes the connection
func (p *PubSub[T]) Close() error {
	p.subs.Range(func(_ uint64, sub *subscription[T]) bool {
		_ = sub.Close()
		return true
	})
	return p.client.Close()
}

// Subscriptions returns the number of running subscriptions
func (p *PubSub[T]) Subscriptions() int {
	return p.subs.Size()
}

func (p *PubSub[T]) String() string {
	return fmt.Sprintf("PubSub(subscriptions=%d)", p.subs.Size())
}

// deliver runs until the subscription is closed or ctx ends
func (p *PubSub[T]) deliver(ctx context.Context, sub *subscription[T], callback func(T)) {
	defer func() {
		sub.shutdown()
		p.subs.Delete(sub.id)
		close(sub.done)
	}()

	messages := sub.ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			v, err := decodeValue[T](p.codec, []byte(msg.Payload))
			if err != nil {
				recordOperation("PubSub", "deliver", err)
				Logger.Errorf("Dropping message on channel %s: %v", msg.Channel, err)
				continue
			}
			recordOperation("PubSub", "deliver", nil)
			callback(v)
		}
	}
}

// --------------------------------------------------------------------------
// Subscription
// --------------------------------------------------------------------------

type subscription[T any] struct {
	id      uint64
	channel string
	ps      *redis.PubSub
	cancel  context.CancelFunc
	once    sync.Once
	done    chan struct{}
}

var _ store.Subscription = (*subscription[any])(nil)

func (s *subscription[T]) Channel() string {
	return s.channel
}

// Close must not be called from within the callback, it waits for the callback to return
func (s *subscription[T]) Close() error {
	s.shutdown()
	<-s.done
	return nil
}

func (s *subscription[T]) Done() <-chan struct{} {
	return s.done
}

// shutdown stops the worker and releases the subscription connection, once
func (s *subscription[T]) shutdown() {
	s.once.Do(func() {
		s.cancel()
		if err := s.ps.Close(); err != nil {
			Logger.Warningf("Error closing subscription to %s: %v", s.channel, err)
		}
	})
}
