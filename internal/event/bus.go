package event

import (
	"context"
	"fmt"
	"runtime/debug"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/dshills/outliner/internal/event/topic"
)

// Bus delivers events to subscriptions whose pattern matches the event
// topic. It is safe for concurrent use; handlers run in the publisher's
// goroutine.
type Bus struct {
	mu     sync.RWMutex
	subs   []*Subscription // sorted by priority, then seq
	seq    uint64
	closed atomic.Bool

	onError ErrorHandler

	published atomic.Uint64
	delivered atomic.Uint64
	errors    atomic.Uint64
	panics    atomic.Uint64
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithErrorHandler receives handler errors and recovered panics.
func WithErrorHandler(h ErrorHandler) BusOption {
	return func(b *Bus) {
		b.onError = h
	}
}

// NewBus creates an open bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers h for topics matching pattern.
func (b *Bus) Subscribe(pattern topic.Topic, h Handler, opts ...SubscriptionOption) (*Subscription, error) {
	if h == nil {
		return nil, ErrNilHandler
	}
	if !pattern.IsValid() {
		return nil, fmt.Errorf("subscribe %q: %w", pattern, ErrInvalidTopic)
	}
	if b.closed.Load() {
		return nil, ErrBusClosed
	}

	cfg := SubscriptionConfig{Priority: PriorityNormal}
	for _, opt := range opts {
		opt(&cfg)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.seq++
	s := &Subscription{
		id:      uuid.NewString(),
		pattern: pattern,
		handler: h,
		config:  cfg,
		seq:     b.seq,
	}
	i, _ := slices.BinarySearchFunc(b.subs, s, compareSubs)
	b.subs = slices.Insert(b.subs, i, s)
	return s, nil
}

// SubscribeFunc is Subscribe with a function handler.
func (b *Bus) SubscribeFunc(pattern topic.Topic, fn HandlerFunc, opts ...SubscriptionOption) (*Subscription, error) {
	return b.Subscribe(pattern, fn, opts...)
}

// Subscribe registers a typed handler on b.
func Subscribe[T any](b *Bus, pattern topic.Topic, fn TypedHandlerFunc[T], opts ...SubscriptionOption) (*Subscription, error) {
	return b.Subscribe(pattern, AsHandler(fn), opts...)
}

// Unsubscribe removes s.
func (b *Bus) Unsubscribe(s *Subscription) error {
	if s == nil || s.cancelled.Swap(true) {
		return ErrSubscriptionNotFound
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = slices.DeleteFunc(b.subs, func(x *Subscription) bool { return x == s })
	return nil
}

// Publish delivers event to every matching subscription in order. The
// event must implement TopicProvider. Handler failures do not stop
// delivery and are not returned; they go to the error handler.
func (b *Bus) Publish(ctx context.Context, event any) error {
	if b.closed.Load() {
		return ErrBusClosed
	}
	tp, ok := event.(TopicProvider)
	if !ok || !tp.EventTopic().IsValid() {
		return ErrInvalidEvent
	}
	t := tp.EventTopic()
	b.published.Add(1)

	b.mu.RLock()
	subs := slices.Clone(b.subs)
	b.mu.RUnlock()

	for _, s := range subs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !s.accepts(t, event) {
			continue
		}
		if err := b.dispatch(ctx, s, t, event); err != nil {
			b.report(err)
			continue
		}
		b.delivered.Add(1)
		if s.config.Once {
			_ = b.Unsubscribe(s)
		}
	}
	return nil
}

func (b *Bus) dispatch(ctx context.Context, s *Subscription, t topic.Topic, event any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.panics.Add(1)
			err = &PanicError{
				SubscriptionID: s.id,
				Topic:          t.String(),
				Value:          r,
				Stack:          string(debug.Stack()),
			}
		}
	}()
	if herr := s.handler.Handle(ctx, event); herr != nil {
		b.errors.Add(1)
		return &HandlerError{SubscriptionID: s.id, Topic: t.String(), Err: herr}
	}
	return nil
}

func (b *Bus) report(err error) {
	if b.onError != nil {
		b.onError(err)
	}
}

// Close rejects further publishing and drops all subscriptions.
func (b *Bus) Close() {
	if b.closed.Swap(true) {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, s := range b.subs {
		s.cancelled.Store(true)
	}
	b.subs = nil
}

// Stats returns current bus counters.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	active := 0
	for _, s := range b.subs {
		if s.IsActive() {
			active++
		}
	}
	b.mu.RUnlock()
	return Stats{
		EventsPublished:   b.published.Load(),
		EventsDelivered:   b.delivered.Load(),
		HandlerErrors:     b.errors.Load(),
		HandlerPanics:     b.panics.Load(),
		ActiveSubscribers: active,
	}
}

func compareSubs(a, b *Subscription) int {
	if a.config.Priority != b.config.Priority {
		return int(a.config.Priority) - int(b.config.Priority)
	}
	return int(a.seq) - int(b.seq)
}
