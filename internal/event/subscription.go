package event

import (
	"sync/atomic"

	"github.com/dshills/outliner/internal/event/topic"
)

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Priority determines execution order (lower values execute first).
	Priority Priority

	// Filter is an optional predicate; events are delivered only when it
	// returns true.
	Filter FilterFunc

	// Once cancels the subscription after the first successful delivery.
	Once bool
}

// SubscriptionOption configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithFilter sets a filter predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithOnce cancels the subscription after its first delivery.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// Subscription is a registered handler. Pause and Resume toggle delivery
// without losing the registration.
type Subscription struct {
	id      string
	pattern topic.Topic
	handler Handler
	config  SubscriptionConfig
	seq     uint64

	paused    atomic.Bool
	cancelled atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string { return s.id }

// Topic returns the subscribed pattern.
func (s *Subscription) Topic() topic.Topic { return s.pattern }

// Pause stops delivery until Resume.
func (s *Subscription) Pause() { s.paused.Store(true) }

// Resume restarts delivery after Pause.
func (s *Subscription) Resume() { s.paused.Store(false) }

// IsActive reports whether the subscription currently receives events.
func (s *Subscription) IsActive() bool {
	return !s.paused.Load() && !s.cancelled.Load()
}

func (s *Subscription) accepts(t topic.Topic, event any) bool {
	if !s.IsActive() || !t.Matches(s.pattern) {
		return false
	}
	return s.config.Filter == nil || s.config.Filter(event)
}
