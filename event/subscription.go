// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package event

import (
	"context"
	"errors"
	"sync"
)

var (
	_ Subscription[struct{}] = (*SubscriptionFunc[struct{}])(nil)
	_ Subscription[struct{}] = (*Collector[struct{}])(nil)
)

// Subscription defines how to consume events
type Subscription[T any] interface {
	// Accept returns fatal errors
	Accept(ctx context.Context, t T) error
	// Close returns fatal errors
	Close() error
}

type SubscriptionFunc[T any] struct {
	AcceptF func(ctx context.Context, t T) error
}

func (s SubscriptionFunc[T]) Accept(ctx context.Context, t T) error {
	return s.AcceptF(ctx, t)
}

func (SubscriptionFunc[_]) Close() error {
	return nil
}

// NotifyAll delivers [e] to every subscription, even if some fail.
func NotifyAll[T any](ctx context.Context, e T, subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Accept(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CloseAll closes every subscription.
func CloseAll[T any](subs ...Subscription[T]) error {
	var errs []error
	for _, sub := range subs {
		if err := sub.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Collector keeps the most recent [limit] events it accepted.
type Collector[T any] struct {
	l      sync.RWMutex
	limit  int
	events []T
}

func NewCollector[T any](limit int) *Collector[T] {
	return &Collector[T]{limit: limit, events: make([]T, 0, limit)}
}

func (c *Collector[T]) Accept(_ context.Context, t T) error {
	c.l.Lock()
	defer c.l.Unlock()

	if len(c.events) == c.limit {
		copy(c.events, c.events[1:])
		c.events = c.events[:len(c.events)-1]
	}
	c.events = append(c.events, t)
	return nil
}

func (*Collector[_]) Close() error {
	return nil
}

// Events returns a copy of the collected events, oldest first.
func (c *Collector[T]) Events() []T {
	c.l.RLock()
	defer c.l.RUnlock()

	events := make([]T, len(c.events))
	copy(events, c.events)
	return events
}
