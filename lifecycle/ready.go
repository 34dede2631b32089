// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lifecycle

import "sync/atomic"

type Ready interface {
	Ready() bool
}

// AtomicBoolReady can move between ready and not ready any number of times.
type AtomicBoolReady struct {
	b atomic.Bool
}

func NewAtomicBoolReady(initialState bool) *AtomicBoolReady {
	a := &AtomicBoolReady{}
	a.b.Store(initialState)
	return a
}

func (a *AtomicBoolReady) Ready() bool {
	return a.b.Load()
}

func (a *AtomicBoolReady) MarkReady() {
	a.b.Store(true)
}

func (a *AtomicBoolReady) MarkNotReady() {
	a.b.Store(false)
}
