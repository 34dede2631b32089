// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"
	"errors"
	"sync"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/metaverse-network/tokenswap/state"
)

var _ state.Immutable = (*TState)(nil)

// TState defines a struct for storing temporary state on top of [base].
//
// Changes are made through a [TStateView] and only become visible to other
// views once the view is committed.
type TState struct {
	l           sync.RWMutex
	base        state.Immutable
	changedKeys map[string]maybe.Maybe[[]byte]
	ops         int
}

// New returns a new instance of TState.
//
// [changedSize] is an estimate of the number of keys that will be changed and is
// used to size the change map.
func New(base state.Immutable, changedSize int) *TState {
	return &TState{
		base:        base,
		changedKeys: make(map[string]maybe.Maybe[[]byte], changedSize),
	}
}

// getValue returns the value of [key] along with whether it was modified
// by a committed view and whether it exists.
func (ts *TState) getValue(ctx context.Context, key string) ([]byte, bool, bool, error) {
	ts.l.RLock()
	v, ok := ts.changedKeys[key]
	ts.l.RUnlock()
	if ok {
		if v.IsNothing() {
			return nil, true, false, nil
		}
		return v.Value(), true, true, nil
	}
	value, err := ts.base.GetValue(ctx, []byte(key))
	if errors.Is(err, database.ErrNotFound) {
		return nil, false, false, nil
	}
	if err != nil {
		return nil, false, false, err
	}
	return value, false, true, nil
}

// GetValue returns the latest committed value of [key].
func (ts *TState) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	v, _, exists, err := ts.getValue(ctx, string(key))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrNotFound
	}
	return v, nil
}

// OpIndex returns the number of operations committed to [TState].
func (ts *TState) OpIndex() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return ts.ops
}

// PendingChanges returns the number of keys that differ from [base].
func (ts *TState) PendingChanges() int {
	ts.l.RLock()
	defer ts.l.RUnlock()

	return len(ts.changedKeys)
}

// WriteChanges stages every committed change in [batch]. The caller is
// responsible for writing the batch.
//
// Once WriteChanges is called, [TState] should not be used again.
func (ts *TState) WriteChanges(batch state.Batch) error {
	ts.l.Lock()
	defer ts.l.Unlock()

	for k, v := range ts.changedKeys {
		if v.IsNothing() {
			if err := batch.Delete([]byte(k)); err != nil {
				return err
			}
			continue
		}
		if err := batch.Put([]byte(k), v.Value()); err != nil {
			return err
		}
	}
	return nil
}
