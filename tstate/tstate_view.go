// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/maybe"

	"github.com/metaverse-network/tokenswap/keys"
	"github.com/metaverse-network/tokenswap/state"
)

const defaultOps = 4

var _ state.Mutable = (*TStateView)(nil)

type op struct {
	k string

	pastExists  bool
	pastV       []byte
	pastChanged bool
}

type TStateView struct {
	ts                 *TState
	pendingChangedKeys map[string]maybe.Maybe[[]byte]
	committed          bool

	// Ops is a record of all operations performed on [TStateView]. Tracking
	// operations allows for reverting state to a certain point-in-time.
	ops []*op
}

func (ts *TState) NewView() *TStateView {
	return &TStateView{
		ts:                 ts,
		pendingChangedKeys: make(map[string]maybe.Maybe[[]byte]),
		ops:                make([]*op, 0, defaultOps),
	}
}

// Rollback restores the view to the state it had when [OpIndex] returned
// [restorePoint].
func (tsv *TStateView) Rollback(_ context.Context, restorePoint int) {
	for i := len(tsv.ops) - 1; i >= restorePoint; i-- {
		op := tsv.ops[i]

		// If the key was never modified before this op, it falls back to
		// whatever [TState] holds.
		if !op.pastChanged {
			delete(tsv.pendingChangedKeys, op.k)
			continue
		}

		// The key was modified earlier and did not exist at that point.
		if !op.pastExists {
			tsv.pendingChangedKeys[op.k] = maybe.Nothing[[]byte]()
			continue
		}

		tsv.pendingChangedKeys[op.k] = maybe.Some(op.pastV)
	}
	tsv.ops = tsv.ops[:restorePoint]
}

// OpIndex returns the number of operations done on the view.
func (tsv *TStateView) OpIndex() int {
	return len(tsv.ops)
}

// PendingChanges returns the number of keys modified by the view.
func (tsv *TStateView) PendingChanges() int {
	return len(tsv.pendingChangedKeys)
}

func (tsv *TStateView) getValue(ctx context.Context, key string) ([]byte, bool, bool, error) {
	if v, ok := tsv.pendingChangedKeys[key]; ok {
		if v.IsNothing() {
			return nil, true, false, nil
		}
		return v.Value(), true, true, nil
	}
	return tsv.ts.getValue(ctx, key)
}

// GetValue returns the value associated with [key]. If [key] does not exist
// [database.ErrNotFound] is returned.
func (tsv *TStateView) GetValue(ctx context.Context, key []byte) ([]byte, error) {
	v, _, exists, err := tsv.getValue(ctx, string(key))
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrNotFound
	}
	return v, nil
}

// Insert sets or updates the value of [key].
//
// Any bytes passed into [Insert] will be consumed by [TStateView] and should
// not be modified/referenced after this call.
func (tsv *TStateView) Insert(ctx context.Context, key []byte, value []byte) error {
	if tsv.committed {
		return ErrViewCommitted
	}
	if !keys.VerifyValue(key, value) {
		return ErrInvalidKeyValue
	}
	k := string(key)
	past, changed, exists, err := tsv.getValue(ctx, k)
	if err != nil {
		return err
	}
	tsv.pendingChangedKeys[k] = maybe.Some(value)
	tsv.ops = append(tsv.ops, &op{
		k:           k,
		pastExists:  exists,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

// Remove deletes [key]. Removing a key that does not exist is a no-op.
func (tsv *TStateView) Remove(ctx context.Context, key []byte) error {
	if tsv.committed {
		return ErrViewCommitted
	}
	k := string(key)
	past, changed, exists, err := tsv.getValue(ctx, k)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	tsv.pendingChangedKeys[k] = maybe.Nothing[[]byte]()
	tsv.ops = append(tsv.ops, &op{
		k:           k,
		pastExists:  true,
		pastV:       past,
		pastChanged: changed,
	})
	return nil
}

// Commit moves all pending changes into [TState]. The view cannot be used
// for writes afterwards.
func (tsv *TStateView) Commit() {
	tsv.ts.l.Lock()
	defer tsv.ts.l.Unlock()

	for k, v := range tsv.pendingChangedKeys {
		tsv.ts.changedKeys[k] = v
	}
	tsv.ts.ops += len(tsv.ops)
	tsv.committed = true
}
