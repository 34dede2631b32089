// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"golang.org/x/exp/maps"
)

var _ Mutable = Memory(nil)

// Memory implements [Mutable] over a plain map. It has no rollback and is
// intended for queries over snapshots and for tests.
type Memory map[string][]byte

func (m Memory) GetValue(_ context.Context, key []byte) ([]byte, error) {
	if v, has := m[string(key)]; has {
		return v, nil
	}
	return nil, database.ErrNotFound
}

func (m Memory) Insert(_ context.Context, key []byte, value []byte) error {
	m[string(key)] = value
	return nil
}

func (m Memory) Remove(_ context.Context, key []byte) error {
	delete(m, string(key))
	return nil
}

// Clone returns a shallow copy of [m].
func (m Memory) Clone() Memory {
	return maps.Clone(m)
}
