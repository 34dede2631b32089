// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"context"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
)

var (
	_ Database  = (*avaDatabase)(nil)
	_ Immutable = (*Reader)(nil)
)

// Database is the persistent key/value store that committed state is
// written to. Get must return [database.ErrNotFound] for missing keys.
type Database interface {
	Get(key []byte) ([]byte, error)
	NewBatch() Batch
	Close() error
}

// Batch buffers writes until [Write] is called. Writes are applied
// atomically.
type Batch interface {
	Put(key, value []byte) error
	Delete(key []byte) error
	Write() error
}

// NewMemDB returns an in-memory [Database] backed by avalanchego's memdb.
func NewMemDB() Database {
	return Wrap(memdb.New())
}

// Wrap adapts any avalanchego [database.Database] to [Database].
func Wrap(db database.Database) Database {
	return &avaDatabase{db: db}
}

type avaDatabase struct {
	db database.Database
}

func (a *avaDatabase) Get(key []byte) ([]byte, error) {
	return a.db.Get(key)
}

func (a *avaDatabase) NewBatch() Batch {
	return a.db.NewBatch()
}

func (a *avaDatabase) Close() error {
	return a.db.Close()
}

// Reader exposes a [Database] as [Immutable].
type Reader struct {
	db Database
}

func NewReader(db Database) *Reader {
	return &Reader{db: db}
}

func (r *Reader) GetValue(_ context.Context, key []byte) ([]byte, error) {
	return r.db.Get(key)
}
