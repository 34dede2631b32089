// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package badger persists committed state in a badger key/value store.
package badger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ava-labs/avalanchego/database"
	"github.com/dgraph-io/badger/v4"

	"github.com/metaverse-network/tokenswap/state"
)

var (
	_ state.Database = (*Database)(nil)
	_ state.Batch    = (*batch)(nil)

	ErrLocked = errors.New("database is locked by another process")
)

type Config struct {
	// InMemory keeps everything in memory and ignores the path.
	InMemory bool `json:"inMemory" yaml:"inMemory"`
	// SyncWrites fsyncs every batch.
	SyncWrites bool `json:"syncWrites" yaml:"syncWrites"`
}

func NewDefaultConfig() Config {
	return Config{SyncWrites: true}
}

type Database struct {
	db *badger.DB
}

func New(path string, cfg Config) (*Database, error) {
	opts := badger.DefaultOptions(path).
		WithInMemory(cfg.InMemory).
		WithSyncWrites(cfg.SyncWrites)
	if cfg.InMemory {
		opts = opts.WithDir("").WithValueDir("")
	}
	opts.Logger = nil // Disable badger's built-in logging.

	db, err := badger.Open(opts)
	if err != nil {
		errMsg := err.Error()
		if strings.Contains(errMsg, "Cannot acquire directory lock") ||
			strings.Contains(errMsg, "resource temporarily unavailable") {
			return nil, fmt.Errorf("%w: %s: %w", ErrLocked, path, err)
		}
		return nil, fmt.Errorf("open database at %s: %w", path, err)
	}
	return &Database{db: db}, nil
}

func (d *Database) Get(key []byte) ([]byte, error) {
	var val []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("badger get: %w", err)
	}
	return val, nil
}

func (d *Database) NewBatch() state.Batch {
	return &batch{wb: d.db.NewWriteBatch()}
}

func (d *Database) Close() error {
	return d.db.Close()
}

type batch struct {
	wb *badger.WriteBatch
}

func (b *batch) Put(key, value []byte) error {
	return b.wb.Set(key, value)
}

func (b *batch) Delete(key []byte) error {
	return b.wb.Delete(key)
}

func (b *batch) Write() error {
	if err := b.wb.Flush(); err != nil {
		return fmt.Errorf("badger write: %w", err)
	}
	return nil
}
