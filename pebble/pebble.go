// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"errors"
	"slices"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/bloom"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/metaverse-network/tokenswap/state"
)

var (
	_ state.Database = (*Database)(nil)
	_ state.Batch    = (*batch)(nil)
)

type Config struct {
	CacheSize                   int  `json:"cacheSize"                   yaml:"cacheSize"`
	BytesPerSync                int  `json:"bytesPerSync"                yaml:"bytesPerSync"`
	WALBytesPerSync             int  `json:"walBytesPerSync"             yaml:"walBytesPerSync"` // 0 means no background syncing
	MemTableStopWritesThreshold int  `json:"memTableStopWritesThreshold" yaml:"memTableStopWritesThreshold"`
	MemTableSize                int  `json:"memTableSize"                yaml:"memTableSize"`
	MaxOpenFiles                int  `json:"maxOpenFiles"                yaml:"maxOpenFiles"`
	ConcurrentCompactions       int  `json:"concurrentCompactions"       yaml:"concurrentCompactions"`
	Sync                        bool `json:"sync"                        yaml:"sync"`
}

func NewDefaultConfig() Config {
	return Config{
		CacheSize:                   256 * 1024 * 1024,
		BytesPerSync:                1024 * 1024,
		WALBytesPerSync:             1024 * 1024,
		MemTableStopWritesThreshold: 8,
		MemTableSize:                16 * 1024 * 1024,
		MaxOpenFiles:                4_096,
		ConcurrentCompactions:       1,
		Sync:                        true,
	}
}

// Database persists committed state in pebble.
type Database struct {
	db        *pebble.DB
	writeOpts *pebble.WriteOptions
	metrics   *metrics

	closing chan struct{}
}

// New opens (or creates) a pebble database at [file]. Metrics are registered
// on the returned registry.
func New(file string, cfg Config) (*Database, *prometheus.Registry, error) {
	registry, metrics, err := newMetrics()
	if err != nil {
		return nil, nil, err
	}
	d := &Database{
		writeOpts: &pebble.WriteOptions{Sync: cfg.Sync},
		metrics:   metrics,
		closing:   make(chan struct{}),
	}

	opts := &pebble.Options{
		Cache:                       pebble.NewCache(int64(cfg.CacheSize)),
		BytesPerSync:                cfg.BytesPerSync,
		Comparer:                    pebble.DefaultComparer,
		WALBytesPerSync:             cfg.WALBytesPerSync,
		MemTableStopWritesThreshold: cfg.MemTableStopWritesThreshold,
		MemTableSize:                uint64(cfg.MemTableSize),
		MaxOpenFiles:                cfg.MaxOpenFiles,
		MaxConcurrentCompactions:    func() int { return cfg.ConcurrentCompactions },
		Levels:                      make([]pebble.LevelOptions, 7),
	}
	for i := 0; i < len(opts.Levels); i++ {
		l := &opts.Levels[i]
		l.BlockSize = 32 * 1024
		l.IndexBlockSize = 256 * 1024
		l.FilterPolicy = bloom.FilterPolicy(10)
		l.FilterType = pebble.TableFilter
		if i > 0 {
			l.TargetFileSize = opts.Levels[i-1].TargetFileSize * 2
		}
		l.EnsureDefaults()
	}
	opts.Levels[6].FilterPolicy = nil
	opts.EventListener = &pebble.EventListener{
		CompactionBegin: d.onCompactionBegin,
		CompactionEnd:   d.onCompactionEnd,
		WriteStallBegin: d.onWriteStallBegin,
		WriteStallEnd:   d.onWriteStallEnd,
	}

	db, err := pebble.Open(file, opts)
	if err != nil {
		return nil, nil, err
	}
	d.db = db
	go d.collectMetrics()
	return d, registry, nil
}

func (db *Database) Get(key []byte) ([]byte, error) {
	start := time.Now()
	defer func() {
		db.metrics.get.Observe(float64(time.Since(start)))
	}()

	v, closer, err := db.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	value := slices.Clone(v)
	return value, closer.Close()
}

func (db *Database) NewBatch() state.Batch {
	return &batch{d: db, b: db.db.NewBatch()}
}

func (db *Database) Close() error {
	close(db.closing)
	return db.db.Close()
}

type batch struct {
	d *Database
	b *pebble.Batch
}

func (b *batch) Put(key, value []byte) error {
	return b.b.Set(key, value, nil)
}

func (b *batch) Delete(key []byte) error {
	return b.b.Delete(key, nil)
}

func (b *batch) Write() error {
	start := time.Now()
	size := b.b.Len()
	if err := b.b.Commit(b.d.writeOpts); err != nil {
		return err
	}
	b.d.metrics.observeCommit(size, start)
	return nil
}
