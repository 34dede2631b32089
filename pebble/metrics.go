// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package pebble

import (
	"time"

	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/cockroachdb/pebble"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace       = "tokenswap_db"
	metricsInterval = 10 * time.Second
)

type metrics struct {
	stallStart time.Time
	stall      metric.Averager
	get        metric.Averager

	// Every block is committed as one batch.
	commits     prometheus.Counter
	commitBytes prometheus.Histogram
	commit      metric.Averager

	compactions       *prometheus.CounterVec
	activeCompactions prometheus.Gauge

	// Refreshed from [pebble.Metrics] every [metricsInterval].
	tombstones   prometheus.Gauge
	obsoleteSize prometheus.Gauge
	diskUsage    prometheus.Gauge
}

func newMetrics() (*prometheus.Registry, *metrics, error) {
	r := prometheus.NewRegistry()
	m := &metrics{
		commits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_commits",
			Help:      "number of committed write batches",
		}),
		commitBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_bytes",
			Help:      "size of committed write batches",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}),
		compactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "compactions",
			Help:      "number of compactions by input level",
		}, []string{"level"}),
		activeCompactions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_compactions",
			Help:      "number of running compactions",
		}),
		tombstones: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tombstones",
			Help:      "approximate number of internal tombstones",
		}),
		obsoleteSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "obsolete_table_bytes",
			Help:      "bytes in tables no longer referenced",
		}),
		diskUsage: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "disk_bytes",
			Help:      "bytes of disk used by the database",
		}),
	}

	var err error
	if m.stall, err = metric.NewAverager(namespace+"_write_stall", "time spent in write stalls", r); err != nil {
		return nil, nil, err
	}
	if m.get, err = metric.NewAverager(namespace+"_get", "time spent reading a key", r); err != nil {
		return nil, nil, err
	}
	if m.commit, err = metric.NewAverager(namespace+"_commit", "time spent committing a batch", r); err != nil {
		return nil, nil, err
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.commits),
		r.Register(m.commitBytes),
		r.Register(m.compactions),
		r.Register(m.activeCompactions),
		r.Register(m.tombstones),
		r.Register(m.obsoleteSize),
		r.Register(m.diskUsage),
	)
	return r, m, errs.Err
}

func (m *metrics) observeCommit(size int, start time.Time) {
	m.commits.Inc()
	m.commitBytes.Observe(float64(size))
	m.commit.Observe(float64(time.Since(start)))
}

func (m *metrics) refresh(s *pebble.Metrics) {
	m.tombstones.Set(float64(s.Keys.TombstoneCount))
	m.obsoleteSize.Set(float64(s.Table.ObsoleteSize))
	m.diskUsage.Set(float64(s.DiskSpaceUsage()))
}

func (db *Database) onCompactionBegin(info pebble.CompactionInfo) {
	db.metrics.activeCompactions.Inc()
	level := "l1+"
	if len(info.Input) > 0 && info.Input[0].Level == 0 {
		level = "l0"
	}
	db.metrics.compactions.WithLabelValues(level).Inc()
}

func (db *Database) onCompactionEnd(pebble.CompactionInfo) {
	db.metrics.activeCompactions.Dec()
}

func (db *Database) onWriteStallBegin(pebble.WriteStallBeginInfo) {
	db.metrics.stallStart = time.Now()
}

func (db *Database) onWriteStallEnd() {
	db.metrics.stall.Observe(float64(time.Since(db.metrics.stallStart)))
}

func (db *Database) collectMetrics() {
	t := time.NewTicker(metricsInterval)
	defer t.Stop()

	for {
		select {
		case <-t.C:
			db.metrics.refresh(db.db.Metrics())
		case <-db.closing:
			return
		}
	}
}
