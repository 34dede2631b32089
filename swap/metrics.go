// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package swap

import (
	"context"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
)

type metrics struct {
	swaps          prometheus.Counter
	claims         prometheus.Counter
	legacySwapped  prometheus.Counter
	nativeLocked   prometheus.Counter
	nativeReleased prometheus.Counter
	rateUpdates    prometheus.Counter
	paused         prometheus.Gauge
	rejected       *prometheus.CounterVec
}

func newMetrics(r prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		swaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "swaps",
			Help:      "number of executed swaps",
		}),
		claims: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "claims",
			Help:      "number of claims that released tokens",
		}),
		legacySwapped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "legacy_swapped",
			Help:      "legacy units received by swaps",
		}),
		nativeLocked: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "native_locked",
			Help:      "native units locked by swaps",
		}),
		nativeReleased: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "native_released",
			Help:      "native units released by claims",
		}),
		rateUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "rate_updates",
			Help:      "number of exchange rates appended",
		}),
		paused: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "swap",
			Name:      "paused",
			Help:      "1 if swaps are paused",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "swap",
			Name:      "rejected",
			Help:      "number of rejected commands by error category",
		}, []string{"category"}),
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.swaps),
		r.Register(m.claims),
		r.Register(m.legacySwapped),
		r.Register(m.nativeLocked),
		r.Register(m.nativeReleased),
		r.Register(m.rateUpdates),
		r.Register(m.paused),
		r.Register(m.rejected),
	)
	return m, errs.Err
}

// LoadMetrics sets the gauges from committed state.
func (e *Executor) LoadMetrics(ctx context.Context, im state.Immutable) error {
	paused, err := storage.IsPaused(ctx, im)
	if err != nil {
		return err
	}
	e.metrics.setPaused(paused)
	return nil
}

// Record counts the events and rejections of a block once it is written.
// Commands that ran in a block which was later discarded are never counted.
func (e *Executor) Record(events []Event, rejected []Category) {
	m := e.metrics
	for _, c := range rejected {
		m.rejected.WithLabelValues(c.String()).Inc()
	}
	for _, ev := range events {
		switch ev := ev.(type) {
		case *RateUpdated:
			m.rateUpdates.Inc()
		case *SwapsPaused:
			m.setPaused(true)
		case *SwapsResumed:
			m.setPaused(false)
		case *SwapExecuted:
			m.swaps.Inc()
			m.legacySwapped.Add(float64(ev.LegacyAmount))
			m.nativeLocked.Add(float64(ev.NativeAmount))
		case *Claimed:
			if ev.Amount == 0 {
				continue
			}
			m.claims.Inc()
			m.nativeReleased.Add(float64(ev.Amount))
		}
	}
}

func (m *metrics) setPaused(paused bool) {
	if paused {
		m.paused.Set(1)
		return
	}
	m.paused.Set(0)
}
