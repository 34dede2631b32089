// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/metric"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/prometheus/client_golang/prometheus"
)

type chainMetrics struct {
	blocksExecuted prometheus.Counter
	txsAccepted    prometheus.Counter
	txsRejected    prometheus.Counter

	stateChanges    prometheus.Counter
	stateOperations prometheus.Counter

	height       prometheus.Gauge
	blockExecute metric.Averager
}

func newMetrics(r prometheus.Registerer) (*chainMetrics, error) {
	blockExecute, err := metric.NewAverager(
		"chain_block_execute",
		"time spent executing blocks",
		r,
	)
	if err != nil {
		return nil, err
	}

	m := &chainMetrics{
		blocksExecuted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "blocks_executed",
			Help:      "number of blocks executed",
		}),
		txsAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_accepted",
			Help:      "number of transactions that committed",
		}),
		txsRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "txs_rejected",
			Help:      "number of transactions that were rolled back",
		}),
		stateChanges: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_changes",
			Help:      "number of state changes",
		}),
		stateOperations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "chain",
			Name:      "state_operations",
			Help:      "number of state operations",
		}),
		height: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "chain",
			Name:      "height",
			Help:      "height of the last executed block",
		}),
		blockExecute: blockExecute,
	}
	errs := wrappers.Errs{}
	errs.Add(
		r.Register(m.blocksExecuted),
		r.Register(m.txsAccepted),
		r.Register(m.txsRejected),
		r.Register(m.stateChanges),
		r.Register(m.stateOperations),
		r.Register(m.height),
	)
	return m, errs.Err
}
