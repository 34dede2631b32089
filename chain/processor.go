// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/metaverse-network/tokenswap/event"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
	"github.com/metaverse-network/tokenswap/swap"
	"github.com/metaverse-network/tokenswap/tstate"

	oteltrace "go.opentelemetry.io/otel/trace"
)

// Processor executes blocks one at a time against [state.Database].
//
// Every transaction runs in its own [tstate.TStateView]. A rejected
// transaction is rolled back and reported in its [Result]. A fatal error
// discards the whole block so that nothing is written.
type Processor struct {
	log     logging.Logger
	tracer  trace.Tracer
	db      state.Database
	exec    *swap.Executor
	clock   *Clock
	metrics *chainMetrics
	subs    []event.Subscription[*Notification]

	l sync.Mutex
}

func NewProcessor(
	log logging.Logger,
	tracer trace.Tracer,
	db state.Database,
	exec *swap.Executor,
	clock *Clock,
	registerer prometheus.Registerer,
	subs ...event.Subscription[*Notification],
) (*Processor, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Processor{
		log:     log,
		tracer:  tracer,
		db:      db,
		exec:    exec,
		clock:   clock,
		metrics: m,
		subs:    subs,
	}, nil
}

// LastHeight returns the height of the last executed block.
func (p *Processor) LastHeight(ctx context.Context) (uint64, error) {
	height, ok, err := storage.GetHeight(ctx, state.NewReader(p.db))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrGenesisMissing
	}
	return height, nil
}

// Execute runs every transaction in [blk] and writes the committed changes
// to the database in a single batch.
func (p *Processor) Execute(ctx context.Context, blk *Block) ([]*Result, error) {
	p.l.Lock()
	defer p.l.Unlock()

	start := time.Now()
	ctx, span := p.tracer.Start(
		ctx, "Processor.Execute",
		oteltrace.WithAttributes(
			attribute.Int("txs", len(blk.Txs)),
			attribute.Int64("height", int64(blk.Height)),
		),
	)
	defer span.End()

	if len(blk.Txs) > MaxBlockTxs {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyTxs, len(blk.Txs), MaxBlockTxs)
	}
	last, err := p.LastHeight(ctx)
	if err != nil {
		return nil, err
	}
	if blk.Height <= last {
		return nil, fmt.Errorf("%w: %d is not after %d", ErrInvalidHeight, blk.Height, last)
	}

	p.clock.Set(blk.Height)
	ts := tstate.New(state.NewReader(p.db), len(blk.Txs)*changedKeysPerTx)
	results := make([]*Result, len(blk.Txs))
	notifications := make([]*Notification, 0, len(blk.Txs))
	var rejected []swap.Category
	for i, tx := range blk.Txs {
		result, notification, err := p.executeTx(ctx, ts, tx)
		if err != nil {
			// The clock must not report a height that was never committed.
			p.clock.Set(last)
			p.log.Error("aborting block",
				zap.Uint64("height", blk.Height),
				zap.Stringer("txID", tx.ID()),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: tx %s: %w", ErrFatalExecution, tx.ID(), err)
		}
		results[i] = result
		if !result.Success {
			rejected = append(rejected, result.category)
		}
		if notification != nil {
			notification.Height = blk.Height
			notifications = append(notifications, notification)
		}
	}

	tsv := ts.NewView()
	if err := storage.SetHeight(ctx, tsv, blk.Height); err != nil {
		p.clock.Set(last)
		return nil, err
	}
	tsv.Commit()

	batch := p.db.NewBatch()
	if err := ts.WriteChanges(batch); err != nil {
		p.clock.Set(last)
		return nil, err
	}
	if err := batch.Write(); err != nil {
		p.clock.Set(last)
		return nil, err
	}

	events := make([]swap.Event, len(notifications))
	for i, n := range notifications {
		events[i] = n.Event
	}
	p.exec.Record(events, rejected)
	p.metrics.txsAccepted.Add(float64(len(results) - len(rejected)))
	p.metrics.txsRejected.Add(float64(len(rejected)))
	p.metrics.blocksExecuted.Inc()
	p.metrics.stateChanges.Add(float64(ts.PendingChanges()))
	p.metrics.stateOperations.Add(float64(ts.OpIndex()))
	p.metrics.height.Set(float64(blk.Height))
	p.metrics.blockExecute.Observe(float64(time.Since(start)))
	p.log.Debug("executed block",
		zap.Uint64("height", blk.Height),
		zap.Int("txs", len(blk.Txs)),
		zap.Int("events", len(notifications)),
		zap.Duration("t", time.Since(start)),
	)

	for _, n := range notifications {
		if err := event.NotifyAll(ctx, n, p.subs...); err != nil {
			p.log.Warn("subscriber failed",
				zap.Stringer("txID", n.TxID),
				zap.Error(err),
			)
		}
	}
	return results, nil
}

// executeTx returns an error only if the block must be aborted.
func (p *Processor) executeTx(
	ctx context.Context,
	ts *tstate.TState,
	tx *Transaction,
) (*Result, *Notification, error) {
	tsv := ts.NewView()
	start := tsv.OpIndex()
	out, err := tx.Action.Execute(ctx, p.exec, tsv, tx.Actor)
	if swap.IsFatal(err) {
		return nil, nil, err
	}
	if err != nil {
		tsv.Rollback(ctx, start)
		return failedResult(tx.ID(), err), nil, nil
	}
	result := &Result{TxID: tx.ID(), Success: true}
	if out != nil {
		result.Output, err = swap.MarshalEvent(out)
		if err != nil {
			tsv.Rollback(ctx, start)
			return failedResult(tx.ID(), err), nil, nil
		}
	}
	tsv.Commit()

	if out == nil {
		return result, nil, nil
	}
	return result, &Notification{TxID: tx.ID(), Event: out}, nil
}
