// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/profiler"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/metaverse-network/tokenswap/actions"
	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/config"
	"github.com/metaverse-network/tokenswap/event"
	"github.com/metaverse-network/tokenswap/genesis"
	"github.com/metaverse-network/tokenswap/guard"
	"github.com/metaverse-network/tokenswap/ledger"
	"github.com/metaverse-network/tokenswap/lifecycle"
	"github.com/metaverse-network/tokenswap/rpc"
	"github.com/metaverse-network/tokenswap/server"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
	"github.com/metaverse-network/tokenswap/swap"

	tracer "github.com/metaverse-network/tokenswap/trace"
)

const shutdownTimeout = 10 * time.Second

var _ rpc.VM = (*VM)(nil)

// VM owns the database and executes every submitted transaction in its own
// block.
type VM struct {
	config  config.Config
	genesis *genesis.Genesis

	log      logging.Logger
	tracer   trace.Tracer
	registry *prometheus.Registry
	gatherer prometheus.Gatherers

	db     state.Database
	clock  *chain.Clock
	exec   *swap.Executor
	proc   *chain.Processor
	parser *chain.ActionParser
	events *event.Collector[*chain.Notification]
	subs   []event.Subscription[*chain.Notification]
	now    func() time.Time

	// ready is cleared when a block fails fatally. No further blocks are
	// built once that happens.
	ready *lifecycle.AtomicBoolReady

	l      sync.Mutex
	closed bool
}

// New opens the configured database and loads [g] into it if it has not
// been loaded before.
func New(
	ctx context.Context,
	log logging.Logger,
	cfg config.Config,
	g *genesis.Genesis,
	options ...Option,
) (*VM, error) {
	if g == nil {
		return nil, ErrGenesisNeeded
	}
	if err := cfg.Verify(); err != nil {
		return nil, err
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	vm := &VM{
		config:   cfg,
		genesis:  g,
		log:      log,
		registry: prometheus.NewRegistry(),
		events:   event.NewCollector[*chain.Notification](cfg.EventBacklog),
		now:      time.Now,
		ready:    lifecycle.NewAtomicBoolReady(false),
	}
	for _, option := range options {
		option(vm)
	}

	var err error
	vm.tracer, err = tracer.New(cfg.GetTraceConfig())
	if err != nil {
		return nil, err
	}
	db, dbGatherer, err := cfg.OpenDatabase()
	if err != nil {
		return nil, err
	}
	vm.db = db
	vm.gatherer = prometheus.Gatherers{vm.registry}
	if dbGatherer != nil {
		vm.gatherer = append(vm.gatherer, dbGatherer)
	}

	if err := vm.initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return vm, nil
}

func (vm *VM) initialize(ctx context.Context) error {
	loaded, err := storage.HasGenesis(ctx, state.NewReader(vm.db))
	if err != nil {
		return err
	}
	if !loaded {
		if err := vm.genesis.Load(ctx, vm.tracer, vm.db); err != nil {
			return fmt.Errorf("%w: unable to load genesis", err)
		}
		vm.log.Info("loaded genesis",
			zap.Stringer("legacyAsset", vm.genesis.LegacyAsset),
			zap.Int("legacyAllocations", len(vm.genesis.LegacyAllocations)),
			zap.Int("nativeAllocations", len(vm.genesis.NativeAllocations)),
		)
	}
	height, _, err := storage.GetHeight(ctx, state.NewReader(vm.db))
	if err != nil {
		return err
	}

	admins, err := vm.genesis.AdminAddresses()
	if err != nil {
		return err
	}
	vm.clock = chain.NewClock(height)
	vm.exec, err = swap.NewExecutor(
		vm.log,
		guard.New(vm.log, guard.NewStaticAuthorizer(admins...)),
		ledger.NewLegacy(vm.genesis.LegacyAsset),
		ledger.NewNative(),
		vm.clock,
		vm.registry,
	)
	if err != nil {
		return err
	}
	if err := vm.exec.LoadMetrics(ctx, state.NewReader(vm.db)); err != nil {
		return err
	}
	subs := append([]event.Subscription[*chain.Notification]{vm.events}, vm.subs...)
	vm.proc, err = chain.NewProcessor(vm.log, vm.tracer, vm.db, vm.exec, vm.clock, vm.registry, subs...)
	if err != nil {
		return err
	}
	vm.parser, err = actions.NewParser()
	if err != nil {
		return err
	}
	vm.ready.MarkReady()
	vm.log.Info("initialized vm",
		zap.Uint64("height", height),
		zap.String("database", vm.config.DatabaseBackend),
	)
	return nil
}

func (vm *VM) Logger() logging.Logger { return vm.log }

func (vm *VM) Tracer() trace.Tracer { return vm.tracer }

func (vm *VM) State() state.Immutable { return state.NewReader(vm.db) }

func (vm *VM) Executor() *swap.Executor { return vm.exec }

func (vm *VM) ActionParser() *chain.ActionParser { return vm.parser }

func (vm *VM) Registry() *prometheus.Registry { return vm.registry }

func (vm *VM) LastHeight(ctx context.Context) (uint64, error) {
	return vm.proc.LastHeight(ctx)
}

func (vm *VM) Ready() bool { return vm.ready.Ready() }

func (vm *VM) RecentEvents() []*chain.Notification {
	return vm.events.Events()
}

// BuildBlock executes [txs] in a new block at the next height.
func (vm *VM) BuildBlock(ctx context.Context, txs []*chain.Transaction) (*chain.Block, []*chain.Result, error) {
	vm.l.Lock()
	defer vm.l.Unlock()

	if vm.closed {
		return nil, nil, ErrClosed
	}
	if !vm.ready.Ready() {
		return nil, nil, ErrNotReady
	}
	last, err := vm.proc.LastHeight(ctx)
	if err != nil {
		return nil, nil, err
	}
	blk, err := chain.NewBlock(last+1, vm.now().UnixMilli(), txs)
	if err != nil {
		return nil, nil, err
	}
	results, err := vm.proc.Execute(ctx, blk)
	if errors.Is(err, chain.ErrFatalExecution) {
		vm.ready.MarkNotReady()
		vm.log.Error("halting after fatal block",
			zap.Uint64("height", blk.Height),
			zap.Error(err),
		)
	}
	if err != nil {
		return nil, nil, err
	}
	return blk, results, nil
}

func (vm *VM) Submit(ctx context.Context, tx *chain.Transaction) (uint64, *chain.Result, error) {
	blk, results, err := vm.BuildBlock(ctx, []*chain.Transaction{tx})
	if err != nil {
		return 0, nil, err
	}
	return blk.Height, results[0], nil
}

type healthReply struct {
	Healthy bool   `json:"healthy"`
	Height  uint64 `json:"height"`
}

func (vm *VM) health(w http.ResponseWriter, r *http.Request) {
	height, err := vm.LastHeight(r.Context())
	healthy := err == nil && vm.ready.Ready()
	w.Header().Set("Content-Type", "application/json")
	if !healthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(&healthReply{Healthy: healthy, Height: height})
}

// AddRoutes registers the JSON-RPC, health and metrics endpoints.
func (vm *VM) AddRoutes(s server.PathAdder) error {
	handler, err := server.NewJSONRPCHandler(rpc.NewJSONRPCServer(vm), rpc.Name)
	if err != nil {
		return err
	}
	if err := s.AddRoute(handler, "", rpc.JSONRPCEndpoint); err != nil {
		return err
	}
	if err := s.AddRoute(http.HandlerFunc(vm.health), "", rpc.HealthEndpoint); err != nil {
		return err
	}
	if !vm.config.MetricsEnabled {
		return nil
	}
	return s.AddRoute(promhttp.HandlerFor(vm.gatherer, promhttp.HandlerOpts{}), "", rpc.MetricsEndpoint)
}

// Serve runs the API server until [ctx] is cancelled.
func (vm *VM) Serve(ctx context.Context) error {
	listener, err := net.Listen("tcp", vm.config.RPCAddress)
	if err != nil {
		return err
	}
	return vm.ServeListener(ctx, listener)
}

func (vm *VM) ServeListener(ctx context.Context, listener net.Listener) error {
	srv := server.New(
		"",
		vm.log,
		listener,
		vm.config.HTTP,
		vm.config.CORSAllowedOrigins,
		vm.config.AllowedHosts,
		shutdownTimeout,
	)
	if err := vm.AddRoutes(srv); err != nil {
		_ = listener.Close()
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Dispatch)
	var continuousProfiler profiler.ContinuousProfiler
	if cfg := vm.config.GetContinuousProfilerConfig(); cfg.Enabled {
		continuousProfiler = profiler.NewContinuous(cfg.Dir, cfg.Freq, cfg.MaxNumFiles)
		g.Go(continuousProfiler.Dispatch)
		vm.log.Info("continuous profiler enabled", zap.String("dir", cfg.Dir))
	}
	g.Go(func() error {
		<-gctx.Done()
		if continuousProfiler != nil {
			continuousProfiler.Shutdown()
		}
		return srv.Shutdown()
	})
	return g.Wait()
}

func (vm *VM) Close() error {
	vm.l.Lock()
	defer vm.l.Unlock()

	if vm.closed {
		return nil
	}
	vm.closed = true
	return errors.Join(
		event.CloseAll(vm.subs...),
		vm.tracer.Close(),
		vm.db.Close(),
	)
}
