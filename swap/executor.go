// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package swap converts legacy tokens into vesting native tokens.
//
// Every command receives the transactional state it should modify. The
// executor does not undo partial writes itself: callers run each command
// against a view that is rolled back when an error is returned.
package swap

import (
	"context"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/exchange"
	"github.com/metaverse-network/tokenswap/guard"
	"github.com/metaverse-network/tokenswap/ratio"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
	"github.com/metaverse-network/tokenswap/types"
	"github.com/metaverse-network/tokenswap/vault"
	"github.com/metaverse-network/tokenswap/vesting"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// LegacyLedger holds the legacy balances that swaps consume.
type LegacyLedger interface {
	Balance(ctx context.Context, im state.Immutable, owner codec.Address) (uint64, error)
	Debit(ctx context.Context, mu state.Mutable, owner codec.Address, amount uint64) error
}

// NativeLedger receives the native tokens released by claims.
type NativeLedger interface {
	Credit(ctx context.Context, mu state.Mutable, owner codec.Address, amount uint64) error
}

// HeightSource reports the height commands are executed at.
type HeightSource interface {
	CurrentHeight(ctx context.Context) uint64
}

type Executor struct {
	log     logging.Logger
	guard   *guard.Guard
	legacy  LegacyLedger
	native  NativeLedger
	heights HeightSource
	metrics *metrics
}

func NewExecutor(
	log logging.Logger,
	g *guard.Guard,
	legacy LegacyLedger,
	native NativeLedger,
	heights HeightSource,
	registerer prometheus.Registerer,
) (*Executor, error) {
	m, err := newMetrics(registerer)
	if err != nil {
		return nil, err
	}
	return &Executor{
		log:     log,
		guard:   g,
		legacy:  legacy,
		native:  native,
		heights: heights,
		metrics: m,
	}, nil
}

func (e *Executor) done(command string, actor codec.Address, err error) {
	if err == nil {
		return
	}
	if IsFatal(err) {
		e.log.Error("reserve invariant violated",
			zap.String("command", command),
			zap.Stringer("actor", actor),
			zap.Error(err),
		)
		return
	}
	e.log.Debug("command rejected",
		zap.String("command", command),
		zap.Stringer("actor", actor),
		zap.Stringer("category", Classify(err)),
		zap.Error(err),
	)
}

// SetRate appends an exchange rate effective from [effectiveFrom].
func (e *Executor) SetRate(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	r ratio.Ratio,
	effectiveFrom uint64,
) (_ *RateUpdated, err error) {
	defer func() { e.done("set rate", actor, err) }()

	var rate *types.ExchangeRate
	if err := e.guard.Run(ctx, actor, "set rate", func() error {
		var err error
		rate, err = exchange.SetRate(ctx, mu, r, effectiveFrom)
		return err
	}); err != nil {
		return nil, err
	}
	e.log.Info("exchange rate updated",
		zap.Uint64("index", rate.Index),
		zap.Stringer("ratio", rate.Ratio()),
		zap.Uint64("effectiveFrom", rate.EffectiveFrom),
	)
	return &RateUpdated{Rate: *rate}, nil
}

// Pause halts swaps. Claims are not affected. Pausing twice is not an
// error.
func (e *Executor) Pause(ctx context.Context, mu state.Mutable, actor codec.Address) (_ *SwapsPaused, err error) {
	defer func() { e.done("pause", actor, err) }()

	if err := e.guard.Run(ctx, actor, "pause", func() error {
		return storage.SetPaused(ctx, mu, true)
	}); err != nil {
		return nil, err
	}
	e.log.Info("swaps paused", zap.Stringer("actor", actor))
	return &SwapsPaused{Actor: actor}, nil
}

// Resume re-enables swaps.
func (e *Executor) Resume(ctx context.Context, mu state.Mutable, actor codec.Address) (_ *SwapsResumed, err error) {
	defer func() { e.done("resume", actor, err) }()

	if err := e.guard.Run(ctx, actor, "resume", func() error {
		return storage.SetPaused(ctx, mu, false)
	}); err != nil {
		return nil, err
	}
	e.log.Info("swaps resumed", zap.Stringer("actor", actor))
	return &SwapsResumed{Actor: actor}, nil
}

// SetVestingPolicy makes [policy] the policy of all future lock entries.
// Existing entries keep the policy they were created with.
func (e *Executor) SetVestingPolicy(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	policy types.VestingPolicy,
) (_ *VestingPolicyUpdated, err error) {
	defer func() { e.done("set vesting policy", actor, err) }()

	if err := e.guard.Run(ctx, actor, "set vesting policy", func() error {
		if err := policy.Validate(); err != nil {
			return err
		}
		_, err := storage.AppendPolicy(ctx, mu, &policy)
		return err
	}); err != nil {
		return nil, err
	}
	e.log.Info("vesting policy updated",
		zap.Uint64("index", policy.Index),
		zap.Stringer("policy", &policy),
	)
	return &VestingPolicyUpdated{Policy: policy}, nil
}

// Swap converts [legacyAmount] of [actor]'s legacy balance at the current
// rate and locks the result under the active vesting policy.
func (e *Executor) Swap(
	ctx context.Context,
	mu state.Mutable,
	actor codec.Address,
	legacyAmount uint64,
) (_ *SwapExecuted, err error) {
	defer func() { e.done("swap", actor, err) }()

	if legacyAmount == 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrInvalidAmount)
	}
	paused, err := storage.IsPaused(ctx, mu)
	if err != nil {
		return nil, err
	}
	if paused {
		return nil, ErrSwapPaused
	}
	height := e.heights.CurrentHeight(ctx)
	rate, err := exchange.RateAt(ctx, mu, height)
	if err != nil {
		return nil, err
	}
	balance, err := e.legacy.Balance(ctx, mu, actor)
	if err != nil {
		return nil, err
	}
	if balance < legacyAmount {
		return nil, fmt.Errorf(
			"%w: balance %d, requested %d",
			ErrInsufficientBalance,
			balance,
			legacyAmount,
		)
	}
	nativeAmount, err := rate.Ratio().Apply(legacyAmount)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArithmeticOverflow, err)
	}
	if nativeAmount == 0 {
		return nil, fmt.Errorf(
			"%w: %d converts to zero at rate %s",
			ErrInvalidAmount,
			legacyAmount,
			rate.Ratio(),
		)
	}
	policy, err := storage.GetActivePolicy(ctx, mu)
	if errors.Is(err, storage.ErrMissingEntry) {
		return nil, ErrPolicyNotSet
	}
	if err != nil {
		return nil, err
	}

	if err := e.legacy.Debit(ctx, mu, actor, legacyAmount); err != nil {
		return nil, err
	}
	if _, err := vault.Deposit(ctx, mu, legacyAmount, nativeAmount); err != nil {
		return nil, err
	}
	lock := &types.LockEntry{
		Owner:        actor,
		LegacyAmount: legacyAmount,
		NativeAmount: nativeAmount,
		CreatedAt:    height,
		PolicyIndex:  policy.Index,
		RateIndex:    rate.Index,
		RateNum:      rate.Numerator,
		RateDen:      rate.Denominator,
	}
	if _, err := storage.AppendLock(ctx, mu, lock); err != nil {
		return nil, err
	}

	e.log.Debug("swap executed",
		zap.Stringer("account", actor),
		zap.Uint64("lock", lock.Index),
		zap.Uint64("legacy", legacyAmount),
		zap.Uint64("native", nativeAmount),
		zap.Uint64("height", height),
	)
	return &SwapExecuted{
		Account:      actor,
		LockIndex:    lock.Index,
		LegacyAmount: legacyAmount,
		NativeAmount: nativeAmount,
		RateIndex:    rate.Index,
		PolicyIndex:  policy.Index,
	}, nil
}

// Claim releases everything that has vested across [actor]'s lock entries.
// Claiming when nothing has vested succeeds with a zero amount and changes
// nothing.
func (e *Executor) Claim(ctx context.Context, mu state.Mutable, actor codec.Address) (_ *Claimed, err error) {
	defer func() { e.done("claim", actor, err) }()

	height := e.heights.CurrentHeight(ctx)
	locks, err := storage.GetAccountLocks(ctx, mu, actor)
	if err != nil {
		return nil, err
	}
	policies := map[uint64]*types.VestingPolicy{}
	claimed := &Claimed{Account: actor}
	for _, lock := range locks {
		if lock.Status() == types.FullyClaimed {
			continue
		}
		policy, err := e.policy(ctx, mu, policies, lock.PolicyIndex)
		if err != nil {
			return nil, err
		}
		amount, err := vesting.Claimable(policy, lock, height)
		if err != nil {
			return nil, err
		}
		if amount == 0 {
			continue
		}
		if _, err := vault.Release(ctx, mu, amount); err != nil {
			return nil, err
		}
		if err := e.native.Credit(ctx, mu, actor, amount); err != nil {
			return nil, err
		}
		lock.ClaimedAmount += amount
		if err := storage.PutLock(ctx, mu, lock); err != nil {
			return nil, err
		}
		claimed.Amount, err = smath.Add(claimed.Amount, amount)
		if err != nil {
			return nil, fmt.Errorf("%w: claimed total", ErrArithmeticOverflow)
		}
		claimed.Entries++
	}
	if claimed.Amount > 0 {
		e.log.Debug("claimed",
			zap.Stringer("account", actor),
			zap.Uint64("amount", claimed.Amount),
			zap.Uint32("entries", claimed.Entries),
			zap.Uint64("height", height),
		)
	}
	return claimed, nil
}

func (*Executor) policy(
	ctx context.Context,
	im state.Immutable,
	cache map[uint64]*types.VestingPolicy,
	index uint64,
) (*types.VestingPolicy, error) {
	if p, ok := cache[index]; ok {
		return p, nil
	}
	p, err := storage.GetPolicy(ctx, im, index)
	if err != nil {
		return nil, fmt.Errorf("loading vesting policy %d: %w", index, err)
	}
	cache[index] = p
	return p, nil
}
