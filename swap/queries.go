// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package swap

import (
	"context"
	"errors"
	"fmt"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/exchange"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
	"github.com/metaverse-network/tokenswap/types"
	"github.com/metaverse-network/tokenswap/vesting"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// committedHeight reads the height of the last block written to [im]. Queries
// use it instead of the execution clock so that the height always matches
// the state being read.
func committedHeight(ctx context.Context, im state.Immutable) (uint64, error) {
	height, ok, err := storage.GetHeight(ctx, im)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrHeightUnknown
	}
	return height, nil
}

// CurrentRate returns the rate the next block swaps at.
func (*Executor) CurrentRate(ctx context.Context, im state.Immutable) (*types.ExchangeRate, error) {
	height, err := committedHeight(ctx, im)
	if err != nil {
		return nil, err
	}
	return exchange.RateAt(ctx, im, height+1)
}

func (*Executor) RateHistory(ctx context.Context, im state.Immutable) ([]*types.ExchangeRate, error) {
	return exchange.History(ctx, im)
}

func (*Executor) ReserveTotals(ctx context.Context, im state.Immutable) (*types.Reserve, error) {
	return storage.GetReserve(ctx, im)
}

func (*Executor) LockEntries(ctx context.Context, im state.Immutable, account codec.Address) ([]*types.LockEntry, error) {
	return storage.GetAccountLocks(ctx, im, account)
}

// Claimable returns what [account] has vested as of the last committed
// height and not yet claimed.
func (e *Executor) Claimable(ctx context.Context, im state.Immutable, account codec.Address) (uint64, error) {
	height, err := committedHeight(ctx, im)
	if err != nil {
		return 0, err
	}
	locks, err := storage.GetAccountLocks(ctx, im, account)
	if err != nil {
		return 0, err
	}
	policies := map[uint64]*types.VestingPolicy{}
	var total uint64
	for _, lock := range locks {
		if lock.Status() == types.FullyClaimed {
			continue
		}
		policy, err := e.policy(ctx, im, policies, lock.PolicyIndex)
		if err != nil {
			return 0, err
		}
		amount, err := vesting.Claimable(policy, lock, height)
		if err != nil {
			return 0, err
		}
		total, err = smath.Add(total, amount)
		if err != nil {
			return 0, fmt.Errorf("%w: claimable total", ErrArithmeticOverflow)
		}
	}
	return total, nil
}

func (*Executor) Paused(ctx context.Context, im state.Immutable) (bool, error) {
	return storage.IsPaused(ctx, im)
}

// VestingPolicy returns the policy new lock entries are created with.
func (*Executor) VestingPolicy(ctx context.Context, im state.Immutable) (*types.VestingPolicy, error) {
	policy, err := storage.GetActivePolicy(ctx, im)
	if errors.Is(err, storage.ErrMissingEntry) {
		return nil, ErrPolicyNotSet
	}
	return policy, err
}
