// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vault tracks the legacy tokens received by swaps and the native
// tokens still owed to lock entries. The counters can only be changed by
// [Deposit] and [Release].
package vault

import (
	"context"
	"errors"
	"fmt"

	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
	"github.com/metaverse-network/tokenswap/types"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

var (
	ErrArithmeticOverflow   = errors.New("arithmetic overflow")
	ErrReserveUnderflow     = errors.New("reserve underflow")
	ErrConservationViolated = errors.New("conservation violated")
)

func Get(ctx context.Context, im state.Immutable) (*types.Reserve, error) {
	return storage.GetReserve(ctx, im)
}

// Deposit adds the legacy amount received by a swap and the native amount
// it locked.
func Deposit(ctx context.Context, mu state.Mutable, legacy uint64, native uint64) (*types.Reserve, error) {
	r, err := storage.GetReserve(ctx, mu)
	if err != nil {
		return nil, err
	}
	nlegacy, err := smath.Add(r.LegacyReserved, legacy)
	if err != nil {
		return nil, fmt.Errorf("%w: legacy reserve %d + %d", ErrArithmeticOverflow, r.LegacyReserved, legacy)
	}
	nnative, err := smath.Add(r.NativeReserved, native)
	if err != nil {
		return nil, fmt.Errorf("%w: native reserve %d + %d", ErrArithmeticOverflow, r.NativeReserved, native)
	}
	r.LegacyReserved = nlegacy
	r.NativeReserved = nnative
	return r, storage.SetReserve(ctx, mu, r)
}

// Release removes [native] from the reserve. Releasing more than is held
// means the ledger is inconsistent and returns [ErrReserveUnderflow].
func Release(ctx context.Context, mu state.Mutable, native uint64) (*types.Reserve, error) {
	r, err := storage.GetReserve(ctx, mu)
	if err != nil {
		return nil, err
	}
	nnative, err := smath.Sub(r.NativeReserved, native)
	if err != nil {
		return nil, fmt.Errorf("%w: native reserve %d - %d", ErrReserveUnderflow, r.NativeReserved, native)
	}
	r.NativeReserved = nnative
	return r, storage.SetReserve(ctx, mu, r)
}

// Report summarizes an [Audit].
type Report struct {
	Reserve         types.Reserve `json:"reserve"`
	Locks           uint64        `json:"locks"`
	OpenLocks       uint64        `json:"openLocks"`
	LockedLegacy    uint64        `json:"lockedLegacy"`
	OutstandingOwed uint64        `json:"outstandingOwed"`
}

// Audit walks every lock entry and checks that the native reserve equals the
// sum of unclaimed native amounts and that the legacy reserve equals the sum
// of swapped legacy amounts.
func Audit(ctx context.Context, im state.Immutable) (*Report, error) {
	r, err := storage.GetReserve(ctx, im)
	if err != nil {
		return nil, err
	}
	count, err := storage.GetLockCount(ctx, im)
	if err != nil {
		return nil, err
	}
	report := &Report{Reserve: *r, Locks: count}
	for i := uint64(0); i < count; i++ {
		l, err := storage.GetLock(ctx, im, i)
		if err != nil {
			return nil, err
		}
		if l.ClaimedAmount > l.NativeAmount {
			return report, fmt.Errorf(
				"%w: lock %d claimed %d of %d",
				ErrConservationViolated,
				i,
				l.ClaimedAmount,
				l.NativeAmount,
			)
		}
		if l.Status() != types.FullyClaimed {
			report.OpenLocks++
		}
		report.LockedLegacy, err = smath.Add(report.LockedLegacy, l.LegacyAmount)
		if err != nil {
			return report, fmt.Errorf("%w: summing legacy amounts", ErrArithmeticOverflow)
		}
		report.OutstandingOwed, err = smath.Add(report.OutstandingOwed, l.Remaining())
		if err != nil {
			return report, fmt.Errorf("%w: summing owed amounts", ErrArithmeticOverflow)
		}
	}
	if report.OutstandingOwed != r.NativeReserved {
		return report, fmt.Errorf(
			"%w: native reserve %d, owed %d",
			ErrConservationViolated,
			r.NativeReserved,
			report.OutstandingOwed,
		)
	}
	if report.LockedLegacy != r.LegacyReserved {
		return report, fmt.Errorf(
			"%w: legacy reserve %d, swapped %d",
			ErrConservationViolated,
			r.LegacyReserved,
			report.LockedLegacy,
		)
	}
	return report, nil
}
