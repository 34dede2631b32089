// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vesting computes how much of a lock entry has unlocked at a given
// height. Everything here is a pure function of its arguments.
package vesting

import (
	"fmt"

	"github.com/metaverse-network/tokenswap/ratio"
	"github.com/metaverse-network/tokenswap/types"
)

// VestedFraction returns the fraction of an entry created at [createdAt]
// that has vested by [height]. The result is in [0, 1] and never decreases
// as [height] grows.
func VestedFraction(policy *types.VestingPolicy, createdAt uint64, height uint64) (ratio.Ratio, error) {
	var elapsed uint64
	if height > createdAt {
		elapsed = height - createdAt
	}
	switch policy.Kind {
	case types.Immediate:
		return ratio.One, nil
	case types.Cliff:
		if elapsed >= policy.Cliff {
			return ratio.One, nil
		}
		return ratio.Zero, nil
	case types.Linear:
		return linear(elapsed, policy.Duration), nil
	case types.CliffLinear:
		if elapsed < policy.Cliff {
			return ratio.Zero, nil
		}
		return linear(elapsed-policy.Cliff, policy.Duration), nil
	default:
		return ratio.Zero, fmt.Errorf("%w: unknown kind %d", types.ErrInvalidPolicy, policy.Kind)
	}
}

func linear(elapsed uint64, duration uint64) ratio.Ratio {
	if elapsed >= duration {
		return ratio.One
	}
	return ratio.New(elapsed, duration)
}

// Vested returns floor(entry.NativeAmount * VestedFraction).
func Vested(policy *types.VestingPolicy, entry *types.LockEntry, height uint64) (uint64, error) {
	fraction, err := VestedFraction(policy, entry.CreatedAt, height)
	if err != nil {
		return 0, err
	}
	return fraction.Apply(entry.NativeAmount)
}

// Claimable returns the vested amount of [entry] that has not been claimed
// yet.
func Claimable(policy *types.VestingPolicy, entry *types.LockEntry, height uint64) (uint64, error) {
	vested, err := Vested(policy, entry, height)
	if err != nil {
		return 0, err
	}
	if vested <= entry.ClaimedAmount {
		return 0, nil
	}
	return vested - entry.ClaimedAmount, nil
}
