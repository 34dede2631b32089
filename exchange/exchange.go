// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package exchange keeps the append-only history of legacy-to-native
// exchange rates. Entries are ordered by strictly increasing EffectiveFrom
// and are never modified once stored.
package exchange

import (
	"context"
	"fmt"
	"sort"

	"github.com/metaverse-network/tokenswap/ratio"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
	"github.com/metaverse-network/tokenswap/types"
)

// SetRate appends a rate that takes effect at [effectiveFrom].
func SetRate(
	ctx context.Context,
	mu state.Mutable,
	r ratio.Ratio,
	effectiveFrom uint64,
) (*types.ExchangeRate, error) {
	if !r.Positive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRatio, r)
	}
	latest, ok, err := Latest(ctx, mu)
	if err != nil {
		return nil, err
	}
	if ok && effectiveFrom <= latest.EffectiveFrom {
		return nil, fmt.Errorf(
			"%w: effective from %d must be after %d",
			ErrRateWindowConflict,
			effectiveFrom,
			latest.EffectiveFrom,
		)
	}
	rate := &types.ExchangeRate{
		Numerator:     r.Numerator,
		Denominator:   r.Denominator,
		EffectiveFrom: effectiveFrom,
	}
	if _, err := storage.AppendRate(ctx, mu, rate); err != nil {
		return nil, err
	}
	return rate, nil
}

// Latest returns the most recently appended rate, which may not be in
// effect yet.
func Latest(ctx context.Context, im state.Immutable) (*types.ExchangeRate, bool, error) {
	count, err := storage.GetRateCount(ctx, im)
	if err != nil {
		return nil, false, err
	}
	if count == 0 {
		return nil, false, nil
	}
	rate, err := storage.GetRate(ctx, im, count-1)
	if err != nil {
		return nil, false, err
	}
	return rate, true, nil
}

// RateAt returns the latest rate with EffectiveFrom <= [height].
func RateAt(ctx context.Context, im state.Immutable, height uint64) (*types.ExchangeRate, error) {
	count, err := storage.GetRateCount(ctx, im)
	if err != nil {
		return nil, err
	}
	// Find the first rate that is not yet effective.
	var searchErr error
	i := sort.Search(int(count), func(i int) bool {
		if searchErr != nil {
			return true
		}
		rate, err := storage.GetRate(ctx, im, uint64(i))
		if err != nil {
			searchErr = err
			return true
		}
		return rate.EffectiveFrom > height
	})
	if searchErr != nil {
		return nil, searchErr
	}
	if i == 0 {
		return nil, fmt.Errorf("%w: height %d", ErrRateNotSet, height)
	}
	return storage.GetRate(ctx, im, uint64(i-1))
}

// History returns every rate in order of EffectiveFrom.
func History(ctx context.Context, im state.Immutable) ([]*types.ExchangeRate, error) {
	count, err := storage.GetRateCount(ctx, im)
	if err != nil {
		return nil, err
	}
	rates := make([]*types.ExchangeRate, 0, count)
	for i := uint64(0); i < count; i++ {
		rate, err := storage.GetRate(ctx, im, i)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}
	return rates, nil
}
