// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/types"
)

func RateKey(index uint64) []byte {
	return indexedKey(ratePrefix, index, RateChunks)
}

func RateCountKey() []byte {
	return singletonKey(rateCountPrefix, Uint64Chunks)
}

func GetRateCount(ctx context.Context, im state.Immutable) (uint64, error) {
	count, _, err := getUint64(ctx, im, RateCountKey())
	return count, err
}

func GetRate(ctx context.Context, im state.Immutable, index uint64) (*types.ExchangeRate, error) {
	return getEncoded(ctx, im, RateKey(index), types.ExchangeRateSize, types.UnmarshalExchangeRate)
}

// AppendRate stores [rate] at the next index and returns it. The index of
// [rate] is overwritten.
func AppendRate(ctx context.Context, mu state.Mutable, rate *types.ExchangeRate) (uint64, error) {
	count, err := GetRateCount(ctx, mu)
	if err != nil {
		return 0, err
	}
	rate.Index = count
	if err := setEncoded(ctx, mu, RateKey(count), types.ExchangeRateSize, func(p *codec.Packer) {
		rate.Marshal(p)
	}); err != nil {
		return 0, err
	}
	return count, setUint64(ctx, mu, RateCountKey(), count+1)
}
