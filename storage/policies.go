// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/types"
)

func PolicyKey(index uint64) []byte {
	return indexedKey(policyPrefix, index, PolicyChunks)
}

func PolicyCountKey() []byte {
	return singletonKey(policyCountPrefix, Uint64Chunks)
}

func GetPolicyCount(ctx context.Context, im state.Immutable) (uint64, error) {
	count, _, err := getUint64(ctx, im, PolicyCountKey())
	return count, err
}

func GetPolicy(ctx context.Context, im state.Immutable, index uint64) (*types.VestingPolicy, error) {
	return getEncoded(ctx, im, PolicyKey(index), types.VestingPolicySize, types.UnmarshalVestingPolicy)
}

// GetActivePolicy returns the most recently appended policy.
func GetActivePolicy(ctx context.Context, im state.Immutable) (*types.VestingPolicy, error) {
	count, err := GetPolicyCount(ctx, im)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrMissingEntry
	}
	return GetPolicy(ctx, im, count-1)
}

// AppendPolicy stores [policy] at the next index and returns it.
func AppendPolicy(ctx context.Context, mu state.Mutable, policy *types.VestingPolicy) (uint64, error) {
	count, err := GetPolicyCount(ctx, mu)
	if err != nil {
		return 0, err
	}
	policy.Index = count
	if err := setEncoded(ctx, mu, PolicyKey(count), types.VestingPolicySize, func(p *codec.Packer) {
		policy.Marshal(p)
	}); err != nil {
		return 0, err
	}
	return count, setUint64(ctx, mu, PolicyCountKey(), count+1)
}
