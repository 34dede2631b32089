// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"errors"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/types"
)

func ReserveKey() []byte {
	return singletonKey(reservePrefix, ReserveChunks)
}

// GetReserve returns the reserve counters, which start at zero.
func GetReserve(ctx context.Context, im state.Immutable) (*types.Reserve, error) {
	r, err := getEncoded(ctx, im, ReserveKey(), types.ReserveSize, types.UnmarshalReserve)
	if errors.Is(err, ErrMissingEntry) {
		return &types.Reserve{}, nil
	}
	return r, err
}

func SetReserve(ctx context.Context, mu state.Mutable, r *types.Reserve) error {
	return setEncoded(ctx, mu, ReserveKey(), types.ReserveSize, func(p *codec.Packer) {
		r.Marshal(p)
	})
}
