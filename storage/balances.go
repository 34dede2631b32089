// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/keys"
	"github.com/metaverse-network/tokenswap/state"

	smath "github.com/ava-labs/avalanchego/utils/math"
)

// [legacyBalancePrefix] + [asset] + [owner]
func LegacyBalanceKey(asset ids.ID, owner codec.Address) []byte {
	k := make([]byte, 0, consts.ByteLen+ids.IDLen+codec.AddressLen+consts.Uint16Len)
	k = append(k, legacyBalancePrefix)
	k = append(k, asset[:]...)
	k = append(k, owner[:]...)
	return keys.EncodeChunks(k, Uint64Chunks)
}

// [nativeBalancePrefix] + [owner]
func NativeBalanceKey(owner codec.Address) []byte {
	return accountKey(nativeBalancePrefix, owner, Uint64Chunks)
}

func GetLegacyBalance(ctx context.Context, im state.Immutable, asset ids.ID, owner codec.Address) (uint64, error) {
	bal, _, err := getUint64(ctx, im, LegacyBalanceKey(asset, owner))
	return bal, err
}

func SetLegacyBalance(ctx context.Context, mu state.Mutable, asset ids.ID, owner codec.Address, balance uint64) error {
	return setBalance(ctx, mu, LegacyBalanceKey(asset, owner), balance)
}

func AddLegacyBalance(ctx context.Context, mu state.Mutable, asset ids.ID, owner codec.Address, amount uint64) (uint64, error) {
	return addBalance(ctx, mu, LegacyBalanceKey(asset, owner), amount)
}

func SubLegacyBalance(ctx context.Context, mu state.Mutable, asset ids.ID, owner codec.Address, amount uint64) (uint64, error) {
	return subBalance(ctx, mu, LegacyBalanceKey(asset, owner), amount)
}

func GetNativeBalance(ctx context.Context, im state.Immutable, owner codec.Address) (uint64, error) {
	bal, _, err := getUint64(ctx, im, NativeBalanceKey(owner))
	return bal, err
}

func SetNativeBalance(ctx context.Context, mu state.Mutable, owner codec.Address, balance uint64) error {
	return setBalance(ctx, mu, NativeBalanceKey(owner), balance)
}

func AddNativeBalance(ctx context.Context, mu state.Mutable, owner codec.Address, amount uint64) (uint64, error) {
	return addBalance(ctx, mu, NativeBalanceKey(owner), amount)
}

func setBalance(ctx context.Context, mu state.Mutable, key []byte, balance uint64) error {
	if balance == 0 {
		return mu.Remove(ctx, key)
	}
	return setUint64(ctx, mu, key, balance)
}

func addBalance(ctx context.Context, mu state.Mutable, key []byte, amount uint64) (uint64, error) {
	bal, _, err := getUint64(ctx, mu, key)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Add(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not add balance (bal=%d, amount=%d)",
			err,
			bal,
			amount,
		)
	}
	return nbal, setBalance(ctx, mu, key, nbal)
}

func subBalance(ctx context.Context, mu state.Mutable, key []byte, amount uint64) (uint64, error) {
	bal, _, err := getUint64(ctx, mu, key)
	if err != nil {
		return 0, err
	}
	nbal, err := smath.Sub(bal, amount)
	if err != nil {
		return 0, fmt.Errorf(
			"%w: could not subtract balance (bal=%d, amount=%d)",
			ErrInvalidBalance,
			bal,
			amount,
		)
	}
	// If there is no balance left, we delete the record instead of
	// setting it to 0.
	return nbal, setBalance(ctx, mu, key, nbal)
}
