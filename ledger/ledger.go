// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ledger provides the token balances that swaps debit from and
// claims credit to. Both ledgers write through the state they are given so
// that their changes are rolled back with the command that made them.
package ledger

import (
	"context"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
)

// Legacy holds balances of a single legacy asset.
type Legacy struct {
	asset ids.ID
}

func NewLegacy(asset ids.ID) *Legacy {
	return &Legacy{asset: asset}
}

func (l *Legacy) Asset() ids.ID {
	return l.asset
}

func (l *Legacy) Balance(ctx context.Context, im state.Immutable, owner codec.Address) (uint64, error) {
	return storage.GetLegacyBalance(ctx, im, l.asset, owner)
}

func (l *Legacy) Debit(ctx context.Context, mu state.Mutable, owner codec.Address, amount uint64) error {
	_, err := storage.SubLegacyBalance(ctx, mu, l.asset, owner, amount)
	return err
}

// Mint is only used when loading genesis allocations.
func (l *Legacy) Mint(ctx context.Context, mu state.Mutable, owner codec.Address, amount uint64) error {
	_, err := storage.AddLegacyBalance(ctx, mu, l.asset, owner, amount)
	return err
}

// Native holds spendable native balances.
type Native struct{}

func NewNative() *Native {
	return &Native{}
}

func (*Native) Balance(ctx context.Context, im state.Immutable, owner codec.Address) (uint64, error) {
	return storage.GetNativeBalance(ctx, im, owner)
}

func (*Native) Credit(ctx context.Context, mu state.Mutable, owner codec.Address, amount uint64) error {
	_, err := storage.AddNativeBalance(ctx, mu, owner, amount)
	return err
}
