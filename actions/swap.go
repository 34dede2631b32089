// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/swap"
)

var (
	_ chain.Action = (*Swap)(nil)
	_ chain.Action = (*Claim)(nil)
)

type Swap struct {
	// LegacyAmount is taken from the actor's legacy balance.
	LegacyAmount uint64 `json:"legacyAmount"`
}

func (*Swap) GetTypeID() uint8 {
	return consts.SwapID
}

func (*Swap) Size() int {
	return consts.Uint64Len
}

func (s *Swap) Marshal(p *codec.Packer) {
	p.PackUint64(s.LegacyAmount)
}

func UnmarshalSwap(p *codec.Packer) (chain.Action, error) {
	var s Swap
	s.LegacyAmount = p.UnpackUint64(false)
	return &s, p.Err()
}

func (s *Swap) Execute(
	ctx context.Context,
	exec *swap.Executor,
	mu state.Mutable,
	actor codec.Address,
) (swap.Event, error) {
	out, err := exec.Swap(ctx, mu, actor, s.LegacyAmount)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type Claim struct{}

func (*Claim) GetTypeID() uint8 {
	return consts.ClaimID
}

func (*Claim) Size() int {
	return 0
}

func (*Claim) Marshal(*codec.Packer) {}

func UnmarshalClaim(*codec.Packer) (chain.Action, error) {
	return &Claim{}, nil
}

// Execute reports no event when nothing had vested.
func (*Claim) Execute(
	ctx context.Context,
	exec *swap.Executor,
	mu state.Mutable,
	actor codec.Address,
) (swap.Event, error) {
	out, err := exec.Claim(ctx, mu, actor)
	if err != nil {
		return nil, err
	}
	if out.Amount == 0 {
		return nil, nil
	}
	return out, nil
}
