// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"context"

	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/ratio"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/swap"
	"github.com/metaverse-network/tokenswap/types"
)

var (
	_ chain.Action = (*SetRate)(nil)
	_ chain.Action = (*Pause)(nil)
	_ chain.Action = (*Resume)(nil)
	_ chain.Action = (*SetVestingPolicy)(nil)
)

type SetRate struct {
	// Numerator native units are produced per Denominator legacy units.
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`

	// EffectiveFrom must be after the last rate's.
	EffectiveFrom uint64 `json:"effectiveFrom"`
}

func (*SetRate) GetTypeID() uint8 {
	return consts.SetRateID
}

func (*SetRate) Size() int {
	return 3 * consts.Uint64Len
}

func (s *SetRate) Marshal(p *codec.Packer) {
	p.PackUint64(s.Numerator)
	p.PackUint64(s.Denominator)
	p.PackUint64(s.EffectiveFrom)
}

// UnmarshalSetRate does not reject zero terms so that they are reported as
// an invalid ratio by execution.
func UnmarshalSetRate(p *codec.Packer) (chain.Action, error) {
	var s SetRate
	s.Numerator = p.UnpackUint64(false)
	s.Denominator = p.UnpackUint64(false)
	s.EffectiveFrom = p.UnpackUint64(false)
	return &s, p.Err()
}

func (s *SetRate) Execute(
	ctx context.Context,
	exec *swap.Executor,
	mu state.Mutable,
	actor codec.Address,
) (swap.Event, error) {
	out, err := exec.SetRate(ctx, mu, actor, ratio.New(s.Numerator, s.Denominator), s.EffectiveFrom)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type Pause struct{}

func (*Pause) GetTypeID() uint8 {
	return consts.PauseID
}

func (*Pause) Size() int {
	return 0
}

func (*Pause) Marshal(*codec.Packer) {}

func UnmarshalPause(*codec.Packer) (chain.Action, error) {
	return &Pause{}, nil
}

func (*Pause) Execute(
	ctx context.Context,
	exec *swap.Executor,
	mu state.Mutable,
	actor codec.Address,
) (swap.Event, error) {
	out, err := exec.Pause(ctx, mu, actor)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type Resume struct{}

func (*Resume) GetTypeID() uint8 {
	return consts.ResumeID
}

func (*Resume) Size() int {
	return 0
}

func (*Resume) Marshal(*codec.Packer) {}

func UnmarshalResume(*codec.Packer) (chain.Action, error) {
	return &Resume{}, nil
}

func (*Resume) Execute(
	ctx context.Context,
	exec *swap.Executor,
	mu state.Mutable,
	actor codec.Address,
) (swap.Event, error) {
	out, err := exec.Resume(ctx, mu, actor)
	if err != nil {
		return nil, err
	}
	return out, nil
}

type SetVestingPolicy struct {
	Kind     types.PolicyKind `json:"kind"`
	Cliff    uint64           `json:"cliff"`
	Duration uint64           `json:"duration"`
}

func (*SetVestingPolicy) GetTypeID() uint8 {
	return consts.SetVestingPolicyID
}

func (*SetVestingPolicy) Size() int {
	return consts.ByteLen + 2*consts.Uint64Len
}

func (s *SetVestingPolicy) Marshal(p *codec.Packer) {
	p.PackByte(byte(s.Kind))
	p.PackUint64(s.Cliff)
	p.PackUint64(s.Duration)
}

func UnmarshalSetVestingPolicy(p *codec.Packer) (chain.Action, error) {
	var s SetVestingPolicy
	s.Kind = types.PolicyKind(p.UnpackByte())
	s.Cliff = p.UnpackUint64(false)
	s.Duration = p.UnpackUint64(false)
	return &s, p.Err()
}

func (s *SetVestingPolicy) Execute(
	ctx context.Context,
	exec *swap.Executor,
	mu state.Mutable,
	actor codec.Address,
) (swap.Event, error) {
	out, err := exec.SetVestingPolicy(ctx, mu, actor, types.VestingPolicy{
		Kind:     s.Kind,
		Cliff:    s.Cliff,
		Duration: s.Duration,
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
