// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"errors"
	"fmt"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
)

var ErrInvalidPolicy = errors.New("invalid vesting policy")

const VestingPolicySize = consts.ByteLen + 3*consts.Uint64Len

// PolicyKind selects the shape of a vesting schedule.
type PolicyKind uint8

const (
	// Immediate releases everything at creation.
	Immediate PolicyKind = iota
	// Cliff releases everything once [VestingPolicy.Cliff] blocks elapsed.
	Cliff
	// Linear ramps from zero to everything over [VestingPolicy.Duration]
	// blocks.
	Linear
	// CliffLinear waits [VestingPolicy.Cliff] blocks and then ramps over
	// [VestingPolicy.Duration] blocks.
	CliffLinear
)

func (k PolicyKind) String() string {
	switch k {
	case Immediate:
		return "immediate"
	case Cliff:
		return "cliff"
	case Linear:
		return "linear"
	case CliffLinear:
		return "cliff-linear"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// ParsePolicyKind is the inverse of [PolicyKind.String].
func ParsePolicyKind(s string) (PolicyKind, error) {
	for k := Immediate; k <= CliffLinear; k++ {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown kind %q", ErrInvalidPolicy, s)
}

// MarshalText lets policies appear by name in genesis and config files.
func (k PolicyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *PolicyKind) UnmarshalText(b []byte) error {
	parsed, err := ParsePolicyKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// VestingPolicy is stored in an append-only history. Lock entries keep the
// index of the policy that was active when they were created.
type VestingPolicy struct {
	Index    uint64     `json:"index"`
	Kind     PolicyKind `json:"kind"`
	Cliff    uint64     `json:"cliff"`
	Duration uint64     `json:"duration"`
}

// Validate checks that the parameters make sense for [Kind].
func (v *VestingPolicy) Validate() error {
	switch v.Kind {
	case Immediate:
		if v.Cliff != 0 || v.Duration != 0 {
			return fmt.Errorf("%w: immediate policy takes no parameters", ErrInvalidPolicy)
		}
	case Cliff:
		if v.Cliff == 0 || v.Duration != 0 {
			return fmt.Errorf("%w: cliff policy requires only a cliff", ErrInvalidPolicy)
		}
	case Linear:
		if v.Cliff != 0 || v.Duration == 0 {
			return fmt.Errorf("%w: linear policy requires only a duration", ErrInvalidPolicy)
		}
	case CliffLinear:
		if v.Cliff == 0 || v.Duration == 0 {
			return fmt.Errorf("%w: cliff-linear policy requires a cliff and a duration", ErrInvalidPolicy)
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidPolicy, v.Kind)
	}
	return nil
}

func (v *VestingPolicy) String() string {
	return fmt.Sprintf("%s(cliff=%d, duration=%d)", v.Kind, v.Cliff, v.Duration)
}

func (v *VestingPolicy) Marshal(p *codec.Packer) {
	p.PackUint64(v.Index)
	p.PackByte(byte(v.Kind))
	p.PackUint64(v.Cliff)
	p.PackUint64(v.Duration)
}

func UnmarshalVestingPolicy(p *codec.Packer) (*VestingPolicy, error) {
	var v VestingPolicy
	v.Index = p.UnpackUint64(false)
	v.Kind = PolicyKind(p.UnpackByte())
	v.Cliff = p.UnpackUint64(false)
	v.Duration = p.UnpackUint64(false)
	if err := p.Err(); err != nil {
		return nil, err
	}
	return &v, v.Validate()
}
