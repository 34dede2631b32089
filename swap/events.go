// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package swap

import (
	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/types"
)

// Event is emitted for every command that commits.
type Event interface {
	codec.Typed

	Size() int
	Marshal(p *codec.Packer)
}

var (
	_ Event = (*RateUpdated)(nil)
	_ Event = (*SwapsPaused)(nil)
	_ Event = (*SwapsResumed)(nil)
	_ Event = (*VestingPolicyUpdated)(nil)
	_ Event = (*SwapExecuted)(nil)
	_ Event = (*Claimed)(nil)
)

type RateUpdated struct {
	Rate types.ExchangeRate `json:"rate"`
}

func (*RateUpdated) GetTypeID() uint8 {
	return consts.RateUpdatedID
}

func (*RateUpdated) Size() int {
	return types.ExchangeRateSize
}

func (e *RateUpdated) Marshal(p *codec.Packer) {
	e.Rate.Marshal(p)
}

func UnmarshalRateUpdated(p *codec.Packer) (Event, error) {
	rate, err := types.UnmarshalExchangeRate(p)
	if err != nil {
		return nil, err
	}
	return &RateUpdated{Rate: *rate}, nil
}

type SwapsPaused struct {
	Actor codec.Address `json:"actor"`
}

func (*SwapsPaused) GetTypeID() uint8 {
	return consts.SwapsPausedID
}

func (*SwapsPaused) Size() int {
	return codec.AddressLen
}

func (e *SwapsPaused) Marshal(p *codec.Packer) {
	p.PackAddress(e.Actor)
}

func UnmarshalSwapsPaused(p *codec.Packer) (Event, error) {
	var e SwapsPaused
	p.UnpackAddress(&e.Actor)
	return &e, p.Err()
}

type SwapsResumed struct {
	Actor codec.Address `json:"actor"`
}

func (*SwapsResumed) GetTypeID() uint8 {
	return consts.SwapsResumedID
}

func (*SwapsResumed) Size() int {
	return codec.AddressLen
}

func (e *SwapsResumed) Marshal(p *codec.Packer) {
	p.PackAddress(e.Actor)
}

func UnmarshalSwapsResumed(p *codec.Packer) (Event, error) {
	var e SwapsResumed
	p.UnpackAddress(&e.Actor)
	return &e, p.Err()
}

type VestingPolicyUpdated struct {
	Policy types.VestingPolicy `json:"policy"`
}

func (*VestingPolicyUpdated) GetTypeID() uint8 {
	return consts.VestingPolicyUpdatedID
}

func (*VestingPolicyUpdated) Size() int {
	return types.VestingPolicySize
}

func (e *VestingPolicyUpdated) Marshal(p *codec.Packer) {
	e.Policy.Marshal(p)
}

func UnmarshalVestingPolicyUpdated(p *codec.Packer) (Event, error) {
	policy, err := types.UnmarshalVestingPolicy(p)
	if err != nil {
		return nil, err
	}
	return &VestingPolicyUpdated{Policy: *policy}, nil
}

type SwapExecuted struct {
	Account      codec.Address `json:"account"`
	LockIndex    uint64        `json:"lockIndex"`
	LegacyAmount uint64        `json:"legacyAmount"`
	NativeAmount uint64        `json:"nativeAmount"`
	RateIndex    uint64        `json:"rateIndex"`
	PolicyIndex  uint64        `json:"policyIndex"`
}

func (*SwapExecuted) GetTypeID() uint8 {
	return consts.SwapExecutedID
}

func (*SwapExecuted) Size() int {
	return codec.AddressLen + 5*consts.Uint64Len
}

func (e *SwapExecuted) Marshal(p *codec.Packer) {
	p.PackAddress(e.Account)
	p.PackUint64(e.LockIndex)
	p.PackUint64(e.LegacyAmount)
	p.PackUint64(e.NativeAmount)
	p.PackUint64(e.RateIndex)
	p.PackUint64(e.PolicyIndex)
}

func UnmarshalSwapExecuted(p *codec.Packer) (Event, error) {
	var e SwapExecuted
	p.UnpackAddress(&e.Account)
	e.LockIndex = p.UnpackUint64(false)
	e.LegacyAmount = p.UnpackUint64(true)
	e.NativeAmount = p.UnpackUint64(true)
	e.RateIndex = p.UnpackUint64(false)
	e.PolicyIndex = p.UnpackUint64(false)
	return &e, p.Err()
}

type Claimed struct {
	Account codec.Address `json:"account"`
	Amount  uint64        `json:"amount"`
	// Entries is the number of lock entries that released tokens.
	Entries uint32 `json:"entries"`
}

func (*Claimed) GetTypeID() uint8 {
	return consts.ClaimedID
}

func (*Claimed) Size() int {
	return codec.AddressLen + consts.Uint64Len + consts.Uint32Len
}

func (e *Claimed) Marshal(p *codec.Packer) {
	p.PackAddress(e.Account)
	p.PackUint64(e.Amount)
	p.PackInt(e.Entries)
}

func UnmarshalClaimed(p *codec.Packer) (Event, error) {
	var e Claimed
	p.UnpackAddress(&e.Account)
	e.Amount = p.UnpackUint64(false)
	e.Entries = p.UnpackInt(false)
	return &e, p.Err()
}

// NewEventParser returns a parser for every [Event] emitted by the
// executor.
func NewEventParser() (*codec.TypeParser[Event], error) {
	parser := codec.NewTypeParser[Event]()
	for _, r := range []struct {
		e Event
		f func(*codec.Packer) (Event, error)
	}{
		{&RateUpdated{}, UnmarshalRateUpdated},
		{&SwapsPaused{}, UnmarshalSwapsPaused},
		{&SwapsResumed{}, UnmarshalSwapsResumed},
		{&VestingPolicyUpdated{}, UnmarshalVestingPolicyUpdated},
		{&SwapExecuted{}, UnmarshalSwapExecuted},
		{&Claimed{}, UnmarshalClaimed},
	} {
		if err := parser.Register(r.e, r.f); err != nil {
			return nil, err
		}
	}
	return parser, nil
}

// MarshalEvent encodes [e] with a leading type byte.
func MarshalEvent(e Event) ([]byte, error) {
	size := consts.ByteLen + e.Size()
	p := codec.NewWriter(size, size)
	p.PackByte(e.GetTypeID())
	e.Marshal(p)
	return p.Bytes(), p.Err()
}

// ParseEvent decodes an event encoded by [MarshalEvent].
func ParseEvent(parser *codec.TypeParser[Event], b []byte) (Event, error) {
	p := codec.NewReader(b, len(b))
	e, err := parser.Unmarshal(p)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, codec.ErrExtraBytes
	}
	return e, nil
}
