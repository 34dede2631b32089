// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
)

const LockEntrySize = codec.AddressLen + 8*consts.Uint64Len

// LockStatus is derived from the claim progress of a [LockEntry].
type LockStatus uint8

const (
	Created LockStatus = iota
	PartiallyVested
	FullyClaimed
)

func (s LockStatus) String() string {
	switch s {
	case Created:
		return "created"
	case PartiallyVested:
		return "partially-vested"
	case FullyClaimed:
		return "fully-claimed"
	default:
		return "unknown"
	}
}

func (s LockStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// LockEntry records the native amount produced by one swap and how much of
// it has been claimed. NativeAmount, LegacyAmount and the rate snapshot never
// change after creation.
type LockEntry struct {
	Owner         codec.Address `json:"owner"`
	Index         uint64        `json:"index"`
	LegacyAmount  uint64        `json:"legacyAmount"`
	NativeAmount  uint64        `json:"nativeAmount"`
	CreatedAt     uint64        `json:"createdAt"`
	PolicyIndex   uint64        `json:"policyIndex"`
	RateIndex     uint64        `json:"rateIndex"`
	RateNum       uint64        `json:"rateNumerator"`
	RateDen       uint64        `json:"rateDenominator"`
	ClaimedAmount uint64        `json:"claimedAmount"`
}

func (l *LockEntry) Status() LockStatus {
	switch {
	case l.ClaimedAmount >= l.NativeAmount:
		return FullyClaimed
	case l.ClaimedAmount == 0:
		return Created
	default:
		return PartiallyVested
	}
}

// Remaining returns the amount still held in reserve for this entry.
func (l *LockEntry) Remaining() uint64 {
	if l.ClaimedAmount >= l.NativeAmount {
		return 0
	}
	return l.NativeAmount - l.ClaimedAmount
}

// Marshal does not include Index, which is part of the storage key.
func (l *LockEntry) Marshal(p *codec.Packer) {
	p.PackAddress(l.Owner)
	p.PackUint64(l.LegacyAmount)
	p.PackUint64(l.NativeAmount)
	p.PackUint64(l.CreatedAt)
	p.PackUint64(l.PolicyIndex)
	p.PackUint64(l.RateIndex)
	p.PackUint64(l.RateNum)
	p.PackUint64(l.RateDen)
	p.PackUint64(l.ClaimedAmount)
}

func UnmarshalLockEntry(p *codec.Packer) (*LockEntry, error) {
	var l LockEntry
	p.UnpackAddress(&l.Owner)
	l.LegacyAmount = p.UnpackUint64(true)
	l.NativeAmount = p.UnpackUint64(true)
	l.CreatedAt = p.UnpackUint64(false)
	l.PolicyIndex = p.UnpackUint64(false)
	l.RateIndex = p.UnpackUint64(false)
	l.RateNum = p.UnpackUint64(true)
	l.RateDen = p.UnpackUint64(true)
	l.ClaimedAmount = p.UnpackUint64(false)
	return &l, p.Err()
}
