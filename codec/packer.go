// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/metaverse-network/tokenswap/consts"
)

// Packer is a wrapper struct for the Packer struct
// from avalanchego/utils/wrappers/packing.go. Unpack methods that take a
// [required] flag record ErrFieldNotPopulated when the field is empty.
type Packer struct {
	p *wrappers.Packer
}

// NewReader returns a Packer instance with the current byte array [src]
// and a maximum size of [limit].
func NewReader(src []byte, limit int) *Packer {
	return &Packer{
		p: &wrappers.Packer{Bytes: src, MaxSize: limit},
	}
}

// NewWriter returns an instance of Packer that writes at most [limit] bytes
// and starts with a buffer of capacity [initial].
func NewWriter(initial, limit int) *Packer {
	return &Packer{
		p: &wrappers.Packer{MaxSize: limit, Bytes: make([]byte, 0, initial)},
	}
}

// Bytes returns the byte slice of the Packer.
func (p *Packer) Bytes() []byte {
	return p.p.Bytes
}

// Err returns any error associated with the packer.
func (p *Packer) Err() error {
	return p.p.Err
}

// Empty returns true if all bytes have been read.
func (p *Packer) Empty() bool {
	return p.p.Offset == len(p.p.Bytes)
}

func (p *Packer) Offset() int {
	return p.p.Offset
}

func (p *Packer) addErr(err error) {
	p.p.Add(err)
}

func (p *Packer) PackByte(b byte) {
	p.p.PackByte(b)
}

func (p *Packer) UnpackByte() byte {
	return p.p.UnpackByte()
}

func (p *Packer) PackBool(b bool) {
	p.p.PackBool(b)
}

func (p *Packer) UnpackBool() bool {
	return p.p.UnpackBool()
}

func (p *Packer) PackInt(v uint32) {
	p.p.PackInt(v)
}

// UnpackInt unpacks a uint32. If [required] is set and the value is 0, an
// error is added to the packer.
func (p *Packer) UnpackInt(required bool) uint32 {
	v := p.p.UnpackInt()
	if required && v == 0 {
		p.addErr(ErrFieldNotPopulated)
	}
	return v
}

func (p *Packer) PackUint64(v uint64) {
	p.p.PackLong(v)
}

// UnpackUint64 unpacks a uint64. If [required] is set and the value is 0,
// an error is added to the packer.
func (p *Packer) UnpackUint64(required bool) uint64 {
	v := p.p.UnpackLong()
	if required && v == 0 {
		p.addErr(ErrFieldNotPopulated)
	}
	return v
}

func (p *Packer) PackID(id ids.ID) {
	p.p.PackFixedBytes(id[:])
}

// UnpackID unpacks an avalanchego ID into [dest]. If [required] is true,
// and the unpacked bytes are empty, Packer will add an ErrFieldNotPopulated
// error.
func (p *Packer) UnpackID(required bool, dest *ids.ID) {
	copy((*dest)[:], p.p.UnpackFixedBytes(consts.IDLen))
	if required && *dest == ids.Empty {
		p.addErr(ErrFieldNotPopulated)
	}
}

func (p *Packer) PackAddress(a Address) {
	p.p.PackFixedBytes(a[:])
}

// UnpackAddress unpacks an [Address] into [dest]. Empty addresses are
// rejected.
func (p *Packer) UnpackAddress(dest *Address) {
	copy((*dest)[:], p.p.UnpackFixedBytes(AddressLen))
	if *dest == EmptyAddress {
		p.addErr(ErrFieldNotPopulated)
	}
}

func (p *Packer) PackBytes(b []byte) {
	p.p.PackBytes(b)
}

// UnpackBytes unpacks [limit] bytes into [dest]. Otherwise
// if [limit] >= 0, UnpackBytes unpacks a byte slice array into [dest]. If
// [required] is set to true and the amount of bytes written to [dest] is 0,
// UnpackBytes adds an err ErrFieldNotPopulated to the Packer.
func (p *Packer) UnpackBytes(limit int, required bool, dest *[]byte) {
	if limit >= 0 {
		*dest = p.p.UnpackLimitedBytes(uint32(limit))
	} else {
		*dest = p.p.UnpackBytes()
	}
	if required && len(*dest) == 0 {
		p.addErr(ErrFieldNotPopulated)
	}
}

func (p *Packer) PackString(s string) {
	p.p.PackStr(s)
}

func (p *Packer) UnpackString(required bool) string {
	str := p.p.UnpackStr()
	if required && len(str) == 0 {
		p.addErr(ErrFieldNotPopulated)
	}
	return str
}
