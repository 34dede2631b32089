// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting/address"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

const AddressLen = 33

// Address represents the 33 byte address of an account. The first byte
// identifies how the remaining 32 bytes were derived.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	var a Address
	a[0] = typeID
	copy(a[1:], id[:])
	return a
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	result := make([]byte, len(a)*2+2)
	copy(result, `0x`)
	hex.Encode(result[2:], a[:])
	return result, nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	b, err := LoadHex(string(input), AddressLen)
	if err != nil {
		return err
	}
	copy(a[:], b)
	return nil
}

// AddressBech32 returns a Bech32 address from [hrp] and [a].
func AddressBech32(hrp string, a Address) (string, error) {
	return address.FormatBech32(hrp, a[:])
}

// MustAddressBech32 is like [AddressBech32] but panics on failure. It is
// only safe to use with a constant [hrp].
func MustAddressBech32(hrp string, a Address) string {
	s, err := AddressBech32(hrp, a)
	if err != nil {
		panic(err)
	}
	return s
}

// ParseAddressBech32 parses a Bech32 encoded address string and extracts
// its [Address]. If there is an error reading the address or
// the hrp value is not valid, ParseAddressBech32 returns an error.
func ParseAddressBech32(hrp, saddr string) (Address, error) {
	phrp, decoded, err := bech32.Decode(saddr)
	if err != nil {
		return EmptyAddress, err
	}
	if phrp != hrp {
		return EmptyAddress, ErrIncorrectHRP
	}
	// Padding would turn the 33 bytes of an address into 34.
	p, err := bech32.ConvertBits(decoded, 5, 8, false)
	if err != nil {
		return EmptyAddress, err
	}
	if len(p) != AddressLen {
		return EmptyAddress, ErrInsufficientLength
	}
	return Address(p), nil
}

// ParseAddress accepts either a Bech32 address with [hrp] or a hex
// encoded address.
func ParseAddress(hrp, saddr string) (Address, error) {
	if addr, err := ParseAddressBech32(hrp, saddr); err == nil {
		return addr, nil
	}
	var a Address
	if err := a.UnmarshalText([]byte(saddr)); err != nil {
		return EmptyAddress, err
	}
	return a, nil
}
