// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/formatting/address"
	"github.com/stretchr/testify/require"
)

func TestAddressBech32(t *testing.T) {
	require := require.New(t)

	addr := CreateAddress(0, ids.GenerateTestID())
	s, err := AddressBech32("swap", addr)
	require.NoError(err)

	parsed, err := ParseAddressBech32("swap", s)
	require.NoError(err)
	require.Equal(addr, parsed)

	_, err = ParseAddressBech32("other", s)
	require.ErrorIs(err, ErrIncorrectHRP)
}

func TestAddressText(t *testing.T) {
	require := require.New(t)

	addr := CreateAddress(3, ids.GenerateTestID())
	b, err := addr.MarshalText()
	require.NoError(err)
	require.Equal("0x"+addr.String(), string(b))

	var decoded Address
	require.NoError(decoded.UnmarshalText(b))
	require.Equal(addr, decoded)

	require.ErrorIs(decoded.UnmarshalText([]byte("0x01")), ErrInvalidSize)
}

func TestParseAddress(t *testing.T) {
	require := require.New(t)

	addr := CreateAddress(1, ids.GenerateTestID())
	fromHex, err := ParseAddress("swap", addr.String())
	require.NoError(err)
	require.Equal(addr, fromHex)

	fromBech, err := ParseAddress("swap", MustAddressBech32("swap", addr))
	require.NoError(err)
	require.Equal(addr, fromBech)
}

func TestParseAddressBech32Length(t *testing.T) {
	require := require.New(t)

	for _, typeID := range []uint8{0, 1, 0xff} {
		addr := CreateAddress(typeID, ids.GenerateTestID())
		parsed, err := ParseAddressBech32("swap", MustAddressBech32("swap", addr))
		require.NoError(err)
		require.Equal(addr, parsed)
	}

	id := ids.GenerateTestID()
	short, err := address.FormatBech32("swap", id[:])
	require.NoError(err)
	_, err = ParseAddressBech32("swap", short)
	require.ErrorIs(err, ErrInsufficientLength)
}
