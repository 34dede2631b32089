// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package keys encodes the maximum value size of a state key into the key
// itself. Every key ends with a big-endian uint16 holding the number of
// 64-byte chunks its value may occupy.
package keys

import (
	"encoding/binary"

	"github.com/metaverse-network/tokenswap/consts"
)

const chunkSize = 64 // bytes

func Valid(key []byte) bool {
	return len(key) > consts.Uint16Len
}

// MaxChunks returns the chunk limit encoded in [key].
func MaxChunks(key []byte) (uint16, bool) {
	l := len(key)
	if l < consts.Uint16Len {
		return 0, false
	}
	return binary.BigEndian.Uint16(key[l-consts.Uint16Len:]), true
}

// NumChunks returns the number of chunks needed to store [value].
func NumChunks(value []byte) (uint16, bool) {
	return numChunks(len(value))
}

func numChunks(valueLen int) (uint16, bool) {
	if valueLen == 0 {
		return 0, true
	}
	raw := valueLen/chunkSize + 1
	if raw > int(consts.MaxUint16) {
		return 0, false
	}
	return uint16(raw), true
}

// VerifyValue returns true if [value] fits into the chunks reserved by [key].
func VerifyValue(key []byte, value []byte) bool {
	valueChunks, ok := NumChunks(value)
	if !ok {
		return false
	}
	keyChunks, ok := MaxChunks(key)
	if !ok {
		return false
	}
	return valueChunks <= keyChunks
}

// EncodeChunks appends [maxChunks] to [key].
func EncodeChunks(key []byte, maxChunks uint16) []byte {
	return binary.BigEndian.AppendUint16(key, maxChunks)
}

// Encode appends the chunks required by a value of [maxSize] bytes to [key].
func Encode(key []byte, maxSize int) ([]byte, bool) {
	chunks, ok := numChunks(maxSize)
	if !ok {
		return nil, false
	}
	return EncodeChunks(key, chunks), true
}
