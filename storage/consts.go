// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/metaverse-network/tokenswap/keys"
	"github.com/metaverse-network/tokenswap/types"
)

// Key prefixes
const (
	heightPrefix byte = iota
	genesisPrefix
	pausedPrefix

	ratePrefix
	rateCountPrefix
	policyPrefix
	policyCountPrefix

	lockPrefix
	lockCountPrefix
	accountLockPrefix
	accountLockCountPrefix

	reservePrefix

	legacyBalancePrefix
	nativeBalancePrefix
)

// Chunks
var (
	Uint64Chunks  uint16 = 1
	BoolChunks    uint16 = 1
	RateChunks    = chunksFor(types.ExchangeRateSize)
	PolicyChunks  = chunksFor(types.VestingPolicySize)
	LockChunks    = chunksFor(types.LockEntrySize)
	ReserveChunks = chunksFor(types.ReserveSize)
)

func chunksFor(size int) uint16 {
	chunks, ok := keys.NumChunks(make([]byte, size))
	if !ok {
		panic("value too large")
	}
	return chunks
}
