// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/utils/units"

	"github.com/metaverse-network/tokenswap/consts"
)

const (
	// MaxBlockTxs bounds the number of transactions in a block.
	MaxBlockTxs = 1_024
	// MaxBlockSize bounds the encoded size of a block.
	MaxBlockSize = MaxBlockTxs*consts.MaxTxSize + 64*units.KiB

	// changedKeysPerTx sizes the pending change set of a block.
	changedKeysPerTx = 8
)
