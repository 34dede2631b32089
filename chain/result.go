// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"github.com/ava-labs/avalanchego/ids"

	"github.com/metaverse-network/tokenswap/swap"
)

// Result describes the outcome of one transaction in a block.
type Result struct {
	TxID    ids.ID `json:"txID"`
	Success bool   `json:"success"`

	// Error and Category are set when the transaction was rejected.
	Error    string `json:"error,omitempty"`
	Category string `json:"category,omitempty"`

	// Output is the encoded event of a successful transaction, if any.
	Output []byte `json:"output,omitempty"`

	category swap.Category
}

func failedResult(txID ids.ID, err error) *Result {
	return &Result{
		TxID:     txID,
		Error:    err.Error(),
		Category: swap.Classify(err).String(),
		category: swap.Classify(err),
	}
}

// Notification is delivered to subscribers for every committed event.
type Notification struct {
	Height uint64     `json:"height"`
	TxID   ids.ID     `json:"txID"`
	Event  swap.Event `json:"event"`
}
