// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package consts

import "github.com/ava-labs/avalanchego/ids"

// TypeIDs for actions
const (
	// Administrative
	SetRateID uint8 = iota
	PauseID
	ResumeID
	SetVestingPolicyID

	// Account
	SwapID
	ClaimID
)

// TypeIDs for notifications
const (
	RateUpdatedID uint8 = iota
	SwapsPausedID
	SwapsResumedID
	VestingPolicyUpdatedID
	SwapExecutedID
	ClaimedID
)

const (
	Name = "tokenswap"
	HRP  = "swap"

	// MaxTxSize bounds the encoded size of a single transaction.
	MaxTxSize = 4_096
)

var ID ids.ID

func init() {
	b := make([]byte, ids.IDLen)
	copy(b, []byte(Name))
	vmID, err := ids.ToID(b)
	if err != nil {
		panic(err)
	}
	ID = vmID
}
