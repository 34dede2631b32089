// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package actions

import (
	"github.com/ava-labs/avalanchego/utils/wrappers"

	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/codec"
)

// NewParser returns a parser that knows every action.
func NewParser() (*chain.ActionParser, error) {
	parser := codec.NewTypeParser[chain.Action]()

	errs := &wrappers.Errs{}
	errs.Add(
		parser.Register(&SetRate{}, UnmarshalSetRate),
		parser.Register(&Pause{}, UnmarshalPause),
		parser.Register(&Resume{}, UnmarshalResume),
		parser.Register(&SetVestingPolicy{}, UnmarshalSetVestingPolicy),
		parser.Register(&Swap{}, UnmarshalSwap),
		parser.Register(&Claim{}, UnmarshalClaim),
	)
	if errs.Errored() {
		return nil, errs.Err
	}
	return parser, nil
}
