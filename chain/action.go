// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/swap"
)

// Action is a single command carried by a [Transaction].
type Action interface {
	codec.Typed

	// Size is the encoded size of the action, without its type byte.
	Size() int
	Marshal(p *codec.Packer)

	// Execute runs the action on behalf of [actor]. [mu] is rolled back if
	// an error is returned. A nil event means nothing is reported to
	// subscribers.
	Execute(
		ctx context.Context,
		exec *swap.Executor,
		mu state.Mutable,
		actor codec.Address,
	) (swap.Event, error)
}

// ActionParser decodes actions by type ID.
type ActionParser = codec.TypeParser[Action]
