// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"context"

	"go.uber.org/atomic"

	"github.com/metaverse-network/tokenswap/swap"
)

var _ swap.HeightSource = (*Clock)(nil)

// Clock reports the height of the block being executed, or of the last
// executed block between blocks.
type Clock struct {
	height atomic.Uint64
}

func NewClock(height uint64) *Clock {
	c := &Clock{}
	c.height.Store(height)
	return c
}

func (c *Clock) Set(height uint64) {
	c.height.Store(height)
}

func (c *Clock) CurrentHeight(context.Context) uint64 {
	return c.height.Load()
}
