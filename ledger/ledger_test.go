// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ledger

import (
	"context"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
)

func TestLegacy(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.Memory{}
	owner := codec.CreateAddress(0, ids.GenerateTestID())

	l := NewLegacy(ids.GenerateTestID())
	require.NoError(l.Mint(ctx, mu, owner, 10))
	require.NoError(l.Debit(ctx, mu, owner, 4))
	require.ErrorIs(l.Debit(ctx, mu, owner, 7), storage.ErrInvalidBalance)

	bal, err := l.Balance(ctx, mu, owner)
	require.NoError(err)
	require.Equal(uint64(6), bal)

	other := NewLegacy(ids.GenerateTestID())
	bal, err = other.Balance(ctx, mu, owner)
	require.NoError(err)
	require.Zero(bal)
}

func TestNative(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	mu := state.Memory{}
	owner := codec.CreateAddress(0, ids.GenerateTestID())

	n := NewNative()
	require.NoError(n.Credit(ctx, mu, owner, 3))
	require.NoError(n.Credit(ctx, mu, owner, 4))
	bal, err := n.Balance(ctx, mu, owner)
	require.NoError(err)
	require.Equal(uint64(7), bal)
}
