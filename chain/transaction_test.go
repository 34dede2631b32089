// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metaverse-network/tokenswap/actions"
	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/codec"
)

func TestNewTx(t *testing.T) {
	tests := []struct {
		name   string
		actor  codec.Address
		action chain.Action
		err    error
	}{
		{name: "valid", actor: alice, action: &actions.Swap{LegacyAmount: 1}},
		{name: "missing action", actor: alice, err: chain.ErrMissingAction},
		{name: "empty actor", actor: codec.EmptyAddress, action: &actions.Claim{}, err: chain.ErrInvalidActor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chain.NewTx(tt.actor, 0, tt.action)
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestTxIDDependsOnNonce(t *testing.T) {
	require := require.New(t)
	a, err := chain.NewTx(alice, 1, &actions.Claim{})
	require.NoError(err)
	b, err := chain.NewTx(alice, 2, &actions.Claim{})
	require.NoError(err)
	require.NotEqual(a.ID(), b.ID())
}

func TestParseTxExtraBytes(t *testing.T) {
	require := require.New(t)
	parser, err := actions.NewParser()
	require.NoError(err)

	tx, err := chain.NewTx(alice, 1, &actions.Swap{LegacyAmount: 5})
	require.NoError(err)
	raw := append(append([]byte{}, tx.Bytes()...), 0)
	_, err = chain.ParseTx(raw, parser)
	require.ErrorIs(err, codec.ErrExtraBytes)
}

func TestBlockRoundTrip(t *testing.T) {
	require := require.New(t)
	parser, err := actions.NewParser()
	require.NoError(err)

	txs := make([]*chain.Transaction, 0, 3)
	for i, action := range []chain.Action{
		&actions.SetRate{Numerator: 5, Denominator: 4, EffectiveFrom: 9},
		&actions.Swap{LegacyAmount: 77},
		&actions.Claim{},
	} {
		tx, err := chain.NewTx(bob, uint64(i), action)
		require.NoError(err)
		txs = append(txs, tx)
	}
	blk, err := chain.NewBlock(9, 1_700_000_000, txs)
	require.NoError(err)
	raw, err := blk.Marshal()
	require.NoError(err)

	parsed, err := chain.UnmarshalBlock(raw, parser)
	require.NoError(err)
	require.Equal(blk.Height, parsed.Height)
	require.Equal(blk.Timestamp, parsed.Timestamp)
	require.Len(parsed.Txs, len(txs))
	for i, tx := range parsed.Txs {
		require.Equal(txs[i].ID(), tx.ID())
		require.Equal(txs[i].Action, tx.Action)
	}

	id, err := blk.ID()
	require.NoError(err)
	parsedID, err := parsed.ID()
	require.NoError(err)
	require.Equal(id, parsedID)

	_, err = chain.UnmarshalBlock(append(raw, 1), parser)
	require.ErrorIs(err, codec.ErrExtraBytes)
}

func TestTooManyTxs(t *testing.T) {
	tx, err := chain.NewTx(alice, 0, &actions.Claim{})
	require.NoError(t, err)
	txs := make([]*chain.Transaction, chain.MaxBlockTxs+1)
	for i := range txs {
		txs[i] = tx
	}
	_, err = chain.NewBlock(1, 0, txs)
	require.ErrorIs(t, err, chain.ErrTooManyTxs)
}
