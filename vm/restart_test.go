// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm_test

import (
	"context"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/metaverse-network/tokenswap/actions"
	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/config"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
	"github.com/metaverse-network/tokenswap/swap"
	"github.com/metaverse-network/tokenswap/tstate"
	"github.com/metaverse-network/tokenswap/types"
	"github.com/metaverse-network/tokenswap/vm"
)

const (
	testTimeout = 10 * time.Second
	testTick    = 50 * time.Millisecond
)

func TestRestart(t *testing.T) {
	for _, backend := range []string{config.BackendPebble, config.BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			require := require.New(t)
			ctx := context.Background()

			cfg := config.Default()
			cfg.DatabaseBackend = backend
			cfg.DatabasePath = t.TempDir()

			instance, err := vm.New(ctx, logging.NoLog{}, cfg, testGenesis())
			require.NoError(err)
			tx, err := chain.NewTx(alice, 1, &actions.Swap{LegacyAmount: 10})
			require.NoError(err)
			height, result, err := instance.Submit(ctx, tx)
			require.NoError(err)
			require.True(result.Success)
			require.Equal(uint64(1), height)
			require.NoError(instance.Close())

			// Genesis is not loaded twice.
			instance, err = vm.New(ctx, logging.NoLog{}, cfg, testGenesis())
			require.NoError(err)
			last, err := instance.LastHeight(ctx)
			require.NoError(err)
			require.Equal(uint64(1), last)

			locks, err := instance.Executor().LockEntries(ctx, instance.State(), alice)
			require.NoError(err)
			require.Len(locks, 1)
			require.Equal(uint64(20), locks[0].NativeAmount)

			_, result, err = instance.Submit(ctx, tx)
			require.NoError(err)
			require.True(result.Success)
			require.NoError(instance.Close())

			_, _, err = instance.BuildBlock(ctx, nil)
			require.ErrorIs(err, vm.ErrClosed)
		})
	}
}

func TestNewRequiresGenesis(t *testing.T) {
	cfg := config.Default()
	cfg.DatabaseBackend = config.BackendMemDB
	_, err := vm.New(context.Background(), logging.NoLog{}, cfg, nil)
	require.ErrorIs(t, err, vm.ErrGenesisNeeded)
}

func TestHaltAfterFatalBlock(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()

	cfg := config.Default()
	cfg.DatabaseBackend = config.BackendPebble
	cfg.DatabasePath = t.TempDir()

	instance, err := vm.New(ctx, logging.NoLog{}, cfg, testGenesis())
	require.NoError(err)
	require.True(instance.Ready())
	swapTx, err := chain.NewTx(alice, 1, &actions.Swap{LegacyAmount: 10})
	require.NoError(err)
	_, result, err := instance.Submit(ctx, swapTx)
	require.NoError(err)
	require.True(result.Success)
	require.NoError(instance.Close())

	// Leave less in the reserve than the first claim releases.
	db, _, err := cfg.OpenDatabase()
	require.NoError(err)
	ts := tstate.New(state.NewReader(db), 1)
	tsv := ts.NewView()
	require.NoError(storage.SetReserve(ctx, tsv, &types.Reserve{LegacyReserved: 10, NativeReserved: 1}))
	tsv.Commit()
	batch := db.NewBatch()
	require.NoError(ts.WriteChanges(batch))
	require.NoError(batch.Write())
	require.NoError(db.Close())

	instance, err = vm.New(ctx, logging.NoLog{}, cfg, testGenesis())
	require.NoError(err)
	defer func() {
		require.NoError(instance.Close())
	}()

	claimTx, err := chain.NewTx(alice, 2, &actions.Claim{})
	require.NoError(err)
	_, _, err = instance.Submit(ctx, claimTx)
	require.ErrorIs(err, chain.ErrFatalExecution)
	require.ErrorIs(err, swap.ErrReserveUnderflow)
	require.False(instance.Ready())

	_, _, err = instance.Submit(ctx, claimTx)
	require.ErrorIs(err, vm.ErrNotReady)

	last, err := instance.LastHeight(ctx)
	require.NoError(err)
	require.Equal(uint64(1), last)
}
