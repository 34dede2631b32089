// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm_test

import (
	"context"
	"net"
	"net/http"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"

	"github.com/metaverse-network/tokenswap/actions"
	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/config"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/genesis"
	"github.com/metaverse-network/tokenswap/ratio"
	"github.com/metaverse-network/tokenswap/rpc"
	"github.com/metaverse-network/tokenswap/swap"
	"github.com/metaverse-network/tokenswap/types"
	"github.com/metaverse-network/tokenswap/vm"

	ginkgo "github.com/onsi/ginkgo/v2"
)

var (
	admin = codec.CreateAddress(0, ids.ID{1})
	alice = codec.CreateAddress(0, ids.ID{2})
	bob   = codec.CreateAddress(0, ids.ID{3})
)

func testGenesis() *genesis.Genesis {
	rate := ratio.New(2, 1)
	return &genesis.Genesis{
		LegacyAsset:   ids.ID{9},
		Admins:        []string{codec.MustAddressBech32(consts.HRP, admin)},
		InitialRate:   &rate,
		VestingPolicy: types.VestingPolicy{Kind: types.Linear, Duration: 10},
		LegacyAllocations: []*genesis.CustomAllocation{
			{Address: codec.MustAddressBech32(consts.HRP, alice), Balance: 100},
			{Address: codec.MustAddressBech32(consts.HRP, bob), Balance: 5},
		},
	}
}

func TestVM(t *testing.T) {
	ginkgo.RunSpecs(t, "tokenswap vm test suites")
}

var (
	instance *vm.VM
	cli      *rpc.JSONRPCClient
	uri      string
	cancel   context.CancelFunc
	done     chan error
	nonce    uint64
)

var _ = ginkgo.BeforeSuite(func() {
	require := require.New(ginkgo.GinkgoT())

	cfg := config.Default()
	cfg.DatabaseBackend = config.BackendMemDB
	var err error
	instance, err = vm.New(context.Background(), logging.NoLog{}, cfg, testGenesis())
	require.NoError(err)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	uri = "http://" + listener.Addr().String()
	cli = rpc.NewJSONRPCClient(uri)

	var ctx context.Context
	ctx, cancel = context.WithCancel(context.Background())
	done = make(chan error, 1)
	go func() {
		done <- instance.ServeListener(ctx, listener)
	}()

	require.Eventually(func() bool {
		ok, err := cli.Ping(context.Background())
		return err == nil && ok
	}, testTimeout, testTick)
})

var _ = ginkgo.AfterSuite(func() {
	require := require.New(ginkgo.GinkgoT())
	cancel()
	require.NoError(<-done)
	require.NoError(instance.Close())
})

func submit(require *require.Assertions, actor codec.Address, action chain.Action) (*rpc.SubmitTxReply, error) {
	nonce++
	tx, err := chain.NewTx(actor, nonce, action)
	require.NoError(err)
	return cli.SubmitTx(context.Background(), tx)
}

// advanceTo builds empty blocks until [height] was executed.
func advanceTo(require *require.Assertions, height uint64) {
	ctx := context.Background()
	for {
		last, err := cli.LastHeight(ctx)
		require.NoError(err)
		if last+1 >= height {
			return
		}
		_, _, err = instance.BuildBlock(ctx, nil)
		require.NoError(err)
	}
}

var _ = ginkgo.Describe("[Swap]", ginkgo.Ordered, func() {
	ginkgo.It("serves the genesis configuration", func() {
		require := require.New(ginkgo.GinkgoT())
		ctx := context.Background()

		height, err := cli.LastHeight(ctx)
		require.NoError(err)
		require.Zero(height)

		rate, err := cli.CurrentRate(ctx)
		require.NoError(err)
		require.Equal(uint64(2), rate.Numerator)
		require.Equal(uint64(1), rate.Denominator)

		policy, err := cli.VestingPolicy(ctx)
		require.NoError(err)
		require.Equal(types.Linear, policy.Kind)
		require.Equal(uint64(10), policy.Duration)

		paused, err := cli.Paused(ctx)
		require.NoError(err)
		require.False(paused)

		resp, err := http.Get(uri + rpc.HealthEndpoint)
		require.NoError(err)
		require.NoError(resp.Body.Close())
		require.Equal(http.StatusOK, resp.StatusCode)

		resp, err = http.Get(uri + rpc.MetricsEndpoint)
		require.NoError(err)
		require.NoError(resp.Body.Close())
		require.Equal(http.StatusOK, resp.StatusCode)
	})

	ginkgo.It("locks converted funds", func() {
		require := require.New(ginkgo.GinkgoT())
		ctx := context.Background()

		reply, err := submit(require, alice, &actions.Swap{LegacyAmount: 100})
		require.NoError(err)
		require.Equal(uint64(1), reply.Height)

		locks, err := cli.LockEntries(ctx, alice)
		require.NoError(err)
		require.Len(locks, 1)
		require.Equal(uint64(200), locks[0].NativeAmount)
		require.Equal(uint64(1), locks[0].CreatedAt)

		reserve, err := cli.ReserveTotals(ctx)
		require.NoError(err)
		require.Equal(&types.Reserve{LegacyReserved: 100, NativeReserved: 200}, reserve)
	})

	ginkgo.It("vests linearly", func() {
		require := require.New(ginkgo.GinkgoT())
		ctx := context.Background()
		parser, err := swap.NewEventParser()
		require.NoError(err)

		// The lock entry was created at height 1.
		for _, step := range []struct {
			height  uint64
			claimed uint64
		}{
			{height: 6, claimed: 100},
			{height: 11, claimed: 100},
			{height: 16, claimed: 0},
		} {
			advanceTo(require, step.height)
			reply, err := submit(require, alice, &actions.Claim{})
			require.NoError(err)
			require.Equal(step.height, reply.Height)
			if step.claimed == 0 {
				require.Empty(reply.Output)
				continue
			}
			e, err := swap.ParseEvent(parser, reply.Output)
			require.NoError(err)
			claimed, ok := e.(*swap.Claimed)
			require.True(ok)
			require.Equal(step.claimed, claimed.Amount)
		}

		claimable, err := cli.Claimable(ctx, alice)
		require.NoError(err)
		require.Zero(claimable)

		report, err := cli.Audit(ctx)
		require.NoError(err)
		require.Zero(report.Reserve.NativeReserved)
		require.Zero(report.OutstandingOwed)
	})

	ginkgo.It("rejects invalid commands without side effects", func() {
		require := require.New(ginkgo.GinkgoT())
		ctx := context.Background()

		reply, err := submit(require, bob, &actions.Pause{})
		require.ErrorIs(err, rpc.ErrTxRejected)
		require.Equal(swap.AuthorizationError.String(), reply.Category)

		reply, err = submit(require, bob, &actions.Swap{LegacyAmount: 6})
		require.ErrorIs(err, rpc.ErrTxRejected)
		require.Equal(swap.ResourceError.String(), reply.Category)

		_, err = submit(require, admin, &actions.Pause{})
		require.NoError(err)
		reply, err = submit(require, bob, &actions.Swap{LegacyAmount: 5})
		require.ErrorIs(err, rpc.ErrTxRejected)
		require.Equal(swap.StateError.String(), reply.Category)
		_, err = submit(require, admin, &actions.Resume{})
		require.NoError(err)

		locks, err := cli.LockEntries(ctx, bob)
		require.NoError(err)
		require.Empty(locks)
	})

	ginkgo.It("reports committed events", func() {
		require := require.New(ginkgo.GinkgoT())

		notifications, err := cli.RecentEvents(context.Background())
		require.NoError(err)

		var swaps, claims int
		for _, n := range notifications {
			switch e := n.Event.(type) {
			case *swap.SwapExecuted:
				swaps++
				require.Equal(alice, e.Account)
			case *swap.Claimed:
				claims++
				require.Equal(uint64(100), e.Amount)
			}
		}
		require.Equal(1, swaps)
		require.Equal(2, claims)
	})
})
