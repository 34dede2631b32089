// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package swap

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/guard"
	"github.com/metaverse-network/tokenswap/ledger"
	"github.com/metaverse-network/tokenswap/ratio"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
	"github.com/metaverse-network/tokenswap/tstate"
	"github.com/metaverse-network/tokenswap/types"
	"github.com/metaverse-network/tokenswap/vault"
)

var (
	admin = codec.CreateAddress(0, ids.ID{1})
	alice = codec.CreateAddress(0, ids.ID{2})
	bob   = codec.CreateAddress(0, ids.ID{3})
)

type testHeights struct {
	height uint64
}

func (h *testHeights) CurrentHeight(context.Context) uint64 {
	return h.height
}

type failingNative struct {
	*ledger.Native
	failAfter int
}

var errCreditFailed = errors.New("credit failed")

func (f *failingNative) Credit(ctx context.Context, mu state.Mutable, owner codec.Address, amount uint64) error {
	if f.failAfter == 0 {
		return errCreditFailed
	}
	f.failAfter--
	return f.Native.Credit(ctx, mu, owner, amount)
}

type testEnv struct {
	ctx     context.Context
	state   state.Memory
	heights *testHeights
	legacy  *ledger.Legacy
	native  *ledger.Native
	exec    *Executor
}

func newTestEnv(t *testing.T, nativeLedger NativeLedger) *testEnv {
	require := require.New(t)
	env := &testEnv{
		ctx:     context.Background(),
		state:   state.Memory{},
		heights: &testHeights{},
		legacy:  ledger.NewLegacy(ids.GenerateTestID()),
		native:  ledger.NewNative(),
	}
	if nativeLedger == nil {
		nativeLedger = env.native
	}
	exec, err := NewExecutor(
		logging.NoLog{},
		guard.New(logging.NoLog{}, guard.NewStaticAuthorizer(admin)),
		env.legacy,
		nativeLedger,
		env.heights,
		prometheus.NewRegistry(),
	)
	require.NoError(err)
	env.exec = exec
	return env
}

// commit moves execution to [height] and records it as committed, the way
// the block processor does after a block is written.
func (env *testEnv) commit(t *testing.T, height uint64) {
	env.heights.height = height
	require.NoError(t, storage.SetHeight(env.ctx, env.state, height))
}

// configure sets a rate of [num]/[den] effective from genesis, a vesting
// policy and legacy balances.
func (env *testEnv) configure(t *testing.T, num, den uint64, policy types.VestingPolicy, balances map[codec.Address]uint64) {
	require := require.New(t)
	require.NoError(storage.SetHeight(env.ctx, env.state, 0))
	_, err := env.exec.SetRate(env.ctx, env.state, admin, ratio.New(num, den), 0)
	require.NoError(err)
	_, err = env.exec.SetVestingPolicy(env.ctx, env.state, admin, policy)
	require.NoError(err)
	for addr, bal := range balances {
		require.NoError(env.legacy.Mint(env.ctx, env.state, addr, bal))
	}
}

func TestSwapAndClaimScenario(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, nil)
	env.configure(t, 2, 1, types.VestingPolicy{Kind: types.Linear, Duration: 10}, map[codec.Address]uint64{alice: 100})

	swapped, err := env.exec.Swap(env.ctx, env.state, alice, 100)
	require.NoError(err)
	require.Equal(uint64(200), swapped.NativeAmount)
	require.Equal(uint64(100), swapped.LegacyAmount)

	locks, err := env.exec.LockEntries(env.ctx, env.state, alice)
	require.NoError(err)
	require.Len(locks, 1)
	require.Equal(uint64(200), locks[0].NativeAmount)
	require.Zero(locks[0].ClaimedAmount)

	reserve, err := env.exec.ReserveTotals(env.ctx, env.state)
	require.NoError(err)
	require.Equal(&types.Reserve{LegacyReserved: 100, NativeReserved: 200}, reserve)

	legacyBal, err := env.legacy.Balance(env.ctx, env.state, alice)
	require.NoError(err)
	require.Zero(legacyBal)

	for _, step := range []struct {
		height   uint64
		claimed  uint64
		reserved uint64
		balance  uint64
	}{
		{height: 5, claimed: 100, reserved: 100, balance: 100},
		{height: 10, claimed: 100, reserved: 0, balance: 200},
		{height: 15, claimed: 0, reserved: 0, balance: 200},
	} {
		env.heights.height = step.height
		before := env.state.Clone()

		claimed, err := env.exec.Claim(env.ctx, env.state, alice)
		require.NoError(err)
		require.Equal(step.claimed, claimed.Amount, "height %d", step.height)
		if step.claimed == 0 {
			require.Equal(before, env.state)
		}

		reserve, err := env.exec.ReserveTotals(env.ctx, env.state)
		require.NoError(err)
		require.Equal(step.reserved, reserve.NativeReserved)

		bal, err := env.native.Balance(env.ctx, env.state, alice)
		require.NoError(err)
		require.Equal(step.balance, bal)

		_, err = vault.Audit(env.ctx, env.state)
		require.NoError(err)
	}

	locks, err = env.exec.LockEntries(env.ctx, env.state, alice)
	require.NoError(err)
	require.Equal(types.FullyClaimed, locks[0].Status())
}

func TestSwapRejections(t *testing.T) {
	tests := []struct {
		name     string
		num      uint64
		den      uint64
		setup    func(*testing.T, *testEnv)
		amount   uint64
		wantErr  error
		category Category
	}{
		{
			name:     "zero amount",
			num:      2,
			den:      1,
			amount:   0,
			wantErr:  ErrInvalidAmount,
			category: ValidationError,
		},
		{
			name: "paused",
			num:  2,
			den:  1,
			setup: func(t *testing.T, env *testEnv) {
				_, err := env.exec.Pause(env.ctx, env.state, admin)
				require.NoError(t, err)
			},
			amount:   10,
			wantErr:  ErrSwapPaused,
			category: StateError,
		},
		{
			name:     "insufficient balance",
			num:      2,
			den:      1,
			amount:   101,
			wantErr:  ErrInsufficientBalance,
			category: ResourceError,
		},
		{
			name:     "overflow",
			num:      math.MaxUint64,
			den:      1,
			amount:   100,
			wantErr:  ErrArithmeticOverflow,
			category: ArithmeticError,
		},
		{
			name:     "rounds to zero",
			num:      1,
			den:      3,
			amount:   2,
			wantErr:  ErrInvalidAmount,
			category: ValidationError,
		},
		{
			name: "rate not yet effective",
			num:  2,
			den:  1,
			setup: func(t *testing.T, env *testEnv) {
				fresh := newTestEnv(t, nil)
				_, err := fresh.exec.SetRate(fresh.ctx, fresh.state, admin, ratio.New(2, 1), 50)
				require.NoError(t, err)
				env.state = fresh.state
				env.exec = fresh.exec
				env.heights = fresh.heights
				env.legacy = fresh.legacy
				require.NoError(t, env.legacy.Mint(env.ctx, env.state, alice, 100))
			},
			amount:   10,
			wantErr:  ErrRateNotSet,
			category: StateError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)
			env := newTestEnv(t, nil)
			env.configure(t, tt.num, tt.den, types.VestingPolicy{Kind: types.Immediate}, map[codec.Address]uint64{alice: 100})
			if tt.setup != nil {
				tt.setup(t, env)
			}
			before := env.state.Clone()

			_, err := env.exec.Swap(env.ctx, env.state, alice, tt.amount)
			require.ErrorIs(err, tt.wantErr)
			require.Equal(tt.category, Classify(err))
			require.False(IsFatal(err))
			require.Equal(before, env.state)
		})
	}
}

func TestSwapWithoutPolicy(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, nil)
	_, err := env.exec.SetRate(env.ctx, env.state, admin, ratio.New(1, 1), 0)
	require.NoError(err)
	require.NoError(env.legacy.Mint(env.ctx, env.state, alice, 10))

	_, err = env.exec.Swap(env.ctx, env.state, alice, 10)
	require.ErrorIs(err, ErrPolicyNotSet)
	require.Equal(StateError, Classify(err))
}

func TestAdminCommandsRequireAuthorization(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, nil)
	env.configure(t, 2, 1, types.VestingPolicy{Kind: types.Immediate}, nil)
	before := env.state.Clone()

	_, err := env.exec.SetRate(env.ctx, env.state, alice, ratio.New(5, 1), 100)
	require.ErrorIs(err, ErrUnauthorized)
	_, err = env.exec.Pause(env.ctx, env.state, alice)
	require.ErrorIs(err, ErrUnauthorized)
	_, err = env.exec.Resume(env.ctx, env.state, alice)
	require.ErrorIs(err, ErrUnauthorized)
	_, err = env.exec.SetVestingPolicy(env.ctx, env.state, alice, types.VestingPolicy{Kind: types.Cliff, Cliff: 1})
	require.ErrorIs(err, ErrUnauthorized)
	require.Equal(AuthorizationError, Classify(err))

	require.Equal(before, env.state)
}

func TestPauseResume(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, nil)
	env.configure(t, 1, 1, types.VestingPolicy{Kind: types.Immediate}, map[codec.Address]uint64{alice: 10})

	paused, err := env.exec.Pause(env.ctx, env.state, admin)
	require.NoError(err)
	require.Equal(admin, paused.Actor)
	_, err = env.exec.Pause(env.ctx, env.state, admin)
	require.NoError(err)

	isPaused, err := env.exec.Paused(env.ctx, env.state)
	require.NoError(err)
	require.True(isPaused)

	_, err = env.exec.Swap(env.ctx, env.state, alice, 5)
	require.ErrorIs(err, ErrSwapPaused)

	_, err = env.exec.Resume(env.ctx, env.state, admin)
	require.NoError(err)
	_, err = env.exec.Swap(env.ctx, env.state, alice, 5)
	require.NoError(err)
}

func TestSetRateErrors(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, nil)
	env.configure(t, 2, 1, types.VestingPolicy{Kind: types.Immediate}, nil)

	_, err := env.exec.SetRate(env.ctx, env.state, admin, ratio.New(0, 1), 10)
	require.ErrorIs(err, ErrInvalidRatio)
	require.Equal(ValidationError, Classify(err))

	_, err = env.exec.SetRate(env.ctx, env.state, admin, ratio.New(3, 1), 0)
	require.ErrorIs(err, ErrRateWindowConflict)
	require.Equal(ValidationError, Classify(err))

	updated, err := env.exec.SetRate(env.ctx, env.state, admin, ratio.New(3, 1), 10)
	require.NoError(err)
	require.Equal(uint64(1), updated.Rate.Index)

	history, err := env.exec.RateHistory(env.ctx, env.state)
	require.NoError(err)
	require.Len(history, 2)

	_, err = env.exec.SetVestingPolicy(env.ctx, env.state, admin, types.VestingPolicy{Kind: types.Linear})
	require.ErrorIs(err, types.ErrInvalidPolicy)
	require.Equal(ValidationError, Classify(err))
}

func TestRateSnapshot(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, nil)
	env.configure(t, 2, 1, types.VestingPolicy{Kind: types.Linear, Duration: 10}, map[codec.Address]uint64{alice: 100})

	_, err := env.exec.Swap(env.ctx, env.state, alice, 50)
	require.NoError(err)

	_, err = env.exec.SetRate(env.ctx, env.state, admin, ratio.New(5, 1), 3)
	require.NoError(err)
	env.commit(t, 1)
	current, err := env.exec.CurrentRate(env.ctx, env.state)
	require.NoError(err)
	require.Equal(uint64(2), current.Numerator)

	// Once block 2 is committed the next block swaps at the new rate.
	env.commit(t, 2)
	current, err = env.exec.CurrentRate(env.ctx, env.state)
	require.NoError(err)
	require.Equal(uint64(5), current.Numerator)
	env.heights.height = 3

	swapped, err := env.exec.Swap(env.ctx, env.state, alice, 50)
	require.NoError(err)
	require.Equal(uint64(250), swapped.NativeAmount)
	require.Equal(uint64(1), swapped.RateIndex)

	locks, err := env.exec.LockEntries(env.ctx, env.state, alice)
	require.NoError(err)
	require.Len(locks, 2)
	require.Equal(uint64(100), locks[0].NativeAmount)
	require.Equal(uint64(2), locks[0].RateNum)
	require.Zero(locks[0].RateIndex)
	require.Equal(uint64(5), locks[1].RateNum)

	env.heights.height = 100
	claimed, err := env.exec.Claim(env.ctx, env.state, alice)
	require.NoError(err)
	require.Equal(uint64(350), claimed.Amount)
	require.Equal(uint32(2), claimed.Entries)
}

func TestPolicySnapshot(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, nil)
	env.configure(t, 1, 1, types.VestingPolicy{Kind: types.Linear, Duration: 10}, map[codec.Address]uint64{alice: 100})

	_, err := env.exec.Swap(env.ctx, env.state, alice, 10)
	require.NoError(err)

	updated, err := env.exec.SetVestingPolicy(env.ctx, env.state, admin, types.VestingPolicy{Kind: types.Immediate})
	require.NoError(err)
	require.Equal(uint64(1), updated.Policy.Index)

	active, err := env.exec.VestingPolicy(env.ctx, env.state)
	require.NoError(err)
	require.Equal(types.Immediate, active.Kind)

	_, err = env.exec.Swap(env.ctx, env.state, alice, 20)
	require.NoError(err)

	// The first entry still vests linearly. The second is fully vested.
	env.commit(t, 5)
	claimable, err := env.exec.Claimable(env.ctx, env.state, alice)
	require.NoError(err)
	require.Equal(uint64(5+20), claimable)

	claimed, err := env.exec.Claim(env.ctx, env.state, alice)
	require.NoError(err)
	require.Equal(claimable, claimed.Amount)

	claimable, err = env.exec.Claimable(env.ctx, env.state, alice)
	require.NoError(err)
	require.Zero(claimable)
}

func TestConservation(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, nil)
	env.configure(t, 7, 3, types.VestingPolicy{Kind: types.CliffLinear, Cliff: 2, Duration: 9}, map[codec.Address]uint64{
		alice: 1_000,
		bob:   777,
	})

	var totalNative uint64
	for h := uint64(0); h < 30; h++ {
		env.heights.height = h
		for _, account := range []codec.Address{alice, bob} {
			if h%3 == 0 && h < 20 {
				swapped, err := env.exec.Swap(env.ctx, env.state, account, 31+h)
				require.NoError(err)
				totalNative += swapped.NativeAmount
			}
			if h%4 == 1 {
				_, err := env.exec.Claim(env.ctx, env.state, account)
				require.NoError(err)
			}
		}
		report, err := vault.Audit(env.ctx, env.state)
		require.NoError(err)

		aliceBal, err := env.native.Balance(env.ctx, env.state, alice)
		require.NoError(err)
		bobBal, err := env.native.Balance(env.ctx, env.state, bob)
		require.NoError(err)
		require.Equal(totalNative, report.Reserve.NativeReserved+aliceBal+bobBal)
	}

	// Everything has vested by now.
	for _, account := range []codec.Address{alice, bob} {
		_, err := env.exec.Claim(env.ctx, env.state, account)
		require.NoError(err)
	}
	reserve, err := env.exec.ReserveTotals(env.ctx, env.state)
	require.NoError(err)
	require.Zero(reserve.NativeReserved)
}

func TestClaimRollback(t *testing.T) {
	require := require.New(t)
	native := &failingNative{Native: ledger.NewNative(), failAfter: 1}
	env := newTestEnv(t, native)
	env.configure(t, 1, 1, types.VestingPolicy{Kind: types.Immediate}, map[codec.Address]uint64{alice: 100})
	for i := 0; i < 2; i++ {
		_, err := env.exec.Swap(env.ctx, env.state, alice, 10)
		require.NoError(err)
	}

	ts := tstate.New(env.state, 16)
	view := ts.NewView()
	start := view.OpIndex()
	_, err := env.exec.Claim(env.ctx, view, alice)
	require.ErrorIs(err, errCreditFailed)
	require.Equal(InternalError, Classify(err))
	require.Positive(view.OpIndex() - start)

	view.Rollback(env.ctx, start)
	require.Zero(view.PendingChanges())

	claimable, err := env.exec.Claimable(env.ctx, view, alice)
	require.NoError(err)
	require.Equal(uint64(20), claimable)
	reserve, err := env.exec.ReserveTotals(env.ctx, view)
	require.NoError(err)
	require.Equal(uint64(20), reserve.NativeReserved)
}

func TestClaimReserveUnderflowIsFatal(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, nil)
	env.configure(t, 1, 1, types.VestingPolicy{Kind: types.Immediate}, map[codec.Address]uint64{alice: 100})
	_, err := env.exec.Swap(env.ctx, env.state, alice, 10)
	require.NoError(err)

	// Corrupt the reserve so that it no longer covers the lock entry.
	require.NoError(storage.SetReserve(env.ctx, env.state, &types.Reserve{LegacyReserved: 10, NativeReserved: 4}))

	_, err = env.exec.Claim(env.ctx, env.state, alice)
	require.ErrorIs(err, ErrReserveUnderflow)
	require.True(IsFatal(err))
	require.Equal(ResourceError, Classify(err))
}

func TestQueriesReadCommittedHeight(t *testing.T) {
	require := require.New(t)
	env := newTestEnv(t, nil)
	env.configure(t, 1, 1, types.VestingPolicy{Kind: types.Linear, Duration: 10}, map[codec.Address]uint64{alice: 100})
	_, err := env.exec.Swap(env.ctx, env.state, alice, 100)
	require.NoError(err)

	// A block at height 8 is executing but nothing after genesis is
	// committed yet.
	env.heights.height = 8
	claimable, err := env.exec.Claimable(env.ctx, env.state, alice)
	require.NoError(err)
	require.Zero(claimable)

	env.commit(t, 4)
	claimable, err = env.exec.Claimable(env.ctx, env.state, alice)
	require.NoError(err)
	require.Equal(uint64(40), claimable)

	_, err = env.exec.CurrentRate(env.ctx, state.Memory{})
	require.ErrorIs(err, ErrHeightUnknown)
	_, err = env.exec.Claimable(env.ctx, state.Memory{}, alice)
	require.ErrorIs(err, ErrHeightUnknown)
}
