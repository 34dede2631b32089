// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"math"
	"testing"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/stretchr/testify/require"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/exchange"
	"github.com/metaverse-network/tokenswap/ledger"
	"github.com/metaverse-network/tokenswap/ratio"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
	"github.com/metaverse-network/tokenswap/trace"
	"github.com/metaverse-network/tokenswap/types"
)

func testAddress(b byte) (codec.Address, string) {
	addr := codec.CreateAddress(0, ids.ID{b})
	return addr, codec.MustAddressBech32(consts.HRP, addr)
}

func TestInitializeState(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	_, admin := testAddress(1)
	alice, aliceStr := testAddress(2)
	asset := ids.GenerateTestID()

	g := NewDefaultGenesis(asset, []string{admin}, []*CustomAllocation{{Address: aliceStr, Balance: 100}})
	g.NativeAllocations = []*CustomAllocation{{Address: aliceStr, Balance: 7}}

	// Round trip through JSON as the CLI does.
	b, err := json.Marshal(g)
	require.NoError(err)
	g, err = Parse(b)
	require.NoError(err)

	mu := state.Memory{}
	require.NoError(g.InitializeState(ctx, trace.Noop(), mu))

	height, ok, err := storage.GetHeight(ctx, mu)
	require.NoError(err)
	require.True(ok)
	require.Zero(height)

	rate, err := exchange.RateAt(ctx, mu, 0)
	require.NoError(err)
	require.Zero(ratio.One.Cmp(rate.Ratio()))

	policy, err := storage.GetActivePolicy(ctx, mu)
	require.NoError(err)
	require.Equal(types.Linear, policy.Kind)

	bal, err := ledger.NewLegacy(asset).Balance(ctx, mu, alice)
	require.NoError(err)
	require.Equal(uint64(100), bal)
	bal, err = ledger.NewNative().Balance(ctx, mu, alice)
	require.NoError(err)
	require.Equal(uint64(7), bal)

	require.ErrorIs(g.InitializeState(ctx, trace.Noop(), mu), ErrAlreadyLoaded)
}

func TestVerify(t *testing.T) {
	_, admin := testAddress(1)
	_, alice := testAddress(2)
	asset := ids.GenerateTestID()

	tests := []struct {
		name    string
		modify  func(*Genesis)
		wantErr error
	}{
		{
			name:   "valid",
			modify: func(*Genesis) {},
		},
		{
			name:    "no asset",
			modify:  func(g *Genesis) { g.LegacyAsset = ids.Empty },
			wantErr: ErrMissingAsset,
		},
		{
			name:    "no admins",
			modify:  func(g *Genesis) { g.Admins = nil },
			wantErr: ErrNoAdmins,
		},
		{
			name: "zero rate",
			modify: func(g *Genesis) {
				r := ratio.New(0, 1)
				g.InitialRate = &r
			},
			wantErr: exchange.ErrInvalidRatio,
		},
		{
			name:    "invalid policy",
			modify:  func(g *Genesis) { g.VestingPolicy = types.VestingPolicy{Kind: types.Cliff} },
			wantErr: types.ErrInvalidPolicy,
		},
		{
			name: "supply overflow",
			modify: func(g *Genesis) {
				g.LegacyAllocations = append(g.LegacyAllocations, &CustomAllocation{Address: alice, Balance: math.MaxUint64})
			},
			wantErr: ErrSupplyOverflowed,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewDefaultGenesis(asset, []string{admin}, []*CustomAllocation{{Address: alice, Balance: 1}})
			tt.modify(g)
			require.ErrorIs(t, g.Verify(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	_, admin := testAddress(1)
	alice, aliceStr := testAddress(2)
	asset := ids.GenerateTestID()
	g := NewDefaultGenesis(asset, []string{admin}, []*CustomAllocation{{Address: aliceStr, Balance: 42}})

	db := state.NewMemDB()
	require.NoError(g.Load(ctx, trace.Noop(), db))

	bal, err := ledger.NewLegacy(asset).Balance(ctx, state.NewReader(db), alice)
	require.NoError(err)
	require.Equal(uint64(42), bal)

	require.ErrorIs(g.Load(ctx, trace.Noop(), db), ErrAlreadyLoaded)
}
