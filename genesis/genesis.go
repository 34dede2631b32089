// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/exchange"
	"github.com/metaverse-network/tokenswap/ledger"
	"github.com/metaverse-network/tokenswap/ratio"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/storage"
	"github.com/metaverse-network/tokenswap/tstate"
	"github.com/metaverse-network/tokenswap/types"

	safemath "github.com/ava-labs/avalanchego/utils/math"
	oteltrace "go.opentelemetry.io/otel/trace"
)

var (
	ErrNoAdmins         = errors.New("no admins")
	ErrMissingAsset     = errors.New("missing legacy asset")
	ErrAlreadyLoaded    = errors.New("genesis already loaded")
	ErrInvalidGenesis   = errors.New("invalid genesis")
	ErrSupplyOverflowed = errors.New("supply overflowed")
)

type CustomAllocation struct {
	Address string `json:"address"`
	Balance uint64 `json:"balance"`
}

type Genesis struct {
	// LegacyAsset identifies the legacy token that can be swapped.
	LegacyAsset ids.ID `json:"legacyAsset"`
	// Admins may change the rate, pause swaps and set the vesting policy.
	Admins []string `json:"admins"`

	// InitialRate is effective from height 0. It may be left empty so that
	// an admin sets the first rate later.
	InitialRate   *ratio.Ratio        `json:"initialRate,omitempty"`
	VestingPolicy types.VestingPolicy `json:"vestingPolicy"`

	LegacyAllocations []*CustomAllocation `json:"legacyAllocations"`
	NativeAllocations []*CustomAllocation `json:"nativeAllocations"`
}

func NewDefaultGenesis(asset ids.ID, admins []string, legacyAllocations []*CustomAllocation) *Genesis {
	rate := ratio.One
	return &Genesis{
		LegacyAsset:       asset,
		Admins:            admins,
		InitialRate:       &rate,
		VestingPolicy:     types.VestingPolicy{Kind: types.Linear, Duration: 100},
		LegacyAllocations: legacyAllocations,
	}
}

func Parse(b []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := json.Unmarshal(b, g); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGenesis, err)
	}
	return g, nil
}

// AdminAddresses parses [Admins].
func (g *Genesis) AdminAddresses() ([]codec.Address, error) {
	if len(g.Admins) == 0 {
		return nil, ErrNoAdmins
	}
	admins := make([]codec.Address, 0, len(g.Admins))
	for _, s := range g.Admins {
		addr, err := codec.ParseAddress(consts.HRP, s)
		if err != nil {
			return nil, fmt.Errorf("%w: admin %s", err, s)
		}
		admins = append(admins, addr)
	}
	return admins, nil
}

// Verify checks everything that can be checked without state.
func (g *Genesis) Verify() error {
	if g.LegacyAsset == ids.Empty {
		return ErrMissingAsset
	}
	if _, err := g.AdminAddresses(); err != nil {
		return err
	}
	if g.InitialRate != nil && !g.InitialRate.Positive() {
		return fmt.Errorf("%w: %s", exchange.ErrInvalidRatio, g.InitialRate)
	}
	if err := g.VestingPolicy.Validate(); err != nil {
		return err
	}
	for _, allocs := range [][]*CustomAllocation{g.LegacyAllocations, g.NativeAllocations} {
		if _, err := sumAllocations(allocs); err != nil {
			return err
		}
	}
	return nil
}

func sumAllocations(allocs []*CustomAllocation) (uint64, error) {
	supply := uint64(0)
	for _, alloc := range allocs {
		if _, err := codec.ParseAddress(consts.HRP, alloc.Address); err != nil {
			return 0, fmt.Errorf("%w: %s", err, alloc.Address)
		}
		var err error
		supply, err = safemath.Add(supply, alloc.Balance)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", ErrSupplyOverflowed, err)
		}
	}
	return supply, nil
}

// InitializeState writes the genesis rate, vesting policy and balances and
// marks height 0 as executed.
func (g *Genesis) InitializeState(ctx context.Context, tracer trace.Tracer, mu state.Mutable) error {
	ctx, span := tracer.Start(ctx, "Genesis.InitializeState",
		oteltrace.WithAttributes(
			attribute.Int("legacyAllocations", len(g.LegacyAllocations)),
			attribute.Int("nativeAllocations", len(g.NativeAllocations)),
		),
	)
	defer span.End()

	if err := g.Verify(); err != nil {
		return err
	}
	loaded, err := storage.HasGenesis(ctx, mu)
	if err != nil {
		return err
	}
	if loaded {
		return ErrAlreadyLoaded
	}

	if g.InitialRate != nil {
		if _, err := exchange.SetRate(ctx, mu, *g.InitialRate, 0); err != nil {
			return err
		}
	}
	policy := g.VestingPolicy
	if _, err := storage.AppendPolicy(ctx, mu, &policy); err != nil {
		return err
	}

	legacy := ledger.NewLegacy(g.LegacyAsset)
	for _, alloc := range g.LegacyAllocations {
		addr, err := codec.ParseAddress(consts.HRP, alloc.Address)
		if err != nil {
			return err
		}
		if err := legacy.Mint(ctx, mu, addr, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}
	native := ledger.NewNative()
	for _, alloc := range g.NativeAllocations {
		addr, err := codec.ParseAddress(consts.HRP, alloc.Address)
		if err != nil {
			return err
		}
		if err := native.Credit(ctx, mu, addr, alloc.Balance); err != nil {
			return fmt.Errorf("%w: addr=%s, bal=%d", err, alloc.Address, alloc.Balance)
		}
	}

	if err := storage.SetHeight(ctx, mu, 0); err != nil {
		return err
	}
	return storage.SetGenesis(ctx, mu)
}

// Load initializes [db] with the genesis state in a single batch.
func (g *Genesis) Load(ctx context.Context, tracer trace.Tracer, db state.Database) error {
	ts := tstate.New(state.NewReader(db), 2*(len(g.LegacyAllocations)+len(g.NativeAllocations))+8)
	tsv := ts.NewView()
	if err := g.InitializeState(ctx, tracer, tsv); err != nil {
		return err
	}
	tsv.Commit()
	batch := db.NewBatch()
	if err := ts.WriteChanges(batch); err != nil {
		return err
	}
	return batch.Write()
}
