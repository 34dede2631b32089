// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"

	"github.com/metaverse-network/tokenswap/genesis"
	"github.com/metaverse-network/tokenswap/ratio"
	"github.com/metaverse-network/tokenswap/types"
	"github.com/metaverse-network/tokenswap/utils"
)

var genesisCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Manage the genesis file",
}

var generateGenesisCmd = &cobra.Command{
	Use:   "generate [output]",
	Short: "Write a genesis file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		rawAsset, _ := flags.GetString("legacy-asset")
		admins, _ := flags.GetStringSlice("admin")
		legacyAllocs, _ := flags.GetStringSlice("legacy-alloc")
		nativeAllocs, _ := flags.GetStringSlice("native-alloc")
		numerator, _ := flags.GetUint64("rate-numerator")
		denominator, _ := flags.GetUint64("rate-denominator")
		rawKind, _ := flags.GetString("vesting-kind")
		cliff, _ := flags.GetUint64("vesting-cliff")
		duration, _ := flags.GetUint64("vesting-duration")

		asset, err := ids.FromString(rawAsset)
		if err != nil {
			return fmt.Errorf("invalid legacy asset: %w", err)
		}
		legacy, err := parseAllocations(legacyAllocs)
		if err != nil {
			return err
		}
		native, err := parseAllocations(nativeAllocs)
		if err != nil {
			return err
		}
		kind, err := types.ParsePolicyKind(rawKind)
		if err != nil {
			return err
		}

		g := genesis.NewDefaultGenesis(asset, admins, legacy)
		g.NativeAllocations = native
		g.VestingPolicy = types.VestingPolicy{Kind: kind, Cliff: cliff, Duration: duration}
		if numerator == 0 && denominator == 0 {
			g.InitialRate = nil
		} else {
			rate := ratio.New(numerator, denominator)
			g.InitialRate = &rate
		}
		if err := g.Verify(); err != nil {
			return err
		}
		if err := utils.SaveJSON(args[0], g); err != nil {
			return err
		}
		utils.Outf("{{green}}created genesis:{{/}} %s\n", args[0])
		return nil
	},
}

// parseAllocations parses "address:balance" pairs.
func parseAllocations(raw []string) ([]*genesis.CustomAllocation, error) {
	allocs := make([]*genesis.CustomAllocation, 0, len(raw))
	for _, r := range raw {
		addr, rawBalance, ok := strings.Cut(r, ":")
		if !ok {
			return nil, fmt.Errorf("allocation %q must be address:balance", r)
		}
		balance, err := strconv.ParseUint(rawBalance, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("allocation %q: %w", r, err)
		}
		allocs = append(allocs, &genesis.CustomAllocation{Address: addr, Balance: balance})
	}
	return allocs, nil
}

func init() {
	flags := generateGenesisCmd.Flags()
	flags.String("legacy-asset", "", "ID of the legacy asset")
	flags.StringSlice("admin", nil, "admin address (repeatable)")
	flags.StringSlice("legacy-alloc", nil, "legacy allocation as address:balance (repeatable)")
	flags.StringSlice("native-alloc", nil, "native allocation as address:balance (repeatable)")
	flags.Uint64("rate-numerator", 1, "native units per rate-denominator legacy units (0/0 leaves the rate unset)")
	flags.Uint64("rate-denominator", 1, "legacy units that convert to rate-numerator native units")
	flags.String("vesting-kind", types.Linear.String(), "immediate, cliff, linear or cliff-linear")
	flags.Uint64("vesting-cliff", 0, "blocks before anything vests")
	flags.Uint64("vesting-duration", 100, "blocks over which linear vesting completes")
	_ = generateGenesisCmd.MarkFlagRequired("legacy-asset")
	_ = generateGenesisCmd.MarkFlagRequired("admin")

	genesisCmd.AddCommand(generateGenesisCmd)
	rootCmd.AddCommand(genesisCmd)
}
