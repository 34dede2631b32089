// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/types"
	"github.com/metaverse-network/tokenswap/vault"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Read swap state from the node",
}

type rateResponse struct {
	Rates []*types.ExchangeRate `json:"rates"`
}

func (r rateResponse) String() string {
	var sb strings.Builder
	for i, rate := range r.Rates {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "#%d {{cyan}}%d/%d{{/}} from height %d", rate.Index, rate.Numerator, rate.Denominator, rate.EffectiveFrom)
	}
	return sb.String()
}

type reserveResponse struct {
	types.Reserve
}

func (r reserveResponse) String() string {
	return fmt.Sprintf("legacy reserved: {{yellow}}%d{{/}} native reserved: {{yellow}}%d{{/}}", r.LegacyReserved, r.NativeReserved)
}

type locksResponse struct {
	Locks []*types.LockEntry `json:"locks"`
}

func (r locksResponse) String() string {
	if len(r.Locks) == 0 {
		return "no lock entries"
	}
	var sb strings.Builder
	for i, l := range r.Locks {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "#%d %s: %d legacy -> %d native at height %d, claimed %d (rate #%d, policy #%d)",
			l.Index, l.Status(), l.LegacyAmount, l.NativeAmount, l.CreatedAt, l.ClaimedAmount, l.RateIndex, l.PolicyIndex)
	}
	return sb.String()
}

type amountResponse struct {
	Amount uint64 `json:"amount"`
}

func (r amountResponse) String() string {
	return fmt.Sprintf("{{green}}%d{{/}}", r.Amount)
}

type pausedResponse struct {
	Paused bool `json:"paused"`
}

func (r pausedResponse) String() string {
	if r.Paused {
		return "{{red}}paused{{/}}"
	}
	return "{{green}}accepting swaps{{/}}"
}

type policyResponse struct {
	*types.VestingPolicy
}

func (r policyResponse) String() string {
	return fmt.Sprintf("#%d %s", r.Index, r.VestingPolicy)
}

type eventsResponse struct {
	Events []*chain.Notification `json:"events"`
}

func (r eventsResponse) String() string {
	if len(r.Events) == 0 {
		return "no events"
	}
	var sb strings.Builder
	for i, n := range r.Events {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "height %d %s: %T %+v", n.Height, n.TxID, n.Event, n.Event)
	}
	return sb.String()
}

type auditResponse struct {
	*vault.Report
}

func (r auditResponse) String() string {
	return fmt.Sprintf(
		"{{green}}conserved{{/}} legacy reserved %d native reserved %d, %d lock entries (%d open)",
		r.Reserve.LegacyReserved, r.Reserve.NativeReserved, r.Locks, r.OpenLocks,
	)
}

func accountArg(args []string) (codec.Address, error) {
	return codec.ParseAddress(consts.HRP, args[0])
}

var rateCmd = &cobra.Command{
	Use:   "rate",
	Short: "Show the rate applying to the next block",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		rate, err := cli.CurrentRate(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(cmd, rateResponse{Rates: []*types.ExchangeRate{rate}})
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show every stored rate",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		rates, err := cli.RateHistory(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(cmd, rateResponse{Rates: rates})
	},
}

var reserveCmd = &cobra.Command{
	Use:   "reserve",
	Short: "Show the reserve totals",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		reserve, err := cli.ReserveTotals(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(cmd, reserveResponse{Reserve: *reserve})
	},
}

var locksCmd = &cobra.Command{
	Use:   "locks [address]",
	Short: "List the lock entries of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := accountArg(args)
		if err != nil {
			return err
		}
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		locks, err := cli.LockEntries(cmd.Context(), addr)
		if err != nil {
			return err
		}
		return printValue(cmd, locksResponse{Locks: locks})
	},
}

var claimableCmd = &cobra.Command{
	Use:   "claimable [address]",
	Short: "Show how much an account could claim now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, err := accountArg(args)
		if err != nil {
			return err
		}
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		amount, err := cli.Claimable(cmd.Context(), addr)
		if err != nil {
			return err
		}
		return printValue(cmd, amountResponse{Amount: amount})
	},
}

var pausedCmd = &cobra.Command{
	Use:   "paused",
	Short: "Show whether swaps are paused",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		paused, err := cli.Paused(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(cmd, pausedResponse{Paused: paused})
	},
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Show the vesting policy applied to new swaps",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		policy, err := cli.VestingPolicy(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(cmd, policyResponse{VestingPolicy: policy})
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the most recent notifications",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		events, err := cli.RecentEvents(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(cmd, eventsResponse{Events: events})
	},
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Check that the reserve matches the outstanding lock entries",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cli, err := newClient(cmd)
		if err != nil {
			return err
		}
		report, err := cli.Audit(cmd.Context())
		if err != nil {
			return err
		}
		return printValue(cmd, auditResponse{Report: report})
	},
}

func init() {
	queryCmd.AddCommand(rateCmd, historyCmd, reserveCmd, locksCmd, claimableCmd, pausedCmd, policyCmd, eventsCmd)
	rootCmd.AddCommand(queryCmd, auditCmd)
}
