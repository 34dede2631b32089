// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/spf13/cobra"

	"github.com/metaverse-network/tokenswap/actions"
	"github.com/metaverse-network/tokenswap/chain"
	"github.com/metaverse-network/tokenswap/cli/prompt"
	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/rpc"
	"github.com/metaverse-network/tokenswap/swap"
	"github.com/metaverse-network/tokenswap/types"
)

var errAborted = errors.New("aborted")

var execCmd = &cobra.Command{
	Use:   "exec",
	Short: "Submit a command to the node",
}

type txResponse struct {
	TxID     ids.ID     `json:"txId"`
	Height   uint64     `json:"height"`
	Success  bool       `json:"success"`
	Error    string     `json:"error,omitempty"`
	Category string     `json:"category,omitempty"`
	Event    swap.Event `json:"event,omitempty"`
}

func (r txResponse) String() string {
	if !r.Success {
		return fmt.Sprintf("{{red}}rejected{{/}} %s at height %d: %s (%s)", r.TxID, r.Height, r.Error, r.Category)
	}
	if r.Event == nil {
		return fmt.Sprintf("{{green}}committed{{/}} %s at height %d", r.TxID, r.Height)
	}
	return fmt.Sprintf("{{green}}committed{{/}} %s at height %d: %T %+v", r.TxID, r.Height, r.Event, r.Event)
}

func actor(cmd *cobra.Command) (codec.Address, error) {
	raw, err := cmd.Flags().GetString("actor")
	if err != nil {
		return codec.EmptyAddress, err
	}
	if len(raw) == 0 {
		return prompt.Address("actor")
	}
	return codec.ParseAddress(consts.HRP, raw)
}

// uint64Flag prompts for [name] if it was not set.
func uint64Flag(cmd *cobra.Command, name string, allowZero bool) (uint64, error) {
	if cmd.Flags().Changed(name) {
		return cmd.Flags().GetUint64(name)
	}
	return prompt.Uint64(name, allowZero)
}

func submit(cmd *cobra.Command, action chain.Action) error {
	addr, err := actor(cmd)
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		if err := printValue(cmd, actionSummary{Actor: addr, Action: action}); err != nil {
			return err
		}
		cont, err := prompt.Continue()
		if err != nil {
			return err
		}
		if !cont {
			return errAborted
		}
	}

	tx, err := chain.NewTx(addr, uint64(time.Now().UnixNano()), action)
	if err != nil {
		return err
	}
	cli, err := newClient(cmd)
	if err != nil {
		return err
	}
	reply, err := cli.SubmitTx(cmd.Context(), tx)
	if err != nil && !errors.Is(err, rpc.ErrTxRejected) {
		return err
	}
	resp := txResponse{
		TxID:     reply.TxID,
		Height:   reply.Height,
		Success:  reply.Success,
		Error:    reply.Error,
		Category: reply.Category,
	}
	if len(reply.Output) > 0 {
		parser, err := swap.NewEventParser()
		if err != nil {
			return err
		}
		resp.Event, err = swap.ParseEvent(parser, reply.Output)
		if err != nil {
			return err
		}
	}
	if err := printValue(cmd, resp); err != nil {
		return err
	}
	if !resp.Success {
		return rpc.ErrTxRejected
	}
	return nil
}

type actionSummary struct {
	Actor  codec.Address `json:"actor"`
	Action chain.Action  `json:"action"`
}

func (s actionSummary) String() string {
	return fmt.Sprintf("{{yellow}}%s{{/}} submits %T %+v", codec.MustAddressBech32(consts.HRP, s.Actor), s.Action, s.Action)
}

var setRateCmd = &cobra.Command{
	Use:   "set-rate",
	Short: "Append an exchange rate",
	RunE: func(cmd *cobra.Command, _ []string) error {
		numerator, err := uint64Flag(cmd, "numerator", false)
		if err != nil {
			return err
		}
		denominator, err := uint64Flag(cmd, "denominator", false)
		if err != nil {
			return err
		}
		effectiveFrom, err := uint64Flag(cmd, "effective-from", true)
		if err != nil {
			return err
		}
		return submit(cmd, &actions.SetRate{
			Numerator:     numerator,
			Denominator:   denominator,
			EffectiveFrom: effectiveFrom,
		})
	},
}

var pauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Stop accepting swaps",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return submit(cmd, &actions.Pause{})
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Accept swaps again",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return submit(cmd, &actions.Resume{})
	},
}

var setPolicyCmd = &cobra.Command{
	Use:   "set-policy",
	Short: "Set the vesting policy of future swaps",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var (
			kind types.PolicyKind
			err  error
		)
		if cmd.Flags().Changed("kind") {
			raw, _ := cmd.Flags().GetString("kind")
			kind, err = types.ParsePolicyKind(raw)
		} else {
			kind, err = prompt.PolicyKind("kind")
		}
		if err != nil {
			return err
		}
		cliff, _ := cmd.Flags().GetUint64("cliff")
		duration, _ := cmd.Flags().GetUint64("duration")
		return submit(cmd, &actions.SetVestingPolicy{
			Kind:     kind,
			Cliff:    cliff,
			Duration: duration,
		})
	},
}

var swapCmd = &cobra.Command{
	Use:   "swap",
	Short: "Convert legacy tokens into locked native tokens",
	RunE: func(cmd *cobra.Command, _ []string) error {
		amount, err := uint64Flag(cmd, "amount", false)
		if err != nil {
			return err
		}
		return submit(cmd, &actions.Swap{LegacyAmount: amount})
	},
}

var claimCmd = &cobra.Command{
	Use:   "claim",
	Short: "Release everything that has vested",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return submit(cmd, &actions.Claim{})
	},
}

func init() {
	execCmd.PersistentFlags().String("actor", "", "address submitting the command")
	execCmd.PersistentFlags().BoolP("yes", "y", false, "do not ask for confirmation")

	setRateCmd.Flags().Uint64("numerator", 0, "native units per denominator legacy units")
	setRateCmd.Flags().Uint64("denominator", 0, "legacy units per numerator native units")
	setRateCmd.Flags().Uint64("effective-from", 0, "first height the rate applies to")
	setPolicyCmd.Flags().String("kind", "", "immediate, cliff, linear or cliff-linear")
	setPolicyCmd.Flags().Uint64("cliff", 0, "blocks before anything vests")
	setPolicyCmd.Flags().Uint64("duration", 0, "blocks over which linear vesting completes")
	swapCmd.Flags().Uint64("amount", 0, "legacy amount to convert")

	execCmd.AddCommand(setRateCmd, pauseCmd, resumeCmd, setPolicyCmd, swapCmd, claimCmd)
	rootCmd.AddCommand(execCmd)
}
