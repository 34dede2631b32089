// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/metaverse-network/tokenswap/config"
)

var rootCmd = &cobra.Command{
	Use:   "tokenswap-cli",
	Short: "Convert legacy tokens into vesting native tokens",
	Long:  `A CLI application for running a tokenswap node and submitting commands and queries to it.`,
	// Errors are printed by [Execute].
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format (text or json)")
	rootCmd.PersistentFlags().String("endpoint", "http://"+config.DefaultRPCAddress, "URI of the node")
}

func main() {
	Execute()
}
