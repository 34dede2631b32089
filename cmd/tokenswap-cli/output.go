// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/metaverse-network/tokenswap/rpc"
	"github.com/metaverse-network/tokenswap/utils"
)

func isJSONOutputRequested(cmd *cobra.Command) (bool, error) {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return false, fmt.Errorf("failed to get output format: %w", err)
	}
	return strings.ToLower(output) == "json", nil
}

// printValue writes [v] as JSON if requested and as [v.String] otherwise.
func printValue(cmd *cobra.Command, v fmt.Stringer) error {
	isJSON, err := isJSONOutputRequested(cmd)
	if err != nil {
		return err
	}
	if isJSON {
		jsonBytes, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(jsonBytes))
		return nil
	}
	utils.Outf("%s\n", v.String())
	return nil
}

func newClient(cmd *cobra.Command) (*rpc.JSONRPCClient, error) {
	endpoint, err := cmd.Flags().GetString("endpoint")
	if err != nil {
		return nil, fmt.Errorf("failed to get endpoint: %w", err)
	}
	return rpc.NewJSONRPCClient(endpoint), nil
}
