// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/metaverse-network/tokenswap/types"
)

func TestParseAllocations(t *testing.T) {
	tests := []struct {
		name    string
		raw     []string
		want    uint64
		wantErr bool
	}{
		{name: "valid", raw: []string{"addr:100"}, want: 100},
		{name: "missing separator", raw: []string{"addr100"}, wantErr: true},
		{name: "bad balance", raw: []string{"addr:x"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)
			allocs, err := parseAllocations(tt.raw)
			if tt.wantErr {
				r.Error(err)
				return
			}
			r.NoError(err)
			r.Len(allocs, 1)
			r.Equal("addr", allocs[0].Address)
			r.Equal(tt.want, allocs[0].Balance)
		})
	}
}

func TestOutputFlag(t *testing.T) {
	r := require.New(t)

	cmd := &cobra.Command{}
	cmd.Flags().String("output", "text", "")
	r.NoError(cmd.Flags().Set("output", "JSON"))
	isJSON, err := isJSONOutputRequested(cmd)
	r.NoError(err)
	r.True(isJSON)

	r.NoError(cmd.Flags().Set("output", "text"))
	isJSON, err = isJSONOutputRequested(cmd)
	r.NoError(err)
	r.False(isJSON)
}

func TestLocksResponseString(t *testing.T) {
	r := require.New(t)
	r.Equal("no lock entries", locksResponse{}.String())

	s := locksResponse{Locks: []*types.LockEntry{{
		Index:         0,
		LegacyAmount:  100,
		NativeAmount:  200,
		CreatedAt:     1,
		ClaimedAmount: 100,
	}}}.String()
	r.Contains(s, "100 legacy -> 200 native at height 1, claimed 100")
}
