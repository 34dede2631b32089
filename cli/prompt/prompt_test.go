// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package prompt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseUint64(t *testing.T) {
	tests := []struct {
		input     string
		allowZero bool
		want      uint64
		err       error
	}{
		{input: " 42 ", want: 42},
		{input: "", err: ErrInputEmpty},
		{input: "0", allowZero: true, want: 0},
		{input: "18446744073709551615", want: 18446744073709551615},
	}
	for _, tt := range tests {
		got, err := parseUint64(tt.input, tt.allowZero)
		require.ErrorIs(t, err, tt.err)
		require.Equal(t, tt.want, got)
	}

	_, err := parseUint64("0", false)
	require.Error(t, err)
	_, err = parseUint64("-1", true)
	require.Error(t, err)
}

func TestParseYesNo(t *testing.T) {
	require := require.New(t)
	v, err := parseYesNo("Y")
	require.NoError(err)
	require.True(v)
	v, err = parseYesNo("n")
	require.NoError(err)
	require.False(v)
	_, err = parseYesNo("maybe")
	require.ErrorIs(err, ErrInvalidChoice)
	_, err = parseYesNo("")
	require.ErrorIs(err, ErrInputEmpty)
}
