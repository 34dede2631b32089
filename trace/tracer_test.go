// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTracer(t *testing.T) {
	require := require.New(t)

	disabled, err := New(&Config{AppName: "tokenswap"})
	require.NoError(err)
	_, span := disabled.Start(context.Background(), "Test.Disabled")
	require.False(span.IsRecording())
	span.End()
	require.NoError(disabled.Close())

	enabled, err := New(&Config{
		Enabled:         true,
		TraceSampleRate: 1,
		AppName:         "tokenswap",
		Agent:           "test",
	})
	require.NoError(err)
	_, span = enabled.Start(context.Background(), "Test.Enabled")
	require.True(span.IsRecording())
	span.End()
	// No collector is running, so export errors are expected on close.
	_ = enabled.Close()
}
