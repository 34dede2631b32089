// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomicBoolReady(t *testing.T) {
	r := require.New(t)

	var ready Ready = NewAtomicBoolReady(false)
	r.False(ready.Ready())

	a := ready.(*AtomicBoolReady)
	a.MarkReady()
	r.True(a.Ready())
	a.MarkNotReady()
	r.False(a.Ready())
}
