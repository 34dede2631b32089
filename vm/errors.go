// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package vm

import "errors"

var (
	ErrNotReady      = errors.New("not ready")
	ErrGenesisNeeded = errors.New("genesis required")
	ErrClosed        = errors.New("closed")
)
