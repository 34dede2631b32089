// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package tstate

import "errors"

var (
	ErrInvalidKeyValue = errors.New("invalid key or value")
	ErrViewCommitted   = errors.New("view already committed")
)
