// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package exchange

import "errors"

var (
	ErrInvalidRatio       = errors.New("invalid ratio")
	ErrRateWindowConflict = errors.New("rate window conflict")
	ErrRateNotSet         = errors.New("rate not set")
)
