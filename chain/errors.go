// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrInvalidHeight  = errors.New("invalid block height")
	ErrTooManyTxs     = errors.New("too many transactions")
	ErrInvalidActor   = errors.New("invalid actor")
	ErrMissingAction  = errors.New("missing action")
	ErrFatalExecution = errors.New("fatal execution error")
	ErrGenesisMissing = errors.New("genesis not loaded")
)
