// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package swap

import (
	"errors"

	"github.com/metaverse-network/tokenswap/exchange"
	"github.com/metaverse-network/tokenswap/guard"
	"github.com/metaverse-network/tokenswap/ratio"
	"github.com/metaverse-network/tokenswap/types"
	"github.com/metaverse-network/tokenswap/vault"
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrSwapPaused          = errors.New("swaps paused")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPolicyNotSet        = errors.New("vesting policy not set")
	ErrHeightUnknown       = errors.New("committed height unknown")

	ErrInvalidRatio       = exchange.ErrInvalidRatio
	ErrRateWindowConflict = exchange.ErrRateWindowConflict
	ErrRateNotSet         = exchange.ErrRateNotSet
	ErrReserveUnderflow   = vault.ErrReserveUnderflow
	ErrArithmeticOverflow = vault.ErrArithmeticOverflow
	ErrUnauthorized       = guard.ErrUnauthorized
)

// Category groups errors by how a caller should react to them.
type Category uint8

const (
	InternalError Category = iota
	AuthorizationError
	ValidationError
	StateError
	ResourceError
	ArithmeticError
)

func (c Category) String() string {
	switch c {
	case AuthorizationError:
		return "authorization"
	case ValidationError:
		return "validation"
	case StateError:
		return "state"
	case ResourceError:
		return "resource"
	case ArithmeticError:
		return "arithmetic"
	default:
		return "internal"
	}
}

var categories = []struct {
	category Category
	errs     []error
}{
	{AuthorizationError, []error{ErrUnauthorized}},
	{ValidationError, []error{ErrInvalidAmount, ErrInvalidRatio, ErrRateWindowConflict, types.ErrInvalidPolicy}},
	{StateError, []error{ErrRateNotSet, ErrSwapPaused, ErrPolicyNotSet}},
	{ResourceError, []error{ErrInsufficientBalance, ErrReserveUnderflow}},
	{ArithmeticError, []error{ErrArithmeticOverflow, ratio.ErrOverflow}},
}

// Classify returns the [Category] of [err]. Errors that are not produced by
// command validation are [InternalError].
func Classify(err error) Category {
	for _, c := range categories {
		for _, target := range c.errs {
			if errors.Is(err, target) {
				return c.category
			}
		}
	}
	return InternalError
}

// IsFatal returns true if [err] means the reserve no longer matches the lock
// entries. Execution must stop instead of reporting the error to the caller.
func IsFatal(err error) bool {
	return errors.Is(err, ErrReserveUnderflow)
}
