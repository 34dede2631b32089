// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ratio implements exact fixed-point ratios over uint64 amounts.
// Products are computed with 256-bit intermediates so that
// floor(x * n / d) only fails when the final result does not fit in 64 bits.
package ratio

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

var (
	ErrOverflow        = errors.New("overflow")
	ErrZeroDenominator = errors.New("zero denominator")
)

// Ratio is the fraction Numerator/Denominator.
type Ratio struct {
	Numerator   uint64 `json:"numerator"   yaml:"numerator"`
	Denominator uint64 `json:"denominator" yaml:"denominator"`
}

var (
	Zero = Ratio{Numerator: 0, Denominator: 1}
	One  = Ratio{Numerator: 1, Denominator: 1}
)

func New(numerator, denominator uint64) Ratio {
	return Ratio{Numerator: numerator, Denominator: denominator}
}

// Positive returns true if both terms are strictly positive.
func (r Ratio) Positive() bool {
	return r.Numerator > 0 && r.Denominator > 0
}

// Apply returns floor(x * r).
func (r Ratio) Apply(x uint64) (uint64, error) {
	return MulDiv(x, r.Numerator, r.Denominator)
}

// Cmp returns -1, 0 or 1 depending on whether r is less than, equal to or
// greater than o.
func (r Ratio) Cmp(o Ratio) int {
	lhs := new(uint256.Int).Mul(uint256.NewInt(r.Numerator), uint256.NewInt(o.Denominator))
	rhs := new(uint256.Int).Mul(uint256.NewInt(o.Numerator), uint256.NewInt(r.Denominator))
	return lhs.Cmp(rhs)
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Numerator, r.Denominator)
}

// MulDiv returns floor(x * n / d).
func MulDiv(x, n, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrZeroDenominator
	}
	product := new(uint256.Int).Mul(uint256.NewInt(x), uint256.NewInt(n))
	product.Div(product, uint256.NewInt(d))
	if !product.IsUint64() {
		return 0, fmt.Errorf("%w: %d * %d / %d", ErrOverflow, x, n, d)
	}
	return product.Uint64(), nil
}
