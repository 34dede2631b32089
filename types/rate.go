// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/ratio"
)

const ExchangeRateSize = 4 * consts.Uint64Len

// ExchangeRate converts legacy units into native units from EffectiveFrom
// onwards. Entries are immutable once stored.
type ExchangeRate struct {
	Index         uint64 `json:"index"`
	Numerator     uint64 `json:"numerator"`
	Denominator   uint64 `json:"denominator"`
	EffectiveFrom uint64 `json:"effectiveFrom"`
}

func (r *ExchangeRate) Ratio() ratio.Ratio {
	return ratio.New(r.Numerator, r.Denominator)
}

func (r *ExchangeRate) Marshal(p *codec.Packer) {
	p.PackUint64(r.Index)
	p.PackUint64(r.Numerator)
	p.PackUint64(r.Denominator)
	p.PackUint64(r.EffectiveFrom)
}

func UnmarshalExchangeRate(p *codec.Packer) (*ExchangeRate, error) {
	var r ExchangeRate
	r.Index = p.UnpackUint64(false)
	r.Numerator = p.UnpackUint64(true)
	r.Denominator = p.UnpackUint64(true)
	r.EffectiveFrom = p.UnpackUint64(false)
	return &r, p.Err()
}
