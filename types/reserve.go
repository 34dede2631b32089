// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
)

const ReserveSize = 2 * consts.Uint64Len

// Reserve aggregates the legacy tokens received by swaps and the native
// tokens still owed to lock entries.
type Reserve struct {
	LegacyReserved uint64 `json:"legacyReserved"`
	NativeReserved uint64 `json:"nativeReserved"`
}

func (r *Reserve) Marshal(p *codec.Packer) {
	p.PackUint64(r.LegacyReserved)
	p.PackUint64(r.NativeReserved)
}

func UnmarshalReserve(p *codec.Packer) (*Reserve, error) {
	var r Reserve
	r.LegacyReserved = p.UnpackUint64(false)
	r.NativeReserved = p.UnpackUint64(false)
	return &r, p.Err()
}
