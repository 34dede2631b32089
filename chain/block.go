// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
)

// Block is an ordered batch of transactions executed at [Height].
type Block struct {
	Height    uint64         `json:"height"`
	Timestamp int64          `json:"timestamp"`
	Txs       []*Transaction `json:"txs"`
}

func NewBlock(height uint64, timestamp int64, txs []*Transaction) (*Block, error) {
	if len(txs) > MaxBlockTxs {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyTxs, len(txs), MaxBlockTxs)
	}
	return &Block{Height: height, Timestamp: timestamp, Txs: txs}, nil
}

func (b *Block) Marshal() ([]byte, error) {
	size := 2*consts.Uint64Len + consts.IntLen
	for _, tx := range b.Txs {
		size += codec.BytesLen(tx.Bytes())
	}
	p := codec.NewWriter(size, MaxBlockSize)
	p.PackUint64(b.Height)
	p.PackUint64(uint64(b.Timestamp))
	p.PackInt(uint32(len(b.Txs)))
	for _, tx := range b.Txs {
		p.PackBytes(tx.Bytes())
	}
	return p.Bytes(), p.Err()
}

func (b *Block) ID() (ids.ID, error) {
	bytes, err := b.Marshal()
	if err != nil {
		return ids.Empty, err
	}
	return hashing.ComputeHash256Array(bytes), nil
}

func UnmarshalBlock(raw []byte, parser *ActionParser) (*Block, error) {
	p := codec.NewReader(raw, MaxBlockSize)
	var b Block
	b.Height = p.UnpackUint64(false)
	b.Timestamp = int64(p.UnpackUint64(false))
	count := p.UnpackInt(false)
	if err := p.Err(); err != nil {
		return nil, err
	}
	if count > MaxBlockTxs {
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyTxs, count, MaxBlockTxs)
	}
	b.Txs = make([]*Transaction, 0, count)
	for i := uint32(0); i < count; i++ {
		var txBytes []byte
		p.UnpackBytes(consts.MaxTxSize, true, &txBytes)
		if err := p.Err(); err != nil {
			return nil, err
		}
		tx, err := ParseTx(txBytes, parser)
		if err != nil {
			return nil, fmt.Errorf("tx %d: %w", i, err)
		}
		b.Txs = append(b.Txs, tx)
	}
	if !p.Empty() {
		return nil, codec.ErrExtraBytes
	}
	return &b, nil
}
