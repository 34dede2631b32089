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

// Transaction asks the executor to run [Action] for [Actor]. Transactions
// arrive already ordered and authenticated, so no signature is carried.
type Transaction struct {
	Actor codec.Address `json:"actor"`
	// Nonce distinguishes otherwise identical transactions.
	Nonce  uint64 `json:"nonce"`
	Action Action `json:"action"`

	bytes []byte
	id    ids.ID
}

func NewTx(actor codec.Address, nonce uint64, action Action) (*Transaction, error) {
	tx := &Transaction{Actor: actor, Nonce: nonce, Action: action}
	if err := tx.init(); err != nil {
		return nil, err
	}
	return tx, nil
}

func (t *Transaction) Size() int {
	return codec.AddressLen + consts.Uint64Len + consts.ByteLen + t.Action.Size()
}

func (t *Transaction) Marshal(p *codec.Packer) {
	p.PackAddress(t.Actor)
	p.PackUint64(t.Nonce)
	p.PackByte(t.Action.GetTypeID())
	t.Action.Marshal(p)
}

func (t *Transaction) init() error {
	if t.Action == nil {
		return ErrMissingAction
	}
	if t.Actor == codec.EmptyAddress {
		return ErrInvalidActor
	}
	size := t.Size()
	if size > consts.MaxTxSize {
		return fmt.Errorf("%w: %d > %d", codec.ErrInvalidSize, size, consts.MaxTxSize)
	}
	p := codec.NewWriter(size, consts.MaxTxSize)
	t.Marshal(p)
	if err := p.Err(); err != nil {
		return err
	}
	t.bytes = p.Bytes()
	t.id = hashing.ComputeHash256Array(t.bytes)
	return nil
}

func (t *Transaction) Bytes() []byte { return t.bytes }

func (t *Transaction) ID() ids.ID { return t.id }

func UnmarshalTx(p *codec.Packer, parser *ActionParser) (*Transaction, error) {
	start := p.Offset()
	var tx Transaction
	p.UnpackAddress(&tx.Actor)
	tx.Nonce = p.UnpackUint64(false)
	if err := p.Err(); err != nil {
		return nil, err
	}
	action, err := parser.Unmarshal(p)
	if err != nil {
		return nil, fmt.Errorf("%w: could not unmarshal action", err)
	}
	if err := p.Err(); err != nil {
		return nil, err
	}
	tx.Action = action
	tx.bytes = p.Bytes()[start:p.Offset()]
	tx.id = hashing.ComputeHash256Array(tx.bytes)
	return &tx, nil
}

// ParseTx decodes a single transaction from [b].
func ParseTx(b []byte, parser *ActionParser) (*Transaction, error) {
	p := codec.NewReader(b, consts.MaxTxSize)
	tx, err := UnmarshalTx(p, parser)
	if err != nil {
		return nil, err
	}
	if !p.Empty() {
		return nil, codec.ErrExtraBytes
	}
	return tx, nil
}
