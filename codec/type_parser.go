// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

// Typed is implemented by every object that is serialized with a leading
// type byte.
type Typed interface {
	GetTypeID() uint8
}

// TypeParser maps type IDs to the functions that decode them.
type TypeParser[T Typed] struct {
	indexToDecoder map[uint8]func(*Packer) (T, error)
}

func NewTypeParser[T Typed]() *TypeParser[T] {
	return &TypeParser[T]{
		indexToDecoder: map[uint8]func(*Packer) (T, error){},
	}
}

// Register adds [f] as the decoder of objects with the type ID of [o].
func (p *TypeParser[T]) Register(o T, f func(*Packer) (T, error)) error {
	id := o.GetTypeID()
	if _, ok := p.indexToDecoder[id]; ok {
		return ErrDuplicateItem
	}
	p.indexToDecoder[id] = f
	return nil
}

func (p *TypeParser[T]) LookupIndex(index uint8) (func(*Packer) (T, error), bool) {
	f, ok := p.indexToDecoder[index]
	return f, ok
}

// Unmarshal reads a type byte from [p] and decodes the object that follows.
func (p *TypeParser[T]) Unmarshal(packer *Packer) (T, error) {
	var empty T
	typeID := packer.UnpackByte()
	if err := packer.Err(); err != nil {
		return empty, err
	}
	f, ok := p.LookupIndex(typeID)
	if !ok {
		return empty, ErrUnknownType
	}
	return f(packer)
}
