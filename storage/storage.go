// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/database"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/keys"
	"github.com/metaverse-network/tokenswap/state"
)

// State
// 0x0/ (height)                       => last executed block height
// 0x1/ (genesis)                      => genesis loaded marker
// 0x2/ (paused)                       => swaps paused flag
//
// 0x3/ (rates)          -> [index]     => ExchangeRate
// 0x4/ (rate count)                   => number of rates
// 0x5/ (policies)       -> [index]     => VestingPolicy
// 0x6/ (policy count)                 => number of policies
//
// 0x7/ (locks)          -> [index]     => LockEntry
// 0x8/ (lock count)                   => number of locks
// 0x9/ (account locks)  -> [owner][n]  => lock index
// 0xa/ (account counts) -> [owner]     => number of account locks
//
// 0xb/ (reserve)                      => Reserve
//
// 0xc/ (legacy balance) -> [asset][owner] => balance
// 0xd/ (native balance) -> [owner]        => balance

func singletonKey(prefix byte, chunks uint16) []byte {
	return keys.EncodeChunks([]byte{prefix}, chunks)
}

func indexedKey(prefix byte, index uint64, chunks uint16) []byte {
	k := make([]byte, 0, consts.ByteLen+consts.Uint64Len+consts.Uint16Len)
	k = append(k, prefix)
	k = binary.BigEndian.AppendUint64(k, index)
	return keys.EncodeChunks(k, chunks)
}

func accountKey(prefix byte, addr codec.Address, chunks uint16) []byte {
	k := make([]byte, 0, consts.ByteLen+codec.AddressLen+consts.Uint16Len)
	k = append(k, prefix)
	k = append(k, addr[:]...)
	return keys.EncodeChunks(k, chunks)
}

func getUint64(ctx context.Context, im state.Immutable, key []byte) (uint64, bool, error) {
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	val, err := database.ParseUInt64(v)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %w", ErrCorruptValue, err)
	}
	return val, true, nil
}

func setUint64(ctx context.Context, mu state.Mutable, key []byte, v uint64) error {
	return mu.Insert(ctx, key, binary.BigEndian.AppendUint64(nil, v))
}

// getEncoded loads [key] and decodes it with [f]. Missing keys return
// [ErrMissingEntry].
func getEncoded[T any](
	ctx context.Context,
	im state.Immutable,
	key []byte,
	limit int,
	f func(*codec.Packer) (T, error),
) (T, error) {
	var empty T
	v, err := im.GetValue(ctx, key)
	if errors.Is(err, database.ErrNotFound) {
		return empty, ErrMissingEntry
	}
	if err != nil {
		return empty, err
	}
	p := codec.NewReader(v, limit)
	out, err := f(p)
	if err != nil {
		return empty, fmt.Errorf("%w: %w", ErrCorruptValue, err)
	}
	if !p.Empty() {
		return empty, fmt.Errorf("%w: %w", ErrCorruptValue, codec.ErrExtraBytes)
	}
	return out, nil
}

func setEncoded(ctx context.Context, mu state.Mutable, key []byte, size int, f func(*codec.Packer)) error {
	p := codec.NewWriter(size, size)
	f(p)
	if err := p.Err(); err != nil {
		return err
	}
	return mu.Insert(ctx, key, p.Bytes())
}

func HeightKey() []byte {
	return singletonKey(heightPrefix, Uint64Chunks)
}

// GetHeight returns the height of the last executed block. ok is false if
// no block has been executed.
func GetHeight(ctx context.Context, im state.Immutable) (uint64, bool, error) {
	return getUint64(ctx, im, HeightKey())
}

func SetHeight(ctx context.Context, mu state.Mutable, height uint64) error {
	return setUint64(ctx, mu, HeightKey(), height)
}

func GenesisKey() []byte {
	return singletonKey(genesisPrefix, BoolChunks)
}

func HasGenesis(ctx context.Context, im state.Immutable) (bool, error) {
	_, err := im.GetValue(ctx, GenesisKey())
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func SetGenesis(ctx context.Context, mu state.Mutable) error {
	return mu.Insert(ctx, GenesisKey(), []byte{1})
}

func PausedKey() []byte {
	return singletonKey(pausedPrefix, BoolChunks)
}

func IsPaused(ctx context.Context, im state.Immutable) (bool, error) {
	v, err := im.GetValue(ctx, PausedKey())
	if errors.Is(err, database.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return len(v) == 1 && v[0] == 1, nil
}

// SetPaused removes the key when unpausing so the default state is
// "running".
func SetPaused(ctx context.Context, mu state.Mutable, paused bool) error {
	if !paused {
		return mu.Remove(ctx, PausedKey())
	}
	return mu.Insert(ctx, PausedKey(), []byte{1})
}
