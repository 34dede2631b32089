// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"context"
	"encoding/binary"

	"github.com/metaverse-network/tokenswap/codec"
	"github.com/metaverse-network/tokenswap/consts"
	"github.com/metaverse-network/tokenswap/keys"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/types"
)

// Lock entries are stored once under a global index. Each owner keeps a
// dense list of the global indices it owns so that claims never iterate
// over the whole keyspace.

func LockKey(index uint64) []byte {
	return indexedKey(lockPrefix, index, LockChunks)
}

func LockCountKey() []byte {
	return singletonKey(lockCountPrefix, Uint64Chunks)
}

// [accountLockPrefix] + [owner] + [n]
func AccountLockKey(owner codec.Address, n uint64) []byte {
	k := make([]byte, 0, consts.ByteLen+codec.AddressLen+consts.Uint64Len+consts.Uint16Len)
	k = append(k, accountLockPrefix)
	k = append(k, owner[:]...)
	k = binary.BigEndian.AppendUint64(k, n)
	return keys.EncodeChunks(k, Uint64Chunks)
}

func AccountLockCountKey(owner codec.Address) []byte {
	return accountKey(accountLockCountPrefix, owner, Uint64Chunks)
}

func GetLockCount(ctx context.Context, im state.Immutable) (uint64, error) {
	count, _, err := getUint64(ctx, im, LockCountKey())
	return count, err
}

func GetAccountLockCount(ctx context.Context, im state.Immutable, owner codec.Address) (uint64, error) {
	count, _, err := getUint64(ctx, im, AccountLockCountKey(owner))
	return count, err
}

func GetLock(ctx context.Context, im state.Immutable, index uint64) (*types.LockEntry, error) {
	l, err := getEncoded(ctx, im, LockKey(index), types.LockEntrySize, types.UnmarshalLockEntry)
	if err != nil {
		return nil, err
	}
	l.Index = index
	return l, nil
}

// GetAccountLock returns the [n]th lock entry created for [owner].
func GetAccountLock(ctx context.Context, im state.Immutable, owner codec.Address, n uint64) (*types.LockEntry, error) {
	index, ok, err := getUint64(ctx, im, AccountLockKey(owner, n))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrMissingEntry
	}
	return GetLock(ctx, im, index)
}

// GetAccountLocks returns every lock entry ever created for [owner], in
// creation order.
func GetAccountLocks(ctx context.Context, im state.Immutable, owner codec.Address) ([]*types.LockEntry, error) {
	count, err := GetAccountLockCount(ctx, im, owner)
	if err != nil {
		return nil, err
	}
	locks := make([]*types.LockEntry, 0, count)
	for n := uint64(0); n < count; n++ {
		l, err := GetAccountLock(ctx, im, owner, n)
		if err != nil {
			return nil, err
		}
		locks = append(locks, l)
	}
	return locks, nil
}

// PutLock overwrites an existing lock entry.
func PutLock(ctx context.Context, mu state.Mutable, lock *types.LockEntry) error {
	return setEncoded(ctx, mu, LockKey(lock.Index), types.LockEntrySize, func(p *codec.Packer) {
		lock.Marshal(p)
	})
}

// AppendLock assigns the next global index to [lock], stores it and links
// it to its owner.
func AppendLock(ctx context.Context, mu state.Mutable, lock *types.LockEntry) (uint64, error) {
	count, err := GetLockCount(ctx, mu)
	if err != nil {
		return 0, err
	}
	ownerCount, err := GetAccountLockCount(ctx, mu, lock.Owner)
	if err != nil {
		return 0, err
	}
	lock.Index = count
	if err := PutLock(ctx, mu, lock); err != nil {
		return 0, err
	}
	if err := setUint64(ctx, mu, LockCountKey(), count+1); err != nil {
		return 0, err
	}
	if err := setUint64(ctx, mu, AccountLockKey(lock.Owner, ownerCount), count); err != nil {
		return 0, err
	}
	return count, setUint64(ctx, mu, AccountLockCountKey(lock.Owner), ownerCount+1)
}
