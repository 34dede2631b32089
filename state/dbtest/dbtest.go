// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dbtest checks that a [state.Database] backend behaves the way the
// block processor expects.
package dbtest

import (
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/stretchr/testify/require"

	"github.com/metaverse-network/tokenswap/state"
)

// Tests maps a name to a test that runs against an empty database.
var Tests = map[string]func(t *testing.T, db state.Database){
	"BatchIsAtomic":     TestBatchIsAtomic,
	"DeleteMissing":     TestDeleteMissing,
	"ValuesAreCopied":   TestValuesAreCopied,
	"OverwriteInBatch":  TestOverwriteInBatch,
	"EmptyValueAllowed": TestEmptyValueAllowed,
}

// Run executes every test in [Tests] against databases created by [f].
func Run(t *testing.T, f func(t *testing.T) state.Database) {
	for name, test := range Tests {
		t.Run(name, func(t *testing.T) {
			db := f(t)
			test(t, db)
			require.NoError(t, db.Close())
		})
	}
}

func TestBatchIsAtomic(t *testing.T, db state.Database) {
	require := require.New(t)

	batch := db.NewBatch()
	require.NoError(batch.Put([]byte("a"), []byte{1}))
	require.NoError(batch.Put([]byte("b"), []byte{2}))

	_, err := db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)

	require.NoError(batch.Write())
	v, err := db.Get([]byte("b"))
	require.NoError(err)
	require.Equal([]byte{2}, v)

	batch = db.NewBatch()
	require.NoError(batch.Delete([]byte("a")))
	require.NoError(batch.Write())
	_, err = db.Get([]byte("a"))
	require.ErrorIs(err, database.ErrNotFound)
}

func TestDeleteMissing(t *testing.T, db state.Database) {
	require := require.New(t)

	batch := db.NewBatch()
	require.NoError(batch.Delete([]byte("missing")))
	require.NoError(batch.Write())
}

func TestValuesAreCopied(t *testing.T, db state.Database) {
	require := require.New(t)

	value := []byte{1, 2, 3}
	batch := db.NewBatch()
	require.NoError(batch.Put([]byte("k"), value))
	require.NoError(batch.Write())

	got, err := db.Get([]byte("k"))
	require.NoError(err)
	got[0] = 9

	again, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte{1, 2, 3}, again)
}

func TestOverwriteInBatch(t *testing.T, db state.Database) {
	require := require.New(t)

	batch := db.NewBatch()
	require.NoError(batch.Put([]byte("k"), []byte{1}))
	require.NoError(batch.Put([]byte("k"), []byte{2}))
	require.NoError(batch.Write())

	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte{2}, v)
}

func TestEmptyValueAllowed(t *testing.T, db state.Database) {
	require := require.New(t)

	batch := db.NewBatch()
	require.NoError(batch.Put([]byte("k"), []byte{}))
	require.NoError(batch.Write())

	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Empty(v)
}
