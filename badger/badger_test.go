// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package badger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/state/dbtest"
)

func TestDatabase(t *testing.T) {
	dbtest.Run(t, func(t *testing.T) state.Database {
		db, err := New("", Config{InMemory: true})
		require.NoError(t, err)
		return db
	})
}

func TestReopen(t *testing.T) {
	require := require.New(t)
	dir := t.TempDir()

	db, err := New(dir, NewDefaultConfig())
	require.NoError(err)
	batch := db.NewBatch()
	require.NoError(batch.Put([]byte("k"), []byte("v")))
	require.NoError(batch.Write())

	_, err = New(dir, NewDefaultConfig())
	require.ErrorIs(err, ErrLocked)
	require.NoError(db.Close())

	db, err = New(dir, NewDefaultConfig())
	require.NoError(err)
	v, err := db.Get([]byte("k"))
	require.NoError(err)
	require.Equal([]byte("v"), v)
	require.NoError(db.Close())
}
