// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, contents string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		contents string
		check    func(*require.Assertions, Config)
		err      error
	}{
		{
			name:     "json",
			file:     "config.json",
			contents: `{"logLevel":"debug","databaseBackend":"memdb","eventBacklog":16}`,
			check: func(r *require.Assertions, c Config) {
				level, err := c.GetLogLevel()
				r.NoError(err)
				r.Equal(logging.Debug, level)
				r.Equal(16, c.EventBacklog)
				r.Equal(DefaultRPCAddress, c.RPCAddress)
			},
		},
		{
			name:     "yaml",
			file:     "config.yaml",
			contents: "databaseBackend: badger\ndatabasePath: /tmp/x\nrpcAddress: 0.0.0.0:1\ntrace:\n  enabled: true\n",
			check: func(r *require.Assertions, c Config) {
				r.Equal(BackendBadger, c.DatabaseBackend)
				r.Equal("0.0.0.0:1", c.RPCAddress)
				r.True(c.GetTraceConfig().Enabled)
				r.Equal("tokenswap", c.Trace.AppName)
			},
		},
		{
			name:     "unknown backend",
			file:     "config.json",
			contents: `{"databaseBackend":"leveldb"}`,
			err:      ErrUnknownBackend,
		},
		{
			name:     "pebble requires path",
			file:     "config.json",
			contents: `{"databaseBackend":"pebble"}`,
			err:      ErrMissingDatabase,
		},
		{
			name:     "bad backlog",
			file:     "config.yml",
			contents: "databaseBackend: memdb\neventBacklog: 0\n",
			err:      ErrInvalidBacklog,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := require.New(t)
			c, err := Load(writeFile(t, tt.file, tt.contents))
			r.ErrorIs(err, tt.err)
			if tt.check != nil {
				tt.check(r, c)
			}
		})
	}
}

func TestLoadBadLevel(t *testing.T) {
	_, err := Load(writeFile(t, "c.json", `{"databaseBackend":"memdb","logLevel":"loud"}`))
	require.Error(t, err)
}

func TestProfilerConfig(t *testing.T) {
	r := require.New(t)
	c := Default()
	r.False(c.GetContinuousProfilerConfig().Enabled)

	c.ContinuousProfilerDir = "/tmp/profile-*"
	p := c.GetContinuousProfilerConfig()
	r.True(p.Enabled)
	r.NotContains(p.Dir, "*")
	r.Equal(c.ProfilerFrequency, p.Freq)
}

func TestOpenDatabase(t *testing.T) {
	for _, backend := range []string{BackendMemDB, BackendPebble, BackendBadger} {
		t.Run(backend, func(t *testing.T) {
			r := require.New(t)
			c := Default()
			c.DatabaseBackend = backend
			c.DatabasePath = t.TempDir()
			db, _, err := c.OpenDatabase()
			r.NoError(err)

			_, err = db.Get([]byte("missing"))
			r.ErrorIs(err, database.ErrNotFound)

			batch := db.NewBatch()
			r.NoError(batch.Put([]byte("k"), []byte("v")))
			r.NoError(batch.Write())
			v, err := db.Get([]byte("k"))
			r.NoError(err)
			r.Equal([]byte("v"), v)
			r.NoError(db.Close())
		})
	}
}
