// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/profiler"
	"github.com/prometheus/client_golang/prometheus"
	"gopkg.in/yaml.v2"

	"github.com/metaverse-network/tokenswap/badger"
	"github.com/metaverse-network/tokenswap/pebble"
	"github.com/metaverse-network/tokenswap/server"
	"github.com/metaverse-network/tokenswap/state"
	"github.com/metaverse-network/tokenswap/trace"
)

const (
	BackendPebble = "pebble"
	BackendBadger = "badger"
	BackendMemDB  = "memdb"

	DefaultRPCAddress = "127.0.0.1:9650"
)

var (
	ErrUnknownBackend  = errors.New("unknown database backend")
	ErrMissingDatabase = errors.New("database path required")
	ErrInvalidBacklog  = errors.New("event backlog must be positive")
)

type Config struct {
	LogLevel        string `json:"logLevel"        yaml:"logLevel"`
	LogDisplayLevel string `json:"logDisplayLevel" yaml:"logDisplayLevel"`
	LogDir          string `json:"logDir"          yaml:"logDir"`

	DatabaseBackend string        `json:"databaseBackend" yaml:"databaseBackend"`
	DatabasePath    string        `json:"databasePath"    yaml:"databasePath"`
	Pebble          pebble.Config `json:"pebble"          yaml:"pebble"`
	Badger          badger.Config `json:"badger"          yaml:"badger"`

	RPCAddress         string            `json:"rpcAddress"         yaml:"rpcAddress"`
	HTTP               server.HTTPConfig `json:"http"               yaml:"http"`
	CORSAllowedOrigins []string          `json:"corsAllowedOrigins" yaml:"corsAllowedOrigins"`
	AllowedHosts       []string          `json:"allowedHosts"       yaml:"allowedHosts"`
	MetricsEnabled     bool              `json:"metricsEnabled"     yaml:"metricsEnabled"`
	// How many notifications the RPC server keeps for RecentEvents.
	EventBacklog int `json:"eventBacklog" yaml:"eventBacklog"`

	Trace                 trace.Config  `json:"trace"                 yaml:"trace"`
	ContinuousProfilerDir string        `json:"continuousProfilerDir" yaml:"continuousProfilerDir"`
	ProfilerFrequency     time.Duration `json:"profilerFrequency"     yaml:"profilerFrequency"`
}

func Default() Config {
	return Config{
		LogLevel:           logging.Info.String(),
		LogDisplayLevel:    logging.Info.String(),
		DatabaseBackend:    BackendPebble,
		Pebble:             pebble.NewDefaultConfig(),
		Badger:             badger.NewDefaultConfig(),
		RPCAddress:         DefaultRPCAddress,
		HTTP:               server.NewDefaultHTTPConfig(),
		CORSAllowedOrigins: []string{"*"},
		AllowedHosts:       []string{"localhost"},
		MetricsEnabled:     true,
		EventBacklog:       1_024,
		Trace:              trace.Config{Enabled: false, TraceSampleRate: 1, AppName: "tokenswap"},
		ProfilerFrequency:  15 * time.Minute,
	}
}

// Load reads [path] over [Default]. Files ending in .yaml or .yml are parsed
// as YAML, anything else as JSON.
func Load(path string) (Config, error) {
	c := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &c)
	default:
		err = json.Unmarshal(b, &c)
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: unable to parse %s", err, path)
	}
	return c, c.Verify()
}

func (c *Config) Verify() error {
	if _, err := c.GetLogLevel(); err != nil {
		return err
	}
	if _, err := c.GetLogDisplayLevel(); err != nil {
		return err
	}
	switch c.DatabaseBackend {
	case BackendMemDB:
	case BackendPebble, BackendBadger:
		if len(c.DatabasePath) == 0 && !(c.DatabaseBackend == BackendBadger && c.Badger.InMemory) {
			return fmt.Errorf("%w: backend=%s", ErrMissingDatabase, c.DatabaseBackend)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownBackend, c.DatabaseBackend)
	}
	if c.EventBacklog <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBacklog, c.EventBacklog)
	}
	return nil
}

func (c *Config) GetLogLevel() (logging.Level, error) {
	return logging.ToLevel(c.LogLevel)
}

func (c *Config) GetLogDisplayLevel() (logging.Level, error) {
	return logging.ToLevel(c.LogDisplayLevel)
}

func (c *Config) GetTraceConfig() *trace.Config {
	return &c.Trace
}

func (c *Config) GetContinuousProfilerConfig() *profiler.Config {
	if len(c.ContinuousProfilerDir) == 0 {
		return &profiler.Config{Enabled: false}
	}
	// Replace all instances of "*" with nanotime to make the directory unique
	// across restarts.
	dir := strings.ReplaceAll(c.ContinuousProfilerDir, "*", fmt.Sprintf("%d", time.Now().UnixNano()))
	return &profiler.Config{
		Enabled:     true,
		Dir:         dir,
		Freq:        c.ProfilerFrequency,
		MaxNumFiles: 10,
	}
}

// OpenDatabase opens the configured backend. The returned gatherer is nil
// when the backend exports no metrics.
func (c *Config) OpenDatabase() (state.Database, prometheus.Gatherer, error) {
	switch c.DatabaseBackend {
	case BackendMemDB:
		return state.NewMemDB(), nil, nil
	case BackendPebble:
		db, registry, err := pebble.New(c.DatabasePath, c.Pebble)
		if err != nil {
			return nil, nil, err
		}
		return db, registry, nil
	case BackendBadger:
		db, err := badger.New(c.DatabasePath, c.Badger)
		if err != nil {
			return nil, nil, err
		}
		return db, nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownBackend, c.DatabaseBackend)
	}
}
