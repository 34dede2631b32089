// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metaverse-network/tokenswap/config"
	"github.com/metaverse-network/tokenswap/genesis"
	"github.com/metaverse-network/tokenswap/utils"
	"github.com/metaverse-network/tokenswap/vm"
)

func loadNodeFiles(cmd *cobra.Command) (config.Config, *genesis.Genesis, error) {
	configPath, _ := cmd.Flags().GetString("config")
	genesisPath, _ := cmd.Flags().GetString("genesis")

	cfg := config.Default()
	if len(configPath) > 0 {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return config.Config{}, nil, err
		}
	}
	b, err := os.ReadFile(genesisPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	g, err := genesis.Parse(b)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, g, nil
}

func startVM(cmd *cobra.Command) (*vm.VM, *logFactory, error) {
	cfg, g, err := loadNodeFiles(cmd)
	if err != nil {
		return nil, nil, err
	}
	lcfg, err := logConfig(&cfg)
	if err != nil {
		return nil, nil, err
	}
	factory := newLogFactory(lcfg)
	log, err := factory.Make("tokenswap")
	if err != nil {
		factory.Close()
		return nil, nil, err
	}
	instance, err := vm.New(cmd.Context(), log, cfg, g)
	if err != nil {
		factory.Close()
		return nil, nil, err
	}
	return instance, factory, nil
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database and load the genesis",
	RunE: func(cmd *cobra.Command, _ []string) error {
		instance, factory, err := startVM(cmd)
		if err != nil {
			return err
		}
		defer factory.Close()

		height, err := instance.LastHeight(cmd.Context())
		if err != nil {
			return err
		}
		utils.Outf("{{green}}initialized at height:{{/}} %d\n", height)
		return instance.Close()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run a node that executes each submitted transaction in its own block",
	RunE: func(cmd *cobra.Command, _ []string) error {
		instance, factory, err := startVM(cmd)
		if err != nil {
			return err
		}
		defer factory.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := instance.Serve(ctx); err != nil {
			instance.Logger().Error("server stopped", zap.Error(err))
			_ = instance.Close()
			return err
		}
		return instance.Close()
	},
}

func init() {
	for _, cmd := range []*cobra.Command{initCmd, serveCmd} {
		cmd.Flags().String("config", "", "path to a JSON or YAML node config")
		cmd.Flags().String("genesis", "genesis.json", "path to the genesis file")
		rootCmd.AddCommand(cmd)
	}
}
