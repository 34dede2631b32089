// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"io"
	"os"
	"path"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/metaverse-network/tokenswap/config"
)

type logWrapper struct {
	logger       logging.Logger
	displayLevel zap.AtomicLevel
	logLevel     zap.AtomicLevel
}

type logFactory struct {
	config logging.Config
	lock   sync.RWMutex

	// For each logger created by this factory:
	// Logger name --> the logger.
	loggers map[string]logWrapper
}

func newLogFactory(config logging.Config) *logFactory {
	return &logFactory{
		config:  config,
		loggers: make(map[string]logWrapper),
	}
}

// logConfig translates the node config into a [logging.Config]. File
// logging is disabled when no directory is set.
func logConfig(cfg *config.Config) (logging.Config, error) {
	logLevel, err := cfg.GetLogLevel()
	if err != nil {
		return logging.Config{}, err
	}
	displayLevel, err := cfg.GetLogDisplayLevel()
	if err != nil {
		return logging.Config{}, err
	}
	return logging.Config{
		RotatingWriterConfig: logging.RotatingWriterConfig{
			MaxSize:   8, // megabytes
			MaxFiles:  5,
			MaxAge:    7, // days
			Directory: cfg.LogDir,
			Compress:  true,
		},
		DisplayLevel: displayLevel,
		LogLevel:     logLevel,
		LogFormat:    logging.Colors,
	}, nil
}

// Assumes [f.lock] is held
func (f *logFactory) makeLogger(config logging.Config) (logging.Logger, error) {
	if _, ok := f.loggers[config.LoggerName]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", config.LoggerName)
	}
	consoleEnc := config.LogFormat.ConsoleEncoder()
	fileEnc := config.LogFormat.FileEncoder()

	var consoleWriter io.WriteCloser
	if config.DisableWriterDisplaying {
		consoleWriter = newDiscardWriteCloser()
	} else {
		consoleWriter = os.Stderr
	}

	consoleCore := logging.NewWrappedCore(config.DisplayLevel, consoleWriter, consoleEnc)
	consoleCore.WriterDisabled = config.DisableWriterDisplaying
	cores := []logging.WrappedCore{consoleCore}
	fileLevel := consoleCore.AtomicLevel
	if len(config.Directory) > 0 {
		rw := &lumberjack.Logger{
			Filename:   path.Join(config.Directory, config.LoggerName+".log"),
			MaxSize:    config.MaxSize,  // megabytes
			MaxAge:     config.MaxAge,   // days
			MaxBackups: config.MaxFiles, // files
			Compress:   config.Compress,
		}
		fileCore := logging.NewWrappedCore(config.LogLevel, rw, fileEnc)
		cores = append(cores, fileCore)
		fileLevel = fileCore.AtomicLevel
	}
	prefix := config.LogFormat.WrapPrefix(config.MsgPrefix)

	l := logging.NewLogger(prefix, cores...)
	f.loggers[config.LoggerName] = logWrapper{
		logger:       l,
		displayLevel: consoleCore.AtomicLevel,
		logLevel:     fileLevel,
	}
	return l, nil
}

func (f *logFactory) Make(name string) (logging.Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	config := f.config
	config.LoggerName = name
	return f.makeLogger(config)
}

func (f *logFactory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, lw := range f.loggers {
		lw.logger.Stop()
	}
	f.loggers = nil
}

type discardWriteCloser struct {
	io.Writer
}

func newDiscardWriteCloser() *discardWriteCloser {
	return &discardWriteCloser{io.Discard}
}

// Close implements the io.Closer interface.
func (*discardWriteCloser) Close() error {
	return nil
}
