// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Command calc is the keystroke calculator CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/zetaloop/DSProject2-Calculator/internal/config"
	"github.com/zetaloop/DSProject2-Calculator/pkg/calc"
)

// errFailed signals a non-zero exit after the failure was already printed.
var errFailed = errors.New("evaluation failed")

// app holds global flags and what PersistentPreRunE builds from them.
type app struct {
	configPath string
	dbPath     string
	sessionID  string
	memory     bool
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "calc",
		Short: "Keystroke calculator",
		Long: `calc is a scientific calculator driven by keypad keys.

Run without arguments to start the interactive keypad. Sessions, including
memory and the last answer, are saved between runs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runREPL(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath(), "Config file path")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite session database (overrides config and CALC_DB)")
	root.PersistentFlags().StringVar(&a.sessionID, "session", "", "Session id (default: the last used session)")
	root.PersistentFlags().BoolVar(&a.memory, "memory", false, "Keep sessions in memory only")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newEvalCmd(a),
		newRenderCmd(a),
		newKeysCmd(a),
		newPressCmd(a),
		newSessionsCmd(a),
	)
	return root
}

// setup loads configuration and builds the logger.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.dbPath != "" {
		cfg.Storage.Driver = config.DriverSQLite
		cfg.Storage.Path = a.dbPath
	}
	if a.memory {
		cfg.Storage.Driver = config.DriverMemory
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", a.configPath, err)
	}
	a.cfg = cfg

	level, _ := cfg.LogLevel()
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = cfg.Logging.Encoding
	if zcfg.Encoding == "console" {
		zcfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	if a.verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	a.logger, err = zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// engine opens an Engine over the configured store.
func (a *app) engine() (*calc.Engine, error) {
	opts := []calc.Option{
		calc.WithConfig(a.cfg),
		calc.WithLogger(a.logger),
	}
	if a.cfg.Storage.Driver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(a.cfg.Storage.Path), 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
		opts = append(opts, calc.WithSQLiteStore(a.cfg.Storage.Path))
	} else {
		opts = append(opts, calc.WithMemoryStore())
	}
	return calc.New(opts...)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
