// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package calc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/zetaloop/DSProject2-Calculator/internal/config"
	"github.com/zetaloop/DSProject2-Calculator/internal/eval"
	"github.com/zetaloop/DSProject2-Calculator/internal/keymap"
	"github.com/zetaloop/DSProject2-Calculator/internal/store"
)

// Option configures an Engine.
type Option func(*Engine)

// Store interface for custom stores.
type Store = store.Store

// Config is the calculator configuration.
type Config = config.Config

// Keymap maps composite keys to the labels they insert.
type Keymap = keymap.Keymap

// RandomSource returns a uniform value in [0, 1).
type RandomSource = eval.RandomSource

// WithSQLiteStore configures SQLite persistence at the given path.
func WithSQLiteStore(path string) Option {
	return func(e *Engine) {
		s, err := store.NewSQLite(path)
		if err != nil {
			e.initErr = fmt.Errorf("open session store: %w", err)
			return
		}
		e.store = s
	}
}

// WithMemoryStore configures an in-memory store (for testing).
func WithMemoryStore() Option {
	return func(e *Engine) {
		e.store = store.NewMemory()
	}
}

// WithStore sets a custom store. The Engine closes it on Close.
func WithStore(s Store) Option {
	return func(e *Engine) {
		e.store = s
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithConfig applies display settings, the starting angle unit and key map
// overrides from cfg.
func WithConfig(cfg *Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithRandom sets the source used by the Random key.
func WithRandom(r RandomSource) Option {
	return func(e *Engine) {
		e.random = r
	}
}

// WithKeymap replaces the keypad map. Config overrides still apply on top.
func WithKeymap(km *Keymap) Option {
	return func(e *Engine) {
		e.keymap = km
	}
}
