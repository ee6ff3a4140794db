// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package calc

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/zetaloop/DSProject2-Calculator/internal/config"
	"github.com/zetaloop/DSProject2-Calculator/internal/eval"
	"github.com/zetaloop/DSProject2-Calculator/internal/format"
	"github.com/zetaloop/DSProject2-Calculator/internal/input"
	"github.com/zetaloop/DSProject2-Calculator/internal/keymap"
	"github.com/zetaloop/DSProject2-Calculator/internal/session"
	"github.com/zetaloop/DSProject2-Calculator/internal/store"
)

// ErrUnknownSession is returned for an id that is neither live nor stored.
var ErrUnknownSession = errors.New("unknown session")

// Response is the outcome of one key press.
type Response struct {
	Expression []string `json:"expression"` // buffer labels with the cursor marker
	Display    string   `json:"display"`
	Result     string   `json:"result,omitempty"` // empty when evaluation failed
}

// Snapshot is the persisted form of a session.
type Snapshot = session.Snapshot

// Engine serves many calculator sessions. Each session is serialised by its
// own lock; different sessions proceed in parallel.
type Engine struct {
	registry  *session.Registry
	store     store.Store
	logger    *zap.Logger
	cfg       *config.Config
	keymap    *keymap.Keymap
	random    eval.RandomSource
	evaluator *eval.Evaluator
	formatter *format.Formatter
	initErr   error
}

// New creates an Engine with the given options. Without a store option
// sessions live in memory.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		registry: session.NewRegistry(),
		logger:   zap.NewNop(),
		cfg:      config.DefaultConfig(),
		keymap:   keymap.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}
	if e.initErr != nil {
		if e.store != nil {
			e.store.Close()
		}
		return nil, e.initErr
	}
	if e.store == nil {
		e.store = store.NewMemory()
	}

	var evalOpts []eval.Option
	if e.random != nil {
		evalOpts = append(evalOpts, eval.WithRandom(e.random))
	}
	e.evaluator = eval.New(evalOpts...)
	e.formatter = format.New(e.cfg.FormatOptions()...)
	if len(e.cfg.Keymap) > 0 {
		e.keymap = e.keymap.With(e.cfg.Keymap)
	}

	return e, nil
}

// Keymap returns the key map in effect.
func (e *Engine) Keymap() *Keymap {
	return e.keymap
}

// NewSession starts a session and returns its id.
func (e *Engine) NewSession() (string, error) {
	snap := Snapshot{State: *session.NewState()}
	snap.State.Angle = e.cfg.Angle()
	s := e.registry.Put(snap)
	if err := e.persist(s.Snapshot()); err != nil {
		e.registry.Delete(s.ID())
		return "", err
	}
	e.logger.Debug("session created", zap.String("session", s.ID()))
	return s.ID(), nil
}

// Resume returns id if it names a known session. An empty id resumes the
// most recently saved session, or starts a new one when there is none.
func (e *Engine) Resume(id string) (string, error) {
	if id != "" {
		if _, err := e.session(id); err != nil {
			return "", err
		}
		return id, nil
	}

	last, err := e.store.GetMetadata(store.MetaLastSession)
	if err != nil {
		return "", fmt.Errorf("read last session: %w", err)
	}
	if last != "" {
		_, err := e.session(last)
		if err == nil {
			return last, nil
		}
		if !errors.Is(err, ErrUnknownSession) {
			return "", err
		}
	}
	return e.NewSession()
}

// Sessions returns the ids of all stored sessions.
func (e *Engine) Sessions() ([]string, error) {
	return e.store.List()
}

// Press applies one key to a session, re-evaluates its expression and
// persists the result.
func (e *Engine) Press(id, key string) (Response, error) {
	s, err := e.session(id)
	if err != nil {
		return Response{}, err
	}

	var resp Response
	snap, err := s.Update(func(sn *Snapshot) error {
		buf := applyKey(input.ParseLabels(sn.Expression), &sn.State, key, e.keymap, e.evaluator, e.logger)
		display, result := evaluate(buf, &sn.State, e.evaluator, e.formatter, e.logger)

		sn.Expression = buf.Labels()
		resp = Response{Expression: append([]string(nil), sn.Expression...), Display: display}
		if result != nil {
			resp.Result = result.String()
		}
		return nil
	})
	if err != nil {
		return Response{}, err
	}
	if err := e.persist(snap); err != nil {
		return Response{}, err
	}

	e.logger.Debug("key pressed",
		zap.String("session", id),
		zap.String("key", key),
		zap.Strings("expression", resp.Expression),
		zap.String("display", resp.Display))
	return resp, nil
}

// Evaluate evaluates buf with this engine's formatter and random source.
func (e *Engine) Evaluate(buf Buffer, st *State) (string, *Number) {
	return evaluate(buf, st, e.evaluator, e.formatter, e.logger)
}

// Snapshot returns a copy of a session.
func (e *Engine) Snapshot(id string) (Snapshot, error) {
	s, err := e.session(id)
	if err != nil {
		return Snapshot{}, err
	}
	return s.Snapshot(), nil
}

// Delete forgets a session.
func (e *Engine) Delete(id string) error {
	e.registry.Delete(id)
	return e.store.Delete(id)
}

// Close releases resources.
func (e *Engine) Close() error {
	return e.store.Close()
}

// session finds a live session, loading it from the store if needed.
func (e *Engine) session(id string) (*session.Session, error) {
	if s, ok := e.registry.Get(id); ok {
		return s, nil
	}
	snap, err := e.store.Get(id)
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}
	if snap == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSession, id)
	}
	e.logger.Debug("session restored", zap.String("session", id))
	return e.registry.Adopt(*snap), nil
}

func (e *Engine) persist(snap Snapshot) error {
	if err := e.store.Put(snap); err != nil {
		return fmt.Errorf("save session %s: %w", snap.ID, err)
	}
	if err := e.store.SetMetadata(store.MetaLastSession, snap.ID); err != nil {
		return fmt.Errorf("save session %s: %w", snap.ID, err)
	}
	return nil
}
