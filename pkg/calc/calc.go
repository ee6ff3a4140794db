// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package calc provides the public API of the keystroke calculator: pure
// functions over a buffer and state, and an Engine that keeps sessions.
package calc

import (
	"errors"

	"go.uber.org/zap"

	"github.com/zetaloop/DSProject2-Calculator/internal/compile"
	"github.com/zetaloop/DSProject2-Calculator/internal/eval"
	"github.com/zetaloop/DSProject2-Calculator/internal/format"
	"github.com/zetaloop/DSProject2-Calculator/internal/input"
	"github.com/zetaloop/DSProject2-Calculator/internal/keymap"
	"github.com/zetaloop/DSProject2-Calculator/internal/preprocess"
	"github.com/zetaloop/DSProject2-Calculator/internal/session"
	"github.com/zetaloop/DSProject2-Calculator/internal/token"
	"github.com/zetaloop/DSProject2-Calculator/internal/value"
)

// ErrorPrefix starts every display string for a failed evaluation.
const ErrorPrefix = "Error: "

// Buffer is the expression being edited.
type Buffer = input.Buffer

// State is the per-session record.
type State = session.State

// Number is a real or complex result.
type Number = value.Number

// NewState returns a State with session-start defaults.
func NewState() *State { return session.NewState() }

// ParseLabels builds a Buffer from labels with an optional cursor marker.
func ParseLabels(labels []string) Buffer { return input.ParseLabels(labels) }

// ApplyKey handles one key press with the default keypad map.
//
// Commit keys (=, M+, M-) evaluate buf once and confirm that result. When
// evaluation fails the state is left untouched.
func ApplyKey(buf Buffer, st *State, key string) Buffer {
	return applyKey(buf, st, key, nil, eval.New(), zap.NewNop())
}

// Evaluate computes the display string and numeric result of buf. On
// success st.PredictedAns holds the result. On failure the display is
// "Error: <message>" and the result is nil. While a committed answer is
// shown, it is displayed as is and buf is not evaluated again.
func Evaluate(buf Buffer, st *State) (string, *Number) {
	return evaluate(buf, st, eval.New(), format.New(), zap.NewNop())
}

// Render returns the normalised infix form of buf, tokens separated by
// single spaces.
func Render(buf Buffer) string {
	return token.Join(preprocess.Tokens(buf.Tokens), " ")
}

func applyKey(buf Buffer, st *State, key string, km *keymap.Keymap, ev *eval.Evaluator, logger *zap.Logger) Buffer {
	b := input.Apply(buf, st, key, km)
	if !input.IsCommit(key) {
		return b
	}

	v := st.CurrentAns
	if !st.ShowingAnswer {
		result, err := run(b, st, ev, logger)
		if err != nil {
			logger.Debug("commit skipped", zap.String("key", key))
			return b
		}
		v = result
	}
	input.Confirm(st, key, v)
	return b
}

func evaluate(buf Buffer, st *State, ev *eval.Evaluator, f *format.Formatter, logger *zap.Logger) (string, *Number) {
	if st.ShowingAnswer {
		v := st.CurrentAns
		return f.Display(v, st), &v
	}
	result, err := run(buf, st, ev, logger)
	if err != nil {
		return ErrorPrefix + err.Error(), nil
	}
	return f.Display(result, st), &result
}

// run compiles and evaluates buf without formatting.
func run(buf Buffer, st *State, ev *eval.Evaluator, logger *zap.Logger) (Number, error) {
	infix := preprocess.Tokens(buf.Tokens)
	program, err := compile.Postfix(infix)
	if err != nil {
		if errors.Is(err, compile.ErrUnbalancedParen) {
			logger.Error("unbalanced parentheses after preprocessing",
				zap.Bool("invariant", true),
				zap.String("infix", token.Join(infix, " ")))
		}
		logger.Debug("compile failed", zap.Error(err))
		return Number{}, err
	}

	result, err := ev.Run(program, st)
	if err != nil {
		logger.Debug("evaluation failed",
			zap.String("postfix", token.Join(program, " ")),
			zap.Error(err))
		return Number{}, err
	}

	logger.Debug("evaluated",
		zap.String("postfix", token.Join(program, " ")),
		zap.Stringer("result", result))
	return result, nil
}
