// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package eval runs postfix programs on a value stack.
package eval

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/zetaloop/DSProject2-Calculator/internal/session"
	"github.com/zetaloop/DSProject2-Calculator/internal/token"
	"github.com/zetaloop/DSProject2-Calculator/internal/value"
)

// RandomSource returns a uniform value in [0, 1).
type RandomSource func() float64

// Evaluator executes postfix programs against a session state.
type Evaluator struct {
	random RandomSource
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithRandom sets the source used by the Random token.
func WithRandom(r RandomSource) Option {
	return func(e *Evaluator) { e.random = r }
}

// New creates a new Evaluator with the given options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{random: rand.Float64}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run evaluates program with a default Evaluator.
func Run(program []token.Token, st *session.State, opts ...Option) (value.Number, error) {
	return New(opts...).Run(program, st)
}

// Run evaluates program. An empty program yields 0. On success the result is
// recorded as st.PredictedAns.
func (e *Evaluator) Run(program []token.Token, st *session.State) (value.Number, error) {
	stack := make([]value.Number, 0, len(program))

	pop := func(t token.Token) (value.Number, error) {
		if len(stack) == 0 {
			return value.Number{}, fail(MissingOperand, t.Text)
		}
		x := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return x, nil
	}

	for _, t := range program {
		var (
			r   value.Number
			err error
		)
		switch t.Kind {
		case token.Number:
			f, perr := strconv.ParseFloat(t.Text, 64)
			if perr != nil {
				return value.Number{}, fail(UnknownOperator, t.Text)
			}
			r = value.Real(f)

		case token.Constant:
			switch t.Text {
			case token.Pi:
				r = value.Real(math.Pi)
			case token.Euler:
				r = value.Real(math.E)
			default:
				return value.Number{}, fail(UnknownOperator, t.Text)
			}

		case token.Ref:
			switch t.Text {
			case token.Ans:
				r = st.CurrentAns
			case token.Memory:
				r = st.Memory
			default:
				return value.Number{}, fail(UnknownOperator, t.Text)
			}

		case token.Generator:
			r = value.Real(e.random())

		case token.Function:
			x, perr := pop(t)
			if perr != nil {
				return value.Number{}, perr
			}
			r, err = function(t.Text, x, st.Angle)

		case token.Postfix:
			x, perr := pop(t)
			if perr != nil {
				return value.Number{}, perr
			}
			r, err = postfix(t.Text, x)

		case token.Sign:
			x, perr := pop(t)
			if perr != nil {
				return value.Number{}, perr
			}
			switch t.Text {
			case token.Minus:
				r = negate(x)
			case token.Plus:
				r = x
			default:
				err = fail(UnknownOperator, t.Text)
			}

		case token.Binary:
			b, perr := pop(t)
			if perr != nil {
				return value.Number{}, perr
			}
			a, perr := pop(t)
			if perr != nil {
				return value.Number{}, perr
			}
			r, err = binary(t.Text, a, b)

		case token.LParen, token.RParen, token.Cursor, token.Unknown:
			err = fail(UnknownOperator, t.Text)

		default:
			err = fail(UnknownOperator, t.Text)
		}
		if err != nil {
			return value.Number{}, err
		}
		stack = append(stack, r)
	}

	var result value.Number
	switch len(stack) {
	case 0:
		result = value.Real(0)
	case 1:
		result = stack[0]
	default:
		return value.Number{}, fail(ExtraOperands, "")
	}
	st.PredictedAns = result
	return result, nil
}

func negate(x value.Number) value.Number {
	return value.Number{Re: -x.Re, Im: -x.Im}
}
