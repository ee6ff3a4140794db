// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package compile converts normalized infix tokens into a postfix program
// using the shunting-yard algorithm.
package compile

import (
	"errors"
	"fmt"

	"github.com/zetaloop/DSProject2-Calculator/internal/token"
)

// ErrorKind classifies a structural error.
type ErrorKind int

const (
	UnbalancedParen ErrorKind = iota + 1
	UnknownSymbol
)

// Sentinels for errors.Is.
var (
	ErrUnbalancedParen = &Error{Kind: UnbalancedParen}
	ErrUnknownSymbol   = &Error{Kind: UnknownSymbol}
)

// Error is a structural error found while compiling.
type Error struct {
	Kind  ErrorKind
	Token string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case UnbalancedParen:
		return "mismatched parentheses"
	case UnknownSymbol:
		return fmt.Sprintf("unrecognized symbol %q", e.Token)
	}
	return "invalid expression"
}

// Is matches errors of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// tokenClass tracks what the previous token was, for sign disambiguation.
type tokenClass int

const (
	classNone tokenClass = iota
	classOperand
	classOperator
	classFunction
	classOpen
	classClose
)

// Postfix compiles infix tokens into postfix order. Unary + and - are
// rewritten to the sign tokens (+) and (-).
func Postfix(ts []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(ts))
	var stack []token.Token
	last := classNone

	pushOperator := func(t token.Token) error {
		d, ok := token.Describe(t)
		if !ok {
			return &Error{Kind: UnknownSymbol, Token: t.Text}
		}
		for len(stack) > 0 {
			top := stack[len(stack)-1]
			td, ok := token.Describe(top)
			if !ok {
				break // "(" or a non-operator
			}
			if td.Precedence < d.Precedence || (d.Assoc == token.Left && td.Precedence == d.Precedence) {
				out = append(out, top)
				stack = stack[:len(stack)-1]
				continue
			}
			break
		}
		stack = append(stack, t)
		return nil
	}

	for _, t := range ts {
		if t.Kind.IsOperand() {
			out = append(out, t)
			last = classOperand
			continue
		}

		switch t.Kind {
		case token.Function:
			stack = append(stack, t)
			last = classFunction

		case token.LParen:
			stack = append(stack, t)
			last = classOpen

		case token.RParen:
			for len(stack) > 0 && stack[len(stack)-1].Kind != token.LParen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) == 0 {
				return nil, &Error{Kind: UnbalancedParen, Token: t.Text}
			}
			stack = stack[:len(stack)-1]
			if len(stack) > 0 && stack[len(stack)-1].Kind == token.Function {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			last = classClose

		case token.Binary:
			if (t.Text == token.Add || t.Text == token.Sub) && signPosition(last) {
				// Prefix signs have no left operand, so they pop nothing.
				stack = append(stack, token.Unary(t))
				last = classOperator
				continue
			}
			if err := pushOperator(t); err != nil {
				return nil, err
			}
			last = classOperator

		case token.Sign:
			stack = append(stack, t)
			last = classOperator

		case token.Postfix:
			if err := pushOperator(t); err != nil {
				return nil, err
			}
			last = classClose

		case token.Cursor:
			// Display-only marker.

		case token.Unknown:
			return nil, &Error{Kind: UnknownSymbol, Token: t.Text}

		default:
			return nil, &Error{Kind: UnknownSymbol, Token: t.Text}
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == token.LParen || top.Kind == token.RParen {
			return nil, &Error{Kind: UnbalancedParen, Token: top.Text}
		}
		out = append(out, top)
	}
	return out, nil
}

// signPosition reports whether a + or - following a token of class c is a
// unary sign.
func signPosition(c tokenClass) bool {
	switch c {
	case classNone, classOperator, classFunction, classOpen:
		return true
	}
	return false
}
