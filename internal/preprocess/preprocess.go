// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package preprocess normalizes a raw keystroke token list into a
// well-formed infix token list.
package preprocess

import (
	"strings"

	"github.com/zetaloop/DSProject2-Calculator/internal/token"
)

// Tokens strips cursor markers, merges digit keystrokes into literals,
// balances parentheses and inserts implicit multiplication. It never fails.
func Tokens(ts []token.Token) []token.Token {
	return implicitMul(balance(merge(stripCursor(ts))))
}

func stripCursor(ts []token.Token) []token.Token {
	out := make([]token.Token, 0, len(ts))
	for _, t := range ts {
		if t.Kind != token.Cursor {
			out = append(out, t)
		}
	}
	return out
}

// merge collapses each run of single digit or point keystrokes into one
// literal. A second point inside a run starts a new literal.
func merge(ts []token.Token) []token.Token {
	out := make([]token.Token, 0, len(ts))
	var run strings.Builder
	hasPoint := false

	flush := func() {
		if run.Len() == 0 {
			return
		}
		lit := run.String()
		if lit == token.Point {
			lit = ".0"
		}
		out = append(out, token.Lit(lit))
		run.Reset()
		hasPoint = false
	}

	for _, t := range ts {
		if !t.IsDigitOrPoint() {
			flush()
			out = append(out, t)
			continue
		}
		if t.Text == token.Point {
			if hasPoint {
				flush()
			}
			hasPoint = true
		}
		run.WriteString(t.Text)
	}
	flush()
	return out
}

// balance pairs every stray ")" with a "(" prepended to the front and closes
// every unmatched "(" at the end.
func balance(ts []token.Token) []token.Token {
	open, strayRight := 0, 0
	for _, t := range ts {
		switch t.Kind {
		case token.LParen:
			open++
		case token.RParen:
			if open == 0 {
				strayRight++
			} else {
				open--
			}
		}
	}
	if open == 0 && strayRight == 0 {
		return ts
	}

	out := make([]token.Token, 0, len(ts)+open+strayRight)
	for i := 0; i < strayRight; i++ {
		out = append(out, token.Lookup(token.Open))
	}
	out = append(out, ts...)
	for i := 0; i < open; i++ {
		out = append(out, token.Lookup(token.Close))
	}
	return out
}

func implicitMul(ts []token.Token) []token.Token {
	if len(ts) < 2 {
		return ts
	}
	out := make([]token.Token, 0, len(ts)*2)
	for i, t := range ts {
		out = append(out, t)
		if i+1 < len(ts) && endsOperand(t) && startsOperand(ts[i+1]) {
			out = append(out, token.Lookup(token.Mul))
		}
	}
	return out
}

// endsOperand reports whether an operand may end at t.
func endsOperand(t token.Token) bool {
	switch t.Kind {
	case token.Postfix, token.RParen:
		return true
	case token.Binary, token.Sign, token.LParen, token.Function:
		return false
	case token.Number, token.Constant, token.Ref, token.Generator, token.Unknown, token.Cursor:
		return true
	}
	return true
}

// startsOperand reports whether an operand may start at t.
func startsOperand(t token.Token) bool {
	switch t.Kind {
	case token.LParen, token.Function:
		return true
	case token.Binary, token.RParen, token.Postfix, token.Sign:
		return false
	case token.Number, token.Constant, token.Ref, token.Generator, token.Unknown, token.Cursor:
		return true
	}
	return true
}
