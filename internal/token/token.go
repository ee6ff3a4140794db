// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines calculator token kinds, symbols and the operator
// descriptor table.
package token

import "strings"

// Kind classifies a token.
type Kind int

const (
	Unknown Kind = iota

	Number    // digit, point, or merged decimal literal
	Constant  // π e
	Ref       // Ans M
	Generator // Random
	Binary    // + - * / mod ^ nPr nCr
	Postfix   // ! % i
	Sign      // (+) (-), produced by the compiler only
	Function  // sin cos tan arcsin arccos arctan abs sqrt cbrt log ln int
	LParen
	RParen
	Cursor // wire-form cursor marker
)

// Symbols for every non-literal token.
const (
	Pi     = "π"
	Euler  = "e"
	Ans    = "Ans"
	Memory = "M"
	Random = "Random"

	Add  = "+"
	Sub  = "-"
	Mul  = "*"
	Div  = "/"
	Mod  = "mod"
	Pow  = "^"
	Perm = "nPr"
	Comb = "nCr"

	Factorial = "!"
	Percent   = "%"
	Imaginary = "i"

	Plus  = "(+)"
	Minus = "(-)"

	Open  = "("
	Close = ")"

	Marker = "|"
	Point  = "."
)

// Function names.
const (
	Sin    = "sin"
	Cos    = "cos"
	Tan    = "tan"
	Arcsin = "arcsin"
	Arccos = "arccos"
	Arctan = "arctan"
	Abs    = "abs"
	Sqrt   = "sqrt"
	Cbrt   = "cbrt"
	Log    = "log"
	Ln     = "ln"
	Int    = "int"
)

// Token is one symbol of an expression. Tokens are immutable values.
type Token struct {
	Kind Kind
	Text string
}

// String returns the token text.
func (t Token) String() string { return t.Text }

// Lookup classifies a key label or symbol.
func Lookup(text string) Token {
	switch text {
	case Pi, Euler:
		return Token{Kind: Constant, Text: text}
	case Ans, Memory:
		return Token{Kind: Ref, Text: text}
	case Random:
		return Token{Kind: Generator, Text: text}
	case Add, Sub, Mul, Div, Mod, Pow, Perm, Comb:
		return Token{Kind: Binary, Text: text}
	case Factorial, Percent, Imaginary:
		return Token{Kind: Postfix, Text: text}
	case Plus, Minus:
		return Token{Kind: Sign, Text: text}
	case Sin, Cos, Tan, Arcsin, Arccos, Arctan, Abs, Sqrt, Cbrt, Log, Ln, Int:
		return Token{Kind: Function, Text: text}
	case Open:
		return Token{Kind: LParen, Text: text}
	case Close:
		return Token{Kind: RParen, Text: text}
	case Marker:
		return Token{Kind: Cursor, Text: text}
	}
	if IsLiteral(text) {
		return Token{Kind: Number, Text: text}
	}
	return Token{Kind: Unknown, Text: text}
}

// Lit returns a numeric literal token.
func Lit(text string) Token {
	return Token{Kind: Number, Text: text}
}

// Seq classifies each label in order.
func Seq(labels ...string) []Token {
	ts := make([]Token, len(labels))
	for i, l := range labels {
		ts[i] = Lookup(l)
	}
	return ts
}

// Texts returns the text of each token.
func Texts(ts []Token) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Text
	}
	return out
}

// Join renders tokens separated by sep.
func Join(ts []Token, sep string) string {
	return strings.Join(Texts(ts), sep)
}

// IsLiteral reports whether text is a decimal literal: an optional leading
// minus, then digits with at most one point.
func IsLiteral(text string) bool {
	body := strings.TrimPrefix(text, "-")
	if body == "" {
		return false
	}
	points := 0
	for _, r := range body {
		switch {
		case r == '.':
			points++
			if points > 1 {
				return false
			}
		case r < '0' || r > '9':
			return false
		}
	}
	return true
}

// IsDigitOrPoint reports whether t is a single keystroke drawn from {0-9, .}.
func (t Token) IsDigitOrPoint() bool {
	if t.Kind != Number || len(t.Text) != 1 {
		return false
	}
	c := t.Text[0]
	return c == '.' || (c >= '0' && c <= '9')
}

// String returns the name of a token kind.
func (k Kind) String() string {
	switch k {
	case Unknown:
		return "UNKNOWN"
	case Number:
		return "NUMBER"
	case Constant:
		return "CONSTANT"
	case Ref:
		return "REF"
	case Generator:
		return "GENERATOR"
	case Binary:
		return "BINARY"
	case Postfix:
		return "POSTFIX"
	case Sign:
		return "SIGN"
	case Function:
		return "FUNCTION"
	case LParen:
		return "LPAREN"
	case RParen:
		return "RPAREN"
	case Cursor:
		return "CURSOR"
	}
	return "INVALID"
}

// IsOperand returns true for tokens that push exactly one value.
func (k Kind) IsOperand() bool {
	switch k {
	case Number, Constant, Ref, Generator:
		return true
	}
	return false
}
