// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package token

// Assoc is operator associativity.
type Assoc int

const (
	Left Assoc = iota
	Right
)

// Fixity is where an operator sits relative to its operands.
type Fixity int

const (
	Infix Fixity = iota
	Prefix
	Suffix
	Call
)

// Precedence tiers. A lower number binds tighter.
const (
	PostfixPrecedence  = 2
	PowPrecedence      = 3
	SignPrecedence     = 4
	ProductPrecedence  = 5
	FunctionPrecedence = 6
	SumPrecedence      = 7
)

// Descriptor is the static precedence, associativity and arity of an operator.
type Descriptor struct {
	Precedence int
	Assoc      Assoc
	Arity      int
	Fixity     Fixity
}

var descriptors = map[string]Descriptor{
	Factorial: {PostfixPrecedence, Left, 1, Suffix},
	Percent:   {PostfixPrecedence, Left, 1, Suffix},
	Imaginary: {PostfixPrecedence, Left, 1, Suffix},

	Pow: {PowPrecedence, Right, 2, Infix},

	Plus:  {SignPrecedence, Right, 1, Prefix},
	Minus: {SignPrecedence, Right, 1, Prefix},

	Mul:  {ProductPrecedence, Left, 2, Infix},
	Div:  {ProductPrecedence, Left, 2, Infix},
	Mod:  {ProductPrecedence, Left, 2, Infix},
	Perm: {ProductPrecedence, Left, 2, Infix},
	Comb: {ProductPrecedence, Left, 2, Infix},

	Add: {SumPrecedence, Left, 2, Infix},
	Sub: {SumPrecedence, Left, 2, Infix},
}

var function = Descriptor{FunctionPrecedence, Right, 1, Call}

// Describe returns the operator descriptor for t. All functions share one
// right-associative unary tier.
func Describe(t Token) (Descriptor, bool) {
	switch t.Kind {
	case Function:
		return function, true
	case Binary, Postfix, Sign:
		d, ok := descriptors[t.Text]
		return d, ok
	}
	return Descriptor{}, false
}

// Unary returns the sign token for a unary + or -.
func Unary(t Token) Token {
	if t.Text == Sub {
		return Token{Kind: Sign, Text: Minus}
	}
	return Token{Kind: Sign, Text: Plus}
}
