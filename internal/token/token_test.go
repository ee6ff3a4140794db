// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		text string
		kind Kind
	}{
		{"3", Number},
		{".", Number},
		{"3.25", Number},
		{"-1", Number},
		{"1.2.3", Unknown},
		{"-", Binary},
		{"π", Constant},
		{"e", Constant},
		{"Ans", Ref},
		{"M", Ref},
		{"Random", Generator},
		{"nCr", Binary},
		{"!", Postfix},
		{"i", Postfix},
		{"(-)", Sign},
		{"arctan", Function},
		{"int", Function},
		{"(", LParen},
		{")", RParen},
		{"|", Cursor},
		{"History", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, Lookup(tt.text).Kind, "Lookup(%q)", tt.text)
	}
}

func TestIsDigitOrPoint(t *testing.T) {
	assert.True(t, Lookup("7").IsDigitOrPoint())
	assert.True(t, Lookup(".").IsDigitOrPoint())
	assert.False(t, Lookup("10").IsDigitOrPoint())
	assert.False(t, Lookup("-1").IsDigitOrPoint())
	assert.False(t, Lookup("e").IsDigitOrPoint())
}

func TestDescribe(t *testing.T) {
	d, ok := Describe(Lookup("sin"))
	assert.True(t, ok)
	assert.Equal(t, FunctionPrecedence, d.Precedence)
	assert.Equal(t, Right, d.Assoc)

	d, ok = Describe(Lookup("^"))
	assert.True(t, ok)
	assert.Equal(t, Right, d.Assoc)
	assert.Equal(t, 2, d.Arity)

	d, ok = Describe(Unary(Lookup("-")))
	assert.True(t, ok)
	assert.Equal(t, SignPrecedence, d.Precedence)

	_, ok = Describe(Lookup("3"))
	assert.False(t, ok)
	_, ok = Describe(Lookup("("))
	assert.False(t, ok)
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "3 + sin ( 2 )", Join(Seq("3", "+", "sin", "(", "2", ")"), " "))
}
