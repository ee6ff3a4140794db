// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package preprocess

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zetaloop/DSProject2-Calculator/internal/token"
)

func TestTokens(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"empty", nil, []string{}},
		{"plain sum", []string{"3", "+", "4"}, []string{"3", "+", "4"}},
		{"digit merge", []string{"1", "2", ".", "5", "+", "7"}, []string{"12.5", "+", "7"}},
		{"lone point", []string{"."}, []string{".0"}},
		{"leading point", []string{".", "5"}, []string{".5"}},
		{"second point splits", []string{"3", ".", ".", "5"}, []string{"3.", "*", ".5"}},
		{"cursor stripped", []string{"1", "|", "2"}, []string{"12"}},
		{"digit before paren", []string{"2", "(", "3", "+", "4", ")"}, []string{"2", "*", "(", "3", "+", "4", ")"}},
		{"digit before function", []string{"2", "sin", "3"}, []string{"2", "*", "sin", "3"}},
		{"constant after digit", []string{"3", "e"}, []string{"3", "*", "e"}},
		{"paren then function", []string{"(", "1", ")", "sin", "2"}, []string{"(", "1", ")", "*", "sin", "2"}},
		{"paren pair", []string{"(", "1", ")", "(", "2", ")"}, []string{"(", "1", ")", "*", "(", "2", ")"}},
		{"postfix then operand", []string{"3", "!", "2"}, []string{"3", "!", "*", "2"}},
		{"postfix not operand start", []string{"3", "!"}, []string{"3", "!"}},
		{"stray right paren", []string{")", "4"}, []string{"(", ")", "*", "4"}},
		{"stray right mid", []string{"1", "+", "2", ")", "4"}, []string{"(", "1", "+", "2", ")", "*", "4"}},
		{"unclosed left", []string{"sin", "(", "3", "+", "1"}, []string{"sin", "(", "3", "+", "1", ")"}},
		{"multi-digit key not merged", []string{"5", "10", "^"}, []string{"5", "*", "10", "^"}},
		{"refs", []string{"Ans", "M"}, []string{"Ans", "*", "M"}},
		{"unary minus untouched", []string{"-", "3", "+", "2"}, []string{"-", "3", "+", "2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := token.Texts(Tokens(token.Seq(tt.in...)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Tokens(%v) mismatch (-want +got):\n%s", tt.in, diff)
			}
		})
	}
}

func TestTokensIdempotent(t *testing.T) {
	inputs := [][]string{
		{"3", "+", "4"},
		{"1", "2", ".", "5", "sin", "(", "π"},
		{")", ")", "2", "(", "3"},
		{".", "e", "Ans", "!", "M", "|"},
		{"3", ".", ".", "5", "nCr", "2"},
	}
	for _, in := range inputs {
		once := Tokens(token.Seq(in...))
		twice := Tokens(once)
		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("preprocess not idempotent for %v (-once +twice):\n%s", in, diff)
		}
	}
}

func TestTokensBalanced(t *testing.T) {
	got := Tokens(token.Seq(")", ")", "(", "(", "(", "1"))
	depth := 0
	for _, tk := range got {
		switch tk.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		}
		if depth < 0 {
			t.Fatalf("unmatched ) in %v", token.Texts(got))
		}
	}
	if depth != 0 {
		t.Fatalf("unbalanced output %v", token.Texts(got))
	}
}
