// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/zetaloop/DSProject2-Calculator/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// keys presses each key in turn on an empty buffer.
func keys(st *State, ks ...string) Buffer {
	var b Buffer
	for _, k := range ks {
		b = ApplyKey(b, st, k)
	}
	return b
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		keys []string
		want string
	}{
		{"sum", []string{"3", "+", "4"}, "7"},
		{"unary minus", []string{"-", "3", "+", "2"}, "-1"},
		{"implicit product", []string{"2", "(", "3", "+", "4", ")"}, "14"},
		{"factorial", []string{"5", "x!"}, "120"},
		{"square", []string{"3", "x^2"}, "9"},
		{"reciprocal", []string{"4", "x^-1"}, "0.25"},
		{"scaled", []string{"2", "*10^n", "3"}, "2000"},
		{"open paren closes", []string{"√", "(", "1", "6"}, "4"},
		{"decimal", []string{"0", ".", "1", "+", "0", ".", "2"}, "0.3"},
		{"complex", []string{"1", "+", "2", "i"}, "1 + 2i"},
		{"empty", nil, "0"},
		{"division by zero", []string{"5", "÷", "0"}, "Error: division by zero"},
		{"bad factorial", []string{"3", ".", "5", "x!"}, "Error: factorial requires a non-negative integer"},
		{"dangling operator", []string{"3", "+"}, "Error: missing operand for +"},
		{"unknown symbol", []string{"foo"}, `Error: unrecognized symbol "foo"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := NewState()
			display, result := Evaluate(keys(st, tt.keys...), st)
			assert.Equal(t, tt.want, display)
			if len(display) >= len(ErrorPrefix) && display[:len(ErrorPrefix)] == ErrorPrefix {
				assert.Nil(t, result)
			} else {
				require.NotNil(t, result)
				assert.Equal(t, *result, st.PredictedAns)
			}
		})
	}
}

func TestEvaluateDisplayModes(t *testing.T) {
	st := NewState()
	b := keys(st, "0", ".", "5", "S⇔D")
	display, _ := Evaluate(b, st)
	assert.Equal(t, "1/2", display)

	st = NewState()
	b = keys(st, "1", "0", "Hex")
	display, _ = Evaluate(b, st)
	assert.Equal(t, "A", display)

	st = NewState()
	b = keys(st, "2", ".", "5", "Bin")
	display, _ = Evaluate(b, st)
	assert.Equal(t, "10.1", display)

	st = NewState()
	b = keys(st, "1", "2", "3", "4", ".", "5", "SCI")
	display, _ = Evaluate(b, st)
	assert.Equal(t, "1.2345e+03", display)
}

func TestEvaluateCommitted(t *testing.T) {
	st := NewState()
	b := keys(st, "6", "*", "7")
	display, _ := Evaluate(b, st)
	assert.Equal(t, "42", display)

	b = ApplyKey(b, st, "=")
	display, _ = Evaluate(b, st)
	assert.Equal(t, "Ans = 42", display)

	b = keys(st, "Ans", "+", "1")
	display, _ = Evaluate(b, st)
	assert.Equal(t, "43", display)
}

func TestApplyKeyCommitsFreshResult(t *testing.T) {
	st := NewState()
	b := keys(st, "8")
	_, _ = Evaluate(b, st)
	b = ApplyKey(b, st, "=")

	b = keys(st, "Ans", "*", "2")
	b = ApplyKey(b, st, "=")
	assert.Equal(t, 16.0, st.CurrentAns.Re, "the committed value is Ans * 2 with the old Ans")
	display, result := Evaluate(b, st)
	assert.Equal(t, "Ans = 16", display)
	require.NotNil(t, result)
	assert.Equal(t, st.CurrentAns, *result)

	b = keys(st, "1", "÷", "0")
	ApplyKey(b, st, "M+")
	assert.Equal(t, 16.0, st.CurrentAns.Re)
	assert.Zero(t, st.Memory.Re)
	assert.False(t, st.ShowingAnswer)
}

func TestEvaluateErrorKeepsPrediction(t *testing.T) {
	st := NewState()
	b := keys(st, "9")
	_, _ = Evaluate(b, st)

	b = keys(st, "9", "÷", "0")
	_, result := Evaluate(b, st)
	assert.Nil(t, result)
	assert.Equal(t, 9.0, st.PredictedAns.Re)
}

func TestRender(t *testing.T) {
	st := NewState()
	assert.Equal(t, "2 * ( 3 + 4 )", Render(keys(st, "2", "(", "3", "+", "4", ")")))
	assert.Equal(t, "2 * sin 3", Render(keys(st, "2", "sin", "3")))
	assert.Equal(t, "( ) * 4", Render(keys(st, ")", "4")))
	assert.Equal(t, "12 + 3", Render(ParseLabels([]string{"1", "2", "|", "+", "3"})))
	assert.Equal(t, "", Render(Buffer{}))
}

func TestApplyKeyDeleteAtStart(t *testing.T) {
	st := NewState()
	b := ParseLabels([]string{"|", "1", "2"})
	b = ApplyKey(b, st, "DEL")
	assert.Equal(t, []string{"|", "2"}, b.Labels())
}

func TestMemoryKeys(t *testing.T) {
	st := NewState()
	b := keys(st, "5")
	_, _ = Evaluate(b, st)
	b = ApplyKey(b, st, "M+")
	assert.Equal(t, 5.0, st.Memory.Re)

	b = keys(st, "MR", "*", "2")
	display, _ := Evaluate(b, st)
	assert.Equal(t, "10", display)

	ApplyKey(b, st, "MC")
	assert.Equal(t, session.NewState().Memory, st.Memory)
}
