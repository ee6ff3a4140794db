// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package format

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zetaloop/DSProject2-Calculator/internal/session"
	"github.com/zetaloop/DSProject2-Calculator/internal/value"
)

func TestPlain(t *testing.T) {
	st := session.NewState()
	tests := []struct {
		in   float64
		want string
	}{
		{7, "7"},
		{120, "120"},
		{0.1 + 0.2, "0.3"},
		{-2.5, "-2.5"},
		{math.Copysign(0, -1), "0"},
		{1e20, "1e+20"},
		{math.Inf(1), "Inf"},
		{math.Inf(-1), "-Inf"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(value.Real(tt.in), st), "in=%v", tt.in)
	}
}

func TestScientific(t *testing.T) {
	st := session.NewState()
	st.SetScientific(true)

	assert.Equal(t, "1.2345e+03", Number(value.Real(1234.5), st))
	assert.Equal(t, "-5e-01", Number(value.Real(-0.5), st))
	assert.Equal(t, "0e+00", Number(value.Real(0), st))
	assert.Equal(t, "Inf", Number(value.Real(math.Inf(1)), st))
}

func TestFraction(t *testing.T) {
	st := session.NewState()
	st.SetFraction(true)

	tests := []struct {
		in   float64
		want string
	}{
		{0.5, "1/2"},
		{0.75, "3/4"},
		{-0.25, "-1/4"},
		{1.0 / 3, "1/3"},
		{3, "3/1"},
		{0, "0/1"},
		{math.Pi, "3126535/995207"},
		{math.Inf(1), "Inf/1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(value.Real(tt.in), st), "in=%v", tt.in)
	}

	assert.Equal(t, "22/7", Number(value.Real(math.Pi), st, WithMaxDenominator(10)))
}

func TestBase(t *testing.T) {
	tests := []struct {
		base session.Base
		in   float64
		want string
	}{
		{session.Hex, 10, "A"},
		{session.Hex, 255, "FF"},
		{session.Bin, 2.5, "10.1"},
		{session.Bin, 0.1, "0.0001100110011"},
		{session.Oct, -8, "-10"},
		{session.Hex, 0, "0"},
		{session.Bin, math.Inf(1), "Inf"},
	}
	for _, tt := range tests {
		st := session.NewState()
		st.SetBase(tt.base)
		assert.Equal(t, tt.want, Number(value.Real(tt.in), st), "%v in=%v", tt.base, tt.in)
	}

	st := session.NewState()
	st.SetBase(session.Bin)
	assert.Equal(t, "0.01", Number(value.Real(0.3), st, WithBaseDigits(2)))
}

func TestComplex(t *testing.T) {
	st := session.NewState()
	assert.Equal(t, "1 + 2i", Number(value.Number{Re: 1, Im: 2}, st))
	assert.Equal(t, "1 - 2i", Number(value.Number{Re: 1, Im: -2}, st))
	assert.Equal(t, "3i", Number(value.Number{Im: 3}, st))
	assert.Equal(t, "-1i", Number(value.Number{Im: -1}, st))

	st.SetFraction(true)
	assert.Equal(t, "0.5 + 0.5i", Number(value.Number{Re: 0.5, Im: 0.5}, st))

	st.SetScientific(true)
	assert.Equal(t, "1e+00 + 2e+00i", Number(value.Number{Re: 1, Im: 2}, st))
}

func TestDisplay(t *testing.T) {
	st := session.NewState()
	assert.Equal(t, "7", Display(value.Real(7), st))

	st.Commit(value.Real(7))
	assert.Equal(t, "Ans = 7", Display(value.Real(7), st))
}
