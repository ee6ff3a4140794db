// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import (
	"math"
	"math/cmplx"

	"github.com/zetaloop/DSProject2-Calculator/internal/session"
	"github.com/zetaloop/DSProject2-Calculator/internal/token"
	"github.com/zetaloop/DSProject2-Calculator/internal/value"
)

// maxFactorial is the largest n whose factorial is a finite float64.
const maxFactorial = 170

// function applies a named unary function.
func function(name string, x value.Number, angle session.Angle) (value.Number, error) {
	switch name {
	case token.Sin, token.Cos, token.Tan:
		return trig(name, x, angle), nil
	case token.Arcsin, token.Arccos, token.Arctan:
		return arcTrig(name, x, angle)
	case token.Abs:
		if x.IsReal() {
			return value.Real(math.Abs(x.Re)), nil
		}
		return value.Real(cmplx.Abs(x.Complex())), nil
	case token.Sqrt:
		if !x.IsReal() {
			return value.FromComplex(cmplx.Sqrt(x.Complex())), nil
		}
		if x.Re < 0 {
			return value.Number{}, fail(NegativeSqrt, name)
		}
		return value.Real(math.Sqrt(x.Re)), nil
	case token.Cbrt:
		if !x.IsReal() {
			return value.FromComplex(cmplx.Pow(x.Complex(), 1.0/3)), nil
		}
		return value.Real(math.Cbrt(x.Re)), nil
	case token.Log, token.Ln:
		if !x.IsReal() {
			if name == token.Log {
				return value.FromComplex(cmplx.Log10(x.Complex())), nil
			}
			return value.FromComplex(cmplx.Log(x.Complex())), nil
		}
		if x.Re <= 0 {
			return value.Number{}, fail(NonPositiveLog, name)
		}
		if name == token.Log {
			return value.Real(math.Log10(x.Re)), nil
		}
		return value.Real(math.Log(x.Re)), nil
	case token.Int:
		if !x.IsReal() {
			return value.Number{}, fail(UnsupportedComplex, name)
		}
		return value.Real(math.Trunc(x.Re)), nil
	}
	return value.Number{}, fail(UnknownOperator, name)
}

func trig(name string, x value.Number, angle session.Angle) value.Number {
	if angle == session.Deg {
		x = value.Number{Re: x.Re * math.Pi / 180, Im: x.Im * math.Pi / 180}
	}
	if x.IsReal() {
		var r float64
		switch {
		case angle == session.Hyp && name == token.Sin:
			r = math.Sinh(x.Re)
		case angle == session.Hyp && name == token.Cos:
			r = math.Cosh(x.Re)
		case angle == session.Hyp:
			r = math.Tanh(x.Re)
		case name == token.Sin:
			r = math.Sin(x.Re)
		case name == token.Cos:
			r = math.Cos(x.Re)
		default:
			r = math.Tan(x.Re)
		}
		return value.Real(r)
	}

	c := x.Complex()
	var r complex128
	switch {
	case angle == session.Hyp && name == token.Sin:
		r = cmplx.Sinh(c)
	case angle == session.Hyp && name == token.Cos:
		r = cmplx.Cosh(c)
	case angle == session.Hyp:
		r = cmplx.Tanh(c)
	case name == token.Sin:
		r = cmplx.Sin(c)
	case name == token.Cos:
		r = cmplx.Cos(c)
	default:
		r = cmplx.Tan(c)
	}
	return value.FromComplex(r)
}

func arcTrig(name string, x value.Number, angle session.Angle) (value.Number, error) {
	if !x.IsReal() {
		c := x.Complex()
		var r complex128
		switch {
		case angle == session.Hyp && name == token.Arcsin:
			r = cmplx.Asinh(c)
		case angle == session.Hyp && name == token.Arccos:
			r = cmplx.Acosh(c)
		case angle == session.Hyp:
			r = cmplx.Atanh(c)
		case name == token.Arcsin:
			r = cmplx.Asin(c)
		case name == token.Arccos:
			r = cmplx.Acos(c)
		default:
			r = cmplx.Atan(c)
		}
		if angle == session.Deg {
			r *= complex(180/math.Pi, 0)
		}
		return value.FromComplex(r), nil
	}

	v := x.Re
	var r float64
	switch {
	case angle == session.Hyp && name == token.Arcsin:
		r = math.Asinh(v)
	case angle == session.Hyp && name == token.Arccos:
		if v < 1 {
			return value.Number{}, fail(OutOfDomain, name)
		}
		r = math.Acosh(v)
	case angle == session.Hyp:
		if math.Abs(v) >= 1 {
			return value.Number{}, fail(OutOfDomain, name)
		}
		r = math.Atanh(v)
	case name == token.Arctan:
		r = math.Atan(v)
	default:
		if v < -1 || v > 1 {
			return value.Number{}, fail(OutOfDomain, name)
		}
		if name == token.Arcsin {
			r = math.Asin(v)
		} else {
			r = math.Acos(v)
		}
	}
	if angle == session.Deg {
		r *= 180 / math.Pi
	}
	return value.Real(r), nil
}

// postfix applies a suffix operator.
func postfix(op string, x value.Number) (value.Number, error) {
	switch op {
	case token.Factorial:
		if !x.IsInteger() || x.Re < 0 {
			return value.Number{}, fail(InvalidFactorial, op)
		}
		if x.Re > maxFactorial {
			return value.Number{}, fail(ResultTooLarge, op)
		}
		return value.Real(factorial(int(x.Re))), nil
	case token.Percent:
		return value.Number{Re: x.Re / 100, Im: x.Im / 100}, nil
	case token.Imaginary:
		return value.Number{Re: -x.Im, Im: x.Re}, nil
	}
	return value.Number{}, fail(UnknownOperator, op)
}

// binary applies an infix operator to a and b.
func binary(op string, a, b value.Number) (value.Number, error) {
	bothReal := a.IsReal() && b.IsReal()
	switch op {
	case token.Add:
		return value.Number{Re: a.Re + b.Re, Im: a.Im + b.Im}, nil
	case token.Sub:
		return value.Number{Re: a.Re - b.Re, Im: a.Im - b.Im}, nil
	case token.Mul:
		if bothReal {
			return value.Real(a.Re * b.Re), nil
		}
		return value.FromComplex(a.Complex() * b.Complex()), nil
	case token.Div:
		if b.Re == 0 && b.Im == 0 {
			return value.Number{}, fail(DivisionByZero, op)
		}
		if bothReal {
			return value.Real(a.Re / b.Re), nil
		}
		return value.FromComplex(a.Complex() / b.Complex()), nil
	case token.Mod:
		if !bothReal {
			return value.Number{}, fail(UnsupportedComplex, op)
		}
		if b.Re == 0 {
			return value.Number{}, fail(DivisionByZero, op)
		}
		return value.Real(floorMod(a.Re, b.Re)), nil
	case token.Pow:
		return pow(a, b)
	case token.Perm, token.Comb:
		if !bothReal {
			return value.Number{}, fail(UnsupportedComplex, op)
		}
		return combinatoric(op, a.Re, b.Re)
	}
	return value.Number{}, fail(UnknownOperator, op)
}

func pow(a, b value.Number) (value.Number, error) {
	if a.IsReal() && b.IsReal() {
		if a.Re == 0 && b.Re < 0 {
			return value.Number{}, fail(DivisionByZero, token.Pow)
		}
		if a.Re >= 0 || b.IsInteger() {
			r := math.Pow(a.Re, b.Re)
			if math.IsInf(r, 0) && !math.IsInf(a.Re, 0) && !math.IsInf(b.Re, 0) {
				return value.Number{}, fail(ResultTooLarge, token.Pow)
			}
			return value.Real(r), nil
		}
		// Negative base with a fractional exponent: principal complex root.
	}
	if a.Re == 0 && a.Im == 0 && b.Re < 0 {
		return value.Number{}, fail(DivisionByZero, token.Pow)
	}
	r := value.FromComplex(cmplx.Pow(a.Complex(), b.Complex()))
	if !r.IsFinite() && a.IsFinite() && b.IsFinite() {
		return value.Number{}, fail(ResultTooLarge, token.Pow)
	}
	return r, nil
}

// floorMod returns a mod b with the sign of b.
func floorMod(a, b float64) float64 {
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return r
}

func factorial(n int) float64 {
	r := 1.0
	for i := 2; i <= n; i++ {
		r *= float64(i)
	}
	return r
}

// combinatoric computes nPr = n!/(n-r)! or nCr = n!/((n-r)! r!).
func combinatoric(op string, n, r float64) (value.Number, error) {
	if !value.Real(n).IsInteger() || !value.Real(r).IsInteger() || n < 0 || r < 0 || r > n {
		return value.Number{}, fail(InvalidCombinatoric, op)
	}
	if op == token.Perm {
		p := 1.0
		for i := 0.0; i < r; i++ {
			p *= n - i
			if math.IsInf(p, 0) {
				return value.Number{}, fail(ResultTooLarge, op)
			}
		}
		return value.Real(p), nil
	}

	k := math.Min(r, n-r)
	c := 1.0
	for i := 0.0; i < k; i++ {
		c = c * (n - i) / (i + 1)
		if math.IsInf(c, 0) {
			return value.Number{}, fail(ResultTooLarge, op)
		}
	}
	return value.Real(math.Round(c)), nil
}
