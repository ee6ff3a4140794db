// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package value defines the numeric result type of the calculator.
package value

import (
	"math"
	"math/cmplx"
	"strconv"
)

// Number is a real or complex scalar. The zero value is real zero.
type Number struct {
	Re float64 `json:"re" yaml:"re"`
	Im float64 `json:"im,omitempty" yaml:"im,omitempty"`
}

// Real returns a real Number.
func Real(x float64) Number { return Number{Re: x} }

// FromComplex returns c as a Number.
func FromComplex(c complex128) Number {
	return Number{Re: real(c), Im: imag(c)}
}

// Complex returns n as a complex128.
func (n Number) Complex() complex128 { return complex(n.Re, n.Im) }

// IsReal returns true if n has no imaginary part.
func (n Number) IsReal() bool { return n.Im == 0 }

// IsFinite returns true if neither part is infinite or NaN.
func (n Number) IsFinite() bool {
	return !cmplx.IsInf(n.Complex()) && !cmplx.IsNaN(n.Complex())
}

// IsInteger returns true for a finite real with no fractional part.
func (n Number) IsInteger() bool {
	return n.IsReal() && !math.IsInf(n.Re, 0) && n.Re == math.Trunc(n.Re)
}

// String returns the shortest round-trip rendering, for logs and debugging.
func (n Number) String() string {
	re := strconv.FormatFloat(n.Re, 'g', -1, 64)
	if n.IsReal() {
		return re
	}
	im := strconv.FormatFloat(n.Im, 'g', -1, 64)
	if n.Im >= 0 {
		im = "+" + im
	}
	return re + im + "i"
}
