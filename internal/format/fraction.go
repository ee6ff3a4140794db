// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package format

import "math/big"

// fraction renders the simplest rational within maxDenominator of x as n/d.
// Values with no rational form render as value/1.
func (f *Formatter) fraction(x float64) string {
	r := new(big.Rat)
	if r.SetFloat64(x) == nil {
		return f.plain(x) + "/1"
	}
	r = limitDenominator(r, big.NewInt(f.maxDenominator))
	return r.Num().String() + "/" + r.Denom().String()
}

// limitDenominator returns the closest rational to r whose denominator is at
// most max, walking the continued-fraction convergents of |r|.
func limitDenominator(r *big.Rat, max *big.Int) *big.Rat {
	if r.Denom().Cmp(max) <= 0 {
		return r
	}
	neg := r.Sign() < 0
	target := new(big.Rat).Abs(r)

	p0, q0 := big.NewInt(0), big.NewInt(1)
	p1, q1 := big.NewInt(1), big.NewInt(0)
	n := new(big.Int).Set(target.Num())
	d := new(big.Int).Set(target.Denom())
	for d.Sign() != 0 {
		a := new(big.Int).Quo(n, d)
		q2 := new(big.Int).Add(q0, new(big.Int).Mul(a, q1))
		if q2.Cmp(max) > 0 {
			break
		}
		p0, q0, p1, q1 = p1, q1, new(big.Int).Add(p0, new(big.Int).Mul(a, p1)), q2
		n, d = d, new(big.Int).Sub(n, new(big.Int).Mul(a, d))
	}

	// Best semiconvergent against the last convergent.
	k := new(big.Int).Quo(new(big.Int).Sub(max, q0), q1)
	lower := new(big.Rat).SetFrac(
		new(big.Int).Add(p0, new(big.Int).Mul(k, p1)),
		new(big.Int).Add(q0, new(big.Int).Mul(k, q1)),
	)
	upper := new(big.Rat).SetFrac(p1, q1)

	best := lower
	if distance(upper, target).Cmp(distance(lower, target)) <= 0 {
		best = upper
	}
	if neg {
		best.Neg(best)
	}
	return best
}

func distance(a, b *big.Rat) *big.Rat {
	d := new(big.Rat).Sub(a, b)
	return d.Abs(d)
}
