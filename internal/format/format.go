// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package format renders calculator results in decimal, scientific,
// fraction and positional-base display modes.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/zetaloop/DSProject2-Calculator/internal/session"
	"github.com/zetaloop/DSProject2-Calculator/internal/value"
)

// AnswerPrefix marks a result the user has committed.
const AnswerPrefix = "Ans = "

// Defaults for a Formatter.
const (
	DefaultDigits           = 15
	DefaultScientificDigits = 30
	DefaultBaseDigits       = 15
	DefaultMaxDenominator   = 1_000_000
)

const digitChars = "0123456789ABCDEF"

// Formatter renders numbers according to a session's display mode.
type Formatter struct {
	digits           int
	scientificDigits int
	baseDigits       int
	maxDenominator   int64
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithDigits sets the significant digits of plain decimal output.
func WithDigits(n int) Option {
	return func(f *Formatter) { f.digits = n }
}

// WithScientificDigits sets the significant digits of scientific output.
func WithScientificDigits(n int) Option {
	return func(f *Formatter) { f.scientificDigits = n }
}

// WithBaseDigits caps the fractional digits of non-decimal output.
func WithBaseDigits(n int) Option {
	return func(f *Formatter) { f.baseDigits = n }
}

// WithMaxDenominator bounds the denominator search of fraction output.
func WithMaxDenominator(n int64) Option {
	return func(f *Formatter) { f.maxDenominator = n }
}

// New creates a Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		digits:           DefaultDigits,
		scientificDigits: DefaultScientificDigits,
		baseDigits:       DefaultBaseDigits,
		maxDenominator:   DefaultMaxDenominator,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.maxDenominator < 1 {
		f.maxDenominator = 1
	}
	return f
}

// Number renders v with a default Formatter.
func Number(v value.Number, st *session.State, opts ...Option) string {
	return New(opts...).Number(v, st)
}

// Display renders v with a default Formatter, prefixed when committed.
func Display(v value.Number, st *session.State, opts ...Option) string {
	return New(opts...).Display(v, st)
}

// Display renders v and prefixes it with AnswerPrefix once the user has
// committed the result.
func (f *Formatter) Display(v value.Number, st *session.State) string {
	s := f.Number(v, st)
	if st.ShowingAnswer {
		return AnswerPrefix + s
	}
	return s
}

// Number renders v. Modes are checked in order: scientific, fraction,
// non-decimal base, plain decimal.
func (f *Formatter) Number(v value.Number, st *session.State) string {
	if !v.IsReal() {
		return f.complex(v, st.UseScientific)
	}
	x := v.Re
	switch {
	case st.UseScientific:
		return f.scientific(x)
	case st.UseFraction:
		return f.fraction(x)
	case st.Base != session.Dec:
		return f.inBase(x, st.Base.Radix())
	}
	return f.plain(x)
}

func (f *Formatter) plain(x float64) string {
	if s, ok := nonFinite(x); ok {
		return s
	}
	if x == 0 {
		return "0"
	}
	return strconv.FormatFloat(x, 'g', f.digits, 64)
}

func (f *Formatter) scientific(x float64) string {
	if s, ok := nonFinite(x); ok {
		return s
	}
	if x == 0 {
		x = 0 // drop the sign of -0
	}
	s := strconv.FormatFloat(x, 'e', f.scientificDigits-1, 64)
	mant, exp, _ := strings.Cut(s, "e")
	if strings.Contains(mant, ".") {
		mant = strings.TrimRight(mant, "0")
		mant = strings.TrimSuffix(mant, ".")
	}
	return mant + "e" + exp
}

// inBase converts the integer part by repeated division and the fractional
// part by repeated multiplication, capped at baseDigits digits.
func (f *Formatter) inBase(x float64, radix int) string {
	if s, ok := nonFinite(x); ok {
		return s
	}
	neg := x < 0
	x = math.Abs(x)
	ip := math.Floor(x)
	fp := x - ip
	r := float64(radix)

	var intDigits []byte
	for ip > 0 {
		d := int(math.Mod(ip, r))
		intDigits = append(intDigits, digitChars[d])
		ip = math.Floor(ip / r)
	}
	if len(intDigits) == 0 {
		intDigits = append(intDigits, '0')
	}
	for i, j := 0, len(intDigits)-1; i < j; i, j = i+1, j-1 {
		intDigits[i], intDigits[j] = intDigits[j], intDigits[i]
	}

	var fracDigits []byte
	for i := 0; i < f.baseDigits && fp > 0; i++ {
		fp *= r
		d := math.Floor(fp)
		fracDigits = append(fracDigits, digitChars[int(d)])
		fp -= d
	}
	frac := strings.TrimRight(string(fracDigits), "0")

	var sb strings.Builder
	if neg && (frac != "" || string(intDigits) != "0") {
		sb.WriteByte('-')
	}
	sb.Write(intDigits)
	if frac != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}

// complex renders a + bi. Fraction and base modes fall back to decimal.
func (f *Formatter) complex(v value.Number, scientific bool) string {
	part := f.plain
	if scientific {
		part = f.scientific
	}
	im := part(math.Abs(v.Im)) + "i"
	if v.Re == 0 {
		if v.Im < 0 {
			return "-" + im
		}
		return im
	}
	sep := " + "
	if v.Im < 0 {
		sep = " - "
	}
	return part(v.Re) + sep + im
}

func nonFinite(x float64) (string, bool) {
	switch {
	case math.IsNaN(x):
		return "NaN", true
	case math.IsInf(x, 1):
		return "Inf", true
	case math.IsInf(x, -1):
		return "-Inf", true
	}
	return "", false
}
