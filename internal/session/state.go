// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package session holds the caller-owned calculator state and a registry
// that keeps concurrent sessions isolated.
package session

import (
	"fmt"
	"strings"

	"github.com/zetaloop/DSProject2-Calculator/internal/value"
)

// Base is the numeral system used for display.
type Base int

const (
	Dec Base = iota
	Bin
	Oct
	Hex
)

// Radix returns the numeric radix of b.
func (b Base) Radix() int {
	switch b {
	case Bin:
		return 2
	case Oct:
		return 8
	case Hex:
		return 16
	}
	return 10
}

// String returns the key label of b.
func (b Base) String() string {
	switch b {
	case Bin:
		return "Bin"
	case Oct:
		return "Oct"
	case Hex:
		return "Hex"
	}
	return "Dec"
}

// ParseBase parses a base key label.
func ParseBase(s string) (Base, bool) {
	switch strings.ToLower(s) {
	case "dec":
		return Dec, true
	case "bin":
		return Bin, true
	case "oct":
		return Oct, true
	case "hex":
		return Hex, true
	}
	return Dec, false
}

// MarshalText encodes b as its key label.
func (b Base) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

// UnmarshalText decodes a key label.
func (b *Base) UnmarshalText(text []byte) error {
	v, ok := ParseBase(string(text))
	if !ok {
		return fmt.Errorf("unknown number base %q", text)
	}
	*b = v
	return nil
}

// Angle is the unit of the trigonometric family.
type Angle int

const (
	Rad Angle = iota
	Deg
	Hyp // hyperbolic functions
)

// String returns the key label of a.
func (a Angle) String() string {
	switch a {
	case Deg:
		return "Deg"
	case Hyp:
		return "Hyp"
	}
	return "Rad"
}

// ParseAngle parses an angle key label.
func ParseAngle(s string) (Angle, bool) {
	switch strings.ToLower(s) {
	case "rad":
		return Rad, true
	case "deg":
		return Deg, true
	case "hyp":
		return Hyp, true
	}
	return Rad, false
}

// MarshalText encodes a as its key label.
func (a Angle) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

// UnmarshalText decodes a key label.
func (a *Angle) UnmarshalText(text []byte) error {
	v, ok := ParseAngle(string(text))
	if !ok {
		return fmt.Errorf("unknown angle unit %q", text)
	}
	*a = v
	return nil
}

// State is the per-session record threaded through every call.
// At most one of UseScientific, UseFraction and Base != Dec is active;
// use the setters to keep that true.
type State struct {
	Memory        value.Number `json:"memory"`
	CurrentAns    value.Number `json:"current_ans"`
	PredictedAns  value.Number `json:"predicted_ans"`
	ShowingAnswer bool         `json:"showing_answer"`
	UseScientific bool         `json:"use_scientific"`
	UseFraction   bool         `json:"use_fraction"`
	Base          Base         `json:"number_base"`
	Angle         Angle        `json:"angle"`
}

// NewState returns a State with session-start defaults.
func NewState() *State {
	return &State{}
}

// SetScientific switches scientific display on or off.
func (s *State) SetScientific(on bool) {
	s.UseScientific = on
	if on {
		s.UseFraction = false
		s.Base = Dec
	}
}

// SetFraction switches fraction display on or off.
func (s *State) SetFraction(on bool) {
	s.UseFraction = on
	if on {
		s.UseScientific = false
		s.Base = Dec
	}
}

// SetBase selects the display numeral system.
func (s *State) SetBase(b Base) {
	s.Base = b
	if b != Dec {
		s.UseScientific = false
		s.UseFraction = false
	}
}

// Commit confirms v, the freshly evaluated result, as the answer.
func (s *State) Commit(v value.Number) {
	s.PredictedAns = v
	s.CurrentAns = v
	s.ShowingAnswer = true
}
