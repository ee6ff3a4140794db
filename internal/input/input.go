// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package input implements the keystroke state machine that edits an
// expression buffer and the session state.
package input

import (
	"github.com/zetaloop/DSProject2-Calculator/internal/keymap"
	"github.com/zetaloop/DSProject2-Calculator/internal/session"
	"github.com/zetaloop/DSProject2-Calculator/internal/token"
	"github.com/zetaloop/DSProject2-Calculator/internal/value"
)

// Keys with an effect other than inserting labels.
const (
	KeyDelete     = "DEL"
	KeyClear      = "AC"
	KeyLeft       = "←"
	KeyRight      = "→"
	KeyEquals     = "="
	KeyScientific = "SCI"
	KeyFraction   = "S⇔D"
	KeyMemClear   = "MC"
	KeyMemAdd     = "M+"
	KeyMemSub     = "M-"
)

// SpecialKeys lists every non-inserting key, for help output.
var SpecialKeys = []string{
	KeyDelete, KeyClear, KeyLeft, KeyRight, KeyEquals,
	KeyScientific, KeyFraction,
	"Dec", "Bin", "Oct", "Hex",
	"Rad", "Deg", "Hyp",
	KeyMemClear, KeyMemAdd, KeyMemSub,
}

// Buffer is the token sequence being edited. Cursor is an index in
// [0, len(Tokens)]; new tokens are inserted there.
type Buffer struct {
	Tokens []token.Token
	Cursor int
}

// ParseLabels builds a Buffer from its wire form. The first cursor marker
// sets the cursor; without one the cursor is at the end.
func ParseLabels(labels []string) Buffer {
	b := Buffer{Cursor: -1}
	for _, l := range labels {
		t := token.Lookup(l)
		if t.Kind == token.Cursor {
			if b.Cursor < 0 {
				b.Cursor = len(b.Tokens)
			}
			continue
		}
		b.Tokens = append(b.Tokens, t)
	}
	if b.Cursor < 0 {
		b.Cursor = len(b.Tokens)
	}
	return b
}

// Labels returns the wire form: token labels with the cursor marker at the
// cursor position.
func (b Buffer) Labels() []string {
	out := make([]string, 0, len(b.Tokens)+1)
	for i, t := range b.Tokens {
		if i == b.Cursor {
			out = append(out, token.Marker)
		}
		out = append(out, t.Text)
	}
	if b.Cursor >= len(b.Tokens) {
		out = append(out, token.Marker)
	}
	return out
}

// Clone returns a copy that shares no storage with b.
func (b Buffer) Clone() Buffer {
	return Buffer{
		Tokens: append([]token.Token(nil), b.Tokens...),
		Cursor: b.Cursor,
	}
}

// Empty reports whether the buffer holds no tokens.
func (b Buffer) Empty() bool { return len(b.Tokens) == 0 }

func (b Buffer) clamp() Buffer {
	if b.Cursor < 0 {
		b.Cursor = 0
	}
	if b.Cursor > len(b.Tokens) {
		b.Cursor = len(b.Tokens)
	}
	return b
}

// Apply handles one key press and returns the edited buffer. st is updated
// in place. A nil km uses the default keypad map. The empty key resets the
// buffer to a single 0. Commit keys return the buffer unchanged; see Confirm.
func Apply(buf Buffer, st *session.State, key string, km *keymap.Keymap) Buffer {
	if km == nil {
		km = keymap.Default()
	}
	b := buf.Clone().clamp()

	switch key {
	case "":
		st.ShowingAnswer = false
		return insert(Buffer{}, []string{"0"})

	case KeyDelete:
		st.ShowingAnswer = false
		return deleteAt(b)

	case KeyClear:
		st.ShowingAnswer = false
		return Buffer{}

	case KeyLeft, "Left":
		if b.Cursor > 0 {
			b.Cursor--
		}
		return b

	case KeyRight, "Right":
		if b.Cursor < len(b.Tokens) {
			b.Cursor++
		}
		return b

	case KeyEquals, KeyMemAdd, KeyMemSub:
		return b

	case KeyScientific:
		st.SetScientific(!st.UseScientific)
		return b

	case KeyFraction:
		st.SetFraction(!st.UseFraction)
		return b

	case KeyMemClear:
		st.Memory = value.Real(0)
		return b
	}

	if base, ok := session.ParseBase(key); ok && key == base.String() {
		st.SetBase(base)
		return b
	}
	if angle, ok := session.ParseAngle(key); ok && key == angle.String() {
		st.Angle = angle
		return b
	}

	st.ShowingAnswer = false
	return insert(b, km.Expand(key))
}

// IsCommit reports whether key confirms the current result. Apply leaves
// the state alone for these keys; the caller evaluates the buffer and passes
// the result to Confirm.
func IsCommit(key string) bool {
	switch key {
	case KeyEquals, KeyMemAdd, KeyMemSub:
		return true
	}
	return false
}

// Confirm commits v for a commit key. M+ and M- then add or subtract the
// new answer to memory.
func Confirm(st *session.State, key string, v value.Number) {
	if !IsCommit(key) {
		return
	}
	st.Commit(v)
	switch key {
	case KeyMemAdd:
		st.Memory = value.Number{Re: st.Memory.Re + v.Re, Im: st.Memory.Im + v.Im}
	case KeyMemSub:
		st.Memory = value.Number{Re: st.Memory.Re - v.Re, Im: st.Memory.Im - v.Im}
	}
}

// deleteAt removes the token left of the cursor, or the token right of it
// when the cursor is at the start.
func deleteAt(b Buffer) Buffer {
	switch {
	case b.Cursor > 0:
		b.Tokens = append(b.Tokens[:b.Cursor-1], b.Tokens[b.Cursor:]...)
		b.Cursor--
	case len(b.Tokens) > 0:
		b.Tokens = b.Tokens[1:]
	}
	return b
}

func insert(b Buffer, labels []string) Buffer {
	var ts []token.Token
	for _, t := range token.Seq(labels...) {
		if t.Kind != token.Cursor {
			ts = append(ts, t)
		}
	}
	out := make([]token.Token, 0, len(b.Tokens)+len(ts))
	out = append(out, b.Tokens[:b.Cursor]...)
	out = append(out, ts...)
	out = append(out, b.Tokens[b.Cursor:]...)
	return Buffer{Tokens: out, Cursor: b.Cursor + len(ts)}
}
