// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner splits typed text into calculator key labels, so that
// "2sin(30)+4!" produces the same labels as pressing those keys.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/zetaloop/DSProject2-Calculator/internal/token"
)

// words are the multi-letter labels recognised inside a run of letters.
var words = func() []string {
	w := []string{
		token.Sin, token.Cos, token.Tan,
		token.Arcsin, token.Arccos, token.Arctan,
		token.Abs, token.Sqrt, token.Cbrt, token.Log, token.Ln, token.Int,
		token.Mod, token.Perm, token.Comb,
		token.Ans, token.Memory, token.Random,
		token.Euler, token.Imaginary,
		"pi", "Mod",
	}
	// Longest first so a greedy prefix match prefers "int" over "i".
	sort.SliceStable(w, func(i, j int) bool { return len(w[i]) > len(w[j]) })
	return w
}()

// symbols maps single runes that are not plain ASCII operators.
var symbols = map[rune]string{
	'π': token.Pi,
	'×': token.Mul,
	'÷': token.Div,
	'−': token.Sub,
	'√': token.Sqrt,
	'∛': token.Cbrt,
}

// aliases maps typed spellings, including keypad labels, to token labels.
var aliases = map[string]string{
	"pi":  token.Pi,
	"Mod": token.Mod,
}

// Scanner reads key labels rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	queue  []*Item
	col    int // runes consumed so far
}

// Item is one scanned key label.
type Item struct {
	Label string
	Col   int // 0-based rune offset where the label started
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{reader: bufio.NewReader(r)}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Labels scans all of text. Bytes that are not valid UTF-8 are rejected.
func Labels(text string) ([]string, error) {
	s := NewFromString(text)
	var out []string
	for {
		item, err := s.Next()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
		if item.Label == string(utf8.RuneError) {
			return nil, fmt.Errorf("invalid UTF-8 at column %d", item.Col)
		}
		out = append(out, item.Label)
	}
}

// Next returns the next label, or io.EOF once the input is exhausted.
func (s *Scanner) Next() (*Item, error) {
	if len(s.queue) > 0 {
		item := s.queue[0]
		s.queue = s.queue[1:]
		return item, nil
	}

	for {
		r, err := s.read()
		if err != nil {
			return nil, err
		}
		if unicode.IsSpace(r) {
			continue
		}
		start := s.col - 1

		if label, ok := symbols[r]; ok {
			return &Item{Label: label, Col: start}, nil
		}
		if isLetter(r) {
			word, err := s.letters(r)
			if err != nil {
				return nil, err
			}
			s.queue = split(word, start)
			return s.Next()
		}
		// Digits, the point and ASCII operators are one key each.
		return &Item{Label: string(r), Col: start}, nil
	}
}

func (s *Scanner) read() (rune, error) {
	r, _, err := s.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	s.col++
	return r, nil
}

func (s *Scanner) unread() {
	if s.reader.UnreadRune() == nil {
		s.col--
	}
}

// letters reads a run of letters starting with first.
func (s *Scanner) letters(first rune) (string, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		r, err := s.read()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if !isLetter(r) {
			s.unread()
			return sb.String(), nil
		}
		sb.WriteRune(r)
	}
}

func isLetter(r rune) bool {
	_, sym := symbols[r]
	return unicode.IsLetter(r) && !sym
}

// split breaks a letter run into labels by greedy longest-prefix match. An
// unmatched remainder is kept whole so it surfaces as an unknown symbol.
func split(word string, col int) []*Item {
	var out []*Item
	for word != "" {
		match := ""
		for _, w := range words {
			if strings.HasPrefix(word, w) {
				match = w
				break
			}
		}
		if match == "" {
			return append(out, &Item{Label: word, Col: col})
		}
		label := match
		if a, ok := aliases[match]; ok {
			label = a
		}
		out = append(out, &Item{Label: label, Col: col})
		col += len([]rune(match))
		word = word[len(match):]
	}
	return out
}
