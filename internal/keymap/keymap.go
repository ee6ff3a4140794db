// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package keymap expands composite keypad keys into the labels they insert.
package keymap

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed keymap.yaml
var defaultYAML []byte

// Keymap maps a key to its expansion. Keys without an entry insert
// themselves.
type Keymap struct {
	entries map[string][]string
}

var defaultKeymap = mustParse(defaultYAML)

// Default returns the built-in keypad map.
func Default() *Keymap {
	return defaultKeymap
}

// Parse decodes a YAML mapping of key to label list.
func Parse(data []byte) (*Keymap, error) {
	entries := make(map[string][]string)
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse keymap: %w", err)
	}
	for key, labels := range entries {
		if key == "" {
			return nil, fmt.Errorf("parse keymap: empty key")
		}
		if len(labels) == 0 {
			return nil, fmt.Errorf("parse keymap: key %q expands to nothing", key)
		}
	}
	return &Keymap{entries: entries}, nil
}

func mustParse(data []byte) *Keymap {
	km, err := Parse(data)
	if err != nil {
		panic(err)
	}
	return km
}

// With returns a copy of k with overrides applied. An override with an empty
// expansion removes the key.
func (k *Keymap) With(overrides map[string][]string) *Keymap {
	entries := make(map[string][]string, len(k.entries)+len(overrides))
	for key, labels := range k.entries {
		entries[key] = labels
	}
	for key, labels := range overrides {
		if len(labels) == 0 {
			delete(entries, key)
			continue
		}
		entries[key] = append([]string(nil), labels...)
	}
	return &Keymap{entries: entries}
}

// Expand returns the labels key inserts.
func (k *Keymap) Expand(key string) []string {
	if labels, ok := k.entries[key]; ok {
		return append([]string(nil), labels...)
	}
	return []string{key}
}

// Lookup returns the expansion of key and whether it is mapped.
func (k *Keymap) Lookup(key string) ([]string, bool) {
	labels, ok := k.entries[key]
	if !ok {
		return nil, false
	}
	return append([]string(nil), labels...), true
}

// Keys returns the mapped keys in sorted order.
func (k *Keymap) Keys() []string {
	keys := make([]string, 0, len(k.entries))
	for key := range k.entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// MarshalYAML encodes the mapping in the same form Parse reads.
func (k *Keymap) MarshalYAML() (interface{}, error) {
	return k.entries, nil
}
