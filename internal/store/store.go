// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package store persists calculator sessions: one snapshot of state and
// expression per session id.
package store

import (
	"errors"

	"github.com/zetaloop/DSProject2-Calculator/internal/session"
)

// MetaLastSession is the metadata key holding the most recently saved id.
const MetaLastSession = "last_session"

// ErrEmptyID is returned when saving a snapshot without a session id.
var ErrEmptyID = errors.New("store: empty session id")

// Store is the interface for session persistence.
type Store interface {
	// Get retrieves a snapshot by session id. Returns nil if not found.
	Get(id string) (*session.Snapshot, error)
	// Put stores a snapshot, overwriting any snapshot with the same id.
	Put(snap session.Snapshot) error
	// Delete removes a snapshot by session id.
	Delete(id string) error
	// List returns the stored session ids in sorted order.
	List() ([]string, error)
	// GetMetadata retrieves a metadata value. Returns "" if unset.
	GetMetadata(key string) (string, error)
	// SetMetadata stores a metadata value.
	SetMetadata(key, value string) error
	// Close releases resources.
	Close() error
}
