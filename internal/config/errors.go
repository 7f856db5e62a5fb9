// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrDefaultSource indicates that the bundled default settings could not be
	// read or parsed. It is always fatal.
	ErrDefaultSource = errors.New("default settings unavailable")
	// ErrLocalSource indicates that a local override file exists but could not
	// be read or parsed.
	ErrLocalSource = errors.New("local settings unreadable")
	// ErrInvalidPoolSettings indicates that MAX_POOL_SIZE and BATCH_SIZE are
	// inconsistent or not numeric.
	ErrInvalidPoolSettings = errors.New("invalid pool settings")
	// ErrCoercion is returned by [Coerce] when a raw value cannot be converted
	// to the type of the value it replaces. The raw string is kept.
	ErrCoercion = errors.New("type coercion failed")
	// ErrAlreadyInitialized is returned by [Init] when the process-wide
	// configuration has already been loaded.
	ErrAlreadyInitialized = errors.New("configuration already initialized")
	// ErrInvalidOverride indicates a malformed KEY=VALUE command-line override.
	ErrInvalidOverride = errors.New("invalid override")
)

// ValidationError describes a violated configuration invariant.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// Unwrap allows errors.Is(err, ErrInvalidPoolSettings).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidPoolSettings
}
