// Package backend manages the rendering backends tiles are produced
// by: a registry populated from backend package init() functions, and
// a Selector that picks a backend by preference with automatic
// fallback.
package backend

import "errors"

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when no registered backend
	// can be initialized.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when rendering operations are
	// called before Initialize succeeded.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend name constants.
const (
	// Software is the name of the portable CPU backend.
	Software = "software"
	// Native is the name of the optional high-performance companion
	// backend.
	Native = "native"
)
