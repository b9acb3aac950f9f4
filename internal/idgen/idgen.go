// Package idgen wraps the UUID generator behind a stubbable function so
// tests can produce deterministic identifiers. Callers must treat the
// returned values as opaque strings.
package idgen

import "github.com/google/uuid"

// NewFunc produces identifiers. Override in tests for determinism.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new globally unique identifier.
func New() string { return NewFunc() }
