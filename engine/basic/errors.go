package basic

import "github.com/juju/errors"

// Index page errors. The engine reports every failure as one of these
// values; callers translate them into absent/overflow semantics.
var (
	ErrOutOfRange   = errors.New("position out of range")
	ErrNotFound     = errors.New("key not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrArrayFull    = errors.New("array full")
)
