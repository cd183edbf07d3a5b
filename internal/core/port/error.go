package port

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrShareTokenExhausted is returned when the share token allocator
	// could not find a free token within its attempt budget. It is fatal
	// to the enclosing request and must never result in a partially
	// published note.
	ErrShareTokenExhausted = errors.New("share token space exhausted")
)
