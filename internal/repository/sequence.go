// Package repository implements the in-memory stores for films and users.
package repository

import "sync/atomic"

// Sequence hands out strictly increasing identifiers starting at 1.
// It is safe for concurrent use and never reuses a value.
type Sequence struct {
	last atomic.Int64
}

// NewSequence returns a sequence whose first Next call yields 1.
func NewSequence() *Sequence {
	return &Sequence{}
}

// Next returns the next identifier.
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}
