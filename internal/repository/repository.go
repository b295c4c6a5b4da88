// Package repository owns the in-memory course and assignment collections and
// writes them through to the storage gateway after every mutation.
//
// Repositories are not safe for concurrent use.
package repository

import (
	"errors"
	"time"

	"github.com/existflow/classtrack/internal/dates"
)

// ErrNotFound is returned when no record has the requested id
var ErrNotFound = errors.New("not found")

// Store is the persistence the repositories need
type Store interface {
	Save(key string, value any) error
	Load(key string, out any) bool
}

// IDSource hands out identifiers derived from the creation time in
// milliseconds. Two calls never return the same value, even within one
// millisecond.
type IDSource struct {
	last int64
	now  func() time.Time
}

// NewIDSource creates an IDSource reading the shared clock
func NewIDSource() *IDSource {
	return &IDSource{now: func() time.Time { return dates.Now() }}
}

// Next returns a fresh identifier
func (s *IDSource) Next() int64 {
	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}

// Observe records an identifier already in use so Next never reissues it
func (s *IDSource) Observe(id int64) {
	if id > s.last {
		s.last = id
	}
}
