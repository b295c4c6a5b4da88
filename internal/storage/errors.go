package storage

import (
	"errors"
	"fmt"
)

// Sentinels matched by errors.Is against any *Error of the same kind
var (
	ErrFull        = errors.New("storage full")
	ErrUnavailable = errors.New("storage unavailable")
)

// Kind classifies a write failure
type Kind int

const (
	KindOther Kind = iota
	KindQuotaExceeded
	KindUnavailable
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindQuotaExceeded:
		return "QuotaExceeded"
	case KindUnavailable:
		return "Unavailable"
	default:
		return "Other"
	}
}

// Error is a failed write to the persistent store
type Error struct {
	Kind Kind
	Key  string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindQuotaExceeded:
		return "storage quota exceeded, please delete old data"
	case KindUnavailable:
		return fmt.Sprintf("storage is disabled or unavailable: %v", e.Err)
	default:
		return fmt.Sprintf("failed to write %s: %v", e.Key, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind sentinels
func (e *Error) Is(target error) bool {
	switch target {
	case ErrFull:
		return e.Kind == KindQuotaExceeded
	case ErrUnavailable:
		return e.Kind == KindUnavailable
	}
	return false
}

// classify wraps a backend error. Backends tag their native errors with
// ErrFull or ErrUnavailable; anything else is KindOther.
func classify(key string, err error) error {
	kind := KindOther
	switch {
	case errors.Is(err, ErrFull):
		kind = KindQuotaExceeded
	case errors.Is(err, ErrUnavailable):
		kind = KindUnavailable
	}
	return &Error{Kind: kind, Key: key, Err: err}
}
