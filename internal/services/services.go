// Package services holds the write paths: each operation validates its input
// against the entity's rule table and then performs one atomic store write.
package services

import (
	"errors"
	"time"

	"tienda/internal/domain"
)

// Clock returns the current time; nil means time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	t := time.Now()
	if c != nil {
		t = c()
	}
	return t.UTC().Truncate(time.Second)
}

// local is the wall clock time used for calendar boundaries.
func (c Clock) local() time.Time {
	if c != nil {
		return c()
	}
	return time.Now()
}

// storeErr reports a store-level uniqueness violation the way the validators
// report theirs.
func storeErr(err error) error {
	var ce *domain.ConflictError
	if errors.As(err, &ce) {
		return domain.ConflictAsValidation(ce)
	}
	return err
}

// parseDay reads a YYYY-MM-DD field, falling back to now.
func parseDay(s string, now time.Time) time.Time {
	if s == "" {
		return now
	}
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		return now
	}
	return d
}
