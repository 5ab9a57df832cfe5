package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrNoAdministrators = errors.New("no administrators available")

// FieldErrors maps a field name to the messages raised against it.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Has(field string) bool { return len(fe[field]) > 0 }

// First returns the first message for field, or "".
func (fe FieldErrors) First(field string) string {
	if msgs := fe[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Flatten lists every message, ordered by field name.
func (fe FieldErrors) Flatten() []string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var out []string
	for _, k := range keys {
		out = append(out, fe[k]...)
	}
	return out
}

type ConflictError struct {
	Entity Entity
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
}

// ValidationError carries every field failure of a submission. Conflicts found
// while validating are reachable through errors.As.
type ValidationError struct {
	Fields    FieldErrors
	Conflicts []*ConflictError
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		fields = append(fields, k)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

func (e *ValidationError) Unwrap() []error {
	out := make([]error, len(e.Conflicts))
	for i, c := range e.Conflicts {
		out[i] = c
	}
	return out
}

// FieldError builds a single-field ValidationError.
func FieldError(field, msg string) *ValidationError {
	return &ValidationError{Fields: FieldErrors{field: {msg}}}
}

// ConflictAsValidation reports a store-level uniqueness violation the same way
// the validators report it.
func ConflictAsValidation(c *ConflictError) *ValidationError {
	return &ValidationError{
		Fields:    FieldErrors{c.Field: {fmt.Sprintf("%q is already registered.", c.Value)}},
		Conflicts: []*ConflictError{c},
	}
}

type NotFoundError struct {
	Entity Entity
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

type DependencyBlockedError struct {
	Entity    Entity
	ID        int64
	Dependent Entity
	Count     int
}

func (e *DependencyBlockedError) Error() string {
	return fmt.Sprintf("cannot delete %s %d: %d %s record(s) still reference it", e.Entity, e.ID, e.Count, e.Dependent)
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
