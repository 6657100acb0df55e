package utils

import (
	"github.com/pkg/errors"
)

// Error categories shared by every motion value package. Errors returned by constructors and
// lookups wrap exactly one of these so callers can branch with errors.Is.
var (
	// ErrInvariantViolation is returned when a value cannot be constructed because it would break
	// one of its structural invariants.
	ErrInvariantViolation = errors.New("invariant violation")
	// ErrNotFound is returned when a named element (usually a joint) is absent.
	ErrNotFound = errors.New("not found")
	// ErrNumericDegeneracy is returned when a computation has no well defined numeric result.
	ErrNumericDegeneracy = errors.New("numeric degeneracy")
	// ErrOutOfRange is returned for indices or factors outside their permitted range.
	ErrOutOfRange = errors.New("out of range")
	// ErrUnimplemented is returned by collaborators that do not support an operation.
	ErrUnimplemented = errors.New("unimplemented")
)

// NewInvariantError wraps ErrInvariantViolation with a formatted message.
func NewInvariantError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvariantViolation, format, args...)
}

// NewNotFoundError wraps ErrNotFound with a formatted message.
func NewNotFoundError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// NewNumericDegeneracyError wraps ErrNumericDegeneracy with a formatted message.
func NewNumericDegeneracyError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNumericDegeneracy, format, args...)
}

// NewOutOfRangeError wraps ErrOutOfRange with a formatted message.
func NewOutOfRangeError(format string, args ...interface{}) error {
	return errors.Wrapf(ErrOutOfRange, format, args...)
}

// NewIndexRangeError is used when a [start, end) range does not fit a sequence of length count.
func NewIndexRangeError(start, end, count int) error {
	return NewOutOfRangeError("range [%d, %d) invalid for sequence of length %d", start, end, count)
}

// NewUnimplementedError is used when a collaborator does not implement an operation.
func NewUnimplementedError(operation string) error {
	return errors.Wrapf(ErrUnimplemented, "%s", operation)
}
