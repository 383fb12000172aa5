package cid

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is matched by every *RangeError.
	ErrOutOfRange = errors.New("correlation id field out of range")

	// ErrSyntax is returned when a textual ID cannot be parsed.
	ErrSyntax = errors.New("invalid correlation id syntax")
)

// Field names a sub-range of an ID.
type Field string

const (
	FieldClientID Field = "clientId"
	FieldQueryID  Field = "queryId"
	FieldShardID  Field = "shardId"
	FieldAppID    Field = "appId"
)

// RangeError reports a field value that does not fit its bit width.
//
// Value holds the rejected input in decimal form, so both negative and
// oversized inputs of any integer type are kept exactly.
// The underlying conversion error can be accessed via errors.Unwrap.
type RangeError struct {
	Field Field
	Value string
	Max   uint64
	cause error
}

func newRangeError(field Field, value any, max uint64, cause error) *RangeError {
	return &RangeError{Field: field, Value: fmt.Sprint(value), Max: max, cause: cause}
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %s out of range [0, %d]", e.Field, e.Value, e.Max)
}

func (e *RangeError) Unwrap() error { return e.cause }

func (e *RangeError) Is(target error) bool {
	return target == ErrOutOfRange
}
