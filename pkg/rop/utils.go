package rop

import (
	"context"
	"errors"
	"reflect"
)

func IsNil(i interface{}) bool {
	if i == nil {
		return true
	}
	v := reflect.ValueOf(i)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// GetErrors flattens an errors.Join tree one level deep.
func GetErrors(err error) []error {
	if IsNil(err) {
		return []error{}
	}

	if e, ok := err.(interface{ Unwrap() []error }); ok {
		return e.Unwrap()
	}

	return []error{err}
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// Outcome names the track a Result is on: "success", "failure", "cancel" or "empty".
func Outcome[T any](r Result[T]) string {
	switch {
	case r.IsSuccess():
		return "success"
	case r.IsCancel():
		return "cancel"
	case r.IsFailure():
		return "failure"
	default:
		return "empty"
	}
}
