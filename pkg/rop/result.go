package rop

import (
	"time"

	"github.com/google/uuid"

	"github.com/ib-77/pipetag/pkg/cid"
)

// Result is the railway value passed between stages.
//
// Besides the outcome it carries two identities: a trace id unique to this
// Result, and the correlation id of the unit of work it belongs to. The
// correlation is copied unchanged from input to output by every stage.
type Result[T any] struct {
	id          uuid.UUID
	correlation cid.ID
	createdAt   time.Time
	result      T
	err         error
	isSuccess   bool
	isCancel    bool
	hasResult   bool
}

func Success[T any](r T) Result[T] {
	return Result[T]{
		result:    r,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		hasResult: true,
		id:        uuid.New(),
	}
}

func Fail[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func Cancel[T any](err error) Result[T] {
	return Result[T]{
		err:       err,
		isCancel:  true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Tagged builds a successful Result that belongs to the given unit of work.
func Tagged[T any](correlation cid.ID, r T) Result[T] {
	return Tag(correlation, Success(r))
}

// Tag returns a copy of r carrying the given correlation.
func Tag[T any](correlation cid.ID, r Result[T]) Result[T] {
	r.correlation = correlation
	return r
}

// Carry copies the correlation of from onto to. An untagged from leaves the
// correlation of to as it is, so a stage may tag work that arrived untagged.
func Carry[In, Out any](from Result[In], to Result[Out]) Result[Out] {
	if !from.correlation.IsZero() {
		to.correlation = from.correlation
	}
	return to
}

// CancelFrom converts a failed or cancelled Result to another value type,
// keeping its error, flags, timestamps and identities.
func CancelFrom[In, Out any](from Result[In]) Result[Out] {
	return Result[Out]{
		err:         from.err,
		isSuccess:   from.isSuccess,
		isCancel:    from.isCancel,
		createdAt:   from.createdAt,
		id:          from.id,
		correlation: from.correlation,
	}
}

func (r Result[T]) Result() T {
	return r.result
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsSuccess() bool {
	return r.isSuccess
}

// IsFailure reports a failed Result. Cancelled results are not failures.
func (r Result[T]) IsFailure() bool {
	return !r.isSuccess && !r.isCancel && r.err != nil
}

func (r Result[T]) IsCancel() bool {
	return r.isCancel
}

func (r Result[T]) HasResult() bool {
	return r.hasResult
}

func (r Result[T]) CreatedAt() time.Time {
	return r.createdAt
}

func (r Result[T]) IsEmpty() bool {
	return r.err == nil && !r.isCancel && !r.isSuccess
}

func (r Result[T]) Id() uuid.UUID {
	return r.id
}

// Correlation returns the correlation id of the unit of work. It is zero for
// results that were never tagged.
func (r Result[T]) Correlation() cid.ID {
	return r.correlation
}
