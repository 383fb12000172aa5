package lite

import (
	"context"

	"github.com/ib-77/pipetag/pkg/rop"
	"github.com/ib-77/pipetag/pkg/rop/core"
	"github.com/ib-77/pipetag/pkg/rop/mass"
)

// Run executes engine over inputCh on the given number of lines.
func Run[T any](ctx context.Context, inputCh <-chan rop.Result[T],
	engine func(ctx context.Context, input rop.Result[T]) <-chan rop.Result[T],
	lines int) <-chan rop.Result[T] {
	return core.Lines[T, T](ctx, inputCh, engine, core.CancellationHandlers[T, T]{}, nil, lines)
}

// Turnout is Run for stages that change the value type.
func Turnout[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In],
	engine func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out],
	lines int) <-chan rop.Result[Out] {
	return core.Lines[In, Out](ctx, inputCh, engine, core.CancellationHandlers[In, Out]{}, nil, lines)
}

// Drain is Turnout that never loses a value on cancellation: whatever is still
// queued is emitted as a cancelled Result with its correlation.
func Drain[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In],
	engine func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out],
	lines int) <-chan rop.Result[Out] {
	return core.Lines[In, Out](ctx, inputCh, engine, core.DrainOnCancel[In, Out](), nil, lines)
}

// Validate fails values rejected by validate, keeping their correlation.
func Validate[T any](validate func(ctx context.Context, in T) (valid bool, errMsg string)) func(ctx context.Context,
	input rop.Result[T]) <-chan rop.Result[T] {
	return func(ctx context.Context, input rop.Result[T]) <-chan rop.Result[T] {
		return mass.Validating(ctx, input, validate, nil)
	}
}

// Switch runs switchOnSuccess on successful values. The Result it returns
// takes the correlation of a tagged input; after an untagged input it keeps
// its own.
func Switch[In, Out any](switchOnSuccess func(ctx context.Context, r In) rop.Result[Out]) func(ctx context.Context,
	input rop.Result[In]) <-chan rop.Result[Out] {
	return func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out] {
		return mass.Switching(ctx, input, switchOnSuccess, nil)
	}
}

func Map[In, Out any](mapOnSuccess func(ctx context.Context, r In) Out) func(ctx context.Context,
	input rop.Result[In]) <-chan rop.Result[Out] {
	return func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out] {
		return mass.Mapping(ctx, input, mapOnSuccess, nil)
	}
}

func DoubleMap[In, Out any](
	mapOnSuccess func(ctx context.Context, r In) Out,
	mapOnError func(ctx context.Context, err error) Out,
	mapOnCancel func(ctx context.Context, err error) Out) func(ctx context.Context,
	input rop.Result[In]) <-chan rop.Result[Out] {
	return func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out] {
		return mass.DoubleMapping(ctx, input, mapOnSuccess, mapOnError, mapOnCancel, nil)
	}
}

func Tee[T any](sideEffect func(ctx context.Context, r rop.Result[T])) func(ctx context.Context,
	input rop.Result[T]) <-chan rop.Result[T] {
	return func(ctx context.Context, input rop.Result[T]) <-chan rop.Result[T] {
		return mass.Teeing(ctx, input, sideEffect, nil)
	}
}

func DoubleTee[T any](sideEffect func(ctx context.Context, r T),
	sideEffectOnError func(ctx context.Context, err error),
	sideEffectOnCancel func(ctx context.Context, err error)) func(ctx context.Context,
	input rop.Result[T]) <-chan rop.Result[T] {
	return func(ctx context.Context, input rop.Result[T]) <-chan rop.Result[T] {
		return mass.DoubleTeeing(ctx, input, sideEffect, sideEffectOnError, sideEffectOnCancel, nil)
	}
}

// Try turns an error of onTryExecute into a failed Result.
func Try[In, Out any](
	onTryExecute func(ctx context.Context, r In) (Out, error)) func(ctx context.Context,
	input rop.Result[In]) <-chan rop.Result[Out] {
	return func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out] {
		return mass.Trying(ctx, input, onTryExecute, nil)
	}
}

// Finally leaves the railway: each Result becomes a plain Out and the
// correlation is dropped, so read it in an earlier stage if it is needed.
func Finally[In, Out any](ctx context.Context, input <-chan rop.Result[In],
	handlers mass.FinallyHandlers[In, Out]) <-chan Out {
	return mass.Finalizing(ctx, input, handlers, mass.FinallyCancelHandlers[In, Out]{}, nil)
}
