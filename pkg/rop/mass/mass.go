package mass

import (
	"context"

	"github.com/ib-77/pipetag/pkg/rop"
	"github.com/ib-77/pipetag/pkg/rop/solo"
)

// lift runs step in its own goroutine and returns a channel with its single
// Result. If ctx ends first the channel closes empty and onCancel receives the
// input instead.
func lift[In, Out any](ctx context.Context, input rop.Result[In],
	step func() rop.Result[Out],
	onCancel func(ctx context.Context, in rop.Result[In])) <-chan rop.Result[Out] {

	ch := make(chan rop.Result[Out], 1)
	out := make(chan rop.Result[Out])

	go func() {
		defer close(ch)

		if ctx.Err() == nil {
			ch <- step()
		}
	}()

	go func() {
		defer close(out)

		select {
		case pr, ok := <-ch:
			if !ok {
				if onCancel != nil {
					onCancel(ctx, input)
				}
				return
			}

			select {
			case out <- pr:
			case <-ctx.Done():
				if onCancel != nil {
					onCancel(ctx, input)
				}
			}
		case <-ctx.Done():
			if onCancel != nil {
				onCancel(ctx, input)
			}
		}
	}()

	return out
}

// Validating validates a successful input; failed and cancelled inputs pass through.
func Validating[T any](ctx context.Context, input rop.Result[T],
	validate func(ctx context.Context, in T) (valid bool, errMsg string),
	onCancel func(ctx context.Context, in rop.Result[T])) <-chan rop.Result[T] {

	return lift(ctx, input, func() rop.Result[T] {
		return solo.AndValidate(ctx, input, validate)
	}, onCancel)
}

func Switching[In, Out any](ctx context.Context, input rop.Result[In],
	switchOnSuccess func(ctx context.Context, r In) rop.Result[Out],
	onCancel func(ctx context.Context, in rop.Result[In])) <-chan rop.Result[Out] {

	return lift(ctx, input, func() rop.Result[Out] {
		return solo.Switch(ctx, input, switchOnSuccess)
	}, onCancel)
}

func Mapping[In, Out any](ctx context.Context, input rop.Result[In],
	mapOnSuccess func(ctx context.Context, r In) Out,
	onCancel func(ctx context.Context, in rop.Result[In])) <-chan rop.Result[Out] {

	return lift(ctx, input, func() rop.Result[Out] {
		return solo.Map(ctx, input, mapOnSuccess)
	}, onCancel)
}

func DoubleMapping[In, Out any](ctx context.Context, input rop.Result[In],
	mapOnSuccess func(ctx context.Context, r In) Out,
	mapOnError func(ctx context.Context, err error) Out,
	mapOnCancel func(ctx context.Context, err error) Out,
	onCancel func(ctx context.Context, in rop.Result[In])) <-chan rop.Result[Out] {

	return lift(ctx, input, func() rop.Result[Out] {
		return solo.DoubleMap(ctx, input, mapOnSuccess, mapOnError, mapOnCancel)
	}, onCancel)
}

func Teeing[T any](ctx context.Context, input rop.Result[T],
	sideEffect func(ctx context.Context, r rop.Result[T]),
	onCancel func(ctx context.Context, in rop.Result[T])) <-chan rop.Result[T] {

	return lift(ctx, input, func() rop.Result[T] {
		return solo.Tee(ctx, input, sideEffect)
	}, onCancel)
}

func DoubleTeeing[T any](ctx context.Context, input rop.Result[T],
	sideEffect func(ctx context.Context, r T),
	sideEffectOnError func(ctx context.Context, err error),
	sideEffectOnCancel func(ctx context.Context, err error),
	onCancel func(ctx context.Context, in rop.Result[T])) <-chan rop.Result[T] {

	return lift(ctx, input, func() rop.Result[T] {
		return solo.DoubleTee(ctx, input, sideEffect, sideEffectOnError, sideEffectOnCancel)
	}, onCancel)
}

func Trying[In, Out any](ctx context.Context, input rop.Result[In],
	onTryExecute func(ctx context.Context, r In) (Out, error),
	onCancel func(ctx context.Context, in rop.Result[In])) <-chan rop.Result[Out] {

	return lift(ctx, input, func() rop.Result[Out] {
		return solo.Try(ctx, input, onTryExecute)
	}, onCancel)
}
