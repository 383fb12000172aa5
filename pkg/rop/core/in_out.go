package core

import (
	"context"

	"github.com/ib-77/pipetag/pkg/cid"
	"github.com/ib-77/pipetag/pkg/rop"
)

type ToChanHandlers[T any] struct {
	OnStartFail func(ctx context.Context, input []T)
	OnSuccess   func(ctx context.Context, input T)
	OnBreak     func(ctx context.Context, rest []T)
}

// Tagged is a value paired with the correlation of its unit of work.
type Tagged[T any] struct {
	Correlation cid.ID
	Value       T
}

func ToChanFromArgs[T any](ctx context.Context, values ...T) <-chan T {
	in := make(chan T)

	go func() {
		defer close(in)

		for _, v := range values {
			if ctx.Err() != nil {
				return
			}

			select {
			case in <- v:
			case <-ctx.Done():
				return
			}
		}
	}()

	return in
}

func ToChanFromArgsResults[T any](ctx context.Context, handlers ToChanHandlers[T], values ...T) <-chan rop.Result[T] {
	tagged := make([]Tagged[T], len(values))
	for i, v := range values {
		tagged[i] = Tagged[T]{Value: v}
	}
	return toResults(ctx, handlers, tagged)
}

// ToChanTagged emits one successful Result per value, each carrying its own correlation.
func ToChanTagged[T any](ctx context.Context, values []Tagged[T]) <-chan rop.Result[T] {
	return toResults(ctx, ToChanHandlers[T]{}, values)
}

func toResults[T any](ctx context.Context, handlers ToChanHandlers[T], values []Tagged[T]) <-chan rop.Result[T] {
	in := make(chan rop.Result[T])

	plain := func(tagged []Tagged[T]) []T {
		out := make([]T, len(tagged))
		for i, t := range tagged {
			out[i] = t.Value
		}
		return out
	}

	go func() {
		defer close(in)

		if ctx.Err() != nil {
			if handlers.OnStartFail != nil {
				handlers.OnStartFail(ctx, plain(values))
			}
			return
		}

		for i, v := range values {
			select {
			case in <- rop.Tagged(v.Correlation, v.Value):
				if handlers.OnSuccess != nil {
					handlers.OnSuccess(ctx, v.Value)
				}
			case <-ctx.Done():
				if handlers.OnBreak != nil {
					handlers.OnBreak(ctx, plain(values[i:]))
				}
				return
			}
		}
	}()

	return in
}

func ToChan[T any](ctx context.Context, value T) <-chan T {
	return ToChanFromArgs[T](ctx, value)
}

func ToChanMany[T any](ctx context.Context, values []T) <-chan T {
	return ToChanFromArgs[T](ctx, values...)
}

func ToChanManyResultsWithHandlers[T any](ctx context.Context, handlers ToChanHandlers[T], values []T) <-chan rop.Result[T] {
	return ToChanFromArgsResults[T](ctx, handlers, values...)
}

func ToChanManyResults[T any](ctx context.Context, values []T) <-chan rop.Result[T] {
	return ToChanFromArgsResults[T](ctx, ToChanHandlers[T]{}, values...)
}

// FromChanFirstOrDefault returns the first value from out, or defaultV if out
// closes or ctx ends first.
func FromChanFirstOrDefault[T any](ctx context.Context, out <-chan T, defaultV T) T {
	select {
	case v, ok := <-out:
		if !ok {
			return defaultV
		}
		return v
	case <-ctx.Done():
		return defaultV
	}
}

// FromChanMany drains out until it closes or ctx ends.
func FromChanMany[T any](ctx context.Context, out <-chan T) []T {
	res := make([]T, 0)
	for {
		select {
		case v, ok := <-out:
			if !ok {
				return res
			}
			res = append(res, v)
		case <-ctx.Done():
			return res
		}
	}
}
