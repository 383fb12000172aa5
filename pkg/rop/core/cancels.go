package core

import (
	"context"
	"errors"

	"github.com/ib-77/pipetag/pkg/rop"
)

var ErrCancelled = errors.New("operation cancelled")

// CancelRemainingResults drains inputCh, pushing each value to outCh as a
// cancelled Result with its correlation kept. It does nothing unless remaining
// processing is enabled in ctx (enabled by default).
func CancelRemainingResults[In, Out any](ctx context.Context,
	inputCh <-chan rop.Result[In], outCh chan<- rop.Result[Out]) {

	if !IsProcessRemainingEnabled(ctx, true) {
		return
	}

	for in := range inputCh {
		outCh <- cancelled[In, Out](in)
	}
}

// CancelRemainingResult pushes a single unprocessed value as cancelled.
func CancelRemainingResult[In, Out any](ctx context.Context, in rop.Result[In],
	outCh chan<- rop.Result[Out]) {

	if IsProcessRemainingEnabled(ctx, true) {
		outCh <- cancelled[In, Out](in)
	}
}

// KeepProcessedResult pushes a value that finished processing after ctx ended.
func KeepProcessedResult[In, Out any](ctx context.Context, _ rop.Result[In], processed rop.Result[Out],
	outCh chan<- rop.Result[Out]) {

	if IsProcessRemainingEnabled(ctx, true) {
		outCh <- processed
	}
}

// DrainOnCancel returns handlers that account for every value on cancellation:
// processed values are kept and everything else is emitted as cancelled.
func DrainOnCancel[In, Out any]() CancellationHandlers[In, Out] {
	return CancellationHandlers[In, Out]{
		OnCancel:            CancelRemainingResults[In, Out],
		OnCancelUnprocessed: CancelRemainingResult[In, Out],
		OnCancelProcessed:   KeepProcessedResult[In, Out],
	}
}

func cancelled[In, Out any](in rop.Result[In]) rop.Result[Out] {
	if in.IsCancel() {
		return rop.CancelFrom[In, Out](in)
	}
	return rop.Carry(in, rop.Cancel[Out](ErrCancelled))
}
