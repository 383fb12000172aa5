package mass

import (
	"context"

	"github.com/ib-77/pipetag/pkg/rop"
	"github.com/ib-77/pipetag/pkg/rop/solo"
)

type FinallyHandlers[In, Out any] struct {
	OnSuccess func(ctx context.Context, r In) Out
	OnError   func(ctx context.Context, err error) Out
	OnCancel  func(ctx context.Context, err error) Out
}

// FinallyCancelHandlers decide what reaches the output once ctx ends.
// OnBreak converts a Result that was not finalized into an output value.
type FinallyCancelHandlers[In, Out any] struct {
	OnBreak       func(ctx context.Context, in rop.Result[In]) Out
	OnCancelValue func(ctx context.Context, in rop.Result[In],
		brokenF func(ctx context.Context, in rop.Result[In]) Out, outCh chan<- Out)
	OnCancelValues func(ctx context.Context, inputCh <-chan rop.Result[In],
		brokenF func(ctx context.Context, in rop.Result[In]) Out, outCh chan<- Out)
	OnCancelResult  func(ctx context.Context, out Out, outCh chan<- Out)
	OnCancelResults func(ctx context.Context, inputCh <-chan Out, outCh chan<- Out)
}

func (h FinallyCancelHandlers[In, Out]) breakValue(ctx context.Context, in rop.Result[In], ch chan<- Out) {
	if h.OnCancelValue != nil {
		h.OnCancelValue(ctx, in, h.OnBreak, ch)
	}
}

func (h FinallyCancelHandlers[In, Out]) breakValues(ctx context.Context, inputCh <-chan rop.Result[In], ch chan<- Out) {
	if h.OnCancelValues != nil {
		h.OnCancelValues(ctx, inputCh, h.OnBreak, ch)
	}
}

// Finalizing collapses every Result of inputCh into an Out value, in arrival order.
func Finalizing[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In],
	handlers FinallyHandlers[In, Out],
	cancelHandlers FinallyCancelHandlers[In, Out],
	onSuccessResult func(ctx context.Context, out Out)) <-chan Out {

	ch := make(chan Out)
	out := make(chan Out)

	go func() {
		defer close(ch)

		for {
			if ctx.Err() != nil {
				cancelHandlers.breakValues(ctx, inputCh, ch)
				return
			}

			select {
			case <-ctx.Done():
				cancelHandlers.breakValues(ctx, inputCh, ch)
				return
			case in, ok := <-inputCh:
				if !ok {
					return
				}

				res := solo.Finally(ctx, in, handlers.OnSuccess, handlers.OnError, handlers.OnCancel)

				select {
				case <-ctx.Done():
					cancelHandlers.breakValue(ctx, in, ch)
					cancelHandlers.breakValues(ctx, inputCh, ch)
					return
				case ch <- res:
				}
			}
		}
	}()

	go func() {
		defer close(out)

		for {
			select {
			case <-ctx.Done():
				if cancelHandlers.OnCancelResults != nil {
					cancelHandlers.OnCancelResults(ctx, ch, out)
				}
				return
			case finalized, ok := <-ch:
				if !ok {
					return
				}

				select {
				case <-ctx.Done():
					if cancelHandlers.OnCancelResult != nil {
						cancelHandlers.OnCancelResult(ctx, finalized, out)
					}
					return
				case out <- finalized:
					if onSuccessResult != nil {
						onSuccessResult(ctx, finalized)
					}
				}
			}
		}
	}()

	return out
}
