package core

import (
	"context"
	"sync"

	"github.com/ib-77/pipetag/pkg/rop"
)

// Engine processes one Result and emits at most one Result.
type Engine[In, Out any] func(ctx context.Context, input rop.Result[In]) <-chan rop.Result[Out]

type CancellationHandlers[In, Out any] struct {
	OnCancel            func(ctx context.Context, inputCh <-chan rop.Result[In], outCh chan<- rop.Result[Out])
	OnCancelUnprocessed func(ctx context.Context, unprocessed rop.Result[In], outCh chan<- rop.Result[Out])
	OnCancelProcessed   func(ctx context.Context, in rop.Result[In], processed rop.Result[Out], outCh chan<- rop.Result[Out])
}

func (h CancellationHandlers[In, Out]) cancel(ctx context.Context, inputCh <-chan rop.Result[In], outCh chan<- rop.Result[Out]) {
	if h.OnCancel != nil {
		h.OnCancel(ctx, inputCh, outCh)
	}
}

// Locomotive is one line of a stage: it pulls Results from inputCh, runs the
// engine on each and pushes the outcome to outCh until inputCh closes or ctx
// ends. The caller owns wg and outCh.
func Locomotive[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In], outCh chan<- rop.Result[Out],
	engine Engine[In, Out],
	handlers CancellationHandlers[In, Out],
	onSuccess func(ctx context.Context, in rop.Result[Out]), wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			handlers.cancel(ctx, inputCh, outCh)
			return
		case in, ok := <-inputCh:
			if !ok {
				return
			}

			select {
			case <-ctx.Done():
				if handlers.OnCancelUnprocessed != nil {
					handlers.OnCancelUnprocessed(ctx, in, outCh)
				}
				handlers.cancel(ctx, inputCh, outCh)
				return
			case pr, running := <-engine(ctx, in):
				if !running {
					return
				}

				select {
				case <-ctx.Done():
					// pr is handed to OnCancelProcessed only, never sent twice
					if handlers.OnCancelProcessed != nil {
						handlers.OnCancelProcessed(ctx, in, pr, outCh)
					}
					handlers.cancel(ctx, inputCh, outCh)
					return
				case outCh <- pr:
					if onSuccess != nil {
						onSuccess(ctx, pr)
					}
				}
			}
		}
	}
}

// Lines starts n locomotives sharing inputCh and returns their merged output.
// The output closes when every line has stopped.
func Lines[In, Out any](ctx context.Context, inputCh <-chan rop.Result[In],
	engine Engine[In, Out],
	handlers CancellationHandlers[In, Out],
	onSuccess func(ctx context.Context, in rop.Result[Out]), n int) <-chan rop.Result[Out] {

	out := make(chan rop.Result[Out])
	wg := &sync.WaitGroup{}

	for range max(n, 1) {
		wg.Add(1)
		go Locomotive(ctx, inputCh, out, engine, handlers, onSuccess, wg)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
