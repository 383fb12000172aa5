package stage

import (
	"context"

	"go.uber.org/zap"

	"github.com/ib-77/pipetag/internal/log"
	"github.com/ib-77/pipetag/pkg/rop"
)

// Inspect logs every passing Result, whatever its outcome, with its decoded
// correlation. Results are forwarded unchanged.
func Inspect[T any](logger log.Logger, msg string) func(ctx context.Context, input rop.Result[T]) <-chan rop.Result[T] {
	return func(ctx context.Context, input rop.Result[T]) <-chan rop.Result[T] {
		out := make(chan rop.Result[T], 1)
		defer close(out)

		l := logger.With(log.Correlation(input.Correlation()), zap.String("outcome", rop.Outcome(input)))
		if input.Err() != nil {
			l.Warnf("%s: %s", msg, input.Err())
		} else {
			l.Debugf("%s", msg)
		}

		out <- input
		return out
	}
}
