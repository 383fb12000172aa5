package core

import "context"

type OptionKey string

const (
	ProcessOptionKey OptionKey = "process_options"
	WorkerOptionKey  OptionKey = "worker_options"
)

type MaxLimitOption struct {
	Value int
}

type WorkerOptions struct {
	MaxCount MaxLimitOption
}

// ProcessOptions controls what happens to in-flight values on cancellation.
// With ProcessRemaining set, values still queued are drained as cancelled
// Results instead of being dropped.
type ProcessOptions struct {
	ProcessRemaining bool
}

func WithProcessOptions(ctx context.Context, processRemaining bool) context.Context {
	return context.WithValue(ctx, ProcessOptionKey, ProcessOptions{ProcessRemaining: processRemaining})
}

func WithWorkerOptions(ctx context.Context, maxWorkers int) context.Context {
	return context.WithValue(ctx, WorkerOptionKey, WorkerOptions{MaxLimitOption{Value: maxWorkers}})
}

// GetWorkerMaxCount returns the worker count stored in ctx, or defaultMaxWorkers
// if none or a non-positive count was stored.
func GetWorkerMaxCount(ctx context.Context, defaultMaxWorkers int) int {
	if options, ok := ctx.Value(WorkerOptionKey).(WorkerOptions); ok && options.MaxCount.Value > 0 {
		return options.MaxCount.Value
	}
	return defaultMaxWorkers
}

func IsProcessRemainingEnabled(ctx context.Context, defaultProcessRemaining bool) bool {
	if options, ok := ctx.Value(ProcessOptionKey).(ProcessOptions); ok {
		return options.ProcessRemaining
	}
	return defaultProcessRemaining
}
