// Package lite provides lightweight channel-lifted helpers that wrap solo
// primitives for concurrent pipelines. It is designed for simple fan-out/fan-in
// flows.
//
// Common usage:
// - Run: execute an engine over an input channel with a fixed number of lines
// - Turnout: compose stages that change the value type
// - Drain: like Turnout, but queued values are emitted as cancelled on cancellation
// - Validate/Try/Switch/Map/DoubleMap/Tee/DoubleTee: lift solo operations over channels
// - Finally: map Result[In] to Out on completion
//
// Results keep their correlation across every stage, whatever line ran them.
package lite
