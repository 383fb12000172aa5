// Package mass implements channel-based building blocks that lift solo
// primitives and provide orchestration (validation, mapping, try, finalizing)
// with more control over cancellation.
//
// Each lifted operation emits at most one Result and keeps the correlation of
// its input. It is typically used by lite to compose concurrent pipelines.
package mass
