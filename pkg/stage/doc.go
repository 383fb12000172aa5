// Package stage holds pipeline stages that understand correlation ids.
//
// Ingress is where a unit of work gets its correlation: the four routing
// fields are packed once and the payload travels tagged from then on. An
// out-of-range field never reaches the pipeline as a clamped id, it becomes
// a failed Result carrying the *cid.RangeError.
//
// Inspect decodes the correlation on demand for diagnostics.
package stage
