// Package chain provides a fluent wrapper around Result[T]
// for building synchronous Railway-Oriented chains using solo primitives.
//
// A chain started with Tagged keeps its correlation on every step, whatever
// the value type becomes, so the final Result still tells which client,
// query, shard and application the work belonged to.
//
// Key operations:
// - Start/FromValue/Tagged: begin a chain from a Result[T] or value
// - Validate: fail the chain when a predicate rejects the value
// - Then: switch to a new Result[U] via a function
// - ThenTry: call a function (U, error) and convert error to failure
// - Map: transform the successful value (T -> U)
// - Ensure: run side effects on success without changing the result
// - Finally: collapse the chain into a final value via handlers
package chain
