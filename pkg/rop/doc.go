// Package rop defines Result, the railway value that flows between pipeline
// stages, together with small error helpers.
//
// A Result is tagged with the cid.ID of the unit of work it belongs to. Stages
// in solo, mass, lite and chain never change that tag; they only replace the
// value or the outcome.
package rop
