// Package core contains pipeline plumbing utilities: channel sources and
// sinks, worker configuration via context, cancellation handlers and the
// locomotive that drives stages. It does not define business logic; instead it
// provides the scaffolding for packages like lite and mass to run pipelines
// with controlled concurrency.
//
// Sources built with ToChanTagged emit Results that already carry the
// correlation of their unit of work.
package core
