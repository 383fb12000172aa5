// Package log provides the structured logger used across the module, backed by zap.
package log
