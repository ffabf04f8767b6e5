// Package logger provides the zap logger used across tourboard.
package logger

import (
	"go.uber.org/zap"
)

// New creates a zap logger. Verbose mode uses the development config
// (human-readable, debug level); otherwise production JSON output.
func New(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
