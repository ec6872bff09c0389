// Package logging wraps zap behind a small surface so callers never touch
// zap configuration directly.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

// Logger is a thin wrapper over zap's sugared logger.
type Logger struct {
	*zap.SugaredLogger
}

// New builds a logger. Debug mode uses zap's development config with console
// output; otherwise the production config applies.
func New(debug bool) (*Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	base, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return &Logger{SugaredLogger: base.Sugar()}, nil
}

// Nop returns a logger that discards everything. Useful for tests and for
// commands that run without the debug flag.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}
