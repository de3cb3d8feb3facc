package logger

import (
	"log"

	"go.uber.org/zap"
)

// L is the application logger. It defaults to a no-op logger so that
// packages can log during tests without calling Init first.
var L = zap.NewNop()

// Init replaces the global logger with a production zap logger.
func Init() {
	l, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	L = l
}

// Err wraps an error as a zap field. Shorthand for zap.Error.
func Err(err error) zap.Field {
	return zap.Error(err)
}
