package utils

import (
	"time"

	"github.com/rs/zerolog"
)

// OperationTimer returns a defer-friendly stop function that logs the
// elapsed time since the call, with a warning if it exceeds 30s.
//
// Usage:
//
//	defer utils.OperationTimer("cycle", log)()
func OperationTimer(operation string, log zerolog.Logger) func() {
	start := time.Now()

	return func() {
		duration := time.Since(start)

		log.Debug().
			Str("operation", operation).
			Dur("duration_ms", duration).
			Msg("operation completed")

		if duration > 30*time.Second {
			log.Warn().
				Str("operation", operation).
				Dur("duration", duration).
				Msg("slow operation detected")
		}
	}
}
