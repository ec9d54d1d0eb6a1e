// Package observability provides the logging, metrics and tracing hooks used
// by the Logics evaluator.
//
// Logging goes through log/slog; metrics and traces go through the global
// OpenTelemetry providers. Every hook has a no-op form, and the log helpers
// accept a nil logger.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger returns a logger that tags every record with run_id and
// program.
//
//	logger := EnrichLogger(base, "run-123", "discount")
//	logger.Info("evaluating") // includes run_id, program
func EnrichLogger(logger *slog.Logger, runID, program string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("run_id", runID),
		slog.String("program", program),
	)
}

// LogRunStart logs the start of an evaluation.
// The logger is expected to carry run_id from EnrichLogger.
func LogRunStart(logger *slog.Logger) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation starting")
}

// LogRunComplete logs a finished evaluation and the number of nodes it
// visited.
func LogRunComplete(logger *slog.Logger, duration time.Duration, nodes int) {
	if logger == nil {
		return
	}
	logger.Debug("evaluation completed",
		slog.Float64("duration_ms", milliseconds(duration)),
		slog.Int("nodes_visited", nodes),
	)
}

// LogRunError logs a failed evaluation.
func LogRunError(logger *slog.Logger, err error, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Error("evaluation failed",
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", milliseconds(duration)),
	)
}

// LogTruncated logs a comprehension that stopped at its iteration limit.
func LogTruncated(logger *slog.Logger, variable string, limit int) {
	if logger == nil {
		return
	}
	logger.Warn("comprehension truncated",
		slog.String("variable", variable),
		slog.Int("limit", limit),
	)
}

// LogCallError logs a function call that returned an error.
func LogCallError(logger *slog.Logger, name string, err error) {
	if logger == nil {
		return
	}
	logger.Error("function call failed",
		slog.String("function", name),
		slog.String("error", err.Error()),
	)
}

// TimedOperation returns a function reporting the time elapsed since
// TimedOperation was called.
//
//	done := TimedOperation()
//	// ... evaluate ...
//	duration := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
