// Package logging provides structured logging for the Gray Logic device layer.
//
// This package wraps Go's standard log/slog package to provide
// consistent, structured logging across bring-up, the timer tasks and
// the event path.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Configuration
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr, discard
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("bring-up step complete", "step", "storage")
//	logger.Error("failed to read counter", "error", err)
//
// Never log key material or raw entropy.
package logging
