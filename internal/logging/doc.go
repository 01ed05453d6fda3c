// Package logging provides structured logging for zhong.
//
// This package wraps Go's log/slog to emit JSON lines. Loaders use it to
// report skipped data lines, the segmenter reports tie-break decisions at
// DEBUG, and the CLI reports the data sources it opened.
//
// # Basic Usage
//
//	logger, err := logging.NewLogger("/var/log/zhong.log", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Warn("dropped line", "line", 42)
//
// An empty path logs to stderr. [NewLoggerWithWriter] sends output to any
// io.Writer, which is what tests use to inspect entries.
//
// # Context Propagation
//
// Child loggers carry persistent attributes:
//
//	segLogger := logger.WithComponent("segment").WithCharacterSet("traditional")
//	segLogger.Debug("tie-break", "rule", "average_length")
//
// Output:
//
//	{"time":"...","level":"DEBUG","msg":"tie-break","component":"segment","charset":"traditional","rule":"average_length"}
//
// # Testing
//
// Use [NopLogger] to discard all log output.
//
// # Log Levels
//
//   - [LevelDebug]: Detailed information for debugging
//   - [LevelInfo]: General operational information (default)
//   - [LevelWarn]: Skipped input and recoverable conditions
//   - [LevelError]: Error conditions that affect functionality
//
// Use [ValidLevels] to get the list of valid level strings, and [ParseLevel]
// to normalize user-provided level strings.
package logging
