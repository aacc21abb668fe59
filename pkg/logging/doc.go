// Package logging builds the structured loggers used across roster.
//
// It wraps log/slog so the CLI and the TUI configure logging the same way:
//
//	logger, closeLog, err := logging.Open(logging.Config{
//	    Level:  logging.ParseLevel(cfg.LogLevel),
//	    Format: logging.ParseFormat(cfg.LogFormat),
//	}, cfg.LogFile)
//	defer closeLog()
//
// While the TUI owns the terminal, logs must not reach stderr; Open with an
// empty path and a nil Output yields a logger that discards everything.
//
// Components accept a *slog.Logger. If none is provided, use logging.Nop().
package logging
