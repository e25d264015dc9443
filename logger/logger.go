// Package logger defines the logging interface used by debouncers.
//
// Debouncers log their edge decisions (leading, trailing, maxWait flushes,
// timer re-arms) at debug level, and failures of timer driven invocations,
// which have no caller to return an error to, at error level. Plug in any
// logging library by implementing Logger, or use Noop to discard everything.
//
//	d, err := debounce.NewDebouncer(100*time.Millisecond, fn,
//		debounce.WithLogger(logger.NewStdOut()),
//	)
package logger

// Logger is a leveled, printf-style logger.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
