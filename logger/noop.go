package logger

// Noop discards all log messages. It is the default Logger of a debouncer.
type Noop struct{}

var _ Logger = Noop{}

func (Noop) Debugf(string, ...any) {}

func (Noop) Infof(string, ...any) {}

func (Noop) Warnf(string, ...any) {}

func (Noop) Errorf(string, ...any) {}
