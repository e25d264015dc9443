package logger

import (
	"fmt"
)

type stdOut struct {
	print func(msg string)
}

var _ Logger = &stdOut{}

// NewStdOut returns a Logger writing one line per message to standard
// output, prefixed with the level.
func NewStdOut() Logger {
	return &stdOut{
		print: func(msg string) {
			fmt.Println(msg)
		},
	}
}

func (l *stdOut) Debugf(format string, args ...any) {
	l.printf("DEBUG", format, args...)
}

func (l *stdOut) Infof(format string, args ...any) {
	l.printf("INFO", format, args...)
}

func (l *stdOut) Warnf(format string, args ...any) {
	l.printf("WARN", format, args...)
}

func (l *stdOut) Errorf(format string, args ...any) {
	l.printf("ERROR", format, args...)
}

func (l *stdOut) printf(level, format string, args ...any) {
	l.print("[" + level + "] " + fmt.Sprintf(format, args...))
}
