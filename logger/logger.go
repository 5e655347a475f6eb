package logger

import (
	"fmt"
	"io"
	"log"
)

// Logger is a component-scoped logger. Each subsystem constructs its own
// with a uuid so interleaved output from concurrent components can be told
// apart in one stream.
type Logger struct {
	component string
	id        string
	out       *log.Logger
}

func NewLogger(component, id string) *Logger {
	return &Logger{
		component: component,
		id:        shortID(id),
		out:       log.New(logDestination(), "", log.LstdFlags),
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (l *Logger) Info(msg string)  { l.write("INFO", msg) }
func (l *Logger) Warn(msg string)  { l.write("WARN", msg) }
func (l *Logger) Error(msg string) { l.write("ERROR", msg) }
func (l *Logger) Debug(msg string) { l.write("DEBUG", msg) }

func (l *Logger) Infof(format string, args ...any)  { l.Info(fmt.Sprintf(format, args...)) }
func (l *Logger) Warnf(format string, args ...any)  { l.Warn(fmt.Sprintf(format, args...)) }
func (l *Logger) Errorf(format string, args ...any) { l.Error(fmt.Sprintf(format, args...)) }

func (l *Logger) write(level, msg string) {
	l.out.Printf("[%s] %s (%s): %s", level, l.component, l.id, msg)
}

// SetOutput redirects this logger's output. Mainly used for testing.
func (l *Logger) SetOutput(w io.Writer) {
	l.out.SetOutput(w)
}
