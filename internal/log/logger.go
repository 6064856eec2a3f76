package log

import (
	"fmt"
	"io"
)

// Logger writes verbose diagnostic messages when Enabled is true.
// Output goes to the configured writer (typically stderr). A prefix
// names the component, e.g. "plugins.changelog-entry".
type Logger struct {
	Enabled bool
	Prefix  string
	W       io.Writer
}

// Printf writes a formatted message to W when Enabled is true.
// It is a no-op when Enabled is false.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Enabled {
		return
	}
	if l.Prefix != "" {
		format = l.Prefix + ": " + format
	}
	_, _ = fmt.Fprintf(l.W, format+"\n", args...)
}

// Sub returns a logger sharing the writer and enablement with an
// extended prefix.
func (l *Logger) Sub(prefix string) *Logger {
	if l == nil {
		return nil
	}
	p := prefix
	if l.Prefix != "" {
		p = l.Prefix + "." + prefix
	}
	return &Logger{Enabled: l.Enabled, Prefix: p, W: l.W}
}
