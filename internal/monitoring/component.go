package monitoring

import "fmt"

// Color is an ANSI foreground colour used to tag a component's log lines.
type Color int

const (
	NoColor Color = 0
	Red     Color = 31
	Green   Color = 32
	Yellow  Color = 33
	Blue    Color = 34
	Magenta Color = 35
	Cyan    Color = 36
	White   Color = 37
)

// ComponentLogger prefixes every line with a component name and, on a
// terminal, renders the message in bold colour. Output goes through Logf.
type ComponentLogger struct {
	name  string
	color Color
}

// NewComponentLogger returns a logger for the named component.
func NewComponentLogger(name string, color Color) *ComponentLogger {
	return &ComponentLogger{name: name, color: color}
}

// Debugf logs only when debug output is enabled.
func (l *ComponentLogger) Debugf(format string, v ...interface{}) {
	if !DebugEnabled() {
		return
	}
	l.logf("DEBUG", format, v...)
}

func (l *ComponentLogger) Infof(format string, v ...interface{}) { l.logf("INFO", format, v...) }

func (l *ComponentLogger) Warnf(format string, v ...interface{}) { l.logf("WARN", format, v...) }

func (l *ComponentLogger) Errorf(format string, v ...interface{}) { l.logf("ERROR", format, v...) }

func (l *ComponentLogger) logf(level, format string, v ...interface{}) {
	Logf("%-12s %-5s %s", l.name, level, l.paint(fmt.Sprintf(format, v...)))
}

func (l *ComponentLogger) paint(msg string) string {
	if !colorize || l.color == NoColor {
		return msg
	}
	return fmt.Sprintf("\x1b[1;%dm%s\x1b[0m", int(l.color), msg)
}
