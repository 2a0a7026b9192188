package migrate

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/golang-migrate/migrate/v4"
)

var _ migrate.Logger = (*consoleLogger)(nil)

type consoleLogger struct {
	out     io.Writer
	prefix  string
	verbose bool
}

func (l *consoleLogger) Printf(format string, v ...any) {
	out := l.out
	if out == nil {
		out = color.Output
	}
	fmt.Fprint(out, color.CyanString(l.prefix))
	fmt.Fprintf(out, format, v...)
}

func (l *consoleLogger) Verbose() bool {
	return l.verbose
}
