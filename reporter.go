package termgl

import (
	"fmt"
	"io"
	"os"
)

// Reporter receives fatal pipeline conditions, such as a corrupted
// primitive store. A Reporter is expected not to return; if it does, the
// failing draw call returns the reported error.
type Reporter interface {
	Fatal(err error)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(err error)

// Fatal implements Reporter.
func (f ReporterFunc) Fatal(err error) { f(err) }

// exitReporter prints the error and terminates the process.
type exitReporter struct {
	w    io.Writer
	exit func(code int)
}

// NewExitReporter returns a Reporter that writes the error to w and calls
// exit with status 1. Nil arguments select os.Stderr and os.Exit.
func NewExitReporter(w io.Writer, exit func(code int)) Reporter {
	if w == nil {
		w = os.Stderr
	}
	if exit == nil {
		exit = os.Exit
	}
	return exitReporter{w: w, exit: exit}
}

func (r exitReporter) Fatal(err error) {
	_, _ = fmt.Fprintf(r.w, "fatal error: %v\n", err)
	r.exit(1)
}
