package termgl

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discard drops every record. Enabled reports false, so slog never builds
// the attributes of a disabled call.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (discard) WithAttrs([]slog.Attr) slog.Handler        { return discard{} }
func (discard) WithGroup(string) slog.Handler             { return discard{} }

var silent = slog.New(discard{})

// current is read on every draw call and may be swapped from another
// goroutine.
var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(silent)
}

// SetLogger routes the pipeline's log records to l. A nil l silences them
// again, which is also the initial state.
//
// Records emitted by termgl and the term package:
//
//	Debug  "termgl: vertex stage"         vertices
//	Debug  "termgl: assembled"            mode, indices, primitives
//	Debug  "termgl: clipped"              primitives, vertices
//	Debug  "termgl: culled primitives"    count
//	Debug  "termgl: rasterized"           primitives
//	Debug  "termgl: unknown topology"     mode
//	Debug  "term: resized"                cols, rows
//	Info   "termgl: context created"      width, height, workers
//	Info   "termgl: frame buffer resized" width, height
//	Info   "term: screen opened"          cols, rows, width, height, profile, raw
//	Info   "term: screen closed"
//	Warn   "term: query size"             err
//	Warn   "term: restore terminal"       err
//	Error  "termgl: fatal pipeline error" err
//
// A draw call logs at Debug only, so a frame loop can keep Info on without
// flooding the sink. The terminal is busy showing frames, so send records
// to a file:
//
//	f, _ := os.Create("termgl.log")
//	termgl.SetLogger(slog.New(slog.NewTextHandler(f, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger. The term package logs through
// it too.
func Logger() *slog.Logger {
	return current.Load()
}
