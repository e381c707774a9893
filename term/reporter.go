package term

import "github.com/gogpu/termgl"

// NewReporter returns a termgl.Reporter that restores the terminal before
// handing the error to next. A nil next reports to stderr and exits.
func NewReporter(s *Screen, next termgl.Reporter) termgl.Reporter {
	if next == nil {
		next = termgl.NewExitReporter(nil, nil)
	}
	return termgl.ReporterFunc(func(err error) {
		if cerr := s.Close(); cerr != nil {
			termgl.Logger().Warn("term: restore terminal", "err", cerr)
		}
		next.Fatal(err)
	})
}
