package termgl

import (
	"bytes"
	"strings"
	"testing"
)

func TestExitReporter(t *testing.T) {
	var buf bytes.Buffer
	code := -1
	r := NewExitReporter(&buf, func(c int) { code = c })
	r.Fatal(ErrCorruptPrimitive)

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(buf.String(), "corrupt primitive store") {
		t.Errorf("report = %q", buf.String())
	}
}

func TestReporterFunc(t *testing.T) {
	var got error
	ReporterFunc(func(err error) { got = err }).Fatal(ErrClosed)
	if got != ErrClosed {
		t.Errorf("ReporterFunc received %v", got)
	}
}
