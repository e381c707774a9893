package term

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/gogpu/termgl"
)

func TestEncoder_Encode(t *testing.T) {
	fb := termgl.NewFrameBuffer(2, 2)
	fb.SetCell(0, 0, termgl.Cell{Color: termgl.Red, Glyph: '#'})
	fb.SetPixel(0, 1, termgl.Blue)
	fb.SetPixel(1, 1, termgl.Blue)

	tests := []struct {
		name    string
		profile termenv.Profile
		want    string
	}{
		{
			name:    "truecolor",
			profile: termenv.TrueColor,
			want: "\x1b[H" +
				"\x1b[1;1H" + "\x1b[48;2;255;0;0m##" + "\x1b[m  " +
				"\x1b[2;1H" + "\x1b[48;2;0;0;255m    " + "\x1b[m",
		},
		{
			name:    "ascii",
			profile: termenv.Ascii,
			want: "\x1b[H" +
				"\x1b[1;1H" + "##  " +
				"\x1b[2;1H" + "    ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			enc := NewEncoder(&buf, tt.profile)
			if err := enc.Encode(fb); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tt.want {
				t.Errorf("Encode() =\n%q\nwant\n%q", got, tt.want)
			}
		})
	}
}

func TestEncoder_ANSI256(t *testing.T) {
	fb := termgl.NewFrameBuffer(1, 1)
	fb.SetPixel(0, 0, termgl.White)

	var buf bytes.Buffer
	if err := NewEncoder(&buf, termenv.ANSI256).Encode(fb); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "\x1b[48;5;") {
		t.Errorf("ANSI256 frame %q has no 256-color background", buf.String())
	}
}

func TestEncoder_Glyphs(t *testing.T) {
	tests := []struct {
		name  string
		glyph rune
		want  string
	}{
		{"narrow doubled", '@', "@@"},
		{"wide once", '漢', "漢"},
		{"control blanked", '\n', "  "},
		{"invalid blanked", 0xD800, "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := termgl.NewFrameBuffer(1, 1)
			fb.SetCell(0, 0, termgl.Cell{Glyph: tt.glyph})

			var buf bytes.Buffer
			if err := NewEncoder(&buf, termenv.Ascii).Encode(fb); err != nil {
				t.Fatal(err)
			}
			got := strings.TrimPrefix(buf.String(), "\x1b[H\x1b[1;1H")
			if got != tt.want {
				t.Errorf("glyph %U encoded as %q, want %q", tt.glyph, got, tt.want)
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestEncoder_WriteError(t *testing.T) {
	enc := NewEncoder(failingWriter{}, termenv.Ascii)
	if err := enc.Encode(termgl.NewFrameBuffer(1, 1)); err == nil {
		t.Error("Encode to a failing writer succeeded")
	}
}

func TestGridSize(t *testing.T) {
	tests := []struct {
		cols, rows int
		w, h       int
	}{
		{80, 24, 40, 24},
		{81, 24, 40, 24},
		{1, 1, 0, 1},
		{-4, -1, 0, 0},
	}
	for _, tt := range tests {
		w, h := GridSize(tt.cols, tt.rows)
		if w != tt.w || h != tt.h {
			t.Errorf("GridSize(%d, %d) = %d, %d; want %d, %d", tt.cols, tt.rows, w, h, tt.w, tt.h)
		}
	}
}

func BenchmarkEncoder_Encode(b *testing.B) {
	fb := termgl.NewFrameBuffer(120, 40)
	for i, c := range []termgl.Color{termgl.Red, termgl.Green, termgl.Blue} {
		for x := range fb.Width() {
			fb.SetPixel(x, i*10, c)
		}
	}
	var buf bytes.Buffer
	enc := NewEncoder(&buf, termenv.TrueColor)
	b.ReportAllocs()
	for b.Loop() {
		buf.Reset()
		_ = enc.Encode(fb)
	}
}
