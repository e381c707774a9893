package term

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"golang.org/x/text/width"

	"github.com/gogpu/termgl"
)

// CellColumns is the number of terminal columns a frame buffer cell
// occupies. Two columns per cell keep cells roughly square on common fonts.
const CellColumns = 2

// Encoder renders frame buffers as ANSI text.
//
// Every cell is drawn as CellColumns columns painted with the cell color as
// background and filled with the cell glyph. Colors are degraded to the
// encoder's profile; with termenv.Ascii only glyphs are written.
// Transparent cells use the terminal's default background.
type Encoder struct {
	w       io.Writer
	profile termenv.Profile
	buf     bytes.Buffer

	// SGR parameters per color, cached across frames.
	sgr map[termgl.Color]string
}

// NewEncoder returns an Encoder writing to w with the given color profile.
func NewEncoder(w io.Writer, profile termenv.Profile) *Encoder {
	return &Encoder{
		w:       w,
		profile: profile,
		sgr:     make(map[termgl.Color]string),
	}
}

// Profile returns the color profile used by the encoder.
func (e *Encoder) Profile() termenv.Profile {
	return e.profile
}

// Encode writes one frame. The cursor is moved to the top-left corner first
// so successive frames overwrite each other. The frame is written with a
// single call to the underlying writer.
func (e *Encoder) Encode(fb *termgl.FrameBuffer) error {
	e.buf.Reset()
	e.buf.WriteString(ansi.CursorHomePosition)

	for y := range fb.Height() {
		e.buf.WriteString(ansi.CursorPosition(1, y+1))
		current := ""
		for _, cell := range fb.Row(y) {
			seq := e.sequence(cell.Color)
			if seq != current {
				if seq == "" {
					e.buf.WriteString(ansi.ResetStyle)
				} else {
					e.buf.WriteString("\x1b[")
					e.buf.WriteString(seq)
					e.buf.WriteByte('m')
				}
				current = seq
			}
			e.writeGlyph(cell.Glyph)
		}
		if current != "" {
			e.buf.WriteString(ansi.ResetStyle)
		}
	}

	_, err := e.w.Write(e.buf.Bytes())
	return err
}

// sequence returns the background SGR parameters for c, or "" when the
// terminal default background should be used.
func (e *Encoder) sequence(c termgl.Color) string {
	if c.IsTransparent() {
		return ""
	}
	if seq, ok := e.sgr[c]; ok {
		return seq
	}
	opaque := c
	opaque.A = 0xff
	seq := e.profile.FromColor(opaque).Sequence(true)
	e.sgr[c] = seq
	return seq
}

// writeGlyph fills one cell. Wide glyphs already span both columns and are
// written once; control and invalid runes become spaces.
func (e *Encoder) writeGlyph(r rune) {
	if r < ' ' || r == 0x7f || !utf8.ValidRune(r) {
		r = termgl.DefaultGlyph
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		e.buf.WriteRune(r)
		return
	}
	for range CellColumns {
		e.buf.WriteRune(r)
	}
}

// GridSize converts a terminal size in columns and rows to the matching
// frame buffer size in cells.
func GridSize(cols, rows int) (w, h int) {
	return max(cols/CellColumns, 0), max(rows, 0)
}
