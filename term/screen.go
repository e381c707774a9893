package term

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	xterm "golang.org/x/term"

	"github.com/gogpu/termgl"
)

// ErrNotTerminal is returned by Open when the size of the output cannot be
// queried and no size function was supplied.
var ErrNotTerminal = errors.New("term: output is not a terminal")

// Key is a key read from the terminal input. Printable keys are their rune;
// special keys use the constants below.
type Key rune

// Special keys.
const (
	KeyCtrlC  Key = 0x03
	KeyEnter  Key = '\r'
	KeyEscape Key = 0x1b
)

// Arrow keys have negative values so they never collide with runes.
const (
	KeyUp Key = -(iota + 1)
	KeyDown
	KeyRight
	KeyLeft
)

// ResizeFunc is called by PollEvents with the new frame buffer size in cells.
type ResizeFunc func(s *Screen, width, height int)

// KeyFunc is called by PollEvents for every key read since the last poll.
type KeyFunc func(s *Screen, key Key)

// Option configures a Screen.
type Option func(*options)

type options struct {
	in      io.Reader
	out     io.Writer
	profile *termenv.Profile
	size    func() (cols, rows int, err error)
}

// WithInput sets the key source. Defaults to os.Stdin.
func WithInput(r io.Reader) Option {
	return func(o *options) { o.in = r }
}

// WithOutput sets the destination of frames. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithProfile overrides the color profile detected from the environment.
func WithProfile(p termenv.Profile) Option {
	return func(o *options) { o.profile = &p }
}

// WithSizeFunc overrides how the terminal size is queried.
func WithSizeFunc(fn func() (cols, rows int, err error)) Option {
	return func(o *options) { o.size = fn }
}

// Screen presents frame buffers on a terminal.
//
// While open the terminal is in raw mode (when the input is a terminal),
// on the alternate screen and with the cursor hidden. Close restores all of
// it. Screen is not safe for concurrent use except for Close.
type Screen struct {
	out  io.Writer
	enc  *Encoder
	size func() (int, int, error)

	rawFD    int
	rawState *xterm.State

	cols, rows int

	keys chan Key

	onResize ResizeFunc
	onKey    KeyFunc

	closeOnce sync.Once
	closeErr  error
}

// Open prepares the terminal and returns a Screen.
func Open(opts ...Option) (*Screen, error) {
	o := options{in: os.Stdin, out: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Screen{
		out:   o.out,
		size:  o.size,
		rawFD: -1,
		keys:  make(chan Key, 64),
	}
	if s.size == nil {
		f, ok := o.out.(*os.File)
		if !ok || !xterm.IsTerminal(int(f.Fd())) {
			return nil, ErrNotTerminal
		}
		fd := int(f.Fd())
		s.size = func() (int, int, error) { return xterm.GetSize(fd) }
	}

	var profile termenv.Profile
	if o.profile != nil {
		profile = *o.profile
	} else {
		profile = termenv.EnvColorProfile()
	}
	s.enc = NewEncoder(o.out, profile)

	cols, rows, err := s.size()
	if err != nil {
		return nil, fmt.Errorf("term: query size: %w", err)
	}
	s.cols, s.rows = cols, rows

	if f, ok := o.in.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		state, err := xterm.MakeRaw(fd)
		if err != nil {
			return nil, fmt.Errorf("term: enable raw mode: %w", err)
		}
		s.rawFD, s.rawState = fd, state
	}

	if _, err := io.WriteString(s.out,
		ansi.SetAltScreenSaveCursorMode+ansi.HideCursor+ansi.EraseEntireScreen); err != nil {
		_ = s.restore()
		return nil, err
	}

	if o.in != nil {
		go readKeys(o.in, s.keys)
	}

	w, h := s.Size()
	termgl.Logger().Info("term: screen opened",
		"cols", cols, "rows", rows,
		"width", w, "height", h,
		"profile", profile.Name(),
		"raw", s.rawState != nil)
	return s, nil
}

// Size returns the frame buffer size in cells matching the terminal.
func (s *Screen) Size() (width, height int) {
	return GridSize(s.cols, s.rows)
}

// SetResizeCallback sets the function called when the terminal is resized.
func (s *Screen) SetResizeCallback(fn ResizeFunc) {
	s.onResize = fn
}

// SetKeyCallback sets the function called for key presses.
func (s *Screen) SetKeyCallback(fn KeyFunc) {
	s.onKey = fn
}

// Display writes fb to the terminal.
func (s *Screen) Display(fb *termgl.FrameBuffer) error {
	return s.enc.Encode(fb)
}

// PollEvents dispatches pending events without blocking: a resize when the
// terminal size changed since the last poll, then every key read so far.
func (s *Screen) PollEvents() {
	if cols, rows, err := s.size(); err != nil {
		termgl.Logger().Warn("term: query size", "err", err)
	} else if cols != s.cols || rows != s.rows {
		s.cols, s.rows = cols, rows
		w, h := s.Size()
		termgl.Logger().Debug("term: resized", "cols", cols, "rows", rows)
		if s.onResize != nil {
			s.onResize(s, w, h)
		}
	}

	for {
		select {
		case k := <-s.keys:
			if s.onKey != nil {
				s.onKey(s, k)
			}
		default:
			return
		}
	}
}

// Close leaves the alternate screen, shows the cursor and restores the
// terminal mode. It is safe to call more than once and from any goroutine.
func (s *Screen) Close() error {
	s.closeOnce.Do(func() {
		_, err := io.WriteString(s.out,
			ansi.ResetStyle+ansi.ShowCursor+ansi.ResetAltScreenSaveCursorMode)
		s.closeErr = errors.Join(err, s.restore())
		termgl.Logger().Info("term: screen closed")
	})
	return s.closeErr
}

func (s *Screen) restore() error {
	if s.rawState == nil {
		return nil
	}
	return xterm.Restore(s.rawFD, s.rawState)
}

// readKeys decodes r into keys until r fails. Keys are dropped when the
// channel is full.
func readKeys(r io.Reader, keys chan<- Key) {
	buf := make([]byte, 256)
	for {
		n, err := r.Read(buf)
		for _, k := range decodeKeys(buf[:n]) {
			select {
			case keys <- k:
			default:
			}
		}
		if err != nil {
			return
		}
	}
}

// decodeKeys splits one read into keys. A lone escape byte is KeyEscape;
// CSI arrow sequences map to the arrow keys and other CSI sequences are
// skipped.
func decodeKeys(b []byte) []Key {
	var keys []Key
	for len(b) > 0 {
		if b[0] == 0x1b && len(b) >= 3 && b[1] == '[' {
			end := 2
			for end < len(b) && (b[end] < 0x40 || b[end] > 0x7e) {
				end++
			}
			if end == len(b) {
				return keys
			}
			if end == 2 {
				switch b[2] {
				case 'A':
					keys = append(keys, KeyUp)
				case 'B':
					keys = append(keys, KeyDown)
				case 'C':
					keys = append(keys, KeyRight)
				case 'D':
					keys = append(keys, KeyLeft)
				}
			}
			b = b[end+1:]
			continue
		}
		r, size := utf8.DecodeRune(b)
		keys = append(keys, Key(r))
		b = b[size:]
	}
	return keys
}
