package termgl

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func TestNewFrameBuffer_DefaultCells(t *testing.T) {
	fb := NewFrameBuffer(3, 2)
	if fb.Width() != 3 || fb.Height() != 2 {
		t.Fatalf("size = %dx%d, want 3x2", fb.Width(), fb.Height())
	}
	for i, c := range fb.Cells() {
		if c != DefaultCell {
			t.Errorf("cell %d = %+v, want DefaultCell", i, c)
		}
	}
	if DefaultCell.Glyph != ' ' || !DefaultCell.Color.IsTransparent() {
		t.Errorf("DefaultCell = %+v, want transparent space", DefaultCell)
	}
}

func TestFrameBuffer_SetPixelOutOfBounds(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}, {100, 100}} {
		fb.SetPixel(p[0], p[1], Red)
	}
	for i, c := range fb.Cells() {
		if c != DefaultCell {
			t.Errorf("cell %d modified by out-of-bounds write: %+v", i, c)
		}
	}
}

func TestFrameBuffer_SetCell(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	fb.SetCell(1, 2, Cell{Color: Green, Glyph: '#'})
	fb.SetPixel(3, 3, Blue)

	if got := fb.GetPixel(1, 2); got != (Cell{Color: Green, Glyph: '#'}) {
		t.Errorf("GetPixel(1,2) = %+v", got)
	}
	if got := fb.GetPixel(3, 3); got != (Cell{Color: Blue, Glyph: ' '}) {
		t.Errorf("GetPixel(3,3) = %+v", got)
	}
	if got := fb.Row(2)[1].Glyph; got != '#' {
		t.Errorf("Row(2)[1].Glyph = %q, want '#'", got)
	}
}

func TestFrameBuffer_Resize(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"grow", 6, 5},
		{"shrink", 2, 2},
		{"wider shorter", 6, 1},
		{"narrower taller", 1, 6},
		{"empty", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := NewFrameBuffer(4, 3)
			for y := range 3 {
				for x := range 4 {
					fb.SetCell(x, y, Cell{Color: RGB(uint8(x), uint8(y), 0), Glyph: 'x'})
				}
			}

			fb.Resize(tt.w, tt.h)
			if fb.Width() != tt.w || fb.Height() != tt.h || len(fb.Cells()) != tt.w*tt.h {
				t.Fatalf("size = %dx%d (%d cells)", fb.Width(), fb.Height(), len(fb.Cells()))
			}
			for y := range tt.h {
				for x := range tt.w {
					got := fb.GetPixel(x, y)
					want := DefaultCell
					if x < 4 && y < 3 {
						want = Cell{Color: RGB(uint8(x), uint8(y), 0), Glyph: 'x'}
					}
					if got != want {
						t.Errorf("(%d,%d) = %+v, want %+v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestFrameBuffer_ResizeSameIsNoop(t *testing.T) {
	fb := NewFrameBuffer(3, 3)
	before := &fb.Cells()[0]
	fb.Resize(3, 3)
	if &fb.Cells()[0] != before {
		t.Error("Resize to the same size reallocated the cells")
	}
}

func TestFrameBuffer_Clear(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.Clear('.', Yellow)
	for _, c := range fb.Cells() {
		if c != (Cell{Color: Yellow, Glyph: '.'}) {
			t.Fatalf("cell after Clear = %+v", c)
		}
	}

	fb.ClearColor(Magenta)
	if got := fb.GetPixel(1, 1); got != (Cell{Color: Magenta, Glyph: ' '}) {
		t.Errorf("cell after ClearColor = %+v", got)
	}

	fb.Reset()
	if got := fb.GetPixel(0, 1); got != DefaultCell {
		t.Errorf("cell after Reset = %+v", got)
	}
}

func TestFrameBuffer_SavePNG(t *testing.T) {
	fb := NewFrameBuffer(3, 2)
	fb.SetPixel(2, 1, Red)

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("image bounds = %v", b)
	}
	if got := FromColor(img.At(2, 1)); got != Red {
		t.Errorf("pixel (2,1) = %v, want Red", got)
	}
	if got := FromColor(img.At(0, 0)); got.A != 0 {
		t.Errorf("pixel (0,0) alpha = %d, want 0", got.A)
	}
}
