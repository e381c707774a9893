package termgl

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

// Cell is one element of the frame buffer: a color and the glyph drawn in it.
type Cell struct {
	Color Color
	Glyph rune
}

// DefaultGlyph is the glyph of a cleared cell.
const DefaultGlyph = ' '

// DefaultCell is the content of a cleared cell: transparent black, blank glyph.
var DefaultCell = Cell{Color: Transparent, Glyph: DefaultGlyph}

// FrameBuffer is a rectangular grid of cells, stored row by row.
type FrameBuffer struct {
	width  int
	height int
	cells  []Cell
}

// NewFrameBuffer creates a frame buffer filled with DefaultCell.
// Negative dimensions are treated as zero.
func NewFrameBuffer(width, height int) *FrameBuffer {
	fb := &FrameBuffer{}
	fb.Resize(width, height)
	return fb
}

// Width returns the number of columns.
func (fb *FrameBuffer) Width() int {
	return fb.width
}

// Height returns the number of rows.
func (fb *FrameBuffer) Height() int {
	return fb.height
}

// Cells returns the raw cell slice, row-major.
func (fb *FrameBuffer) Cells() []Cell {
	return fb.cells
}

// Resize changes the dimensions of the frame buffer. The overlapping top-left
// region keeps its cells; newly exposed cells get DefaultCell. Resizing to the
// current dimensions does nothing.
func (fb *FrameBuffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == fb.width && height == fb.height && fb.cells != nil {
		return
	}

	cells := make([]Cell, width*height)
	for y := range height {
		row := cells[y*width : (y+1)*width]
		n := 0
		if y < fb.height {
			n = copy(row, fb.cells[y*fb.width:y*fb.width+min(width, fb.width)])
		}
		for x := n; x < width; x++ {
			row[x] = DefaultCell
		}
	}

	fb.cells = cells
	fb.width = width
	fb.height = height
}

// Clear sets every cell to {c, glyph}.
func (fb *FrameBuffer) Clear(glyph rune, c Color) {
	cell := Cell{Color: c, Glyph: glyph}
	for i := range fb.cells {
		fb.cells[i] = cell
	}
}

// ClearColor sets every cell to c with the default glyph.
func (fb *FrameBuffer) ClearColor(c Color) {
	fb.Clear(DefaultGlyph, c)
}

// Reset sets every cell to DefaultCell.
func (fb *FrameBuffer) Reset() {
	fb.Clear(DefaultGlyph, Transparent)
}

// SetPixel sets the cell at (x, y) to {c, DefaultGlyph}.
// Out-of-bounds coordinates are ignored.
func (fb *FrameBuffer) SetPixel(x, y int, c Color) {
	fb.SetCell(x, y, Cell{Color: c, Glyph: DefaultGlyph})
}

// SetCell sets the cell at (x, y). Out-of-bounds coordinates are ignored.
func (fb *FrameBuffer) SetCell(x, y int, cell Cell) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.cells[y*fb.width+x] = cell
}

// GetPixel returns the cell at (x, y). The coordinates must be in bounds.
func (fb *FrameBuffer) GetPixel(x, y int) Cell {
	return fb.cells[y*fb.width+x]
}

// Row returns the cells of row y. The slice aliases the frame buffer.
func (fb *FrameBuffer) Row(y int) []Cell {
	return fb.cells[y*fb.width : (y+1)*fb.width]
}

// ToImage converts the frame buffer to an image with one pixel per cell.
func (fb *FrameBuffer) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	for i, cell := range fb.cells {
		c := cell.Color
		copy(img.Pix[i*4:i*4+4], []uint8{c.R, c.G, c.B, c.A})
	}
	return img
}

// SavePNG saves the frame buffer colors to a PNG file.
func (fb *FrameBuffer) SavePNG(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return png.Encode(f, fb.ToImage())
}

// At implements the image.Image interface.
func (fb *FrameBuffer) At(x, y int) color.Color {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return Transparent
	}
	return fb.GetPixel(x, y).Color
}

// Bounds implements the image.Image interface.
func (fb *FrameBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.width, fb.height)
}

// ColorModel implements the image.Image interface.
func (fb *FrameBuffer) ColorModel() color.Model {
	return color.NRGBAModel
}
