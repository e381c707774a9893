package termgl

import (
	"io"
	"maps"
	"slices"

	"github.com/gogpu/termgl/internal/clip"
	"github.com/gogpu/termgl/internal/parallel"
	"github.com/gogpu/termgl/internal/primitive"
)

// Viewport is the output rectangle that normalized device coordinates map
// to, in frame buffer cells.
type Viewport struct {
	X, Y, Width, Height float32
}

// Context is the pipeline state: the vertex buffers and programs known by
// id, the bound ones, the frame buffer and the viewport.
//
// Ids are positive integers and 0 means "none". Binding an id that does not
// exist yet creates an empty resource under it.
//
// Context implements io.Closer. It is not safe for concurrent use.
type Context struct {
	buffers  map[int]*VertexBuffer
	programs map[int]*Program

	boundBuffer  int
	boundProgram int

	frame    *FrameBuffer
	viewport Viewport

	// Draw-call scratch: clip-space positions per vertex (screen space after
	// the viewport stage) and the assembled primitives.
	geometry   []Vec4
	primitives *primitive.Store
	pieces     []clip.Tri

	pool              *parallel.WorkerPool
	parallelThreshold int
	reporter          Reporter

	closed bool
}

// Ensure Context implements io.Closer
var _ io.Closer = (*Context)(nil)

// NewContext creates a pipeline rendering into a width x height frame
// buffer. The viewport starts as the unit rectangle (0, 0, 1, 1); call
// Viewport to match the frame buffer.
func NewContext(width, height int, opts ...ContextOption) *Context {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	frame := options.frameBuffer
	if frame == nil {
		frame = NewFrameBuffer(width, height)
	}

	reporter := options.reporter
	if reporter == nil {
		reporter = NewExitReporter(nil, nil)
	}

	c := &Context{
		buffers:           make(map[int]*VertexBuffer),
		programs:          make(map[int]*Program),
		frame:             frame,
		viewport:          Viewport{X: 0, Y: 0, Width: 1, Height: 1},
		primitives:        primitive.NewStore(options.primitiveCapacity),
		pool:              parallel.NewWorkerPool(options.workers),
		parallelThreshold: options.parallelThreshold,
		reporter:          reporter,
	}

	Logger().Info("termgl: context created",
		"width", frame.Width(),
		"height", frame.Height(),
		"workers", c.pool.Workers())
	return c
}

// Close stops the worker pool and releases the scratch buffers.
// Close is idempotent - multiple calls are safe.
func (c *Context) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.pool.Close()
	c.geometry = nil
	c.pieces = nil
	c.primitives.Clear()
	return nil
}

// FrameBuffer returns the render target.
func (c *Context) FrameBuffer() *FrameBuffer {
	return c.frame
}

// Width returns the frame buffer width.
func (c *Context) Width() int {
	return c.frame.Width()
}

// Height returns the frame buffer height.
func (c *Context) Height() int {
	return c.frame.Height()
}

// =============================================================================
// Vertex buffers
// =============================================================================

// IsBuffer reports whether id names an existing vertex buffer.
func (c *Context) IsBuffer(id int) bool {
	_, ok := c.buffers[id]
	return id != 0 && ok
}

// CreateBuffer returns the lowest unused buffer id at or above minID (and
// at least 1). The buffer itself is created by BindBuffer.
func (c *Context) CreateBuffer(minID int) int {
	id := max(1, minID)
	for c.IsBuffer(id) {
		id++
	}
	return id
}

// BindBuffer makes id the bound vertex buffer, creating an empty buffer if
// id does not exist. Binding 0 unbinds.
func (c *Context) BindBuffer(id int) {
	if id != 0 && !c.IsBuffer(id) {
		c.buffers[id] = &VertexBuffer{}
	}
	c.boundBuffer = id
}

// DeleteBuffer removes the buffer id. Deleting a bound buffer leaves the
// binding pointing at the missing id; draws render nothing until a buffer
// is bound again.
func (c *Context) DeleteBuffer(id int) {
	if !c.IsBuffer(id) {
		return
	}
	delete(c.buffers, id)
}

// GetBuffer returns the buffer id.
func (c *Context) GetBuffer(id int) (*VertexBuffer, bool) {
	if !c.IsBuffer(id) {
		return nil, false
	}
	return c.buffers[id], true
}

// BoundBuffer returns the bound buffer. ok is false when nothing is bound or
// the bound id was deleted.
func (c *Context) BoundBuffer() (buf *VertexBuffer, ok bool) {
	return c.GetBuffer(c.boundBuffer)
}

// BoundBufferID returns the bound buffer id, which may name a deleted buffer.
func (c *Context) BoundBufferID() int {
	return c.boundBuffer
}

// BufferIDs returns the ids of all buffers in ascending order.
func (c *Context) BufferIDs() []int {
	return slices.Sorted(maps.Keys(c.buffers))
}

// =============================================================================
// Programs
// =============================================================================

// IsProgram reports whether id names an existing program.
func (c *Context) IsProgram(id int) bool {
	_, ok := c.programs[id]
	return id != 0 && ok
}

// CreateProgram returns the lowest unused program id. The program itself is
// created by UseProgram.
func (c *Context) CreateProgram() int {
	id := 1
	for c.IsProgram(id) {
		id++
	}
	return id
}

// UseProgram makes id the bound program, creating an empty program if id
// does not exist. Binding 0 unbinds.
func (c *Context) UseProgram(id int) {
	if id != 0 && !c.IsProgram(id) {
		c.programs[id] = NewProgram()
	}
	c.boundProgram = id
}

// DeleteProgram removes the program id. Deleting the bound program leaves
// the binding pointing at the missing id.
func (c *Context) DeleteProgram(id int) {
	if !c.IsProgram(id) {
		return
	}
	delete(c.programs, id)
}

// GetProgram returns the program id.
func (c *Context) GetProgram(id int) (*Program, bool) {
	if !c.IsProgram(id) {
		return nil, false
	}
	return c.programs[id], true
}

// BoundProgram returns the bound program. ok is false when nothing is bound
// or the bound id was deleted.
func (c *Context) BoundProgram() (prog *Program, ok bool) {
	return c.GetProgram(c.boundProgram)
}

// BoundProgramID returns the bound program id, which may name a deleted
// program.
func (c *Context) BoundProgramID() int {
	return c.boundProgram
}

// =============================================================================
// Viewport
// =============================================================================

// SetViewport sets the rectangle normalized device coordinates map to.
func (c *Context) SetViewport(x, y, width, height float32) {
	c.viewport = Viewport{X: x, Y: y, Width: width, Height: height}
}

// GetViewport returns the current viewport rectangle.
func (c *Context) GetViewport() Viewport {
	return c.viewport
}

// geometryBuffer returns the scratch position array resized to n entries.
func (c *Context) geometryBuffer(n int) []Vec4 {
	if cap(c.geometry) < n {
		c.geometry = make([]Vec4, n, n+n/2)
	}
	c.geometry = c.geometry[:n]
	return c.geometry
}
