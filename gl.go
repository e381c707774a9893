package termgl

import (
	"fmt"
	"strings"

	"github.com/gogpu/termgl/internal/primitive"
)

// Topology selects how DrawElements groups indices into primitives.
type Topology = primitive.Topology

// Supported topologies.
const (
	// Points draws one point per index.
	Points = primitive.Points
	// Lines draws one line per pair of indices; an odd last index is ignored.
	Lines = primitive.Lines
	// LineLoop connects consecutive indices and closes the loop.
	LineLoop = primitive.LineLoop
	// LineStrip connects consecutive indices.
	LineStrip = primitive.LineStrip
	// Triangles draws one triangle per triple of indices.
	Triangles = primitive.Triangles
	// TriangleStrip draws a triangle for every window of three indices.
	TriangleStrip = primitive.TriangleStrip
	// TriangleFan draws triangles sharing the first index.
	TriangleFan = primitive.TriangleFan
)

// ParseTopology returns the topology named s, such as "LINE_LOOP". Case is
// ignored.
func ParseTopology(s string) (Topology, error) {
	for t := Points; t <= TriangleFan; t++ {
		if strings.EqualFold(t.String(), s) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("termgl: unknown topology %q", s)
}

// CreateBuffers returns n distinct unused buffer ids. Like CreateBuffer, it
// reserves nothing: the buffers are created when bound.
func (c *Context) CreateBuffers(n int) []int {
	ids := make([]int, n)
	next := 1
	for i := range ids {
		ids[i] = c.CreateBuffer(next)
		next = ids[i] + 1
	}
	return ids
}

// DeleteBuffers deletes every listed buffer id.
func (c *Context) DeleteBuffers(ids ...int) {
	for _, id := range ids {
		c.DeleteBuffer(id)
	}
}

// BufferData uploads vertices into the bound buffer. It does nothing when no
// buffer is bound.
func BufferData[V any](c *Context, vertices []V) {
	buf, ok := c.BoundBuffer()
	if !ok {
		return
	}
	SetVertices(buf, vertices)
}

// AttachShader attaches s to the program id. It returns false when id does
// not exist or s is neither a vertex nor a fragment shader.
func (c *Context) AttachShader(id int, s Shader) bool {
	prog, ok := c.GetProgram(id)
	if !ok {
		return false
	}
	return prog.Attach(s) == nil
}

// LinkProgram reports whether program id exists and has both stages
// attached.
func (c *Context) LinkProgram(id int) bool {
	prog, ok := c.GetProgram(id)
	return ok && prog.IsValid()
}

// SetUniform uploads a uniform to program id. It does nothing when id does
// not exist, and fails with ErrUniformType when name holds another type.
func SetUniform[T any](c *Context, id int, name string, value T) error {
	prog, ok := c.GetProgram(id)
	if !ok {
		return nil
	}
	return UploadUniform(&prog.Uniforms, name, value)
}

// Viewport sets the viewport rectangle.
func (c *Context) Viewport(x, y, width, height float32) {
	c.SetViewport(x, y, width, height)
}

// Clear resets every frame buffer cell to DefaultCell.
func (c *Context) Clear() {
	c.frame.Reset()
}

// Resize resizes the frame buffer and sets the viewport to cover it.
func (c *Context) Resize(width, height int) {
	c.frame.Resize(width, height)
	c.SetViewport(0, 0, float32(c.frame.Width()), float32(c.frame.Height()))
	Logger().Info("termgl: frame buffer resized", "width", c.frame.Width(), "height", c.frame.Height())
}

// DrawTriangles draws indices as TRIANGLES.
func (c *Context) DrawTriangles(indices []uint32) error {
	return c.DrawElements(Triangles, indices)
}
