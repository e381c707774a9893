package termgl

import (
	"fmt"

	"github.com/gogpu/termgl/internal/clip"
	"github.com/gogpu/termgl/internal/primitive"
	"github.com/gogpu/termgl/internal/raster"
)

// defaultFragment is written for covered pixels when the bound program has
// no fragment shader.
var defaultFragment = Cell{Color: White, Glyph: DefaultGlyph}

// DrawElements renders indices from the bound buffer with the bound program.
//
// The vertex shader runs once for every vertex of the buffer. The indices are
// then grouped into primitives according to mode, clipped against the view
// volume, mapped through the viewport and rasterized into the frame buffer
// with the cell chosen by the fragment shader.
//
// Nothing is drawn, and nil is returned, when no buffer or program is bound
// or the program has no vertex shader. Indices past the end of the buffer,
// and vertices shaded to NaN or infinite positions, drop the primitives
// using them. Errors from shaders abort the draw call and
// are returned. A corrupted primitive store is reported to the Reporter and
// returned as ErrCorruptPrimitive.
func (c *Context) DrawElements(mode Topology, indices []uint32) error {
	if c.closed {
		return ErrClosed
	}
	buf, ok := c.BoundBuffer()
	if !ok {
		return nil
	}
	prog, ok := c.BoundProgram()
	if !ok || prog.vertex == nil {
		return nil
	}
	log := Logger()

	if err := c.shadeVertices(prog, buf); err != nil {
		return err
	}
	vertexCount := len(c.geometry)
	log.Debug("termgl: vertex stage", "vertices", vertexCount)

	cell, err := c.shadeFragment(prog)
	if err != nil {
		return err
	}

	c.assemble(mode, indices)
	log.Debug("termgl: assembled",
		"mode", mode,
		"indices", len(indices),
		"primitives", c.primitives.Len())

	if err := c.clipPrimitives(vertexCount); err != nil {
		return err
	}
	log.Debug("termgl: clipped",
		"primitives", c.primitives.Len(),
		"vertices", len(c.geometry))

	if err := c.toScreen(); err != nil {
		return err
	}

	if err := c.rasterize(cell); err != nil {
		return err
	}
	log.Debug("termgl: rasterized", "primitives", c.primitives.Len())
	return nil
}

// forEach splits [0, n) across the worker pool once n reaches the parallel
// threshold.
func (c *Context) forEach(n int, fn func(lo, hi int) error) error {
	return c.pool.Range(n, c.parallelThreshold, fn)
}

// shadeVertices fills the geometry buffer with the clip-space position of
// every vertex of buf.
func (c *Context) shadeVertices(prog *Program, buf *VertexBuffer) error {
	geometry := c.geometryBuffer(buf.Count())
	shader := prog.vertex
	env := prog.env(VertexStage)

	err := c.forEach(len(geometry), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			p, err := shader.Shade(env, buf, i)
			if err != nil {
				return err
			}
			geometry[i] = p
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("termgl: vertex stage: %w", err)
	}
	return nil
}

// shadeFragment evaluates the fragment shader once for the draw call.
func (c *Context) shadeFragment(prog *Program) (Cell, error) {
	if prog.fragment == nil {
		return defaultFragment, nil
	}
	cell, err := prog.fragment.Fragment(prog.env(FragmentStage))
	if err != nil {
		return Cell{}, fmt.Errorf("termgl: fragment stage: %w", err)
	}
	return cell, nil
}

// assemble rebuilds the primitive store from indices.
func (c *Context) assemble(mode Topology, indices []uint32) {
	c.primitives.Clear()
	if !mode.Valid() {
		Logger().Debug("termgl: unknown topology", "mode", int(mode))
		return
	}
	primitive.Assemble(mode, c.primitives, indices)
}

// clipPrimitives walks the assembled primitives once. Primitives outside the
// view volume are erased, clipped lines are rewritten in place, and the
// extra triangles produced by clipping are appended after the assembled
// ones. New vertices created by clipping are appended to the geometry buffer.
func (c *Context) clipPrimitives(vertexCount int) error {
	s := c.primitives
	records := s.Len()
	dropped := 0

	it := s.Begin()
	for range records {
		p, err := s.At(it)
		if err != nil {
			return c.fatal(err)
		}
		if !c.clipPrimitive(&p, vertexCount) {
			it = s.Erase(it)
			dropped++
			continue
		}
		if err := s.Set(it, p); err != nil {
			return c.fatal(err)
		}
		it = s.Next(it)
	}

	if dropped > 0 {
		Logger().Debug("termgl: culled primitives", "count", dropped)
	}
	return nil
}

// clipPrimitive clips p and reports whether any part of it is visible.
// Primitives referencing a missing vertex or a NaN or infinite position are
// never visible.
func (c *Context) clipPrimitive(p *primitive.Primitive, vertexCount int) bool {
	g := c.geometry
	for _, i := range p.Vertices() {
		if int(i) >= vertexCount || !clip.Finite(g[i]) {
			return false
		}
	}

	switch p.Kind {
	case primitive.Point:
		return clip.Point(g[p.Indices[0]])

	case primitive.Line:
		a, b := g[p.Indices[0]], g[p.Indices[1]]
		qa, qb, ok := clip.Line(a, b)
		if !ok {
			return false
		}
		if qa != a {
			p.Indices[0] = c.addVertex(qa)
		}
		if qb != b {
			p.Indices[1] = c.addVertex(qb)
		}
		return true

	case primitive.Triangle:
		t := clip.Tri{g[p.Indices[0]], g[p.Indices[1]], g[p.Indices[2]]}
		c.pieces = clip.Triangle(c.pieces[:0], t)
		if len(c.pieces) == 0 {
			return false
		}
		orig := p.Indices
		p.Indices = c.pieceIndices(c.pieces[0], t, orig)
		for _, piece := range c.pieces[1:] {
			idx := c.pieceIndices(piece, t, orig)
			c.primitives.Insert(primitive.NewTriangle(idx[0], idx[1], idx[2]))
		}
		return true
	}
	return false
}

// pieceIndices returns vertex indices for a clipped triangle piece, reusing
// the original index for corners the clipper left untouched.
func (c *Context) pieceIndices(piece, orig clip.Tri, idx [3]uint32) [3]uint32 {
	var out [3]uint32
next:
	for k, v := range piece {
		for m := range orig {
			if v == orig[m] {
				out[k] = idx[m]
				continue next
			}
		}
		out[k] = c.addVertex(v)
	}
	return out
}

// addVertex appends a clip-space position to the geometry buffer and
// returns its index.
func (c *Context) addVertex(p Vec4) uint32 {
	c.geometry = append(c.geometry, p)
	return uint32(len(c.geometry) - 1)
}

// toScreen applies the perspective divide and the viewport transform to
// every geometry entry. The w component is replaced by 1/w.
func (c *Context) toScreen() error {
	geometry := c.geometry
	vp := c.viewport
	return c.forEach(len(geometry), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			geometry[i] = viewportTransform(geometry[i], vp)
		}
		return nil
	})
}

// viewportTransform maps a clip-space position to screen space. Y is flipped
// since rows grow downward.
func viewportTransform(p Vec4, vp Viewport) Vec4 {
	invW := 1 / p[3]
	x, y, z := p[0]*invW, p[1]*invW, p[2]*invW
	return Vec4{
		(x+1)*(0.5*vp.Width) + vp.X,
		(-y+1)*(0.5*vp.Height) + vp.Y,
		z,
		invW,
	}
}

// cellTarget rasterizes into the frame buffer with a fixed cell.
type cellTarget struct {
	fb   *FrameBuffer
	cell Cell
}

func (t cellTarget) Width() int    { return t.fb.Width() }
func (t cellTarget) Height() int   { return t.fb.Height() }
func (t cellTarget) Plot(x, y int) { t.fb.SetCell(x, y, t.cell) }

func screenPoint(p Vec4) raster.Point {
	return raster.Pt(p[0], p[1])
}

// rasterize draws every surviving primitive.
func (c *Context) rasterize(cell Cell) error {
	target := cellTarget{fb: c.frame, cell: cell}
	g := c.geometry

	err := c.primitives.Each(func(_ primitive.Iterator, p primitive.Primitive) error {
		switch p.Kind {
		case primitive.Point:
			raster.DrawPoint(target, screenPoint(g[p.Indices[0]]))
		case primitive.Line:
			raster.DrawLine(target, screenPoint(g[p.Indices[0]]), screenPoint(g[p.Indices[1]]))
		case primitive.Triangle:
			raster.DrawTriangle(target,
				screenPoint(g[p.Indices[0]]),
				screenPoint(g[p.Indices[1]]),
				screenPoint(g[p.Indices[2]]))
		}
		return nil
	})
	if err != nil {
		return c.fatal(err)
	}
	return nil
}

// fatal reports a corrupted primitive store.
func (c *Context) fatal(err error) error {
	err = fmt.Errorf("%w: %w", ErrCorruptPrimitive, err)
	Logger().Error("termgl: fatal pipeline error", "err", err)
	c.reporter.Fatal(err)
	return err
}
