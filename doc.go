// Package termgl is a software 3D rendering pipeline that draws into a grid
// of terminal cells.
//
// # Overview
//
// termgl exposes an immediate-mode API modelled on OpenGL: vertex data lives
// in buffers, shaders are attached to programs, and a draw call turns an index
// list into pixels. Everything runs on the CPU and renders into a
// [FrameBuffer] of {color, glyph} cells that the term package can present.
//
// # Quick Start
//
//	import "github.com/gogpu/termgl"
//
//	type vertex struct{ Pos termgl.Vec4 }
//
//	ctx := termgl.NewContext(80, 24)
//	defer ctx.Close()
//
//	vbo := ctx.CreateBuffers(1)[0]
//	ctx.BindBuffer(vbo)
//	termgl.BufferData(ctx, []vertex{{...}, {...}, {...}})
//
//	prog := ctx.CreateProgram()
//	ctx.UseProgram(prog)
//	ctx.AttachShader(prog, termgl.NewVertexShader(func(env termgl.Env, v vertex, _ int) (termgl.Vec4, error) {
//	    mvp, err := termgl.Uniform[termgl.Mat4](env, "u_mvp")
//	    if err != nil {
//	        return termgl.Vec4{}, err
//	    }
//	    return termgl.MulVec4(mvp, v.Pos), nil
//	}))
//	ctx.AttachShader(prog, termgl.SolidFragment(termgl.Cell{Color: termgl.White, Glyph: '#'}))
//	termgl.SetUniform(ctx, prog, "u_mvp", termgl.Identity4())
//
//	ctx.Viewport(0, 0, 80, 24)
//	err := ctx.DrawElements(termgl.Triangles, []uint32{0, 1, 2})
//
// # Pipeline
//
// A draw call runs these stages in order:
//   - vertex stage: the bound program's vertex shader maps every vertex of the
//     bound buffer to a clip-space position, in parallel
//   - assembly: the index list is grouped into points, lines or triangles
//     according to the [Topology]
//   - clipping: primitives outside the view volume are dropped and straddling
//     ones are cut at the clip planes
//   - perspective divide and viewport mapping, in parallel
//   - rasterization into the frame buffer
//
// A draw call with no bound buffer or program draws nothing.
//
// # Coordinate System
//
// Clip space follows OpenGL conventions: the visible volume is
// -w <= x, y, z < w. Screen space has its origin at the top-left cell with Y
// growing downward.
//
// # Concurrency
//
// A Context is not safe for concurrent use. Issue draw calls from a single
// goroutine; the context parallelizes the per-vertex stages internally.
package termgl

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)
