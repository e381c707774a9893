package termgl

import "fmt"

// Stage identifies a shader stage.
type Stage int

const (
	// VertexStage maps vertices to clip-space positions.
	VertexStage Stage = iota + 1

	// FragmentStage chooses the cell written for covered pixels.
	FragmentStage
)

// String returns the lowercase stage name.
func (s Stage) String() string {
	switch s {
	case VertexStage:
		return "vertex"
	case FragmentStage:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Env is the view of its program a shader has during evaluation.
// Uniform reads made through an Env report failures with the stage attached.
type Env struct {
	stage    Stage
	uniforms *Uniforms
}

// Stage returns the stage being evaluated.
func (e Env) Stage() Stage {
	return e.stage
}

// Uniform reads the uniform name of the program being evaluated as a T.
//
// A missing uniform or a type mismatch returns a *UniformError that names
// the stage and matches ErrInvalidUniform.
func Uniform[T any](e Env, name string) (T, error) {
	v, err := GetUniform[T](e.uniforms, name)
	if err != nil {
		return v, &UniformError{Name: name, Stage: e.stage, Err: ErrInvalidUniform}
	}
	return v, nil
}

// Shader is a program stage. Implementations must also implement
// VertexShader or FragmentShader.
type Shader interface {
	Stage() Stage
}

// VertexShader maps vertex i of buf to a homogeneous clip-space position.
//
// Shade is called concurrently for different vertices of the same draw call
// and must not mutate shared state.
type VertexShader interface {
	Shader
	Shade(env Env, buf *VertexBuffer, i int) (Vec4, error)
}

// FragmentShader chooses the cell written for every pixel a draw call covers.
// It is evaluated once per draw call.
type FragmentShader interface {
	Shader
	Fragment(env Env) (Cell, error)
}

// VertexFunc is a vertex shader body for vertices of type V.
type VertexFunc[V any] func(env Env, v V, i int) (Vec4, error)

type vertexFunc[V any] struct {
	fn VertexFunc[V]
}

// NewVertexShader wraps fn as a VertexShader reading vertices of type V.
// Shading a buffer that holds another vertex type fails with ErrVertexType.
func NewVertexShader[V any](fn VertexFunc[V]) VertexShader {
	return vertexFunc[V]{fn: fn}
}

func (vertexFunc[V]) Stage() Stage { return VertexStage }

func (s vertexFunc[V]) Shade(env Env, buf *VertexBuffer, i int) (Vec4, error) {
	v, ok := VertexAt[V](buf, i)
	if !ok {
		var zero V
		return Vec4{}, fmt.Errorf("%w: shader expects %T", ErrVertexType, zero)
	}
	return s.fn(env, v, i)
}

// FragmentFunc is a fragment shader body.
type FragmentFunc func(env Env) (Cell, error)

// Stage implements Shader.
func (FragmentFunc) Stage() Stage { return FragmentStage }

// Fragment implements FragmentShader.
func (f FragmentFunc) Fragment(env Env) (Cell, error) { return f(env) }

// SolidFragment returns a fragment shader that always yields cell.
func SolidFragment(cell Cell) FragmentShader {
	return FragmentFunc(func(Env) (Cell, error) { return cell, nil })
}

// UniformFragment returns a fragment shader reading the color from the
// uniform name and drawing it with glyph.
func UniformFragment(name string, glyph rune) FragmentShader {
	return FragmentFunc(func(env Env) (Cell, error) {
		c, err := Uniform[Color](env, name)
		if err != nil {
			return Cell{}, err
		}
		return Cell{Color: c, Glyph: glyph}, nil
	})
}
