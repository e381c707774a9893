package termgl

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidUniform is returned when a uniform is read under a name that
	// was never set or as a type other than the stored one.
	ErrInvalidUniform = errors.New("termgl: invalid uniform")

	// ErrUniformType is returned when a uniform is uploaded with a type that
	// differs from the type it was first set with.
	ErrUniformType = errors.New("termgl: uniform type mismatch")

	// ErrVertexType is returned when a vertex shader reads a buffer whose
	// vertices have a different type than the shader expects.
	ErrVertexType = errors.New("termgl: vertex type mismatch")

	// ErrCorruptPrimitive reports a primitive record with an arity other than
	// 1, 2 or 3. It is always delivered to the Reporter first.
	ErrCorruptPrimitive = errors.New("termgl: corrupt primitive store")

	// ErrClosed is returned by operations on a closed Context.
	ErrClosed = errors.New("termgl: context is closed")

	// ErrUnknownShader is returned when a shader implements neither the
	// vertex nor the fragment stage.
	ErrUnknownShader = errors.New("termgl: unknown shader stage")
)

// UniformError describes a failed uniform read.
//
// Stage is zero when the read was made directly on a program, and names the
// shader stage when the read happened during shader evaluation.
type UniformError struct {
	Name  string
	Stage Stage
	Err   error
}

func (e *UniformError) Error() string {
	if e.Stage != 0 {
		return fmt.Sprintf("termgl: uniform type mismatch in %s shader: %s", e.Stage, e.Name)
	}
	return fmt.Sprintf("%v: %s", e.Err, e.Name)
}

func (e *UniformError) Unwrap() error {
	return e.Err
}
