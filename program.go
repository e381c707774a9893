package termgl

import "fmt"

// Uniforms is a table of named shader parameters.
//
// Each uniform keeps the type it was first uploaded with; reads and later
// uploads must use the same type. The zero value is an empty table.
type Uniforms struct {
	values map[string]any
}

// UploadUniform stores value under name.
//
// If name already holds a value of another type, the stored value is left
// untouched and an error matching ErrUniformType is returned.
func UploadUniform[T any](u *Uniforms, name string, value T) error {
	if old, ok := u.values[name]; ok {
		if _, same := old.(T); !same {
			return fmt.Errorf("%w: %s holds %T, not %T", ErrUniformType, name, old, value)
		}
	}
	if u.values == nil {
		u.values = make(map[string]any)
	}
	u.values[name] = value
	return nil
}

// GetUniform returns the uniform name as a T.
//
// A missing name or a different stored type returns a *UniformError matching
// ErrInvalidUniform.
func GetUniform[T any](u *Uniforms, name string) (T, error) {
	v, ok := u.values[name].(T)
	if !ok {
		return v, &UniformError{Name: name, Err: ErrInvalidUniform}
	}
	return v, nil
}

// Len returns the number of uniforms.
func (u *Uniforms) Len() int {
	return len(u.values)
}

// Has reports whether a uniform named name exists.
func (u *Uniforms) Has(name string) bool {
	_, ok := u.values[name]
	return ok
}

// Delete removes the uniform name.
func (u *Uniforms) Delete(name string) {
	delete(u.values, name)
}

// Program pairs a vertex and a fragment shader with their uniforms.
type Program struct {
	Uniforms

	vertex   VertexShader
	fragment FragmentShader
}

// NewProgram returns an empty program with no shaders attached.
func NewProgram() *Program {
	return &Program{}
}

// Attach sets the shader for the stage s implements, replacing any shader
// previously attached to that stage.
func (p *Program) Attach(s Shader) error {
	switch sh := s.(type) {
	case VertexShader:
		p.vertex = sh
	case FragmentShader:
		p.fragment = sh
	default:
		return fmt.Errorf("%w: %T", ErrUnknownShader, s)
	}
	return nil
}

// VertexShader returns the attached vertex shader, or nil.
func (p *Program) VertexShader() VertexShader {
	return p.vertex
}

// FragmentShader returns the attached fragment shader, or nil.
func (p *Program) FragmentShader() FragmentShader {
	return p.fragment
}

// IsValid reports whether both stages are attached.
func (p *Program) IsValid() bool {
	return p.vertex != nil && p.fragment != nil
}

// env returns the evaluation environment of stage.
func (p *Program) env(stage Stage) Env {
	return Env{stage: stage, uniforms: &p.Uniforms}
}
