package termgl

import "unsafe"

// vertexStore is the type-erased backing array of a VertexBuffer.
type vertexStore interface {
	copyN(n int) vertexStore
}

type vertexSlice[V any] []V

func (s vertexSlice[V]) copyN(n int) vertexStore {
	return append(vertexSlice[V](nil), s[:n]...)
}

// VertexBuffer holds a densely packed array of client-defined vertices.
//
// The buffer is type-erased: any struct type can be stored, and the stride
// changes with the vertex type on every upload. Vertices are read back with
// the generic VertexAt and Vertices functions, which report whether the
// requested type matches the stored one.
//
// The zero value is an empty buffer ready to use.
type VertexBuffer struct {
	data   vertexStore
	count  int
	stride uintptr
}

// SetVertices replaces the contents of b with a copy of vertices.
//
// When the previous upload used the same vertex type and the backing array
// is large enough, it is reused; shrinking never releases storage.
func SetVertices[V any](b *VertexBuffer, vertices []V) {
	s, ok := b.data.(vertexSlice[V])
	if ok && cap(s) >= len(vertices) {
		s = s[:len(vertices)]
	} else {
		s = make(vertexSlice[V], len(vertices))
	}
	copy(s, vertices)

	var zero V
	b.data = s
	b.count = len(vertices)
	b.stride = unsafe.Sizeof(zero)
}

// VertexAt returns vertex i interpreted as V. ok is false when the buffer
// holds a different vertex type or i is out of range.
func VertexAt[V any](b *VertexBuffer, i int) (v V, ok bool) {
	s, ok := b.data.(vertexSlice[V])
	if !ok || i < 0 || i >= b.count {
		return v, false
	}
	return s[i], true
}

// Vertices returns the stored vertices as a []V aliasing the buffer.
// ok is false when the buffer holds a different vertex type.
func Vertices[V any](b *VertexBuffer) (vs []V, ok bool) {
	s, ok := b.data.(vertexSlice[V])
	if !ok {
		return nil, false
	}
	return s[:b.count], true
}

// Count returns the number of vertices.
func (b *VertexBuffer) Count() int {
	return b.count
}

// Stride returns the size in bytes of one vertex.
func (b *VertexBuffer) Stride() uintptr {
	return b.stride
}

// Size returns the size in bytes of the stored vertices.
func (b *VertexBuffer) Size() uintptr {
	return b.stride * uintptr(b.count)
}

// Clear empties the buffer. Storage is retained for the next upload.
func (b *VertexBuffer) Clear() {
	b.count = 0
	b.stride = 0
}

// Clone returns an independent copy holding at most limit vertices.
// A negative limit copies every vertex.
func (b *VertexBuffer) Clone(limit int) *VertexBuffer {
	if limit < 0 || limit > b.count {
		limit = b.count
	}
	if b.data == nil || limit == 0 {
		return &VertexBuffer{}
	}
	return &VertexBuffer{
		data:   b.data.copyN(limit),
		count:  limit,
		stride: b.stride,
	}
}
