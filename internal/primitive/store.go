// Package primitive holds the assembled primitives of one draw call.
//
// Records are stored back to back in a single byte arena with no padding:
//
//	[arity u8][index u32 little endian] * arity
//
// so a point takes 5 bytes, a line 9 and a triangle 13. Records are addressed
// by byte offsets (Iterator), never by pointers, so the arena can grow or be
// compacted freely between calls.
package primitive

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// IndexSize is the encoded size of one vertex index.
const IndexSize = 4

// DefaultCapacity is the initial arena size in bytes.
const DefaultCapacity = 1024

// ErrCorrupt is returned when a record carries an arity outside {1, 2, 3}.
var ErrCorrupt = errors.New("primitive: unsupported primitive arity")

// Kind is the arity of a primitive record.
type Kind uint8

// Primitive kinds. The value of each kind is its vertex count.
const (
	Point    Kind = 1
	Line     Kind = 2
	Triangle Kind = 3
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Point:
		return "point"
	case Line:
		return "line"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Valid reports whether k is a supported arity.
func (k Kind) Valid() bool {
	return k >= Point && k <= Triangle
}

// RecordSize returns the encoded size of a record of kind k.
func (k Kind) RecordSize() int {
	return 1 + int(k)*IndexSize
}

// Primitive is a decoded record. Only the first Kind indices are meaningful.
type Primitive struct {
	Kind    Kind
	Indices [3]uint32
}

// NewPoint returns a point record.
func NewPoint(i0 uint32) Primitive {
	return Primitive{Kind: Point, Indices: [3]uint32{i0}}
}

// NewLine returns a line record.
func NewLine(i0, i1 uint32) Primitive {
	return Primitive{Kind: Line, Indices: [3]uint32{i0, i1}}
}

// NewTriangle returns a triangle record.
func NewTriangle(i0, i1, i2 uint32) Primitive {
	return Primitive{Kind: Triangle, Indices: [3]uint32{i0, i1, i2}}
}

// Vertices returns the meaningful indices of p.
func (p Primitive) Vertices() []uint32 {
	return p.Indices[:p.Kind]
}

// Iterator is the byte offset of a record inside a Store.
type Iterator int

// Store is a growable arena of variable-length primitive records.
//
// Store is not safe for concurrent use. It is only touched by the sequential
// stages of a draw call.
type Store struct {
	data  []byte
	pos   int // bytes in use
	count int // records in use
}

// NewStore creates a store with an arena of the given size in bytes.
// A non-positive capacity selects DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{data: make([]byte, capacity)}
}

// Len returns the number of records.
func (s *Store) Len() int { return s.count }

// Size returns the number of bytes used by the records.
func (s *Store) Size() int { return s.pos }

// Cap returns the arena size in bytes.
func (s *Store) Cap() int { return len(s.data) }

// Raw returns the encoded records for debugging and for tests that need to
// damage the arena. The slice aliases the arena and is only valid until the
// next mutation. Writing through it can leave the store corrupt; At and Each
// report that as ErrCorrupt.
func (s *Store) Raw() []byte { return s.data[:s.pos] }

// Begin returns an iterator to the first record.
func (s *Store) Begin() Iterator { return 0 }

// End returns the past-the-end iterator.
func (s *Store) End() Iterator { return Iterator(s.pos) }

// Clear drops every record and keeps the arena.
func (s *Store) Clear() {
	s.pos = 0
	s.count = 0
}

// Insert appends p. It panics if p.Kind is not a supported arity.
func (s *Store) Insert(p Primitive) {
	if !p.Kind.Valid() {
		panic(fmt.Sprintf("primitive: cannot insert %v", p.Kind))
	}
	size := p.Kind.RecordSize()
	for len(s.data) < s.pos+size {
		s.grow(len(s.data) / 2)
	}
	s.encode(s.pos, p)
	s.pos += size
	s.count++
}

// InsertPoint appends a point.
func (s *Store) InsertPoint(i0 uint32) { s.Insert(NewPoint(i0)) }

// InsertLine appends a line.
func (s *Store) InsertLine(i0, i1 uint32) { s.Insert(NewLine(i0, i1)) }

// InsertTriangle appends a triangle.
func (s *Store) InsertTriangle(i0, i1, i2 uint32) { s.Insert(NewTriangle(i0, i1, i2)) }

// Reserve grows the arena so that n more records of kind k fit without
// reallocation. Existing records are untouched.
func (s *Store) Reserve(n int, k Kind) {
	if n <= 0 || !k.Valid() {
		return
	}
	target := s.pos + n*k.RecordSize()
	if len(s.data) < target {
		s.grow(target - len(s.data))
	}
}

// At decodes the record at it. It returns ErrCorrupt if the record's arity
// is not 1, 2 or 3.
func (s *Store) At(it Iterator) (Primitive, error) {
	k := Kind(s.data[it])
	if !k.Valid() {
		return Primitive{}, fmt.Errorf("%w: %d at offset %d", ErrCorrupt, uint8(k), int(it))
	}
	var p Primitive
	p.Kind = k
	off := int(it) + 1
	for i := 0; i < int(k); i++ {
		p.Indices[i] = binary.LittleEndian.Uint32(s.data[off+i*IndexSize:])
	}
	return p, nil
}

// Set overwrites the indices of the record at it. The arity of p must match
// the arity already stored there.
func (s *Store) Set(it Iterator, p Primitive) error {
	if k := Kind(s.data[it]); k != p.Kind {
		return fmt.Errorf("primitive: cannot overwrite %v with %v", k, p.Kind)
	}
	s.encode(int(it), p)
	return nil
}

// Next returns the iterator following it.
func (s *Store) Next(it Iterator) Iterator {
	return it + Iterator(Kind(s.data[it]).RecordSize())
}

// Nth returns an iterator to the i-th record. Records have variable length,
// so this walks the arena from the start.
func (s *Store) Nth(i int) Iterator {
	it := s.Begin()
	for ; i > 0; i-- {
		it = s.Next(it)
	}
	return it
}

// Distance returns the number of records in [first, last).
func (s *Store) Distance(first, last Iterator) int {
	n := 0
	for it := first; it < last; it = s.Next(it) {
		n++
	}
	return n
}

// Erase removes the record at it and returns an iterator to the record that
// now occupies its position (or End).
func (s *Store) Erase(it Iterator) Iterator {
	if it >= s.End() {
		return s.End()
	}
	return s.EraseRange(it, s.Next(it))
}

// EraseRange removes the records in [first, last) and returns first, which
// now addresses the record that followed the range (or End).
func (s *Store) EraseRange(first, last Iterator) Iterator {
	if last > s.End() {
		last = s.End()
	}
	if first >= last {
		return last
	}
	removed := s.Distance(first, last)
	copy(s.data[first:], s.data[last:s.pos])
	s.pos -= int(last - first)
	s.count -= removed
	return first
}

// Each calls fn for every record in order. It stops at the first error,
// including ErrCorrupt for an undecodable record.
func (s *Store) Each(fn func(it Iterator, p Primitive) error) error {
	for it := s.Begin(); it < s.End(); {
		p, err := s.At(it)
		if err != nil {
			return err
		}
		if err := fn(it, p); err != nil {
			return err
		}
		it = s.Next(it)
	}
	return nil
}

func (s *Store) encode(off int, p Primitive) {
	s.data[off] = byte(p.Kind)
	off++
	for i := 0; i < int(p.Kind); i++ {
		binary.LittleEndian.PutUint32(s.data[off+i*IndexSize:], p.Indices[i])
	}
}

// grow enlarges the arena by at least additional bytes, never by less than
// one record.
func (s *Store) grow(additional int) {
	if additional < Triangle.RecordSize() {
		additional = Triangle.RecordSize()
	}
	data := make([]byte, len(s.data)+additional)
	copy(data, s.data[:s.pos])
	s.data = data
}
