package primitive

import "fmt"

// Topology is the rule grouping a flat index list into primitives.
type Topology int

// Supported topologies.
const (
	Points Topology = iota
	Lines
	LineLoop
	LineStrip
	Triangles
	TriangleStrip
	TriangleFan
)

var topologyNames = [...]string{
	Points:        "POINTS",
	Lines:         "LINES",
	LineLoop:      "LINE_LOOP",
	LineStrip:     "LINE_STRIP",
	Triangles:     "TRIANGLES",
	TriangleStrip: "TRIANGLE_STRIP",
	TriangleFan:   "TRIANGLE_FAN",
}

// String returns the GL-style name of the topology.
func (t Topology) String() string {
	if t >= 0 && int(t) < len(topologyNames) {
		return topologyNames[t]
	}
	return fmt.Sprintf("Topology(%d)", int(t))
}

// Valid reports whether t is one of the supported topologies.
func (t Topology) Valid() bool {
	return t >= Points && t <= TriangleFan
}

// Count returns the number of primitives t assembles from n indices.
func (t Topology) Count(n int) int {
	switch t {
	case Points:
		return n
	case Lines:
		return n / 2
	case LineLoop:
		switch {
		case n < 2:
			return 0
		case n == 2:
			return 1
		default:
			return n
		}
	case LineStrip:
		if n < 2 {
			return 0
		}
		return n - 1
	case Triangles:
		return n / 3
	case TriangleStrip, TriangleFan:
		if n < 3 {
			return 0
		}
		return n - 2
	default:
		return 0
	}
}

// Assemble appends the primitives described by indices under topology t.
// The store is not cleared first. Unsupported topologies assemble nothing.
func Assemble(t Topology, s *Store, indices []uint32) {
	n := len(indices)
	switch t {
	case Points:
		s.Reserve(n, Point)
		for _, i := range indices {
			s.InsertPoint(i)
		}

	case Lines:
		n -= n % 2
		s.Reserve(n/2, Line)
		for i := 0; i < n; i += 2 {
			s.InsertLine(indices[i], indices[i+1])
		}

	case LineLoop:
		if n < 2 {
			return
		}
		if n == 2 {
			s.InsertLine(indices[0], indices[1])
			return
		}
		s.Reserve(n, Line)
		for i := 1; i <= n; i++ {
			s.InsertLine(indices[i-1], indices[i%n])
		}

	case LineStrip:
		if n < 2 {
			return
		}
		s.Reserve(n-1, Line)
		for i := 1; i < n; i++ {
			s.InsertLine(indices[i-1], indices[i])
		}

	case Triangles:
		n -= n % 3
		s.Reserve(n/3, Triangle)
		for i := 0; i < n; i += 3 {
			s.InsertTriangle(indices[i], indices[i+1], indices[i+2])
		}

	case TriangleStrip:
		if n < 3 {
			return
		}
		s.Reserve(n-2, Triangle)
		for i := 2; i < n; i++ {
			s.InsertTriangle(indices[i-2], indices[i-1], indices[i])
		}

	case TriangleFan:
		if n < 3 {
			return
		}
		s.Reserve(n-2, Triangle)
		pivot := indices[0]
		for i := 2; i < n; i++ {
			s.InsertTriangle(pivot, indices[i-1], indices[i])
		}
	}
}
