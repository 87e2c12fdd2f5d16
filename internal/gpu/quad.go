package gpu

import "github.com/gogpu/gputypes"

// QuadDescriptor describes a vertex-free primitive. Vertex positions are
// derived from the vertex index, so no buffer is attached.
type QuadDescriptor struct {
	Vertices int
	Topology gputypes.PrimitiveTopology
}

// FullscreenQuad is the 4-vertex strip covering the whole target.
func FullscreenQuad() QuadDescriptor {
	return QuadDescriptor{Vertices: 4, Topology: gputypes.PrimitiveTopologyTriangleStrip}
}

// Validate rejects descriptors that do not cover a rectangle.
func (d QuadDescriptor) Validate() error {
	if d.Vertices != 4 {
		return Errorf(GeometryError, "quad", "%d vertices, want 4", d.Vertices)
	}
	if d.Topology != gputypes.PrimitiveTopologyTriangleStrip {
		return Errorf(GeometryError, "quad", "unsupported topology %v", d.Topology)
	}
	return nil
}

// Corner returns the unit-square corner of vertex i, matching the shared
// vertex stage: x = i & 1, y = i >> 1.
func Corner(i int) [2]float32 {
	return [2]float32{float32(i & 1), float32(i >> 1)}
}

// StripIndices expands a 4-vertex strip into triangle-list indices for
// backends that only draw lists.
func StripIndices() []uint16 {
	return []uint16{0, 1, 2, 2, 1, 3}
}
