package render

import (
	"errors"
	"fmt"

	"github.com/Traksewt/pv/pkg/math"
	"github.com/Traksewt/pv/pkg/mol"
)

// ErrInvalidOpacity is returned by SetOpacity for alpha outside [0, 1].
var ErrInvalidOpacity = errors.New("invalid opacity")

// Topology tags how the renderer should interpret the vertex stream.
type Topology uint8

// Primitive topologies.
const (
	TopologyLines Topology = iota
	TopologyTriangles
	TopologyPoints
)

// Geometry owns the flat attribute buffers of one built representation,
// ready for GPU upload. Position, normal, source-index and picking-id
// buffers are immutable after creation; only the color buffer is
// rewritten by ColorBy and SetOpacity. The source-index buffer maps
// each vertex to the same source entity for the lifetime of the object,
// which is what keeps recoloring correct without a rebuild.
type Geometry struct {
	topology  Topology
	structure *mol.Structure

	positions   []float32 // 3 floats per vertex
	normals     []float32 // 3 floats per vertex
	colors      []float32 // 4 floats per vertex, RGBA in [0,1]
	sourceIndex []int32   // 1 per vertex, index into refs
	pickIDs     []uint32  // 1 per vertex, one id per source entity
	indices     []uint32  // optional element indices (triangles)

	refs []Ref // per distinct source entity, ascending source-index order
}

// Topology returns the primitive topology tag.
func (g *Geometry) Topology() Topology {
	return g.topology
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.sourceIndex)
}

// Positions returns the position buffer (3 floats per vertex).
func (g *Geometry) Positions() []float32 {
	return g.positions
}

// Normals returns the normal buffer (3 floats per vertex).
func (g *Geometry) Normals() []float32 {
	return g.normals
}

// Colors returns the color buffer (4 floats per vertex).
func (g *Geometry) Colors() []float32 {
	return g.colors
}

// SourceIndices returns the per-vertex source entity indices.
func (g *Geometry) SourceIndices() []int32 {
	return g.sourceIndex
}

// PickIDs returns the per-vertex picking id buffer.
func (g *Geometry) PickIDs() []uint32 {
	return g.pickIDs
}

// Indices returns the element index buffer. Empty for non-indexed
// topologies.
func (g *Geometry) Indices() []uint32 {
	return g.indices
}

// IndexCount returns the number of element indices.
func (g *Geometry) IndexCount() int {
	return len(g.indices)
}

// Resolve maps a picking id back to its source entity.
func (g *Geometry) Resolve(pickID uint32) (Ref, bool) {
	if int(pickID) >= len(g.refs) {
		return Ref{}, false
	}
	return g.refs[int(pickID)], true
}

// ColorBy re-runs the coloring-operation lifecycle and overwrites the
// color buffer in place using the preserved source-index mapping.
// Geometry topology is untouched; the cost is one ColorFor call per
// distinct source entity plus a broadcast over the vertices. On error
// the color buffer is left unchanged.
func (g *Geometry) ColorBy(op Colorer) error {
	perSource := make([]float32, len(g.refs)*4)
	if err := applyColorer(g.structure, op, g.refs, perSource); err != nil {
		return err
	}
	for v, src := range g.sourceIndex {
		copy(g.colors[v*4:v*4+4], perSource[src*4:src*4+4])
	}
	return nil
}

// SetOpacity overwrites the alpha channel of every vertex color.
func (g *Geometry) SetOpacity(alpha float32) error {
	if alpha < 0 || alpha > 1 {
		return fmt.Errorf("%w: %v outside [0,1]", ErrInvalidOpacity, alpha)
	}
	for v := 0; v < len(g.colors)/4; v++ {
		g.colors[v*4+3] = alpha
	}
	return nil
}

// meshBuilder accumulates vertices and source entities during geometry
// construction, then freezes them into a Geometry.
type meshBuilder struct {
	topology  Topology
	positions []float32
	normals   []float32
	source    []int32
	indices   []uint32
	refs      []Ref
}

func newMeshBuilder(topology Topology) *meshBuilder {
	return &meshBuilder{topology: topology}
}

// addSource registers a source entity and returns its source index.
// Entities must be added in structure order.
func (b *meshBuilder) addSource(ref Ref) int32 {
	b.refs = append(b.refs, ref)
	return int32(len(b.refs) - 1)
}

// addVertex appends one vertex. Returns the vertex index for element
// indexing.
func (b *meshBuilder) addVertex(pos, normal math.Vec3, src int32) uint32 {
	b.positions = append(b.positions, pos.X, pos.Y, pos.Z)
	b.normals = append(b.normals, normal.X, normal.Y, normal.Z)
	b.source = append(b.source, src)
	return uint32(len(b.source) - 1)
}

func (b *meshBuilder) addTriangle(a, c, d uint32) {
	b.indices = append(b.indices, a, c, d)
}

// build runs the coloring pass and assembles the final Geometry. No
// partially-colored Geometry escapes: coloring happens into a scratch
// buffer before the object is assembled.
func (b *meshBuilder) build(s *mol.Structure, op Colorer) (*Geometry, error) {
	perSource := make([]float32, len(b.refs)*4)
	if err := applyColorer(s, op, b.refs, perSource); err != nil {
		return nil, err
	}

	nVerts := len(b.source)
	g := &Geometry{
		topology:    b.topology,
		structure:   s,
		positions:   b.positions,
		normals:     b.normals,
		colors:      make([]float32, nVerts*4),
		sourceIndex: b.source,
		pickIDs:     make([]uint32, nVerts),
		indices:     b.indices,
		refs:        b.refs,
	}
	for v, src := range b.source {
		copy(g.colors[v*4:v*4+4], perSource[src*4:src*4+4])
		g.pickIDs[v] = uint32(src)
	}
	return g, nil
}
