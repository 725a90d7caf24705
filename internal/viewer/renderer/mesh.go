package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Traksewt/pv/pkg/render"
)

// Mesh holds the GPU-side buffers for one built representation. The
// position and normal buffers are uploaded once; the color buffer can
// be rewritten in place after a recolor without touching the rest.
type Mesh struct {
	topology render.Topology

	vao       uint32
	posVBO    uint32
	normalVBO uint32
	colorVBO  uint32
	ebo       uint32

	vertexCount int32
	indexCount  int32
}

// Upload creates GPU buffers for the given geometry.
// Must be called with a current OpenGL context.
func Upload(g *render.Geometry) *Mesh {
	m := &Mesh{
		topology:    g.Topology(),
		vertexCount: int32(g.VertexCount()),
		indexCount:  int32(g.IndexCount()),
	}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	positions := g.Positions()
	gl.GenBuffers(1, &m.posVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.posVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(positions)*4, unsafe.Pointer(&positions[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(0)

	normals := g.Normals()
	gl.GenBuffers(1, &m.normalVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.normalVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(normals)*4, unsafe.Pointer(&normals[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(1)

	colors := g.Colors()
	gl.GenBuffers(1, &m.colorVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.colorVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(colors)*4, unsafe.Pointer(&colors[0]), gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(2, 4, gl.FLOAT, false, 0, nil)
	gl.EnableVertexAttribArray(2)

	if m.indexCount > 0 {
		indices := g.Indices()
		gl.GenBuffers(1, &m.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	return m
}

// UpdateColors re-uploads the color buffer after a recolor or opacity
// change. The geometry must be the one this mesh was uploaded from.
func (m *Mesh) UpdateColors(g *render.Geometry) {
	colors := g.Colors()
	gl.BindBuffer(gl.ARRAY_BUFFER, m.colorVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(colors)*4, unsafe.Pointer(&colors[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// draw issues the draw call for this mesh's topology.
func (m *Mesh) draw() {
	gl.BindVertexArray(m.vao)
	switch m.topology {
	case render.TopologyTriangles:
		if m.indexCount > 0 {
			gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
		} else {
			gl.DrawArrays(gl.TRIANGLES, 0, m.vertexCount)
		}
	case render.TopologyLines:
		gl.DrawArrays(gl.LINES, 0, m.vertexCount)
	case render.TopologyPoints:
		gl.DrawArrays(gl.POINTS, 0, m.vertexCount)
	}
	gl.BindVertexArray(0)
}

// Delete releases the GPU buffers.
func (m *Mesh) Delete() {
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	for _, buf := range []uint32{m.posVBO, m.normalVBO, m.colorVBO, m.ebo} {
		if buf != 0 {
			b := buf
			gl.DeleteBuffers(1, &b)
		}
	}
	*m = Mesh{}
}
