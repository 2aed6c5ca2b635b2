package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/grove3d/engine/geometry"
	"github.com/hubastard/grove3d/engine/gfx/buffers"
)

// Device uploads geometries as one interleaved VBO plus an optional EBO.
// Attribute locations follow geometry.AttributeType.
type Device struct{}

var _ buffers.Device = Device{}

func (Device) CreateBuffers(geo *geometry.Geometry) buffers.State {
	var s buffers.State
	gl.GenVertexArrays(1, &s.VAO)
	gl.BindVertexArray(s.VAO)

	vertex := geo.VertexData()
	gl.GenBuffers(1, &s.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.VBO)
	if len(vertex) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertex)*4, gl.Ptr(vertex), gl.STATIC_DRAW)
	}

	stride := int32(geo.Stride() * 4)
	for _, a := range geo.Attributes() {
		loc := uint32(a.Type)
		gl.EnableVertexAttribArray(loc)
		gl.VertexAttribPointerWithOffset(loc, int32(a.ItemSize), gl.FLOAT, false, stride, uintptr(geo.Offset(a.Type)*4))
	}

	index := geo.IndexData()
	if len(index) > 0 {
		gl.GenBuffers(1, &s.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, s.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(index)*4, gl.Ptr(index), gl.STATIC_DRAW)
		s.Count = int32(len(index))
	} else {
		s.Count = int32(geo.VertexCount())
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return s
}

func (Device) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (Device) DeleteBuffers(s buffers.State) {
	if s.EBO != 0 {
		gl.DeleteBuffers(1, &s.EBO)
	}
	if s.VBO != 0 {
		gl.DeleteBuffers(1, &s.VBO)
	}
	if s.VAO != 0 {
		gl.DeleteVertexArrays(1, &s.VAO)
	}
}
