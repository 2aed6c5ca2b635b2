package scene

import (
	"github.com/hubastard/grove3d/engine/geometry"
	"github.com/hubastard/grove3d/engine/materials"
)

// Renderable is a node that contributes geometry and a material to a draw.
type Renderable interface {
	Object
	Geometry() *geometry.Geometry
	Material() materials.Material
}

type Mesh struct {
	Node
	geometry *geometry.Geometry
	material materials.Material
}

func NewMesh(g *geometry.Geometry, m materials.Material) *Mesh {
	mesh := &Mesh{}
	mesh.InitMesh(mesh, KindMesh, g, m)
	return mesh
}

// InitMesh prepares a Mesh embedded in another node kind.
func (m *Mesh) InitMesh(self Object, kind Kind, g *geometry.Geometry, mat materials.Material) {
	m.geometry = g
	m.material = mat
	m.Init(self, kind)
}

func (m *Mesh) Geometry() *geometry.Geometry { return m.geometry }
func (m *Mesh) Material() materials.Material { return m.material }

// SetGeometry swaps the geometry. The old one is left alone; dispose it to
// free its GPU buffers.
func (m *Mesh) SetGeometry(g *geometry.Geometry) { m.geometry = g }
func (m *Mesh) SetMaterial(mat materials.Material) { m.material = mat }
