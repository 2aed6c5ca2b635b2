// Package helpers provides debug nodes drawn as unlit lines: a reference grid
// and an axis-aligned bounding box. Both own their geometry and free it on
// Dispose.
package helpers

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/grove3d/engine/colors"
	"github.com/hubastard/grove3d/engine/geometry"
	"github.com/hubastard/grove3d/engine/materials"
	"github.com/hubastard/grove3d/engine/scene"
)

type GridParams struct {
	Size      float32
	Divisions int
	Color     colors.Color
}

// Grid is a square grid on the XZ plane, centered on its origin.
type Grid struct {
	scene.Mesh
	Params GridParams
}

func NewGrid(p GridParams) *Grid {
	g := &Grid{Params: p}
	g.InitMesh(g, scene.KindHelper, geometry.NewGridLines(p.Size, p.Divisions), lineMaterial(p.Color))
	g.Name = "grid"
	return g
}

func (g *Grid) Dispose() {
	g.Geometry().Dispose()
	g.Mesh.Dispose()
}

// BoundingBox outlines the box [Min, Max] in the node's local space.
type BoundingBox struct {
	scene.Mesh
	Min, Max mgl32.Vec3
}

func NewBoundingBox(lo, hi mgl32.Vec3, c colors.Color) *BoundingBox {
	b := &BoundingBox{Min: lo, Max: hi}
	b.InitMesh(b, scene.KindHelper, geometry.NewBoxLines(lo, hi), lineMaterial(c))
	b.Name = "bounds"
	return b
}

// BoundsOf outlines the position bounds of g.
func BoundsOf(g *geometry.Geometry, c colors.Color) *BoundingBox {
	lo, hi := g.Bounds()
	return NewBoundingBox(lo, hi, c)
}

// SetBox replaces the outlined box, disposing the previous geometry.
func (b *BoundingBox) SetBox(lo, hi mgl32.Vec3) {
	old := b.Geometry()
	b.Min, b.Max = lo, hi
	b.SetGeometry(geometry.NewBoxLines(lo, hi))
	old.Dispose()
}

func (b *BoundingBox) Dispose() {
	b.Geometry().Dispose()
	b.Mesh.Dispose()
}

func lineMaterial(c colors.Color) *materials.FlatMaterial {
	m := materials.NewFlat(c)
	m.Fog = false
	return m
}
