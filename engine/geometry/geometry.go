// Package geometry holds CPU-side vertex data and the disposal protocol the
// GPU buffer manager observes.
package geometry

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// AttributeType doubles as the shader attribute location.
type AttributeType int

const (
	Position AttributeType = iota
	Normal
	UV
	Color
)

func (t AttributeType) String() string {
	switch t {
	case Position:
		return "position"
	case Normal:
		return "normal"
	case UV:
		return "uv"
	case Color:
		return "color"
	default:
		return "unknown"
	}
}

// Attribute describes one interleaved vertex component, in floats.
type Attribute struct {
	Type     AttributeType
	ItemSize int
}

// Primitive is how vertices are assembled when drawn.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

type Geometry struct {
	id         uuid.UUID
	vertex     []float32
	index      []uint32
	attributes []Attribute
	primitive  Primitive

	disposed  bool
	onDispose []func(*Geometry)
}

// New builds a geometry from interleaved vertex data laid out as attrs.
// index may be empty for non-indexed drawing.
func New(vertex []float32, index []uint32, attrs []Attribute) *Geometry {
	return &Geometry{
		id:         uuid.New(),
		vertex:     vertex,
		index:      index,
		attributes: attrs,
	}
}

func (g *Geometry) ID() uuid.UUID           { return g.id }
func (g *Geometry) VertexData() []float32   { return g.vertex }
func (g *Geometry) IndexData() []uint32     { return g.index }
func (g *Geometry) Attributes() []Attribute { return g.attributes }
func (g *Geometry) Primitive() Primitive    { return g.primitive }

// Stride is the number of floats per vertex.
func (g *Geometry) Stride() int {
	n := 0
	for _, a := range g.attributes {
		n += a.ItemSize
	}
	return n
}

func (g *Geometry) VertexCount() int {
	if s := g.Stride(); s > 0 {
		return len(g.vertex) / s
	}
	return 0
}

func (g *Geometry) HasAttribute(t AttributeType) bool {
	for _, a := range g.attributes {
		if a.Type == t {
			return true
		}
	}
	return false
}

// Offset returns the float offset of t inside a vertex, or -1.
func (g *Geometry) Offset(t AttributeType) int {
	off := 0
	for _, a := range g.attributes {
		if a.Type == t {
			return off
		}
		off += a.ItemSize
	}
	return -1
}

func (g *Geometry) itemSize(t AttributeType) int {
	for _, a := range g.attributes {
		if a.Type == t {
			return a.ItemSize
		}
	}
	return 0
}

// Bounds returns the axis-aligned box spanned by the position attribute.
// Geometries without 3D positions report an empty box.
func (g *Geometry) Bounds() (lo, hi mgl32.Vec3) {
	off, stride := g.Offset(Position), g.Stride()
	if off < 0 || stride == 0 || len(g.vertex) < stride || g.itemSize(Position) < 3 {
		return
	}
	for i := 0; i+stride <= len(g.vertex); i += stride {
		p := mgl32.Vec3{g.vertex[i+off], g.vertex[i+off+1], g.vertex[i+off+2]}
		if i == 0 {
			lo, hi = p, p
			continue
		}
		for k := 0; k < 3; k++ {
			if p[k] < lo[k] {
				lo[k] = p[k]
			}
			if p[k] > hi[k] {
				hi[k] = p[k]
			}
		}
	}
	return lo, hi
}

// OnDispose registers fn to run when the geometry is disposed.
func (g *Geometry) OnDispose(fn func(*Geometry)) {
	g.onDispose = append(g.onDispose, fn)
}

// Dispose notifies observers once, in registration order.
func (g *Geometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	cbs := g.onDispose
	g.onDispose = nil
	for _, fn := range cbs {
		fn(g)
	}
}

func (g *Geometry) Disposed() bool { return g.disposed }

func (g *Geometry) String() string {
	return fmt.Sprintf("Geometry(%s, %d vertices)", g.id, g.VertexCount())
}
