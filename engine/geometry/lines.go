package geometry

import "github.com/go-gl/mathgl/mgl32"

var lineLayout = []Attribute{{Type: Position, ItemSize: 3}}

// NewGridLines builds a size x size reference grid on the XZ plane, centered
// on the origin, with divisions cells per side.
func NewGridLines(size float32, divisions int) *Geometry {
	divisions = max(divisions, 1)
	half := size / 2
	step := size / float32(divisions)

	vertex := make([]float32, 0, (divisions+1)*12)
	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		vertex = append(vertex,
			-half, 0, k, half, 0, k,
			k, 0, -half, k, 0, half,
		)
	}
	g := New(vertex, nil, lineLayout)
	g.primitive = Lines
	return g
}

// NewBoxLines builds the twelve edges of the axis-aligned box [lo, hi].
func NewBoxLines(lo, hi mgl32.Vec3) *Geometry {
	vertex := make([]float32, 0, 8*3)
	for i := 0; i < 8; i++ {
		c := lo
		if i&1 != 0 {
			c[0] = hi[0]
		}
		if i&2 != 0 {
			c[1] = hi[1]
		}
		if i&4 != 0 {
			c[2] = hi[2]
		}
		vertex = append(vertex, c[0], c[1], c[2])
	}
	index := []uint32{
		0, 1, 2, 3, 4, 5, 6, 7, // along X
		0, 2, 1, 3, 4, 6, 5, 7, // along Y
		0, 4, 1, 5, 2, 6, 3, 7, // along Z
	}
	g := New(vertex, index, lineLayout)
	g.primitive = Lines
	return g
}
