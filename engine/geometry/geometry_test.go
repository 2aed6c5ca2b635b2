package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	g := New(
		[]float32{0, 0, 0, 1, 0, 0, 1, 1, 1, 0, 1, 0, 0, 0, 1},
		nil,
		[]Attribute{{Type: Position, ItemSize: 3}, {Type: Color, ItemSize: 3}},
	)
	assert.Equal(t, 6, g.Stride())
	assert.Equal(t, 2, g.VertexCount())
	assert.True(t, g.HasAttribute(Color))
	assert.False(t, g.HasAttribute(UV))
	assert.Equal(t, 3, g.Offset(Color))
	assert.Equal(t, -1, g.Offset(Normal))
}

func TestDisposeRunsCallbacksOnce(t *testing.T) {
	g := NewPlane(1, 1, 1, 1)
	var order []int
	g.OnDispose(func(got *Geometry) {
		assert.Same(t, g, got)
		order = append(order, 1)
	})
	g.OnDispose(func(*Geometry) { order = append(order, 2) })

	g.Dispose()
	g.Dispose()

	assert.True(t, g.Disposed())
	assert.Equal(t, []int{1, 2}, order)
}

func TestIdentityIsStable(t *testing.T) {
	a, b := NewPlane(1, 1, 1, 1), NewPlane(1, 1, 1, 1)
	assert.Equal(t, a.ID(), a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestPrimitives(t *testing.T) {
	tests := []struct {
		name     string
		geo      *Geometry
		vertices int
		indices  int
	}{
		{"plane", NewPlane(2, 2, 2, 1), 6, 12},
		{"box", NewBox(1, 1, 1, 1), 24, 36},
		{"sphere", NewSphere(1, 8, 4), 45, 8*4*6 - 2*8*3},
		{"cylinder", NewCylinder(1, 1, 2, 8), 18 + 2*10, 8*6 + 2*8*3},
		{"cone", NewCone(1, 2, 8), 18 + 10, 8*6 + 8*3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, 8, tt.geo.Stride())
			assert.Equal(t, tt.vertices, tt.geo.VertexCount())
			assert.Len(t, tt.geo.IndexData(), tt.indices)
			for _, i := range tt.geo.IndexData() {
				assert.Less(t, int(i), tt.geo.VertexCount())
			}
		})
	}
}

func TestBounds(t *testing.T) {
	lo, hi := NewBox(2, 4, 6, 1).Bounds()
	assert.Equal(t, mgl32.Vec3{-1, -2, -3}, lo)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, hi)
}

func TestBoundsIgnores2DPositions(t *testing.T) {
	g := New([]float32{0, 0, 1, 1, 2, 0}, nil, []Attribute{{Type: Position, ItemSize: 2}})
	var lo, hi mgl32.Vec3
	assert.NotPanics(t, func() { lo, hi = g.Bounds() })
	assert.Equal(t, mgl32.Vec3{}, lo)
	assert.Equal(t, mgl32.Vec3{}, hi)
}

func TestGridLines(t *testing.T) {
	g := NewGridLines(4, 2)
	assert.Equal(t, Lines, g.Primitive())
	assert.Equal(t, 3, g.Stride())
	assert.Equal(t, 12, g.VertexCount(), "two lines per division boundary")
	assert.Empty(t, g.IndexData())

	lo, hi := g.Bounds()
	assert.Equal(t, mgl32.Vec3{-2, 0, -2}, lo)
	assert.Equal(t, mgl32.Vec3{2, 0, 2}, hi)

	assert.Equal(t, 8, NewGridLines(1, 0).VertexCount(), "divisions clamp to one")
}

func TestBoxLines(t *testing.T) {
	lo, hi := mgl32.Vec3{-1, 0, -2}, mgl32.Vec3{1, 3, 2}
	g := NewBoxLines(lo, hi)
	assert.Equal(t, Lines, g.Primitive())
	assert.Equal(t, 8, g.VertexCount())
	require.Len(t, g.IndexData(), 24)

	glo, ghi := g.Bounds()
	assert.Equal(t, lo, glo)
	assert.Equal(t, hi, ghi)

	// Every edge joins corners that differ on exactly one axis.
	v := g.VertexData()
	idx := g.IndexData()
	for i := 0; i < len(idx); i += 2 {
		a, b := idx[i], idx[i+1]
		diff := 0
		for k := uint32(0); k < 3; k++ {
			if v[a*3+k] != v[b*3+k] {
				diff++
			}
		}
		assert.Equal(t, 1, diff, "edge %d-%d", a, b)
	}
}

func TestPrimitivesAreTriangles(t *testing.T) {
	assert.Equal(t, Triangles, NewBox(1, 1, 1, 1).Primitive())
}
