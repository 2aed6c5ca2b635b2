package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Primitives interleave position, normal and uv.
var standardLayout = []Attribute{
	{Type: Position, ItemSize: 3},
	{Type: Normal, ItemSize: 3},
	{Type: UV, ItemSize: 2},
}

type builder struct {
	vertex []float32
	index  []uint32
}

func (b *builder) vertexCount() uint32 { return uint32(len(b.vertex) / 8) }

func (b *builder) add(p, n mgl32.Vec3, u, v float32) {
	b.vertex = append(b.vertex, p[0], p[1], p[2], n[0], n[1], n[2], u, v)
}

func (b *builder) build() *Geometry {
	return New(b.vertex, b.index, standardLayout)
}

// grid appends a (cols+1)x(rows+1) vertex grid spanning origin + [0,1]*uAxis
// + [0,1]*vAxis and indexes it as counter-clockwise quads.
func (b *builder) grid(origin, uAxis, vAxis, normal mgl32.Vec3, cols, rows int) {
	start := b.vertexCount()
	for iy := 0; iy <= rows; iy++ {
		fv := float32(iy) / float32(rows)
		for ix := 0; ix <= cols; ix++ {
			fu := float32(ix) / float32(cols)
			p := origin.Add(uAxis.Mul(fu)).Add(vAxis.Mul(fv))
			b.add(p, normal, fu, fv)
		}
	}
	row := uint32(cols + 1)
	for iy := 0; iy < rows; iy++ {
		for ix := 0; ix < cols; ix++ {
			a := start + uint32(iy)*row + uint32(ix)
			b.index = append(b.index, a, a+1, a+row+1, a, a+row+1, a+row)
		}
	}
}

// NewPlane builds a plane on the XY plane facing +Z, centered at the origin.
func NewPlane(width, height float32, widthSegments, heightSegments int) *Geometry {
	widthSegments, heightSegments = atLeast(widthSegments, 1), atLeast(heightSegments, 1)
	var b builder
	b.grid(
		mgl32.Vec3{-width / 2, -height / 2, 0},
		mgl32.Vec3{width, 0, 0},
		mgl32.Vec3{0, height, 0},
		mgl32.Vec3{0, 0, 1},
		widthSegments, heightSegments,
	)
	return b.build()
}

// NewBox builds an axis-aligned box centered at the origin.
func NewBox(width, height, depth float32, segments int) *Geometry {
	segments = atLeast(segments, 1)
	w, h, d := width/2, height/2, depth/2
	var b builder
	faces := []struct{ origin, u, v, n mgl32.Vec3 }{
		{mgl32.Vec3{w, -h, d}, mgl32.Vec3{0, 0, -depth}, mgl32.Vec3{0, height, 0}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{-w, -h, -d}, mgl32.Vec3{0, 0, depth}, mgl32.Vec3{0, height, 0}, mgl32.Vec3{-1, 0, 0}},
		{mgl32.Vec3{-w, h, d}, mgl32.Vec3{width, 0, 0}, mgl32.Vec3{0, 0, -depth}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-w, -h, -d}, mgl32.Vec3{width, 0, 0}, mgl32.Vec3{0, 0, depth}, mgl32.Vec3{0, -1, 0}},
		{mgl32.Vec3{-w, -h, d}, mgl32.Vec3{width, 0, 0}, mgl32.Vec3{0, height, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{w, -h, -d}, mgl32.Vec3{-width, 0, 0}, mgl32.Vec3{0, height, 0}, mgl32.Vec3{0, 0, -1}},
	}
	for _, f := range faces {
		b.grid(f.origin, f.u, f.v, f.n, segments, segments)
	}
	return b.build()
}

// NewSphere builds a UV sphere centered at the origin.
func NewSphere(radius float32, widthSegments, heightSegments int) *Geometry {
	widthSegments, heightSegments = atLeast(widthSegments, 3), atLeast(heightSegments, 2)
	var b builder
	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		theta := float64(v) * math.Pi
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := float64(u) * 2 * math.Pi
			n := mgl32.Vec3{
				float32(-math.Cos(phi) * math.Sin(theta)),
				float32(math.Cos(theta)),
				float32(math.Sin(phi) * math.Sin(theta)),
			}
			b.add(n.Mul(radius), n, u, 1-v)
		}
	}
	row := uint32(widthSegments + 1)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := uint32(iy)*row + uint32(ix)
			if iy != 0 {
				b.index = append(b.index, a, a+row, a+1)
			}
			if iy != heightSegments-1 {
				b.index = append(b.index, a+1, a+row, a+row+1)
			}
		}
	}
	return b.build()
}

// NewCylinder builds a capped cylinder along Y. A zero top radius yields a cone.
func NewCylinder(radiusTop, radiusBottom, height float32, radialSegments int) *Geometry {
	radialSegments = atLeast(radialSegments, 3)
	var b builder
	half := height / 2
	slope := (radiusBottom - radiusTop) / height

	for iy := 0; iy <= 1; iy++ {
		r := radiusTop + float32(iy)*(radiusBottom-radiusTop)
		y := half - float32(iy)*height
		for ix := 0; ix <= radialSegments; ix++ {
			u := float32(ix) / float32(radialSegments)
			a := float64(u) * 2 * math.Pi
			s, c := float32(math.Sin(a)), float32(math.Cos(a))
			n := mgl32.Vec3{s, slope, c}.Normalize()
			b.add(mgl32.Vec3{r * s, y, r * c}, n, u, 1-float32(iy))
		}
	}
	row := uint32(radialSegments + 1)
	for ix := uint32(0); ix < uint32(radialSegments); ix++ {
		b.index = append(b.index, ix, ix+row, ix+1, ix+row, ix+row+1, ix+1)
	}

	addCap := func(r, y, ny float32) {
		if r <= 0 {
			return
		}
		center := b.vertexCount()
		n := mgl32.Vec3{0, ny, 0}
		b.add(mgl32.Vec3{0, y, 0}, n, 0.5, 0.5)
		for ix := 0; ix <= radialSegments; ix++ {
			a := float64(ix) / float64(radialSegments) * 2 * math.Pi
			s, c := float32(math.Sin(a)), float32(math.Cos(a))
			b.add(mgl32.Vec3{r * s, y, r * c}, n, s*0.5+0.5, c*0.5+0.5)
		}
		for ix := uint32(1); ix <= uint32(radialSegments); ix++ {
			if ny > 0 {
				b.index = append(b.index, center, center+ix, center+ix+1)
			} else {
				b.index = append(b.index, center, center+ix+1, center+ix)
			}
		}
	}
	addCap(radiusTop, half, 1)
	addCap(radiusBottom, -half, -1)
	return b.build()
}

// NewCone builds a cone along Y with its tip at +height/2.
func NewCone(radius, height float32, radialSegments int) *Geometry {
	return NewCylinder(0, radius, height, radialSegments)
}

func atLeast(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
