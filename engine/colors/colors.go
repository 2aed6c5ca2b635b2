package colors

import "github.com/go-gl/mathgl/mgl32"

type Color [4]float32

var (
	White    = Color{1, 1, 1, 1}
	Red      = Color{1, 0, 0, 1}
	Green    = Color{0, 1, 0, 1}
	Blue     = Color{0, 0, 1, 1}
	Black    = Color{0, 0, 0, 1}
	Magenta  = Color{1, 0, 1, 1}
	Cyan     = Color{0, 1, 1, 1}
	Yellow   = Color{1, 1, 0, 1}
	Gray     = Color{0.5, 0.5, 0.5, 1}
	DarkGray = Color{0.08, 0.10, 0.12, 1}
)

// Hex builds an opaque color from a 0xRRGGBB value.
func Hex(v uint32) Color {
	return Color{
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
		1,
	}
}

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Vec3 drops alpha; lights and fog only carry RGB.
func (c Color) Vec3() mgl32.Vec3 { return mgl32.Vec3{c[0], c[1], c[2]} }
func (c Color) Vec4() mgl32.Vec4 { return mgl32.Vec4(c) }
