package shaders

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/grove3d/engine/lights"
)

// LightUniform mirrors the Light struct declared by the lights snippet.
// Position and Direction are in view space.
type LightUniform struct {
	Type        int32
	Color       mgl32.Vec3
	Intensity   float32
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	Attenuation mgl32.Vec3
	CosAngle    float32
	CosPenumbra float32
}

// LightUniformNames holds the uniform names of one u_Lights element.
type LightUniformNames struct {
	Type, Color, Intensity, Position, Direction, Attenuation, CosAngle, CosPenumbra string
}

// LightNames returns the uniform names for u_Lights[i].
func LightNames(i int) LightUniformNames {
	p := fmt.Sprintf("u_Lights[%d].", i)
	return LightUniformNames{
		Type:        p + "type",
		Color:       p + "color",
		Intensity:   p + "intensity",
		Position:    p + "position",
		Direction:   p + "direction",
		Attenuation: p + "attenuation",
		CosAngle:    p + "cosAngle",
		CosPenumbra: p + "cosPenumbra",
	}
}

// PackLight converts l into its uniform form for the given view matrix.
func PackLight(l lights.Light, view mgl32.Mat4) LightUniform {
	b := l.Props()
	u := LightUniform{
		Type:        int32(l.LightType()),
		Color:       b.Color.Vec3(),
		Intensity:   b.Intensity,
		Attenuation: mgl32.Vec3{1, 0, 0},
	}
	if l.LightType() == lights.Ambient {
		return u
	}

	pos := b.GetWorldPosition()
	u.Position = view.Mul4x1(pos.Vec4(1)).Vec3()
	u.Direction = view.Mul4x1(b.Direction().Vec4(0)).Vec3().Normalize()

	switch l := l.(type) {
	case *lights.PointLight:
		u.Attenuation = attenuation(l.Attenuation)
	case *lights.SpotLight:
		u.Attenuation = attenuation(l.Attenuation)
		u.CosAngle = float32(math.Cos(float64(l.Angle)))
		inner := float32(math.Cos(float64(l.Angle * (1 - l.Penumbra))))
		// smoothstep is undefined for equal edges.
		u.CosPenumbra = max(inner, u.CosAngle+1e-4)
	}
	return u
}

func attenuation(a lights.Attenuation) mgl32.Vec3 {
	return mgl32.Vec3{a.Base, a.Linear, a.Quadratic}
}
