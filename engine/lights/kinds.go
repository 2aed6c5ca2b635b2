package lights

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/grove3d/engine/colors"
	"github.com/hubastard/grove3d/engine/geometry"
)

// AmbientLight lights every fragment equally.
type AmbientLight struct {
	Base
}

func NewAmbient(color colors.Color, intensity float32) *AmbientLight {
	l := &AmbientLight{}
	l.init(l, color, intensity)
	return l
}

func (*AmbientLight) LightType() Type { return Ambient }

// SetDebugMode is a no-op: an ambient light has no position worth drawing.
func (*AmbientLight) SetDebugMode(bool) {}

// DirectionalLight shines along Direction from infinitely far away.
type DirectionalLight struct {
	Base
}

func NewDirectional(color colors.Color, intensity float32) *DirectionalLight {
	l := &DirectionalLight{}
	l.init(l, color, intensity)
	return l
}

func (*DirectionalLight) LightType() Type { return Directional }

func (l *DirectionalLight) SetDebugMode(enabled bool) {
	l.setDebugMode(enabled, func() *geometry.Geometry { return geometry.NewCone(0.1, 0.3, 8) })
}

// PointLight radiates from its world position in every direction.
type PointLight struct {
	Base
	Attenuation Attenuation
}

func NewPoint(color colors.Color, intensity float32, att Attenuation) *PointLight {
	l := &PointLight{Attenuation: att}
	l.init(l, color, intensity)
	return l
}

func (*PointLight) LightType() Type { return Point }

func (l *PointLight) SetDebugMode(enabled bool) {
	l.setDebugMode(enabled, func() *geometry.Geometry { return geometry.NewSphere(0.1, 8, 6) })
}

// SpotLight is a point light restricted to a cone around Direction.
type SpotLight struct {
	Base
	Attenuation Attenuation
	// Angle is the cone half-angle in radians.
	Angle float32
	// Penumbra in [0,1] is the fraction of the cone that fades out.
	Penumbra float32
}

func NewSpot(color colors.Color, intensity float32, att Attenuation, angle, penumbra float32) *SpotLight {
	l := &SpotLight{Attenuation: att, Angle: angle, Penumbra: mgl32.Clamp(penumbra, 0, 1)}
	l.init(l, color, intensity)
	return l
}

func (*SpotLight) LightType() Type { return Spot }

func (l *SpotLight) SetDebugMode(enabled bool) {
	l.setDebugMode(enabled, func() *geometry.Geometry { return geometry.NewCone(0.1, 0.2, 8) })
}
