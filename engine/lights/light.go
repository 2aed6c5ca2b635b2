// Package lights provides the four light kinds. Every light is a scene node.
package lights

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/grove3d/engine/colors"
	"github.com/hubastard/grove3d/engine/geometry"
	"github.com/hubastard/grove3d/engine/materials"
	"github.com/hubastard/grove3d/engine/scene"
)

type Type int

const (
	Ambient Type = iota
	Directional
	Point
	Spot
)

func (t Type) String() string {
	switch t {
	case Ambient:
		return "ambient"
	case Directional:
		return "directional"
	case Point:
		return "point"
	case Spot:
		return "spot"
	default:
		return "unknown"
	}
}

// Light is implemented by *AmbientLight, *DirectionalLight, *PointLight and
// *SpotLight.
type Light interface {
	scene.Object
	LightType() Type
	Props() *Base
	SetDebugMode(enabled bool)
}

// Attenuation controls how intensity falls off with distance d:
// 1 / (Base + Linear*d + Quadratic*d*d).
type Attenuation struct {
	Base      float32
	Linear    float32
	Quadratic float32
}

// NoAttenuation keeps intensity constant over distance.
var NoAttenuation = Attenuation{Base: 1}

// Base holds what all lights share.
type Base struct {
	scene.Node
	Color     colors.Color
	Intensity float32

	debug     bool
	debugMesh *scene.Mesh
}

func (b *Base) init(self Light, color colors.Color, intensity float32) {
	b.Init(self, scene.KindLight)
	b.Color = color
	b.Intensity = intensity
}

func (b *Base) Props() *Base     { return b }
func (b *Base) DebugMode() bool { return b.debug }

// Direction is the light's local +Z axis in world space.
func (b *Base) Direction() mgl32.Vec3 {
	return b.GetWorldTransform().Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3().Normalize()
}

// setDebugMode attaches or detaches a small unlit helper mesh built by build.
func (b *Base) setDebugMode(enabled bool, build func() *geometry.Geometry) {
	if enabled == b.debug {
		return
	}
	b.debug = enabled
	if enabled {
		mat := materials.NewFlat(b.Color)
		mat.Wireframe = true
		mat.Fog = false
		b.debugMesh = scene.NewMesh(build(), mat)
		b.debugMesh.Name = "light-debug"
		b.Add(b.debugMesh)
		return
	}
	if b.debugMesh != nil {
		b.Remove(b.debugMesh)
		b.debugMesh.Geometry().Dispose()
		b.debugMesh = nil
	}
}
