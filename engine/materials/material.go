// Package materials describes how renderables are shaded. The set of material
// kinds is closed; the shader library switches on Type exhaustively.
package materials

import (
	"github.com/google/uuid"
	"github.com/hubastard/grove3d/engine/colors"
)

type Type int

const (
	Flat Type = iota
	Phong
	Shader
)

func (t Type) String() string {
	switch t {
	case Flat:
		return "flat"
	case Phong:
		return "phong"
	case Shader:
		return "shader"
	default:
		return "unknown"
	}
}

// Material is implemented by *FlatMaterial, *PhongMaterial and *ShaderMaterial.
type Material interface {
	Type() Type
	Props() *Properties
}

// Properties holds the state every material kind shares.
type Properties struct {
	ID          uuid.UUID
	Color       colors.Color
	Opacity     float32
	Transparent bool
	TwoSided    bool
	FlatShaded  bool
	Wireframe   bool
	// Fog opts the material into scene fog; it has no effect without one.
	Fog        bool
	TextureMap *Texture
}

func newProperties() Properties {
	return Properties{
		ID:      uuid.New(),
		Color:   colors.White,
		Opacity: 1,
		Fog:     true,
	}
}

func (p *Properties) Props() *Properties { return p }

type FlatMaterial struct {
	Properties
}

func NewFlat(color colors.Color) *FlatMaterial {
	m := &FlatMaterial{Properties: newProperties()}
	m.Color = color
	return m
}

func (*FlatMaterial) Type() Type { return Flat }

type PhongMaterial struct {
	Properties
	Specular  colors.Color
	Shininess float32
}

func NewPhong(color colors.Color) *PhongMaterial {
	m := &PhongMaterial{
		Properties: newProperties(),
		Specular:   colors.Hex(0x191919),
		Shininess:  32,
	}
	m.Color = color
	return m
}

func (*PhongMaterial) Type() Type { return Phong }

// ShaderMaterial renders with user supplied GLSL. Both sources should carry
// the "#pragma inject_attributes" placeholder to receive feature defines.
type ShaderMaterial struct {
	Properties
	VertexShader   string
	FragmentShader string
	// Uniforms accepts int, int32, float32, mgl32 vectors/matrices and colors.Color.
	Uniforms map[string]any
}

func NewShader(vertex, fragment string, uniforms map[string]any) *ShaderMaterial {
	if uniforms == nil {
		uniforms = map[string]any{}
	}
	return &ShaderMaterial{
		Properties:     newProperties(),
		VertexShader:   vertex,
		FragmentShader: fragment,
		Uniforms:       uniforms,
	}
}

func (*ShaderMaterial) Type() Type { return Shader }
