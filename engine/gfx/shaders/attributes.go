package shaders

import (
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/hubastard/grove3d/engine/geometry"
	"github.com/hubastard/grove3d/engine/materials"
)

// ProgramAttributes identifies one shader variant. Two equal values always
// produce byte-identical sources, so the struct doubles as the program cache
// key; compare with == or by Key.
type ProgramAttributes struct {
	Type materials.Type

	Color      bool
	Fog        bool
	TextureMap bool
	TwoSided   bool
	FlatShaded bool

	NumLights int

	// Custom sources, set only for materials.Shader.
	VertexShader   string
	FragmentShader string
}

// NewProgramAttributes derives the variant needed to draw geo with mat under
// numLights active lights. sceneFog reports whether the scene has fog.
func NewProgramAttributes(mat materials.Material, geo *geometry.Geometry, numLights int, sceneFog bool) ProgramAttributes {
	p := mat.Props()
	attrs := ProgramAttributes{
		Type:       mat.Type(),
		Color:      geo != nil && geo.HasAttribute(geometry.Color),
		Fog:        sceneFog && p.Fog,
		TextureMap: p.TextureMap != nil,
		TwoSided:   p.TwoSided,
		FlatShaded: p.FlatShaded,
		NumLights:  numLights,
	}
	if sm, ok := mat.(*materials.ShaderMaterial); ok {
		attrs.VertexShader = sm.VertexShader
		attrs.FragmentShader = sm.FragmentShader
	}
	return attrs
}

// Key is a stable string form of the attributes. Custom sources are folded
// into a hash so keys stay short.
func (a ProgramAttributes) Key() string {
	var b strings.Builder
	b.WriteString(a.Type.String())
	b.WriteByte('|')
	for _, f := range a.flags() {
		if f.enabled {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteString("|l")
	b.WriteString(strconv.Itoa(a.NumLights))
	if a.Type == materials.Shader {
		h := fnv.New64a()
		h.Write([]byte(a.VertexShader))
		h.Write([]byte{0})
		h.Write([]byte(a.FragmentShader))
		b.WriteString("|s")
		b.WriteString(strconv.FormatUint(h.Sum64(), 16))
	}
	return b.String()
}

type feature struct {
	define  string
	enabled bool
}

// flags lists the boolean features in their fixed emission order.
func (a ProgramAttributes) flags() [5]feature {
	return [5]feature{
		{"USE_COLOR", a.Color},
		{"USE_FOG", a.Fog},
		{"USE_TEXTURE_MAP", a.TextureMap},
		{"USE_TWO_SIDED", a.TwoSided},
		{"USE_FLAT_SHADED", a.FlatShaded},
	}
}
