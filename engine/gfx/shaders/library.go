// Package shaders generates GLSL sources for program variants.
//
// A template goes through two textual passes. The "#pragma inject_attributes"
// line is replaced by one #define per enabled feature plus NUM_LIGHTS, then
// every `#include "snippets/<name>.glsl"` naming a known snippet is replaced
// by the snippet text. Snippets are inserted verbatim and are not scanned for
// further includes.
package shaders

import (
	"embed"
	"strconv"
	"strings"

	"github.com/hubastard/grove3d/engine/logger"
	"github.com/hubastard/grove3d/engine/materials"
	"github.com/sirupsen/logrus"
)

// InjectToken marks where feature defines are inserted.
const InjectToken = "#pragma inject_attributes"

type Stage int

const (
	VertexStage Stage = iota
	FragmentStage
)

func (s Stage) String() string {
	if s == FragmentStage {
		return "fragment"
	}
	return "vertex"
}

// Source is the processed text of one shader stage.
type Source struct {
	Stage Stage
	Text  string
}

//go:embed glsl
var files embed.FS

func mustRead(name string) string {
	b, err := files.ReadFile("glsl/" + name)
	if err != nil {
		panic(err)
	}
	return string(b)
}

var (
	flatVert  = mustRead("flat_material.vert")
	flatFrag  = mustRead("flat_material.frag")
	phongVert = mustRead("phong_material.vert")
	phongFrag = mustRead("phong_material.frag")
)

type snippet struct {
	name string
	text string
}

// snippets is resolved in this order.
var snippets = []snippet{
	{"snippets/frag_global_fog.glsl", mustRead("snippets/frag_global_fog.glsl")},
	{"snippets/frag_global_lights.glsl", mustRead("snippets/frag_global_lights.glsl")},
	{"snippets/frag_global_params.glsl", mustRead("snippets/frag_global_params.glsl")},
	{"snippets/frag_main_normal.glsl", mustRead("snippets/frag_main_normal.glsl")},
	{"snippets/vert_global_params.glsl", mustRead("snippets/vert_global_params.glsl")},
	{"snippets/vert_main_varyings.glsl", mustRead("snippets/vert_main_varyings.glsl")},
}

// Library turns ProgramAttributes into shader sources. It is stateless apart
// from its logger.
type Library struct {
	log logrus.FieldLogger
}

// NewLibrary creates a library logging to log, or to the engine logger when
// log is nil.
func NewLibrary(log logrus.FieldLogger) *Library {
	return &Library{log: log}
}

// GetShaderSource returns the vertex and fragment sources for attrs. It
// returns nil and logs an error for an unknown material type.
func (l *Library) GetShaderSource(attrs ProgramAttributes) []Source {
	var vert, frag string
	switch attrs.Type {
	case materials.Flat:
		vert, frag = flatVert, flatFrag
	case materials.Phong:
		vert, frag = phongVert, phongFrag
	case materials.Shader:
		vert, frag = attrs.VertexShader, attrs.FragmentShader
	default:
		l.logger().WithField("material", attrs.Type.String()).
			Errorf("Shader source not found for unknown material %s_material", attrs.Type)
		return nil
	}
	return []Source{
		{Stage: VertexStage, Text: l.process(attrs, vert)},
		{Stage: FragmentStage, Text: l.process(attrs, frag)},
	}
}

func (l *Library) process(attrs ProgramAttributes, src string) string {
	src = l.InjectAttributes(attrs, src)
	return ResolveIncludes(src)
}

// InjectAttributes replaces the first InjectToken with the feature block. A
// source without the token is returned unchanged and an error is logged; it
// will fail later at compile time.
func (l *Library) InjectAttributes(attrs ProgramAttributes, src string) string {
	pos := strings.Index(src, InjectToken)
	if pos < 0 {
		l.logger().WithField("material", attrs.Type.String()).
			Errorf("The '%s' token is missing in program %s", InjectToken, attrs.Type)
		return src
	}
	return src[:pos] + FeatureBlock(attrs) + src[pos+len(InjectToken):]
}

// FeatureBlock renders the #define lines for attrs in their fixed order.
func FeatureBlock(attrs ProgramAttributes) string {
	var b strings.Builder
	for _, f := range attrs.flags() {
		if f.enabled {
			b.WriteString("#define ")
			b.WriteString(f.define)
			b.WriteByte('\n')
		}
	}
	b.WriteString("#define NUM_LIGHTS ")
	b.WriteString(strconv.Itoa(attrs.NumLights))
	b.WriteByte('\n')
	return b.String()
}

// ResolveIncludes replaces every include directive naming a known snippet.
// Unknown includes are left for the compiler to reject.
func ResolveIncludes(src string) string {
	if !strings.Contains(src, "#include") {
		return src
	}
	for _, s := range snippets {
		src = strings.ReplaceAll(src, `#include "`+s.name+`"`, s.text)
	}
	return src
}

// Snippet returns the text of a known snippet.
func Snippet(name string) (string, bool) {
	for _, s := range snippets {
		if s.name == name {
			return s.text, true
		}
	}
	return "", false
}

func (l *Library) logger() logrus.FieldLogger { return logger.Or(l.log) }
