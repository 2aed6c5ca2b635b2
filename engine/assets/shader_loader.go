// Package assets reads meshes, textures and shaders from disk.
package assets

import (
	"os"

	"github.com/hubastard/grove3d/engine/materials"
	"github.com/pkg/errors"
)

// LoadShaderMaterial reads a vertex and fragment GLSL pair into a shader
// material. Sources may use the "#pragma inject_attributes" placeholder and
// snippet includes.
func LoadShaderMaterial(vertPath, fragPath string, uniforms map[string]any) (*materials.ShaderMaterial, error) {
	vert, err := os.ReadFile(vertPath)
	if err != nil {
		return nil, errors.Wrap(err, "load vertex shader")
	}
	frag, err := os.ReadFile(fragPath)
	if err != nil {
		return nil, errors.Wrap(err, "load fragment shader")
	}
	return materials.NewShader(string(vert), string(frag), uniforms), nil
}
