package glbackend

import (
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/grove3d/engine/colors"
	"github.com/hubastard/grove3d/engine/gfx/programs"
	"github.com/hubastard/grove3d/engine/gfx/shaders"
	"github.com/pkg/errors"
)

// Program is a linked GL program with a uniform location cache.
type Program struct {
	id        uint32
	locations map[string]int32
}

func (p *Program) ID() uint32 { return p.id }

func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

func (p *Program) location(name string) int32 {
	if loc, ok := p.locations[name]; ok {
		return loc
	}
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	p.locations[name] = loc
	return loc
}

// SetUniform uploads value to the named uniform. Unknown names and
// unsupported types are ignored; it reports whether anything was set.
func (p *Program) SetUniform(name string, value any) bool {
	loc := p.location(name)
	if loc < 0 {
		return false
	}
	switch v := value.(type) {
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.Uniform1i(loc, i)
	case int:
		gl.Uniform1i(loc, int32(v))
	case int32:
		gl.Uniform1i(loc, v)
	case float32:
		gl.Uniform1f(loc, v)
	case float64:
		gl.Uniform1f(loc, float32(v))
	case mgl32.Vec2:
		gl.Uniform2f(loc, v[0], v[1])
	case mgl32.Vec3:
		gl.Uniform3f(loc, v[0], v[1], v[2])
	case mgl32.Vec4:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case colors.Color:
		gl.Uniform4f(loc, v[0], v[1], v[2], v[3])
	case mgl32.Mat3:
		gl.UniformMatrix3fv(loc, 1, false, &v[0])
	case mgl32.Mat4:
		gl.UniformMatrix4fv(loc, 1, false, &v[0])
	default:
		return false
	}
	return true
}

// Compiler builds GL programs from processed shader sources.
type Compiler struct{}

var _ programs.Compiler = Compiler{}

func (Compiler) Compile(sources []shaders.Source) (programs.Program, error) {
	if len(sources) == 0 {
		return nil, programs.ErrNoSource
	}

	prog := gl.CreateProgram()
	ids := make([]uint32, 0, len(sources))

	for _, src := range sources {
		sh, err := compileShader(src)
		if err != nil {
			discardProgram(prog, ids, true)
			return nil, err
		}
		gl.AttachShader(prog, sh)
		ids = append(ids, sh)
	}
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		discardProgram(prog, ids, true)
		return nil, errors.Errorf("program link error: %s", strings.TrimRight(log, "\x00"))
	}
	discardProgram(prog, ids, false)
	return &Program{id: prog, locations: make(map[string]int32)}, nil
}

// GL entry points used to tear programs down.
var (
	detachShader  = gl.DetachShader
	deleteShader  = gl.DeleteShader
	deleteProgram = gl.DeleteProgram
)

// discardProgram frees the shader objects of prog. They must be detached
// while prog is still alive, so the program itself goes last.
func discardProgram(prog uint32, attached []uint32, deleteProg bool) {
	for _, sh := range attached {
		detachShader(prog, sh)
		deleteShader(sh)
	}
	if deleteProg {
		deleteProgram(prog)
	}
}

func compileShader(src shaders.Source) (uint32, error) {
	kind := uint32(gl.VERTEX_SHADER)
	if src.Stage == shaders.FragmentStage {
		kind = gl.FRAGMENT_SHADER
	}
	sh := gl.CreateShader(kind)
	csrc, free := gl.Strs(src.Text + "\x00")
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, errors.Errorf("%s shader compile error: %s", src.Stage, strings.TrimRight(log, "\x00"))
	}
	return sh, nil
}
