// Package glbackend draws scenes with OpenGL 3.3 core.
package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/grove3d/engine/core"
	"github.com/hubastard/grove3d/engine/geometry"
	"github.com/hubastard/grove3d/engine/gfx/buffers"
	"github.com/hubastard/grove3d/engine/gfx/programs"
	"github.com/hubastard/grove3d/engine/gfx/renderlists"
	"github.com/hubastard/grove3d/engine/gfx/shaders"
	"github.com/hubastard/grove3d/engine/logger"
	"github.com/hubastard/grove3d/engine/materials"
	"github.com/hubastard/grove3d/engine/profiler"
	"github.com/hubastard/grove3d/engine/scene"
	"github.com/sirupsen/logrus"
)

// Stats counts the work done by the last Render call.
type Stats struct {
	DrawCalls int
	Skipped   int
	Lights    int
}

type RendererGL struct {
	win core.Window
	cfg core.Config
	log logrus.FieldLogger

	lists    *renderlists.Lists
	programs *programs.Cache
	buffers  *buffers.Manager
	textures *textureCache

	lightNames []shaders.LightUniformNames
	current    *Program
	stats      Stats
}

var _ core.Renderer = (*RendererGL)(nil)

func NewRendererGL(win core.Window, cfg core.Config) (*RendererGL, error) {
	log := logger.Get().WithField("component", "renderer")
	r := &RendererGL{
		win:      win,
		cfg:      cfg,
		log:      log,
		lists:    renderlists.New(),
		programs: programs.NewCache(Compiler{}, shaders.NewLibrary(log), log),
		buffers:  buffers.NewManager(Device{}, log),
		textures: newTextureCache(),
	}
	if err := r.Init(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.CullFace(gl.BACK)
	if r.cfg.Samples > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}
	return nil
}

func (r *RendererGL) Shutdown() {
	r.programs.Release()
	r.buffers.Shutdown()
	r.textures.clear()
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Stats() Stats { return r.stats }

type frame struct {
	view, projection mgl32.Mat4
	fog              *scene.Fog
	lights           []shaders.LightUniform
}

// Render propagates transforms, rebuilds the render lists and draws opaque
// meshes followed by transparent ones.
func (r *RendererGL) Render(s *scene.Scene, cam scene.Camera) {
	defer profiler.Start("Render")()
	r.stats = Stats{}
	r.buffers.Sweep()

	bg := s.Background
	gl.ClearColor(bg[0], bg[1], bg[2], bg[3])
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	func() {
		defer profiler.Start("UpdateTransformHierarchy")()
		s.UpdateTransformHierarchy()
	}()
	cam.UpdateViewTransform()

	func() {
		defer profiler.Start("ProcessScene")()
		r.lists.ProcessScene(s)
	}()

	f := frame{view: cam.View(), projection: cam.Projection(), fog: s.Fog}
	for _, l := range r.lists.Lights() {
		f.lights = append(f.lights, shaders.PackLight(l, f.view))
	}
	r.stats.Lights = len(f.lights)

	defer profiler.Start("Draw")()
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	for _, obj := range r.lists.Opaque() {
		r.draw(obj, &f)
	}

	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.DepthMask(false)
	for _, obj := range r.lists.Transparent() {
		r.draw(obj, &f)
	}
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)

	r.buffers.Unbind()
	gl.UseProgram(0)
	r.current = nil
}

func (r *RendererGL) draw(obj scene.Renderable, f *frame) {
	mat, geo := obj.Material(), obj.Geometry()
	attrs := shaders.NewProgramAttributes(mat, geo, len(f.lights), f.fog != nil)
	p, _ := r.programs.GetProgram(attrs).(*Program)
	if p == nil {
		r.stats.Skipped++
		return
	}
	state, ok := r.buffers.Bind(geo)
	if !ok {
		r.stats.Skipped++
		return
	}

	if r.current != p {
		gl.UseProgram(p.id)
		r.current = p
	}

	props := mat.Props()
	model := obj.GetNode().GetWorldTransform()
	modelView := f.view.Mul4(model)
	p.SetUniform("u_Projection", f.projection)
	p.SetUniform("u_View", f.view)
	p.SetUniform("u_Model", model)
	p.SetUniform("u_NormalMatrix", modelView.Mat3().Inv().Transpose())
	p.SetUniform("u_Color", props.Color.Vec3())
	p.SetUniform("u_Opacity", props.Opacity*props.Color[3])

	if attrs.Fog {
		p.SetUniform("u_FogColor", f.fog.Color.Vec3())
		p.SetUniform("u_FogNear", f.fog.Near)
		p.SetUniform("u_FogFar", f.fog.Far)
	}
	if attrs.TextureMap {
		r.textures.bind(0, props.TextureMap)
		p.SetUniform("u_TextureMap", int32(0))
	}
	r.setLights(p, f.lights)

	switch m := mat.(type) {
	case *materials.PhongMaterial:
		p.SetUniform("u_Specular", m.Specular.Vec3())
		p.SetUniform("u_Shininess", m.Shininess)
	case *materials.ShaderMaterial:
		for name, v := range m.Uniforms {
			if !p.SetUniform(name, v) {
				r.log.WithField("material", m.ID).Debugf("Uniform %q not set", name)
			}
		}
	}

	if props.TwoSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
	}
	if props.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	mode := uint32(gl.TRIANGLES)
	if geo.Primitive() == geometry.Lines {
		mode = gl.LINES
	}
	if state.Indexed() {
		gl.DrawElements(mode, state.Count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(mode, 0, state.Count)
	}
	r.stats.DrawCalls++
}

func (r *RendererGL) setLights(p *Program, lights []shaders.LightUniform) {
	for len(r.lightNames) < len(lights) {
		r.lightNames = append(r.lightNames, shaders.LightNames(len(r.lightNames)))
	}
	for i, l := range lights {
		n := r.lightNames[i]
		p.SetUniform(n.Type, l.Type)
		p.SetUniform(n.Color, l.Color)
		p.SetUniform(n.Intensity, l.Intensity)
		p.SetUniform(n.Position, l.Position)
		p.SetUniform(n.Direction, l.Direction)
		p.SetUniform(n.Attenuation, l.Attenuation)
		p.SetUniform(n.CosAngle, l.CosAngle)
		p.SetUniform(n.CosPenumbra, l.CosPenumbra)
	}
}
