package main

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/grove3d/engine/assets"
	"github.com/hubastard/grove3d/engine/colors"
	"github.com/hubastard/grove3d/engine/core"
	"github.com/hubastard/grove3d/engine/events"
	"github.com/hubastard/grove3d/engine/geometry"
	"github.com/hubastard/grove3d/engine/helpers"
	"github.com/hubastard/grove3d/engine/lights"
	"github.com/hubastard/grove3d/engine/logger"
	"github.com/hubastard/grove3d/engine/materials"
	"github.com/hubastard/grove3d/engine/scene"
)

const waveVert = `#version 330 core
#pragma inject_attributes

#include "snippets/vert_global_params.glsl"

uniform float u_Time;

void main() {
#include "snippets/vert_main_varyings.glsl"
    gl_Position.y += 0.1 * sin(u_Time * 3.0 + a_Position.x * 4.0);
}
`

const waveFrag = `#version 330 core
#pragma inject_attributes

#include "snippets/frag_global_params.glsl"
#include "snippets/frag_global_fog.glsl"

uniform float u_Time;

void main() {
    vec3 tint = 0.5 + 0.5 * cos(u_Time + v_UV.xyx + vec3(0.0, 2.0, 4.0));
    o_FragColor = vec4(applyFog(baseColor().rgb * tint), 1.0);
}
`

// SceneLayer owns the demo scene and the orbiting camera.
type SceneLayer struct {
	model   string
	texture string
	clear   colors.Color

	events *events.Dispatcher
	scene  *scene.Scene
	camera *scene.PerspectiveCamera
	pivot  *scene.Node
	point  *lights.PointLight
	wave   *materials.ShaderMaterial

	time     float64
	yaw      float64
	distance float32
}

func (l *SceneLayer) OnAttach(e *core.Engine) {
	log := logger.Get()
	l.events = events.NewDispatcher()
	l.events.Subscribe(events.ChannelNodeAdded, func(ev events.Event) {
		log.WithField("node", ev.Node).Debug("Node added")
	})

	l.scene = scene.NewScene(l.events)
	l.scene.Background = l.clear
	l.scene.Fog = &scene.Fog{Color: l.clear, Near: 12, Far: 40}

	w, h := e.Window.FramebufferSize()
	l.camera = scene.NewPerspectiveCamera(mgl32.DegToRad(60), aspect(w, h), 0.1, 100)
	l.distance = 9

	l.scene.Add(lights.NewAmbient(colors.White, 0.15))
	sun := lights.NewDirectional(colors.Hex(0xfff4e0), 0.6)
	sun.Transform.SetPosition(mgl32.Vec3{4, 6, 3})
	l.scene.Add(sun)
	sun.LookAt(mgl32.Vec3{})

	grid := helpers.NewGrid(helpers.GridParams{Size: 20, Divisions: 20, Color: colors.Hex(0x3a3f44)})
	grid.Transform.SetPosition(mgl32.Vec3{0, 0.12, 0}) // clear of the wave crests
	l.scene.Add(grid)

	l.pivot = scene.NewNode()
	l.pivot.Name = "pivot"
	l.scene.Add(l.pivot)
	l.point = lights.NewPoint(colors.Hex(0x66aaff), 1.5, lights.Attenuation{Base: 1, Linear: 0.09, Quadratic: 0.032})
	l.point.Transform.SetPosition(mgl32.Vec3{3, 1.5, 0})
	l.point.SetDebugMode(true)
	l.pivot.Add(l.point)

	boxMat := materials.NewPhong(colors.Hex(0xc0504d))
	if l.texture != "" {
		tex, err := assets.LoadTexture(l.texture)
		if err != nil {
			log.WithError(err).Warn("Texture not loaded")
		} else {
			boxMat.TextureMap = tex
			boxMat.Color = colors.White
		}
	}
	box := scene.NewMesh(geometry.NewBox(1.5, 1.5, 1.5, 1), boxMat)
	box.Name = "box"
	box.Transform.SetPosition(mgl32.Vec3{-2, 0.75, 0})
	l.scene.Add(box)
	box.Add(helpers.BoundsOf(box.Geometry(), colors.Yellow))

	sphere := scene.NewMesh(geometry.NewSphere(0.8, 32, 16), materials.NewFlat(colors.Hex(0x9bbb59)))
	sphere.Name = "sphere"
	sphere.Transform.SetPosition(mgl32.Vec3{2, 0.8, 0})
	l.scene.Add(sphere)

	cone := scene.NewMesh(geometry.NewCone(0.6, 1.2, 24), materials.NewPhong(colors.Hex(0x4bacc6)))
	cone.Transform.SetPosition(mgl32.Vec3{0, 2.2, 0})
	sphere.Add(cone)

	glassMat := materials.NewPhong(colors.Hex(0x8064a2))
	glassMat.Transparent = true
	glassMat.Opacity = 0.4
	glassMat.TwoSided = true
	glass := scene.NewMesh(geometry.NewPlane(3, 3, 1, 1), glassMat)
	glass.Transform.SetPosition(mgl32.Vec3{0, 1.5, 2.5})
	l.scene.Add(glass)

	l.wave = materials.NewShader(waveVert, waveFrag, map[string]any{"u_Time": float32(0)})
	floor := scene.NewMesh(geometry.NewPlane(20, 20, 40, 40), l.wave)
	floor.Name = "floor"
	floor.Transform.Rotate(mgl32.Vec3{1, 0, 0}, -math.Pi/2)
	l.scene.Add(floor)

	if l.model != "" {
		e.Loader.LoadAsync(context.Background(), l.model, l.pivot, func(m *scene.Mesh, err error) {
			if err != nil {
				log.WithError(err).Warn("Model not loaded")
				return
			}
			m.Transform.SetPosition(mgl32.Vec3{0, 1, -3})
		})
	}
}

func (l *SceneLayer) OnDetach(e *core.Engine) {
	l.scene.Traverse(func(o scene.Object) bool {
		if r, ok := o.(scene.Renderable); ok && r.Geometry() != nil {
			r.Geometry().Dispose()
		}
		return true
	})
}

func (l *SceneLayer) OnUpdate(e *core.Engine, dt float64) {
	l.time += dt
	l.wave.Uniforms["u_Time"] = float32(l.time)
	l.pivot.Transform.Rotate(mgl32.Vec3{0, 1, 0}, float32(dt))

	l.distance = mgl32.Clamp(l.distance-float32(e.Input.TakeScroll()), 3, 30)
	speed := 0.25
	if e.Input.IsKeyDown(core.KeyLeft) {
		speed -= 1.5
	}
	if e.Input.IsKeyDown(core.KeyRight) {
		speed += 1.5
	}
	l.yaw += speed * dt
	l.camera.Transform.SetPosition(mgl32.Vec3{
		l.distance * float32(math.Sin(l.yaw)),
		3,
		l.distance * float32(math.Cos(l.yaw)),
	})
	l.camera.LookAt(mgl32.Vec3{0, 1, 0})
}

func (l *SceneLayer) OnRender(e *core.Engine, alpha float64) {
	e.Renderer.Render(l.scene, l.camera)
}

func (l *SceneLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	if r, ok := ev.(core.EventResize); ok {
		l.camera.SetAspect(aspect(r.W, r.H))
	}
	return false
}

func aspect(w, h int) float32 {
	if h <= 0 {
		return 1
	}
	return float32(w) / float32(h)
}
