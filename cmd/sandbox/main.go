package main

import (
	"flag"

	"github.com/hubastard/grove3d/engine/assets"
	"github.com/hubastard/grove3d/engine/colors"
	"github.com/hubastard/grove3d/engine/core"
	glbackend "github.com/hubastard/grove3d/engine/gfx/gl"
	"github.com/hubastard/grove3d/engine/logger"
	"github.com/hubastard/grove3d/engine/materials"
	"github.com/hubastard/grove3d/engine/platform"
	"github.com/hubastard/grove3d/engine/profiler"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "", "YAML engine config")
	model := flag.String("model", "", "glTF model loaded asynchronously into the scene")
	texture := flag.String("texture", "", "image used as the box texture")
	flag.Parse()

	profiler.Init(1 << 16) // ~64K scope events
	log := logger.Get()
	cfg := core.DefaultConfig()
	cfg.Title = "Go Engine (3D)"
	if *configPath != "" {
		var err error
		if cfg, err = core.LoadConfig(*configPath); err != nil {
			log.WithError(err).Fatal("Invalid config")
		}
	}
	if cfg.Debug {
		log.SetLevel(logrus.DebugLevel)
	}

	app := &core.LayerStack{}
	sceneLayer := &SceneLayer{model: *model, texture: *texture, clear: cfg.ClearColor}
	app.Push(sceneLayer)
	app.Push(&DebugLayer{scene: sceneLayer})

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg, nil)
		win = w
		return w, err
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}
	decode := assets.MeshDecoder(func() materials.Material {
		return materials.NewPhong(colors.Hex(0xd8c8a8))
	})

	err := core.Run(app, cfg, newWindow, newRenderer, decode)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		log.WithError(err).Fatal("Engine failed")
	}
}
