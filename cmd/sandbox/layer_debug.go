package main

import (
	"time"

	"github.com/hubastard/grove3d/engine/core"
	glbackend "github.com/hubastard/grove3d/engine/gfx/gl"
	"github.com/hubastard/grove3d/engine/lights"
	"github.com/hubastard/grove3d/engine/logger"
	"github.com/hubastard/grove3d/engine/profiler"
	"github.com/hubastard/grove3d/engine/scene"
	"github.com/sirupsen/logrus"
)

// DebugLayer toggles light helpers (L) and logs frame statistics (P). P also
// dumps the profiler trace when built with the "profile" tag.
type DebugLayer struct {
	scene  *SceneLayer
	debug  bool
	frames int
}

func (l *DebugLayer) OnAttach(e *core.Engine)             {}
func (l *DebugLayer) OnDetach(e *core.Engine)             {}
func (l *DebugLayer) OnUpdate(e *core.Engine, dt float64) {}

func (l *DebugLayer) OnRender(e *core.Engine, alpha float64) { l.frames++ }

func (l *DebugLayer) OnEvent(e *core.Engine, ev core.Event) bool {
	k, ok := ev.(core.EventKey)
	if !ok || !k.Down {
		return false
	}
	switch k.Key {
	case core.KeyL:
		l.debug = !l.debug
		if l.scene != nil {
			l.scene.scene.Traverse(func(o scene.Object) bool {
				if light, ok := o.(lights.Light); ok {
					light.SetDebugMode(l.debug)
				}
				return true
			})
		}
		return true
	case core.KeyP:
		l.report(e)
		return true
	}
	return false
}

func (l *DebugLayer) report(e *core.Engine) {
	log := logger.Get()
	fields := logrus.Fields{
		"frames":     l.frames,
		"uptime":     e.Uptime().Round(time.Millisecond),
		"loading":    e.Loader.Pending(),
		"heapMB":     float32(profiler.MemoryUsage()) / (1 << 20),
		"allocs":     profiler.MemoryAllocs(),
		"goroutines": profiler.NumGoroutine(),
	}
	if r, ok := e.Renderer.(*glbackend.RendererGL); ok {
		s := r.Stats()
		fields["draws"] = s.DrawCalls
		fields["skipped"] = s.Skipped
		fields["lights"] = s.Lights
	}
	log.WithFields(fields).Info("Frame stats")

	if !profiler.Enabled {
		return
	}
	profiler.LogReport(log)
	if path, err := profiler.OpenProfilerGraph(); err != nil {
		log.WithError(err).Warn("Could not export profile")
	} else {
		log.WithField("path", path).Info("Profile written")
	}
}
