package core

import (
	"runtime"
	"time"

	"github.com/hubastard/grove3d/engine/loader"
	"github.com/hubastard/grove3d/engine/logger"
	"github.com/hubastard/grove3d/engine/profiler"
)

const maxSteps = 10 // prevent spiral of death

// Run wires the platform window, renderer and loader and executes the main
// loop. Each frame polls events, delivers finished loads, runs fixed updates
// and renders, in that order.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error), decode loader.DecodeFunc) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	log := logger.Get()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}
	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{
		Window:   win,
		Renderer: rend,
		Loader:   loader.New(decode, log),
		Input:    NewInput(),
		Config:   cfg,
		start:    time.Now(),
	}
	defer eng.Loader.Close()

	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		app.OnEvent(eng, ev)
		if _, ok := ev.(EventResize); ok {
			fw, fh := win.FramebufferSize()
			if fw < 1 || fh < 1 {
				return
			}
			rend.Resize(fw, fh)
		}
	})

	app.OnStart(eng)

	tick := time.Second / time.Duration(cfg.TickRate)
	var (
		accum time.Duration
		prev  = time.Now()
	)
	for !win.ShouldClose() {
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		win.PollEvents()
		eng.Loader.Poll()

		steps := 0
		for accum >= tick && steps < maxSteps {
			app.OnUpdate(eng, tick.Seconds())
			accum -= tick
			steps++
		}
		if steps == maxSteps {
			accum = 0
		}
		alpha := float64(accum) / float64(tick)

		func() {
			defer profiler.Start("Frame")()
			app.OnRender(eng, alpha)
		}()
		win.SwapBuffers()
	}

	app.OnShutdown(eng)
	if cfg.Debug {
		profiler.LogReport(log)
	}
	log.Info("Engine exit")
	return nil
}
