package core

// Layer is one slice of an application. Layers are updated and rendered
// bottom to top and receive events top to bottom.
type Layer interface {
	OnAttach(e *Engine)
	OnDetach(e *Engine)
	OnUpdate(e *Engine, dt float64)
	OnRender(e *Engine, alpha float64)
	OnEvent(e *Engine, ev Event) bool // return true if handled; propagation stops
}

// LayerStack is an App that forwards every hook to its layers.
type LayerStack struct{ list []Layer }

var _ App = (*LayerStack)(nil)

func (ls *LayerStack) Push(l Layer) { ls.list = append(ls.list, l) }

func (ls *LayerStack) Pop() (Layer, bool) {
	if len(ls.list) == 0 {
		return nil, false
	}
	i := len(ls.list) - 1
	l := ls.list[i]
	ls.list = ls.list[:i]
	return l, true
}

func (ls *LayerStack) Len() int { return len(ls.list) }

func (ls *LayerStack) OnStart(e *Engine) {
	for _, l := range ls.list {
		l.OnAttach(e)
	}
}

func (ls *LayerStack) OnUpdate(e *Engine, dt float64) {
	for _, l := range ls.list {
		l.OnUpdate(e, dt)
	}
}

func (ls *LayerStack) OnRender(e *Engine, alpha float64) {
	for _, l := range ls.list {
		l.OnRender(e, alpha)
	}
}

func (ls *LayerStack) OnEvent(e *Engine, ev Event) {
	for i := len(ls.list) - 1; i >= 0; i-- {
		if ls.list[i].OnEvent(e, ev) {
			return
		}
	}
}

func (ls *LayerStack) OnShutdown(e *Engine) {
	for i := len(ls.list) - 1; i >= 0; i-- {
		ls.list[i].OnDetach(e)
	}
}
