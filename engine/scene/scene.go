package scene

import (
	"github.com/hubastard/grove3d/engine/colors"
	"github.com/hubastard/grove3d/engine/events"
)

// Fog fades fragments linearly towards Color between Near and Far.
type Fog struct {
	Color     colors.Color
	Near, Far float32
}

// Scene is the root of a graph. Structural changes anywhere below it are
// reported to the sink given at construction.
type Scene struct {
	Node
	Fog        *Fog
	Background colors.Color
}

// NewScene creates a root node. sink may be nil.
func NewScene(sink events.Sink) *Scene {
	s := &Scene{Background: colors.DarkGray}
	s.Init(s, KindNode)
	s.isScene = true
	s.SetEventSink(sink)
	return s
}
