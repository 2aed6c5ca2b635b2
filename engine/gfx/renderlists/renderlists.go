// Package renderlists classifies a scene graph into the per-frame draw lists.
package renderlists

import (
	"github.com/hubastard/grove3d/engine/lights"
	"github.com/hubastard/grove3d/engine/scene"
)

// Lists holds the opaque renderables, transparent renderables and lights of
// the last processed scene, in pre-order traversal order. The slices
// reference live nodes and are only valid until the next ProcessScene.
type Lists struct {
	opaque      []scene.Renderable
	transparent []scene.Renderable
	lights      []lights.Light
}

func New() *Lists { return &Lists{} }

// ProcessScene clears the previous lists and walks root once, depth first.
func (l *Lists) ProcessScene(root scene.Object) {
	l.Reset()
	if root == nil {
		return
	}
	root.GetNode().Traverse(func(obj scene.Object) bool {
		l.processNode(obj)
		return true
	})
}

func (l *Lists) processNode(obj scene.Object) {
	if r, ok := obj.(scene.Renderable); ok {
		if mat := r.Material(); mat != nil && r.Geometry() != nil {
			if mat.Props().Transparent {
				l.transparent = append(l.transparent, r)
			} else {
				l.opaque = append(l.opaque, r)
			}
		}
	}
	if light, ok := obj.(lights.Light); ok {
		l.lights = append(l.lights, light)
	}
}

// Reset empties the lists and drops the node references, keeping capacity.
func (l *Lists) Reset() {
	clear(l.opaque)
	clear(l.transparent)
	clear(l.lights)
	l.opaque = l.opaque[:0]
	l.transparent = l.transparent[:0]
	l.lights = l.lights[:0]
}

func (l *Lists) Opaque() []scene.Renderable      { return l.opaque }
func (l *Lists) Transparent() []scene.Renderable { return l.transparent }
func (l *Lists) Lights() []lights.Light          { return l.lights }

// Len is the number of entries across all three lists.
func (l *Lists) Len() int {
	return len(l.opaque) + len(l.transparent) + len(l.lights)
}
