// Package scene implements the scene graph: nodes with local transforms,
// lazily propagated world transforms, cameras and the mesh renderable.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/hubastard/grove3d/engine/events"
	"github.com/hubastard/grove3d/engine/logger"
)

// Kind is the closed set of node variants.
type Kind int

const (
	KindNode Kind = iota
	KindMesh
	KindLight
	KindCamera
	KindHelper
)

func (k Kind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindMesh:
		return "mesh"
	case KindLight:
		return "light"
	case KindCamera:
		return "camera"
	case KindHelper:
		return "helper"
	default:
		return "unknown"
	}
}

// Object is anything that can live in the graph. Node kinds embed Node and
// get GetNode for free.
type Object interface {
	GetNode() *Node
}

// Node is a graph element. A node owns its children; the parent link is a
// plain back-reference and never keeps the parent alive on its own.
type Node struct {
	Name      string
	Transform Transform
	// TransformAutoUpdate lets the hierarchy pass recompute this node.
	TransformAutoUpdate bool
	Up                  mgl32.Vec3

	id       uuid.UUID
	kind     Kind
	self     Object
	children []Object
	parent   *Node

	worldTransform mgl32.Mat4
	worldTouched   bool

	// sink is set on this node; resolved is sink or the nearest
	// ancestor's, kept current on attach and detach.
	sink     events.Sink
	resolved events.Sink
	isScene  bool
	disposed bool
}

// NewNode creates a plain grouping node.
func NewNode() *Node {
	n := &Node{}
	n.Init(n, KindNode)
	return n
}

// Init prepares an embedded Node. self is the outer object that embeds it and
// is what Object returns.
func (n *Node) Init(self Object, kind Kind) {
	n.Transform = NewTransform()
	n.TransformAutoUpdate = true
	n.Up = mgl32.Vec3{0, 1, 0}
	n.id = uuid.New()
	n.kind = kind
	n.self = self
	n.worldTransform = mgl32.Ident4()
}

func (n *Node) GetNode() *Node { return n }

// Object returns the value that embeds this node.
func (n *Node) Object() Object {
	if n.self == nil {
		return n
	}
	return n.self
}

func (n *Node) ID() uuid.UUID { return n.id }
func (n *Node) Kind() Kind    { return n.kind }

func (n *Node) String() string {
	if n.Name != "" {
		return fmt.Sprintf("%s(%s %s)", n.kind, n.Name, n.id.String()[:8])
	}
	return fmt.Sprintf("%s(%s)", n.kind, n.id.String()[:8])
}

// SetEventSink sets where structural changes below this node are reported.
func (n *Node) SetEventSink(s events.Sink) {
	n.sink = s
	var inherited events.Sink
	if n.parent != nil {
		inherited = n.parent.resolved
	}
	n.propagateSink(inherited)
}

// propagateSink hands inherited down the subtree, stopping at nodes that
// carry their own sink.
func (n *Node) propagateSink(inherited events.Sink) {
	if n.sink != nil {
		inherited = n.sink
	}
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur.resolved = inherited
		for _, c := range cur.children {
			if c == nil {
				continue
			}
			if cn := c.GetNode(); cn.sink == nil {
				stack = append(stack, cn)
			}
		}
	}
}

func (n *Node) dispatch(t events.Type, child Object) {
	if s := n.resolved; s != nil {
		s.Dispatch(t.Channel(), events.Event{Type: t, Node: child, Parent: n.Object()})
	}
}

// Add attaches child, detaching it from its previous parent first.
func (n *Node) Add(child Object) {
	if child == nil {
		logger.Get().WithField("node", n).Warn("Attempting to add a nil node")
		return
	}
	cn := child.GetNode()
	if cn == n || cn.IsChild(n) {
		logger.Get().WithField("node", cn).Warn("Attempting to add a node to itself or to one of its descendants")
		return
	}
	if cn.parent != nil {
		cn.parent.Remove(child)
	}
	cn.parent = n
	n.children = append(n.children, child)
	cn.Transform.Touch()
	if cn.sink == nil && (cn.resolved != nil || n.resolved != nil) {
		cn.propagateSink(n.resolved)
	}

	n.dispatch(events.NodeAdded, child)
}

// Remove detaches child without destroying it. Removing a node that is not a
// direct child is reported and otherwise ignored.
func (n *Node) Remove(child Object) {
	idx := -1
	if child != nil {
		cn := child.GetNode()
		for i, c := range n.children {
			if c != nil && c.GetNode() == cn {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		logger.Get().WithField("node", child).Warn("Attempting to remove a node that was not added to the graph")
		return
	}

	n.dispatch(events.NodeRemoved, child)

	copy(n.children[idx:], n.children[idx+1:])
	n.children[len(n.children)-1] = nil
	n.children = n.children[:len(n.children)-1]

	cn := child.GetNode()
	cn.parent = nil
	cn.Transform.Touch()
	cn.detachSink()
}

func (n *Node) detachSink() {
	if n.sink == nil && n.resolved != nil {
		n.propagateSink(nil)
	}
}

// RemoveAllChildren detaches every child.
func (n *Node) RemoveAllChildren() {
	for i, c := range n.children {
		if c == nil {
			continue
		}
		n.dispatch(events.NodeRemoved, c)
		cn := c.GetNode()
		cn.parent = nil
		cn.Transform.Touch()
		cn.detachSink()
		n.children[i] = nil
	}
	n.children = n.children[:0]
}

// Children returns the owned children in insertion order. The slice belongs
// to the node and must not be modified.
func (n *Node) Children() []Object { return n.children }

// IsChild reports whether target is a descendant of n, at any depth.
func (n *Node) IsChild(target Object) bool {
	if target == nil {
		return false
	}
	tn := target.GetNode()

	queue := make([]*Node, 0, len(n.children))
	for _, c := range n.children {
		if c != nil {
			queue = append(queue, c.GetNode())
		}
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue[0] = nil
		queue = queue[1:]
		if cur == tn {
			return true
		}
		for _, c := range cur.children {
			if c != nil {
				queue = append(queue, c.GetNode())
			}
		}
	}
	return false
}

func (n *Node) Parent() *Node { return n.parent }

// Traverse walks the subtree rooted at n in pre-order, children in insertion
// order. Returning false from fn skips that object's children.
func (n *Node) Traverse(fn func(Object) bool) {
	stack := []Object{n.Object()}
	for len(stack) > 0 {
		obj := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(obj) {
			continue
		}
		children := obj.GetNode().children
		for i := len(children) - 1; i >= 0; i-- {
			if children[i] != nil {
				stack = append(stack, children[i])
			}
		}
	}
}

// UpdateTransformHierarchy recomputes stale world transforms top-down. Call it
// once per frame on the root.
func (n *Node) UpdateTransformHierarchy() {
	if n.TransformAutoUpdate && n.shouldUpdateWorldTransform() {
		n.recomputeWorldTransform()
		n.worldTouched = true
	}

	for _, c := range n.children {
		if c != nil {
			c.GetNode().UpdateTransformHierarchy()
		}
	}

	// Every child has seen the flag by now.
	n.worldTouched = false
}

// UpdateWorldTransform brings this node's world transform up to date right
// away, updating its ancestors first.
func (n *Node) UpdateWorldTransform() {
	if n.parent != nil {
		n.parent.UpdateWorldTransform()
	}
	if n.shouldUpdateWorldTransform() {
		n.recomputeWorldTransform()
		// Children were computed against the old value.
		for _, c := range n.children {
			if c != nil {
				c.GetNode().Transform.Touch()
			}
		}
	}
}

func (n *Node) shouldUpdateWorldTransform() bool {
	return n.Transform.touched || (n.parent != nil && n.parent.worldTouched)
}

func (n *Node) recomputeWorldTransform() {
	if n.parent == nil {
		n.worldTransform = n.Transform.Get()
	} else {
		n.worldTransform = n.parent.worldTransform.Mul4(n.Transform.Get())
	}
	n.Transform.touched = false
}

func (n *Node) GetWorldTransform() mgl32.Mat4 {
	if n.TransformAutoUpdate {
		n.UpdateWorldTransform()
	}
	return n.worldTransform
}

func (n *Node) GetWorldPosition() mgl32.Vec3 {
	n.UpdateWorldTransform()
	return n.worldTransform.Col(3).Vec3()
}

// LookAt turns the node towards target. Cameras point -Z at the target,
// everything else points +Z.
func (n *Node) LookAt(target mgl32.Vec3) {
	pos := n.GetWorldPosition()
	if n.kind == KindCamera {
		n.Transform.LookAt(pos, target, n.Up)
	} else {
		n.Transform.LookAt(target, pos, n.Up)
	}
}

// Attached reports whether the node hangs under a Scene root.
func (n *Node) Attached() bool {
	cur := n
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur.isScene
}

// Dispose detaches the node and marks it dead. Pending work that targets a
// disposed node must drop its result.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.disposed = true
	if n.parent != nil {
		n.parent.Remove(n.Object())
	}
}

func (n *Node) Disposed() bool { return n.disposed }
