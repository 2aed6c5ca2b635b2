package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hubastard/grove3d/engine/events"
	"github.com/hubastard/grove3d/engine/logger"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *test.Hook {
	t.Helper()
	l, hook := test.NewNullLogger()
	prev := logger.Set(l)
	t.Cleanup(func() { logger.Set(prev) })
	return hook
}

func TestAddRemove(t *testing.T) {
	a, b := NewNode(), NewNode()

	a.Add(b)
	assert.Same(t, a, b.Parent())
	assert.True(t, a.IsChild(b))
	assert.Equal(t, []Object{b}, a.Children())

	a.Remove(b)
	assert.Nil(t, b.Parent())
	assert.False(t, a.IsChild(b))
	assert.Empty(t, a.Children())
}

func TestReparent(t *testing.T) {
	a, b, c := NewNode(), NewNode(), NewNode()
	a.Add(b)
	c.Add(b)

	assert.Same(t, c, b.Parent())
	assert.False(t, a.IsChild(b))
	assert.True(t, c.IsChild(b))
	assert.Empty(t, a.Children())
}

func TestAddMarksChildTouched(t *testing.T) {
	a, b := NewNode(), NewNode()
	b.UpdateTransformHierarchy()
	require.False(t, b.Transform.Touched())

	a.Add(b)
	assert.True(t, b.Transform.Touched())
}

func TestRemoveMarksChildTouched(t *testing.T) {
	a, b := NewNode(), NewNode()
	a.Add(b)
	a.UpdateTransformHierarchy()
	require.False(t, b.Transform.Touched())

	a.Remove(b)
	assert.True(t, b.Transform.Touched())
}

func TestRemoveUnknownWarns(t *testing.T) {
	hook := captureLogs(t)
	a, b, c := NewNode(), NewNode(), NewNode()
	a.Add(b)

	a.Remove(c)
	a.Remove(nil)

	assert.Equal(t, []Object{b}, a.Children())
	require.Len(t, hook.Entries, 2)
	for _, e := range hook.Entries {
		assert.Equal(t, logrus.WarnLevel, e.Level)
		assert.Contains(t, e.Message, "not added to the graph")
	}
}

func TestRemoveGrandchildIsNotDirect(t *testing.T) {
	captureLogs(t)
	a, b, c := NewNode(), NewNode(), NewNode()
	a.Add(b)
	b.Add(c)

	a.Remove(c)
	assert.Same(t, b, c.Parent())
	assert.True(t, a.IsChild(c))
}

func TestAddRejectsCycles(t *testing.T) {
	hook := captureLogs(t)
	a, b := NewNode(), NewNode()
	a.Add(b)

	b.Add(a)
	a.Add(a)
	a.Add(nil)

	assert.Nil(t, a.Parent())
	assert.Equal(t, []Object{b}, a.Children())
	assert.Len(t, hook.Entries, 3)
}

func TestChildrenKeepInsertionOrder(t *testing.T) {
	root := NewNode()
	n1, n2, n3 := NewNode(), NewNode(), NewNode()
	root.Add(n1)
	root.Add(n2)
	root.Add(n3)
	root.Remove(n2)

	assert.Equal(t, []Object{n1, n3}, root.Children())

	// Re-adding to the same parent moves the node to the end.
	root.Add(n1)
	assert.Equal(t, []Object{n3, n1}, root.Children())
}

func TestRemoveAllChildren(t *testing.T) {
	var rec events.Recorder
	root := NewScene(&rec)
	a, b := NewNode(), NewNode()
	root.Add(a)
	root.Add(b)
	root.UpdateTransformHierarchy()
	rec.Reset()

	root.RemoveAllChildren()

	assert.Empty(t, root.Children())
	assert.Nil(t, a.Parent())
	assert.Nil(t, b.Parent())
	assert.True(t, a.Transform.Touched())
	assert.Equal(t, []string{events.ChannelNodeRemoved, events.ChannelNodeRemoved}, rec.Channels)
	assert.Equal(t, a, rec.Events[0].Node)
	assert.Equal(t, b, rec.Events[1].Node)
}

func TestIsChildDeep(t *testing.T) {
	root := NewNode()
	cur := root
	var last *Node
	for i := 0; i < 100000; i++ {
		next := NewNode()
		cur.Add(next)
		cur, last = next, next
	}
	assert.True(t, root.IsChild(last))
	assert.False(t, last.IsChild(root))
	assert.False(t, root.IsChild(NewNode()))
	assert.False(t, root.IsChild(nil))
}

func TestIsChildWide(t *testing.T) {
	root := NewNode()
	branch := NewNode()
	root.Add(NewNode())
	root.Add(branch)
	leaf := NewNode()
	branch.Add(leaf)

	assert.True(t, root.IsChild(leaf))
	assert.False(t, root.IsChild(root), "a node is not its own descendant")
}

func TestEvents(t *testing.T) {
	var rec events.Recorder
	root := NewScene(&rec)
	group := NewNode()
	leaf := NewNode()

	root.Add(group)
	group.Add(leaf) // reported through the root's sink
	group.Remove(leaf)

	require.Len(t, rec.Events, 3)
	assert.Equal(t, []string{events.ChannelNodeAdded, events.ChannelNodeAdded, events.ChannelNodeRemoved}, rec.Channels)
	assert.Equal(t, events.Event{Type: events.NodeAdded, Node: group, Parent: root}, rec.Events[0])
	assert.Equal(t, events.NodeAdded, rec.Events[1].Type)
	assert.Equal(t, leaf, rec.Events[1].Node)
	assert.Equal(t, events.Event{Type: events.NodeRemoved, Node: leaf, Parent: group}, rec.Events[2])
}

func TestReparentEmitsRemoveThenAdd(t *testing.T) {
	var rec events.Recorder
	root := NewScene(&rec)
	a, b, child := NewNode(), NewNode(), NewNode()
	root.Add(a)
	root.Add(b)
	a.Add(child)
	rec.Reset()

	b.Add(child)
	require.Len(t, rec.Events, 2)
	assert.Equal(t, events.NodeRemoved, rec.Events[0].Type)
	assert.Equal(t, a, rec.Events[0].Parent)
	assert.Equal(t, events.NodeAdded, rec.Events[1].Type)
	assert.Equal(t, b, rec.Events[1].Parent)
}

func TestDetachedGraphIsSilent(t *testing.T) {
	a, b := NewNode(), NewNode()
	assert.NotPanics(t, func() {
		a.Add(b)
		a.Remove(b)
	})
}

func TestSinkFollowsAttachment(t *testing.T) {
	var rec, own events.Recorder
	root := NewScene(&rec)
	a, b, c := NewNode(), NewNode(), NewNode()
	a.Add(b)
	b.Add(c)
	assert.Empty(t, rec.Events)

	root.Add(a)
	c.Add(NewNode())
	require.Len(t, rec.Events, 2)
	assert.Equal(t, c, rec.Events[1].Parent)

	b.SetEventSink(&own)
	c.Add(NewNode())
	assert.Len(t, rec.Events, 2)
	assert.Len(t, own.Events, 1)

	b.SetEventSink(nil)
	c.Add(NewNode())
	assert.Len(t, rec.Events, 3)

	root.Remove(a)
	rec.Reset()
	c.Add(NewNode())
	assert.Empty(t, rec.Events, "a detached subtree reports nowhere")
}

func TestDeepChainUnderSink(t *testing.T) {
	var rec events.Recorder
	root := NewScene(&rec)
	cur := &root.Node
	for i := 0; i < 100000; i++ {
		next := NewNode()
		cur.Add(next)
		cur = next
	}
	require.Len(t, rec.Events, 100000)
	assert.Same(t, cur, rec.Events[len(rec.Events)-1].Node)
}

func TestWorldTransformComposition(t *testing.T) {
	root := NewScene(nil)
	p, c := NewNode(), NewNode()
	root.Add(p)
	p.Add(c)

	p.Transform.SetPosition(mgl32.Vec3{1, 0, 0})
	p.Transform.Rotate(mgl32.Vec3{0, 0, 1}, mgl32.DegToRad(90))
	c.Transform.SetPosition(mgl32.Vec3{2, 0, 0})
	c.Transform.SetScale(mgl32.Vec3{3, 3, 3})

	root.UpdateTransformHierarchy()

	lp, lc := p.Transform.Get(), c.Transform.Get()
	assertMat4(t, lp, p.worldTransform)
	assertMat4(t, p.worldTransform.Mul4(lc), c.worldTransform)
	assertVec3(t, mgl32.Vec3{1, 2, 0}, c.worldTransform.Col(3).Vec3())
	assert.False(t, p.Transform.Touched())
	assert.False(t, c.Transform.Touched())
}

func TestHierarchyPassIsIdempotent(t *testing.T) {
	root := NewScene(nil)
	p, c := NewNode(), NewNode()
	root.Add(p)
	p.Add(c)
	p.Transform.Translate(mgl32.Vec3{0, 1, 0})
	c.Transform.Translate(mgl32.Vec3{0, 0, 4})

	root.UpdateTransformHierarchy()
	first := []mgl32.Mat4{root.worldTransform, p.worldTransform, c.worldTransform}
	root.UpdateTransformHierarchy()
	second := []mgl32.Mat4{root.worldTransform, p.worldTransform, c.worldTransform}

	assert.Equal(t, first, second)
}

func TestHierarchyPassPropagatesParentChange(t *testing.T) {
	root := NewScene(nil)
	p, c, g := NewNode(), NewNode(), NewNode()
	root.Add(p)
	p.Add(c)
	c.Add(g)
	c.Transform.SetPosition(mgl32.Vec3{0, 1, 0})
	g.Transform.SetPosition(mgl32.Vec3{0, 0, 1})
	root.UpdateTransformHierarchy()

	// Only the parent moves; descendants must still follow.
	p.Transform.SetPosition(mgl32.Vec3{5, 0, 0})
	root.UpdateTransformHierarchy()

	assertVec3(t, mgl32.Vec3{5, 1, 0}, c.worldTransform.Col(3).Vec3())
	assertVec3(t, mgl32.Vec3{5, 1, 1}, g.worldTransform.Col(3).Vec3())
	for _, n := range []*Node{&root.Node, p, c, g} {
		assert.False(t, n.worldTouched, "flag must not survive the pass")
	}
}

func TestSiblingsObserveParentFlag(t *testing.T) {
	root := NewScene(nil)
	p := NewNode()
	root.Add(p)
	kids := []*Node{NewNode(), NewNode(), NewNode()}
	for i, k := range kids {
		k.Transform.SetPosition(mgl32.Vec3{float32(i), 0, 0})
		p.Add(k)
	}
	root.UpdateTransformHierarchy()

	p.Transform.SetPosition(mgl32.Vec3{0, 10, 0})
	root.UpdateTransformHierarchy()

	for i, k := range kids {
		assertVec3(t, mgl32.Vec3{float32(i), 10, 0}, k.worldTransform.Col(3).Vec3())
	}
}

func TestUpdateWorldTransformOnDemand(t *testing.T) {
	root := NewScene(nil)
	p, c := NewNode(), NewNode()
	root.Add(p)
	p.Add(c)
	p.Transform.SetPosition(mgl32.Vec3{1, 2, 3})
	c.Transform.SetPosition(mgl32.Vec3{1, 0, 0})

	// No hierarchy pass has run yet.
	assertVec3(t, mgl32.Vec3{2, 2, 3}, c.GetWorldPosition())
	assertVec3(t, mgl32.Vec3{1, 2, 3}, p.GetWorldPosition())
}

func TestUpdatePassesConverge(t *testing.T) {
	build := func() (*Scene, *Node, *Node) {
		root := NewScene(nil)
		p, c := NewNode(), NewNode()
		root.Add(p)
		p.Add(c)
		p.Transform.SetPosition(mgl32.Vec3{1, 0, 0})
		p.Transform.Rotate(mgl32.Vec3{0, 1, 0}, 0.7)
		c.Transform.SetPosition(mgl32.Vec3{0, 0, 2})
		c.Transform.SetScale(mgl32.Vec3{2, 1, 1})
		return root, p, c
	}

	rootA, _, cA := build()
	rootA.UpdateTransformHierarchy()

	_, _, cB := build()
	cB.UpdateWorldTransform()

	assertMat4(t, cA.worldTransform, cB.worldTransform)
}

func TestOnDemandThenHierarchyPassStaysCurrent(t *testing.T) {
	root := NewScene(nil)
	p, c := NewNode(), NewNode()
	root.Add(p)
	p.Add(c)
	c.Transform.SetPosition(mgl32.Vec3{0, 1, 0})
	root.UpdateTransformHierarchy()

	// The parent is refreshed on demand before the next frame's pass.
	p.Transform.SetPosition(mgl32.Vec3{3, 0, 0})
	assertVec3(t, mgl32.Vec3{3, 0, 0}, p.GetWorldPosition())

	root.UpdateTransformHierarchy()
	assertVec3(t, mgl32.Vec3{3, 1, 0}, c.worldTransform.Col(3).Vec3())
}

func TestTransformAutoUpdateOff(t *testing.T) {
	root := NewScene(nil)
	n := NewNode()
	root.Add(n)
	n.TransformAutoUpdate = false
	n.Transform.SetPosition(mgl32.Vec3{1, 1, 1})

	root.UpdateTransformHierarchy()
	assertMat4(t, mgl32.Ident4(), n.GetWorldTransform())
}

func TestGetWorldTransform(t *testing.T) {
	root := NewScene(nil)
	n := NewNode()
	root.Add(n)
	n.Transform.SetPosition(mgl32.Vec3{0, 0, -5})
	assertMat4(t, mgl32.Translate3D(0, 0, -5), n.GetWorldTransform())
}

func TestLookAt(t *testing.T) {
	n := NewNode()
	n.Transform.SetPosition(mgl32.Vec3{0, 0, 0})
	n.LookAt(mgl32.Vec3{10, 0, 0})
	assertVec3(t, mgl32.Vec3{1, 0, 0}, n.Transform.GetRotation().Rotate(mgl32.Vec3{0, 0, 1}))

	cam := NewPerspectiveCamera(1, 1, 0.1, 100)
	cam.LookAt(mgl32.Vec3{10, 0, 0})
	assertVec3(t, mgl32.Vec3{1, 0, 0}, cam.Transform.GetRotation().Rotate(mgl32.Vec3{0, 0, -1}))
}

func TestTraversePreOrder(t *testing.T) {
	root := NewNode()
	a, b, a1, a2 := NewNode(), NewNode(), NewNode(), NewNode()
	root.Add(a)
	root.Add(b)
	a.Add(a1)
	a.Add(a2)

	var seen []Object
	root.Traverse(func(o Object) bool {
		seen = append(seen, o)
		return true
	})
	assert.Equal(t, []Object{root, a, a1, a2, b}, seen)

	seen = nil
	root.Traverse(func(o Object) bool {
		seen = append(seen, o)
		return o.GetNode() != a
	})
	assert.Equal(t, []Object{root, a, b}, seen, "returning false skips the subtree")
}

func TestAttachedAndDispose(t *testing.T) {
	root := NewScene(nil)
	group, leaf := NewNode(), NewNode()
	group.Add(leaf)
	assert.False(t, leaf.Attached())

	root.Add(group)
	assert.True(t, leaf.Attached())
	assert.True(t, root.Attached())

	leaf.Dispose()
	assert.True(t, leaf.Disposed())
	assert.Nil(t, leaf.Parent())
	assert.False(t, group.IsChild(leaf))
	assert.False(t, leaf.Attached())
}

func TestObjectReturnsOuterValue(t *testing.T) {
	m := NewMesh(nil, nil)
	assert.Equal(t, Object(m), m.GetNode().Object())
	assert.Equal(t, KindMesh, m.Kind())

	root := NewNode()
	root.Add(m)
	assert.Same(t, root, m.Parent())
	assert.Equal(t, Object(root), m.Parent().Object())
}
