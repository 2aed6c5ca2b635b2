package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform is a node's local translation, rotation and scale.
//
// touched is raised by every mutation and stays raised until the owning node
// has recomputed its world transform from it. The local matrix itself is
// cached separately and rebuilt on the next Get.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	matrix      mgl32.Mat4
	matrixDirty bool
	touched     bool
}

func NewTransform() Transform {
	return Transform{
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
		matrix:   mgl32.Ident4(),
		touched:  true,
	}
}

// Get returns the local matrix T * R * S.
func (t *Transform) Get() mgl32.Mat4 {
	if t.matrixDirty {
		t.matrix = mgl32.Translate3D(t.position[0], t.position[1], t.position[2]).
			Mul4(t.rotation.Mat4()).
			Mul4(mgl32.Scale3D(t.scale[0], t.scale[1], t.scale[2]))
		t.matrixDirty = false
	}
	return t.matrix
}

func (t *Transform) GetPosition() mgl32.Vec3 { return t.position }
func (t *Transform) GetRotation() mgl32.Quat { return t.rotation }
func (t *Transform) GetScale() mgl32.Vec3    { return t.scale }

// Touched reports whether the transform changed since the owning node last
// recomputed its world transform.
func (t *Transform) Touched() bool { return t.touched }

// Touch forces the owning node to recompute its world transform.
func (t *Transform) Touch() { t.touched = true }

func (t *Transform) changed() {
	t.matrixDirty = true
	t.touched = true
}

func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.position = p
	t.changed()
}

func (t *Transform) SetRotation(q mgl32.Quat) {
	t.rotation = q.Normalize()
	t.changed()
}

func (t *Transform) SetScale(s mgl32.Vec3) {
	t.scale = s
	t.changed()
}

// Translate moves the transform in its parent's space.
func (t *Transform) Translate(d mgl32.Vec3) {
	t.position = t.position.Add(d)
	t.changed()
}

// Rotate applies a rotation of angle radians about a local axis.
func (t *Transform) Rotate(axis mgl32.Vec3, angle float32) {
	t.rotation = t.rotation.Mul(mgl32.QuatRotate(angle, axis.Normalize())).Normalize()
	t.changed()
}

// Scale multiplies the current scale component-wise.
func (t *Transform) Scale(s mgl32.Vec3) {
	t.scale = mgl32.Vec3{t.scale[0] * s[0], t.scale[1] * s[1], t.scale[2] * s[2]}
	t.changed()
}

// LookAt rotates the transform so that its -Z axis points from eye to target.
func (t *Transform) LookAt(eye, target, up mgl32.Vec3) {
	if eye.ApproxEqual(target) {
		return
	}
	view := mgl32.LookAtV(eye, target, up)
	t.rotation = mgl32.Mat4ToQuat(view).Inverse().Normalize()
	t.changed()
}
