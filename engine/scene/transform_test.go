package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func assertMat4(t *testing.T, want, got mgl32.Mat4) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5, "want\n%v\ngot\n%v", want, got)
}

func assertVec3(t *testing.T, want, got mgl32.Vec3) {
	t.Helper()
	assert.InDeltaSlice(t, want[:], got[:], 1e-5, "want %v, got %v", want, got)
}

func TestTransformDefaults(t *testing.T) {
	tr := NewTransform()
	assertMat4(t, mgl32.Ident4(), tr.Get())
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, tr.GetScale())
	assert.True(t, tr.Touched(), "a fresh transform has never been propagated")
}

func TestTransformComposesTRS(t *testing.T) {
	tr := NewTransform()
	tr.SetPosition(mgl32.Vec3{1, 2, 3})
	tr.Rotate(mgl32.Vec3{0, 1, 0}, mgl32.DegToRad(90))
	tr.SetScale(mgl32.Vec3{2, 2, 2})

	want := mgl32.Translate3D(1, 2, 3).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(90))).
		Mul4(mgl32.Scale3D(2, 2, 2))
	assertMat4(t, want, tr.Get())

	// +X scaled by 2 and turned 90° about Y lands on -Z.
	p := tr.Get().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assertVec3(t, mgl32.Vec3{1, 2, 1}, p)
}

func TestTransformMutatorsTouch(t *testing.T) {
	mutators := map[string]func(*Transform){
		"SetPosition": func(tr *Transform) { tr.SetPosition(mgl32.Vec3{1, 0, 0}) },
		"SetRotation": func(tr *Transform) { tr.SetRotation(mgl32.QuatRotate(1, mgl32.Vec3{0, 0, 1})) },
		"SetScale":    func(tr *Transform) { tr.SetScale(mgl32.Vec3{3, 3, 3}) },
		"Translate":   func(tr *Transform) { tr.Translate(mgl32.Vec3{0, 1, 0}) },
		"Rotate":      func(tr *Transform) { tr.Rotate(mgl32.Vec3{1, 0, 0}, 0.5) },
		"Scale":       func(tr *Transform) { tr.Scale(mgl32.Vec3{2, 1, 1}) },
		"LookAt":      func(tr *Transform) { tr.LookAt(mgl32.Vec3{}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}) },
		"Touch":       func(tr *Transform) { tr.Touch() },
	}
	for name, mutate := range mutators {
		t.Run(name, func(t *testing.T) {
			tr := NewTransform()
			tr.touched = false
			mutate(&tr)
			assert.True(t, tr.Touched())
		})
	}
}

func TestTransformTranslateAccumulates(t *testing.T) {
	tr := NewTransform()
	tr.Translate(mgl32.Vec3{1, 0, 0})
	tr.Translate(mgl32.Vec3{0, 2, 0})
	assert.Equal(t, mgl32.Vec3{1, 2, 0}, tr.GetPosition())
	assertVec3(t, mgl32.Vec3{1, 2, 0}, tr.Get().Col(3).Vec3())
}

func TestTransformLookAt(t *testing.T) {
	tr := NewTransform()
	tr.LookAt(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{5, 0, 0}, mgl32.Vec3{0, 1, 0})
	forward := tr.GetRotation().Rotate(mgl32.Vec3{0, 0, -1})
	assertVec3(t, mgl32.Vec3{1, 0, 0}, forward)

	// Degenerate requests leave the rotation alone.
	before := tr.GetRotation()
	tr.LookAt(mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}, mgl32.Vec3{0, 1, 0})
	assert.Equal(t, before, tr.GetRotation())
}
