package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera is a node that provides view and projection matrices.
type Camera interface {
	Object
	Projection() mgl32.Mat4
	View() mgl32.Mat4
	UpdateViewTransform()
	SetAspect(aspect float32)
}

type cameraBase struct {
	Node
	view mgl32.Mat4
}

func (c *cameraBase) init(self Object) {
	c.Init(self, KindCamera)
	c.view = mgl32.Ident4()
}

// UpdateViewTransform sets the view matrix to the inverse world transform.
func (c *cameraBase) UpdateViewTransform() {
	c.view = c.GetWorldTransform().Inv()
}

func (c *cameraBase) View() mgl32.Mat4 { return c.view }

type PerspectiveCamera struct {
	cameraBase
	FOV    float32 // vertical, radians
	Aspect float32
	Near   float32
	Far    float32
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{FOV: fov, Aspect: aspect, Near: near, Far: far}
	c.init(c)
	return c
}

func (c *PerspectiveCamera) SetAspect(aspect float32) { c.Aspect = aspect }

func (c *PerspectiveCamera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// OrthographicCamera projects without perspective, scaled by Zoom.
type OrthographicCamera struct {
	cameraBase
	Left, Right, Bottom, Top float32
	Near, Far                float32
	Zoom                     float32 // 1 = no zoom
}

func NewOrthographicCamera(left, right, bottom, top, near, far float32) *OrthographicCamera {
	c := &OrthographicCamera{
		Left: left, Right: right,
		Bottom: bottom, Top: top,
		Near: near, Far: far,
		Zoom: 1,
	}
	c.init(c)
	return c
}

// SetAspect keeps the vertical extent and fits the horizontal one to aspect.
func (c *OrthographicCamera) SetAspect(aspect float32) {
	halfH := (c.Top - c.Bottom) * 0.5
	cx := (c.Left + c.Right) * 0.5
	c.Left, c.Right = cx-halfH*aspect, cx+halfH*aspect
}

func (c *OrthographicCamera) SetZoom(z float32) {
	if z < 0.05 {
		z = 0.05
	}
	c.Zoom = z
}

func (c *OrthographicCamera) Projection() mgl32.Mat4 {
	z := c.Zoom
	return mgl32.Ortho(c.Left/z, c.Right/z, c.Bottom/z, c.Top/z, c.Near, c.Far)
}
