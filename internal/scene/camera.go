package scene

import "github.com/go-gl/mathgl/mgl32"

// Camera projects world-space points onto the screen with a fixed
// perspective view of the field from +z.
type Camera struct {
	fov  float32
	near float32
	far  float32
	eye  mgl32.Vec3

	width  int
	height int
	view   mgl32.Mat4
	proj   mgl32.Mat4
}

func NewCamera(width, height int) *Camera {
	c := &Camera{
		fov:  75,
		near: 0.1,
		far:  1000,
		eye:  mgl32.Vec3{0, 0, 30},
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio. Called on window resize; it touches
// nothing but the projection.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	c.width = width
	c.height = height
	c.view = mgl32.LookAtV(c.eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	c.proj = mgl32.Perspective(mgl32.DegToRad(c.fov), float32(width)/float32(height), c.near, c.far)
}

// Project maps a world point to screen pixels. depth is the normalized
// device depth in [0,1]; ok is false for points outside the depth range,
// including points behind the camera.
func (c *Camera) Project(p mgl32.Vec3) (x, y, depth float32, ok bool) {
	win := mgl32.Project(p, c.view, c.proj, 0, 0, c.width, c.height)
	if win.Z() < 0 || win.Z() > 1 {
		return 0, 0, 0, false
	}
	// GL window coordinates grow upward.
	return win.X(), float32(c.height) - win.Y(), win.Z(), true
}
