package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// PerspectiveCamera is a pinhole camera that shoots rays through an image
// plane of Width x Height pixels.
//
// Pixel coordinates are continuous: pixel (x, y) covers [x, x+1) x [y, y+1),
// with y growing downward. The camera's state is recomputed eagerly by its
// setters so GetRay can be called from many goroutines during a render.
type PerspectiveCamera struct {
	position math3d.Vec3
	target   math3d.Vec3
	up       math3d.Vec3
	fov      float64 // vertical field of view in radians
	width    int
	height   int

	frame        Frame
	halfW, halfH float64
}

// NewPerspectiveCamera creates a camera at (0, 0, 5) looking at the origin.
func NewPerspectiveCamera(width, height int) *PerspectiveCamera {
	c := &PerspectiveCamera{
		position: math3d.V3(0, 0, 5),
		target:   math3d.Zero3(),
		up:       math3d.Up(),
		fov:      math.Pi / 3, // 60 degrees
		width:    max(width, 1),
		height:   max(height, 1),
	}
	c.update()
	return c
}

// SetPosition moves the eye point.
func (c *PerspectiveCamera) SetPosition(pos math3d.Vec3) {
	c.position = pos
	c.update()
}

// Position returns the eye point.
func (c *PerspectiveCamera) Position() math3d.Vec3 {
	return c.position
}

// LookAt aims the camera at target.
func (c *PerspectiveCamera) LookAt(target math3d.Vec3) {
	c.target = target
	c.update()
}

// Target returns the point the camera looks at.
func (c *PerspectiveCamera) Target() math3d.Vec3 {
	return c.target
}

// SetUp sets the world up vector used to orient the frame.
func (c *PerspectiveCamera) SetUp(up math3d.Vec3) {
	c.up = up
	c.update()
}

// SetFOV sets the vertical field of view (in radians).
func (c *PerspectiveCamera) SetFOV(fov float64) {
	c.fov = fov
	c.update()
}

// SetResolution sets the image plane size in pixels.
func (c *PerspectiveCamera) SetResolution(width, height int) {
	c.width = max(width, 1)
	c.height = max(height, 1)
	c.update()
}

// Orbit places the camera on a sphere of the given radius around target.
// Yaw rotates around the world Y axis; pitch raises the eye above the
// target's horizon and is clamped short of the poles.
func (c *PerspectiveCamera) Orbit(target math3d.Vec3, yaw, pitch, distance float64) {
	const maxPitch = math.Pi/2 - 0.01
	pitch = math.Max(-maxPitch, math.Min(maxPitch, pitch))

	offset := math3d.V3(
		math.Sin(yaw)*math.Cos(pitch),
		math.Sin(pitch),
		math.Cos(yaw)*math.Cos(pitch),
	).Scale(distance)

	c.position = target.Add(offset)
	c.target = target
	c.update()
}

// Frame returns the camera's reference frame.
func (c *PerspectiveCamera) Frame() Frame {
	return c.frame
}

// GetRay returns the primary ray through pixel-space point (x, y).
func (c *PerspectiveCamera) GetRay(x, y float64) math3d.Ray {
	u := (2*x/float64(c.width) - 1) * c.halfW
	v := (1 - 2*y/float64(c.height)) * c.halfH

	dir := c.frame.U.Scale(u).
		Add(c.frame.V.Scale(v)).
		Sub(c.frame.W)
	return math3d.NewRay(c.position, dir)
}

func (c *PerspectiveCamera) update() {
	w := c.position.Sub(c.target).Normalize()
	u := c.up.Cross(w).Normalize()
	if u.LenSq() == 0 {
		// Looking straight along up; pick any perpendicular.
		u = math3d.V3(1, 0, 0)
	}
	v := w.Cross(u)

	c.frame = Frame{Origin: c.position, U: u, V: v, W: w}
	c.halfH = math.Tan(c.fov / 2)
	c.halfW = c.halfH * float64(c.width) / float64(c.height)
}
