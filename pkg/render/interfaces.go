package render

import "github.com/taigrr/lumen/pkg/math3d"

// Frame is the camera's orthonormal reference frame. W points from the
// scene back toward the eye.
type Frame struct {
	Origin  math3d.Vec3
	U, V, W math3d.Vec3
}

// Camera maps pixel-space coordinates to primary rays.
type Camera interface {
	GetRay(x, y float64) math3d.Ray
	Frame() Frame
}

// OpaqueShape is anything a ray can hit that blocks light.
type OpaqueShape interface {
	IntersectOpaque(ray math3d.Ray) OpaqueHit
}

// TransparentShape is anything a ray can hit that is composited over the
// opaque surface behind it.
type TransparentShape interface {
	IntersectTransparent(ray math3d.Ray) TransparentHit
}

// Light contributes illumination to a surface point.
type Light interface {
	// Illuminate returns the light's contribution at point. When inShadow is
	// true the light should return only the terms that do not depend on a
	// clear path to the light.
	Illuminate(point, normal math3d.Vec3, material Material, frame Frame, inShadow bool) Color

	// InShadow reports whether occluders block the path from point to the light.
	InShadow(point, normal math3d.Vec3, occluders []OpaqueShape, frame Frame) bool
}

// Texture returns a color for surface coordinates (u, v).
type Texture interface {
	SampleUV(u, v float64) Color
}

// Surface is the destination pixel buffer for a render pass.
type Surface interface {
	Width() int
	Height() int
	Clear()
	ClearColor() Color
	SetPixel(x, y int, c Color)
	Present() error
}

// Scene is everything a render pass reads. The ray tracer never modifies it.
type Scene struct {
	Name        string
	Camera      Camera
	Opaque      []OpaqueShape
	Transparent []TransparentShape
	Lights      []Light
}
