package geometry

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Triangle is a single triangle. When Smooth is set, the shading normal is
// interpolated from the per-vertex normals N.
type Triangle struct {
	V      [3]math3d.Vec3
	N      [3]math3d.Vec3
	UV     [3]math3d.Vec2
	Smooth bool
}

// NewTriangle creates a flat-shaded triangle.
func NewTriangle(a, b, c math3d.Vec3) *Triangle {
	return &Triangle{V: [3]math3d.Vec3{a, b, c}}
}

// FaceNormal returns the unit normal given by counter-clockwise winding.
func (tri *Triangle) FaceNormal() math3d.Vec3 {
	return tri.V[1].Sub(tri.V[0]).Cross(tri.V[2].Sub(tri.V[0])).Normalize()
}

// Hit implements Primitive using the Möller-Trumbore test.
func (tri *Triangle) Hit(ray math3d.Ray, tMin, tMax float64) (SurfaceHit, bool) {
	e1 := tri.V[1].Sub(tri.V[0])
	e2 := tri.V[2].Sub(tri.V[0])

	p := ray.Direction.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < 1e-12 {
		return SurfaceHit{}, false
	}
	inv := 1 / det

	s := ray.Origin.Sub(tri.V[0])
	b1 := s.Dot(p) * inv
	if b1 < 0 || b1 > 1 {
		return SurfaceHit{}, false
	}
	q := s.Cross(e1)
	b2 := ray.Direction.Dot(q) * inv
	if b2 < 0 || b1+b2 > 1 {
		return SurfaceHit{}, false
	}

	t := e2.Dot(q) * inv
	if t <= tMin || t >= tMax {
		return SurfaceHit{}, false
	}

	b0 := 1 - b1 - b2
	normal := e1.Cross(e2).Normalize()
	if tri.Smooth {
		normal = tri.N[0].Scale(b0).Add(tri.N[1].Scale(b1)).Add(tri.N[2].Scale(b2)).Normalize()
	}

	return SurfaceHit{
		T:      t,
		Point:  ray.At(t),
		Normal: normal,
		UV:     math3d.Lerp3(tri.UV[0], tri.UV[1], tri.UV[2], b0, b1, b2),
	}, true
}

// Bounds implements Bounded.
func (tri *Triangle) Bounds() AABB {
	return NewAABB(
		tri.V[0].Min(tri.V[1]).Min(tri.V[2]),
		tri.V[0].Max(tri.V[1]).Max(tri.V[2]),
	)
}
