package geometry

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Sphere is a sphere with spherical (longitude/latitude) texture coordinates.
type Sphere struct {
	Center math3d.Vec3
	Radius float64
}

// NewSphere creates a sphere.
func NewSphere(center math3d.Vec3, radius float64) *Sphere {
	return &Sphere{Center: center, Radius: radius}
}

// Hit implements Primitive.
func (s *Sphere) Hit(ray math3d.Ray, tMin, tMax float64) (SurfaceHit, bool) {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Direction.LenSq()
	halfB := oc.Dot(ray.Direction)
	c := oc.LenSq() - s.Radius*s.Radius

	disc := halfB*halfB - a*c
	if disc < 0 {
		return SurfaceHit{}, false
	}
	sq := math.Sqrt(disc)

	t := (-halfB - sq) / a
	if t <= tMin || t >= tMax {
		t = (-halfB + sq) / a
		if t <= tMin || t >= tMax {
			return SurfaceHit{}, false
		}
	}

	p := ray.At(t)
	n := p.Sub(s.Center).Scale(1 / s.Radius)
	return SurfaceHit{T: t, Point: p, Normal: n, UV: sphereUV(n)}, true
}

// Bounds implements Bounded.
func (s *Sphere) Bounds() AABB {
	r := math3d.V3(s.Radius, s.Radius, s.Radius)
	return NewAABB(s.Center.Sub(r), s.Center.Add(r))
}

// sphereUV maps a unit normal to (u, v) with v = 0 at the south pole.
func sphereUV(n math3d.Vec3) math3d.Vec2 {
	u := (math.Atan2(-n.Z, n.X) + math.Pi) / (2 * math.Pi)
	v := math.Acos(math.Max(-1, math.Min(1, -n.Y))) / math.Pi
	return math3d.V2(u, v)
}
