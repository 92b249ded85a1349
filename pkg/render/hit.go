package render

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// NoHit is the ray parameter that marks a hit record as empty. Any other T is
// a valid intersection at that distance along the ray.
const NoHit = math.MaxFloat64

// OpaqueHit describes the nearest intersection of a ray with opaque geometry.
type OpaqueHit struct {
	T        float64
	Point    math3d.Vec3
	Normal   math3d.Vec3
	Material Material
	Texture  Texture // nil when the surface is untextured
	U, V     float64
}

// Valid reports whether the record holds an intersection.
func (h OpaqueHit) Valid() bool {
	return h.T != NoHit
}

// TransparentHit describes the nearest intersection of a ray with
// transparent geometry.
type TransparentHit struct {
	T     float64
	Color Color
	Alpha float64 // opacity in [0, 1]
}

// Valid reports whether the record holds an intersection.
func (h TransparentHit) Valid() bool {
	return h.T != NoHit
}

// MissOpaque returns an empty opaque hit record.
func MissOpaque() OpaqueHit {
	return OpaqueHit{T: NoHit}
}

// MissTransparent returns an empty transparent hit record.
func MissTransparent() TransparentHit {
	return TransparentHit{T: NoHit}
}

// NearestOpaque intersects ray with every shape and returns the closest hit,
// or an empty record if nothing was hit.
func NearestOpaque(ray math3d.Ray, shapes []OpaqueShape) OpaqueHit {
	nearest := MissOpaque()
	for _, s := range shapes {
		if h := s.IntersectOpaque(ray); h.T < nearest.T {
			nearest = h
		}
	}
	return nearest
}

// NearestTransparent intersects ray with every transparent shape and returns
// the closest hit, or an empty record if nothing was hit.
func NearestTransparent(ray math3d.Ray, shapes []TransparentShape) TransparentHit {
	nearest := MissTransparent()
	for _, s := range shapes {
		if h := s.IntersectTransparent(ray); h.T < nearest.T {
			nearest = h
		}
	}
	return nearest
}

// FacingNormal returns n, negated if it points away from a viewer looking
// along dir.
func FacingNormal(dir, n math3d.Vec3) math3d.Vec3 {
	if dir.Dot(n) > 0 {
		return n.Negate()
	}
	return n
}
