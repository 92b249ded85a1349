package geometry

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Bounded is a primitive with a finite axis-aligned bounding box.
type Bounded interface {
	Primitive
	Bounds() AABB
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math3d.Vec3
	Max math3d.Vec3
}

// NewAABB creates an AABB from min and max points.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns a box that contains nothing; its union with any box is
// that box.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: math3d.V3(inf, inf, inf),
		Max: math3d.V3(-inf, -inf, -inf),
	}
}

// Center returns the center of the AABB.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the dimensions of the AABB.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Union returns the smallest box containing both boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// LongestAxis returns 0, 1 or 2 for the X, Y or Z extent.
func (b AABB) LongestAxis() int {
	s := b.Size()
	switch {
	case s.X >= s.Y && s.X >= s.Z:
		return 0
	case s.Y >= s.Z:
		return 1
	default:
		return 2
	}
}

// Hit reports whether the ray passes through the box within (tMin, tMax),
// using the slab method.
func (b AABB) Hit(ray math3d.Ray, tMin, tMax float64) bool {
	for axis := range 3 {
		lo, hi := b.Min.Axis(axis), b.Max.Axis(axis)
		origin, dir := ray.Origin.Axis(axis), ray.Direction.Axis(axis)

		if math.Abs(dir) < 1e-12 {
			if origin < lo || origin > hi {
				return false
			}
			continue
		}

		inv := 1 / dir
		t0 := (lo - origin) * inv
		t1 := (hi - origin) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tMin = math.Max(tMin, t0)
		tMax = math.Min(tMax, t1)
		if tMax < tMin {
			return false
		}
	}
	return true
}
