// Package geometry provides ray-intersectable primitives and adapts them to
// the opaque and transparent shape contracts of package render.
package geometry

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

// Epsilon is the smallest ray parameter accepted as a hit, so rays leaving a
// surface do not re-hit it.
const Epsilon = 1e-6

// SurfaceHit is a primitive-level intersection.
type SurfaceHit struct {
	T      float64
	Point  math3d.Vec3
	Normal math3d.Vec3 // unit length, facing outward
	UV     math3d.Vec2
}

// Primitive is a surface a ray can intersect.
type Primitive interface {
	// Hit returns the nearest intersection with tMin < t < tMax.
	Hit(ray math3d.Ray, tMin, tMax float64) (SurfaceHit, bool)
}

// Opaque adapts a primitive into a render.OpaqueShape.
type Opaque struct {
	Primitive
	Material render.Material
	Texture  render.Texture // optional; overrides lighting when set
}

// NewOpaque creates an untextured opaque shape.
func NewOpaque(p Primitive, m render.Material) *Opaque {
	return &Opaque{Primitive: p, Material: m}
}

// NewTextured creates an opaque shape whose color comes from tex.
func NewTextured(p Primitive, tex render.Texture) *Opaque {
	return &Opaque{Primitive: p, Texture: tex}
}

// IntersectOpaque implements render.OpaqueShape.
func (o *Opaque) IntersectOpaque(ray math3d.Ray) render.OpaqueHit {
	h, ok := o.Hit(ray, Epsilon, math.Inf(1))
	if !ok {
		return render.MissOpaque()
	}
	return render.OpaqueHit{
		T:        h.T,
		Point:    h.Point,
		Normal:   h.Normal,
		Material: o.Material,
		Texture:  o.Texture,
		U:        h.UV.X,
		V:        h.UV.Y,
	}
}

// Transparent adapts a primitive into a render.TransparentShape with a flat
// color and opacity.
type Transparent struct {
	Primitive
	Color render.Color
	Alpha float64
}

// NewTransparent creates a transparent shape. alpha is clamped to [0, 1].
func NewTransparent(p Primitive, c render.Color, alpha float64) *Transparent {
	return &Transparent{Primitive: p, Color: c, Alpha: math.Max(0, math.Min(1, alpha))}
}

// IntersectTransparent implements render.TransparentShape.
func (t *Transparent) IntersectTransparent(ray math3d.Ray) render.TransparentHit {
	h, ok := t.Hit(ray, Epsilon, math.Inf(1))
	if !ok {
		return render.MissTransparent()
	}
	return render.TransparentHit{T: h.T, Color: t.Color, Alpha: t.Alpha}
}
