package geometry

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Plane is an infinite plane through Point with the given Normal. Texture
// coordinates repeat every Tile world units.
type Plane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
	Tile   float64

	tangent, bitangent math3d.Vec3
}

// NewPlane creates a plane with a one-unit texture tile.
func NewPlane(point, normal math3d.Vec3) *Plane {
	n := normal.Normalize()
	ref := math3d.V3(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		ref = math3d.V3(0, 0, 1)
	}
	t := ref.Sub(n.Scale(ref.Dot(n))).Normalize()
	return &Plane{
		Point:     point,
		Normal:    n,
		Tile:      1,
		tangent:   t,
		bitangent: n.Cross(t),
	}
}

// Hit implements Primitive.
func (p *Plane) Hit(ray math3d.Ray, tMin, tMax float64) (SurfaceHit, bool) {
	denom := p.Normal.Dot(ray.Direction)
	if math.Abs(denom) < 1e-12 {
		return SurfaceHit{}, false
	}
	t := p.Point.Sub(ray.Origin).Dot(p.Normal) / denom
	if t <= tMin || t >= tMax {
		return SurfaceHit{}, false
	}

	hit := ray.At(t)
	local := hit.Sub(p.Point)
	tile := p.Tile
	if tile <= 0 {
		tile = 1
	}
	uv := math3d.V2(local.Dot(p.tangent)/tile, local.Dot(p.bitangent)/tile)
	return SurfaceHit{T: t, Point: hit, Normal: p.Normal, UV: uv}, true
}
