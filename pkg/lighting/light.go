// Package lighting implements Phong light sources for package render.
package lighting

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

// shadowBias lifts shadow ray origins off the surface they start on.
const shadowBias = 1e-4

// Phong holds the color of each term a light contributes.
type Phong struct {
	Ambient  render.Color
	Diffuse  render.Color
	Specular render.Color
}

// WhitePhong is a white light with a dim ambient term.
func WhitePhong() Phong {
	return Phong{
		Ambient:  render.Gray(0.15),
		Diffuse:  render.White,
		Specular: render.White,
	}
}

// Attenuation is the distance falloff 1 / (Constant + Linear*d + Quadratic*d²).
type Attenuation struct {
	Constant  float64
	Linear    float64
	Quadratic float64
}

// NoAttenuation keeps full intensity at every distance.
var NoAttenuation = Attenuation{Constant: 1}

// Factor returns the falloff multiplier at distance d.
func (a Attenuation) Factor(d float64) float64 {
	denom := a.Constant + a.Linear*d + a.Quadratic*d*d
	if denom <= 0 {
		return 1
	}
	return math.Min(1, 1/denom)
}

// shade evaluates the Phong model for a unit vector toLight pointing from
// point to the light. Ambient is never attenuated or shadowed.
func shade(l Phong, toLight, point, normal math3d.Vec3, mat render.Material, frame render.Frame, inShadow bool, falloff float64) render.Color {
	ambient := mat.Ambient.Mul(l.Ambient)
	if inShadow {
		return ambient
	}

	nDotL := normal.Dot(toLight)
	if nDotL <= 0 {
		return ambient
	}
	diffuse := mat.Diffuse.Mul(l.Diffuse).Scale(nDotL)

	view := frame.Origin.Sub(point).Normalize()
	reflected := toLight.Negate().Reflect(normal)
	var specular render.Color
	if rDotV := reflected.Dot(view); rDotV > 0 {
		specular = mat.Specular.Mul(l.Specular).Scale(math.Pow(rDotV, mat.Shininess))
	}

	return ambient.Add(diffuse.Add(specular).Scale(falloff))
}

// blocked reports whether any occluder is hit by a ray leaving point toward
// dir before distance limit.
func blocked(point, normal, dir math3d.Vec3, limit float64, occluders []render.OpaqueShape) bool {
	origin := point.Add(normal.Scale(shadowBias))
	hit := render.NearestOpaque(math3d.NewRay(origin, dir), occluders)
	return hit.Valid() && hit.T < limit
}
