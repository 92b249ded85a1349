package lighting

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

// SpotLight is a positional light that only lights points within Cutoff
// radians of Direction. Points outside the cone get the ambient term only.
type SpotLight struct {
	PositionalLight
	Direction math3d.Vec3
	Cutoff    float64
}

// NewSpotLight creates a spot light at pos aimed along dir.
func NewSpotLight(pos, dir math3d.Vec3, cutoff float64, colors Phong) *SpotLight {
	return &SpotLight{
		PositionalLight: *NewPositionalLight(pos, colors),
		Direction:       dir.Normalize(),
		Cutoff:          cutoff,
	}
}

// InCone reports whether point lies inside the light's cone.
func (l *SpotLight) InCone(point math3d.Vec3, frame render.Frame) bool {
	dir := l.Direction
	if l.AttachedToCamera {
		dir = frame.U.Scale(dir.X).Add(frame.V.Scale(dir.Y)).Add(frame.W.Scale(dir.Z))
	}
	fromLight := point.Sub(l.WorldPosition(frame)).Normalize()
	return fromLight.Dot(dir.Normalize()) >= math.Cos(l.Cutoff)
}

// Illuminate implements render.Light.
func (l *SpotLight) Illuminate(point, normal math3d.Vec3, mat render.Material, frame render.Frame, inShadow bool) render.Color {
	return l.PositionalLight.Illuminate(point, normal, mat, frame, inShadow || !l.InCone(point, frame))
}
