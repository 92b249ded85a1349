package lighting

import (
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

// PositionalLight is a point light. When AttachedToCamera is set, Position
// is given in the camera frame (U, V, W axes around the eye) and the light
// moves with the camera.
type PositionalLight struct {
	Phong
	Position         math3d.Vec3
	Attenuation      Attenuation
	AttachedToCamera bool
}

// NewPositionalLight creates a point light without falloff.
func NewPositionalLight(pos math3d.Vec3, colors Phong) *PositionalLight {
	return &PositionalLight{Phong: colors, Position: pos, Attenuation: NoAttenuation}
}

// WorldPosition resolves the light's position for a camera frame.
func (l *PositionalLight) WorldPosition(frame render.Frame) math3d.Vec3 {
	if !l.AttachedToCamera {
		return l.Position
	}
	return frame.Origin.
		Add(frame.U.Scale(l.Position.X)).
		Add(frame.V.Scale(l.Position.Y)).
		Add(frame.W.Scale(l.Position.Z))
}

// Illuminate implements render.Light.
func (l *PositionalLight) Illuminate(point, normal math3d.Vec3, mat render.Material, frame render.Frame, inShadow bool) render.Color {
	pos := l.WorldPosition(frame)
	toLight := pos.Sub(point)
	d := toLight.Len()
	return shade(l.Phong, toLight.Normalize(), point, normal, mat, frame, inShadow, l.Attenuation.Factor(d))
}

// InShadow implements render.Light.
func (l *PositionalLight) InShadow(point, normal math3d.Vec3, occluders []render.OpaqueShape, frame render.Frame) bool {
	pos := l.WorldPosition(frame)
	toLight := pos.Sub(point)
	return blocked(point, normal, toLight, toLight.Len(), occluders)
}

// DirectionalLight is a light infinitely far away shining along Direction.
type DirectionalLight struct {
	Phong
	Direction math3d.Vec3
}

// NewDirectionalLight creates a light shining along dir.
func NewDirectionalLight(dir math3d.Vec3, colors Phong) *DirectionalLight {
	return &DirectionalLight{Phong: colors, Direction: dir.Normalize()}
}

// Illuminate implements render.Light.
func (l *DirectionalLight) Illuminate(point, normal math3d.Vec3, mat render.Material, frame render.Frame, inShadow bool) render.Color {
	return shade(l.Phong, l.Direction.Negate().Normalize(), point, normal, mat, frame, inShadow, 1)
}

// InShadow implements render.Light. Any opaque hit toward the light blocks it.
func (l *DirectionalLight) InShadow(point, normal math3d.Vec3, occluders []render.OpaqueShape, frame render.Frame) bool {
	return blocked(point, normal, l.Direction.Negate(), math.Inf(1), occluders)
}
