package math3d

// Ray is a half-line starting at Origin and heading along Direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// NewRay builds a ray with a normalized direction.
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
