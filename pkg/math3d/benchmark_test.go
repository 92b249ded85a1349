package math3d

import (
	"math"
	"testing"
)

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	if got := a.Dot(b); got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
	if got := a.Cross(b); got != V3(-3, 6, -3) {
		t.Errorf("Cross = %v, want (-3, 6, -3)", got)
	}
	if got := V3(3, 4, 0).Len(); got != 5 {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}
	if got := V3(0, 0, 7).Normalize(); got != V3(0, 0, 1) {
		t.Errorf("Normalize = %v, want (0, 0, 1)", got)
	}
}

func TestReflect(t *testing.T) {
	got := V3(1, -1, 0).Reflect(V3(0, 1, 0))
	if !got.ApproxEqual(V3(1, 1, 0), 1e-12) {
		t.Errorf("Reflect = %v, want (1, 1, 0)", got)
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(V3(1, 0, 0), V3(0, 0, -10))
	if r.Direction != V3(0, 0, -1) {
		t.Fatalf("NewRay should normalize direction, got %v", r.Direction)
	}
	if got := r.At(2.5); got != V3(1, 0, -2.5) {
		t.Errorf("At(2.5) = %v", got)
	}
}

func TestMat4Inverse(t *testing.T) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 2, 2)))
	p := V3(0.3, -1.2, 4)

	back := m.Inverse().MulVec3(m.MulVec3(p))
	if !back.ApproxEqual(p, 1e-9) {
		t.Errorf("inverse round trip = %v, want %v", back, p)
	}
}

func TestNormalMatrixNonUniformScale(t *testing.T) {
	// A plane tilted 45 degrees; squashing Y must tilt the normal toward Y.
	m := Scale(V3(1, 0.5, 1))
	tangent := V3(1, -1, 0)
	normal := V3(1, 1, 0).Normalize()

	tangentOut := m.MulVec3Dir(tangent)
	normalOut := m.NormalMatrix().MulVec3Dir(normal).Normalize()

	if d := tangentOut.Dot(normalOut); math.Abs(d) > 1e-9 {
		t.Errorf("transformed normal not perpendicular to surface, dot = %v", d)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4MulVec3(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.MulVec3(v)
	}
}

func BenchmarkMat4Inverse(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateY(0.5)).Mul(Scale(V3(2, 2, 2)))

	for b.Loop() {
		_ = m.Inverse()
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}
