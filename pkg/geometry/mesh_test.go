package geometry

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/taigrr/lumen/pkg/math3d"
)

func TestAABBHit(t *testing.T) {
	box := NewAABB(math3d.V3(-1, -1, -1), math3d.V3(1, 1, 1))

	tests := []struct {
		name string
		ray  math3d.Ray
		want bool
	}{
		{"through center", math3d.NewRay(math3d.V3(0, 0, 5), math3d.V3(0, 0, -1)), true},
		{"diagonal", math3d.NewRay(math3d.V3(5, 5, 5), math3d.V3(-1, -1, -1)), true},
		{"miss", math3d.NewRay(math3d.V3(2, 0, 5), math3d.V3(0, 0, -1)), false},
		{"parallel outside", math3d.NewRay(math3d.V3(0, 2, 0), math3d.V3(1, 0, 0)), false},
		{"pointing away", math3d.NewRay(math3d.V3(0, 0, 5), math3d.V3(0, 0, 1)), false},
		{"from inside", math3d.NewRay(math3d.Zero3(), math3d.V3(0, 1, 0)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Hit(tt.ray, Epsilon, math.Inf(1)); got != tt.want {
				t.Errorf("Hit = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAABBFlatBox(t *testing.T) {
	tri := NewTriangle(math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0))
	ray := math3d.NewRay(math3d.V3(0.2, 0.2, 3), math3d.V3(0, 0, -1))
	if !tri.Bounds().Hit(ray, Epsilon, math.Inf(1)) {
		t.Error("zero-thickness box should still be hit")
	}
}

func TestAABBUnionAndAxis(t *testing.T) {
	a := NewAABB(math3d.V3(0, 0, 0), math3d.V3(1, 1, 1))
	b := NewAABB(math3d.V3(-2, 0.5, 0), math3d.V3(0, 1, 4))
	u := a.Union(b)
	if u.Min != math3d.V3(-2, 0, 0) || u.Max != math3d.V3(1, 1, 4) {
		t.Errorf("Union = %+v", u)
	}
	if u.LongestAxis() != 2 {
		t.Errorf("LongestAxis = %d, want 2", u.LongestAxis())
	}
	if e := EmptyAABB().Union(a); e != a {
		t.Errorf("empty union = %+v, want %+v", e, a)
	}
}

// randomTriangles scatters small triangles in a cube.
func randomTriangles(n int, seed uint64) []*Triangle {
	rng := rand.New(rand.NewPCG(seed, seed))
	pt := func() math3d.Vec3 {
		return math3d.V3(rng.Float64()*8-4, rng.Float64()*8-4, rng.Float64()*8-4)
	}
	tris := make([]*Triangle, n)
	for i := range tris {
		a := pt()
		tris[i] = NewTriangle(a, a.Add(pt().Scale(0.1)), a.Add(pt().Scale(0.1)))
	}
	return tris
}

func TestMeshMatchesBruteForce(t *testing.T) {
	tris := randomTriangles(300, 7)
	mesh := NewTriangleMesh(tris)
	if mesh.Len() != 300 {
		t.Fatalf("Len = %d, want 300", mesh.Len())
	}

	rng := rand.New(rand.NewPCG(1, 2))
	hits := 0
	for range 2000 {
		origin := math3d.V3(rng.Float64()*10-5, rng.Float64()*10-5, 8)
		target := math3d.V3(rng.Float64()*8-4, rng.Float64()*8-4, rng.Float64()*8-4)
		ray := math3d.NewRay(origin, target.Sub(origin))

		want, wantOK := SurfaceHit{}, false
		closest := math.Inf(1)
		for _, tri := range tris {
			if h, ok := tri.Hit(ray, Epsilon, closest); ok {
				want, wantOK, closest = h, true, h.T
			}
		}

		got, ok := mesh.Hit(ray, Epsilon, math.Inf(1))
		if ok != wantOK {
			t.Fatalf("ray %v: hit = %v, brute force = %v", ray, ok, wantOK)
		}
		if ok {
			hits++
			if math.Abs(got.T-want.T) > 1e-9 {
				t.Fatalf("ray %v: T = %v, brute force = %v", ray, got.T, want.T)
			}
		}
	}
	if hits == 0 {
		t.Error("no rays hit the mesh; test is not exercising traversal")
	}
}

func TestEmptyMesh(t *testing.T) {
	m := NewMesh(nil)
	if _, ok := m.Hit(math3d.NewRay(math3d.Zero3(), math3d.V3(0, 0, -1)), Epsilon, math.Inf(1)); ok {
		t.Error("empty mesh should never be hit")
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func BenchmarkMeshHit(b *testing.B) {
	mesh := NewTriangleMesh(randomTriangles(5000, 3))
	ray := math3d.NewRay(math3d.V3(0, 0, 8), math3d.V3(0.01, 0.02, -1))
	for b.Loop() {
		mesh.Hit(ray, Epsilon, math.Inf(1))
	}
}
