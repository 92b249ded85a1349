package geometry

import (
	"slices"

	"github.com/taigrr/lumen/pkg/math3d"
)

// leafSize is the most primitives kept in one BVH leaf.
const leafSize = 8

// Mesh is a group of bounded primitives, usually triangles, indexed by a
// bounding volume hierarchy. It is immutable once built.
type Mesh struct {
	root  *bvhNode
	count int
}

type bvhNode struct {
	box         AABB
	left, right *bvhNode
	items       []Bounded // set only on leaves
}

// NewMesh builds a mesh over prims. The slice is copied.
func NewMesh(prims []Bounded) *Mesh {
	m := &Mesh{count: len(prims)}
	if len(prims) > 0 {
		m.root = buildBVH(slices.Clone(prims))
	}
	return m
}

// NewTriangleMesh builds a mesh from triangles.
func NewTriangleMesh(tris []*Triangle) *Mesh {
	prims := make([]Bounded, len(tris))
	for i, t := range tris {
		prims[i] = t
	}
	return NewMesh(prims)
}

// Len returns the number of primitives in the mesh.
func (m *Mesh) Len() int {
	return m.count
}

// Bounds implements Bounded.
func (m *Mesh) Bounds() AABB {
	if m.root == nil {
		return EmptyAABB()
	}
	return m.root.box
}

// Hit implements Primitive.
func (m *Mesh) Hit(ray math3d.Ray, tMin, tMax float64) (SurfaceHit, bool) {
	if m.root == nil {
		return SurfaceHit{}, false
	}
	return m.root.hit(ray, tMin, tMax)
}

func buildBVH(prims []Bounded) *bvhNode {
	box := EmptyAABB()
	for _, p := range prims {
		box = box.Union(p.Bounds())
	}
	if len(prims) <= leafSize {
		return &bvhNode{box: box, items: prims}
	}

	// Median split along the longest axis.
	axis := box.LongestAxis()
	slices.SortFunc(prims, func(a, b Bounded) int {
		ca, cb := a.Bounds().Center().Axis(axis), b.Bounds().Center().Axis(axis)
		switch {
		case ca < cb:
			return -1
		case ca > cb:
			return 1
		default:
			return 0
		}
	})
	mid := len(prims) / 2
	return &bvhNode{
		box:   box,
		left:  buildBVH(prims[:mid]),
		right: buildBVH(prims[mid:]),
	}
}

func (n *bvhNode) hit(ray math3d.Ray, tMin, tMax float64) (SurfaceHit, bool) {
	if !n.box.Hit(ray, tMin, tMax) {
		return SurfaceHit{}, false
	}

	var best SurfaceHit
	found := false
	closest := tMax

	if n.items != nil {
		for _, p := range n.items {
			if h, ok := p.Hit(ray, tMin, closest); ok {
				best, found, closest = h, true, h.T
			}
		}
		return best, found
	}

	for _, child := range [2]*bvhNode{n.left, n.right} {
		if h, ok := child.hit(ray, tMin, closest); ok {
			best, found, closest = h, true, h.T
		}
	}
	return best, found
}
