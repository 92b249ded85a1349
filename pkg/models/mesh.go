// Package models provides triangle mesh models and the glTF loader for lumen.
package models

import (
	"image"
	"math"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Mesh is an indexed triangle mesh as loaded from a model file.
type Mesh struct {
	Name      string
	Vertices  []MeshVertex
	Faces     []Face
	Materials []Material

	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// Face is a counter-clockwise triangle with a material reference.
type Face struct {
	V        [3]int // Indices into Mesh.Vertices
	Material int    // Index into Mesh.Materials (-1 for no material)
}

// Material is the subset of a glTF PBR material the ray tracer uses.
type Material struct {
	Name       string
	BaseColor  [4]float64 // RGBA in 0-1 range
	Metallic   float64
	Roughness  float64
	BaseMap    image.Image // Optional base color texture
	HasTexture bool
	Blend      bool // Alpha mode BLEND; BaseColor[3] is the coverage
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}
	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position
	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// HasNormals reports whether any vertex carries a usable normal.
func (m *Mesh) HasNormals() bool {
	for _, v := range m.Vertices {
		if v.Normal.LenSq() > 1e-6 {
			return true
		}
	}
	return false
}

// CalculateSmoothNormals sets each vertex normal to the area-weighted average
// of the face normals around it.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Zero3()
	}
	for _, f := range m.Faces {
		v0 := m.Vertices[f.V[0]].Position
		v1 := m.Vertices[f.V[1]].Position
		v2 := m.Vertices[f.V[2]].Position
		n := v1.Sub(v0).Cross(v2.Sub(v0)) // Don't normalize yet

		for _, idx := range f.V {
			m.Vertices[idx].Normal = m.Vertices[idx].Normal.Add(n)
		}
	}
	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// Transform applies mat to all positions and its normal matrix to all
// normals.
func (m *Mesh) Transform(mat math3d.Mat4) {
	nm := mat.NormalMatrix()
	for i := range m.Vertices {
		m.Vertices[i].Position = mat.MulVec3(m.Vertices[i].Position)
		m.Vertices[i].Normal = nm.MulVec3Dir(m.Vertices[i].Normal).Normalize()
	}
	m.CalculateBounds()
}

// FitTo centers the mesh on target and scales it so its largest dimension
// equals size.
func (m *Mesh) FitTo(target math3d.Vec3, size float64) {
	m.CalculateBounds()
	s := m.Size()
	maxDim := math.Max(s.X, math.Max(s.Y, s.Z))
	if maxDim == 0 {
		return
	}
	scale := size / maxDim
	m.Transform(math3d.Translate(target).
		Mul(math3d.ScaleUniform(scale)).
		Mul(math3d.Translate(m.Center().Negate())))
}

// GetMaterial returns the material at index i, or nil if i is out of range.
func (m *Mesh) GetMaterial(i int) *Material {
	if i < 0 || i >= len(m.Materials) {
		return nil
	}
	return &m.Materials[i]
}

// GetFaceMaterial returns the material index of face i, or -1 if out of range.
func (m *Mesh) GetFaceMaterial(i int) int {
	if i < 0 || i >= len(m.Faces) {
		return -1
	}
	return m.Faces[i].Material
}

// MaterialCount returns the number of materials.
func (m *Mesh) MaterialCount() int {
	return len(m.Materials)
}

// FaceVertices returns the three vertices of face i.
func (m *Mesh) FaceVertices(i int) [3]MeshVertex {
	f := m.Faces[i]
	return [3]MeshVertex{m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]}
}
