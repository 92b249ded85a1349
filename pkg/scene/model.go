package scene

import (
	"fmt"
	"math"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/lighting"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/models"
	"github.com/taigrr/lumen/pkg/render"
)

// modelSize is the largest dimension a model is scaled to on import.
const modelSize = 2.0

// LoadModel loads a glTF/GLB file and places it in a lit scene on a floor,
// with the camera framing it.
func LoadModel(path string, opts Options) (*render.Scene, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("model %q: invalid size %dx%d", path, opts.Width, opts.Height)
	}

	mesh, err := models.LoadGLB(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if mesh.TriangleCount() == 0 {
		return nil, fmt.Errorf("load model %q: no triangles", path)
	}
	mesh.FitTo(math3d.V3(0, modelSize/2, 0), modelSize)

	s := FromMesh(mesh, opts)
	render.Logger().Info("model loaded",
		"path", path,
		"triangles", mesh.TriangleCount(),
		"vertices", mesh.VertexCount(),
		"materials", mesh.MaterialCount())
	return s, nil
}

// FromMesh builds a scene around an already placed mesh. The floor sits at
// the bottom of the mesh bounds.
func FromMesh(mesh *models.Mesh, opts Options) *render.Scene {
	opaque, transparent := MeshShapes(mesh)

	center := mesh.Center()
	size := mesh.Size()
	radius := 0.5 * size.Len()
	if radius == 0 {
		radius = 1
	}
	// Distance at which the bounding sphere fills the default field of view
	dist := radius / math.Sin(math.Pi/6) * 1.1
	eye := center.Add(math3d.V3(0, 0.35, 1).Normalize().Scale(dist))

	headlamp := lighting.NewPositionalLight(math3d.V3(-1, 1, 0), lighting.WhitePhong())
	headlamp.AttachedToCamera = true
	sun := lighting.NewDirectionalLight(math3d.V3(-0.5, -1, -0.3), lighting.Phong{
		Diffuse:  render.Gray(0.4),
		Specular: render.Gray(0.2),
	})

	opaque = append(opaque, floor(mesh.BoundsMin.Y, render.Chalk))

	return &render.Scene{
		Name:        mesh.Name,
		Camera:      newCamera(opts, eye, center),
		Opaque:      opaque,
		Transparent: transparent,
		Lights:      []render.Light{headlamp, sun},
	}
}

// MeshShapes converts a mesh into one BVH per material. Faces with a blended
// material become transparent shapes; textured materials shade from their
// base color texture.
func MeshShapes(mesh *models.Mesh) ([]render.OpaqueShape, []render.TransparentShape) {
	groups := make(map[int][]*geometry.Triangle)
	var order []int
	for i := range mesh.Faces {
		idx := mesh.GetFaceMaterial(i)
		if _, ok := groups[idx]; !ok {
			order = append(order, idx)
		}
		groups[idx] = append(groups[idx], meshTriangle(mesh, i))
	}

	var (
		opaque      []render.OpaqueShape
		transparent []render.TransparentShape
	)
	for _, idx := range order {
		bvh := geometry.NewTriangleMesh(groups[idx])
		mat := mesh.GetMaterial(idx)
		switch {
		case mat == nil:
			opaque = append(opaque, geometry.NewOpaque(bvh, render.Chalk))
		case mat.Blend:
			c := baseColor(mat)
			transparent = append(transparent, geometry.NewTransparent(bvh, c, mat.BaseColor[3]))
		case mat.HasTexture:
			opaque = append(opaque, geometry.NewTextured(bvh, render.TextureFromImage(mat.BaseMap)))
		default:
			opaque = append(opaque, geometry.NewOpaque(bvh, PhongMaterial(mat)))
		}
	}
	return opaque, transparent
}

// PhongMaterial approximates a metallic-roughness material with Phong terms.
// Metals tint their highlight with the base color; rough surfaces get a
// wide, dim highlight.
func PhongMaterial(m *models.Material) render.Material {
	base := baseColor(m)
	gloss := 1 - math.Max(0, math.Min(1, m.Roughness))
	metal := math.Max(0, math.Min(1, m.Metallic))

	specular := render.Gray(0.04).Scale(1 - metal).Add(base.Scale(metal)).Scale(gloss)
	diffuse := base.Scale(1 - 0.8*metal)
	return render.Material{
		Ambient:   base.Scale(0.2),
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: 2 + 126*gloss*gloss,
	}
}

func baseColor(m *models.Material) render.Color {
	return render.RGB(m.BaseColor[0], m.BaseColor[1], m.BaseColor[2])
}

func meshTriangle(mesh *models.Mesh, face int) *geometry.Triangle {
	fv := mesh.FaceVertices(face)
	tri := geometry.NewTriangle(fv[0].Position, fv[1].Position, fv[2].Position)
	smooth := true
	for i, v := range fv {
		tri.N[i] = v.Normal
		tri.UV[i] = v.UV
		if v.Normal.LenSq() < 1e-12 {
			smooth = false
		}
	}
	tri.Smooth = smooth
	return tri
}
