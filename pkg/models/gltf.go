package models

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/lumen/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Options
	CalculateNormals bool
	LoadTextures     bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
		LoadTextures:     true,
	}
}

// LoadGLB loads a binary GLTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	loader := NewGLTFLoader()
	return loader.Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	return l.Decode(doc, filepath.Base(path), filepath.Dir(path))
}

// Decode converts an already parsed document. dir is used to resolve
// external image URIs.
func (l *GLTFLoader) Decode(doc *gltf.Document, name, dir string) (*Mesh, error) {
	mesh := NewMesh(name)

	for i, gm := range doc.Materials {
		mat := readMaterial(gm)
		if l.LoadTextures {
			if img, err := baseColorImage(doc, gm, dir); err != nil {
				return nil, fmt.Errorf("material %d texture: %w", i, err)
			} else if img != nil {
				mat.BaseMap = img
				mat.HasTexture = true
			}
		}
		mesh.Materials = append(mesh.Materials, mat)
	}

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	if l.CalculateNormals && !mesh.HasNormals() {
		mesh.CalculateSmoothNormals()
	}

	mesh.CalculateBounds()

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var uvs [][2]float32
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		material := -1
		if prim.Material != nil && *prim.Material < len(mesh.Materials) {
			material = *prim.Material
		}

		baseVertex := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{
				Position: math3d.V3(float64(p[0]), float64(p[1]), float64(p[2])),
			}
			if i < len(normals) {
				n := normals[i]
				v.Normal = math3d.V3(float64(n[0]), float64(n[1]), float64(n[2]))
			}
			if i < len(uvs) {
				// GLTF puts V=0 at the top of the image; textures sample with V=0 at the bottom
				v.UV = math3d.V2(float64(uvs[i][0]), 1.0-float64(uvs[i][1]))
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions))
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			face := Face{
				V: [3]int{
					baseVertex + int(indices[i]),
					baseVertex + int(indices[i+1]),
					baseVertex + int(indices[i+2]),
				},
				Material: material,
			}
			if !validFace(face, len(mesh.Vertices)) {
				return fmt.Errorf("face %d references missing vertex", i/3)
			}
			mesh.Faces = append(mesh.Faces, face)
		}
	}

	return nil
}

func validFace(f Face, n int) bool {
	for _, idx := range f.V {
		if idx < 0 || idx >= n {
			return false
		}
	}
	return true
}

// readMaterial maps the PBR metallic-roughness factors, applying the glTF
// defaults for absent values.
func readMaterial(gm *gltf.Material) Material {
	mat := Material{
		Name:      gm.Name,
		BaseColor: [4]float64{1, 1, 1, 1},
		Metallic:  1,
		Roughness: 1,
		Blend:     gm.AlphaMode == gltf.AlphaBlend,
	}
	pbr := gm.PBRMetallicRoughness
	if pbr == nil {
		return mat
	}
	if pbr.BaseColorFactor != nil {
		mat.BaseColor = *pbr.BaseColorFactor
	}
	if pbr.MetallicFactor != nil {
		mat.Metallic = *pbr.MetallicFactor
	}
	if pbr.RoughnessFactor != nil {
		mat.Roughness = *pbr.RoughnessFactor
	}
	return mat
}

// baseColorImage decodes the base color texture of gm, if it has one.
// Returns nil without error when the material is untextured.
func baseColorImage(doc *gltf.Document, gm *gltf.Material, dir string) (image.Image, error) {
	pbr := gm.PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorTexture == nil {
		return nil, nil
	}
	texIdx := pbr.BaseColorTexture.Index
	if texIdx < 0 || texIdx >= len(doc.Textures) {
		return nil, fmt.Errorf("texture %d out of range", texIdx)
	}
	src := doc.Textures[texIdx].Source
	if src == nil || *src >= len(doc.Images) {
		return nil, nil
	}

	data, err := imageData(doc, doc.Images[*src], dir)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %d: %w", *src, err)
	}
	return img, nil
}

// imageData returns the encoded bytes of img from a buffer view, a data URI
// or a file next to the document.
func imageData(doc *gltf.Document, img *gltf.Image, dir string) ([]byte, error) {
	switch {
	case img.BufferView != nil:
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer]
		if buf.Data == nil {
			return nil, fmt.Errorf("buffer %d has no data", bv.Buffer)
		}
		start := bv.ByteOffset
		return buf.Data[start : start+bv.ByteLength], nil
	case img.IsEmbeddedResource():
		return img.MarshalData()
	case img.URI != "":
		return os.ReadFile(filepath.Join(dir, img.URI))
	}
	return nil, fmt.Errorf("image %q has no source", img.Name)
}
