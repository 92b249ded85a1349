package models

import (
	"math"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

// triangleDocument builds a one-triangle document with a red material.
func triangleDocument() *gltf.Document {
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {0, 1}})
	idx := modeler.WriteIndices(doc, []uint16{0, 1, 2})

	doc.Materials = []*gltf.Material{{
		Name: "red",
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &[4]float64{1, 0, 0, 1},
		},
	}}
	doc.Meshes = []*gltf.Mesh{{
		Name: "tri",
		Primitives: []*gltf.Primitive{{
			Indices:    gltf.Index(idx),
			Attributes: map[string]int{gltf.POSITION: pos, gltf.TEXCOORD_0: uv},
			Material:   gltf.Index(0),
		}},
	}}
	return doc
}

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Error("NewGLTFLoader returned nil")
		return
	}
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
	if !loader.LoadTextures {
		t.Error("LoadTextures should default to true")
	}
}

func TestDecodeTriangle(t *testing.T) {
	mesh, err := NewGLTFLoader().Decode(triangleDocument(), "tri.glb", "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if mesh.VertexCount() != 3 {
		t.Errorf("VertexCount = %d, want 3", mesh.VertexCount())
	}
	if mesh.TriangleCount() != 1 {
		t.Fatalf("TriangleCount = %d, want 1", mesh.TriangleCount())
	}
	if got := mesh.GetFaceMaterial(0); got != 0 {
		t.Errorf("face material = %d, want 0", got)
	}
	mat := mesh.GetMaterial(0)
	if mat == nil || mat.BaseColor != [4]float64{1, 0, 0, 1} {
		t.Errorf("material = %+v, want red base color", mat)
	}
	if mat != nil && mat.Metallic != 1 {
		t.Errorf("Metallic = %f, want glTF default 1", mat.Metallic)
	}

	// No normals in the file, so smooth normals are computed (+Z for CCW winding)
	for i, v := range mesh.Vertices {
		if math.Abs(v.Normal.Z-1) > 1e-9 {
			t.Errorf("vertex %d normal = %v, want +Z", i, v.Normal)
		}
	}

	// V is flipped
	if v := mesh.Vertices[2].UV; math.Abs(v.Y) > 1e-9 {
		t.Errorf("vertex 2 UV = %v, want V=0 after flip", v)
	}
	if v := mesh.Vertices[0].UV; math.Abs(v.Y-1) > 1e-9 {
		t.Errorf("vertex 0 UV = %v, want V=1 after flip", v)
	}

	if mesh.BoundsMax.X != 1 || mesh.BoundsMax.Y != 1 {
		t.Errorf("BoundsMax = %v, want (1,1,0)", mesh.BoundsMax)
	}
}

func TestDecodeBlendMaterial(t *testing.T) {
	doc := triangleDocument()
	doc.Materials[0].AlphaMode = gltf.AlphaBlend
	doc.Materials[0].PBRMetallicRoughness.BaseColorFactor = &[4]float64{0, 0, 1, 0.25}

	mesh, err := NewGLTFLoader().Decode(doc, "blend", "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	mat := mesh.GetMaterial(0)
	if !mat.Blend {
		t.Error("Blend should be set for AlphaBlend materials")
	}
	if mat.BaseColor[3] != 0.25 {
		t.Errorf("alpha = %f, want 0.25", mat.BaseColor[3])
	}
}

func TestDecodeMissingTextureIndex(t *testing.T) {
	doc := triangleDocument()
	doc.Materials[0].PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: 3}

	if _, err := NewGLTFLoader().Decode(doc, "bad", ""); err == nil {
		t.Error("expected error for out-of-range texture index")
	}

	loader := NewGLTFLoader()
	loader.LoadTextures = false
	if _, err := loader.Decode(doc, "bad", ""); err != nil {
		t.Errorf("textures disabled should ignore bad index, got %v", err)
	}
}
