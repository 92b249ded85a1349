package models

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func encodeTestPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 1, color.RGBA{0, 0, 255, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

// withBaseColorImage attaches img as the base color texture of material 0.
func withBaseColorImage(doc *gltf.Document, img *gltf.Image) *gltf.Document {
	doc.Images = []*gltf.Image{img}
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(0)}}
	doc.Materials[0].PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: 0}
	return doc
}

func TestReadMaterialFactors(t *testing.T) {
	metallic, roughness := 0.2, 0.7

	tests := []struct {
		name      string
		mat       *gltf.Material
		wantColor [4]float64
		wantMetal float64
		wantRough float64
		wantBlend bool
	}{
		{
			name:      "no pbr block",
			mat:       &gltf.Material{Name: "bare"},
			wantColor: [4]float64{1, 1, 1, 1},
			wantMetal: 1,
			wantRough: 1,
		},
		{
			name:      "empty pbr block",
			mat:       &gltf.Material{PBRMetallicRoughness: &gltf.PBRMetallicRoughness{}},
			wantColor: [4]float64{1, 1, 1, 1},
			wantMetal: 1,
			wantRough: 1,
		},
		{
			name: "explicit factors",
			mat: &gltf.Material{PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
				BaseColorFactor: &[4]float64{0.5, 0.25, 0, 1},
				MetallicFactor:  &metallic,
				RoughnessFactor: &roughness,
			}},
			wantColor: [4]float64{0.5, 0.25, 0, 1},
			wantMetal: 0.2,
			wantRough: 0.7,
		},
		{
			name:      "blend mode",
			mat:       &gltf.Material{AlphaMode: gltf.AlphaBlend},
			wantColor: [4]float64{1, 1, 1, 1},
			wantMetal: 1,
			wantRough: 1,
			wantBlend: true,
		},
		{
			name:      "mask mode is not blended",
			mat:       &gltf.Material{AlphaMode: gltf.AlphaMask},
			wantColor: [4]float64{1, 1, 1, 1},
			wantMetal: 1,
			wantRough: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := readMaterial(tt.mat)
			if m.BaseColor != tt.wantColor {
				t.Errorf("BaseColor = %v, want %v", m.BaseColor, tt.wantColor)
			}
			if m.Metallic != tt.wantMetal || m.Roughness != tt.wantRough {
				t.Errorf("metallic/roughness = %f/%f, want %f/%f",
					m.Metallic, m.Roughness, tt.wantMetal, tt.wantRough)
			}
			if m.Blend != tt.wantBlend {
				t.Errorf("Blend = %v, want %v", m.Blend, tt.wantBlend)
			}
			if m.HasTexture || m.BaseMap != nil {
				t.Error("readMaterial should never attach a texture")
			}
		})
	}
}

func TestDecodeEmbeddedBaseMap(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodeTestPNG(t))
	doc := withBaseColorImage(triangleDocument(), &gltf.Image{URI: uri, MimeType: "image/png"})

	mesh, err := NewGLTFLoader().Decode(doc, "textured", "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	mat := mesh.GetMaterial(0)
	if !mat.HasTexture || mat.BaseMap == nil {
		t.Fatal("embedded base color image should set HasTexture and BaseMap")
	}
	if b := mat.BaseMap.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("BaseMap bounds = %v, want 2x2", b)
	}
	r, g, b, _ := mat.BaseMap.At(0, 0).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("BaseMap(0,0) = %d,%d,%d, want red", r>>8, g>>8, b>>8)
	}
}

func TestDecodeExternalBaseMap(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "base.png"), encodeTestPNG(t), 0o644); err != nil {
		t.Fatal(err)
	}
	doc := withBaseColorImage(triangleDocument(), &gltf.Image{URI: "base.png"})

	mesh, err := NewGLTFLoader().Decode(doc, "external", dir)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !mesh.GetMaterial(0).HasTexture {
		t.Error("external image next to the document should be loaded")
	}

	if _, err := NewGLTFLoader().Decode(withBaseColorImage(triangleDocument(), &gltf.Image{URI: "base.png"}), "external", t.TempDir()); err == nil {
		t.Error("expected error when the external image is missing")
	}
}

func TestDecodeSkipsTexturesWhenDisabled(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encodeTestPNG(t))
	doc := withBaseColorImage(triangleDocument(), &gltf.Image{URI: uri})

	loader := NewGLTFLoader()
	loader.LoadTextures = false
	mesh, err := loader.Decode(doc, "plain", "")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	mat := mesh.GetMaterial(0)
	if mat.HasTexture || mat.BaseMap != nil {
		t.Error("textures disabled should leave BaseMap unset")
	}
	// Factors still come through
	if mat.BaseColor != [4]float64{1, 0, 0, 1} {
		t.Errorf("BaseColor = %v, want red", mat.BaseColor)
	}
}

func TestGetMaterialRange(t *testing.T) {
	mesh := NewMesh("range")
	mesh.Materials = []Material{{Name: "only"}}

	for _, i := range []int{-1, 1, 99} {
		if m := mesh.GetMaterial(i); m != nil {
			t.Errorf("GetMaterial(%d) = %+v, want nil", i, m)
		}
	}
	if m := mesh.GetMaterial(0); m == nil || m.Name != "only" {
		t.Errorf("GetMaterial(0) = %+v", m)
	}
}
