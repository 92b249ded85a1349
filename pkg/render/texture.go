package render

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// WrapMode determines how texture coordinates outside [0,1] are handled.
type WrapMode int

const (
	WrapRepeat WrapMode = iota // Tile the texture
	WrapClamp                  // Clamp to edge
)

// FilterMode determines how texture sampling is performed.
type FilterMode int

const (
	FilterNearest  FilterMode = iota // Nearest-neighbor (pixelated)
	FilterBilinear                   // Bilinear interpolation (smooth)
)

// ImageTexture is a bitmap texture stored as linear colors.
type ImageTexture struct {
	Width      int
	Height     int
	Pixels     []Color // Row-major, row 0 at the top of the image
	WrapU      WrapMode
	WrapV      WrapMode
	FilterMode FilterMode
}

// NewImageTexture creates a black texture with the given dimensions.
func NewImageTexture(width, height int) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: make([]Color, width*height),
	}
}

// LoadTexture loads a texture from an image file. PNG, JPEG, GIF, BMP, TIFF
// and WebP are supported; EXIF orientation is applied.
func LoadTexture(path string) (*ImageTexture, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("load texture %s: %w", path, err)
	}
	return TextureFromImage(img), nil
}

// TextureFromImage creates a texture from an image.Image.
func TextureFromImage(img image.Image) *ImageTexture {
	bounds := img.Bounds()
	tex := NewImageTexture(bounds.Dx(), bounds.Dy())

	for y := range tex.Height {
		for x := range tex.Width {
			tex.Pixels[y*tex.Width+x] = FromRGBA(img.At(bounds.Min.X+x, bounds.Min.Y+y))
		}
	}
	return tex
}

// texel returns the pixel at (x, y), or black outside the image.
func (t *ImageTexture) texel(x, y int) Color {
	if x < 0 || x >= t.Width || y < 0 || y >= t.Height {
		return Black
	}
	return t.Pixels[y*t.Width+x]
}

// SampleUV samples the texture. V=0 is the bottom edge of the image.
func (t *ImageTexture) SampleUV(u, v float64) Color {
	if t.Width == 0 || t.Height == 0 {
		return Black
	}
	u = wrapCoord(u, t.WrapU)
	v = 1 - wrapCoord(v, t.WrapV)

	if t.FilterMode == FilterBilinear {
		return t.sampleBilinear(u, v)
	}
	return t.sampleNearest(u, v)
}

func wrapCoord(coord float64, mode WrapMode) float64 {
	if mode == WrapClamp {
		return math.Max(0, math.Min(1, coord))
	}
	return coord - math.Floor(coord)
}

func (t *ImageTexture) sampleNearest(u, v float64) Color {
	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)
	return t.texel(x, y)
}

func (t *ImageTexture) sampleBilinear(u, v float64) Color {
	fx := u*float64(t.Width) - 0.5
	fy := v*float64(t.Height) - 0.5

	x0 := int(math.Floor(fx))
	y0 := int(math.Floor(fy))
	tx := fx - float64(x0)
	ty := fy - float64(y0)

	x1 := wrapPixel(x0+1, t.Width, t.WrapU)
	y1 := wrapPixel(y0+1, t.Height, t.WrapV)
	x0 = wrapPixel(x0, t.Width, t.WrapU)
	y0 = wrapPixel(y0, t.Height, t.WrapV)

	top := lerp(t.texel(x0, y0), t.texel(x1, y0), tx)
	bot := lerp(t.texel(x0, y1), t.texel(x1, y1), tx)
	return lerp(top, bot, ty)
}

func wrapPixel(x, size int, mode WrapMode) int {
	if mode == WrapClamp {
		return max(0, min(x, size-1))
	}
	x %= size
	if x < 0 {
		x += size
	}
	return x
}

func lerp(a, b Color, t float64) Color {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// CheckerTexture is a procedural checkerboard with Squares squares along
// each unit of u and v.
type CheckerTexture struct {
	Even, Odd Color
	Squares   float64
}

// NewCheckerTexture creates a checkerboard texture.
func NewCheckerTexture(squares float64, even, odd Color) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd, Squares: squares}
}

// SampleUV returns Even or Odd depending on which square (u, v) falls in.
func (c *CheckerTexture) SampleUV(u, v float64) Color {
	iu := int(math.Floor(u * c.Squares))
	iv := int(math.Floor(v * c.Squares))
	if (iu+iv)%2 == 0 {
		return c.Even
	}
	return c.Odd
}
