// Package render traces primary rays through a scene into a pixel surface
// and provides the camera, texture and framebuffer it draws with.
package render

import (
	"image"
	"image/png"
	"os"
)

// Presenter displays a finished framebuffer.
type Presenter interface {
	Present(fb *Framebuffer) error
}

// PresenterFunc adapts a function to the Presenter interface.
type PresenterFunc func(fb *Framebuffer) error

// Present calls f(fb).
func (f PresenterFunc) Present(fb *Framebuffer) error {
	return f(fb)
}

// Framebuffer is a row-major grid of linear colors. It implements Surface.
// Distinct pixels may be written from different goroutines.
type Framebuffer struct {
	width      int
	height     int
	pixels     []Color
	clearColor Color
	presenter  Presenter
}

// NewFramebuffer creates a framebuffer cleared to black.
func NewFramebuffer(width, height int) *Framebuffer {
	width, height = max(width, 0), max(height, 0)
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}
}

// Width returns the width in pixels.
func (fb *Framebuffer) Width() int { return fb.width }

// Height returns the height in pixels.
func (fb *Framebuffer) Height() int { return fb.height }

// SetClearColor sets the background color used by Clear.
func (fb *Framebuffer) SetClearColor(c Color) {
	fb.clearColor = c
}

// ClearColor returns the background color.
func (fb *Framebuffer) ClearColor() Color {
	return fb.clearColor
}

// SetPresenter sets what Present hands the finished frame to.
func (fb *Framebuffer) SetPresenter(p Presenter) {
	fb.presenter = p
}

// Clear fills the framebuffer with the clear color.
func (fb *Framebuffer) Clear() {
	n := len(fb.pixels)
	if n == 0 {
		return
	}
	// Copy-doubling fill
	fb.pixels[0] = fb.clearColor
	for i := 1; i < n; i *= 2 {
		copy(fb.pixels[i:], fb.pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y). Out of bounds writes are ignored.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return
	}
	fb.pixels[y*fb.width+x] = c
}

// Pixel returns the color at (x, y), or black if out of bounds.
func (fb *Framebuffer) Pixel(x, y int) Color {
	if x < 0 || x >= fb.width || y < 0 || y >= fb.height {
		return Black
	}
	return fb.pixels[y*fb.width+x]
}

// Present hands the frame to the presenter, if one is set.
func (fb *Framebuffer) Present() error {
	if fb.presenter == nil {
		return nil
	}
	return fb.presenter.Present(fb)
}

// Image converts the framebuffer to an 8-bit image, clamping colors.
func (fb *Framebuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := range fb.height {
		for x := range fb.width {
			img.SetRGBA(x, y, fb.pixels[y*fb.width+x].RGBA())
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, fb.Image())
}
