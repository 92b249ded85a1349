// Package output encodes rendered frames and delivers them to disk or S3.
package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"

	"github.com/nfnt/resize"
)

// Scale resizes img by factor. A factor of 1 returns img unchanged.
// Downscaling uses Lanczos resampling so supersampled renders stay smooth;
// upscaling uses nearest neighbor to keep pixels crisp.
func Scale(img image.Image, factor float64) image.Image {
	if factor == 1 || factor <= 0 {
		return img
	}
	b := img.Bounds()
	w := uint(max(1, int(math.Round(float64(b.Dx())*factor))))
	h := uint(max(1, int(math.Round(float64(b.Dy())*factor))))

	interp := resize.Lanczos3
	if factor > 1 {
		interp = resize.NearestNeighbor
	}
	return resize.Resize(w, h, img, interp)
}

// EncodePNG returns img encoded as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile writes data to path.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
