package render

import (
	"image"
	"log/slog"
	"slices"

	"github.com/taigrr/lumen/pkg/math3d"
)

// Debug selects pixels whose samples are traced for diagnosis. Tracing never
// changes the rendered colors.
type Debug struct {
	// Pixels lists the pixel coordinates to trace.
	Pixels []image.Point

	// Trace, if set, receives every traced sample. With more than one worker
	// it may be called from several goroutines at once.
	Trace func(SampleTrace)
}

// SampleTrace records how one sample of a debug pixel was resolved.
type SampleTrace struct {
	Pixel       image.Point
	SampleX     float64
	SampleY     float64
	Ray         math3d.Ray
	Case        string
	Opaque      OpaqueHit
	Transparent TransparentHit
	Color       Color
}

func (d *Debug) watches(x, y int) bool {
	return len(d.Pixels) > 0 && slices.Contains(d.Pixels, image.Pt(x, y))
}

func (d *Debug) report(tr SampleTrace) {
	Logger().Debug("debug sample",
		slog.Int("x", tr.Pixel.X),
		slog.Int("y", tr.Pixel.Y),
		slog.Float64("sx", tr.SampleX),
		slog.Float64("sy", tr.SampleY),
		slog.String("case", tr.Case),
		slog.Any("origin", tr.Ray.Origin),
		slog.Any("dir", tr.Ray.Direction),
		slog.Any("color", tr.Color),
	)
	if d.Trace != nil {
		d.Trace(tr)
	}
}
