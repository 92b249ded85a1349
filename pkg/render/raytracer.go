package render

import (
	"fmt"
	"image"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/taigrr/lumen/pkg/math3d"
)

// hitCase classifies the pair of nearest opaque and transparent hits of a ray.
type hitCase int

const (
	caseMiss              hitCase = iota // nothing hit
	caseOpaque                           // opaque only
	caseTransparent                      // transparent only
	caseOpaqueNearer                     // both, opaque strictly nearer
	caseTransparentNearer                // both, transparent nearer or equal
)

func (c hitCase) String() string {
	switch c {
	case caseOpaque:
		return "opaque"
	case caseTransparent:
		return "transparent"
	case caseOpaqueNearer:
		return "opaque-nearer"
	case caseTransparentNearer:
		return "transparent-nearer"
	default:
		return "miss"
	}
}

func classify(hit OpaqueHit, trans TransparentHit) hitCase {
	switch {
	case hit.Valid() && !trans.Valid():
		return caseOpaque
	case !hit.Valid() && trans.Valid():
		return caseTransparent
	case hit.Valid() && hit.T < trans.T:
		return caseOpaqueNearer
	case hit.Valid():
		return caseTransparentNearer
	default:
		return caseMiss
	}
}

// RayTracer renders scenes by shading one primary ray per sample.
// Secondary rays are not traced.
type RayTracer struct {
	// Workers is the number of goroutines rendering rows. Values below 2
	// render serially in raster order.
	Workers int

	Debug Debug
}

// NewRayTracer creates a ray tracer using one worker per CPU.
func NewRayTracer() *RayTracer {
	return &RayTracer{Workers: runtime.NumCPU()}
}

// Render overwrites every pixel of surface with the scene as seen by its
// camera, then presents the surface.
//
// Each pixel is sampled on a samplesPerAxis x samplesPerAxis grid and the
// samples are averaged. With one sample per axis the ray passes through the
// pixel's integer coordinate. depth is reserved for recursive shading and is
// currently ignored.
func (rt *RayTracer) Render(surface Surface, depth int, scene *Scene, samplesPerAxis int) error {
	n := max(samplesPerAxis, 1)
	width, height := surface.Width(), surface.Height()
	background := surface.ClearColor()
	start := time.Now()

	if rt.Workers < 2 {
		for y := range height {
			rt.renderRow(surface, scene, background, y, width, n)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(rt.Workers)
		for y := range height {
			g.Go(func() error {
				rt.renderRow(surface, scene, background, y, width, n)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	Logger().Debug("frame traced",
		slog.String("scene", scene.Name),
		slog.Int("width", width),
		slog.Int("height", height),
		slog.Int("samples", n*n),
		slog.Int("depth", depth),
		slog.Duration("elapsed", time.Since(start)),
	)

	if err := surface.Present(); err != nil {
		return fmt.Errorf("present frame: %w", err)
	}
	return nil
}

func (rt *RayTracer) renderRow(surface Surface, scene *Scene, background Color, y, width, n int) {
	for x := range width {
		surface.SetPixel(x, y, rt.TracePixel(scene, background, x, y, n))
	}
}

// TracePixel returns the final color of pixel (x, y): the mean of its
// n x n samples.
func (rt *RayTracer) TracePixel(scene *Scene, background Color, x, y, n int) Color {
	if n <= 1 {
		return rt.traceSample(scene, background, x, y, float64(x), float64(y))
	}

	step := 1 / float64(n)
	var sum Color
	for j := range n {
		sy := float64(y) + step/2 + float64(j)*step
		for i := range n {
			sx := float64(x) + step/2 + float64(i)*step
			sum = sum.Add(rt.traceSample(scene, background, x, y, sx, sy))
		}
	}
	return sum.Div(float64(n * n))
}

func (rt *RayTracer) traceSample(scene *Scene, background Color, x, y int, sx, sy float64) Color {
	ray := scene.Camera.GetRay(sx, sy)
	hit := NearestOpaque(ray, scene.Opaque)
	trans := NearestTransparent(ray, scene.Transparent)

	kind := classify(hit, trans)
	c := resolve(kind, ray, hit, trans, scene, background)

	if rt.Debug.watches(x, y) {
		rt.Debug.report(SampleTrace{
			Pixel:       image.Pt(x, y),
			SampleX:     sx,
			SampleY:     sy,
			Ray:         ray,
			Case:        kind.String(),
			Opaque:      hit,
			Transparent: trans,
			Color:       c,
		})
	}
	return c
}

func resolve(kind hitCase, ray math3d.Ray, hit OpaqueHit, trans TransparentHit, scene *Scene, background Color) Color {
	switch kind {
	case caseOpaque, caseOpaqueNearer:
		return ShadeOpaque(ray, hit, scene)
	case caseTransparent:
		return trans.Color
	case caseTransparentNearer:
		return Over(ShadeOpaque(ray, hit, scene), trans.Color, trans.Alpha)
	default:
		return background
	}
}

// ShadeOpaque returns the color of an opaque hit seen along ray. A textured
// hit returns its texel; otherwise every light's contribution is summed, each
// with its own shadow test against the scene's opaque shapes.
func ShadeOpaque(ray math3d.Ray, hit OpaqueHit, scene *Scene) Color {
	normal := FacingNormal(ray.Direction, hit.Normal)
	if hit.Texture != nil {
		return hit.Texture.SampleUV(hit.U, hit.V)
	}

	frame := scene.Camera.Frame()
	var sum Color
	for _, light := range scene.Lights {
		shadowed := light.InShadow(hit.Point, normal, scene.Opaque, frame)
		sum = sum.Add(light.Illuminate(hit.Point, normal, hit.Material, frame, shadowed))
	}
	return sum
}
