package scene

import (
	"fmt"
	"math"

	"github.com/taigrr/lumen/pkg/geometry"
	"github.com/taigrr/lumen/pkg/lighting"
	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

func init() {
	Register("default", "two spheres on a chalk floor under a white light", buildDefault)
	Register("shadows", "a sphere casting a shadow from a point light and a spot light", buildShadows)
	Register("transparency", "opaque spheres seen through tinted glass", buildTransparency)
	Register("textured", "a textured sphere on a checkerboard floor", buildTextured)
	Register("triangles", "a tetrahedron mesh lit from the camera", buildTriangles)
}

func floor(y float64, m render.Material) *geometry.Opaque {
	return geometry.NewOpaque(geometry.NewPlane(math3d.V3(0, y, 0), math3d.Up()), m)
}

func buildDefault(opts Options) (*render.Scene, error) {
	key := lighting.NewPositionalLight(math3d.V3(-4, 6, 5), lighting.WhitePhong())
	fill := lighting.NewDirectionalLight(math3d.V3(1, -1, -1), lighting.Phong{
		Diffuse:  render.Gray(0.3),
		Specular: render.Gray(0.1),
	})

	return &render.Scene{
		Camera: newCamera(opts, math3d.V3(0, 1.5, 6), math3d.V3(0, 0.5, 0)),
		Opaque: []render.OpaqueShape{
			geometry.NewOpaque(geometry.NewSphere(math3d.V3(-1.2, 0.5, 0), 1), render.Jade),
			geometry.NewOpaque(geometry.NewSphere(math3d.V3(1.3, 0.2, 0.5), 0.7), render.Gold),
			floor(-0.5, render.Chalk),
		},
		Lights: []render.Light{key, fill},
	}, nil
}

func buildShadows(opts Options) (*render.Scene, error) {
	point := lighting.NewPositionalLight(math3d.V3(2, 6, 2), lighting.WhitePhong())
	point.Attenuation = lighting.Attenuation{Constant: 1, Linear: 0.02, Quadratic: 0.005}

	spot := lighting.NewSpotLight(math3d.V3(-3, 5, 0), math3d.V3(0.6, -1, 0), math.Pi/10, lighting.Phong{
		Diffuse:  render.RGB(0.6, 0.5, 0.3),
		Specular: render.Gray(0.3),
	})

	return &render.Scene{
		Camera: newCamera(opts, math3d.V3(0, 3, 7), math3d.V3(0, 0, 0)),
		Opaque: []render.OpaqueShape{
			geometry.NewOpaque(geometry.NewSphere(math3d.V3(0, 1, 0), 1), render.Plastic),
			floor(0, render.Chalk),
		},
		Lights: []render.Light{point, spot},
	}, nil
}

func buildTransparency(opts Options) (*render.Scene, error) {
	return &render.Scene{
		Camera: newCamera(opts, math3d.V3(0, 1, 6), math3d.V3(0, 0.5, 0)),
		Opaque: []render.OpaqueShape{
			geometry.NewOpaque(geometry.NewSphere(math3d.V3(-1, 0.5, -1.5), 1), render.Plastic),
			geometry.NewOpaque(geometry.NewSphere(math3d.V3(1.2, 0.5, -2), 1), render.Jade),
			floor(-0.5, render.Chalk),
		},
		Transparent: []render.TransparentShape{
			geometry.NewTransparent(geometry.NewSphere(math3d.V3(0, 0.6, 1.2), 0.9), render.Cyan, 0.35),
			geometry.NewTransparent(geometry.NewPlane(math3d.V3(0, 0, 3.5), math3d.V3(0, 0, 1)), render.Sky, 0.1),
		},
		Lights: []render.Light{
			lighting.NewPositionalLight(math3d.V3(3, 5, 4), lighting.WhitePhong()),
		},
	}, nil
}

func buildTextured(opts Options) (*render.Scene, error) {
	var tex render.Texture = render.NewCheckerTexture(16, render.Yellow, render.Blue)
	if opts.Texture != "" {
		img, err := render.LoadTexture(opts.Texture)
		if err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
		img.FilterMode = render.FilterBilinear
		tex = img
	}

	checker := render.NewCheckerTexture(1, render.White, render.Slate)
	plane := geometry.NewPlane(math3d.V3(0, -1, 0), math3d.Up())
	plane.Tile = 2

	return &render.Scene{
		Camera: newCamera(opts, math3d.V3(0, 1, 5), math3d.V3(0, 0, 0)),
		Opaque: []render.OpaqueShape{
			geometry.NewTextured(geometry.NewSphere(math3d.V3(0, 0, 0), 1), tex),
			geometry.NewTextured(plane, checker),
		},
		Lights: []render.Light{
			lighting.NewPositionalLight(math3d.V3(0, 4, 4), lighting.WhitePhong()),
		},
	}, nil
}

func buildTriangles(opts Options) (*render.Scene, error) {
	a := math3d.V3(0, 1.5, 0)
	b := math3d.V3(-1, 0, 1)
	c := math3d.V3(1, 0, 1)
	d := math3d.V3(0, 0, -1)
	tetra := geometry.NewTriangleMesh([]*geometry.Triangle{
		geometry.NewTriangle(b, c, a),
		geometry.NewTriangle(c, d, a),
		geometry.NewTriangle(d, b, a),
		geometry.NewTriangle(b, d, c),
	})

	headlamp := lighting.NewPositionalLight(math3d.V3(0.5, 0.5, 0), lighting.WhitePhong())
	headlamp.AttachedToCamera = true

	return &render.Scene{
		Camera: newCamera(opts, math3d.V3(1.5, 1.5, 4), math3d.V3(0, 0.5, 0)),
		Opaque: []render.OpaqueShape{
			geometry.NewOpaque(tetra, render.Gold),
			floor(0, render.Chalk),
		},
		Lights: []render.Light{headlamp},
	}, nil
}
