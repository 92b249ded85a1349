package render

// Material holds Phong reflection coefficients.
type Material struct {
	Ambient   Color
	Diffuse   Color
	Specular  Color
	Shininess float64
}

// NewMaterial builds a material whose ambient and diffuse terms share the same
// base color, with the ambient term dimmed.
func NewMaterial(base Color, specular Color, shininess float64) Material {
	return Material{
		Ambient:   base.Scale(0.2),
		Diffuse:   base,
		Specular:  specular,
		Shininess: shininess,
	}
}

// Some stock materials.
var (
	Chalk   = NewMaterial(Gray(0.8), Gray(0.1), 4)
	Plastic = NewMaterial(RGB(0.8, 0.1, 0.1), Gray(0.7), 32)
	Gold    = Material{
		Ambient:   RGB(0.24725, 0.1995, 0.0745),
		Diffuse:   RGB(0.75164, 0.60648, 0.22648),
		Specular:  RGB(0.628281, 0.555802, 0.366065),
		Shininess: 51.2,
	}
	Jade = Material{
		Ambient:   RGB(0.135, 0.2225, 0.1575),
		Diffuse:   RGB(0.54, 0.89, 0.63),
		Specular:  RGB(0.316228, 0.316228, 0.316228),
		Shininess: 12.8,
	}
)
