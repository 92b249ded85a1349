package render

import (
	"image/color"
	"math"
	"testing"
)

func TestOver(t *testing.T) {
	dst := RGB(1, 0, 0)
	src := RGB(0, 0, 1)

	tests := []struct {
		alpha float64
		want  Color
	}{
		{0, dst},
		{1, src},
		{0.25, RGB(0.75, 0, 0.25)},
	}
	for _, tt := range tests {
		if got := Over(dst, src, tt.alpha); !got.ApproxEqual(tt.want, 1e-12) {
			t.Errorf("Over(alpha=%v) = %v, want %v", tt.alpha, got, tt.want)
		}
	}
}

func TestColorArithmetic(t *testing.T) {
	a := RGB(0.5, 1, 2)
	b := RGB(2, 0.5, 0.25)

	if got := a.Add(b); got != RGB(2.5, 1.5, 2.25) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Mul(b); got != RGB(1, 0.5, 0.5) {
		t.Errorf("Mul = %v", got)
	}
	if got := a.Scale(2); got != RGB(1, 2, 4) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Div(2); got != RGB(0.25, 0.5, 1) {
		t.Errorf("Div = %v", got)
	}
}

func TestColorRGBARoundTrip(t *testing.T) {
	tests := []color.RGBA{
		{0, 0, 0, 255},
		{255, 255, 255, 255},
		{30, 30, 40, 255},
		{135, 206, 235, 255},
	}
	for _, want := range tests {
		if got := FromRGBA(want).RGBA(); got != want {
			t.Errorf("round trip %v = %v", want, got)
		}
	}
}

func TestFromRGBATransparent(t *testing.T) {
	if got := FromRGBA(color.RGBA{}); got != Black {
		t.Errorf("FromRGBA(transparent) = %v, want black", got)
	}
}

func TestFromRGBAKeepsGammaEncoding(t *testing.T) {
	got := FromRGBA(color.RGBA{128, 64, 0, 255})
	want := RGB(128.0/255, 64.0/255, 0)
	if math.Abs(got.R-want.R) > 1e-9 || math.Abs(got.G-want.G) > 1e-9 || got.B != 0 {
		t.Errorf("FromRGBA = %v, want %v", got, want)
	}
}

func TestColorApproxEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b Color
		want bool
	}{
		{"identical", RGB(0.2, 0.4, 0.6), RGB(0.2, 0.4, 0.6), true},
		{"within eps above", RGB(0.2, 0.4, 0.6), RGB(0.2005, 0.4, 0.6), true},
		{"within eps below", RGB(0.2, 0.4, 0.6), RGB(0.2, 0.3995, 0.6), true},
		{"red over", RGB(0.2, 0.4, 0.6), RGB(0.21, 0.4, 0.6), false},
		{"blue under", RGB(0.2, 0.4, 0.6), RGB(0.2, 0.4, 0.59), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.ApproxEqual(tt.b, 1e-3); got != tt.want {
				t.Errorf("ApproxEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := tt.b.ApproxEqual(tt.a, 1e-3); got != tt.want {
				t.Errorf("ApproxEqual is not symmetric for %v, %v", tt.a, tt.b)
			}
		})
	}
}
