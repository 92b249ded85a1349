package render

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
)

func TestFramebufferClear(t *testing.T) {
	for _, size := range []image.Point{{1, 1}, {3, 5}, {17, 9}} {
		fb := NewFramebuffer(size.X, size.Y)
		fb.SetClearColor(Sky)
		fb.Clear()
		for y := range size.Y {
			for x := range size.X {
				if got := fb.Pixel(x, y); got != Sky {
					t.Fatalf("%v: pixel (%d,%d) = %v, want %v", size, x, y, got, Sky)
				}
			}
		}
	}
}

func TestFramebufferBounds(t *testing.T) {
	fb := NewFramebuffer(4, 3)
	fb.SetPixel(-1, 0, Red)
	fb.SetPixel(4, 0, Red)
	fb.SetPixel(0, 3, Red)
	fb.SetPixel(3, 2, Green)

	if got := fb.Pixel(3, 2); got != Green {
		t.Errorf("Pixel(3,2) = %v, want green", got)
	}
	if got := fb.Pixel(10, 10); got != Black {
		t.Errorf("out of bounds Pixel = %v, want black", got)
	}
	for y := range 3 {
		for x := range 4 {
			if fb.Pixel(x, y) == Red {
				t.Errorf("out of bounds write landed at (%d,%d)", x, y)
			}
		}
	}
}

func TestFramebufferPresent(t *testing.T) {
	fb := NewFramebuffer(2, 2)
	if err := fb.Present(); err != nil {
		t.Errorf("Present without presenter = %v, want nil", err)
	}

	errShown := errors.New("shown")
	var got *Framebuffer
	fb.SetPresenter(PresenterFunc(func(f *Framebuffer) error {
		got = f
		return errShown
	}))
	if err := fb.Present(); !errors.Is(err, errShown) {
		t.Errorf("Present = %v, want %v", err, errShown)
	}
	if got != fb {
		t.Error("presenter did not receive the framebuffer")
	}
}

func TestFramebufferImageClamps(t *testing.T) {
	fb := NewFramebuffer(2, 1)
	fb.SetPixel(0, 0, RGB(2, -1, 0.5))
	fb.SetPixel(1, 0, White)

	img := fb.Image()
	want := []color.RGBA{
		{R: 255, G: 0, B: 128, A: 255},
		{R: 255, G: 255, B: 255, A: 255},
	}
	for x, w := range want {
		if got := img.RGBAAt(x, 0); got != w {
			t.Errorf("pixel %d = %v, want %v", x, got, w)
		}
	}
}

func TestFramebufferSavePNG(t *testing.T) {
	fb := NewFramebuffer(3, 2)
	fb.SetPixel(1, 1, Blue)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := fb.SavePNG(path); err != nil {
		t.Fatalf("SavePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("size = %v, want 3x2", img.Bounds())
	}
	if r, g, b, _ := img.At(1, 1).RGBA(); r != 0 || g != 0 || b != 0xffff {
		t.Errorf("pixel (1,1) = %v, want blue", img.At(1, 1))
	}
}

// cellScreen records cells drawn on it. Only Bounds and SetCell are used by
// Framebuffer.Draw.
type cellScreen struct {
	uv.Screen
	area     uv.Rectangle
	cells    map[image.Point]*uv.Cell
	displays int
}

func newCellScreen(w, h int) *cellScreen {
	return &cellScreen{
		area:  image.Rect(0, 0, w, h),
		cells: make(map[image.Point]*uv.Cell),
	}
}

func (s *cellScreen) Bounds() uv.Rectangle         { return s.area }
func (s *cellScreen) SetCell(x, y int, c *uv.Cell) { s.cells[image.Pt(x, y)] = c }
func (s *cellScreen) Display() error               { s.displays++; return nil }

func TestFramebufferSize(t *testing.T) {
	w, h := FramebufferSize(80, 24)
	if w != 80 || h != 48 {
		t.Errorf("FramebufferSize(80, 24) = %d, %d, want 80, 48", w, h)
	}
}

func TestTerminalPresenterHalfBlocks(t *testing.T) {
	scr := newCellScreen(2, 2)
	fb := NewFramebuffer(FramebufferSize(2, 2))
	fb.SetPixel(0, 0, Red)
	fb.SetPixel(0, 1, Blue)
	fb.SetPixel(1, 2, Green)
	fb.SetPresenter(NewTerminalPresenter(scr))

	if err := fb.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	if scr.displays != 1 {
		t.Errorf("Display called %d times, want 1", scr.displays)
	}
	if len(scr.cells) != 4 {
		t.Fatalf("drew %d cells, want 4", len(scr.cells))
	}

	cell := scr.cells[image.Pt(0, 0)]
	if cell.Content != "▀" {
		t.Errorf("content = %q, want upper half block", cell.Content)
	}
	if cell.Style.Fg != Red.RGBA() || cell.Style.Bg != Blue.RGBA() {
		t.Errorf("cell (0,0) fg=%v bg=%v, want red over blue", cell.Style.Fg, cell.Style.Bg)
	}
	if got := scr.cells[image.Pt(1, 1)].Style.Fg; got != Green.RGBA() {
		t.Errorf("cell (1,1) fg = %v, want green", got)
	}
}

func TestDrawOddHeight(t *testing.T) {
	scr := newCellScreen(1, 2)
	fb := NewFramebuffer(1, 3)
	fb.SetClearColor(White)
	fb.Clear()
	fb.Draw(scr, scr.Bounds())

	last := scr.cells[image.Pt(0, 1)]
	if last == nil {
		t.Fatal("last row not drawn")
	}
	if last.Style.Bg != nil {
		t.Errorf("missing bottom pixel should leave background unset, got %v", last.Style.Bg)
	}
}
