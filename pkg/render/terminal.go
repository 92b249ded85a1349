package render

import (
	"image/color"

	uv "github.com/charmbracelet/ultraviolet"
)

// Display is a terminal screen that can flush its cells, such as
// *uv.Terminal.
type Display interface {
	uv.Screen
	Display() error
}

// TerminalPresenter shows frames on a terminal using half-block cells, so a
// terminal of W x H cells displays a W x 2H framebuffer.
type TerminalPresenter struct {
	screen Display
}

// NewTerminalPresenter creates a presenter drawing to screen.
func NewTerminalPresenter(screen Display) *TerminalPresenter {
	return &TerminalPresenter{screen: screen}
}

// FramebufferSize returns the framebuffer size that fills a terminal of the
// given cell dimensions.
func FramebufferSize(cols, rows int) (width, height int) {
	return cols, rows * 2
}

// Present draws fb and flushes the screen.
func (p *TerminalPresenter) Present(fb *Framebuffer) error {
	fb.Draw(p.screen, p.screen.Bounds())
	return p.screen.Display()
}

// Draw converts the framebuffer to terminal cells on scr.
func (fb *Framebuffer) Draw(scr uv.Screen, area uv.Rectangle) {
	// Each terminal row represents 2 framebuffer rows
	// We use ▀ (upper half block) with fg=top color and bg=bottom color
	for row := area.Min.Y; row < area.Max.Y; row++ {
		topY := row * 2
		botY := topY + 1

		for col := area.Min.X; col < area.Max.X && col < fb.width; col++ {
			if topY >= fb.height {
				break
			}
			top := fb.Pixel(col, topY).RGBA()
			var bot color.Color
			if botY < fb.height {
				bot = fb.Pixel(col, botY).RGBA()
			}

			scr.SetCell(col, row, &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: top,
					Bg: bot,
				},
			})
		}
	}
}
