package main

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/config"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

const viewHelp = `Controls:
  Mouse drag  - Orbit the camera
  Scroll      - Zoom in/out
  W/S/A/D     - Orbit up/down/left/right
  Space       - Random spin
  N           - Cycle samples per pixel (1, 2, 3)
  R           - Reset view
  ?           - Toggle HUD overlay
  +/-         - Adjust zoom
  Esc         - Quit`

func newViewCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore a scene in the terminal",
		Long:  "Ray trace a scene continuously into the terminal using half-block cells.\n\n" + viewHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runView(cmd.Context())
		},
	}
	cmd.Flags().Int("fps", config.Default().FPS, "Target FPS")
	addSceneFlags(cmd)
	return cmd
}

// RotationAxis tracks position and velocity for one orbit axis with spring decay
type RotationAxis struct {
	Position  float64
	Velocity  float64
	velSpring harmonica.Spring
	velAccel  float64 // internal spring velocity (for animating Velocity toward 0)
}

// NewRotationAxis creates an axis with harmonica spring for smooth velocity decay
func NewRotationAxis(fps int, position float64) RotationAxis {
	return RotationAxis{
		Position: position,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		velSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update applies velocity to position and decays velocity toward 0 using spring
func (a *RotationAxis) Update() {
	a.Position += a.Velocity
	a.Velocity, a.velAccel = a.velSpring.Update(a.Velocity, a.velAccel, 0)
}

// OrbitState is the camera's spring-damped position around its target.
type OrbitState struct {
	Yaw, Pitch RotationAxis
	Distance   float64

	fps          int
	yaw0, pitch0 float64
	distance0    float64
}

// NewOrbitState starts an orbit at the camera's current placement.
func NewOrbitState(fps int, cam *render.PerspectiveCamera) *OrbitState {
	offset := cam.Position().Sub(cam.Target())
	dist := offset.Len()
	yaw := math.Atan2(offset.X, offset.Z)
	pitch := 0.0
	if dist > 0 {
		pitch = math.Asin(offset.Y / dist)
	}
	o := &OrbitState{fps: fps, yaw0: yaw, pitch0: pitch, distance0: dist}
	o.Reset()
	return o
}

func (o *OrbitState) Update() {
	o.Yaw.Update()
	o.Pitch.Update()
	// Keep pitch short of the poles so the spring does not wind up there
	o.Pitch.Position = math.Max(-1.5, math.Min(1.5, o.Pitch.Position))
}

func (o *OrbitState) ApplyImpulse(pitch, yaw float64) {
	o.Pitch.Velocity += pitch
	o.Yaw.Velocity += yaw
}

func (o *OrbitState) Zoom(delta float64) {
	o.Distance = math.Max(o.distance0*0.2, math.Min(o.distance0*4, o.Distance+delta))
}

func (o *OrbitState) Reset() {
	o.Yaw = NewRotationAxis(o.fps, o.yaw0)
	o.Pitch = NewRotationAxis(o.fps, o.pitch0)
	o.Distance = o.distance0
}

// ViewState holds all view-related settings (UI state, not library code)
type ViewState struct {
	Samples int  // samples per pixel axis
	ShowHUD bool // whether to show the HUD overlay
}

// HUD renders an overlay with scene info and frame timing
type HUD struct {
	title     string
	shapes    int
	fps       float64
	fpsFrames int
	fpsTime   time.Time
}

// NewHUD creates a new HUD
func NewHUD(title string, shapes int) *HUD {
	return &HUD{
		title:   title,
		shapes:  shapes,
		fpsTime: time.Now(),
	}
}

// UpdateFPS updates the FPS counter (call once per frame)
func (h *HUD) UpdateFPS() {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
}

// Render draws the HUD overlay directly to the terminal
func (h *HUD) Render(width, height int, view ViewState) {
	const (
		reset     = "\x1b[0m"
		bold      = "\x1b[1m"
		dim       = "\x1b[2m"
		bgBlack   = "\x1b[40m"
		fgWhite   = "\x1b[97m"
		fgGreen   = "\x1b[92m"
		fgYellow  = "\x1b[93m"
		fgCyan    = "\x1b[96m"
		clearLine = "\x1b[2K"
	)

	moveTo := func(row, col int) string {
		return fmt.Sprintf("\x1b[%d;%dH", row, col)
	}

	// Always clear the HUD rows (so toggling off works)
	fmt.Print(moveTo(1, 1) + clearLine)
	fmt.Print(moveTo(height, 1) + clearLine)

	if !view.ShowHUD {
		return
	}

	fmt.Printf("%s%s%s %.1f FPS %s", moveTo(1, 1), bgBlack, fgGreen, h.fps, reset)

	titleCol := max((width-len(h.title)-2)/2, 1)
	fmt.Print(moveTo(1, titleCol) + fmt.Sprintf("%s%s%s %s %s", bold, bgBlack, fgWhite, h.title, reset))

	shapesCol := max(width-14, 1)
	fmt.Print(moveTo(1, shapesCol) + fmt.Sprintf("%s%s%s %d shapes %s", bgBlack, fgCyan, bold, h.shapes, reset))

	fmt.Print(moveTo(height, 1) + fmt.Sprintf("%s%s %dx%d samples %s", bgBlack, fgWhite, view.Samples, view.Samples, reset))

	hintCol := max(width-22, 1)
	fmt.Print(moveTo(height, hintCol) + fmt.Sprintf("%s%s%s N: samples  R: reset %s", bgBlack, dim, fgYellow, reset))
}

func (a *app) runView(ctx context.Context) error {
	cfg := a.cfg

	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	fbWidth, fbHeight := render.FramebufferSize(width, height)
	sc, err := a.buildScene(fbWidth, fbHeight)
	if err != nil {
		return err
	}
	cam, ok := scene.Camera(sc)
	if !ok {
		return fmt.Errorf("scene %q has no orbitable camera", sc.Name)
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}

	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Enable mouse mode
	fmt.Fprint(os.Stdout, "\x1b[?1003h") // Enable any-event mouse tracking
	fmt.Fprint(os.Stdout, "\x1b[?1006h") // Enable SGR extended mouse mode

	presenter := render.NewTerminalPresenter(term)
	newFramebuffer := func(w, h int) *render.Framebuffer {
		fb := render.NewFramebuffer(w, h)
		fb.SetClearColor(render.Slate)
		fb.SetPresenter(presenter)
		return fb
	}
	fb := newFramebuffer(fbWidth, fbHeight)

	rt := a.rayTracer()
	target := cam.Target()
	hud := NewHUD(sc.Name, len(sc.Opaque)+len(sc.Transparent))

	// State shared with the event goroutine
	var (
		mu          sync.Mutex
		orbit       = NewOrbitState(cfg.FPS, cam)
		view        = ViewState{Samples: max(cfg.Samples, 1)}
		inputTorque struct{ pitch, yaw float64 }
		resized     bool
	)
	const torqueStrength = 2.0

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mouseDown bool
	var lastMouseX, lastMouseY int

	go func() {
		for ev := range term.Events() {
			mu.Lock()
			switch ev := ev.(type) {
			case uv.WindowSizeEvent:
				width, height = ev.Width, ev.Height
				resized = true

			case uv.KeyPressEvent:
				switch {
				case ev.MatchString("escape", "ctrl+c"):
					cancel()
				case ev.MatchString("r"):
					orbit.Reset()
				case ev.MatchString("w", "up"):
					inputTorque.pitch = torqueStrength
				case ev.MatchString("s", "down"):
					inputTorque.pitch = -torqueStrength
				case ev.MatchString("a", "left"):
					inputTorque.yaw = -torqueStrength
				case ev.MatchString("d", "right"):
					inputTorque.yaw = torqueStrength
				case ev.MatchString("space"):
					orbit.ApplyImpulse((rand.Float64()-0.5)*0.2, (rand.Float64()-0.5)*0.6)
				case ev.MatchString("n"):
					view.Samples = view.Samples%3 + 1
				case ev.MatchString("+", "="):
					orbit.Zoom(-0.5)
				case ev.MatchString("-", "_"):
					orbit.Zoom(0.5)
				case ev.MatchString("?", "shift+/"):
					view.ShowHUD = !view.ShowHUD
				}

			case uv.KeyReleaseEvent:
				switch {
				case ev.MatchString("w", "up", "s", "down"):
					inputTorque.pitch = 0
				case ev.MatchString("a", "left", "d", "right"):
					inputTorque.yaw = 0
				}

			case uv.MouseClickEvent:
				mouseDown = true
				lastMouseX, lastMouseY = ev.X, ev.Y

			case uv.MouseReleaseEvent:
				mouseDown = false

			case uv.MouseMotionEvent:
				if mouseDown {
					dx := ev.X - lastMouseX
					dy := ev.Y - lastMouseY
					orbit.ApplyImpulse(float64(dy)*0.02, float64(-dx)*0.02)
					lastMouseX, lastMouseY = ev.X, ev.Y
				}

			case uv.MouseWheelEvent:
				switch ev.Button {
				case uv.MouseWheelUp:
					orbit.Zoom(-0.5)
				case uv.MouseWheelDown:
					orbit.Zoom(0.5)
				}
			}
			mu.Unlock()
		}
	}()

	cleanup := func() {
		fmt.Fprint(os.Stdout, "\x1b[?1003l")
		fmt.Fprint(os.Stdout, "\x1b[?1006l")
		term.ExitAltScreen()
		term.ShowCursor()
		term.Shutdown(context.Background())
	}
	defer cleanup()

	targetDuration := time.Second / time.Duration(cfg.FPS)
	lastFrame := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		now := time.Now()
		dt := math.Min(now.Sub(lastFrame).Seconds(), 0.1)
		lastFrame = now

		mu.Lock()
		if resized {
			resized = false
			term.Erase()
			term.Resize(width, height)
			fbWidth, fbHeight = render.FramebufferSize(width, height)
			fb = newFramebuffer(fbWidth, fbHeight)
			cam.SetResolution(fbWidth, fbHeight)
		}
		// Apply input torque and decay it (key release events unreliable)
		orbit.ApplyImpulse(inputTorque.pitch*dt*0.1, inputTorque.yaw*dt*0.1)
		inputTorque.pitch *= 0.9
		inputTorque.yaw *= 0.9
		orbit.Update()
		cam.Orbit(target, orbit.Yaw.Position, orbit.Pitch.Position, orbit.Distance)
		frameView := view
		w, h := width, height
		mu.Unlock()

		if err := rt.Render(fb, cfg.Depth, sc, frameView.Samples); err != nil {
			return err
		}

		hud.UpdateFPS()
		hud.Render(w, h, frameView)

		// Frame timing
		if elapsed := time.Since(now); elapsed < targetDuration {
			time.Sleep(targetDuration - elapsed)
		}
	}
}
