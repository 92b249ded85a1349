// lumen - ray tracer for the terminal and for PNG output.
//
// Commands:
//
//	lumen render   - Trace one frame to a PNG file (optionally uploaded to S3)
//	lumen view     - Interactive viewer drawn with half-block cells
//	lumen scenes   - List the built-in scenes
//
// Settings come from defaults, a .env file, LUMEN_* environment variables
// and flags, in increasing order of precedence.
package main

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/config"
	"github.com/taigrr/lumen/pkg/render"
	"github.com/taigrr/lumen/pkg/scene"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := fang.Execute(ctx, newRootCmd()); err != nil {
		os.Exit(1)
	}
}

// app carries the resolved configuration from the root command to the
// subcommands.
type app struct {
	envFile string
	cfg     config.Config
	debug   []image.Point
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:          "lumen",
		Short:        "Ray trace scenes and glTF models",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", config.EnvFile(), "Path to a .env file")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(newRenderCmd(a), newViewCmd(a), newScenesCmd())
	return root
}

// addSceneFlags registers the flags shared by render and view.
func addSceneFlags(cmd *cobra.Command) {
	def := config.Default()
	f := cmd.Flags()
	f.IntP("samples", "n", def.Samples, "Samples per pixel axis (n x n rays per pixel)")
	f.Int("depth", def.Depth, "Recursion depth (reserved)")
	f.IntP("workers", "j", def.Workers, "Rendering goroutines")
	f.StringP("scene", "s", def.Scene, "Built-in scene name")
	f.StringP("model", "m", "", "glTF/GLB model to render instead of a built-in scene")
	f.String("texture", "", "Image texture for the textured scene")
	f.StringSlice("debug-pixel", nil, "Trace the samples of pixel X,Y at debug level (repeatable)")
}

// load resolves the configuration and installs the logger.
func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	ints := map[string]*int{
		"width":   &cfg.Width,
		"height":  &cfg.Height,
		"samples": &cfg.Samples,
		"depth":   &cfg.Depth,
		"workers": &cfg.Workers,
		"fps":     &cfg.FPS,
	}
	for name, dst := range ints {
		if f.Lookup(name) != nil && f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}
	strs := map[string]*string{
		"scene":     &cfg.Scene,
		"model":     &cfg.Model,
		"texture":   &cfg.Texture,
		"output":    &cfg.Output,
		"log-level": &cfg.LogLevel,
		"s3-bucket": &cfg.S3.Bucket,
		"s3-prefix": &cfg.S3.Prefix,
	}
	for name, dst := range strs {
		if f.Lookup(name) != nil && f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	if f.Lookup("scale") != nil && f.Changed("scale") {
		cfg.Scale, _ = f.GetFloat64("scale")
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if f.Lookup("debug-pixel") != nil {
		specs, _ := f.GetStringSlice("debug-pixel")
		a.debug, err = parsePixels(specs)
		if err != nil {
			return err
		}
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	a.cfg = cfg
	return nil
}

// parsePixels parses "x,y" pixel coordinates.
func parsePixels(specs []string) ([]image.Point, error) {
	var pts []image.Point
	for _, s := range specs {
		var p image.Point
		if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d,%d", &p.X, &p.Y); err != nil {
			return nil, fmt.Errorf("%w: debug pixel %q: want X,Y", config.ErrInvalid, s)
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// buildScene loads the configured model or built-in scene at the given
// resolution.
func (a *app) buildScene(width, height int) (*render.Scene, error) {
	opts := scene.Options{Width: width, Height: height, Texture: a.cfg.Texture}
	if a.cfg.Model != "" {
		return scene.LoadModel(a.cfg.Model, opts)
	}
	return scene.Build(a.cfg.Scene, opts)
}

// rayTracer returns a ray tracer configured from the settings.
func (a *app) rayTracer() *render.RayTracer {
	rt := render.NewRayTracer()
	rt.Workers = a.cfg.Workers
	rt.Debug.Pixels = a.debug
	return rt
}
