package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taigrr/lumen/pkg/config"
	"github.com/taigrr/lumen/pkg/output"
	"github.com/taigrr/lumen/pkg/render"
)

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Trace a single frame to a PNG file",
		Example: `  lumen render --scene shadows -n 3 -o shadows.png
  lumen render --model helmet.glb --width 1280 --height 720 --scale 0.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRender(cmd.Context())
		},
	}

	def := config.Default()
	f := cmd.Flags()
	f.Int("width", def.Width, "Image width in pixels")
	f.Int("height", def.Height, "Image height in pixels")
	f.StringP("output", "o", def.Output, "Output PNG path")
	f.Float64("scale", def.Scale, "Scale factor applied to the finished image")
	f.String("s3-bucket", "", "Upload the PNG to this S3 bucket")
	f.String("s3-prefix", "", "Key prefix for S3 uploads")
	addSceneFlags(cmd)
	return cmd
}

func (a *app) runRender(ctx context.Context) error {
	cfg := a.cfg
	sc, err := a.buildScene(cfg.Width, cfg.Height)
	if err != nil {
		return err
	}

	fb := render.NewFramebuffer(cfg.Width, cfg.Height)
	fb.SetClearColor(render.Slate)
	fb.Clear()
	fb.SetPresenter(render.PresenterFunc(func(fb *render.Framebuffer) error {
		return a.deliver(ctx, fb)
	}))

	start := time.Now()
	if err := a.rayTracer().Render(fb, cfg.Depth, sc, cfg.Samples); err != nil {
		return err
	}
	render.Logger().Info("rendered",
		"scene", sc.Name,
		"size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"samples", cfg.Samples*cfg.Samples,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}

// deliver writes the finished frame to disk and uploads it when S3 is
// configured.
func (a *app) deliver(ctx context.Context, fb *render.Framebuffer) error {
	cfg := a.cfg
	img := output.Scale(fb.Image(), cfg.Scale)
	data, err := output.EncodePNG(img)
	if err != nil {
		return err
	}
	if err := output.WriteFile(cfg.Output, data); err != nil {
		return err
	}
	render.Logger().Info("wrote frame", "path", cfg.Output, "bytes", len(data))

	if !cfg.S3.Enabled() {
		return nil
	}
	up, err := output.NewUploader(cfg.S3)
	if err != nil {
		return err
	}
	_, err = up.Upload(ctx, cfg.Output, data)
	return err
}
