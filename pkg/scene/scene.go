// Package scene builds render.Scene values: a registry of built-in scenes and
// import of glTF models.
package scene

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/taigrr/lumen/pkg/math3d"
	"github.com/taigrr/lumen/pkg/render"
)

// ErrUnknownScene is returned by Build for a name that was never registered.
var ErrUnknownScene = errors.New("unknown scene")

// Options control how a scene is built.
type Options struct {
	Width  int
	Height int

	// Texture is an optional image file used by scenes that show a texture.
	Texture string
}

// Builder constructs a scene for the given options.
type Builder func(opts Options) (*render.Scene, error)

type entry struct {
	description string
	build       Builder
}

var (
	mu       sync.RWMutex
	registry = map[string]entry{}
)

// Register adds a named scene. Registering a name twice replaces the builder.
func Register(name, description string, b Builder) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = entry{description: description, build: b}
}

// Names returns the registered scene names in sorted order.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Describe returns the description of a registered scene.
func Describe(name string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := registry[name]
	return e.description, ok
}

// Build constructs the named scene.
func Build(name string, opts Options) (*render.Scene, error) {
	mu.RLock()
	e, ok := registry[name]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("scene %q: invalid size %dx%d", name, opts.Width, opts.Height)
	}

	s, err := e.build(opts)
	if err != nil {
		return nil, fmt.Errorf("build scene %q: %w", name, err)
	}
	s.Name = name

	render.Logger().Debug("scene built",
		"name", name,
		"opaque", len(s.Opaque),
		"transparent", len(s.Transparent),
		"lights", len(s.Lights))
	return s, nil
}

// Camera returns the scene's camera when it is a perspective camera.
func Camera(s *render.Scene) (*render.PerspectiveCamera, bool) {
	cam, ok := s.Camera.(*render.PerspectiveCamera)
	return cam, ok
}

func newCamera(opts Options, pos, target math3d.Vec3) *render.PerspectiveCamera {
	cam := render.NewPerspectiveCamera(opts.Width, opts.Height)
	cam.SetPosition(pos)
	cam.LookAt(target)
	return cam
}
