// Package config loads lumen settings from defaults, a .env file and the
// environment. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrInvalid is wrapped by every validation or parse failure.
var ErrInvalid = errors.New("invalid configuration")

// Config holds everything a render or viewer session needs.
type Config struct {
	Width   int
	Height  int
	Samples int // per axis; each pixel takes Samples² rays
	Depth   int // reserved for recursive shading
	Workers int

	Scene   string
	Model   string // glTF/GLB file; overrides Scene when set
	Texture string

	Output   string
	Scale    float64 // output scale factor applied after rendering
	LogLevel string

	FPS int // viewer frame rate

	S3 S3Config
}

// S3Config describes where rendered images are uploaded. Upload is enabled
// when Bucket is set.
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string
	AccessKey string
	SecretKey string
}

// Enabled reports whether an upload target is configured.
func (c S3Config) Enabled() bool {
	return c.Bucket != ""
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Width:    640,
		Height:   480,
		Samples:  2,
		Depth:    0,
		Workers:  runtime.NumCPU(),
		Scene:    "default",
		Output:   "lumen.png",
		Scale:    1,
		LogLevel: "info",
		FPS:      30,
		S3: S3Config{
			Region: "us-east-1",
		},
	}
}

// Load returns the defaults overridden by the .env file at envFile (if it
// exists) and then by LUMEN_* environment variables. Variables already set
// in the environment win over the .env file. The result is not validated so
// callers can apply flags first.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Default()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EnvFile returns the .env path named by LUMEN_ENV_FILE, or ".env".
func EnvFile() string {
	return getEnv("LUMEN_ENV_FILE", ".env")
}

// Helper to get environment variables with a default value.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"LUMEN_WIDTH", &c.Width},
		{"LUMEN_HEIGHT", &c.Height},
		{"LUMEN_SAMPLES", &c.Samples},
		{"LUMEN_DEPTH", &c.Depth},
		{"LUMEN_WORKERS", &c.Workers},
		{"LUMEN_FPS", &c.FPS},
	}
	for _, v := range ints {
		s, ok := lookup(v.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, v.key, s, err)
		}
		*v.dst = n
	}

	if s, ok := lookup("LUMEN_SCALE"); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return fmt.Errorf("%w: LUMEN_SCALE=%q: %v", ErrInvalid, s, err)
		}
		c.Scale = f
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"LUMEN_SCENE", &c.Scene},
		{"LUMEN_MODEL", &c.Model},
		{"LUMEN_TEXTURE", &c.Texture},
		{"LUMEN_OUTPUT", &c.Output},
		{"LUMEN_LOG_LEVEL", &c.LogLevel},
		{"LUMEN_S3_ENDPOINT", &c.S3.Endpoint},
		{"LUMEN_S3_REGION", &c.S3.Region},
		{"LUMEN_S3_BUCKET", &c.S3.Bucket},
		{"LUMEN_S3_PREFIX", &c.S3.Prefix},
		{"LUMEN_S3_ACCESS_KEY", &c.S3.AccessKey},
		{"LUMEN_S3_SECRET_KEY", &c.S3.SecretKey},
	}
	for _, v := range strs {
		if s, ok := lookup(v.key); ok {
			*v.dst = s
		}
	}
	return nil
}

// Validate checks that the configuration can be rendered.
func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size %dx%d must be positive", c.Width, c.Height))
	}
	if c.Samples < 1 {
		errs = append(errs, fmt.Errorf("samples %d must be at least 1", c.Samples))
	}
	if c.Depth < 0 {
		errs = append(errs, fmt.Errorf("depth %d must not be negative", c.Depth))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers %d must be at least 1", c.Workers))
	}
	if c.Scale <= 0 {
		errs = append(errs, fmt.Errorf("scale %v must be positive", c.Scale))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps %d must be positive", c.FPS))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.S3.Enabled() && (c.S3.AccessKey == "") != (c.S3.SecretKey == "") {
		errs = append(errs, errors.New("s3 access key and secret key must be set together"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return l, nil
}
