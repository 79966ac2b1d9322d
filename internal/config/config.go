// Package config loads the waypoint tool settings from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"waypoint-sampler/internal/sampler"
	"waypoint-sampler/internal/track"
)

// Config is the root of a settings file.
type Config struct {
	Track   TrackConfig    `yaml:"track"`
	Sampler sampler.Params `yaml:"sampler"`
	Log     LogConfig      `yaml:"log"`
}

// TrackConfig selects the track image and places it in world space.
type TrackConfig struct {
	Image     string  `yaml:"image"`
	Scale     float64 `yaml:"scale"`
	Elevation float64 `yaml:"elevation"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text or json
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Track: TrackConfig{
			Image: "assets/track.png",
			Scale: 1,
		},
		Sampler: sampler.DefaultParams(),
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Sampler.Validate(); err != nil {
		return err
	}
	if !(c.Track.Scale > 0) {
		return fmt.Errorf("track scale must be positive, got %v", c.Track.Scale)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Log.Format)
	}
	return nil
}

// SurfaceOptions returns the world placement of the track image.
func (c Config) SurfaceOptions() track.SurfaceOptions {
	return track.SurfaceOptions{Scale: c.Track.Scale, Elevation: c.Track.Elevation}
}

// ApplyLogging configures the standard logrus logger.
func (c Config) ApplyLogging() error {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if c.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}
