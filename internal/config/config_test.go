package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoint-sampler/internal/sampler"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 100, cfg.Sampler.Count)
	assert.Equal(t, 50, cfg.Sampler.RadialSamples)
	assert.Equal(t, 10.0, cfg.Sampler.RayHeight)
	assert.Equal(t, 1.0, cfg.Sampler.Margin)
	assert.NoError(t, cfg.Validate())
}

func TestParseOverlaysDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
track:
  image: tracks/monza.png
  scale: 0.2
sampler:
  count: 250
  ray_height: 3
log:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, "tracks/monza.png", cfg.Track.Image)
	assert.Equal(t, 0.2, cfg.Track.Scale)
	assert.Equal(t, 250, cfg.Sampler.Count)
	assert.Equal(t, 3.0, cfg.Sampler.RayHeight)
	assert.Equal(t, 50, cfg.Sampler.RadialSamples, "unset keys keep defaults")
	assert.Equal(t, "text", cfg.Log.Format)

	opts := cfg.SurfaceOptions()
	assert.Equal(t, 0.2, opts.Scale)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name         string
		yaml         string
		precondition bool
	}{
		{"unknown key", "sampler:\n  counts: 3\n", false},
		{"bad yaml", "sampler: [", false},
		{"zero count", "sampler:\n  count: 0\n", true},
		{"negative samples", "sampler:\n  radial_samples: -2\n", true},
		{"zero scale", "track:\n  scale: 0\n", false},
		{"bad level", "log:\n  level: loud\n", false},
		{"bad format", "log:\n  format: xml\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Equal(t, tt.precondition, errors.Is(err, sampler.ErrPrecondition))
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "waypoints.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sampler:\n  count: 12\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Sampler.Count)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o644))
	cfg, err = Load(empty)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyLogging(t *testing.T) {
	defer log.SetLevel(log.GetLevel())
	defer log.SetFormatter(log.StandardLogger().Formatter)

	cfg := Default()
	cfg.Log = LogConfig{Level: "warn", Format: "json"}
	require.NoError(t, cfg.ApplyLogging())
	assert.Equal(t, log.WarnLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)
}
