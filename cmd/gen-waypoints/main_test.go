package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"waypoint-sampler/internal/config"
	"waypoint-sampler/internal/sampler"
)

func writeRing(t *testing.T, dir, name string, size int, inner, outer float64) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	c := float64(size) / 2
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r := math.Hypot(float64(x)+0.5-c, float64(y)+0.5-c)
			if r >= inner && r <= outer {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestGenerateAllKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeRing(t, dir, "big.png", 160, 50, 70),
		writeRing(t, dir, "small.png", 80, 20, 30),
	}
	cfg := config.Default()
	cfg.Sampler = sampler.Params{Count: 12, RadialSamples: 60, RayHeight: 5, Margin: 1}

	docs, err := generateAll(paths, cfg, 2)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	for i, doc := range docs {
		assert.Equal(t, paths[i], doc.Track)
		assert.Equal(t, 12, doc.Requested)
		assert.Equal(t, 12, doc.Created)
		assert.Len(t, doc.Waypoints, 12)
		assert.Len(t, doc.Fingerprint, 16)
	}
	assert.Greater(t, docs[0].Length, docs[1].Length)

	var buf bytes.Buffer
	require.NoError(t, writeDocs(&buf, docs))
	assert.Equal(t, 2, strings.Count(buf.String(), "track: "))

	var first trackDoc
	require.NoError(t, yaml.NewDecoder(&buf).Decode(&first))
	assert.Equal(t, docs[0].Created, first.Created)
	assert.Equal(t, docs[0].Waypoints[3].Index, first.Waypoints[3].Index)
}

func TestGenerateAllReportsPreconditions(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Sampler.RadialSamples = 0

	_, err := generateAll([]string{writeRing(t, dir, "ring.png", 60, 15, 25)}, cfg, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, sampler.ErrPrecondition))
}

func TestGenerateAllMissingFile(t *testing.T) {
	_, err := generateAll([]string{filepath.Join(t.TempDir(), "nope.png")}, config.Default(), 1)
	assert.Error(t, err)
}
