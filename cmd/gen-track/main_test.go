package main

import (
	"math"
	"testing"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"waypoint-sampler/internal/sampler"
	"waypoint-sampler/internal/track"
)

func TestOvalIsSampleable(t *testing.T) {
	img := drawOval(ovalShape{Width: 400, Height: 300, RadiusX: 150, RadiusY: 100, Inner: 0.6, Gravel: true})
	tr, err := track.NewTrack("oval", track.GridFromImage(img), track.DefaultSurfaceOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, tr.Runoff.Triangles())
	assert.Greater(t, tr.Grid.Count(func(c track.CellType) bool { return c == track.CellStart }), 0)

	logger, _ := logtest.NewNullLogger()
	s := &sampler.Sampler{Params: sampler.Params{Count: 24, RadialSamples: 80, RayHeight: 5, Margin: 1}, Log: logger}
	res, err := s.Generate(tr.Surface, tr.Scene)
	require.NoError(t, err)
	assert.Equal(t, 24, res.Created())
}

func TestOvalGap(t *testing.T) {
	shape := ovalShape{Width: 400, Height: 400, RadiusX: 150, RadiusY: 150, Inner: 0.6,
		GapStart: math.Pi / 6, GapEnd: 2 * math.Pi / 3}
	img := drawOval(shape)

	assert.True(t, shape.inGap(math.Pi/2))
	assert.False(t, shape.inGap(math.Pi))
	assert.Equal(t, wall, img.RGBAAt(200, 200+130), "bottom of the ring is cut")
	assert.Equal(t, tarmac, img.RGBAAt(200-130, 200))
}
