package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var down = mgl64.Vec3{0, -1, 0}

func TestAABB(t *testing.T) {
	b := EmptyAABB()
	assert.True(t, b.Empty())

	b = b.Extend(mgl64.Vec3{-2, 0, -4}).Extend(mgl64.Vec3{2, 1, 4})
	assert.False(t, b.Empty())
	assert.Equal(t, mgl64.Vec3{0, 0.5, 0}, b.Center())
	assert.Equal(t, mgl64.Vec3{2, 0.5, 4}, b.Extents())

	u := b.Union(EmptyAABB())
	assert.Equal(t, b, u)
}

func TestAABBIntersectRay(t *testing.T) {
	b := EmptyAABB().Extend(mgl64.Vec3{-1, -1, -1}).Extend(mgl64.Vec3{1, 1, 1})

	tmin, tmax, ok := b.IntersectRay(mgl64.Vec3{0, 5, 0}, down, 10)
	require.True(t, ok)
	assert.InDelta(t, 4, tmin, 1e-12)
	assert.InDelta(t, 6, tmax, 1e-12)

	_, _, ok = b.IntersectRay(mgl64.Vec3{0, 5, 0}, down, 3)
	assert.False(t, ok, "box is beyond max distance")

	_, _, ok = b.IntersectRay(mgl64.Vec3{3, 5, 0}, down, 10)
	assert.False(t, ok, "ray passes beside the box")
}

func TestMeshVerticalProbe(t *testing.T) {
	quad := NewQuad(0, 0, 10, 10, 2)
	m := NewMesh("floor", quad[:])

	hit, ok := m.Intersect(mgl64.Vec3{3, 5, 7}, down, 10)
	require.True(t, ok)
	assert.InDelta(t, 3, hit.Distance, 1e-9)
	assert.InDelta(t, 0, hit.Point.Sub(mgl64.Vec3{3, 2, 7}).Len(), 1e-9)
	assert.InDelta(t, 0, hit.Normal.Sub(mgl64.Vec3{0, 1, 0}).Len(), 1e-9)
	assert.Equal(t, m.ID(), hit.SurfaceID)

	_, ok = m.Intersect(mgl64.Vec3{11, 5, 7}, down, 10)
	assert.False(t, ok)

	_, ok = m.Intersect(mgl64.Vec3{3, 5, 7}, down, 2)
	assert.False(t, ok, "surface lies beyond max distance")
}

func TestMeshSlantedProbe(t *testing.T) {
	quad := NewQuad(0, 0, 10, 10, 0)
	m := NewMesh("floor", quad[:])

	dir := mgl64.Vec3{1, -1, 0}.Normalize()
	hit, ok := m.Intersect(mgl64.Vec3{2, 3, 5}, dir, 10)
	require.True(t, ok)
	assert.InDelta(t, 0, hit.Point.Sub(mgl64.Vec3{5, 0, 5}).Len(), 1e-9)
	assert.InDelta(t, 3*math.Sqrt2, hit.Distance, 1e-9)
}

func TestMeshUnboundedSlantedProbe(t *testing.T) {
	m := NewDisk("disk", mgl64.Vec3{}, 10, 32)
	scene := NewScene(m)
	origin := mgl64.Vec3{-2, 3, 0.5}
	dir := mgl64.Vec3{1, -1, 0}

	for _, maxDist := range []float64{20, math.Inf(1)} {
		hit, ok := scene.Cast(origin, dir, maxDist)
		require.True(t, ok, "maxDist %v", maxDist)
		assert.InDelta(t, 0, hit.Point.Sub(mgl64.Vec3{1, 0, 0.5}).Len(), 1e-9)
		assert.InDelta(t, 3*math.Sqrt2, hit.Distance, 1e-9)
		assert.Equal(t, m.ID(), hit.SurfaceID)
	}
}

func TestEmptyMesh(t *testing.T) {
	m := NewMesh("nothing", nil)
	assert.True(t, m.Bounds().Empty())

	_, ok := m.Intersect(mgl64.Vec3{0, 1, 0}, down, 10)
	assert.False(t, ok)
}

func TestRingGap(t *testing.T) {
	ring := Ring{Outer: 10, Inner: 8, Segments: 36, GapStart: 0, GapEnd: math.Pi / 2}
	m := NewAnnulus("ring", ring)

	probe := func(angle float64) bool {
		origin := mgl64.Vec3{9 * math.Cos(angle), 1, 9 * math.Sin(angle)}
		_, ok := m.Intersect(origin, down, 2)
		return ok
	}

	assert.False(t, probe(math.Pi/4), "inside the gap")
	assert.True(t, probe(math.Pi), "opposite the gap")
	assert.True(t, probe(3*math.Pi/2))

	b := m.Bounds()
	assert.InDelta(t, 10, b.Max.X(), 1e-9)
	assert.InDelta(t, 10, b.Max.Z(), 1e-9)
}

func TestDiskCenterHit(t *testing.T) {
	m := NewDisk("disk", mgl64.Vec3{}, 5, 32)

	_, ok := m.Intersect(mgl64.Vec3{0, 1, 0}, down, 2)
	assert.True(t, ok)

	_, ok = m.Intersect(mgl64.Vec3{5.5, 1, 0}, down, 2)
	assert.False(t, ok)
}

func TestBoxIntersect(t *testing.T) {
	b := NewBox("bridge", mgl64.Vec3{-1, 2, -1}, mgl64.Vec3{1, 3, 1})

	hit, ok := b.Intersect(mgl64.Vec3{0, 10, 0}, down, 20)
	require.True(t, ok)
	assert.InDelta(t, 7, hit.Distance, 1e-9)
	assert.Equal(t, mgl64.Vec3{0, 1, 0}, hit.Normal)
	assert.Equal(t, b.ID(), hit.SurfaceID)
}

func TestSceneCastReturnsClosestSurface(t *testing.T) {
	quad := NewQuad(-10, -10, 10, 10, 0)
	floor := NewMesh("floor", quad[:])
	bridge := NewBox("bridge", mgl64.Vec3{-1, 2, -1}, mgl64.Vec3{1, 3, 1})
	scene := NewScene(floor, nil, bridge)
	assert.Equal(t, floor.Bounds().Union(bridge.Bounds()), scene.Bounds(), "nil surfaces are skipped")

	hit, ok := scene.Cast(mgl64.Vec3{0, 5, 0}, mgl64.Vec3{0, -3, 0}, 10)
	require.True(t, ok)
	assert.Equal(t, bridge.ID(), hit.SurfaceID, "bridge shadows the floor")

	hit, ok = scene.Cast(mgl64.Vec3{5, 5, 5}, down, 10)
	require.True(t, ok)
	assert.Equal(t, floor.ID(), hit.SurfaceID)

	s, ok := scene.Lookup(floor.ID())
	require.True(t, ok)
	assert.Equal(t, "floor", s.Name())

	_, ok = scene.Cast(mgl64.Vec3{5, 5, 5}, mgl64.Vec3{}, 10)
	assert.False(t, ok)
}
