package geom

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Up is the vertical axis of every scene.
var Up = mgl64.Vec3{0, 1, 0}

// Hit describes the first intersection of a ray with a surface.
type Hit struct {
	Distance  float64
	Point     mgl64.Vec3
	Normal    mgl64.Vec3
	SurfaceID uuid.UUID
}

// Surface is an immutable collidable geometry.
type Surface interface {
	ID() uuid.UUID
	Name() string
	Bounds() AABB
	// Intersect returns the nearest hit along the normalized direction dir
	// no further than maxDist from origin.
	Intersect(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool)
}

// Box is an axis-aligned solid box, typically used for scenery that sits
// above or around a track.
type Box struct {
	id     uuid.UUID
	name   string
	bounds AABB
}

// NewBox creates a box spanning min..max.
func NewBox(name string, min, max mgl64.Vec3) *Box {
	return &Box{
		id:     uuid.New(),
		name:   name,
		bounds: EmptyAABB().Extend(min).Extend(max),
	}
}

func (b *Box) ID() uuid.UUID { return b.id }
func (b *Box) Name() string  { return b.name }
func (b *Box) Bounds() AABB  { return b.bounds }

// Intersect implements Surface.
func (b *Box) Intersect(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	tmin, tmax, ok := b.bounds.IntersectRay(origin, dir, maxDist)
	if !ok {
		return Hit{}, false
	}

	t := tmin
	if t < 0 {
		// Origin is inside the box.
		t = tmax
	}
	if t < 0 || t > maxDist {
		return Hit{}, false
	}

	point := origin.Add(dir.Mul(t))
	return Hit{
		Distance:  t,
		Point:     point,
		Normal:    b.faceNormal(point),
		SurfaceID: b.id,
	}, true
}

func (b *Box) faceNormal(p mgl64.Vec3) mgl64.Vec3 {
	const epsilon = 1e-9
	for axis := 0; axis < 3; axis++ {
		var n mgl64.Vec3
		if mgl64.FloatEqualThreshold(p[axis], b.bounds.Min[axis], epsilon) {
			n[axis] = -1
			return n
		}
		if mgl64.FloatEqualThreshold(p[axis], b.bounds.Max[axis], epsilon) {
			n[axis] = 1
			return n
		}
	}
	return Up
}
