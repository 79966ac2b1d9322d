package geom

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Scene is a set of surfaces queried together. It answers probes with the
// closest hit across every surface, tagged with the surface that was struck.
type Scene struct {
	surfaces []Surface
}

// NewScene creates a scene holding the given surfaces.
func NewScene(surfaces ...Surface) *Scene {
	s := &Scene{}
	for _, surface := range surfaces {
		s.Add(surface)
	}
	return s
}

// Add registers a surface. Nil surfaces are ignored.
func (s *Scene) Add(surface Surface) {
	if surface == nil {
		return
	}
	s.surfaces = append(s.surfaces, surface)
}

// Lookup finds a registered surface by ID.
func (s *Scene) Lookup(id uuid.UUID) (Surface, bool) {
	for _, surface := range s.surfaces {
		if surface.ID() == id {
			return surface, true
		}
	}
	return nil, false
}

// Bounds returns the union of all surface bounds.
func (s *Scene) Bounds() AABB {
	b := EmptyAABB()
	for _, surface := range s.surfaces {
		b = b.Union(surface.Bounds())
	}
	return b
}

// Cast returns the first intersection of the ray with any surface in the
// scene. dir is normalized before casting; a zero direction never hits.
func (s *Scene) Cast(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	if dir.Len() == 0 || maxDist < 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	var closest Hit
	found := false
	for _, surface := range s.surfaces {
		limit := maxDist
		if found {
			limit = closest.Distance
		}
		if hit, ok := surface.Intersect(origin, dir, limit); ok {
			if !found || hit.Distance < closest.Distance {
				closest = hit
				found = true
			}
		}
	}
	return closest, found
}
