package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Ring describes a flat annulus in the XZ plane. Angles are measured from +X
// towards +Z, in radians.
type Ring struct {
	Center       mgl64.Vec3
	Inner, Outer float64
	Segments     int

	// Segments whose mid angle lies strictly inside (GapStart, GapEnd) are
	// left out. A zero-width gap keeps the ring closed.
	GapStart, GapEnd float64
}

func (r Ring) inGap(angle float64) bool {
	if r.GapEnd <= r.GapStart {
		return false
	}
	a := math.Mod(angle-r.GapStart, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a > 0 && a < r.GapEnd-r.GapStart
}

func (r Ring) point(radius, angle float64) mgl64.Vec3 {
	return r.Center.Add(mgl64.Vec3{radius * math.Cos(angle), 0, radius * math.Sin(angle)})
}

// Triangles tessellates the ring. An inner radius of zero produces a fan.
func (r Ring) Triangles() []Triangle {
	segments := max(r.Segments, 3)
	step := 2 * math.Pi / float64(segments)

	tris := make([]Triangle, 0, 2*segments)
	for i := 0; i < segments; i++ {
		a0 := step * float64(i)
		a1 := step * float64(i+1)
		if r.inGap((a0 + a1) / 2) {
			continue
		}

		o0, o1 := r.point(r.Outer, a0), r.point(r.Outer, a1)
		if r.Inner <= 0 {
			tris = append(tris, Triangle{r.Center, o1, o0})
			continue
		}
		i0, i1 := r.point(r.Inner, a0), r.point(r.Inner, a1)
		tris = append(tris,
			Triangle{i0, o1, o0},
			Triangle{i0, i1, o1},
		)
	}
	return tris
}

// NewAnnulus builds a ring-shaped track mesh.
func NewAnnulus(name string, ring Ring) *Mesh {
	return NewMesh(name, ring.Triangles())
}

// NewDisk builds a flat disk mesh of the given radius.
func NewDisk(name string, center mgl64.Vec3, radius float64, segments int) *Mesh {
	return NewAnnulus(name, Ring{Center: center, Outer: radius, Segments: segments})
}

// NewQuad builds a horizontal rectangle at height y spanning x0..x1, z0..z1.
func NewQuad(x0, z0, x1, z1, y float64) [2]Triangle {
	a := mgl64.Vec3{x0, y, z0}
	b := mgl64.Vec3{x1, y, z0}
	c := mgl64.Vec3{x1, y, z1}
	d := mgl64.Vec3{x0, y, z1}
	return [2]Triangle{{a, c, b}, {a, d, c}}
}
