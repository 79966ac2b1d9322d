package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// maxBucketsPerAxis bounds the size of the XZ acceleration grid.
const maxBucketsPerAxis = 256

// Triangle is a single mesh face.
type Triangle struct {
	A, B, C mgl64.Vec3
}

// Normal returns the unit face normal (right-handed winding).
func (t Triangle) Normal() mgl64.Vec3 {
	n := t.B.Sub(t.A).Cross(t.C.Sub(t.A))
	if n.Len() == 0 {
		return mgl64.Vec3{}
	}
	return n.Normalize()
}

// intersect is a two-sided Möller–Trumbore test. Degenerate triangles never
// report a hit.
func (t Triangle) intersect(origin, dir mgl64.Vec3) (float64, bool) {
	const epsilon = 1e-12

	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < epsilon {
		return 0, false
	}
	inv := 1 / det

	s := origin.Sub(t.A)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}

	dist := e2.Dot(q) * inv
	return dist, dist >= 0
}

// Mesh is an immutable triangle surface. Triangles are bucketed on the XZ
// plane so vertical probes only test the faces under the probe.
type Mesh struct {
	id     uuid.UUID
	name   string
	tris   []Triangle
	bounds AABB

	cols, rows   int
	cellW, cellD float64
	buckets      [][]int32
}

// NewMesh builds a mesh from tris. The slice is copied.
func NewMesh(name string, tris []Triangle) *Mesh {
	m := &Mesh{
		id:     uuid.New(),
		name:   name,
		tris:   append([]Triangle(nil), tris...),
		bounds: EmptyAABB(),
	}
	for _, t := range m.tris {
		m.bounds = m.bounds.Extend(t.A).Extend(t.B).Extend(t.C)
	}
	m.buildBuckets()
	return m
}

func (m *Mesh) ID() uuid.UUID { return m.id }
func (m *Mesh) Name() string  { return m.name }
func (m *Mesh) Bounds() AABB  { return m.bounds }

// Triangles returns the faces of the mesh. Callers must not modify them.
func (m *Mesh) Triangles() []Triangle { return m.tris }

func (m *Mesh) buildBuckets() {
	if len(m.tris) == 0 {
		return
	}

	n := int(math.Ceil(math.Sqrt(float64(len(m.tris)))))
	n = max(1, min(n, maxBucketsPerAxis))

	width := m.bounds.Max.X() - m.bounds.Min.X()
	depth := m.bounds.Max.Z() - m.bounds.Min.Z()

	m.cols, m.cellW = n, width/float64(n)
	if width <= 0 {
		m.cols, m.cellW = 1, 1
	}
	m.rows, m.cellD = n, depth/float64(n)
	if depth <= 0 {
		m.rows, m.cellD = 1, 1
	}

	m.buckets = make([][]int32, m.cols*m.rows)
	for i, t := range m.tris {
		minX := math.Min(t.A.X(), math.Min(t.B.X(), t.C.X()))
		maxX := math.Max(t.A.X(), math.Max(t.B.X(), t.C.X()))
		minZ := math.Min(t.A.Z(), math.Min(t.B.Z(), t.C.Z()))
		maxZ := math.Max(t.A.Z(), math.Max(t.B.Z(), t.C.Z()))

		c0, r0 := m.cellOf(minX, minZ)
		c1, r1 := m.cellOf(maxX, maxZ)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				idx := r*m.cols + c
				m.buckets[idx] = append(m.buckets[idx], int32(i))
			}
		}
	}
}

// cellOf maps an XZ position to a bucket, clamping to the grid.
func (m *Mesh) cellOf(x, z float64) (int, int) {
	c := int(math.Floor((x - m.bounds.Min.X()) / m.cellW))
	r := int(math.Floor((z - m.bounds.Min.Z()) / m.cellD))
	return max(0, min(c, m.cols-1)), max(0, min(r, m.rows-1))
}

// Intersect implements Surface.
func (m *Mesh) Intersect(origin, dir mgl64.Vec3, maxDist float64) (Hit, bool) {
	if len(m.tris) == 0 {
		return Hit{}, false
	}
	tmin, tmax, ok := m.bounds.IntersectRay(origin, dir, maxDist)
	if !ok {
		return Hit{}, false
	}

	best := -1
	bestDist := maxDist
	test := func(i int32) {
		if d, ok := m.tris[i].intersect(origin, dir); ok && d <= bestDist {
			best, bestDist = int(i), d
		}
	}

	if dir.X() == 0 && dir.Z() == 0 {
		// Vertical probe: a single bucket holds every candidate.
		c, r := m.cellOf(origin.X(), origin.Z())
		for _, i := range m.buckets[r*m.cols+c] {
			test(i)
		}
	} else {
		// Walk only the part of the ray inside the bounds; maxDist may be +Inf.
		start := origin.Add(dir.Mul(math.Max(tmin, 0)))
		end := origin.Add(dir.Mul(math.Min(tmax, maxDist)))
		c0, r0 := m.cellOf(math.Min(start.X(), end.X()), math.Min(start.Z(), end.Z()))
		c1, r1 := m.cellOf(math.Max(start.X(), end.X()), math.Max(start.Z(), end.Z()))
		seen := make(map[int32]struct{})
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				for _, i := range m.buckets[r*m.cols+c] {
					if _, dup := seen[i]; dup {
						continue
					}
					seen[i] = struct{}{}
					test(i)
				}
			}
		}
	}

	if best < 0 {
		return Hit{}, false
	}

	normal := m.tris[best].Normal()
	if normal.Dot(dir) > 0 {
		normal = normal.Mul(-1)
	}
	return Hit{
		Distance:  bestDist,
		Point:     origin.Add(dir.Mul(bestDist)),
		Normal:    normal,
		SurfaceID: m.id,
	}, true
}
