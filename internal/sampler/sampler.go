// Package sampler places waypoints along the centerline of a closed track by
// probing the track surface with vertical rays.
//
// For each of Count evenly spaced angles around the surface center, a radial
// scan casts probes at increasing radii and brackets the band of radii that
// land on the track. One more probe at the middle of that band gives the
// waypoint. Angles without a band, or whose confirmation probe misses, are
// skipped, so a run may return fewer waypoints than requested.
package sampler

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"waypoint-sampler/internal/geom"
)

// Surface is the track being sampled.
type Surface interface {
	ID() uuid.UUID
	Bounds() geom.AABB
}

// Probe casts a ray and reports the first surface it strikes, whichever
// surface that is.
type Probe interface {
	Cast(origin, dir mgl64.Vec3, maxDist float64) (geom.Hit, bool)
}

// ProbeFunc adapts a function to Probe.
type ProbeFunc func(origin, dir mgl64.Vec3, maxDist float64) (geom.Hit, bool)

func (f ProbeFunc) Cast(origin, dir mgl64.Vec3, maxDist float64) (geom.Hit, bool) {
	return f(origin, dir, maxDist)
}

// Sink receives the waypoints of a run. Reset is called once before the
// first Emit, so the sink always ends up holding exactly one run.
type Sink interface {
	Reset()
	Emit(wp Waypoint)
}

// Waypoint is a point on the track centerline.
type Waypoint struct {
	Index       int        // Angle index, 0..Count-1
	Angle       float64    // Radians from +X towards +Z
	Position    mgl64.Vec3 // Surface point under the band midpoint
	Forward     mgl64.Vec3 // Unit radial direction of the scan
	Orientation mgl64.Quat // Rotates +Z onto Forward
	Width       float64    // Radial extent of the hit band
}

// Result is the outcome of a run.
type Result struct {
	Waypoints []Waypoint
	Requested int
}

// Created returns the number of waypoints produced.
func (r Result) Created() int { return len(r.Waypoints) }

// Complete reports whether every requested angle produced a waypoint.
func (r Result) Complete() bool { return r.Created() == r.Requested }

// Sampler generates waypoints with fixed parameters.
type Sampler struct {
	Params Params
	Log    log.FieldLogger
}

// New returns a sampler logging to the standard logrus logger.
func New(params Params) *Sampler {
	return &Sampler{Params: params, Log: log.StandardLogger()}
}

// Generate runs the sampler with params and returns the waypoints.
func Generate(surface Surface, probe Probe, params Params) (Result, error) {
	return New(params).Generate(surface, probe)
}

// Generate samples surface through probe.
func (s *Sampler) Generate(surface Surface, probe Probe) (Result, error) {
	return s.GenerateInto(surface, probe, nil)
}

// GenerateInto samples surface through probe and streams the waypoints into
// sink, which may be nil. The sink is reset only once the inputs are valid.
func (s *Sampler) GenerateInto(surface Surface, probe Probe, sink Sink) (Result, error) {
	if err := s.check(surface, probe); err != nil {
		return Result{}, err
	}

	p := s.Params
	bounds := surface.Bounds()
	center := bounds.Center()
	ext := bounds.Extents()
	maxRadius := math.Max(ext.X(), ext.Z()) + p.Margin
	target := surface.ID()

	logger := s.logger().WithFields(log.Fields{
		"surface":   target,
		"requested": p.Count,
	})

	if sink != nil {
		sink.Reset()
	}

	res := Result{Requested: p.Count}
	for i := 0; i < p.Count; i++ {
		angle := 2 * math.Pi * float64(i) / float64(p.Count)
		dir := mgl64.Vec3{math.Cos(angle), 0, math.Sin(angle)}

		scan := s.scan(probe, target, center, dir, maxRadius)
		first, last, ok := scan.band()
		if !ok {
			logger.Debugf("angle %d: no surface band", i)
			continue
		}

		mid := float64(first+last) / 2
		rMid := maxRadius * mid / float64(p.RadialSamples)
		hit, ok := s.probeAt(probe, target, center, dir, rMid)
		if !ok {
			logger.Debugf("angle %d: confirmation probe missed at r=%.3f", i, rMid)
			continue
		}

		wp := Waypoint{
			Index:       i,
			Angle:       angle,
			Position:    hit.Point,
			Forward:     dir,
			Orientation: lookRotation(angle),
			Width:       maxRadius * float64(last-first) / float64(p.RadialSamples),
		}
		res.Waypoints = append(res.Waypoints, wp)
		if sink != nil {
			sink.Emit(wp)
		}
	}

	logger.WithField("created", res.Created()).
		Infof("created %d/%d waypoints", res.Created(), res.Requested)
	return res, nil
}

func (s *Sampler) check(surface Surface, probe Probe) error {
	if surface == nil {
		return &PreconditionError{Field: "surface", Reason: "is nil"}
	}
	if probe == nil {
		return &PreconditionError{Field: "probe", Reason: "is nil"}
	}
	if err := s.Params.Validate(); err != nil {
		return err
	}
	b := surface.Bounds()
	if b.Empty() {
		return &PreconditionError{Field: "surface", Reason: "has no bounding volume"}
	}
	for i := 0; i < 3; i++ {
		if math.IsNaN(b.Min[i]) || math.IsNaN(b.Max[i]) || math.IsInf(b.Min[i], 0) || math.IsInf(b.Max[i], 0) {
			return &PreconditionError{Field: "surface", Reason: "has a non-finite bounding volume"}
		}
	}
	return nil
}

func (s *Sampler) logger() log.FieldLogger {
	if s.Log == nil {
		return log.StandardLogger()
	}
	return s.Log
}

// radialScan records, for one direction, which sample radii hit the target.
type radialScan struct {
	hits []bool
}

func (s *Sampler) scan(probe Probe, target uuid.UUID, center, dir mgl64.Vec3, maxRadius float64) radialScan {
	n := s.Params.RadialSamples
	scan := radialScan{hits: make([]bool, n+1)}
	for j := 0; j <= n; j++ {
		r := maxRadius * float64(j) / float64(n)
		_, scan.hits[j] = s.probeAt(probe, target, center, dir, r)
	}
	return scan
}

// band returns the first and last sample indices that hit the target.
func (rs radialScan) band() (first, last int, ok bool) {
	first, last = -1, -1
	for j, hit := range rs.hits {
		if !hit {
			continue
		}
		if first < 0 {
			first = j
		}
		last = j
	}
	return first, last, first >= 0
}

// probeAt casts straight down from RayHeight above the point at radius r and
// only accepts hits on the target surface.
func (s *Sampler) probeAt(probe Probe, target uuid.UUID, center, dir mgl64.Vec3, r float64) (geom.Hit, bool) {
	h := s.Params.RayHeight
	origin := center.Add(dir.Mul(r)).Add(geom.Up.Mul(h))
	hit, ok := probe.Cast(origin, geom.Up.Mul(-1), 2*h)
	if !ok || hit.SurfaceID != target {
		return geom.Hit{}, false
	}
	return hit, true
}

// lookRotation turns +Z onto (cos angle, 0, sin angle) about the vertical axis.
func lookRotation(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(math.Pi/2-angle, geom.Up)
}
