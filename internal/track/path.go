package track

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/cnkei/gospline"
	"github.com/go-gl/mathgl/mgl64"

	"waypoint-sampler/internal/sampler"
)

var _ sampler.Sink = (*Path)(nil)

// Path is the closed loop of waypoints produced by the sampler. It is a
// sampler.Sink: every run replaces the previous loop.
type Path struct {
	Waypoints []sampler.Waypoint
	Distances []float64 // Distance from waypoint 0 along the loop (s-coordinate)
}

// Reset discards the current loop. Slices handed out before the reset keep
// their contents.
func (p *Path) Reset() {
	p.Waypoints, p.Distances = nil, nil
}

// Emit appends a waypoint to the loop.
func (p *Path) Emit(wp sampler.Waypoint) {
	d := 0.0
	if n := len(p.Waypoints); n > 0 {
		d = p.Distances[n-1] + wp.Position.Sub(p.Waypoints[n-1].Position).Len()
	}
	p.Waypoints = append(p.Waypoints, wp)
	p.Distances = append(p.Distances, d)
}

// Len returns the number of waypoints.
func (p *Path) Len() int { return len(p.Waypoints) }

// Next returns the index after i, wrapping around the loop.
func (p *Path) Next(i int) int {
	if len(p.Waypoints) == 0 {
		return -1
	}
	return (i + 1) % len(p.Waypoints)
}

// Length returns the length of the closed loop, including the segment from
// the last waypoint back to the first.
func (p *Path) Length() float64 {
	n := len(p.Waypoints)
	if n < 2 {
		return 0
	}
	return p.Distances[n-1] + p.Waypoints[0].Position.Sub(p.Waypoints[n-1].Position).Len()
}

// GetClosestWaypoint finds the waypoint closest to the given world position.
// Returns the waypoint and its index, or -1 for an empty path.
func (p *Path) GetClosestWaypoint(pos mgl64.Vec3) (sampler.Waypoint, int) {
	minDistSq := math.MaxFloat64
	closestIdx := -1

	for i, wp := range p.Waypoints {
		d := pos.Sub(wp.Position)
		if distSq := d.Dot(d); distSq < minDistSq {
			minDistSq = distSq
			closestIdx = i
		}
	}

	if closestIdx == -1 {
		return sampler.Waypoint{}, -1
	}
	return p.Waypoints[closestIdx], closestIdx
}

// Fingerprint hashes the waypoint positions and orientations. Two runs over
// the same surface with the same parameters produce the same fingerprint.
func (p *Path) Fingerprint() uint64 {
	h := xxhash.New()
	var buf [8]byte
	put := func(f float64) {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(f))
		_, _ = h.Write(buf[:])
	}
	for _, wp := range p.Waypoints {
		binary.LittleEndian.PutUint64(buf[:], uint64(wp.Index))
		_, _ = h.Write(buf[:])
		for _, f := range wp.Position {
			put(f)
		}
		put(wp.Orientation.W)
		for _, f := range wp.Orientation.V {
			put(f)
		}
	}
	return h.Sum64()
}

// Spline samples a smooth closed curve through the waypoints every step
// world units of loop distance. Paths too short to fit a cubic are returned
// as their raw positions.
func (p *Path) Spline(step float64) []mgl64.Vec3 {
	n := len(p.Waypoints)
	if n < 3 || step <= 0 {
		out := make([]mgl64.Vec3, n)
		for i, wp := range p.Waypoints {
			out[i] = wp.Position
		}
		return out
	}

	// Knots must be strictly increasing, so coincident waypoints are dropped.
	// The first waypoint is repeated at the end to close the loop.
	var s, xs, ys, zs []float64
	add := func(d float64, pos mgl64.Vec3) {
		if len(s) > 0 && d <= s[len(s)-1] {
			return
		}
		s = append(s, d)
		xs = append(xs, pos.X())
		ys = append(ys, pos.Y())
		zs = append(zs, pos.Z())
	}
	for i, wp := range p.Waypoints {
		add(p.Distances[i], wp.Position)
	}
	total := p.Length()
	add(total, p.Waypoints[0].Position)
	if len(s) < 4 {
		out := make([]mgl64.Vec3, len(s))
		for i := range s {
			out[i] = mgl64.Vec3{xs[i], ys[i], zs[i]}
		}
		return out
	}

	sx := gospline.NewCubicSpline(s, xs)
	sy := gospline.NewCubicSpline(s, ys)
	sz := gospline.NewCubicSpline(s, zs)

	end := s[len(s)-1]
	out := make([]mgl64.Vec3, 0, int(end/step)+1)
	for d := 0.0; d < end; d += step {
		out = append(out, mgl64.Vec3{sx.At(d), sy.At(d), sz.At(d)})
	}
	return out
}
