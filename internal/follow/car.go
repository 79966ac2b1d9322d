// Package follow drives a kinematic car around a waypoint loop.
package follow

import (
	"math"

	"waypoint-sampler/internal/common"
	"waypoint-sampler/internal/track"
)

// Config holds the car limits. Units are world units and radians per tick.
type Config struct {
	MaxSpeed     float64
	Acceleration float64
	Braking      float64
	TurnRate     float64
	ReachRadius  float64 // Distance at which a target counts as passed
	MinCornering float64 // Fraction of MaxSpeed kept through sharp turns
}

// DefaultConfig suits image tracks at one world unit per pixel.
func DefaultConfig() Config {
	return Config{
		MaxSpeed:     4.0,
		Acceleration: 0.1,
		Braking:      0.3,
		TurnRate:     0.08,
		ReachRadius:  12.0,
		MinCornering: 0.3,
	}
}

// Scaled converts a per-pixel config to a track drawn at s world units per
// pixel.
func (c Config) Scaled(s float64) Config {
	c.MaxSpeed *= s
	c.Acceleration *= s
	c.Braking *= s
	c.ReachRadius *= s
	return c
}

// Car is a kinematic follower of a waypoint loop.
type Car struct {
	Config

	Position common.Vec2
	Height   float64
	Heading  float64 // Radians
	Speed    float64

	// Race State
	Target       int // Index of the waypoint being steered to
	Laps         int
	Ticks        int // Ticks in the current lap
	LastLapTicks int
	BestLapTicks int
}

// NewCar places a car on waypoint start, facing the next waypoint.
func NewCar(path *track.Path, start int, cfg Config) *Car {
	c := &Car{Config: cfg, Target: -1}
	if path.Len() == 0 {
		return c
	}
	start = ((start % path.Len()) + path.Len()) % path.Len()

	wp := path.Waypoints[start]
	c.Position = common.FromXZ(wp.Position)
	c.Height = wp.Position.Y()
	c.Target = path.Next(start)

	next := common.FromXZ(path.Waypoints[c.Target].Position)
	c.Heading = next.Sub(c.Position).Angle()
	return c
}

// Update advances the car one tick along path. Lap counting uses waypoint 0
// as the start/finish line.
func (c *Car) Update(path *track.Path) {
	if path.Len() == 0 || c.Target < 0 {
		return
	}
	if c.Target >= path.Len() {
		// The path was regenerated with fewer waypoints.
		_, idx := path.GetClosestWaypoint(c.Position.XZ(c.Height))
		c.Target = path.Next(idx)
	}
	c.Ticks++

	target := path.Waypoints[c.Target]
	toTarget := common.FromXZ(target.Position).Sub(c.Position)

	// 1. Steering, capped by the turn rate
	diff := common.WrapAngle(toTarget.Angle() - c.Heading)
	c.Heading = common.WrapAngle(c.Heading + math.Max(-c.TurnRate, math.Min(c.TurnRate, diff)))

	// 2. Throttle towards a cornering speed that drops with the heading error
	want := c.MaxSpeed * math.Max(c.MinCornering, math.Cos(diff))
	if c.Speed < want {
		c.Speed = math.Min(want, c.Speed+c.Acceleration)
	} else {
		c.Speed = math.Max(want, c.Speed-c.Braking)
	}

	// 3. Move, following the surface height of the target
	c.Position = c.Position.Add(common.FromAngle(c.Heading).Scale(c.Speed))
	c.Height += (target.Position.Y() - c.Height) * 0.1

	// 4. Advance the target once it is in reach
	if common.FromXZ(target.Position).Sub(c.Position).Len() > c.ReachRadius {
		return
	}
	if c.Target == 0 {
		c.completeLap()
	}
	c.Target = path.Next(c.Target)
}

func (c *Car) completeLap() {
	c.Laps++
	c.LastLapTicks = c.Ticks
	if c.BestLapTicks == 0 || c.Ticks < c.BestLapTicks {
		c.BestLapTicks = c.Ticks
	}
	c.Ticks = 0
}

// Progress returns the distance travelled along the loop in the current lap,
// measured at the last passed waypoint.
func (c *Car) Progress(path *track.Path) float64 {
	if path.Len() == 0 || c.Target < 0 || c.Target >= path.Len() {
		return 0
	}
	prev := (c.Target - 1 + path.Len()) % path.Len()
	return path.Distances[prev]
}
