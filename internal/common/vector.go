package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec2 represents a 2D vector on the ground plane. X maps to world X and Y
// maps to world Z.
type Vec2 struct {
	X, Y float64
}

// FromXZ projects a world position onto the ground plane.
func FromXZ(v mgl64.Vec3) Vec2 {
	return Vec2{v.X(), v.Z()}
}

// FromAngle returns the unit vector at angle radians from +X.
func FromAngle(angle float64) Vec2 {
	return Vec2{math.Cos(angle), math.Sin(angle)}
}

// XZ lifts the vector back into world space at height y.
func (v Vec2) XZ(y float64) mgl64.Vec3 {
	return mgl64.Vec3{v.X, y, v.Y}
}

// Add adds two vectors.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub subtracts other from v.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale multiplies the vector by a scalar.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Len returns the length (magnitude) of the vector.
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Angle returns the heading of the vector in radians.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Normalize returns a unit vector in the same direction.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return v.Scale(1 / l)
}

// WrapAngle normalizes an angle to [-Pi, Pi).
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
