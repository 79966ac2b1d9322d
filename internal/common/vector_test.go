package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{math.Pi / 2, math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{2*math.Pi + 0.5, 0.5},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, WrapAngle(tt.in), 1e-9, "WrapAngle(%v)", tt.in)
	}
}

func TestGroundPlane(t *testing.T) {
	v := FromXZ(mgl64.Vec3{3, 7, 4})
	assert.Equal(t, Vec2{3, 4}, v)
	assert.Equal(t, 5.0, v.Len())
	assert.Equal(t, mgl64.Vec3{3, 1, 4}, v.XZ(1))
	assert.InDelta(t, 1, v.Normalize().Len(), 1e-12)
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())

	d := FromAngle(math.Pi / 2)
	assert.InDelta(t, 0, d.X, 1e-12)
	assert.InDelta(t, 1, d.Y, 1e-12)
	assert.InDelta(t, math.Pi/2, d.Angle(), 1e-12)
}
