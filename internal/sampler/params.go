package sampler

import (
	"errors"
	"fmt"
	"math"
)

// Defaults match the values the waypoint tool has always shipped with.
const (
	DefaultCount         = 100
	DefaultRadialSamples = 50
	DefaultRayHeight     = 10.0
	DefaultMargin        = 1.0

	// MaxProbes caps the number of probes a single run may cast.
	MaxProbes = 1 << 24
)

// ErrPrecondition is wrapped by every PreconditionError.
var ErrPrecondition = errors.New("sampler: precondition violated")

// PreconditionError reports an input that makes sampling impossible. It is
// returned before any probe is cast.
type PreconditionError struct {
	Field  string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("sampler: invalid %s: %s", e.Field, e.Reason)
}

func (e *PreconditionError) Unwrap() error { return ErrPrecondition }

// Params controls a sampling run.
type Params struct {
	// Count is the number of evenly spaced angles to scan.
	Count int `yaml:"count"`
	// RadialSamples is the number of steps between the center and the
	// maximum radius. Higher is finer.
	RadialSamples int `yaml:"radial_samples"`
	// RayHeight is the height above the surface center that probes start
	// from. Probes reach 2*RayHeight down.
	RayHeight float64 `yaml:"ray_height"`
	// Margin is added to the largest planar extent to get the scan radius.
	Margin float64 `yaml:"margin"`
}

// DefaultParams returns the standard parameters.
func DefaultParams() Params {
	return Params{
		Count:         DefaultCount,
		RadialSamples: DefaultRadialSamples,
		RayHeight:     DefaultRayHeight,
		Margin:        DefaultMargin,
	}
}

// Validate checks the parameters without looking at any surface.
func (p Params) Validate() error {
	switch {
	case p.Count <= 0:
		return &PreconditionError{Field: "count", Reason: fmt.Sprintf("must be positive, got %d", p.Count)}
	case p.RadialSamples <= 0:
		return &PreconditionError{Field: "radial samples", Reason: fmt.Sprintf("must be positive, got %d", p.RadialSamples)}
	case !(p.RayHeight > 0) || math.IsInf(p.RayHeight, 1):
		return &PreconditionError{Field: "ray height", Reason: fmt.Sprintf("must be positive and finite, got %v", p.RayHeight)}
	case !(p.Margin >= 0) || math.IsInf(p.Margin, 1):
		return &PreconditionError{Field: "margin", Reason: fmt.Sprintf("must be non-negative and finite, got %v", p.Margin)}
	}

	// Each angle casts RadialSamples+1 scan probes and one confirmation probe.
	if p.RadialSamples >= MaxProbes || p.Count > MaxProbes/(p.RadialSamples+2) {
		return &PreconditionError{
			Field:  "count",
			Reason: fmt.Sprintf("%d angles x %d samples exceeds %d probes", p.Count, p.RadialSamples, MaxProbes),
		}
	}
	return nil
}
