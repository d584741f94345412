// Package vpl approximates dynamic global illumination by modulating a sparse
// set of static virtual point lights (VPLs) from a real source light every frame.
package vpl

import (
	"github.com/cgaueb/fakeIR/pkg/core"
)

// LightKind identifies the emission model of a light
type LightKind string

const (
	LightDirectional LightKind = "directional"
	LightPoint       LightKind = "point"
	LightSpot        LightKind = "spot"
)

// SourceLight is the real light the VPL set bounces. The caller owns it and may
// move or recolor it between frames; the evaluator only reads it.
type SourceLight struct {
	Position  core.Vec3 // World-space position (unused for directional lights)
	Direction core.Vec3 // Normalized forward direction
	ConeAngle float64   // Cone half-angle in radians (spot lights only)
	Color     core.Vec3 // RGB emission color
	Intensity float64   // Scalar brightness
	Kind      LightKind
}

// VPLProxy is one user- or tool-placed bounce-light proxy. The evaluator
// toggles Enabled and overwrites Intensity/Color every frame; it never changes
// Position, Normal, Reflectance or Weight (unless automatic weighting is on,
// which rewrites Weight incrementally).
type VPLProxy struct {
	Position    core.Vec3 // Placement on the reflecting surface
	Normal      core.Vec3 // Surface normal the proxy re-emits around
	Reflectance core.Vec3 // Base surface color modulating the source color
	Weight      float64   // Importance weight, >= 0
	Kind        LightKind // Point (unoriented) or Spot (oriented)

	// Per-frame outputs
	Enabled   bool
	Intensity float64
	Color     core.Vec3
}

// Oriented reports whether the proxy has a meaningful forward normal, making
// it sensitive to the incoming light direction.
func (v *VPLProxy) Oriented() bool {
	return v.Kind == LightSpot
}

// Phantom is a transient VPL synthesized per frame rather than authored:
// the ray-cast primary phantom at the source axis hit, or the aggregate
// secondary-bounce phantom. It carries no persistent identity.
type Phantom struct {
	Position  core.Vec3
	Normal    core.Vec3
	Color     core.Vec3
	Intensity float64
	Enabled   bool
}
