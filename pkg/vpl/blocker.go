package vpl

import (
	"math"

	"github.com/cgaueb/fakeIR/pkg/core"
)

// blockerEpsilon avoids division by zero for zero-radius blockers
const blockerEpsilon = 1e-4

// Blocker is a spherical volume that suppresses a source's contribution to a
// VPL when positioned between them.
type Blocker struct {
	Center core.Vec3 // Sphere center
	Range  float64   // Sphere radius
}

// Attenuation returns the suppression factor in [0,1] for light travelling the
// segment between endpointA and endpointB. 1 means no suppression; the factor
// shrinks as the segment passes closer to the blocker center relative to its
// radius. Composition over multiple blockers is multiplicative and
// order-independent.
func (b Blocker) Attenuation(endpointA, endpointB core.Vec3) float64 {
	distSq := core.SegmentDistanceSquared(b.Center, endpointA, endpointB)
	return math.Min(1, distSq/(blockerEpsilon+b.Range*b.Range))
}
