package core

import "math"

// Epsilons guarding the radiometric divisions. Division-by-zero hazards are
// handled additively rather than with branches so the falloff curves stay smooth.
const (
	// DistanceFalloffFloor bounds brightness for receivers very close to the source.
	DistanceFalloffFloor = 0.1

	// segmentEpsilon guards degenerate (zero-length) segments in SegmentDistanceSquared.
	segmentEpsilon = 1e-12
)

// DistanceFalloff returns the inverse-square-like attenuation 1/(0.1+d²)
// for a receiver at scaled distance d from the source.
func DistanceFalloff(d float64) float64 {
	return 1.0 / (DistanceFalloffFloor + d*d)
}

// SpotFalloff returns the smooth angular attenuation for a spot cone:
// zero at or beyond the cone boundary, 1 on the axis, linear in cosine between.
// cosTheta is the cosine of the angle between the cone axis and the receiver
// direction, cosCone the cosine of the cone half-angle.
func SpotFalloff(cosTheta, cosCone float64) float64 {
	if cosCone >= 1 {
		// Degenerate zero-width cone: only the exact axis receives light
		if cosTheta >= 1 {
			return 1
		}
		return 0
	}
	return math.Max(0, (cosTheta-cosCone)/(1-cosCone))
}

// Lambert returns the cosine term max(0, dot(toSurface, -normal)) that rejects
// light arriving behind an oriented surface. toSurface points from the light
// toward the surface, normal is the surface forward direction.
func Lambert(toSurface, normal Vec3) float64 {
	return math.Max(0, toSurface.Dot(normal.Negate()))
}

// SegmentDistanceSquared returns the minimum squared distance from point to the
// line segment between a and b. The projection parameter is clamped to the
// segment, so points projecting outside it measure against the nearest endpoint.
func SegmentDistanceSquared(point, a, b Vec3) float64 {
	ab := b.Subtract(a)
	t := point.Subtract(a).Dot(ab) / (ab.LengthSquared() + segmentEpsilon)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	closest := a.Add(ab.Multiply(t))
	return point.Subtract(closest).LengthSquared()
}
