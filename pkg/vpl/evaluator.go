package vpl

import (
	"fmt"
	"math"

	"github.com/cgaueb/fakeIR/pkg/core"
	"github.com/cgaueb/fakeIR/pkg/material"
)

const (
	// minIntensity culls VPL contributions too dim to matter this frame
	minIntensity = 0.01

	// directionalSourceDistance synthesizes a far endpoint for blocker tests
	// against directional sources, which have no position.
	directionalSourceDistance = 1000.0

	// secondaryWeightEpsilon keeps the secondary aggregate well-defined when
	// every VPL is culled.
	secondaryWeightEpsilon = 0.001

	// phantomInterpEpsilon floors the inverse-square interpolation weights
	// used to gather reflectance around the phantom hit point.
	phantomInterpEpsilon = 0.005

	// sourceIntensityEpsilon guards the bounce-weight division for a source
	// dimmed to zero.
	sourceIntensityEpsilon = 1e-6
)

// Raycaster is the scene-intersection primitive the ray-cast mode consumes.
// Implementations return the closest hit along the ray, if any.
type Raycaster interface {
	Raycast(origin, direction core.Vec3) (*material.HitRecord, bool)
}

// Evaluator recomputes VPL intensity, color and enable state every rendered
// frame from one source light, a fixed VPL list and optional blockers. It owns
// no VPLs: the lists are injected and shared, and only the per-frame output
// fields are mutated. Not safe for concurrent use; frames are strictly
// sequential.
type Evaluator struct {
	source   *SourceLight
	vpls     []*VPLProxy
	blockers []Blocker
	scene    Raycaster
	cfg      Config
	logger   core.Logger

	// Amortized weighting cursor, persistent across frames
	current        int
	other          int
	minDistSq      float64
	minDistSqValid bool

	// Ray-cast phantom state, smoothed across frames
	raycastEnabled bool
	phantom        Phantom
	secondary      Phantom
	lastHitT       float64
}

// NewEvaluator creates an evaluator bound to one source light and an injected
// VPL/blocker set. A nil source is a precondition violation. Requesting
// ray-casting for a non-spot source (or without a raycaster) is recoverable:
// the mode is disabled with a diagnostic and evaluation proceeds directly.
func NewEvaluator(source *SourceLight, vpls []*VPLProxy, blockers []Blocker, scene Raycaster, cfg Config, logger core.Logger) (*Evaluator, error) {
	if source == nil {
		return nil, fmt.Errorf("vpl: evaluator requires a source light")
	}

	e := &Evaluator{
		source:   source,
		vpls:     vpls,
		blockers: blockers,
		scene:    scene,
		cfg:      cfg.normalized(),
		logger:   logger,
	}

	e.raycastEnabled = cfg.UseRaycasting
	if e.raycastEnabled && source.Kind != LightSpot {
		e.raycastEnabled = false
		if logger != nil {
			logger.Printf("vpl: ray-casting requires a spot source, got %s; falling back to direct evaluation", source.Kind)
		}
	}
	if e.raycastEnabled && scene == nil {
		e.raycastEnabled = false
		if logger != nil {
			logger.Printf("vpl: ray-casting requested without a raycaster; falling back to direct evaluation")
		}
	}

	return e, nil
}

// IndirectShadows reports the opaque shadow flag for the host light bridge
func (e *Evaluator) IndirectShadows() bool {
	return e.cfg.UseIndirectShadows
}

// Phantom returns the ray-cast phantom VPL state after the last frame
func (e *Evaluator) Phantom() Phantom {
	return e.phantom
}

// SecondaryPhantom returns the secondary-bounce phantom state after the last frame
func (e *Evaluator) SecondaryPhantom() Phantom {
	return e.secondary
}

// Evaluate runs one frame: it reads the source light's current pose, color and
// intensity, and rewrites every VPL's enable state, intensity and color.
func (e *Evaluator) Evaluate() {
	if e.cfg.AutomaticWeights {
		e.advanceWeightSchedule()
	}
	if e.raycastEnabled {
		e.evaluateRaycast()
		return
	}
	e.evaluateDirect()
}

// evaluateDirect is the per-VPL recompute without scene queries
func (e *Evaluator) evaluateDirect() {
	src := e.source
	cosCone := math.Cos(src.ConeAngle)

	// Secondary-bounce accumulators, weighted by relative contribution
	var posAcc, dirAcc, colAcc core.Vec3
	var bounceAcc, weightAcc float64

	for _, v := range e.vpls {
		toVPL := e.directionToVPL(v)

		intensity := src.Intensity * e.weight(v)

		if src.Kind == LightSpot {
			intensity *= core.SpotFalloff(toVPL.Dot(src.Direction), cosCone)
		}

		if src.Kind != LightDirectional {
			d := v.Position.Subtract(src.Position).Length() / e.cfg.DistanceScale
			intensity *= core.DistanceFalloff(d)
		}

		if v.Oriented() {
			intensity *= core.Lambert(toVPL, v.Normal)
		}

		srcEndpoint := e.sourceEndpoint(v)
		for _, b := range e.blockers {
			intensity *= b.Attenuation(v.Position, srcEndpoint)
		}

		color := src.Color.MultiplyVec(v.Reflectance)
		if intensity <= minIntensity {
			v.Enabled = false
			v.Intensity = 0
		} else {
			v.Enabled = true
			v.Intensity = intensity
			v.Color = color
		}

		if e.cfg.SecondaryBounce {
			w := intensity / math.Max(src.Intensity, sourceIntensityEpsilon)
			weightAcc += w
			posAcc = posAcc.Add(v.Position.Multiply(w))
			dirAcc = dirAcc.Add(v.Normal.Negate().Multiply(w))
			colAcc = colAcc.Add(color.Multiply(w))
			bounceAcc += w * e.cfg.AvgReflectance * intensity
		}
	}

	if e.cfg.SecondaryBounce {
		e.commitDirectSecondary(posAcc, dirAcc, colAcc, bounceAcc, weightAcc)
	} else {
		e.secondary.Enabled = false
	}
}

// commitDirectSecondary folds the per-VPL aggregates into the secondary phantom
func (e *Evaluator) commitDirectSecondary(posAcc, dirAcc, colAcc core.Vec3, bounceAcc, weightAcc float64) {
	weightAcc += secondaryWeightEpsilon

	d := e.cfg.AvgSecondaryDistance / e.cfg.DistanceScale
	centroid := posAcc.Multiply(1 / weightAcc)

	e.secondary.Position = centroid.Subtract(e.source.Direction.Multiply(e.cfg.AvgSecondaryDistance))
	e.secondary.Normal = dirAcc.Normalize()
	e.secondary.Color = colAcc.Multiply(1 / weightAcc)
	e.secondary.Intensity = bounceAcc / (weightAcc * d * d)
	e.secondary.Enabled = e.secondary.Intensity > minIntensity
}

// evaluateRaycast synthesizes a phantom VPL where the source axis meets scene
// geometry, interpolating reflectance and orientation from the declared VPLs.
func (e *Evaluator) evaluateRaycast() {
	src := e.source

	hit, ok := e.scene.Raycast(src.Position, src.Direction)
	if !ok {
		// Expected outcome, not an error: nothing bounces this frame
		e.phantom.Enabled = false
		e.secondary.Enabled = false
		return
	}

	d := hit.T / e.cfg.DistanceScale
	baseIntensity := src.Intensity * core.DistanceFalloff(d)

	// Exponential-like smoothing damps jitter from a moving source
	if e.phantom.Position.IsZero() {
		e.phantom.Position = hit.Point
	} else {
		e.phantom.Position = e.phantom.Position.Add(hit.Point).Multiply(0.5)
	}

	var colAcc, normAcc core.Vec3
	var areaAcc, weightAcc float64

	for _, v := range e.vpls {
		dv := v.Position.Subtract(e.phantom.Position).Length() / e.cfg.DistanceScale
		w := 1.0 / (phantomInterpEpsilon + dv*dv)

		colAcc = colAcc.Add(v.Reflectance.Multiply(w))
		normal := src.Direction.Negate()
		if v.Oriented() {
			normal = v.Normal
		}
		normAcc = normAcc.Add(normal.Multiply(w))
		areaAcc += v.Weight * w
		weightAcc += w
	}
	weightAcc += secondaryWeightEpsilon

	interpNormal := normAcc.Normalize()
	if e.phantom.Normal.IsZero() {
		e.phantom.Normal = interpNormal
	} else {
		e.phantom.Normal = e.phantom.Normal.Add(interpNormal).Multiply(0.5).Normalize()
	}

	areaFactor := areaAcc / weightAcc
	e.phantom.Color = colAcc.MultiplyVec(src.Color).Multiply(1 / weightAcc)
	e.phantom.Intensity = baseIntensity * core.Lambert(src.Direction, e.phantom.Normal) * areaFactor
	e.phantom.Enabled = true

	if e.cfg.SecondaryBounce {
		e.commitRaycastSecondary(hit)
	} else {
		e.secondary.Enabled = false
	}
	e.lastHitT = hit.T
}

// commitRaycastSecondary derives the second-order phantom behind the primary hit
func (e *Evaluator) commitRaycastSecondary(hit *material.HitRecord) {
	src := e.source

	// Blend the recorded and current hit distances to damp popping when the
	// source sweeps across depth discontinuities
	d := (0.5*e.lastHitT + hit.T) / e.cfg.DistanceScale

	e.secondary.Position = hit.Point.Add(src.Direction.Multiply(e.cfg.AvgSecondaryDistance))
	e.secondary.Normal = e.phantom.Normal.Negate()
	e.secondary.Color = e.phantom.Color
	e.secondary.Intensity = e.cfg.AvgReflectance * e.phantom.Intensity / (1 + d*d)
	e.secondary.Enabled = e.secondary.Intensity > minIntensity
}

// directionToVPL returns the light travel direction toward one VPL
func (e *Evaluator) directionToVPL(v *VPLProxy) core.Vec3 {
	if e.source.Kind == LightDirectional {
		return e.source.Direction
	}
	return v.Position.Subtract(e.source.Position).Normalize()
}

// sourceEndpoint returns the effective source position for blocker tests;
// directional sources get a synthetic far point upstream of the VPL.
func (e *Evaluator) sourceEndpoint(v *VPLProxy) core.Vec3 {
	if e.source.Kind == LightDirectional {
		return v.Position.Subtract(e.source.Direction.Multiply(directionalSourceDistance))
	}
	return e.source.Position
}
