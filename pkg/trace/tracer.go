// Package trace discovers candidate VPL placements by firing stochastic light
// paths through the scene and clustering nearby hits. It runs as one
// synchronous offline batch, never alongside the per-frame evaluator.
package trace

import (
	"fmt"

	"github.com/cgaueb/fakeIR/pkg/core"
	"github.com/cgaueb/fakeIR/pkg/material"
)

// defaultSurfaceColor stands in for surfaces with no material data
var defaultSurfaceColor = core.NewVec3(0.9, 0.9, 0.9)

// feelerAttemptFactor bounds the exploration-point search so hit-free scenes
// terminate instead of feeling around forever.
const feelerAttemptFactor = 16

// Raycaster is the scene-intersection primitive the generator consumes
type Raycaster interface {
	Raycast(origin, direction core.Vec3) (*material.HitRecord, bool)
}

// ColliderScope is the host hook for the forced mesh-collision mode: colliders
// are attached for the duration of one generation pass and detached after.
type ColliderScope interface {
	AttachColliders()
	DetachColliders()
}

// Config controls one generation pass
type Config struct {
	// Spacing is the positional congruence threshold for clustering.
	Spacing float64 `yaml:"spacing"`

	// MaxVPLs bounds the cluster count after filtering.
	MaxVPLs int `yaml:"max_vpls"`

	// MaxTraceLevel is the path recursion depth limit.
	MaxTraceLevel int `yaml:"max_trace_level"`

	// Offset nudges path continuations off the hit surface along its normal.
	Offset float64 `yaml:"offset"`

	// UseMeshCollisions attaches temporary host colliders around the pass.
	UseMeshCollisions bool `yaml:"use_mesh_collisions"`

	// ExplorationPoints is the size of the diversified starting-point pool.
	ExplorationPoints int `yaml:"exploration_points"`

	// Rays is the number of paths traced from each exploration point.
	Rays int `yaml:"rays"`
}

// DefaultConfig returns generation settings suitable for room-scale scenes
func DefaultConfig() Config {
	return Config{
		Spacing:           1.0,
		MaxVPLs:           64,
		MaxTraceLevel:     4,
		Offset:            0.01,
		ExplorationPoints: 8,
		Rays:              32,
	}
}

// normalized returns the config with degenerate values replaced by defaults
func (c Config) normalized() Config {
	d := DefaultConfig()
	if c.Spacing <= 0 {
		c.Spacing = d.Spacing
	}
	if c.MaxVPLs <= 0 {
		c.MaxVPLs = d.MaxVPLs
	}
	if c.MaxTraceLevel <= 0 {
		c.MaxTraceLevel = d.MaxTraceLevel
	}
	if c.Offset <= 0 {
		c.Offset = d.Offset
	}
	if c.ExplorationPoints <= 0 {
		c.ExplorationPoints = d.ExplorationPoints
	}
	if c.Rays <= 0 {
		c.Rays = d.Rays
	}
	return c
}

// Tracer runs the offline VPL generation pass
type Tracer struct {
	scene     Raycaster
	colliders ColliderScope
	cfg       Config
	sampler   core.Sampler
	logger    core.Logger
}

// NewTracer creates a generation pass over the given scene. A nil scene or
// sampler is a precondition violation.
func NewTracer(scene Raycaster, cfg Config, sampler core.Sampler, logger core.Logger) (*Tracer, error) {
	if scene == nil {
		return nil, fmt.Errorf("trace: tracer requires a scene")
	}
	if sampler == nil {
		return nil, fmt.Errorf("trace: tracer requires a sampler")
	}
	return &Tracer{
		scene:   scene,
		cfg:     cfg.normalized(),
		sampler: sampler,
		logger:  logger,
	}, nil
}

// SetColliderScope attaches the host's temporary-collider hook, honoured when
// use_mesh_collisions is set
func (t *Tracer) SetColliderScope(scope ColliderScope) {
	t.colliders = scope
}

// Generate traces stochastic light paths from a pool of exploration points
// seeded at the given position, clustering every surface hit into candidate
// VPL samples. Zero scene hits yield an empty, valid result. The pass is
// synchronous and runs to completion; it is not frame-rate constrained.
func (t *Tracer) Generate(seed core.Vec3) ([]Sample, error) {
	if t.cfg.UseMeshCollisions && t.colliders != nil {
		t.colliders.AttachColliders()
		defer t.colliders.DetachColliders()
	}

	clusters := NewClusterSet(t.cfg.Spacing)

	points := t.explorationPoints(seed)
	for _, p := range points {
		for i := 0; i < t.cfg.Rays; i++ {
			dir := core.SampleOnUnitSphere(t.sampler.Get2D())
			t.tracePath(clusters, p, dir)
		}
	}

	if t.logger != nil {
		t.logger.Printf("trace: %d clusters from %d exploration points before filtering", clusters.Len(), len(points))
	}

	clusters.Filter(t.cfg.MaxVPLs, t.sampler)
	return clusters.Samples(), nil
}

// explorationPoints diversifies the seed into a small pool of path-trace
// starting positions by firing feeler rays from already-accepted points and
// moving partway along them.
func (t *Tracer) explorationPoints(seed core.Vec3) []core.Vec3 {
	points := []core.Vec3{seed}

	attempts := t.cfg.ExplorationPoints * feelerAttemptFactor
	for len(points) < t.cfg.ExplorationPoints && attempts > 0 {
		attempts--

		base := points[int(t.sampler.Get1D()*float64(len(points)))%len(points)]
		dir := core.SampleOnUnitSphere(t.sampler.Get2D())

		hit, ok := t.scene.Raycast(base, dir)
		if !ok {
			continue
		}
		// Halfway to the hit keeps the new point in open space
		points = append(points, base.Add(dir.Multiply(hit.T*0.5)))
	}

	return points
}

// pathStep is one pending branch of the depth-bounded trace. An explicit
// worklist replaces recursion so deep trace levels cannot exhaust the stack.
type pathStep struct {
	origin    core.Vec3
	direction core.Vec3
	depth     int
}

// tracePath follows one stochastic light path, inserting a candidate sample
// at every surface hit until the depth limit is exceeded
func (t *Tracer) tracePath(clusters *ClusterSet, origin, direction core.Vec3) {
	stack := []pathStep{{origin: origin, direction: direction, depth: 0}}

	for len(stack) > 0 {
		step := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if step.depth > t.cfg.MaxTraceLevel {
			continue
		}

		hit, ok := t.scene.Raycast(step.origin, step.direction)
		if !ok {
			// Escaped the scene: this branch is done
			continue
		}

		clusters.Insert(t.candidate(hit))

		// Diffuse re-emission: uniform direction flipped into the hit's hemisphere
		next := core.SampleHemisphere(hit.Normal, t.sampler.Get2D())
		stack = append(stack, pathStep{
			origin:    hit.Point.Add(hit.Normal.Multiply(t.cfg.Offset)),
			direction: next,
			depth:     step.depth + 1,
		})
	}
}

// candidate builds a VPL sample from one surface hit
func (t *Tracer) candidate(hit *material.HitRecord) Sample {
	normal := hit.Normal
	if !hit.ShadingNormal.IsZero() {
		normal = hit.ShadingNormal
	}

	color := defaultSurfaceColor
	if hit.Material != nil {
		color = hit.Material.BaseColor(hit.UV, hit.Point)
	}

	return Sample{
		Position:   hit.Point,
		Direction:  normal,
		Color:      color,
		Intensity:  1,
		Range:      hit.T,
		Population: 1,
	}
}
