package trace

import (
	"math"

	"github.com/cgaueb/fakeIR/pkg/core"
)

// directionTolerance is cos(45°): samples whose normals diverge more than 45°
// never merge, regardless of position.
var directionTolerance = math.Cos(math.Pi / 4)

// evictProbability is the chance a randomly inspected cluster is removed
// during population filtering
const evictProbability = 0.1

// Sample is one candidate VPL produced by path tracing, or the population-
// weighted average of several congruent candidates.
type Sample struct {
	Position   core.Vec3
	Direction  core.Vec3
	Color      core.Vec3
	Intensity  float64
	Range      float64
	Population int
}

// ClusterSet deduplicates VPL samples by approximate congruence: two samples
// are equivalent iff their squared positional distance is below spacing² and
// their direction dot-product exceeds cos(45°). Lookup is bucketed by a coarse
// quantization of the direction vector (its octant), with a linear position
// scan inside the bucket.
type ClusterSet struct {
	spacingSq float64
	buckets   map[int][]*Sample
	clusters  []*Sample
}

// NewClusterSet creates an empty cluster set with the given positional
// spacing threshold
func NewClusterSet(spacing float64) *ClusterSet {
	return &ClusterSet{
		spacingSq: spacing * spacing,
		buckets:   make(map[int][]*Sample),
	}
}

// octant quantizes a direction into one of 8 sign-based buckets
func octant(d core.Vec3) int {
	key := 0
	if d.X >= 0 {
		key |= 1
	}
	if d.Y >= 0 {
		key |= 2
	}
	if d.Z >= 0 {
		key |= 4
	}
	return key
}

// Len returns the number of clusters
func (cs *ClusterSet) Len() int {
	return len(cs.clusters)
}

// Insert folds a new sample into the set: congruent samples merge into their
// population-weighted average, others start a new cluster with population 1.
// Merging re-weights old vs. new by population count, so the converged mean is
// independent of arrival order up to floating-point rounding.
func (cs *ClusterSet) Insert(s Sample) {
	if s.Population < 1 {
		s.Population = 1
	}

	key := octant(s.Direction)
	for _, c := range cs.buckets[key] {
		if c.Position.Subtract(s.Position).LengthSquared() >= cs.spacingSq {
			continue
		}
		if c.Direction.Dot(s.Direction) <= directionTolerance {
			continue
		}
		cs.merge(c, s, key)
		return
	}

	cluster := &Sample{
		Position:   s.Position,
		Direction:  s.Direction,
		Color:      s.Color,
		Intensity:  s.Intensity,
		Range:      s.Range,
		Population: 1,
	}
	cs.buckets[key] = append(cs.buckets[key], cluster)
	cs.clusters = append(cs.clusters, cluster)
}

// merge averages the incoming sample into an existing cluster
func (cs *ClusterSet) merge(c *Sample, s Sample, key int) {
	oldW := float64(c.Population) / float64(c.Population+1)
	newW := 1.0 / float64(c.Population+1)

	c.Position = c.Position.Multiply(oldW).Add(s.Position.Multiply(newW))
	c.Direction = c.Direction.Multiply(oldW).Add(s.Direction.Multiply(newW)).Normalize()
	c.Color = c.Color.Multiply(oldW).Add(s.Color.Multiply(newW))
	c.Intensity = c.Intensity*oldW + s.Intensity*newW
	c.Range = c.Range*oldW + s.Range*newW
	c.Population++

	// The averaged direction can cross an octant boundary; re-bucket so later
	// congruent samples still find the cluster
	newKey := octant(c.Direction)
	if newKey != key {
		cs.buckets[key] = removeCluster(cs.buckets[key], c)
		cs.buckets[newKey] = append(cs.buckets[newKey], c)
	}
}

// Filter thins the set down to at most max clusters by repeatedly inspecting
// a uniformly random cluster and evicting it with fixed probability. Survivors
// are a uniform random subset, not a quality ranking.
func (cs *ClusterSet) Filter(max int, sampler core.Sampler) {
	if max < 0 {
		max = 0
	}
	for len(cs.clusters) > max {
		idx := int(sampler.Get1D() * float64(len(cs.clusters)))
		if idx >= len(cs.clusters) {
			idx = len(cs.clusters) - 1
		}
		if sampler.Get1D() >= evictProbability {
			continue
		}
		victim := cs.clusters[idx]
		key := octant(victim.Direction)
		cs.buckets[key] = removeCluster(cs.buckets[key], victim)
		cs.clusters[idx] = cs.clusters[len(cs.clusters)-1]
		cs.clusters = cs.clusters[:len(cs.clusters)-1]
	}
}

// Samples returns a copy of the current clusters
func (cs *ClusterSet) Samples() []Sample {
	out := make([]Sample, len(cs.clusters))
	for i, c := range cs.clusters {
		out[i] = *c
	}
	return out
}

// removeCluster removes one cluster pointer from a bucket slice
func removeCluster(bucket []*Sample, target *Sample) []*Sample {
	for i, c := range bucket {
		if c == target {
			bucket[i] = bucket[len(bucket)-1]
			return bucket[:len(bucket)-1]
		}
	}
	return bucket
}
