package trace

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cgaueb/fakeIR/pkg/core"
)

func TestClusterSet_SingleSampleRoundTrip(t *testing.T) {
	cs := NewClusterSet(1.0)
	cs.Insert(Sample{
		Position:  core.NewVec3(1, 2, 3),
		Direction: core.NewVec3(0, 1, 0),
		Color:     core.NewVec3(0.5, 0.25, 0.125),
		Intensity: 1,
		Range:     4,
	})

	samples := cs.Samples()
	if len(samples) != 1 {
		t.Fatalf("expected 1 cluster, got %d", len(samples))
	}
	s := samples[0]
	if s.Population != 1 {
		t.Errorf("population = %d, want 1", s.Population)
	}
	if s.Position != core.NewVec3(1, 2, 3) {
		t.Errorf("position = %v, want (1,2,3)", s.Position)
	}
	if s.Range != 4 {
		t.Errorf("range = %v, want 4", s.Range)
	}
}

func TestClusterSet_CongruentSamplesMerge(t *testing.T) {
	cs := NewClusterSet(1.0)
	up := core.NewVec3(0, 1, 0)

	cs.Insert(Sample{Position: core.NewVec3(0, 0, 0), Direction: up, Intensity: 1, Range: 2})
	cs.Insert(Sample{Position: core.NewVec3(0.5, 0, 0), Direction: up, Intensity: 3, Range: 4})

	samples := cs.Samples()
	if len(samples) != 1 {
		t.Fatalf("expected 1 cluster after merge, got %d", len(samples))
	}
	s := samples[0]
	if s.Population != 2 {
		t.Errorf("population = %d, want 2", s.Population)
	}
	if math.Abs(s.Position.X-0.25) > 1e-12 {
		t.Errorf("merged X = %v, want 0.25", s.Position.X)
	}
	if math.Abs(s.Intensity-2) > 1e-12 {
		t.Errorf("merged intensity = %v, want 2", s.Intensity)
	}
	if math.Abs(s.Range-3) > 1e-12 {
		t.Errorf("merged range = %v, want 3", s.Range)
	}
}

func TestClusterSet_PopulationWeightedMean(t *testing.T) {
	// Three congruent samples must average equally regardless of order: the
	// third contributes 1/3, the existing pair 2/3.
	positions := []float64{0, 0.3, 0.6}
	orders := [][]int{{0, 1, 2}, {2, 0, 1}, {1, 2, 0}}

	for _, order := range orders {
		cs := NewClusterSet(2.0)
		for _, i := range order {
			cs.Insert(Sample{
				Position:  core.NewVec3(positions[i], 0, 0),
				Direction: core.NewVec3(0, 1, 0),
				Intensity: 1,
			})
		}
		samples := cs.Samples()
		if len(samples) != 1 {
			t.Fatalf("order %v: expected 1 cluster, got %d", order, len(samples))
		}
		if math.Abs(samples[0].Position.X-0.3) > 1e-12 {
			t.Errorf("order %v: mean X = %v, want 0.3", order, samples[0].Position.X)
		}
		if samples[0].Population != 3 {
			t.Errorf("order %v: population = %d, want 3", order, samples[0].Population)
		}
	}
}

func TestClusterSet_DivergentDirectionsStaySeparate(t *testing.T) {
	cs := NewClusterSet(10.0)

	// Same position, normals 90° apart: no merge despite positional congruence
	cs.Insert(Sample{Position: core.NewVec3(0, 0, 0), Direction: core.NewVec3(0, 1, 0)})
	cs.Insert(Sample{Position: core.NewVec3(0, 0, 0), Direction: core.NewVec3(1, 0, 0)})

	if cs.Len() != 2 {
		t.Errorf("expected 2 clusters for perpendicular normals, got %d", cs.Len())
	}
}

func TestClusterSet_NearbyDirectionsMerge(t *testing.T) {
	cs := NewClusterSet(10.0)

	// Normals ~30° apart are within the 45° tolerance
	a := core.NewVec3(0, 1, 0)
	b := core.NewVec3(0.5, math.Sqrt(3)/2, 0)
	cs.Insert(Sample{Position: core.NewVec3(0, 0, 0), Direction: a})
	cs.Insert(Sample{Position: core.NewVec3(0, 0, 0), Direction: b})

	if cs.Len() != 1 {
		t.Fatalf("expected merge for 30-degree normals, got %d clusters", cs.Len())
	}
	dir := cs.Samples()[0].Direction
	if math.Abs(dir.Length()-1) > 1e-9 {
		t.Errorf("merged direction not renormalized: length = %v", dir.Length())
	}
}

func TestClusterSet_MergeAcrossOctantBoundary(t *testing.T) {
	cs := NewClusterSet(10.0)

	// First direction leans +X, second -X; the average crosses the octant
	// boundary and the cluster must still be found by a third sample.
	cs.Insert(Sample{Position: core.NewVec3(0, 0, 0), Direction: core.NewVec3(0.2, 1, 0).Normalize()})
	cs.Insert(Sample{Position: core.NewVec3(0, 0, 0), Direction: core.NewVec3(-0.6, 1, 0).Normalize()})
	cs.Insert(Sample{Position: core.NewVec3(0, 0, 0), Direction: core.NewVec3(-0.3, 1, 0).Normalize()})

	if cs.Len() != 1 {
		t.Errorf("expected a single cluster after re-bucketing, got %d", cs.Len())
	}
	if cs.Samples()[0].Population != 3 {
		t.Errorf("population = %d, want 3", cs.Samples()[0].Population)
	}
}

func TestClusterSet_FilterReducesToMax(t *testing.T) {
	cs := NewClusterSet(0.01)
	for i := 0; i < 50; i++ {
		cs.Insert(Sample{
			Position:  core.NewVec3(float64(i), 0, 0),
			Direction: core.NewVec3(0, 1, 0),
		})
	}
	if cs.Len() != 50 {
		t.Fatalf("setup: expected 50 clusters, got %d", cs.Len())
	}

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(7)))
	cs.Filter(10, sampler)

	if cs.Len() != 10 {
		t.Errorf("filtered count = %d, want 10", cs.Len())
	}

	// Survivors must still be findable for future merges
	survivors := cs.Samples()
	cs.Insert(Sample{Position: survivors[0].Position, Direction: core.NewVec3(0, 1, 0)})
	if cs.Len() != 10 {
		t.Errorf("post-filter merge failed: count = %d, want 10", cs.Len())
	}
}

func TestClusterSet_FilterBelowMaxIsNoop(t *testing.T) {
	cs := NewClusterSet(0.01)
	cs.Insert(Sample{Position: core.NewVec3(0, 0, 0), Direction: core.NewVec3(0, 1, 0)})

	sampler := core.NewRandomSampler(rand.New(rand.NewSource(1)))
	cs.Filter(5, sampler)

	if cs.Len() != 1 {
		t.Errorf("count = %d, want 1", cs.Len())
	}
}

func TestSample_ToCSV(t *testing.T) {
	s := Sample{
		Position:   core.NewVec3(1, 2, 3),
		Direction:  core.NewVec3(0, 1, 0),
		Color:      core.NewVec3(0.9, 0.8, 0.7),
		Intensity:  1.5,
		Range:      6,
		Population: 4,
	}
	row := s.ToCSV()
	if row.PosZ != 3 || row.DirY != 1 || row.ColorB != 0.7 {
		t.Errorf("unexpected CSV row: %+v", row)
	}
	if row.Intensity != 1.5 || row.Range != 6 || row.Population != 4 {
		t.Errorf("unexpected CSV scalars: %+v", row)
	}
}
