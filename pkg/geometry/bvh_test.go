package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/cgaueb/fakeIR/pkg/core"
	"github.com/cgaueb/fakeIR/pkg/material"
)

func TestBVH_EmptyScene(t *testing.T) {
	bvh := NewBVH(nil)
	var hit material.HitRecord
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if bvh.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Error("empty BVH reported a hit")
	}
}

func TestBVH_MatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	var shapes []Shape
	for i := 0; i < 100; i++ {
		center := core.NewVec3(
			rng.Float64()*20-10,
			rng.Float64()*20-10,
			rng.Float64()*20-10,
		)
		shapes = append(shapes, NewSphere(center, 0.3+rng.Float64(), nil))
	}
	bvh := NewBVH(shapes)

	for i := 0; i < 200; i++ {
		origin := core.NewVec3(rng.Float64()*30-15, rng.Float64()*30-15, rng.Float64()*30-15)
		dir := core.SampleOnUnitSphere(core.NewVec2(rng.Float64(), rng.Float64()))
		ray := core.NewRay(origin, dir)

		// Brute-force closest hit
		var linear material.HitRecord
		linearHit := false
		closest := math.Inf(1)
		for _, s := range shapes {
			var h material.HitRecord
			if s.Hit(ray, 0.001, closest, &h) {
				linearHit = true
				closest = h.T
				linear = h
			}
		}

		var accel material.HitRecord
		accelHit := bvh.Hit(ray, 0.001, math.Inf(1), &accel)

		if accelHit != linearHit {
			t.Fatalf("ray %d: BVH hit=%v, linear hit=%v", i, accelHit, linearHit)
		}
		if accelHit && math.Abs(accel.T-linear.T) > 1e-9 {
			t.Fatalf("ray %d: BVH T=%v, linear T=%v", i, accel.T, linear.T)
		}
	}
}

func TestBVH_ClosestOfTwoSpheres(t *testing.T) {
	near := NewSphere(core.NewVec3(0, 0, -3), 1, nil)
	far := NewSphere(core.NewVec3(0, 0, -10), 1, nil)
	bvh := NewBVH([]Shape{far, near})

	var hit material.HitRecord
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if !bvh.Hit(ray, 0.001, math.Inf(1), &hit) {
		t.Fatal("expected hit")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("T = %v, want 2 (nearer sphere)", hit.T)
	}
}
