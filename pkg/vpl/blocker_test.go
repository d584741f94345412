package vpl

import (
	"math"
	"testing"

	"github.com/cgaueb/fakeIR/pkg/core"
)

func TestBlocker_Attenuation(t *testing.T) {
	vplPos := core.NewVec3(0, 0, 0)
	srcPos := core.NewVec3(10, 0, 0)

	tests := []struct {
		name    string
		blocker Blocker
		check   func(t *testing.T, got float64)
	}{
		{
			name:    "sphere far from segment",
			blocker: Blocker{Center: core.NewVec3(5, 50, 0), Range: 1},
			check: func(t *testing.T, got float64) {
				if got != 1.0 {
					t.Errorf("attenuation = %v, want 1.0 for non-intersecting blocker", got)
				}
			},
		},
		{
			name:    "segment through sphere center",
			blocker: Blocker{Center: core.NewVec3(5, 0, 0), Range: 1},
			check: func(t *testing.T, got float64) {
				if got >= 1.0 {
					t.Errorf("attenuation = %v, want < 1.0 through the center", got)
				}
				if got < 0 {
					t.Errorf("attenuation = %v below zero", got)
				}
			},
		},
		{
			name:    "sphere grazing the segment",
			blocker: Blocker{Center: core.NewVec3(5, 0.5, 0), Range: 1},
			check: func(t *testing.T, got float64) {
				if got >= 1.0 || got <= 0 {
					t.Errorf("attenuation = %v, want partial suppression", got)
				}
			},
		},
		{
			name:    "sphere behind an endpoint",
			blocker: Blocker{Center: core.NewVec3(-10, 0, 0), Range: 1},
			check: func(t *testing.T, got float64) {
				// Nearest point is the VPL endpoint at distance 10; well clear
				if got != 1.0 {
					t.Errorf("attenuation = %v, want 1.0 for blocker past the endpoint", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, tt.blocker.Attenuation(vplPos, srcPos))
		})
	}
}

func TestBlocker_ZeroRangeIsFinite(t *testing.T) {
	b := Blocker{Center: core.NewVec3(5, 0, 0), Range: 0}
	got := b.Attenuation(core.NewVec3(0, 0, 0), core.NewVec3(10, 0, 0))
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("zero-range blocker produced %v", got)
	}
	if got != 0 {
		t.Errorf("point blocker on the segment = %v, want 0", got)
	}
}

func TestBlocker_CompositionCommutative(t *testing.T) {
	a := Blocker{Center: core.NewVec3(3, 0.4, 0), Range: 1}
	b := Blocker{Center: core.NewVec3(7, -0.2, 0), Range: 0.5}
	vplPos := core.NewVec3(0, 0, 0)
	srcPos := core.NewVec3(10, 0, 0)

	ab := a.Attenuation(vplPos, srcPos) * b.Attenuation(vplPos, srcPos)
	ba := b.Attenuation(vplPos, srcPos) * a.Attenuation(vplPos, srcPos)
	if math.Abs(ab-ba) > 1e-15 {
		t.Errorf("composition not commutative: %v vs %v", ab, ba)
	}
}
