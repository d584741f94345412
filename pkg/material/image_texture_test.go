package material

import (
	"math"
	"testing"

	"github.com/cgaueb/fakeIR/pkg/core"
)

func checkerPixels() (int, int, []core.Vec3) {
	black := core.NewVec3(0, 0, 0)
	white := core.NewVec3(1, 1, 1)
	// 2x2 checker: top row white/black, bottom row black/white
	return 2, 2, []core.Vec3{white, black, black, white}
}

func TestImageTexture_TexelCenters(t *testing.T) {
	w, h, px := checkerPixels()
	tex := NewImageTexture(w, h, px)

	// UV (0.25, 0.75) is the center of the top-left texel after the V flip
	got := tex.Evaluate(core.NewVec2(0.25, 0.75), core.Vec3{})
	if got.Subtract(core.NewVec3(1, 1, 1)).Length() > 1e-9 {
		t.Errorf("top-left texel center = %v, want white", got)
	}

	got = tex.Evaluate(core.NewVec2(0.75, 0.75), core.Vec3{})
	if got.Subtract(core.NewVec3(0, 0, 0)).Length() > 1e-9 {
		t.Errorf("top-right texel center = %v, want black", got)
	}
}

func TestImageTexture_BilinearMidpoint(t *testing.T) {
	w, h, px := checkerPixels()
	tex := NewImageTexture(w, h, px)

	// Texture center blends all four texels equally: two white + two black = 0.5 grey
	got := tex.Evaluate(core.NewVec2(0.5, 0.5), core.Vec3{})
	expected := core.NewVec3(0.5, 0.5, 0.5)
	if got.Subtract(expected).Length() > 1e-9 {
		t.Errorf("midpoint sample = %v, want %v", got, expected)
	}

	// Halfway between horizontally adjacent texel centers blends only those two
	got = tex.Evaluate(core.NewVec2(0.5, 0.75), core.Vec3{})
	if math.Abs(got.X-0.5) > 1e-9 {
		t.Errorf("horizontal midpoint = %v, want 0.5 grey", got)
	}
}

func TestImageTexture_WrapsUV(t *testing.T) {
	w, h, px := checkerPixels()
	tex := NewImageTexture(w, h, px)

	base := tex.Evaluate(core.NewVec2(0.25, 0.75), core.Vec3{})
	wrapped := tex.Evaluate(core.NewVec2(1.25, -0.25), core.Vec3{})
	if base.Subtract(wrapped).Length() > 1e-9 {
		t.Errorf("wrapped UV sample %v differs from base %v", wrapped, base)
	}
}

func TestDiffuse_BaseColor(t *testing.T) {
	m := NewDiffuse(core.NewVec3(0.2, 0.4, 0.6))
	got := m.BaseColor(core.NewVec2(0.1, 0.9), core.NewVec3(5, 5, 5))
	if got != core.NewVec3(0.2, 0.4, 0.6) {
		t.Errorf("solid diffuse BaseColor = %v", got)
	}
}
