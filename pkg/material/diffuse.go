package material

import (
	"github.com/cgaueb/fakeIR/pkg/core"
)

// Diffuse represents a matte surface described only by its reflectance
type Diffuse struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewDiffuse creates a new diffuse material with solid color
func NewDiffuse(albedo core.Vec3) *Diffuse {
	return &Diffuse{Albedo: NewSolidColor(albedo)}
}

// NewTexturedDiffuse creates a new diffuse material with a textured reflectance
func NewTexturedDiffuse(albedo ColorSource) *Diffuse {
	return &Diffuse{Albedo: albedo}
}

// BaseColor implements the Material interface
func (d *Diffuse) BaseColor(uv core.Vec2, point core.Vec3) core.Vec3 {
	return d.Albedo.Evaluate(uv, point)
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}
