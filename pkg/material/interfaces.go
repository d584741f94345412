package material

import (
	"github.com/cgaueb/fakeIR/pkg/core"
)

// Material is the surface sampling primitive the VPL generator consumes:
// the base reflectance color at a surface point
type Material interface {
	// BaseColor returns the surface reflectance at the given UV coordinates and 3D point
	BaseColor(uv core.Vec2, point core.Vec3) core.Vec3
}

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural sources
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// HitRecord contains information about a ray-surface intersection
type HitRecord struct {
	Point         core.Vec3 // Point of intersection
	Normal        core.Vec3 // Geometric surface normal at intersection
	ShadingNormal core.Vec3 // Interpolated shading normal (zero when unavailable)
	UV            core.Vec2 // Texture coordinates at intersection
	T             float64   // Parameter t along the ray (distance for unit directions)
	FrontFace     bool      // Whether ray hit the front face
	Material      Material  // Material of the hit surface (nil when unavailable)
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}
