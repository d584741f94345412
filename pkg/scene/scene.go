// Package scene assembles shapes into a raycastable world shared by the
// offline generator and the per-frame evaluator.
package scene

import (
	"github.com/cgaueb/fakeIR/pkg/core"
	"github.com/cgaueb/fakeIR/pkg/geometry"
	"github.com/cgaueb/fakeIR/pkg/material"
)

// rayMin avoids self-intersection on the surface a ray starts from
const rayMin = 0.001

// Scene holds shapes behind a BVH for fast closest-hit queries
type Scene struct {
	shapes []geometry.Shape
	bvh    *geometry.BVH
}

// New builds a scene over the given shapes
func New(shapes []geometry.Shape) *Scene {
	return &Scene{
		shapes: shapes,
		bvh:    geometry.NewBVH(shapes),
	}
}

// Shapes returns the scene's shape list
func (s *Scene) Shapes() []geometry.Shape {
	return s.shapes
}

// Raycast finds the closest surface hit along a ray, if any
func (s *Scene) Raycast(origin, direction core.Vec3) (*material.HitRecord, bool) {
	ray := core.NewRay(origin, direction)
	var hit material.HitRecord
	if !s.bvh.Hit(ray, rayMin, 1e30, &hit) {
		return nil, false
	}
	return &hit, true
}

// NewRoomScene builds a closed 10x10x10 box with colored walls, a useful
// default environment for generation runs. The box is centered at the origin
// with quad normals facing inward.
func NewRoomScene() *Scene {
	white := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))
	blue := material.NewDiffuse(core.NewVec3(0.15, 0.2, 0.62))

	const h = 5.0
	shapes := []geometry.Shape{
		// floor and ceiling
		geometry.NewQuad(core.NewVec3(-h, -h, -h), core.NewVec3(2*h, 0, 0), core.NewVec3(0, 0, 2*h), white),
		geometry.NewQuad(core.NewVec3(-h, h, -h), core.NewVec3(0, 0, 2*h), core.NewVec3(2*h, 0, 0), white),
		// left and right walls
		geometry.NewQuad(core.NewVec3(-h, -h, -h), core.NewVec3(0, 0, 2*h), core.NewVec3(0, 2*h, 0), red),
		geometry.NewQuad(core.NewVec3(h, -h, -h), core.NewVec3(0, 2*h, 0), core.NewVec3(0, 0, 2*h), green),
		// back and front walls
		geometry.NewQuad(core.NewVec3(-h, -h, -h), core.NewVec3(0, 2*h, 0), core.NewVec3(2*h, 0, 0), blue),
		geometry.NewQuad(core.NewVec3(-h, -h, h), core.NewVec3(2*h, 0, 0), core.NewVec3(0, 2*h, 0), white),
		// a sphere near the floor to give the indirect light something to graze
		geometry.NewSphere(core.NewVec3(1.5, -3.5, 0), 1.5, white),
	}

	return New(shapes)
}
