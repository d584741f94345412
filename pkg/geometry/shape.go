package geometry

import (
	"github.com/cgaueb/fakeIR/pkg/core"
	"github.com/cgaueb/fakeIR/pkg/material"
)

// Shape interface for objects that can be hit by rays
type Shape interface {
	// Hit tests the ray against the shape in (tMin, tMax) and fills hit on success
	Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool
	BoundingBox() AABB
}
