package geometry

import (
	"github.com/cgaueb/fakeIR/pkg/core"
	"github.com/cgaueb/fakeIR/pkg/material"
)

// Triangle represents a single triangle with optional per-vertex shading data
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	Material   material.Material
	normals    [3]core.Vec3 // Per-vertex normals for shading normal interpolation
	uvs        [3]core.Vec2 // Per-vertex texture coordinates
	hasNormals bool
	hasUVs     bool
	normal     core.Vec3 // Cached geometric normal
	bbox       AABB      // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.computeNormal()
	t.computeBoundingBox()
	return t
}

// SetVertexNormals attaches per-vertex normals; hits then carry an
// interpolated shading normal alongside the geometric one
func (t *Triangle) SetVertexNormals(n0, n1, n2 core.Vec3) *Triangle {
	t.normals = [3]core.Vec3{n0.Normalize(), n1.Normalize(), n2.Normalize()}
	t.hasNormals = true
	return t
}

// SetVertexUVs attaches per-vertex texture coordinates
func (t *Triangle) SetVertexUVs(uv0, uv1, uv2 core.Vec2) *Triangle {
	t.uvs = [3]core.Vec2{uv0, uv1, uv2}
	t.hasUVs = true
	return t
}

// computeNormal calculates and caches the triangle's geometric normal
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

// computeBoundingBox calculates and caches the triangle's bounding box
func (t *Triangle) computeBoundingBox() {
	t.bbox = NewAABBFromPoints(t.V0, t.V1, t.V2).pad(1e-4)
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Determinant near zero: ray lies in the triangle plane
	if a > -epsilon && a < epsilon {
		return false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return false
	}

	tParam := f * edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return false
	}

	hit.T = tParam
	hit.Point = ray.At(tParam)
	hit.Material = t.Material
	hit.SetFaceNormal(ray, t.normal)

	// Barycentric weights for the interpolated shading attributes
	w := 1.0 - u - v

	if t.hasNormals {
		sn := t.normals[0].Multiply(w).
			Add(t.normals[1].Multiply(u)).
			Add(t.normals[2].Multiply(v)).
			Normalize()
		if !hit.FrontFace {
			sn = sn.Negate()
		}
		hit.ShadingNormal = sn
	} else {
		hit.ShadingNormal = core.Vec3{}
	}

	if t.hasUVs {
		hit.UV = core.NewVec2(
			w*t.uvs[0].X+u*t.uvs[1].X+v*t.uvs[2].X,
			w*t.uvs[0].Y+u*t.uvs[1].Y+v*t.uvs[2].Y,
		)
	} else {
		hit.UV = core.NewVec2(u, v)
	}

	return true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() AABB {
	return t.bbox
}
