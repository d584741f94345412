package geometry

import (
	"github.com/cgaueb/fakeIR/pkg/core"
	"github.com/cgaueb/fakeIR/pkg/material"
)

// TriangleMesh represents a collection of triangles behind an internal BVH
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
	bbox      AABB
}

// TriangleMeshOptions contains optional per-vertex attributes for mesh creation
type TriangleMeshOptions struct {
	Normals []core.Vec3 // Optional per-vertex normals (one per vertex)
	UVs     []core.Vec2 // Optional per-vertex texture coordinates (one per vertex)
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices.
// vertices: array of 3D points
// faces: triangle indices (each group of 3 indices forms a triangle)
// mat: material for all triangles
// options: optional per-vertex attributes (can be nil)
func NewTriangleMesh(vertices []core.Vec3, faces []int, mat material.Material, options *TriangleMeshOptions) *TriangleMesh {
	if len(faces)%3 != 0 {
		panic("Face indices must be a multiple of 3")
	}
	if options != nil {
		if options.Normals != nil && len(options.Normals) != len(vertices) {
			panic("Number of normals must match number of vertices")
		}
		if options.UVs != nil && len(options.UVs) != len(vertices) {
			panic("Number of UVs must match number of vertices")
		}
	}

	numTriangles := len(faces) / 3
	triangles := make([]Shape, 0, numTriangles)

	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 < 0 || i1 < 0 || i2 < 0 ||
			i0 >= len(vertices) || i1 >= len(vertices) || i2 >= len(vertices) {
			panic("Face index out of bounds")
		}

		tri := NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat)
		if options != nil && options.Normals != nil {
			tri.SetVertexNormals(options.Normals[i0], options.Normals[i1], options.Normals[i2])
		}
		if options != nil && options.UVs != nil {
			tri.SetVertexUVs(options.UVs[i0], options.UVs[i1], options.UVs[i2])
		}
		triangles = append(triangles, tri)
	}

	bvh := NewBVH(triangles)

	return &TriangleMesh{
		triangles: triangles,
		bvh:       bvh,
		bbox:      bvh.BoundingBox(),
	}
}

// Hit tests if a ray intersects any triangle in the mesh
func (m *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64, hit *material.HitRecord) bool {
	return m.bvh.Hit(ray, tMin, tMax, hit)
}

// BoundingBox returns the overall bounding box of the mesh
func (m *TriangleMesh) BoundingBox() AABB {
	return m.bbox
}

// TriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.triangles)
}
