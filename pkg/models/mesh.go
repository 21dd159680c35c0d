// Package models parses Wavefront OBJ geometry and MTL materials into
// indexed triangle meshes, and writes meshes back out as glTF or STL.
package models

import (
	"math"

	"github.com/taigrr/objparse/pkg/math3d"
)

// Mesh is an indexed triangle mesh. Every three entries of Indices form
// one triangle.
type Mesh struct {
	Name     string
	Vertices []MeshVertex
	Indices  []uint32

	// Bounds encloses every position read from the source, referenced by a
	// face or not.
	Bounds math3d.Aabb

	// MaterialLibs lists the files named by mtllib statements.
	MaterialLibs []string
}

// MeshVertex holds all vertex attributes.
type MeshVertex struct {
	Position math3d.Vec3
	Normal   math3d.Vec3
	UV       math3d.Vec2
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{
		Name:     name,
		Vertices: make([]MeshVertex, 0),
		Indices:  make([]uint32, 0),
	}
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// Triangle returns the vertex indices of triangle i.
func (m *Mesh) Triangle(i int) [3]uint32 {
	return [3]uint32{m.Indices[3*i], m.Indices[3*i+1], m.Indices[3*i+2]}
}

// CalculateBounds recomputes Bounds from the vertices alone.
func (m *Mesh) CalculateBounds() {
	m.Bounds = math3d.Aabb{}
	for _, v := range m.Vertices {
		m.Bounds.Extend(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.Bounds.Center()
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.Bounds.Size()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:         m.Name,
		Vertices:     make([]MeshVertex, len(m.Vertices)),
		Indices:      make([]uint32, len(m.Indices)),
		Bounds:       m.Bounds,
		MaterialLibs: append([]string(nil), m.MaterialLibs...),
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Indices, m.Indices)
	return clone
}

// quantizedKey creates a hashable key from a vertex by snapping every
// attribute to a grid. This handles floating point noise when comparing.
type quantizedKey struct {
	px, py, pz int64
	nx, ny, nz int64
	u, v       int64
}

func quantizeVertex(v MeshVertex, tolerance float64) quantizedKey {
	if tolerance <= 0 {
		tolerance = 1e-12
	}
	scale := 1.0 / tolerance
	q := func(f float64) int64 { return int64(math.Round(f * scale)) }
	return quantizedKey{
		px: q(v.Position.X), py: q(v.Position.Y), pz: q(v.Position.Z),
		nx: q(v.Normal.X), ny: q(v.Normal.Y), nz: q(v.Normal.Z),
		u: q(v.UV.X), v: q(v.UV.Y),
	}
}

// DeduplicateVertices merges vertices whose position, normal and UV all
// match within tolerance (0 = exact match), rewriting Indices to the
// first occurrence. The loader never does this itself; it is an optional
// post-process. Returns the number of vertices removed.
func (m *Mesh) DeduplicateVertices(tolerance float64) int {
	if len(m.Vertices) == 0 {
		return 0
	}

	seen := make(map[quantizedKey]uint32, len(m.Vertices))
	remap := make([]uint32, len(m.Vertices))
	kept := make([]MeshVertex, 0, len(m.Vertices))

	for i, v := range m.Vertices {
		key := quantizeVertex(v, tolerance)
		idx, exists := seen[key]
		if !exists {
			idx = uint32(len(kept))
			kept = append(kept, v)
			seen[key] = idx
		}
		remap[i] = idx
	}

	for i, idx := range m.Indices {
		m.Indices[i] = remap[idx]
	}

	removed := len(m.Vertices) - len(kept)
	m.Vertices = kept
	return removed
}

// RemoveDegenerateTriangles removes triangles with repeated indices or
// zero area. Returns the number of triangles removed.
func (m *Mesh) RemoveDegenerateTriangles() int {
	const minArea = 1e-10

	before := m.TriangleCount()
	kept := m.Indices[:0]
	for i := range before {
		t := m.Triangle(i)
		if t[0] == t[1] || t[1] == t[2] || t[0] == t[2] {
			continue
		}

		v0 := m.Vertices[t[0]].Position
		v1 := m.Vertices[t[1]].Position
		v2 := m.Vertices[t[2]].Position
		area := v1.Sub(v0).Cross(v2.Sub(v0)).Len() * 0.5

		if area > minArea {
			kept = append(kept, t[0], t[1], t[2])
		}
	}
	m.Indices = kept
	return before - m.TriangleCount()
}

// CalculateSmoothNormals replaces every vertex normal with the
// area-weighted average of the faces touching its position. Vertices are
// grouped by position, so the faces need not share vertex indices.
func (m *Mesh) CalculateSmoothNormals() {
	sums := make(map[quantizedKey]math3d.Vec3)
	key := func(idx uint32) quantizedKey {
		return quantizeVertex(MeshVertex{Position: m.Vertices[idx].Position}, 0)
	}

	// Accumulate face normals per position
	for i := range m.TriangleCount() {
		t := m.Triangle(i)
		v0 := m.Vertices[t[0]].Position
		v1 := m.Vertices[t[1]].Position
		v2 := m.Vertices[t[2]].Position

		normal := v1.Sub(v0).Cross(v2.Sub(v0)) // Don't normalize yet

		for _, idx := range t {
			k := key(idx)
			sums[k] = sums[k].Add(normal)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = sums[key(uint32(i))].Normalize()
	}
}
