// Package models holds triangle meshes for the viewer and loads them from
// glTF files or builds them procedurally.
package models

import (
	"cmp"
	"math"
	"slices"

	"github.com/taigrr/orbitview/pkg/math3d"
)

// Mesh is an indexed triangle mesh.
type Mesh struct {
	Name     string
	Vertices []math3d.Vec3
	Faces    [][3]int // indices into Vertices

	// Axis-aligned bounds, refreshed by CalculateBounds.
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds recomputes BoundsMin and BoundsMax. An empty mesh keeps
// its current bounds.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0]
	m.BoundsMax = m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		m.BoundsMin.MinInPlace(v)
		m.BoundsMax.MaxInPlace(v)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Lerp(m.BoundsMax, 0.5)
}

// Size returns the extent of the bounding box on each axis.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// TriangleCount returns the number of faces.
func (m *Mesh) TriangleCount() int {
	return len(m.Faces)
}

// Transform applies mat to every vertex and refreshes the bounds.
func (m *Mesh) Transform(mat math3d.Mat4) {
	for i, v := range m.Vertices {
		m.Vertices[i] = mat.MulVec3(v)
	}
	m.CalculateBounds()
}

// FitToUnit centers the mesh on the origin and scales it uniformly so its
// largest dimension is size. Degenerate meshes are only centered.
func (m *Mesh) FitToUnit(size float64) {
	m.CalculateBounds()
	ext := m.Size()
	maxDim := math.Max(ext.X, math.Max(ext.Y, ext.Z))

	fit := math3d.Translate(m.Center().Negate())
	if maxDim > 0 {
		fit = math3d.ScaleUniform(size / maxDim).Mul(fit)
	}
	m.Transform(fit)
}

// Edges returns every distinct undirected edge of the faces as index pairs
// with the smaller index first, sorted. Degenerate edges are dropped.
func (m *Mesh) Edges() [][2]int {
	seen := make(map[[2]int]struct{}, len(m.Faces)*3/2)
	for _, f := range m.Faces {
		for i := range 3 {
			a, b := f[i], f[(i+1)%3]
			if a == b {
				continue
			}
			if a > b {
				a, b = b, a
			}
			seen[[2]int{a, b}] = struct{}{}
		}
	}

	edges := make([][2]int, 0, len(seen))
	for e := range seen {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(x, y [2]int) int {
		if c := cmp.Compare(x[0], y[0]); c != 0 {
			return c
		}
		return cmp.Compare(x[1], y[1])
	})
	return edges
}
