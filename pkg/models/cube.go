package models

import "github.com/taigrr/orbitview/pkg/math3d"

// NewCube returns an axis-aligned cube of the given edge length centered on
// the origin, two triangles per side.
func NewCube(size float64) *Mesh {
	h := size / 2
	m := NewMesh("cube")
	m.Vertices = []math3d.Vec3{
		{X: -h, Y: -h, Z: -h}, // 0
		{X: h, Y: -h, Z: -h},  // 1
		{X: h, Y: h, Z: -h},   // 2
		{X: -h, Y: h, Z: -h},  // 3
		{X: -h, Y: -h, Z: h},  // 4
		{X: h, Y: -h, Z: h},   // 5
		{X: h, Y: h, Z: h},    // 6
		{X: -h, Y: h, Z: h},   // 7
	}
	// Counter-clockwise seen from outside.
	m.Faces = [][3]int{
		{4, 5, 6}, {4, 6, 7}, // +Z
		{1, 0, 3}, {1, 3, 2}, // -Z
		{5, 1, 2}, {5, 2, 6}, // +X
		{0, 4, 7}, {0, 7, 3}, // -X
		{7, 6, 2}, {7, 2, 3}, // +Y
		{0, 1, 5}, {0, 5, 4}, // -Y
	}
	m.CalculateBounds()
	return m
}
