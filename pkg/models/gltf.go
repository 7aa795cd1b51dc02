package models

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/orbitview/pkg/math3d"
)

// ErrNoGeometry is returned when a glTF file has no triangle primitives.
var ErrNoGeometry = errors.New("no triangle geometry")

// LoadGLTF reads the triangle primitives of every mesh in a .gltf or .glb
// file into one Mesh. Node transforms are ignored; the viewer refits the
// result anyway.
func LoadGLTF(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh, err := meshFromDocument(doc, filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filepath.Base(path), err)
	}
	return mesh, nil
}

func meshFromDocument(doc *gltf.Document, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	for _, m := range doc.Meshes {
		if err := appendPrimitives(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", m.Name, err)
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, ErrNoGeometry
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func appendPrimitives(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		positions, err := readPositions(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		base := len(mesh.Vertices)
		mesh.Vertices = append(mesh.Vertices, positions...)

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			f := [3]int{indices[i], indices[i+1], indices[i+2]}
			for _, idx := range f {
				if idx < 0 || idx >= len(positions) {
					return fmt.Errorf("index %d out of range [0,%d)", idx, len(positions))
				}
			}
			mesh.Faces = append(mesh.Faces, [3]int{base + f[0], base + f[1], base + f[2]})
		}
	}
	return nil
}

// accessorBytes returns the accessor's backing bytes starting at its first
// element, and the byte stride between elements.
func accessorBytes(doc *gltf.Document, acr *gltf.Accessor, elemSize int) ([]byte, int, error) {
	if acr.BufferView == nil {
		return nil, 0, errors.New("accessor has no buffer view")
	}
	if *acr.BufferView < 0 || *acr.BufferView >= len(doc.BufferViews) {
		return nil, 0, fmt.Errorf("buffer view %d missing", *acr.BufferView)
	}
	view := doc.BufferViews[*acr.BufferView]
	if view.Buffer < 0 || view.Buffer >= len(doc.Buffers) {
		return nil, 0, fmt.Errorf("buffer %d missing", view.Buffer)
	}
	data := doc.Buffers[view.Buffer].Data
	if data == nil {
		return nil, 0, errors.New("buffer has no data")
	}

	stride := view.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	start := view.ByteOffset + acr.ByteOffset
	if start < 0 || start > len(data) {
		return nil, 0, fmt.Errorf("accessor starts outside buffer (%d of %d)", start, len(data))
	}
	if acr.Count > 0 {
		end := start + (acr.Count-1)*stride + elemSize
		if end > len(data) {
			return nil, 0, fmt.Errorf("accessor reads past buffer end (%d > %d)", end, len(data))
		}
	}
	return data[start:], stride, nil
}

func readPositions(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d missing", idx)
	}
	acr := doc.Accessors[idx]
	if acr.Type != gltf.AccessorVec3 || acr.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("positions must be float VEC3, got %v/%v", acr.Type, acr.ComponentType)
	}

	data, stride, err := accessorBytes(doc, acr, 12)
	if err != nil {
		return nil, err
	}

	out := make([]math3d.Vec3, acr.Count)
	for i := range out {
		b := data[i*stride:]
		out[i] = math3d.V3(readFloat32(b), readFloat32(b[4:]), readFloat32(b[8:]))
	}
	return out, nil
}

func readIndices(doc *gltf.Document, idx int) ([]int, error) {
	if idx < 0 || idx >= len(doc.Accessors) {
		return nil, fmt.Errorf("accessor %d missing", idx)
	}
	acr := doc.Accessors[idx]
	if acr.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("indices must be SCALAR, got %v", acr.Type)
	}

	var size int
	switch acr.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unsupported index component %v", acr.ComponentType)
	}

	data, stride, err := accessorBytes(doc, acr, size)
	if err != nil {
		return nil, err
	}

	out := make([]int, acr.Count)
	for i := range out {
		b := data[i*stride:]
		switch size {
		case 1:
			out[i] = int(b[0])
		case 2:
			out[i] = int(binary.LittleEndian.Uint16(b))
		case 4:
			out[i] = int(binary.LittleEndian.Uint32(b))
		}
	}
	return out, nil
}

func readFloat32(b []byte) float64 {
	return float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
}
