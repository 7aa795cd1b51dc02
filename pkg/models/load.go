package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a model file, choosing the loader by extension.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".glb", ".gltf":
		return LoadGLTF(path)
	default:
		return nil, fmt.Errorf("unsupported format %q (use .glb or .gltf)", ext)
	}
}
