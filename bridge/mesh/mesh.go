package mesh

import (
	"errors"
	"fmt"

	"github.com/limbicnation/remesh/bridge/math"
)

// DefaultMeshName is used when geometry arrives without a name.
const DefaultMeshName string = "mesh"

var ErrEmptyMesh = errors.New("mesh has no faces")

// Mesh is a polygon mesh: ordered vertex positions plus per-face vertex
// index lists. Normals are optional; when present there is one per
// vertex. SharpEdges optionally marks vertex-index pairs whose edge is a
// feature the retopology tool should keep.
type Mesh struct {
	Name       string
	Positions  []math.Vec3
	Normals    []math.Vec3
	Faces      [][]int
	SharpEdges [][2]int
}

func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

func (m *Mesh) FaceCount() int {
	return len(m.Faces)
}

func (m *Mesh) IsEmpty() bool {
	return len(m.Positions) == 0 || len(m.Faces) == 0
}

// Extents returns the axis-aligned bounds of the mesh.
func (m *Mesh) Extents() math.Extents3D {
	if len(m.Positions) == 0 {
		return math.Extents3D{}
	}
	ext := math.Extents3D{Min: m.Positions[0], Max: m.Positions[0]}
	for _, p := range m.Positions[1:] {
		ext.Min.X = min(ext.Min.X, p.X)
		ext.Min.Y = min(ext.Min.Y, p.Y)
		ext.Min.Z = min(ext.Min.Z, p.Z)
		ext.Max.X = max(ext.Max.X, p.X)
		ext.Max.Y = max(ext.Max.Y, p.Y)
		ext.Max.Z = max(ext.Max.Z, p.Z)
	}
	return ext
}

// Validate checks that the mesh is exportable: non-empty, all face
// indices in range, no degenerate faces (fewer than three vertices or a
// repeated vertex within one face).
func (m *Mesh) Validate() error {
	if m.IsEmpty() {
		return ErrEmptyMesh
	}
	if len(m.Normals) != 0 && len(m.Normals) != len(m.Positions) {
		return fmt.Errorf("mesh %q: %d normals for %d vertices", m.Name, len(m.Normals), len(m.Positions))
	}
	for fi, face := range m.Faces {
		if len(face) < 3 {
			return fmt.Errorf("mesh %q: face %d is degenerate (%d vertices)", m.Name, fi, len(face))
		}
		seen := make(map[int]struct{}, len(face))
		for _, vi := range face {
			if vi < 0 || vi >= len(m.Positions) {
				return fmt.Errorf("mesh %q: face %d references vertex %d of %d", m.Name, fi, vi, len(m.Positions))
			}
			if _, dup := seen[vi]; dup {
				return fmt.Errorf("mesh %q: face %d repeats vertex %d", m.Name, fi, vi)
			}
			seen[vi] = struct{}{}
		}
	}
	for _, e := range m.SharpEdges {
		if e[0] < 0 || e[0] >= len(m.Positions) || e[1] < 0 || e[1] >= len(m.Positions) {
			return fmt.Errorf("mesh %q: sharp edge (%d,%d) out of range", m.Name, e[0], e[1])
		}
	}
	return nil
}

// Triangulate returns a copy with every polygon fan-triangulated.
// Triangles pass through unchanged; vertex data is shared order-wise
// but sliced fresh.
func (m *Mesh) Triangulate() *Mesh {
	out := m.Clone()
	faces := make([][]int, 0, len(out.Faces))
	for _, face := range out.Faces {
		if len(face) <= 3 {
			faces = append(faces, face)
			continue
		}
		for i := 1; i < len(face)-1; i++ {
			faces = append(faces, []int{face[0], face[i], face[i+1]})
		}
	}
	out.Faces = faces
	return out
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Name:       m.Name,
		Positions:  make([]math.Vec3, len(m.Positions)),
		Faces:      make([][]int, len(m.Faces)),
		SharpEdges: make([][2]int, len(m.SharpEdges)),
	}
	copy(out.Positions, m.Positions)
	copy(out.SharpEdges, m.SharpEdges)
	if len(m.Normals) > 0 {
		out.Normals = make([]math.Vec3, len(m.Normals))
		copy(out.Normals, m.Normals)
	}
	for i, face := range m.Faces {
		out.Faces[i] = make([]int, len(face))
		copy(out.Faces[i], face)
	}
	return out
}
