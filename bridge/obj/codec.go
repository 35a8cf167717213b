// Package obj reads and writes Wavefront OBJ files, the exchange format
// spoken by the external retopology tool. Positions, optional normals,
// face topology and sharp-edge line elements make the round trip;
// materials and texture coordinates are ignored.
package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/limbicnation/remesh/bridge/math"
	"github.com/limbicnation/remesh/bridge/mesh"
)

const fileHeader = "# OBJ file created by remesh\n"

// Encode writes the mesh to w. Vertices are written with six decimals
// like the host exporter; faces use 1-based indices, `i//i` when the
// mesh carries per-vertex normals and bare indices otherwise. Sharp
// edges are written as two-vertex line elements (`l i j`).
func Encode(m *mesh.Mesh, w io.Writer) error {
	if err := m.Validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(fileHeader); err != nil {
		return err
	}

	for _, v := range m.Positions {
		if _, err := fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v.X, v.Y, v.Z); err != nil {
			return err
		}
	}

	hasNormals := len(m.Normals) == len(m.Positions) && len(m.Normals) > 0
	if hasNormals {
		for _, n := range m.Normals {
			n = n.Normalized()
			if _, err := fmt.Fprintf(bw, "vn %.6f %.6f %.6f\n", n.X, n.Y, n.Z); err != nil {
				return err
			}
		}
	}

	var sb strings.Builder
	for _, face := range m.Faces {
		sb.Reset()
		sb.WriteString("f")
		for _, vi := range face {
			sb.WriteByte(' ')
			idx := strconv.Itoa(vi + 1)
			sb.WriteString(idx)
			if hasNormals {
				sb.WriteString("//")
				sb.WriteString(idx)
			}
		}
		sb.WriteByte('\n')
		if _, err := bw.WriteString(sb.String()); err != nil {
			return err
		}
	}

	for _, e := range m.SharpEdges {
		if _, err := fmt.Fprintf(bw, "l %d %d\n", e[0]+1, e[1]+1); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// EncodeFile writes the mesh to path, creating or overwriting the file.
func EncodeFile(m *mesh.Mesh, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Encode(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Decode parses an OBJ stream into a mesh named name. The parser is
// tolerant: unknown directives are skipped, face vertices may be any of
// `v`, `v/t`, `v//n`, `v/t/n`, and negative indices are resolved
// relative to the vertices seen so far. Line elements become sharp
// edges. It fails on malformed vertex, face or line records, indices
// out of range, or a stream with zero faces.
func Decode(r io.Reader, name string) (*mesh.Mesh, error) {
	if name == "" {
		name = mesh.DefaultMeshName
	}
	m := &mesh.Mesh{Name: name}

	var normals []math.Vec3
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			m.Positions = append(m.Positions, v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face has %d vertices", lineNo, len(fields)-1)
			}
			face := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				vi, err := parseFaceVertex(ref, len(m.Positions))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				face = append(face, vi)
			}
			m.Faces = append(m.Faces, face)
		case "l":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: line element has %d vertices", lineNo, len(fields)-1)
			}
			verts := make([]int, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				vi, err := parseFaceVertex(ref, len(m.Positions))
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				verts = append(verts, vi)
			}
			// Polylines split into their segments.
			for i := 0; i+1 < len(verts); i++ {
				m.SharpEdges = append(m.SharpEdges, [2]int{verts[i], verts[i+1]})
			}
		default:
			// comments, materials, texture coordinates, groups
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(m.Faces) == 0 {
		return nil, mesh.ErrEmptyMesh
	}
	// A vn block is only meaningful when it pairs 1:1 with vertices;
	// tools emitting per-corner normals drop through to no normals.
	if len(normals) == len(m.Positions) {
		m.Normals = normals
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// DecodeFile parses the OBJ file at path.
func DecodeFile(path, name string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, name)
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var out [3]float64
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return math.Vec3{}, fmt.Errorf("component %q: %w", fields[i], err)
		}
		out[i] = v
	}
	return math.NewVec3(out[0], out[1], out[2]), nil
}

// parseFaceVertex resolves one face vertex reference to a 0-based
// position index. seen is the number of vertices parsed so far, used to
// resolve negative (relative) references.
func parseFaceVertex(ref string, seen int) (int, error) {
	tok := ref
	if i := strings.IndexByte(tok, '/'); i >= 0 {
		tok = tok[:i]
	}
	idx, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("face vertex %q: %w", ref, err)
	}
	switch {
	case idx > 0:
		return idx - 1, nil
	case idx < 0:
		vi := seen + idx
		if vi < 0 {
			return 0, fmt.Errorf("face vertex %q resolves before first vertex", ref)
		}
		return vi, nil
	default:
		return 0, fmt.Errorf("face vertex %q: index 0 is not valid", ref)
	}
}
