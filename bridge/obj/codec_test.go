package obj

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/limbicnation/remesh/bridge/math"
	"github.com/limbicnation/remesh/bridge/mesh"
)

func cube() *mesh.Mesh {
	return &mesh.Mesh{
		Name: "cube",
		Positions: []math.Vec3{
			{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1},
			{X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
			{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1},
			{X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
		},
		Faces: [][]int{
			{0, 1, 2, 3}, {4, 7, 6, 5},
			{0, 4, 5, 1}, {1, 5, 6, 2},
			{2, 6, 7, 3}, {3, 7, 4, 0},
		},
	}
}

func TestRoundTripPreservesTopology(t *testing.T) {
	src := cube()

	var buf bytes.Buffer
	if err := Encode(src, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf, "cube")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	if got.VertexCount() != src.VertexCount() {
		t.Fatalf("VertexCount = %d, want %d", got.VertexCount(), src.VertexCount())
	}
	if got.FaceCount() != src.FaceCount() {
		t.Fatalf("FaceCount = %d, want %d", got.FaceCount(), src.FaceCount())
	}
	for i, face := range src.Faces {
		if len(got.Faces[i]) != len(face) {
			t.Fatalf("face %d has %d vertices, want %d", i, len(got.Faces[i]), len(face))
		}
		for j := range face {
			if got.Faces[i][j] != face[j] {
				t.Fatalf("face %d = %v, want %v", i, got.Faces[i], face)
			}
		}
	}
	for i, p := range src.Positions {
		if !got.Positions[i].Compare(p, 1e-5) {
			t.Fatalf("vertex %d = %+v, want %+v", i, got.Positions[i], p)
		}
	}
}

func TestRoundTripPreservesSharpEdges(t *testing.T) {
	src := cube()
	src.SharpEdges = [][2]int{{0, 1}, {2, 6}}

	var buf bytes.Buffer
	if err := Encode(src, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := buf.String()
	if !strings.Contains(text, "l 1 2\n") || !strings.Contains(text, "l 3 7\n") {
		t.Fatalf("expected l records in output, got:\n%s", text)
	}

	got, err := Decode(strings.NewReader(text), "cube")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.SharpEdges) != 2 {
		t.Fatalf("SharpEdges = %v, want 2 edges", got.SharpEdges)
	}
	for i, e := range src.SharpEdges {
		if got.SharpEdges[i] != e {
			t.Fatalf("edge %d = %v, want %v", i, got.SharpEdges[i], e)
		}
	}
}

func TestDecodeSplitsPolylines(t *testing.T) {
	in := `v 0 0 0
v 1 0 0
v 1 1 0
f 1 2 3
l 1 2 3
`
	got, err := Decode(strings.NewReader(in), "strip")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	want := [][2]int{{0, 1}, {1, 2}}
	if len(got.SharpEdges) != len(want) {
		t.Fatalf("SharpEdges = %v, want %v", got.SharpEdges, want)
	}
	for i := range want {
		if got.SharpEdges[i] != want[i] {
			t.Fatalf("edge %d = %v, want %v", i, got.SharpEdges[i], want[i])
		}
	}
}

func TestRoundTripWithNormals(t *testing.T) {
	src := cube()
	src.Normals = make([]math.Vec3, len(src.Positions))
	for i, p := range src.Positions {
		src.Normals[i] = p.Normalized()
	}

	var buf bytes.Buffer
	if err := Encode(src, &buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	text := buf.String()
	if !strings.Contains(text, "vn ") {
		t.Fatal("expected vn lines in output")
	}
	if !strings.Contains(text, "//") {
		t.Fatal("expected i//i face references in output")
	}

	got, err := Decode(strings.NewReader(text), "cube")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got.Normals) != len(src.Positions) {
		t.Fatalf("decoded %d normals, want %d", len(got.Normals), len(src.Positions))
	}
}

func TestDecodeFaceReferenceForms(t *testing.T) {
	const input = `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1 2/1 3/1/1
f -3 -2/1 -1//1
`
	m, err := Decode(strings.NewReader(input), "tri")
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if m.FaceCount() != 2 {
		t.Fatalf("FaceCount = %d, want 2", m.FaceCount())
	}
	for _, face := range m.Faces {
		for j, vi := range face {
			if vi != j {
				t.Fatalf("face = %v, want [0 1 2]", face)
			}
		}
	}
}

func TestDecodeRejections(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"zero faces", "v 0 0 0\nv 1 0 0\nv 0 1 0\n"},
		{"empty file", ""},
		{"malformed vertex", "v 0 zero 0\nf 1 1 1\n"},
		{"short vertex", "v 0 0\n"},
		{"face index out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n"},
		{"face index zero", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 0 1 2\n"},
		{"short face", "v 0 0 0\nv 1 0 0\nf 1 2\n"},
		{"negative index before start", "v 0 0 0\nf -2 -1 -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(strings.NewReader(tt.input), "bad"); err == nil {
				t.Fatal("Decode = nil error, want failure")
			}
		})
	}
}

func TestDecodeEmptySentinel(t *testing.T) {
	_, err := Decode(strings.NewReader("v 0 0 0\n"), "empty")
	if !errors.Is(err, mesh.ErrEmptyMesh) {
		t.Fatalf("err = %v, want ErrEmptyMesh", err)
	}
}

func TestEncodeRejectsInvalidMesh(t *testing.T) {
	m := &mesh.Mesh{Name: "empty"}
	var buf bytes.Buffer
	if err := Encode(m, &buf); err == nil {
		t.Fatal("Encode accepted an empty mesh")
	}
}

func TestEncodeFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.obj")
	if err := EncodeFile(cube(), path); err != nil {
		t.Fatalf("EncodeFile: %v", err)
	}
	// second write over the same path must succeed
	if err := EncodeFile(cube(), path); err != nil {
		t.Fatalf("EncodeFile overwrite: %v", err)
	}
	m, err := DecodeFile(path, "")
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if m.Name != mesh.DefaultMeshName {
		t.Fatalf("Name = %q, want default", m.Name)
	}
	if m.FaceCount() != 6 {
		t.Fatalf("FaceCount = %d, want 6", m.FaceCount())
	}
}

func TestEncodeFileUnwritableDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.obj")
	if err := EncodeFile(cube(), path); err == nil {
		t.Fatal("EncodeFile succeeded for a missing directory")
	}
}
