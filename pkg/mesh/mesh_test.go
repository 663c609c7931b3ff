package mesh

import (
	"testing"

	"github.com/texbake/uvgrow/pkg/math"
)

// quadMesh is two triangles sharing the diagonal 0-2, UVs matching the
// positions of a unit square.
func quadMesh(t *testing.T) *Data {
	t.Helper()
	tris := [][3]int{{0, 1, 2}, {0, 2, 3}}
	uvs := [][3]math.Vec2{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
	}
	d, err := NewData(4, tris, uvs)
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}
	return d
}

func TestNewDataAdjacency(t *testing.T) {
	d := quadMesh(t)

	if got, want := len(d.Vertices), 4; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	if got, want := len(d.Edges), 5; got != want {
		t.Errorf("edges = %d, want %d", got, want)
	}
	if got, want := len(d.Primitives), 2; got != want {
		t.Errorf("primitives = %d, want %d", got, want)
	}

	boundary := 0
	interior := 0
	for i := range d.Edges {
		switch len(d.Edges[i].Primitives) {
		case 1:
			boundary++
		case 2:
			interior++
		default:
			t.Errorf("edge %d has %d primitives", i, len(d.Edges[i].Primitives))
		}
	}
	if boundary != 4 {
		t.Errorf("boundary edges = %d, want 4", boundary)
	}
	if interior != 1 {
		t.Errorf("interior edges = %d, want 1", interior)
	}

	// Every vertex references each of its incident edges exactly once.
	for i := range d.Vertices {
		seen := make(map[*Edge]bool)
		for _, e := range d.Vertices[i].Edges {
			if seen[e] {
				t.Errorf("vertex %d references an edge twice", i)
			}
			seen[e] = true
			if !e.HasVertex(&d.Vertices[i]) {
				t.Errorf("vertex %d references an edge that does not contain it", i)
			}
		}
	}
}

func TestNewDataValidation(t *testing.T) {
	uv := [3]math.Vec2{}

	if _, err := NewData(3, [][3]int{{0, 1, 2}}, nil); err == nil {
		t.Error("expected error for mismatched triangle/uv counts")
	}
	if _, err := NewData(3, [][3]int{{0, 1, 5}}, [][3]math.Vec2{uv}); err == nil {
		t.Error("expected error for out of range vertex index")
	}
	if _, err := NewData(3, [][3]int{{0, 1, 1}}, [][3]math.Vec2{uv}); err == nil {
		t.Error("expected error for degenerate triangle")
	}
}

func TestAssignIslandsConnected(t *testing.T) {
	d := quadMesh(t)

	if got, want := AssignIslands(d), 1; got != want {
		t.Fatalf("AssignIslands = %d, want %d", got, want)
	}
	for i := range d.Primitives {
		if d.Primitives[i].Island != 0 {
			t.Errorf("primitive %d island = %d, want 0", i, d.Primitives[i].Island)
		}
	}
}

func TestAssignIslandsSeamSplit(t *testing.T) {
	// Same quad, but the second triangle's UVs live in a different region,
	// so the shared mesh edge is a seam.
	tris := [][3]int{{0, 1, 2}, {0, 2, 3}}
	uvs := [][3]math.Vec2{
		{{X: 0, Y: 0}, {X: 0.4, Y: 0}, {X: 0.4, Y: 0.4}},
		{{X: 0.6, Y: 0}, {X: 1, Y: 0.4}, {X: 0.6, Y: 0.4}},
	}
	d, err := NewData(4, tris, uvs)
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}

	if got, want := AssignIslands(d), 2; got != want {
		t.Fatalf("AssignIslands = %d, want %d", got, want)
	}
	if d.Primitives[0].Island == d.Primitives[1].Island {
		t.Error("seam-separated triangles share an island")
	}
	if d.IslandCount != 2 {
		t.Errorf("IslandCount = %d, want 2", d.IslandCount)
	}
}

func TestPrimitiveHelpers(t *testing.T) {
	d := quadMesh(t)
	prim := &d.Primitives[0]

	if !prim.HasVertex(&d.Vertices[1]) {
		t.Error("expected primitive 0 to contain vertex 1")
	}
	if prim.HasVertex(&d.Vertices[3]) {
		t.Error("primitive 0 should not contain vertex 3")
	}

	other := prim.OtherUVVert(&d.Vertices[0], &d.Vertices[1])
	if other == nil || other.Vertex != &d.Vertices[2] {
		t.Error("OtherUVVert did not return the remaining corner")
	}

	lo, hi := prim.UVBounds()
	if lo.X != 0 || lo.Y != 0 || hi.X != 1 || hi.Y != 1 {
		t.Errorf("UVBounds = [%v %v]..[%v %v], want [0 0]..[1 1]", lo.X, lo.Y, hi.X, hi.Y)
	}
}
