package uv

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/texbake/uvgrow/pkg/math"
	"github.com/texbake/uvgrow/pkg/mesh"
)

// buildIslands segments the given triangle soup and builds its UV topology.
func buildIslands(t *testing.T, vertexCount int, tris [][3]int, uvs [][3]math.Vec2) *Islands {
	t.Helper()
	data, err := mesh.NewData(vertexCount, tris, uvs)
	if err != nil {
		t.Fatalf("NewData: %v", err)
	}
	mesh.AssignIslands(data)
	return NewIslands(data, nil)
}

// assertClosedBorder checks that consecutive edges chain in UV space and the
// last edge returns to the first.
func assertClosedBorder(t *testing.T, border *Border) {
	t.Helper()
	n := len(border.Edges)
	for i := 0; i < n; i++ {
		curr := &border.Edges[i]
		next := &border.Edges[(i+1)%n]
		if curr.UVVertex(1).UV != next.UVVertex(0).UV {
			t.Fatalf("border edge %d end %v does not meet edge %d start %v",
				i, curr.UVVertex(1).UV, (i+1)%n, next.UVVertex(0).UV)
		}
	}
}

func TestExtractBordersSingleTriangle(t *testing.T) {
	tris := [][3]int{{0, 1, 2}}
	uvs := [][3]math.Vec2{
		{{X: 0.1, Y: 0.1}, {X: 0.9, Y: 0.1}, {X: 0.5, Y: 0.8}},
	}
	islands := buildIslands(t, 3, tris, uvs)
	islands.ExtractBorders()

	if got, want := len(islands.Islands), 1; got != want {
		t.Fatalf("islands = %d, want %d", got, want)
	}
	island := islands.Islands[0]
	if got, want := len(island.Borders), 1; got != want {
		t.Fatalf("borders = %d, want %d", got, want)
	}

	border := island.Borders[0]
	if got, want := len(border.Edges), 3; got != want {
		t.Fatalf("border edges = %d, want %d", got, want)
	}
	assertClosedBorder(t, border)
	if !border.IsCCW() {
		t.Error("extracted border is not counter-clockwise")
	}
}

func TestExtractBordersNormalizesWinding(t *testing.T) {
	// Mirrored UVs give the triangle clockwise winding; extraction must
	// flip the border.
	tris := [][3]int{{0, 1, 2}}
	uvs := [][3]math.Vec2{
		{{X: -0.1, Y: 0.1}, {X: -0.9, Y: 0.1}, {X: -0.5, Y: 0.8}},
	}
	islands := buildIslands(t, 3, tris, uvs)
	islands.ExtractBorders()

	border := islands.Islands[0].Borders[0]
	if !border.IsCCW() {
		t.Error("border not normalized to counter-clockwise")
	}
	assertClosedBorder(t, border)
}

func TestExtractBordersIdempotent(t *testing.T) {
	tris := [][3]int{{0, 1, 2}, {0, 2, 3}}
	uvs := [][3]math.Vec2{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
	}
	islands := buildIslands(t, 4, tris, uvs)
	island := islands.Islands[0]

	island.ExtractBorders()
	firstCount := len(island.Borders)
	firstEdges := len(island.Borders[0].Edges)

	island.ExtractBorders()
	if len(island.Borders) != firstCount {
		t.Fatalf("second extraction found %d borders, first found %d",
			len(island.Borders), firstCount)
	}
	if len(island.Borders[0].Edges) != firstEdges {
		t.Fatalf("second extraction found %d edges, first found %d",
			len(island.Borders[0].Edges), firstEdges)
	}
}

func TestExtractBordersAnnulus(t *testing.T) {
	// A square ring: outer square 0-3, inner square 4-7, eight triangles.
	// The island has two boundary loops.
	outer := []math.Vec2{
		{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1},
	}
	inner := []math.Vec2{
		{X: 0.25, Y: 0.25}, {X: 0.75, Y: 0.25}, {X: 0.75, Y: 0.75}, {X: 0.25, Y: 0.75},
	}

	var tris [][3]int
	var uvs [][3]math.Vec2
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		tris = append(tris, [3]int{i, j, 4 + i})
		uvs = append(uvs, [3]math.Vec2{outer[i], outer[j], inner[i]})
		tris = append(tris, [3]int{j, 4 + j, 4 + i})
		uvs = append(uvs, [3]math.Vec2{outer[j], inner[j], inner[i]})
	}

	islands := buildIslands(t, 8, tris, uvs)
	if got, want := len(islands.Islands), 1; got != want {
		t.Fatalf("islands = %d, want %d", got, want)
	}

	islands.ExtractBorders()
	island := islands.Islands[0]
	if got, want := len(island.Borders), 2; got != want {
		t.Fatalf("borders = %d, want %d", got, want)
	}
	for _, border := range island.Borders {
		if got, want := len(border.Edges), 4; got != want {
			t.Errorf("border edges = %d, want %d", got, want)
		}
		assertClosedBorder(t, border)
		if !border.IsCCW() {
			t.Error("border not counter-clockwise")
		}
	}
}

func TestOutsideAngleSquare(t *testing.T) {
	tris := [][3]int{{0, 1, 2}, {0, 2, 3}}
	uvs := [][3]math.Vec2{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
	}
	islands := buildIslands(t, 4, tris, uvs)
	islands.ExtractBorders()

	border := islands.Islands[0].Borders[0]
	if got, want := len(border.Edges), 4; got != want {
		t.Fatalf("border edges = %d, want %d", got, want)
	}
	border.UpdateIndexes(0)

	// Every corner of a counter-clockwise square has a 90 degree interior,
	// so the outside angle is 270 degrees.
	want := 3 * math32.Pi / 2
	for i := range border.Edges {
		got := border.OutsideAngle(&border.Edges[i])
		if math32.Abs(got-want) > 1e-4 {
			t.Errorf("corner %d outside angle = %v, want %v", i, got, want)
		}
	}
}

func TestBorderCornerUVPointsOutward(t *testing.T) {
	tris := [][3]int{{0, 1, 2}, {0, 2, 3}}
	uvs := [][3]math.Vec2{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}},
		{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}},
	}
	islands := buildIslands(t, 4, tris, uvs)
	islands.ExtractBorders()

	border := islands.Islands[0].Borders[0]
	border.UpdateIndexes(0)

	// Locate the corner at (0, 0).
	var corner *BorderCorner
	for i := range border.Edges {
		edge := &border.Edges[i]
		if edge.UVVertex(0).UV == (math.Vec2{X: 0, Y: 0}) {
			corner = &BorderCorner{
				First:  &border.Edges[edge.PrevIndex],
				Second: edge,
				Angle:  border.OutsideAngle(edge),
			}
			break
		}
	}
	if corner == nil {
		t.Fatal("no border corner at (0,0)")
	}

	// Bisecting the outside wedge at the square's lower-left corner must
	// land strictly outside the square.
	uv := corner.UV(0.5, 0.001)
	if uv.X >= 0 || uv.Y >= 0 {
		t.Errorf("corner UV = %v, want both components negative", uv)
	}

	// The minimum distance floor applies when the edges are tiny.
	far := corner.UV(0.5, 10)
	if got := far.Distance(math.Vec2{X: 0, Y: 0}); math32.Abs(got-10) > 1e-3 {
		t.Errorf("distance = %v, want 10", got)
	}
}

func TestBorderFlip(t *testing.T) {
	tris := [][3]int{{0, 1, 2}}
	uvs := [][3]math.Vec2{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
	}
	islands := buildIslands(t, 3, tris, uvs)
	islands.ExtractBorders()

	border := islands.Islands[0].Borders[0]
	wasCCW := border.IsCCW()
	border.Flip()
	if border.IsCCW() == wasCCW {
		t.Error("Flip did not change orientation")
	}
	assertClosedBorder(t, border)
	border.Flip()
	if border.IsCCW() != wasCCW {
		t.Error("double Flip did not restore orientation")
	}
}
