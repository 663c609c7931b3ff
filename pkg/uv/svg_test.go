package uv

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/texbake/uvgrow/pkg/math"
)

func TestWriteSVGIsland(t *testing.T) {
	tris := [][3]int{{0, 1, 2}}
	uvs := [][3]math.Vec2{
		{{X: 0.1, Y: 0.1}, {X: 0.9, Y: 0.1}, {X: 0.5, Y: 0.8}},
	}
	islands := buildIslands(t, 3, tris, uvs)
	islands.ExtractBorders()

	var buf bytes.Buffer
	WriteSVGHeader(&buf, 1)
	WriteSVGIsland(&buf, islands.Islands[0], 0)
	WriteSVGFooter(&buf)

	out := buf.String()
	if !strings.HasPrefix(out, "<svg") {
		t.Error("output does not start with an svg element")
	}
	if !strings.Contains(out, "<polygon") {
		t.Error("expected a polygon for the island primitive")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "</svg>") {
		t.Error("output does not end with a closing svg tag")
	}
}

func TestWriteSVGBorderAnnotatesAngles(t *testing.T) {
	tris := [][3]int{{0, 1, 2}}
	uvs := [][3]math.Vec2{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}},
	}
	islands := buildIslands(t, 3, tris, uvs)
	islands.ExtractBorders()

	border := islands.Islands[0].Borders[0]
	border.UpdateIndexes(0)

	var buf bytes.Buffer
	WriteSVGBorder(&buf, border, 0)

	if !strings.Contains(buf.String(), "<text") {
		t.Error("expected corner angle annotations")
	}
}

func TestWriteSVGMask(t *testing.T) {
	mask := &IslandsMask{}
	mask.AddTile(math.Vec2{}, image.Pt(1024, 1024))
	tile := mask.Tiles[0]
	tile.Mask[10*tile.MaskResolution.X+10] = 0

	var buf bytes.Buffer
	WriteSVGMask(&buf, mask, 0)

	if !strings.Contains(buf.String(), "<line") {
		t.Error("expected claim boundary lines around the claimed cell")
	}
}
