package uv

import (
	"image"

	"github.com/chewxy/math32"

	"github.com/texbake/uvgrow/pkg/math"
)

// MaskUnclaimed is the sentinel for mask cells no island has claimed.
const MaskUnclaimed = uint16(0xffff)

// maskResolutionFromTileResolution derives the coarse mask grid from the
// texture resolution: a quarter of the texture, floored at 256.
func maskResolutionFromTileResolution(tileResolution image.Point) image.Point {
	return image.Point{
		X: max(tileResolution.X>>2, 256),
		Y: max(tileResolution.Y>>2, 256),
	}
}

// Tile records which island owns each coarse mask cell of one UDIM tile.
type Tile struct {
	UDIMOffset     math.Vec2
	TileResolution image.Point
	MaskResolution image.Point

	// Mask holds one island index per cell in row-major order, or
	// MaskUnclaimed.
	Mask []uint16
}

func newTile(udimOffset math.Vec2, tileResolution image.Point) *Tile {
	maskResolution := maskResolutionFromTileResolution(tileResolution)
	tile := &Tile{
		UDIMOffset:     udimOffset,
		TileResolution: tileResolution,
		MaskResolution: maskResolution,
		Mask:           make([]uint16, maskResolution.X*maskResolution.Y),
	}
	for i := range tile.Mask {
		tile.Mask[i] = MaskUnclaimed
	}
	return tile
}

// Contains reports whether the UV coordinate falls inside this tile's unit
// square.
func (t *Tile) Contains(uv math.Vec2) bool {
	local := uv.Sub(t.UDIMOffset)
	return local.X >= 0 && local.X < 1 && local.Y >= 0 && local.Y < 1
}

// PixelSizeInUVSpace returns the UV extent of one texture pixel, the
// resolvability unit the extender uses for minimum edge lengths.
func (t *Tile) PixelSizeInUVSpace() float32 {
	return math32.Min(1/float32(t.TileResolution.X), 1/float32(t.TileResolution.Y))
}

// IsMasked reports whether the mask cell containing uv is claimed by the
// given island.
func (t *Tile) IsMasked(islandIndex uint16, uv math.Vec2) bool {
	local := uv.Sub(t.UDIMOffset)
	if local.X < 0 || local.Y < 0 || local.X >= 1 || local.Y >= 1 {
		return false
	}
	x := int(local.X * float32(t.MaskResolution.X))
	y := int(local.Y * float32(t.MaskResolution.Y))
	return t.Mask[y*t.MaskResolution.X+x] == islandIndex
}

// crossTri returns the doubled signed area of triangle (a, b, c).
func crossTri(a, b, c math.Vec2) float32 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

// barycentricWeights returns the barycentric coordinates of co in the
// triangle (v1, v2, v3). Degenerate triangles yield equal weights.
func barycentricWeights(v1, v2, v3, co math.Vec2) math.Vec3 {
	w := math.Vec3{
		X: crossTri(v2, v3, co),
		Y: crossTri(v3, v1, co),
		Z: crossTri(v1, v2, co),
	}
	wtot := w.X + w.Y + w.Z
	if wtot != 0 {
		return w.Scale(1 / wtot)
	}
	return math.Vec3{X: 1.0 / 3, Y: 1.0 / 3, Z: 1.0 / 3}
}

func barycentricInsideTriangle(w math.Vec3) bool {
	return w.X > 0 && w.X < 1 && w.Y > 0 && w.Y < 1 && w.Z > 0 && w.Z < 1
}

// addIsland stamps one island's primitives into the tile: every mask cell
// whose center lies inside a primitive gets the island index. Later stamps
// overwrite earlier ones.
func (t *Tile) addIsland(island *Island, islandIndex uint16) {
	resX := float32(t.MaskResolution.X)
	resY := float32(t.MaskResolution.Y)
	for prim := range island.Primitives.Items() {
		meshPrim := prim.Prim
		lo, hi := meshPrim.UVBounds()

		xmin := max(int(math32.Floor((lo.X-t.UDIMOffset.X)*resX)), 0)
		xmax := min(int(math32.Ceil((hi.X-t.UDIMOffset.X)*resX)), t.MaskResolution.X-1)
		ymin := max(int(math32.Floor((lo.Y-t.UDIMOffset.Y)*resY)), 0)
		ymax := min(int(math32.Ceil((hi.Y-t.UDIMOffset.Y)*resY)), t.MaskResolution.Y-1)

		for y := ymin; y <= ymax; y++ {
			for x := xmin; x <= xmax; x++ {
				uv := math.Vec2{X: float32(x) / resX, Y: float32(y) / resY}
				weights := barycentricWeights(
					meshPrim.Vertices[0].UV,
					meshPrim.Vertices[1].UV,
					meshPrim.Vertices[2].UV,
					uv.Add(t.UDIMOffset))
				if !barycentricInsideTriangle(weights) {
					continue
				}
				t.Mask[y*t.MaskResolution.X+x] = islandIndex
			}
		}
	}
}

// dilateX copies claims from horizontal neighbors into unclaimed cells.
// Reports whether anything changed.
func (t *Tile) dilateX() bool {
	changed := false
	prev := make([]uint16, len(t.Mask))
	copy(prev, t.Mask)
	for y := 0; y < t.MaskResolution.Y; y++ {
		for x := 0; x < t.MaskResolution.X; x++ {
			offset := y*t.MaskResolution.X + x
			if prev[offset] != MaskUnclaimed {
				continue
			}
			if x != 0 && prev[offset-1] != MaskUnclaimed {
				t.Mask[offset] = prev[offset-1]
				changed = true
			} else if x < t.MaskResolution.X-1 && prev[offset+1] != MaskUnclaimed {
				t.Mask[offset] = prev[offset+1]
				changed = true
			}
		}
	}
	return changed
}

// dilateY copies claims from vertical neighbors into unclaimed cells.
// Reports whether anything changed.
func (t *Tile) dilateY() bool {
	changed := false
	prev := make([]uint16, len(t.Mask))
	copy(prev, t.Mask)
	for y := 0; y < t.MaskResolution.Y; y++ {
		for x := 0; x < t.MaskResolution.X; x++ {
			offset := y*t.MaskResolution.X + x
			if prev[offset] != MaskUnclaimed {
				continue
			}
			if y != 0 && prev[offset-t.MaskResolution.X] != MaskUnclaimed {
				t.Mask[offset] = prev[offset-t.MaskResolution.X]
				changed = true
			} else if y < t.MaskResolution.Y-1 && prev[offset+t.MaskResolution.X] != MaskUnclaimed {
				t.Mask[offset] = prev[offset+t.MaskResolution.X]
				changed = true
			}
		}
	}
	return changed
}

func (t *Tile) dilate(maxIterations int) {
	for i := 0; i < maxIterations; i++ {
		changed := t.dilateX()
		changed = t.dilateY() || changed
		if !changed {
			break
		}
	}
}

// IslandsMask is the set of per-UDIM-tile ownership grids for one bake
// session. It is built once, dilated, and then only read during extension.
type IslandsMask struct {
	Tiles []*Tile
}

// AddTile registers one UDIM tile with the given texture resolution.
func (m *IslandsMask) AddTile(udimOffset math.Vec2, resolution image.Point) {
	m.Tiles = append(m.Tiles, newTile(udimOffset, resolution))
}

// Add rasterizes all islands into every tile, in island order. Overlapping
// islands resolve by last stamp winning.
func (m *IslandsMask) Add(islands *Islands) {
	for _, tile := range m.Tiles {
		for index, island := range islands.Islands {
			tile.addIsland(island, uint16(index))
		}
	}
}

// Dilate grows every tile's claims into unclaimed neighbors until a fixed
// point or maxIterations is reached.
func (m *IslandsMask) Dilate(maxIterations int) {
	for _, tile := range m.Tiles {
		tile.dilate(maxIterations)
	}
}

// FindTile returns the tile containing uv, or nil.
func (m *IslandsMask) FindTile(uv math.Vec2) *Tile {
	for _, tile := range m.Tiles {
		if tile.Contains(uv) {
			return tile
		}
	}
	return nil
}

// IsMasked reports whether uv lies in a cell claimed by the given island.
func (m *IslandsMask) IsMasked(islandIndex uint16, uv math.Vec2) bool {
	tile := m.FindTile(uv)
	if tile == nil {
		return false
	}
	return tile.IsMasked(islandIndex, uv)
}
