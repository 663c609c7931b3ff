package uv

import (
	"go.uber.org/zap"

	"github.com/texbake/uvgrow/pkg/mesh"
)

// Island owns the deduplicated UV topology of one maximal UV-connected
// component: vertex/edge/primitive stores plus the border cycles extracted
// from them. Stores are append-only; extension never deletes, it only adds
// geometry and rewires border bookkeeping.
type Island struct {
	vertices VectorList[Vertex]
	edges    VectorList[Edge]

	// Primitives is the island's triangle list, original and synthetic.
	// Downstream consumers rasterize paint onto exactly this list.
	Primitives VectorList[Primitive]

	// Borders are the island's boundary loops, one per hole plus the outer
	// boundary, populated by ExtractBorders.
	Borders []*Border

	vertexLookup map[int][]*Vertex
	edgeLookup   map[uvEdgeKey][]*Edge

	log *zap.Logger
}

func newIsland(log *zap.Logger) *Island {
	return &Island{
		vertexLookup: make(map[int][]*Vertex),
		edgeLookup:   make(map[uvEdgeKey][]*Edge),
		log:          log,
	}
}

// AddPrimitive inserts one mesh triangle into the island, creating or
// reusing the UV vertices and edges it touches and wiring all
// back-references.
func (isl *Island) AddPrimitive(meshPrim *mesh.Primitive) *Primitive {
	created := isl.Primitives.Append(Primitive{Prim: meshPrim})
	for _, meshEdge := range meshPrim.Edges {
		uv1 := meshUVVert(meshPrim, meshEdge.Vert1)
		uv2 := meshUVVert(meshPrim, meshEdge.Vert2)
		var template Edge
		template.Vertices[0] = isl.lookupOrCreateVertex(Vertex{Vert: uv1.Vertex, UV: uv1.UV})
		template.Vertices[1] = isl.lookupOrCreateVertex(Vertex{Vert: uv2.Vertex, UV: uv2.UV})
		uvEdge := isl.lookupOrCreateEdge(template)
		created.Edges = append(created.Edges, uvEdge)
		uvEdge.appendToUVVertices()
		uvEdge.Primitives = append(uvEdge.Primitives, created)
	}
	return created
}

// ExtractBorders walks all border edges of the island and assembles them
// into closed cycles, normalized to counter-clockwise orientation. Any
// previously extracted borders are discarded, so repeated calls on an
// unmodified island yield the same cycles.
func (isl *Island) ExtractBorders() {
	isl.Borders = isl.Borders[:0]

	var candidates []BorderEdge
	for prim := range isl.Primitives.Items() {
		for _, edge := range prim.Edges {
			if edge.IsBorder() {
				candidates = append(candidates, newBorderEdge(edge, prim))
			}
		}
	}

	for {
		border := extractBorderFromEdges(candidates)
		if border == nil {
			break
		}
		if !border.IsCCW() {
			border.Flip()
		}
		isl.Borders = append(isl.Borders, border)
	}
}

// ExtendBorder runs one extension pass: repeatedly pick the sharpest
// eligible border corner, check it against the island mask, and grow the
// border there. The pass halts when no eligible corner remains; every
// visited corner is consumed exactly once.
func (isl *Island) ExtendBorder(mask *IslandsMask, islandIndex int) {
	isl.resetExtendabilityFlags()

	for i, border := range isl.Borders {
		border.UpdateIndexes(i)
	}

	for {
		corner := isl.sharpestBorderCorner()
		if corner == nil {
			break
		}

		uvVertex := corner.Second.UVVertex(0)

		// A corner outside the mask's claimed region is consumed without
		// extending; it will not be retried this pass.
		tile := mask.FindTile(uvVertex.UV)
		if tile != nil && tile.IsMasked(uint16(islandIndex), uvVertex.UV) {
			isl.extendAtVert(corner, tile.PixelSizeInUVSpace()*2)
		} else {
			isl.log.Debug("corner outside claimed mask region, skipping",
				zap.Int("island", islandIndex),
				zap.Float32("u", uvVertex.UV.X),
				zap.Float32("v", uvVertex.UV.Y))
		}
		uvVertex.IsExtended = true
	}
}

// resetExtendabilityFlags clears every vertex's transient flags and re-tags
// the vertices touched by the current borders as extendable.
func (isl *Island) resetExtendabilityFlags() {
	for vertex := range isl.vertices.Items() {
		vertex.IsBorder = false
		vertex.IsExtended = false
	}
	for _, border := range isl.Borders {
		for i := range border.Edges {
			edge := border.Edges[i].Edge
			edge.Vertices[0].IsBorder = true
			edge.Vertices[1].IsBorder = true
		}
	}
}

// meshUVVert returns the primitive's corner for the given vertex, falling
// back to the first corner when the vertex is not part of the triangle.
func meshUVVert(p *mesh.Primitive, v *mesh.Vertex) *mesh.UVVert {
	if uvVert := p.UVVert(v); uvVert != nil {
		return uvVert
	}
	return &p.Vertices[0]
}

// Islands is the per-island topology for one mesh, in island-id order.
type Islands struct {
	Islands []*Island

	log *zap.Logger
}

// NewIslands builds the UV topology for every island of the segmented mesh.
// log may be nil; it is only used for diagnostic tracing.
func NewIslands(data *mesh.Data, log *zap.Logger) *Islands {
	if log == nil {
		log = zap.NewNop()
	}
	result := &Islands{log: log}
	for id := 0; id < data.IslandCount; id++ {
		island := newIsland(log)
		for i := range data.Primitives {
			if data.Primitives[i].Island == id {
				island.AddPrimitive(&data.Primitives[i])
			}
		}
		result.Islands = append(result.Islands, island)
	}
	return result
}

// ExtractBorders extracts the border cycles of every island.
func (ui *Islands) ExtractBorders() {
	for _, island := range ui.Islands {
		island.ExtractBorders()
	}
}

// ExtendBorders grows every island's borders against the given mask. The
// mask must be fully built (and dilated) before this call; it is only read
// here.
func (ui *Islands) ExtendBorders(mask *IslandsMask) {
	for index, island := range ui.Islands {
		ui.log.Debug("extending island borders", zap.Int("island", index))
		island.ExtendBorder(mask, index)
	}
}
