// Package mesh provides a read-only adjacency view over a triangulated mesh
// with per-corner UV coordinates. It is the input side of the UV island
// pipeline: vertices, deduplicated edges and triangle primitives, each with
// back-references to the others.
package mesh

import (
	"fmt"

	"github.com/texbake/uvgrow/pkg/math"
)

// Vertex is a mesh vertex with its incident edges.
type Vertex struct {
	Index int
	Edges []*Edge
}

// Edge connects two vertices and references the 1-2 triangles using it.
// An edge with a single primitive lies on the mesh boundary.
type Edge struct {
	Vert1, Vert2 *Vertex
	Primitives   []*Primitive
}

// HasVertex reports whether v is an endpoint of the edge.
func (e *Edge) HasVertex(v *Vertex) bool {
	return e.Vert1 == v || e.Vert2 == v
}

// UVVert pairs a vertex with its UV coordinate in one triangle's
// parametrization. The same vertex can carry different UVs in different
// triangles; that is what makes a UV seam.
type UVVert struct {
	Vertex *Vertex
	UV     math.Vec2
}

// Primitive is a triangle: three UV corners, three incident edges and the
// UV island it was assigned to (-1 when not yet segmented).
type Primitive struct {
	Index    int
	Vertices [3]UVVert
	Edges    [3]*Edge
	Island   int
}

// UVVert returns the corner of the primitive belonging to the given vertex,
// or nil when the vertex is not part of the triangle.
func (p *Primitive) UVVert(v *Vertex) *UVVert {
	for i := range p.Vertices {
		if p.Vertices[i].Vertex == v {
			return &p.Vertices[i]
		}
	}
	return nil
}

// HasVertex reports whether v is a corner of the triangle.
func (p *Primitive) HasVertex(v *Vertex) bool {
	return p.UVVert(v) != nil
}

// OtherUVVert returns the first corner that is neither v1 nor v2.
func (p *Primitive) OtherUVVert(v1, v2 *Vertex) *UVVert {
	for i := range p.Vertices {
		if p.Vertices[i].Vertex != v1 && p.Vertices[i].Vertex != v2 {
			return &p.Vertices[i]
		}
	}
	return nil
}

// UVBounds returns the axis-aligned UV bounding box of the triangle.
func (p *Primitive) UVBounds() (lo, hi math.Vec2) {
	lo = p.Vertices[0].UV
	hi = p.Vertices[0].UV
	for _, uvVert := range p.Vertices[1:] {
		if uvVert.UV.X < lo.X {
			lo.X = uvVert.UV.X
		}
		if uvVert.UV.Y < lo.Y {
			lo.Y = uvVert.UV.Y
		}
		if uvVert.UV.X > hi.X {
			hi.X = uvVert.UV.X
		}
		if uvVert.UV.Y > hi.Y {
			hi.Y = uvVert.UV.Y
		}
	}
	return lo, hi
}

// Data owns the adjacency structures for one mesh. All slices are allocated
// once up front; pointers into them remain valid for the lifetime of the
// Data.
type Data struct {
	Vertices   []Vertex
	Edges      []Edge
	Primitives []Primitive

	// IslandCount is the number of UV islands assigned by AssignIslands,
	// zero before segmentation.
	IslandCount int
}

type edgeKey struct {
	lo, hi int
}

func makeEdgeKey(a, b int) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// NewData builds the adjacency view from a triangle list. tris holds vertex
// indices per triangle, uvs the matching per-corner UV coordinates.
func NewData(vertexCount int, tris [][3]int, uvs [][3]math.Vec2) (*Data, error) {
	if len(tris) != len(uvs) {
		return nil, fmt.Errorf("mesh: %d triangles but %d uv triples", len(tris), len(uvs))
	}

	// Collect unique edges first so the edge slice can be allocated once.
	edgeIndex := make(map[edgeKey]int)
	for ti, tri := range tris {
		for c := 0; c < 3; c++ {
			v1 := tri[c]
			v2 := tri[(c+1)%3]
			if v1 < 0 || v1 >= vertexCount || v2 < 0 || v2 >= vertexCount {
				return nil, fmt.Errorf("mesh: triangle %d references vertex out of range", ti)
			}
			if v1 == v2 {
				return nil, fmt.Errorf("mesh: triangle %d is degenerate", ti)
			}
			key := makeEdgeKey(v1, v2)
			if _, ok := edgeIndex[key]; !ok {
				edgeIndex[key] = len(edgeIndex)
			}
		}
	}

	d := &Data{
		Vertices:   make([]Vertex, vertexCount),
		Edges:      make([]Edge, len(edgeIndex)),
		Primitives: make([]Primitive, len(tris)),
	}
	for i := range d.Vertices {
		d.Vertices[i].Index = i
	}
	// Initialize edges in first-encounter order so adjacency lists are
	// deterministic.
	for _, tri := range tris {
		for c := 0; c < 3; c++ {
			key := makeEdgeKey(tri[c], tri[(c+1)%3])
			edge := &d.Edges[edgeIndex[key]]
			if edge.Vert1 != nil {
				continue
			}
			edge.Vert1 = &d.Vertices[key.lo]
			edge.Vert2 = &d.Vertices[key.hi]
			edge.Vert1.Edges = append(edge.Vert1.Edges, edge)
			edge.Vert2.Edges = append(edge.Vert2.Edges, edge)
		}
	}

	for ti, tri := range tris {
		prim := &d.Primitives[ti]
		prim.Index = ti
		prim.Island = -1
		for c := 0; c < 3; c++ {
			prim.Vertices[c] = UVVert{Vertex: &d.Vertices[tri[c]], UV: uvs[ti][c]}
			key := makeEdgeKey(tri[c], tri[(c+1)%3])
			edge := &d.Edges[edgeIndex[key]]
			prim.Edges[c] = edge
			edge.Primitives = append(edge.Primitives, prim)
		}
	}

	return d, nil
}
