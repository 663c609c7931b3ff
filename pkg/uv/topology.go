// Package uv implements UV-island border extension: it grows the UV-space
// boundary of each island outward by one synthetic ring of triangles so
// that texture painting near seams samples valid color.
//
// The package owns a deduplicated vertex/edge/primitive graph per island,
// extracts closed border cycles from it, and incrementally extends the
// sharpest border corners with fill triangles discovered in the 3D mesh
// topology. A coarse per-tile ownership mask gates which corners may grow.
package uv

import (
	"github.com/texbake/uvgrow/pkg/math"
	"github.com/texbake/uvgrow/pkg/mesh"
)

// Vertex is a (mesh vertex, UV coordinate) pair, unique within one island.
// Two triangles sharing a mesh vertex but disagreeing on its UV produce two
// distinct Vertex records; that disagreement is precisely a UV seam.
type Vertex struct {
	Vert *mesh.Vertex
	UV   math.Vec2

	// Transient extension flags, reset at the start of every pass.
	IsBorder   bool
	IsExtended bool

	// Edges lists the UV edges using this vertex.
	Edges []*Edge
}

// Edge is an unordered pair of UV vertices, deduplicated per island, with
// back-references to the primitives using it.
type Edge struct {
	Vertices   [2]*Vertex
	Primitives []*Primitive
}

// IsBorder reports whether exactly one primitive uses the edge, which makes
// it part of the island's boundary.
func (e *Edge) IsBorder() bool {
	return len(e.Primitives) == 1
}

// HasSameVertices reports whether the edge connects the given UV vertices,
// in either order.
func (e *Edge) HasSameVertices(v1, v2 *Vertex) bool {
	return (e.Vertices[0] == v1 && e.Vertices[1] == v2) ||
		(e.Vertices[0] == v2 && e.Vertices[1] == v1)
}

// HasSameMeshVertices reports whether the edge spans the same mesh vertices
// as the given mesh edge.
func (e *Edge) HasSameMeshVertices(me *mesh.Edge) bool {
	a := e.Vertices[0].Vert
	b := e.Vertices[1].Vert
	return (a == me.Vert1 && b == me.Vert2) || (a == me.Vert2 && b == me.Vert1)
}

// OtherUVVertex returns the endpoint whose mesh vertex differs from v.
func (e *Edge) OtherUVVertex(v *mesh.Vertex) *Vertex {
	if e.Vertices[0].Vert == v {
		return e.Vertices[1]
	}
	return e.Vertices[0]
}

// appendToUVVertices registers the edge with both endpoint vertices.
func (e *Edge) appendToUVVertices() {
	for _, vertex := range e.Vertices {
		found := false
		for _, known := range vertex.Edges {
			if known == e {
				found = true
				break
			}
		}
		if !found {
			vertex.Edges = append(vertex.Edges, e)
		}
	}
}

// Primitive is one triangle of the island in UV space: the originating mesh
// triangle plus its three UV edges in cycle order. Synthetic fill triangles
// reference the mesh triangle they were copied from.
type Primitive struct {
	Prim  *mesh.Primitive
	Edges []*Edge
}

// UVEdge returns the primitive's edge spanning the given mesh vertices, or
// nil when no edge matches.
func (p *Primitive) UVEdge(v1, v2 *mesh.Vertex) *Edge {
	for _, edge := range p.Edges {
		a := edge.Vertices[0].Vert
		b := edge.Vertices[1].Vert
		if (a == v1 && b == v2) || (a == v2 && b == v1) {
			return edge
		}
	}
	return nil
}

// UVEdgeByUV returns the primitive's edge whose endpoint UVs match the given
// coordinates, or nil when no edge matches.
func (p *Primitive) UVEdgeByUV(uv1, uv2 math.Vec2) *Edge {
	for _, edge := range p.Edges {
		a := edge.Vertices[0].UV
		b := edge.Vertices[1].UV
		if (a == uv1 && b == uv2) || (a == uv2 && b == uv1) {
			return edge
		}
	}
	return nil
}

// UVVertices returns the primitive's three corners in edge cycle order.
// Reports false when its edges do not close into a triangle.
func (p *Primitive) UVVertices() ([3]*Vertex, bool) {
	var corners [3]*Vertex
	border := p.extractBorder()
	if border == nil || len(border.Edges) != 3 {
		return corners, false
	}
	for i := range border.Edges {
		corners[i] = border.Edges[i].UVVertex(0)
	}
	return corners, true
}

// appendToUVEdges registers the primitive with each of its edges.
func (p *Primitive) appendToUVEdges() {
	for _, edge := range p.Edges {
		edge.Primitives = append(edge.Primitives, p)
	}
}

// appendToUVVertices registers each edge with its endpoint vertices.
func (p *Primitive) appendToUVVertices() {
	for _, edge := range p.Edges {
		edge.appendToUVVertices()
	}
}

// lookupOrCreateVertex returns the island's vertex matching the template's
// (mesh vertex, UV) identity, creating it when absent.
func (isl *Island) lookupOrCreateVertex(template Vertex) *Vertex {
	index := template.Vert.Index
	for _, candidate := range isl.vertexLookup[index] {
		if candidate.UV == template.UV {
			return candidate
		}
	}
	created := isl.vertices.Append(template)
	isl.vertexLookup[index] = append(isl.vertexLookup[index], created)
	return created
}

// lookupOrCreateEdge returns the island's edge connecting the template's UV
// vertices, creating it when absent. Equality is the unordered vertex pair.
func (isl *Island) lookupOrCreateEdge(template Edge) *Edge {
	key := makeUVEdgeKey(template.Vertices[0].Vert.Index, template.Vertices[1].Vert.Index)
	for _, candidate := range isl.edgeLookup[key] {
		if candidate.HasSameVertices(template.Vertices[0], template.Vertices[1]) {
			return candidate
		}
	}
	created := isl.edges.Append(template)
	isl.edgeLookup[key] = append(isl.edgeLookup[key], created)
	return created
}

type uvEdgeKey struct {
	lo, hi int
}

func makeUVEdgeKey(a, b int) uvEdgeKey {
	if a < b {
		return uvEdgeKey{a, b}
	}
	return uvEdgeKey{b, a}
}
