package uv

import (
	"github.com/texbake/uvgrow/pkg/math"
	"github.com/texbake/uvgrow/pkg/mesh"
)

// innerEdge is one blade of a vertex fan: a mesh triangle touching the fan
// vertex, with its corners reordered so index 0 is the fan vertex.
type innerEdge struct {
	prim      *mesh.Primitive
	uvs       [3]math.Vec2
	vertOrder [3]int

	// found marks blades whose (fan vertex, next vertex) segment is already
	// represented by a UV edge of the island.
	found bool
}

func newInnerEdge(prim *mesh.Primitive, vertex *mesh.Vertex) innerEdge {
	ie := innerEdge{prim: prim}
	switch vertex {
	case prim.Vertices[1].Vertex:
		ie.vertOrder = [3]int{1, 2, 0}
	case prim.Vertices[2].Vertex:
		ie.vertOrder = [3]int{2, 0, 1}
	default:
		ie.vertOrder = [3]int{0, 1, 2}
	}
	return ie
}

// fan is the ring of mesh triangles around a single vertex, walked in the 3D
// mesh topology. full is false when the walk dead-ends before returning to
// its start, which happens at non-manifold vertices and at mesh boundaries;
// such fans must not be used for extension.
type fan struct {
	inner []innerEdge
	full  bool
}

func newFan(vertex *mesh.Vertex) *fan {
	f := &fan{full: true}
	if len(vertex.Edges) == 0 || len(vertex.Edges[0].Primitives) == 0 {
		f.full = false
		return f
	}

	currentEdge := vertex.Edges[0]
	stopPrim := currentEdge.Primitives[0]
	prevPrim := stopPrim
	for {
		advanced := false
		for _, other := range currentEdge.Primitives {
			if advanced {
				break
			}
			if other == prevPrim {
				continue
			}
			for _, edge := range other.Edges {
				if edge == currentEdge || (edge.Vert1 != vertex && edge.Vert2 != vertex) {
					continue
				}
				f.inner = append(f.inner, newInnerEdge(other, vertex))
				currentEdge = edge
				prevPrim = other
				advanced = true
				break
			}
		}
		if !advanced {
			f.full = false
			break
		}
		if stopPrim == prevPrim {
			break
		}
	}
	return f
}

// countNumToAdd returns the number of blades not yet represented in UV
// space, which is the number of fill triangles an extension needs.
func (f *fan) countNumToAdd() int {
	count := 0
	for i := range f.inner {
		if !f.inner[i].found {
			count++
		}
	}
	return count
}

// markAlreadyAddedSegments flags each blade whose segment is already covered
// by one of the UV vertex's incident edges, matching on mesh vertex pairs.
func (f *fan) markAlreadyAddedSegments(uvVertex *Vertex) {
	for i := range f.inner {
		fanEdge := &f.inner[i]
		fanEdge.found = false
		v0 := fanEdge.prim.Vertices[fanEdge.vertOrder[0]].Vertex
		v1 := fanEdge.prim.Vertices[fanEdge.vertOrder[1]].Vertex
		for _, edge := range uvVertex.Edges {
			e0 := edge.Vertices[0].Vert
			e1 := edge.Vertices[1].Vert
			if (e0 == v0 && e1 == v1) || (e0 == v1 && e1 == v0) {
				fanEdge.found = true
				break
			}
		}
	}
}

// initUVCoordinates seeds each blade's first two UVs from the island's
// existing edges around the fan vertex and chains the third UV from the
// next blade.
func (f *fan) initUVCoordinates(uvVertex *Vertex) {
	for i := range f.inner {
		fanEdge := &f.inner[i]
		otherVert := fanEdge.prim.Vertices[fanEdge.vertOrder[0]].Vertex
		if otherVert == uvVertex.Vert {
			otherVert = fanEdge.prim.Vertices[fanEdge.vertOrder[1]].Vertex
		}
		for _, edge := range uvVertex.Edges {
			otherUVVertex := edge.OtherUVVertex(uvVertex.Vert)
			if otherUVVertex.Vert == otherVert {
				fanEdge.uvs[0] = uvVertex.UV
				fanEdge.uvs[1] = otherUVVertex.UV
				break
			}
		}
	}

	if len(f.inner) == 0 {
		return
	}
	f.inner[len(f.inner)-1].uvs[2] = f.inner[0].uvs[1]
	for i := 0; i < len(f.inner)-1; i++ {
		f.inner[i].uvs[2] = f.inner[i+1].uvs[1]
	}
}
