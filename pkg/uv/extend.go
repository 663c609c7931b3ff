package uv

import (
	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/texbake/uvgrow/pkg/math"
	"github.com/texbake/uvgrow/pkg/mesh"
)

// sharpestCornerInBorder returns the corner with the smallest outside angle
// among the border's eligible edges, and that angle. Only corners at
// vertices that are tagged as border and not yet extended are eligible.
// Newly created border edges reference vertices with IsBorder unset, so
// geometry added during the pass is never reconsidered.
func sharpestCornerInBorder(border *Border) (*BorderCorner, float32) {
	angle := float32(math32.MaxFloat32)
	var result *BorderCorner
	for i := range border.Edges {
		edge := &border.Edges[i]
		uvVertex := edge.UVVertex(0)
		if !uvVertex.IsBorder || uvVertex.IsExtended {
			continue
		}
		newAngle := border.OutsideAngle(edge)
		if newAngle < angle {
			angle = newAngle
			result = &BorderCorner{
				First:  &border.Edges[edge.PrevIndex],
				Second: edge,
				Angle:  newAngle,
			}
		}
	}
	return result, angle
}

// sharpestBorderCorner picks the globally sharpest eligible corner across
// all borders of the island. Ties go to the first corner found.
func (isl *Island) sharpestBorderCorner() *BorderCorner {
	sharpest := float32(math32.MaxFloat32)
	var result *BorderCorner
	for _, border := range isl.Borders {
		corner, angle := sharpestCornerInBorder(border)
		if angle < sharpest {
			sharpest = angle
			result = corner
		}
	}
	return result
}

// findFillPrimitive returns a mesh triangle containing all three vertices,
// or nil when none exists.
func findFillPrimitive(v1, v2, v3 *mesh.Vertex) *mesh.Primitive {
	for _, edge := range v1.Edges {
		for _, prim := range edge.Primitives {
			if prim.HasVertex(v1) && prim.HasVertex(v2) && prim.HasVertex(v3) {
				return prim
			}
		}
	}
	return nil
}

// findFillPrimitiveForCorner returns the mesh triangle spanning the corner's
// angular gap: the triangle on the corner's first edge whose far vertex is
// the second edge's far vertex. Returns nil when the corner is degenerate or
// no such triangle exists.
func findFillPrimitiveForCorner(corner *BorderCorner) *mesh.Primitive {
	if corner.First.UVVertex(1) != corner.Second.UVVertex(0) {
		return nil
	}
	if corner.First.UVVertex(0) == corner.Second.UVVertex(1) {
		return nil
	}
	sharedVert := corner.Second.UVVertex(0)
	for _, meshEdge := range sharedVert.Vert.Edges {
		if !corner.First.Edge.HasSameMeshVertices(meshEdge) {
			continue
		}
		for _, prim := range meshEdge.Primitives {
			otherVert := prim.OtherUVVert(meshEdge.Vert1, meshEdge.Vert2).Vertex
			if otherVert == corner.Second.UVVertex(1).Vert {
				return prim
			}
		}
	}
	return nil
}

// addPrimitiveSharedUVEdge creates one UV triangle between two connected
// border vertices and a free UV coordinate, reusing the given mesh triangle
// as its origin.
func (isl *Island) addPrimitiveSharedUVEdge(connected1, connected2 *Vertex, uvUnconnected math.Vec2, meshPrim *mesh.Primitive) *Primitive {
	otherVert := meshPrim.OtherUVVert(connected1.Vert, connected2.Vert)
	vert := isl.lookupOrCreateVertex(Vertex{Vert: otherVert.Vertex, UV: uvUnconnected})

	meshVert1 := meshUVVert(meshPrim, connected1.Vert)
	vert1 := isl.lookupOrCreateVertex(Vertex{Vert: meshVert1.Vertex, UV: connected1.UV})
	meshVert2 := meshUVVert(meshPrim, connected2.Vert)
	vert2 := isl.lookupOrCreateVertex(Vertex{Vert: meshVert2.Vertex, UV: connected2.UV})

	prim := Primitive{Prim: meshPrim}
	prim.Edges = append(prim.Edges,
		isl.lookupOrCreateEdge(Edge{Vertices: [2]*Vertex{vert1, vert2}}),
		isl.lookupOrCreateEdge(Edge{Vertices: [2]*Vertex{vert2, vert}}),
		isl.lookupOrCreateEdge(Edge{Vertices: [2]*Vertex{vert, vert1}}),
	)
	created := isl.Primitives.Append(prim)
	created.appendToUVEdges()
	created.appendToUVVertices()
	return created
}

// addPrimitiveFill creates one UV triangle over three existing UV vertices.
func (isl *Island) addPrimitiveFill(v1, v2, v3 *Vertex, meshPrim *mesh.Primitive) *Primitive {
	prim := Primitive{Prim: meshPrim}
	prim.Edges = append(prim.Edges,
		isl.lookupOrCreateEdge(Edge{Vertices: [2]*Vertex{v1, v2}}),
		isl.lookupOrCreateEdge(Edge{Vertices: [2]*Vertex{v2, v3}}),
		isl.lookupOrCreateEdge(Edge{Vertices: [2]*Vertex{v3, v1}}),
	)
	created := isl.Primitives.Append(prim)
	created.appendToUVEdges()
	created.appendToUVVertices()
	return created
}

// extendAtVert grows the island at one corner. Depending on how much of the
// mesh fan around the corner vertex is already present in UV space this
// either splits the gap with two triangles around a single new vertex, or
// walks the fan inserting one fill triangle per missing segment plus a
// closing one, then splices the border cycle accordingly.
func (isl *Island) extendAtVert(corner *BorderCorner, minUVDistance float32) {
	borderIndex := corner.First.BorderIndex
	border := isl.Borders[borderIndex]

	uvVertex := corner.Second.UVVertex(0)
	vertFan := newFan(uvVertex.Vert)
	if !vertFan.full {
		isl.log.Debug("fan incomplete at vertex, skipping extension",
			zap.Int("vertex", uvVertex.Vert.Index))
		return
	}
	vertFan.initUVCoordinates(uvVertex)
	vertFan.markAlreadyAddedSegments(uvVertex)

	numToAdd := vertFan.countNumToAdd()

	if numToAdd == 0 {
		// The gap is spanned by a single existing mesh triangle. Adding it
		// as one UV triangle would produce a squashed sliver when the corner
		// angle nears 180 degrees, so the gap is always split into two
		// triangles around a new vertex at the angular midpoint.
		fillPrim1 := corner.Second.Prim.Prim
		fillPrim2 := corner.First.Prim.Prim
		if fillPrim := findFillPrimitiveForCorner(corner); fillPrim != nil {
			fillPrim1 = fillPrim
			fillPrim2 = fillPrim
		}

		centerUV := corner.UV(0.5, minUVDistance)
		prim1 := isl.addPrimitiveSharedUVEdge(
			corner.First.UVVertex(1), corner.First.UVVertex(0), centerUV, fillPrim1)
		prim2 := isl.addPrimitiveSharedUVEdge(
			corner.Second.UVVertex(0), corner.Second.UVVertex(1), centerUV, fillPrim2)

		// Rewire the corner's two border edges onto the halves of the new
		// triangles; the border keeps its length but now runs through the
		// new center vertex.
		{
			borderEdge := corner.First
			startUV := borderEdge.UVVertex(0).UV
			newEdge := prim1.UVEdgeByUV(startUV, centerUV)
			if newEdge == nil {
				isl.log.Debug("no replacement edge for corner first half")
				return
			}
			borderEdge.Prim = prim1
			borderEdge.Edge = newEdge
			borderEdge.Reverse = newEdge.Vertices[0].UV == centerUV
		}
		{
			borderEdge := corner.Second
			endUV := borderEdge.UVVertex(1).UV
			newEdge := prim2.UVEdgeByUV(endUV, centerUV)
			if newEdge == nil {
				isl.log.Debug("no replacement edge for corner second half")
				return
			}
			borderEdge.Prim = prim2
			borderEdge.Edge = newEdge
			borderEdge.Reverse = newEdge.Vertices[1].UV == centerUV
		}
		return
	}

	currentEdge := corner.First.Edge
	var newBorderEdges []BorderEdge

	for i := 0; i < numToAdd; i++ {
		oldVertex := currentEdge.OtherUVVertex(uvVertex.Vert)
		oldUV := oldVertex.UV
		sharedEdgeVertex := oldVertex.Vert

		factor := float32(i+1) / float32(numToAdd+1)
		newUV := corner.UV(factor, minUVDistance)

		// Find a fan segment reachable from the current edge.
		for s := range vertFan.inner {
			segment := &vertFan.inner[s]
			if segment.found {
				continue
			}

			fillPrim := findFillPrimitive(
				uvVertex.Vert,
				sharedEdgeVertex,
				segment.prim.Vertices[segment.vertOrder[1]].Vertex)
			if fillPrim == nil {
				continue
			}
			otherPrimVertex := fillPrim.OtherUVVert(uvVertex.Vert, sharedEdgeVertex).Vertex

			vert1 := isl.lookupOrCreateVertex(Vertex{Vert: uvVertex.Vert, UV: uvVertex.UV})
			vert2 := isl.lookupOrCreateVertex(Vertex{Vert: sharedEdgeVertex, UV: oldUV})
			vert3 := isl.lookupOrCreateVertex(Vertex{Vert: otherPrimVertex, UV: newUV})

			newPrim := isl.addPrimitiveFill(vert1, vert2, vert3, fillPrim)
			segment.found = true

			currentEdge = newPrim.UVEdge(uvVertex.Vert, otherPrimVertex)
			newBorderEdges = append(newBorderEdges,
				newBorderEdge(newPrim.UVEdge(sharedEdgeVertex, otherPrimVertex), newPrim))
			break
		}
	}

	// Closing segment back to the corner's far vertex.
	{
		oldVertex := currentEdge.OtherUVVertex(uvVertex.Vert)
		oldUV := oldVertex.UV
		sharedEdgeVertex := oldVertex.Vert
		fillPrim := findFillPrimitive(
			uvVertex.Vert, sharedEdgeVertex, corner.Second.UVVertex(1).Vert)
		if fillPrim == nil {
			isl.log.Debug("no fill triangle for closing segment, gap left open",
				zap.Int("vertex", uvVertex.Vert.Index))
		} else {
			otherPrimVertex := fillPrim.OtherUVVert(uvVertex.Vert, sharedEdgeVertex).Vertex

			vert1 := isl.lookupOrCreateVertex(Vertex{Vert: uvVertex.Vert, UV: uvVertex.UV})
			vert2 := isl.lookupOrCreateVertex(Vertex{Vert: sharedEdgeVertex, UV: oldUV})
			vert3 := isl.lookupOrCreateVertex(Vertex{
				Vert: otherPrimVertex,
				UV:   corner.Second.UVVertex(1).UV,
			})
			newPrim := isl.addPrimitiveFill(vert1, vert2, vert3, fillPrim)
			newBorderEdges = append(newBorderEdges,
				newBorderEdge(newPrim.UVEdge(sharedEdgeVertex, otherPrimVertex), newPrim))
		}
	}

	if len(newBorderEdges) == 0 {
		isl.log.Debug("no border edges produced, leaving border untouched",
			zap.Int("vertex", uvVertex.Vert.Index))
		return
	}

	// Splice: the corner's two edges are replaced by the new chain.
	borderInsert := corner.First.Index
	borderNext := corner.Second.Index
	border.Remove(borderInsert)
	if borderNext < borderInsert {
		borderInsert--
	} else {
		borderNext--
	}
	border.Remove(borderNext)
	border.Insert(borderInsert, newBorderEdges)

	border.UpdateIndexes(borderIndex)
}
