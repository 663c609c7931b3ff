package uv

import (
	"slices"

	"github.com/chewxy/math32"

	"github.com/texbake/uvgrow/pkg/math"
)

// BorderEdge is one segment of a border cycle: a UV edge, the primitive it
// belongs to, and an orientation flag. Prev/next indices link the segment
// into its cyclic border; they are recomputed by Border.UpdateIndexes after
// every structural change.
type BorderEdge struct {
	Edge *Edge
	Prim *Primitive

	// Reverse is set when the border walks the edge from Vertices[1] to
	// Vertices[0].
	Reverse bool

	tag bool

	PrevIndex   int
	Index       int
	NextIndex   int
	BorderIndex int
}

func newBorderEdge(edge *Edge, prim *Primitive) BorderEdge {
	return BorderEdge{Edge: edge, Prim: prim}
}

// UVVertex returns the border-ordered endpoint: 0 is the start of the walk
// along this edge, 1 the end.
func (be *BorderEdge) UVVertex(i int) *Vertex {
	if be.Reverse {
		i = 1 - i
	}
	return be.Edge.Vertices[i]
}

// OtherUVVertex returns the vertex of the owning primitive that is not an
// endpoint of this edge.
func (be *BorderEdge) OtherUVVertex() *Vertex {
	for _, edge := range be.Prim.Edges {
		for _, vertex := range edge.Vertices {
			if vertex != be.Edge.Vertices[0] && vertex != be.Edge.Vertices[1] {
				return vertex
			}
		}
	}
	return nil
}

// Length returns the UV-space length of the edge.
func (be *BorderEdge) Length() float32 {
	return be.Edge.Vertices[0].UV.Distance(be.Edge.Vertices[1].UV)
}

// Border is an ordered cyclic sequence of border edges forming one closed
// boundary loop of an island. Orientation is normalized to counter-clockwise
// after extraction.
type Border struct {
	Edges []BorderEdge
}

// extractBorderFromEdges assembles one border cycle from the untagged
// candidate edges, tagging every edge it consumes. It returns nil when all
// candidates are already tagged, which signals that no border remains.
//
// The walk matches on UV coordinates rather than vertex identity so that
// seams with coinciding mesh vertices stay on separate loops. On malformed
// input where no continuation exists the partial border is returned as-is.
func extractBorderFromEdges(edges []BorderEdge) *Border {
	var start *BorderEdge
	for i := range edges {
		if !edges[i].tag {
			start = &edges[i]
			break
		}
	}
	if start == nil {
		return nil
	}

	border := &Border{}
	start.tag = true
	start.Reverse = false
	border.Edges = append(border.Edges, *start)

	firstUV := start.UVVertex(0).UV
	currentUV := start.UVVertex(1).UV
	for currentUV != firstUV {
		advanced := false
		for i := range edges {
			candidate := &edges[i]
			if candidate.tag {
				continue
			}
			for j := 0; j < 2; j++ {
				if candidate.Edge.Vertices[j].UV != currentUV {
					continue
				}
				candidate.Reverse = j == 1
				candidate.tag = true
				currentUV = candidate.UVVertex(1).UV
				border.Edges = append(border.Edges, *candidate)
				advanced = true
				break
			}
			if advanced {
				break
			}
		}
		if !advanced {
			break
		}
	}
	return border
}

// IsCCW reports whether the border runs counter-clockwise, judged by the
// winding of the first edge's owning triangle.
func (b *Border) IsCCW() bool {
	edge := &b.Edges[0]
	p1 := edge.UVVertex(0).UV
	p2 := edge.UVVertex(1).UV
	p3 := edge.OtherUVVertex().UV
	area2 := p1.Cross(p2) + p2.Cross(p3) + p3.Cross(p1)
	return area2 > 0
}

// Flip reverses the border in place, flipping each edge's orientation.
func (b *Border) Flip() {
	borderIndex := b.Edges[0].BorderIndex
	for i := range b.Edges {
		b.Edges[i].Reverse = !b.Edges[i].Reverse
	}
	slices.Reverse(b.Edges)
	b.UpdateIndexes(borderIndex)
}

// OutsideAngle returns the angle of the region outside the island at the
// start vertex of the given edge. Convex corners of a counter-clockwise
// border yield large angles, concave notches small ones.
func (b *Border) OutsideAngle(edge *BorderEdge) float32 {
	prev := &b.Edges[edge.PrevIndex]
	prevDir := prev.UVVertex(1).UV.Sub(prev.UVVertex(0).UV)
	dir := edge.UVVertex(1).UV.Sub(edge.UVVertex(0).UV)
	return math32.Pi - prevDir.AngleSigned(dir)
}

// UpdateIndexes recomputes the cyclic prev/next links and the owning border
// id of every edge. Must run after any structural change before corner
// angles are queried.
func (b *Border) UpdateIndexes(borderIndex int) {
	n := len(b.Edges)
	for i := 0; i < n; i++ {
		b.Edges[i].PrevIndex = (i - 1 + n) % n
		b.Edges[i].Index = i
		b.Edges[i].NextIndex = (i + 1) % n
		b.Edges[i].BorderIndex = borderIndex
	}
}

// Remove deletes the edge at the given position.
func (b *Border) Remove(index int) {
	b.Edges = append(b.Edges[:index], b.Edges[index+1:]...)
}

// Insert splices the given edges in at the given position.
func (b *Border) Insert(index int, edges []BorderEdge) {
	b.Edges = slices.Insert(b.Edges, index, edges...)
}

// BorderCorner is a pair of adjacent border edges meeting at a shared
// vertex, with the outside angle between them.
type BorderCorner struct {
	First  *BorderEdge
	Second *BorderEdge
	Angle  float32
}

// UV places a new coordinate inside the corner's outside wedge by rotating
// the direction back along the first edge by factor of the corner angle.
// The distance interpolates the two edge lengths but never drops below
// minUVDistance, so new geometry stays resolvable at raster resolution.
func (c *BorderCorner) UV(factor, minUVDistance float32) math.Vec2 {
	origin := c.First.UVVertex(1).UV
	angleBetween := c.Angle * factor
	desiredLen := math32.Max(
		c.Second.Length()*factor+c.First.Length()*(1-factor),
		minUVDistance,
	)
	v := c.First.UVVertex(0).UV.Sub(origin).Normalize()
	rotated := math.Rotation2(angleBetween).MulVec2(v)
	return rotated.Scale(desiredLen).Add(origin)
}
