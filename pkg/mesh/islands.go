package mesh

// uvConnected reports whether two triangles sharing the given edge agree on
// the UV coordinates of both endpoints. Triangles that disagree are split by
// a UV seam and belong to different islands.
func uvConnected(edge *Edge, a, b *Primitive) bool {
	for _, v := range [2]*Vertex{edge.Vert1, edge.Vert2} {
		uvA := a.UVVert(v)
		uvB := b.UVVert(v)
		if uvA == nil || uvB == nil || uvA.UV != uvB.UV {
			return false
		}
	}
	return true
}

// AssignIslands partitions the primitives into UV-connected components and
// stores the island id on each primitive. Returns the number of islands.
//
// This runs on the driver side: the extension core consumes island ids as
// given and never re-segments.
func AssignIslands(d *Data) int {
	for i := range d.Primitives {
		d.Primitives[i].Island = -1
	}

	islandCount := 0
	queue := make([]*Primitive, 0, 64)
	for i := range d.Primitives {
		if d.Primitives[i].Island != -1 {
			continue
		}
		island := islandCount
		islandCount++

		d.Primitives[i].Island = island
		queue = append(queue[:0], &d.Primitives[i])
		for len(queue) > 0 {
			prim := queue[len(queue)-1]
			queue = queue[:len(queue)-1]
			for _, edge := range prim.Edges {
				for _, other := range edge.Primitives {
					if other == prim || other.Island != -1 {
						continue
					}
					if !uvConnected(edge, prim, other) {
						continue
					}
					other.Island = island
					queue = append(queue, other)
				}
			}
		}
	}

	d.IslandCount = islandCount
	return islandCount
}
