package uv

import (
	"fmt"
	"io"

	"github.com/chewxy/math32"

	"github.com/texbake/uvgrow/pkg/math"
)

// SVG emitters for visual debugging of islands, borders and masks. These are
// diagnostic collaborators only; nothing in the extension pipeline calls
// them. Successive steps are laid out side by side via the step argument.

const svgScale = 1024

func svgX(uv math.Vec2) float32 {
	return uv.X * svgScale
}

func svgY(uv math.Vec2) float32 {
	return svgScale - uv.Y*svgScale
}

// WriteSVGHeader opens an SVG document sized for the given number of
// side-by-side unit UV tiles.
func WriteSVGHeader(w io.Writer, steps int) {
	if steps < 1 {
		steps = 1
	}
	fmt.Fprintf(w, "<svg viewBox=\"0 0 %d %d\" width=\"%d\" height=\"%d\" xmlns=\"http://www.w3.org/2000/svg\">\n",
		steps*svgScale, svgScale, steps*svgScale, svgScale)
}

// WriteSVGFooter closes the SVG document.
func WriteSVGFooter(w io.Writer) {
	fmt.Fprintln(w, "</svg>")
}

func svgEdge(w io.Writer, edge *Edge) {
	fmt.Fprintf(w, "    <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\"/>\n",
		svgX(edge.Vertices[0].UV), svgY(edge.Vertices[0].UV),
		svgX(edge.Vertices[1].UV), svgY(edge.Vertices[1].UV))
}

// extractBorder walks the primitive's own three edges into a cycle, used for
// emitting it as a polygon.
func (p *Primitive) extractBorder() *Border {
	borderEdges := make([]BorderEdge, 0, len(p.Edges))
	for _, edge := range p.Edges {
		borderEdges = append(borderEdges, newBorderEdge(edge, p))
	}
	return extractBorderFromEdges(borderEdges)
}

func svgPrimitive(w io.Writer, prim *Primitive) {
	border := prim.extractBorder()
	fmt.Fprint(w, "    <polygon points=\"")
	for i := range border.Edges {
		uv := border.Edges[i].UVVertex(0).UV
		fmt.Fprintf(w, " %g,%g", svgX(uv), svgY(uv))
	}
	fmt.Fprint(w, "\"/>\n")
}

// WriteSVGIsland draws one island: all primitives, its border edges
// emphasized, and its extendable/consumed border vertices marked.
func WriteSVGIsland(w io.Writer, island *Island, step int) {
	fmt.Fprintf(w, "<g transform=\"translate(%d 0)\">\n", step*svgScale)
	fmt.Fprintln(w, " <g fill=\"none\">")

	fmt.Fprintln(w, "  <g stroke=\"grey\" stroke-width=\"1\">")
	for prim := range island.Primitives.Items() {
		svgPrimitive(w, prim)
	}
	fmt.Fprintln(w, "  </g>")

	fmt.Fprintln(w, "  <g stroke=\"black\" stroke-width=\"2\">")
	for prim := range island.Primitives.Items() {
		for _, edge := range prim.Edges {
			if edge.IsBorder() {
				svgEdge(w, edge)
			}
		}
	}
	fmt.Fprintln(w, "  </g>")

	fmt.Fprintln(w, "  <g fill=\"green\">")
	for vertex := range island.vertices.Items() {
		if vertex.IsBorder && !vertex.IsExtended {
			fmt.Fprintf(w, "    <circle cx=\"%g\" cy=\"%g\" r=\"3\"/>\n",
				svgX(vertex.UV), svgY(vertex.UV))
		}
	}
	fmt.Fprintln(w, "  </g>")

	fmt.Fprintln(w, "  <g fill=\"orange\">")
	for vertex := range island.vertices.Items() {
		if vertex.IsBorder && vertex.IsExtended {
			fmt.Fprintf(w, "    <circle cx=\"%g\" cy=\"%g\" r=\"3\"/>\n",
				svgX(vertex.UV), svgY(vertex.UV))
		}
	}
	fmt.Fprintln(w, "  </g>")

	fmt.Fprintln(w, " </g>")
	fmt.Fprintln(w, "</g>")
}

// WriteSVGIslands draws every island's interior (dashed) and border (solid)
// edges.
func WriteSVGIslands(w io.Writer, islands *Islands, step int) {
	fmt.Fprintf(w, "<g transform=\"translate(%d 0)\">\n", step*svgScale)
	for _, island := range islands.Islands {
		fmt.Fprintln(w, " <g fill=\"none\">")

		fmt.Fprintln(w, "  <g stroke=\"grey\" stroke-dasharray=\"5 5\">")
		for prim := range island.Primitives.Items() {
			for _, edge := range prim.Edges {
				if !edge.IsBorder() {
					svgEdge(w, edge)
				}
			}
		}
		fmt.Fprintln(w, "  </g>")

		fmt.Fprintln(w, "  <g stroke=\"black\" stroke-width=\"2\">")
		for prim := range island.Primitives.Items() {
			for _, edge := range prim.Edges {
				if edge.IsBorder() {
					svgEdge(w, edge)
				}
			}
		}
		fmt.Fprintln(w, "  </g>")

		fmt.Fprintln(w, " </g>")
	}
	fmt.Fprintln(w, "</g>")
}

// WriteSVGBorder draws one border loop with the outside angle (in degrees)
// annotated at every corner.
func WriteSVGBorder(w io.Writer, border *Border, step int) {
	fmt.Fprintf(w, "<g transform=\"translate(%d 0)\">\n", step*svgScale)

	fmt.Fprintln(w, " <g stroke=\"grey\">")
	for i := range border.Edges {
		edge := &border.Edges[i]
		v1 := edge.UVVertex(0).UV
		v2 := edge.UVVertex(1).UV
		fmt.Fprintf(w, "    <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\"/>\n",
			svgX(v1), svgY(v1), svgX(v2), svgY(v2))
	}
	fmt.Fprintln(w, " </g>")

	fmt.Fprintln(w, " <g fill=\"black\">")
	for i := range border.Edges {
		edge := &border.Edges[i]
		v1 := edge.UVVertex(0).UV
		fmt.Fprintf(w, "    <text x=\"%g\" y=\"%g\">%g</text>\n",
			svgX(v1), svgY(v1), border.OutsideAngle(edge)/math32.Pi*180)
	}
	fmt.Fprintln(w, " </g>")

	fmt.Fprintln(w, "</g>")
}

// WriteSVGMask draws the claim boundaries of every mask tile: a line wherever
// two neighboring cells disagree.
func WriteSVGMask(w io.Writer, mask *IslandsMask, step int) {
	fmt.Fprintf(w, "<g transform=\"translate(%d 0)\">\n", step*svgScale)
	fmt.Fprintln(w, " <g fill=\"none\" stroke=\"black\">")
	for _, tile := range mask.Tiles {
		res := tile.MaskResolution
		fres := math.Vec2{X: float32(res.X), Y: float32(res.Y)}

		for x := 0; x < res.X; x++ {
			for y := 0; y < res.Y; y++ {
				offset := y*res.X + x
				if x == 0 && tile.Mask[offset] == MaskUnclaimed {
					continue
				}
				if x > 0 && tile.Mask[offset] == tile.Mask[offset-1] {
					continue
				}
				start := math.Vec2{X: float32(x) / fres.X, Y: float32(y) / fres.Y}
				end := math.Vec2{X: float32(x) / fres.X, Y: float32(y+1) / fres.Y}
				fmt.Fprintf(w, "    <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\"/>\n",
					svgX(start), svgY(start), svgX(end), svgY(end))
			}
		}

		for x := 0; x < res.X; x++ {
			for y := 0; y < res.Y; y++ {
				offset := y*res.X + x
				if y == 0 && tile.Mask[offset] == MaskUnclaimed {
					continue
				}
				if y > 0 && tile.Mask[offset] == tile.Mask[offset-res.X] {
					continue
				}
				start := math.Vec2{X: float32(x) / fres.X, Y: float32(y) / fres.Y}
				end := math.Vec2{X: float32(x+1) / fres.X, Y: float32(y) / fres.Y}
				fmt.Fprintf(w, "    <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\"/>\n",
					svgX(start), svgY(start), svgX(end), svgY(end))
			}
		}
	}
	fmt.Fprintln(w, " </g>")
	fmt.Fprintln(w, "</g>")
}
