package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/texbake/uvgrow/pkg/math"
	"github.com/texbake/uvgrow/pkg/uv"
)

// objMesh is the subset of a Wavefront OBJ file the pipeline needs:
// positions, plus per-corner vertex and texture coordinate references,
// triangulated.
type objMesh struct {
	positions [][3]float32
	tris      [][3]int
	uvs       [][3]math.Vec2
}

func readOBJFile(path string) (*objMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readOBJ(f)
}

// readOBJ parses v, vt and f records. Faces must carry texture coordinates
// (v/vt or v/vt/vn corners); polygons are fan-triangulated. Everything else
// in the file is ignored.
func readOBJ(r io.Reader) (*objMesh, error) {
	m := &objMesh{}
	var texcoords []math.Vec2

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: vertex needs 3 coordinates", lineNo)
			}
			var p [3]float32
			for i := 0; i < 3; i++ {
				val, err := strconv.ParseFloat(fields[i+1], 32)
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				p[i] = float32(val)
			}
			m.positions = append(m.positions, p)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("obj line %d: texture coordinate needs 2 components", lineNo)
			}
			u, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			v, err := strconv.ParseFloat(fields[2], 32)
			if err != nil {
				return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
			}
			texcoords = append(texcoords, math.Vec2{X: float32(u), Y: float32(v)})

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("obj line %d: face needs at least 3 corners", lineNo)
			}
			type corner struct {
				v, vt int
			}
			corners := make([]corner, 0, len(fields)-1)
			for _, field := range fields[1:] {
				parts := strings.Split(field, "/")
				if len(parts) < 2 || parts[1] == "" {
					return nil, fmt.Errorf("obj line %d: corner %q has no texture coordinate", lineNo, field)
				}
				vi, err := strconv.Atoi(parts[0])
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				ti, err := strconv.Atoi(parts[1])
				if err != nil {
					return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
				}
				v := resolveOBJIndex(vi, len(m.positions))
				t := resolveOBJIndex(ti, len(texcoords))
				if v < 0 || v >= len(m.positions) {
					return nil, fmt.Errorf("obj line %d: vertex index %d out of range", lineNo, vi)
				}
				if t < 0 || t >= len(texcoords) {
					return nil, fmt.Errorf("obj line %d: texture index %d out of range", lineNo, ti)
				}
				corners = append(corners, corner{v: v, vt: t})
			}
			for i := 1; i+1 < len(corners); i++ {
				m.tris = append(m.tris, [3]int{corners[0].v, corners[i].v, corners[i+1].v})
				m.uvs = append(m.uvs, [3]math.Vec2{
					texcoords[corners[0].vt],
					texcoords[corners[i].vt],
					texcoords[corners[i+1].vt],
				})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj line %d: %w", lineNo, err)
	}
	if len(m.tris) == 0 {
		return nil, fmt.Errorf("obj: no textured faces found")
	}
	return m, nil
}

// resolveOBJIndex converts a 1-based or negative (relative) OBJ index to a
// 0-based one.
func resolveOBJIndex(index, count int) int {
	if index < 0 {
		return count + index
	}
	return index - 1
}

// writeOBJ emits the extended mesh: the original positions, the deduplicated
// UV coordinates of every island triangle (original and synthetic), and one
// face group per island.
func writeOBJ(w io.Writer, m *objMesh, islands *uv.Islands) error {
	type face struct {
		verts [3]int
		uvs   [3]int
	}

	uvIndex := make(map[math.Vec2]int)
	var uvList []math.Vec2
	lookupUV := func(v math.Vec2) int {
		if idx, ok := uvIndex[v]; ok {
			return idx
		}
		uvList = append(uvList, v)
		uvIndex[v] = len(uvList)
		return len(uvList)
	}

	faces := make([][]face, len(islands.Islands))
	for i, island := range islands.Islands {
		for prim := range island.Primitives.Items() {
			corners, ok := prim.UVVertices()
			if !ok {
				continue
			}
			var f face
			for c, corner := range corners {
				f.verts[c] = corner.Vert.Index + 1
				f.uvs[c] = lookupUV(corner.UV)
			}
			faces[i] = append(faces[i], f)
		}
	}

	bw := bufio.NewWriter(w)
	for _, p := range m.positions {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	for _, t := range uvList {
		fmt.Fprintf(bw, "vt %g %g\n", t.X, t.Y)
	}
	for i, islandFaces := range faces {
		fmt.Fprintf(bw, "g island_%d\n", i)
		for _, f := range islandFaces {
			fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n",
				f.verts[0], f.uvs[0], f.verts[1], f.uvs[1], f.verts[2], f.uvs[2])
		}
	}
	return bw.Flush()
}
