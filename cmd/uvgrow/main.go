// uvgrow extends the borders of UV islands with a ring of synthetic
// triangles so texture bakes survive seam bleeding when mipmapped or
// blurred.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"

	"github.com/chewxy/math32"
	"go.uber.org/zap"

	"github.com/texbake/uvgrow/internal/config"
	"github.com/texbake/uvgrow/internal/logger"
	"github.com/texbake/uvgrow/pkg/math"
	"github.com/texbake/uvgrow/pkg/mesh"
	"github.com/texbake/uvgrow/pkg/uv"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "grow":
		cmdGrow(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`uvgrow - UV island border extension for texture baking

Usage:
  uvgrow <command> [options]

Commands:
  info <mesh.obj>                          Show UV island statistics
  grow [options] <mesh.obj> [output.obj]   Extend island borders
  config [path]                            Write the default config file

Options for grow:
  -config path      Path to config file
  -debug            Enable debug logging
  -resolution N     Bake texture resolution per tile
  -dilate N         Mask dilation iterations
  -udim             Assign islands to UDIM tiles
  -mask-png path    Write island ownership mask to PNG file
  -svg path         Write island/border diagnostics to SVG file

Examples:
  uvgrow info character.obj
  uvgrow grow -resolution 2048 character.obj character_grown.obj
  uvgrow grow -udim -mask-png mask.png character.obj`)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: uvgrow info <mesh.obj>")
		os.Exit(1)
	}

	m, err := readOBJFile(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := mesh.NewData(len(m.positions), m.tris, m.uvs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	islandCount := mesh.AssignIslands(data)

	islands := uv.NewIslands(data, nil)
	islands.ExtractBorders()

	fmt.Printf("Mesh:      %s\n", fs.Arg(0))
	fmt.Printf("Vertices:  %d\n", len(data.Vertices))
	fmt.Printf("Edges:     %d\n", len(data.Edges))
	fmt.Printf("Triangles: %d\n", len(data.Primitives))
	fmt.Printf("Islands:   %d\n", islandCount)
	fmt.Println()

	for i, island := range islands.Islands {
		lo, hi := islandUVBounds(island)
		fmt.Printf("  island %-3d %6d tris  %d border loop(s)  uv [%.3f %.3f]..[%.3f %.3f]\n",
			i, island.Primitives.Len(), len(island.Borders), lo.X, lo.Y, hi.X, hi.Y)
	}
}

func islandUVBounds(island *uv.Island) (lo, hi math.Vec2) {
	first := true
	for prim := range island.Primitives.Items() {
		plo, phi := prim.Prim.UVBounds()
		if first {
			lo, hi = plo, phi
			first = false
			continue
		}
		lo.X = math32.Min(lo.X, plo.X)
		lo.Y = math32.Min(lo.Y, plo.Y)
		hi.X = math32.Max(hi.X, phi.X)
		hi.Y = math32.Max(hi.Y, phi.Y)
	}
	return lo, hi
}

func cmdGrow(args []string) {
	// grow reuses the shared flag set so config.Load sees the overrides.
	if err := config.ParseFlags(args); err != nil {
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: uvgrow grow [options] <mesh.obj> [output.obj]")
		os.Exit(1)
	}

	m, err := readOBJFile(flag.Arg(0))
	if err != nil {
		logger.Fatal("reading mesh", zap.Error(err))
	}

	data, err := mesh.NewData(len(m.positions), m.tris, m.uvs)
	if err != nil {
		logger.Fatal("building mesh adjacency", zap.Error(err))
	}
	islandCount := mesh.AssignIslands(data)
	logger.Info("mesh loaded",
		zap.String("path", flag.Arg(0)),
		zap.Int("vertices", len(data.Vertices)),
		zap.Int("triangles", len(data.Primitives)),
		zap.Int("islands", islandCount))

	islands := uv.NewIslands(data, logger.Log)
	islands.ExtractBorders()

	mask := &uv.IslandsMask{}
	resolution := image.Pt(cfg.Texture.Resolution, cfg.Texture.Resolution)
	if cfg.Texture.UDIM {
		tiles := udimTiles(m)
		logger.Info("udim tiles detected", zap.Int("tiles", len(tiles)))
		for _, offset := range tiles {
			mask.AddTile(offset, resolution)
		}
	} else {
		mask.AddTile(math.Vec2{}, resolution)
	}
	mask.Add(islands)
	mask.Dilate(cfg.Mask.DilateIterations)

	if cfg.Output.MaskPNG != "" {
		if err := writeMaskPNG(cfg.Output.MaskPNG, mask); err != nil {
			logger.Error("writing mask png", zap.Error(err))
		} else {
			logger.Info("mask written", zap.String("path", cfg.Output.MaskPNG))
		}
	}

	islands.ExtendBorders(mask)

	if cfg.Output.SVG != "" {
		if err := writeDiagnosticsSVG(cfg.Output.SVG, islands, mask); err != nil {
			logger.Error("writing svg", zap.Error(err))
		} else {
			logger.Info("svg written", zap.String("path", cfg.Output.SVG))
		}
	}

	out := os.Stdout
	if flag.NArg() > 1 {
		f, err := os.Create(flag.Arg(1))
		if err != nil {
			logger.Fatal("creating output file", zap.Error(err))
		}
		defer f.Close()
		out = f
	}
	if err := writeOBJ(out, m, islands); err != nil {
		logger.Fatal("writing mesh", zap.Error(err))
	}

	grown := 0
	for _, island := range islands.Islands {
		grown += island.Primitives.Len()
	}
	logger.Info("borders extended",
		zap.Int("triangles_in", len(data.Primitives)),
		zap.Int("triangles_out", grown))
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	fs.Parse(args)

	cfg := config.Default()
	path := filepath.Join(config.ConfigDir(), "uvgrow.yaml")
	if fs.NArg() > 0 {
		path = fs.Arg(0)
	}
	if err := cfg.SaveTo(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote default config to %s\n", path)
}

// udimTiles returns the bottom-left UV offset of every UDIM tile that the
// mesh's texture coordinates touch, in row-major order.
func udimTiles(m *objMesh) []math.Vec2 {
	seen := make(map[[2]int]bool)
	for _, tri := range m.uvs {
		for _, corner := range tri {
			tx := int(math32.Floor(corner.X))
			ty := int(math32.Floor(corner.Y))
			seen[[2]int{tx, ty}] = true
		}
	}

	tiles := make([][2]int, 0, len(seen))
	for tile := range seen {
		tiles = append(tiles, tile)
	}
	sort.Slice(tiles, func(i, j int) bool {
		if tiles[i][1] != tiles[j][1] {
			return tiles[i][1] < tiles[j][1]
		}
		return tiles[i][0] < tiles[j][0]
	})

	result := make([]math.Vec2, len(tiles))
	for i, tile := range tiles {
		result[i] = math.Vec2{X: float32(tile[0]), Y: float32(tile[1])}
	}
	return result
}

func writeDiagnosticsSVG(path string, islands *uv.Islands, mask *uv.IslandsMask) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	uv.WriteSVGHeader(f, 2)
	uv.WriteSVGIslands(f, islands, 0)
	uv.WriteSVGMask(f, mask, 1)
	uv.WriteSVGFooter(f)
	return nil
}
