package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/texbake/uvgrow/pkg/uv"
)

// islandPalette cycles when a mesh has more islands than entries.
var islandPalette = []color.RGBA{
	{R: 0xe6, G: 0x19, B: 0x4b, A: 0xff},
	{R: 0x3c, G: 0xb4, B: 0x4b, A: 0xff},
	{R: 0xff, G: 0xe1, B: 0x19, A: 0xff},
	{R: 0x43, G: 0x63, B: 0xd8, A: 0xff},
	{R: 0xf5, G: 0x82, B: 0x31, A: 0xff},
	{R: 0x91, G: 0x1e, B: 0xb4, A: 0xff},
	{R: 0x46, G: 0xf0, B: 0xf0, A: 0xff},
	{R: 0xf0, G: 0x32, B: 0xe6, A: 0xff},
	{R: 0xbc, G: 0xf6, B: 0x0c, A: 0xff},
	{R: 0xfa, G: 0xbe, B: 0xbe, A: 0xff},
	{R: 0x00, G: 0x80, B: 0x80, A: 0xff},
	{R: 0x9a, G: 0x63, B: 0x24, A: 0xff},
}

func islandColor(index uint16) color.RGBA {
	return islandPalette[int(index)%len(islandPalette)]
}

// writeMaskPNG renders every tile's ownership grid at full texture
// resolution, one color per island, unclaimed cells transparent. Tiles are
// placed by their UDIM offset; V grows upward in UV space so tiles and rows
// are flipped into image space.
func writeMaskPNG(path string, mask *uv.IslandsMask) error {
	if len(mask.Tiles) == 0 {
		return fmt.Errorf("mask has no tiles")
	}

	var bounds image.Rectangle
	for i, tile := range mask.Tiles {
		x0 := int(tile.UDIMOffset.X * float32(tile.TileResolution.X))
		y0 := int(tile.UDIMOffset.Y * float32(tile.TileResolution.Y))
		r := image.Rect(x0, y0, x0+tile.TileResolution.X, y0+tile.TileResolution.Y)
		if i == 0 {
			bounds = r
		} else {
			bounds = bounds.Union(r)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for _, tile := range mask.Tiles {
		res := tile.MaskResolution
		src := image.NewRGBA(image.Rect(0, 0, res.X, res.Y))
		for y := 0; y < res.Y; y++ {
			for x := 0; x < res.X; x++ {
				cell := tile.Mask[y*res.X+x]
				if cell == uv.MaskUnclaimed {
					continue
				}
				src.SetRGBA(x, res.Y-1-y, islandColor(cell))
			}
		}

		x0 := int(tile.UDIMOffset.X*float32(tile.TileResolution.X)) - bounds.Min.X
		yTop := bounds.Max.Y - int(tile.UDIMOffset.Y*float32(tile.TileResolution.Y)) - tile.TileResolution.Y
		rect := image.Rect(x0, yTop, x0+tile.TileResolution.X, yTop+tile.TileResolution.Y)
		xdraw.NearestNeighbor.Scale(dst, rect, src, src.Bounds(), xdraw.Src, nil)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, dst)
}
