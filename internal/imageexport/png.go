// Package imageexport writes a grayscale heightmap PNG of a generated map
// for visual debugging (spec §6's "standard image encoder" requirement).
// image/png is a literal spec requirement here, not a stand-in for a
// missing third-party library — see SPEC_FULL.md's ambient-stack notes.
package imageexport

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// terrainShade is a coarse elevation proxy: the pipeline discards raw noise
// samples once terrain/base terrain are classified, so the debug heightmap
// bands by TerrainType/BaseTerrain instead of true elevation.
func terrainShade(tm *tilemap.TileMap, t hexgrid.Tile) uint8 {
	switch tm.TerrainType(t) {
	case tilemap.Mountain:
		return 235
	case tilemap.Hill:
		return 180
	case tilemap.Flatland:
		switch tm.BaseTerrain(t) {
		case tilemap.Desert:
			return 150
		case tilemap.Tundra, tilemap.Snow:
			return 160
		default:
			return 120
		}
	default: // Water
		switch tm.BaseTerrain(t) {
		case tilemap.Coast, tilemap.Lake:
			return 70
		default:
			return 30
		}
	}
}

// Heightmap renders tm as a grayscale PNG, one pixel per tile in offset
// coordinates, and writes it to w.
func Heightmap(w io.Writer, tm *tilemap.TileMap) error {
	g := tm.Grid
	img := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for i := 0; i < g.TileCount(); i++ {
		t := hexgrid.Tile(i)
		o := g.OffsetOfTile(t)
		img.SetGray(o.X, o.Y, color.Gray{Y: terrainShade(tm, t)})
	}
	return png.Encode(w, img)
}
