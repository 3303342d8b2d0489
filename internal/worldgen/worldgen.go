// Package worldgen stands in for the out-of-scope "fractal noise generator"
// and "elevation→terrain/feature classifier" collaborators of spec §1/§6.
// It produces the initial terrain_type, base_terrain, feature, and river
// layout the placement pipeline consumes. Adapted from the teacher's
// internal/world.Generate — same layered-opensimplex-octave technique —
// generalized from the teacher's single-radius hex map to an offset grid
// sized and wrapped per generate.Parameters, and from the teacher's nine
// flavor terrains to the spec's TerrainType/BaseTerrain/Feature model.
package worldgen

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
)

// Config parameterizes the stand-in generator.
type Config struct {
	Seed        int64
	SeaLevel    float64
	MountainLvl float64
	ForestIdx   ruleset.FeatureID
	JungleIdx   ruleset.FeatureID
	MarshIdx    ruleset.FeatureID
	HasForest   bool
	HasJungle   bool
	HasMarsh    bool
}

// Generate fills terrain_type, base_terrain, feature, and rivers on tm in
// place, using layered opensimplex noise for elevation/rainfall/temperature
// exactly as the teacher's world.Generate does, adapted to an offset grid.
func Generate(tm *tilemap.TileMap, cfg Config) {
	g := tm.Grid
	elevNoise := opensimplex.NewNormalized(cfg.Seed)
	rainNoise := opensimplex.NewNormalized(cfg.Seed + 1)
	tempNoise := opensimplex.NewNormalized(cfg.Seed + 2)

	elev := make([]float64, g.TileCount())
	halfW, halfH := float64(g.Width)/2, float64(g.Height)/2

	for i := 0; i < g.TileCount(); i++ {
		t := hexgrid.Tile(i)
		o := g.OffsetOfTile(t)
		x := float64(o.X) + float64(o.Y)*0.5
		y := float64(o.Y) * math.Sqrt(3.0) / 2.0

		e := octaveNoise(elevNoise, x, y, 4, 0.08, 0.5)
		rain := octaveNoise(rainNoise, x, y, 3, 0.06, 0.5)
		temp := octaveNoise(tempNoise, x, y, 3, 0.05, 0.5)

		if !g.WrapX || !g.WrapY {
			// Continental edge falloff only applies on axes that don't wrap
			// (a wrapped axis has no "edge" to fall toward).
			dx := 0.0
			if !g.WrapX {
				dx = (float64(o.X) - halfW) / halfW
			}
			dy := 0.0
			if !g.WrapY {
				dy = (float64(o.Y) - halfH) / halfH
			}
			distFromCenter := math.Sqrt(dx*dx + dy*dy)
			edgeFalloff := 1.0 - math.Pow(distFromCenter, 3.5)
			if edgeFalloff < 0 {
				edgeFalloff = 0
			}
			e *= edgeFalloff
		}

		// Latitude term recovered from original_source's Tile::latitude
		// formula: 0 at equator, 1 at poles.
		latitude := math.Abs((halfH-float64(o.Y))/halfH)
		temp = temp*0.6 + (1.0-latitude)*0.3 + (1.0-e)*0.1

		elev[i] = e
		tType, base, feat, hasFeat := deriveTerrain(e, rain, temp, cfg)
		tm.SetTerrainType(t, tType)
		tm.SetBaseTerrain(t, base)
		if hasFeat {
			tm.SetFeature(t, feat)
		}
	}

	markCoastalTiles(tm)
	placeRivers(tm, elev, cfg.Seed)
}

func deriveTerrain(e, rain, temp float64, cfg Config) (tilemap.TerrainType, tilemap.BaseTerrain, ruleset.FeatureID, bool) {
	if e < cfg.SeaLevel {
		return tilemap.Water, tilemap.Ocean, 0, false
	}
	if e > cfg.MountainLvl {
		return tilemap.Mountain, tilemap.Grassland, 0, false
	}
	terrainType := tilemap.Flatland
	if e > (cfg.MountainLvl+cfg.SeaLevel)/2+0.12 {
		terrainType = tilemap.Hill
	}

	switch {
	case temp < 0.25:
		base := tilemap.Tundra
		if temp < 0.12 {
			base = tilemap.Snow
		}
		return terrainType, base, 0, false
	case rain < 0.25 && temp > 0.5:
		return terrainType, tilemap.Desert, 0, false
	case rain > 0.7 && e < cfg.SeaLevel+0.2:
		if cfg.HasMarsh {
			return tilemap.Flatland, tilemap.Grassland, cfg.MarshIdx, true
		}
		return tilemap.Flatland, tilemap.Grassland, 0, false
	case rain > 0.6:
		if cfg.HasJungle {
			return terrainType, tilemap.Plain, cfg.JungleIdx, true
		}
		return terrainType, tilemap.Plain, 0, false
	case rain > 0.45:
		if cfg.HasForest {
			return terrainType, tilemap.Grassland, cfg.ForestIdx, true
		}
		return terrainType, tilemap.Grassland, 0, false
	default:
		return terrainType, tilemap.Plain, 0, false
	}
}

func markCoastalTiles(tm *tilemap.TileMap) {
	g := tm.Grid
	var toMark []hexgrid.Tile
	for i := 0; i < g.TileCount(); i++ {
		t := hexgrid.Tile(i)
		if !tm.IsWater(t) {
			continue
		}
		for _, n := range g.Neighbors(t) {
			if !tm.IsWater(n) {
				toMark = append(toMark, t)
				break
			}
		}
	}
	for _, t := range toMark {
		tm.SetBaseTerrain(t, tilemap.Coast)
	}
}

// placeRivers traces steepest-descent paths from highland sources to the
// coast, marking river edges via tm.SetRiver, following the same "trace
// until no downhill neighbor" technique as the teacher's traceRiver.
func placeRivers(tm *tilemap.TileMap, elev []float64, seed int64) {
	g := tm.Grid
	src := rand.New(rand.NewSource(seed + 100))

	var sources []hexgrid.Tile
	for i := 0; i < g.TileCount(); i++ {
		t := hexgrid.Tile(i)
		if elev[i] > 0.65 && !tm.IsWater(t) {
			sources = append(sources, t)
		}
	}

	numRivers := len(sources) / 8
	if numRivers < 2 {
		numRivers = 2
	}
	if numRivers > 30 {
		numRivers = 30
	}

	src.Shuffle(len(sources), func(i, j int) { sources[i], sources[j] = sources[j], sources[i] })
	if len(sources) > numRivers {
		sources = sources[:numRivers]
	}

	for _, start := range sources {
		traceRiver(tm, elev, start)
	}
}

func traceRiver(tm *tilemap.TileMap, elev []float64, start hexgrid.Tile) {
	g := tm.Grid
	current := start
	visited := map[hexgrid.Tile]bool{}
	maxSteps := 60

	for step := 0; step < maxSteps; step++ {
		visited[current] = true
		if tm.IsWater(current) {
			break
		}
		if tm.TerrainType(current) != tilemap.Mountain {
			tm.SetRiver(current, true)
		}

		var best hexgrid.Tile
		found := false
		bestElev := elev[current]
		for _, n := range g.Neighbors(current) {
			if visited[n] {
				continue
			}
			if elev[n] < bestElev {
				bestElev = elev[n]
				best = n
				found = true
			}
		}
		if !found {
			break
		}
		current = best
	}
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	maxVal := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		maxVal += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxVal
}
