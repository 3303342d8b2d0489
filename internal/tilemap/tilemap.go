// Package tilemap implements the column-oriented tile attribute store: a
// TileMap holds one parallel array per attribute (terrain, base terrain,
// feature, wonder, resource, area id), plus the spatial impact/ripple layers
// and the player-collision layer (spec §3 Data model, §4.8).
package tilemap

import (
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/ruleset"
)

// TerrainType is the coarse passability class of a tile.
type TerrainType uint8

const (
	Water TerrainType = iota
	Flatland
	Hill
	Mountain
)

// BaseTerrain is the fine-grained terrain class of a tile.
type BaseTerrain uint8

const (
	Ocean BaseTerrain = iota
	Coast
	Lake
	Grassland
	Plain
	Desert
	Tundra
	Snow
)

// resourcePlacement records a placed (resource, quantity) pair.
type resourcePlacement struct {
	ID       ruleset.ResourceID
	Quantity int
	set      bool
}

// TileMap is the full per-tile attribute store for one generated map.
// All arrays are sized to W*H at construction and filled left-to-right,
// bottom-to-top (spec §3 Lifecycle).
type TileMap struct {
	Grid hexgrid.Grid

	terrainType   []TerrainType
	baseTerrain   []BaseTerrain
	feature       []ruleset.FeatureID
	hasFeature    []bool
	naturalWonder []string
	resource      []resourcePlacement
	areaID        []int // negative = unset
	isRiver       []bool // true if any edge of this tile carries a river

	Layers *Layers
}

// New constructs a TileMap with all attribute arrays sized to the grid and
// zero-valued (Water/Ocean/no feature/no resource/area -1).
func New(g hexgrid.Grid) *TileMap {
	n := g.TileCount()
	tm := &TileMap{
		Grid:          g,
		terrainType:   make([]TerrainType, n),
		baseTerrain:   make([]BaseTerrain, n),
		feature:       make([]ruleset.FeatureID, n),
		hasFeature:    make([]bool, n),
		naturalWonder: make([]string, n),
		resource:      make([]resourcePlacement, n),
		areaID:        make([]int, n),
		isRiver:       make([]bool, n),
	}
	for i := range tm.areaID {
		tm.areaID[i] = -1
	}
	tm.Layers = newLayers(n)
	return tm
}

func (tm *TileMap) TerrainType(t hexgrid.Tile) TerrainType { return tm.terrainType[t] }
func (tm *TileMap) SetTerrainType(t hexgrid.Tile, v TerrainType) { tm.terrainType[t] = v }

func (tm *TileMap) BaseTerrain(t hexgrid.Tile) BaseTerrain { return tm.baseTerrain[t] }
func (tm *TileMap) SetBaseTerrain(t hexgrid.Tile, v BaseTerrain) { tm.baseTerrain[t] = v }

func (tm *TileMap) Feature(t hexgrid.Tile) (ruleset.FeatureID, bool) {
	return tm.feature[t], tm.hasFeature[t]
}
func (tm *TileMap) SetFeature(t hexgrid.Tile, f ruleset.FeatureID) {
	tm.feature[t] = f
	tm.hasFeature[t] = true
}
func (tm *TileMap) ClearFeature(t hexgrid.Tile) { tm.hasFeature[t] = false }

func (tm *TileMap) NaturalWonder(t hexgrid.Tile) (string, bool) {
	w := tm.naturalWonder[t]
	return w, w != ""
}
func (tm *TileMap) SetNaturalWonder(t hexgrid.Tile, name string) { tm.naturalWonder[t] = name }

func (tm *TileMap) Resource(t hexgrid.Tile) (ruleset.ResourceID, int, bool) {
	rp := tm.resource[t]
	return rp.ID, rp.Quantity, rp.set
}
func (tm *TileMap) SetResource(t hexgrid.Tile, id ruleset.ResourceID, qty int) {
	tm.resource[t] = resourcePlacement{ID: id, Quantity: qty, set: true}
}
func (tm *TileMap) HasResource(t hexgrid.Tile) bool { return tm.resource[t].set }

func (tm *TileMap) AreaID(t hexgrid.Tile) int { return tm.areaID[t] }
func (tm *TileMap) SetAreaID(t hexgrid.Tile, id int) { tm.areaID[t] = id }

func (tm *TileMap) IsRiver(t hexgrid.Tile) bool { return tm.isRiver[t] }
func (tm *TileMap) SetRiver(t hexgrid.Tile, v bool) { tm.isRiver[t] = v }

// IsWater reports whether a tile's terrain_type is Water.
func (tm *TileMap) IsWater(t hexgrid.Tile) bool { return tm.terrainType[t] == Water }

// IsCoastalLand reports whether a land tile has a Coast neighbor.
func (tm *TileMap) IsCoastalLand(t hexgrid.Tile) bool {
	if tm.IsWater(t) {
		return false
	}
	for _, n := range tm.Grid.Neighbors(t) {
		if tm.baseTerrain[n] == Coast {
			return true
		}
	}
	return false
}

// IsFreshwater reports whether a tile is adjacent to a river or a Lake tile.
func (tm *TileMap) IsFreshwater(t hexgrid.Tile) bool {
	if tm.isRiver[t] {
		return true
	}
	for _, n := range tm.Grid.Neighbors(t) {
		if tm.baseTerrain[n] == Lake {
			return true
		}
	}
	return false
}

// NearRiver reports whether the tile itself or a neighbor carries a river.
func (tm *TileMap) NearRiver(t hexgrid.Tile) bool {
	if tm.isRiver[t] {
		return true
	}
	for _, n := range tm.Grid.Neighbors(t) {
		if tm.isRiver[n] {
			return true
		}
	}
	return false
}
