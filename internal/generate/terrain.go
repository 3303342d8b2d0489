package generate

import (
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/tilemap"
	"github.com/talgya/civmapgen/internal/worldgen"
)

// worldgenConfig resolves the ruleset's Forest/Jungle/Marsh feature ids
// (when present) into a worldgen.Config, and derives a sea/mountain level
// from p, falling back to Standard defaults.
func worldgenConfig(rs *ruleset.Ruleset, p Parameters) worldgen.Config {
	cfg := worldgen.Config{
		Seed:        int64(p.Seed),
		SeaLevel:    p.SeaLevel,
		MountainLvl: p.MountainLvl,
	}
	if cfg.SeaLevel == 0 {
		cfg.SeaLevel = 0.42
	}
	if cfg.MountainLvl == 0 {
		cfg.MountainLvl = 0.82
	}
	if id, ok := resourceFeatureByName(rs, "Forest"); ok {
		cfg.ForestIdx, cfg.HasForest = id, true
	}
	if id, ok := resourceFeatureByName(rs, "Jungle"); ok {
		cfg.JungleIdx, cfg.HasJungle = id, true
	}
	if id, ok := resourceFeatureByName(rs, "Marsh"); ok {
		cfg.MarshIdx, cfg.HasMarsh = id, true
	}
	return cfg
}

func generateTerrain(tm *tilemap.TileMap, cfg worldgen.Config) {
	worldgen.Generate(tm, cfg)
}
