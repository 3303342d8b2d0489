// Command mapgen runs the civmapgen placement pipeline against a ruleset
// and seed, printing a summary and optionally writing a debug heightmap PNG.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/talgya/civmapgen/internal/generate"
	"github.com/talgya/civmapgen/internal/hexgrid"
	"github.com/talgya/civmapgen/internal/imageexport"
	"github.com/talgya/civmapgen/internal/ruleset"
	"github.com/talgya/civmapgen/internal/rungcache"
)

var worldSizeNames = map[string]hexgrid.WorldSize{
	"duel": hexgrid.Duel, "tiny": hexgrid.Tiny, "small": hexgrid.Small,
	"standard": hexgrid.Standard, "large": hexgrid.Large, "huge": hexgrid.Huge,
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	rulesetPath := flag.String("ruleset", "", "path to a JSONC ruleset file")
	worldSizeFlag := flag.String("worldsize", "standard", "duel|tiny|small|standard|large|huge")
	seed := flag.Uint64("seed", 1, "generation seed")
	civs := flag.Int("civs", 8, "number of civilizations")
	cityStates := flag.Int("city-states", 12, "number of city-states")
	cachePath := flag.String("cache", "data/runcache.db", "sqlite run-cache path")
	pngOut := flag.String("png", "", "optional path to write a debug heightmap PNG")
	flag.Parse()

	ws, ok := worldSizeNames[*worldSizeFlag]
	if !ok {
		slog.Error("unknown world size", "worldsize", *worldSizeFlag)
		os.Exit(1)
	}

	if *rulesetPath == "" {
		slog.Error("-ruleset is required")
		os.Exit(1)
	}
	rulesetBytes, err := os.ReadFile(*rulesetPath)
	if err != nil {
		slog.Error("failed to read ruleset", "path", *rulesetPath, "error", err)
		os.Exit(1)
	}
	rs, err := ruleset.Load(rulesetBytes)
	if err != nil {
		slog.Error("failed to load ruleset", "error", err)
		os.Exit(1)
	}

	p := generate.DefaultParameters(ws, *seed)
	p.CivilizationCount = *civs
	p.CityStateCount = *cityStates
	for i := 0; i < *civs; i++ {
		if _, err := rs.Nation(ruleset.NationID(i)); err != nil {
			slog.Error("ruleset has fewer nations than -civs requests", "civs", *civs, "available", i)
			os.Exit(1)
		}
		p.Nations = append(p.Nations, ruleset.NationID(i))
	}

	runID := uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%d", *seed)))

	os.MkdirAll("data", 0755)
	cache, err := rungcache.Open(*cachePath)
	if err != nil {
		slog.Error("failed to open run cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()

	cacheKey, paramsJSON, err := rungcache.Key(*seed, p)
	if err != nil {
		slog.Error("failed to derive cache key", "error", err)
		os.Exit(1)
	}

	start := time.Now()
	var res *generate.Result
	if cached, found, err := cache.Load(cacheKey); err == nil && found {
		slog.Info("reusing cached run", "run_id", runID, "cache_key", cacheKey)
		res = &generate.Result{Map: cached.Map, CivStarts: cached.CivStarts, CityStateStarts: cached.CityStates}
	} else {
		slog.Info("generating map", "run_id", runID, "seed", *seed, "worldsize", *worldSizeFlag, "civs", *civs, "city_states", *cityStates)
		res, err = generate.Generate(p, rs)
		if err != nil {
			slog.Error("generation failed", "error", err)
			os.Exit(1)
		}
		if err := cache.Save(cacheKey, *seed, paramsJSON, &rungcache.Run{
			Map: res.Map, CivStarts: res.CivStarts, CityStates: res.CityStateStarts,
		}); err != nil {
			slog.Warn("failed to cache run", "error", err)
		}
	}
	elapsed := time.Since(start)

	tileCount := res.Map.Grid.TileCount()
	fmt.Printf("generated %s tiles in %s (%d civilizations, %d city-states, %d natural wonders)\n",
		humanize.Comma(int64(tileCount)), elapsed.Round(time.Millisecond),
		len(res.CivStarts), len(res.CityStateStarts), len(res.NaturalWonders))

	if *pngOut != "" {
		f, err := os.Create(*pngOut)
		if err != nil {
			slog.Error("failed to create png output", "error", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := imageexport.Heightmap(f, res.Map); err != nil {
			slog.Error("failed to write heightmap", "error", err)
			os.Exit(1)
		}
		slog.Info("wrote debug heightmap", "path", *pngOut)
	}
}
