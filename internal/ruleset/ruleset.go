// Package ruleset loads the static rules catalog (nations, resources,
// features, natural wonders) from JSON-with-comments, and interns its
// string-keyed ids into dense integer ids so hot placement loops avoid
// string hashing (spec §9 "String-keyed rules → integer ids").
package ruleset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ResourceCategory classifies a resource for the placement pipeline.
type ResourceCategory uint8

const (
	CategoryLuxury ResourceCategory = iota
	CategoryStrategic
	CategoryBonus
)

// ResourceID is a dense integer id for a resource, assigned at load time.
type ResourceID int

// NationID is a dense integer id for a civilization/nation definition.
type NationID int

// FeatureID is a dense integer id for a tile feature.
type FeatureID int

// WonderID is a dense integer id for a natural wonder definition.
type WonderID int

// QuantityTable maps a resource-setting ordinal (see generate.ResourceSetting)
// to the quantity placed per deposit, e.g. Standard -> 6 for Iron.
type QuantityTable [5]int

// Resource is the static definition of one resource type.
type Resource struct {
	ID             ResourceID
	Name           string
	Category       ResourceCategory
	Weight         float64
	QuantityTable  QuantityTable
	AllowedBuckets []int // indices into the 15 terrain categories of spec §4.12
	MinRadius      int
	MaxRadius      int
}

// Feature is the static definition of a tile feature.
type Feature struct {
	ID         FeatureID
	Name       string
	Impassable bool
}

// NaturalWonder is the static definition of a natural wonder.
type NaturalWonder struct {
	ID             WonderID
	Name           string
	IsFreshWater   bool
	OccursOnType   []string
	OccursOnBase   []string
	Uniques        []string
	TurnsIntoType  string
	TurnsIntoBase  string
}

// Nation is the static definition of a civilization's placement preferences.
type Nation struct {
	ID                 NationID
	Name               string
	AlongOcean         bool
	AlongRiver         bool
	RegionTypePriority []string
	AvoidRegionType    []string
	CityStateType      string
}

// Ruleset is the fully loaded, id-interned rules catalog.
type Ruleset struct {
	resourcesByID   map[ResourceID]*Resource
	resourcesByName map[string]ResourceID
	featuresByID    map[FeatureID]*Feature
	featuresByName  map[string]FeatureID
	wondersByID     map[WonderID]*NaturalWonder
	wondersByName   map[string]WonderID
	nationsByID     map[NationID]*Nation
	nationsByName   map[string]NationID

	nextResourceID ResourceID
	nextFeatureID  FeatureID
	nextWonderID   WonderID
	nextNationID   NationID
}

// New returns an empty ruleset, ready for Add* calls or Load.
func New() *Ruleset {
	return &Ruleset{
		resourcesByID:   map[ResourceID]*Resource{},
		resourcesByName: map[string]ResourceID{},
		featuresByID:    map[FeatureID]*Feature{},
		featuresByName:  map[string]FeatureID{},
		wondersByID:     map[WonderID]*NaturalWonder{},
		wondersByName:   map[string]WonderID{},
		nationsByID:     map[NationID]*Nation{},
		nationsByName:   map[string]NationID{},
	}
}

// RulesetInconsistencyError is returned when a referenced id is missing
// from the loaded ruleset (spec §7).
type RulesetInconsistencyError struct {
	Kind string
	ID   string
}

func (e *RulesetInconsistencyError) Error() string {
	return fmt.Sprintf("ruleset: unknown %s id %q", e.Kind, e.ID)
}

// AddResource interns a resource definition and returns its dense id.
func (r *Ruleset) AddResource(name string, category ResourceCategory, weight float64, qty QuantityTable, buckets []int, minR, maxR int) ResourceID {
	id := r.nextResourceID
	r.nextResourceID++
	r.resourcesByID[id] = &Resource{ID: id, Name: name, Category: category, Weight: weight, QuantityTable: qty, AllowedBuckets: buckets, MinRadius: minR, MaxRadius: maxR}
	r.resourcesByName[name] = id
	return id
}

// Resource looks up a resource definition by its dense id.
func (r *Ruleset) Resource(id ResourceID) (*Resource, error) {
	res, ok := r.resourcesByID[id]
	if !ok {
		return nil, &RulesetInconsistencyError{Kind: "resource", ID: fmt.Sprint(int(id))}
	}
	return res, nil
}

// ResourceByName resolves a resource's name to its dense id.
func (r *Ruleset) ResourceByName(name string) (ResourceID, error) {
	id, ok := r.resourcesByName[name]
	if !ok {
		return 0, &RulesetInconsistencyError{Kind: "resource", ID: name}
	}
	return id, nil
}

// AllResourceIDs returns resource ids in a stable, ascending order
// (spec §9 "deterministic ordering" requirement).
func (r *Ruleset) AllResourceIDs() []ResourceID {
	out := make([]ResourceID, 0, len(r.resourcesByID))
	for id := ResourceID(0); id < r.nextResourceID; id++ {
		if _, ok := r.resourcesByID[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// AddFeature interns a feature definition.
func (r *Ruleset) AddFeature(name string, impassable bool) FeatureID {
	id := r.nextFeatureID
	r.nextFeatureID++
	r.featuresByID[id] = &Feature{ID: id, Name: name, Impassable: impassable}
	r.featuresByName[name] = id
	return id
}

// Feature looks up a feature definition by its dense id.
func (r *Ruleset) Feature(id FeatureID) (*Feature, error) {
	f, ok := r.featuresByID[id]
	if !ok {
		return nil, &RulesetInconsistencyError{Kind: "feature", ID: fmt.Sprint(int(id))}
	}
	return f, nil
}

// AddNaturalWonder interns a natural wonder definition.
func (r *Ruleset) AddNaturalWonder(w NaturalWonder) WonderID {
	id := r.nextWonderID
	r.nextWonderID++
	w.ID = id
	r.wondersByID[id] = &w
	r.wondersByName[w.Name] = id
	return id
}

// NaturalWonder looks up a wonder definition by its dense id.
func (r *Ruleset) NaturalWonder(id WonderID) (*NaturalWonder, error) {
	w, ok := r.wondersByID[id]
	if !ok {
		return nil, &RulesetInconsistencyError{Kind: "natural_wonder", ID: fmt.Sprint(int(id))}
	}
	return w, nil
}

// AllWonderIDs returns wonder ids in dense-id order.
func (r *Ruleset) AllWonderIDs() []WonderID {
	out := make([]WonderID, 0, len(r.wondersByID))
	for id := WonderID(0); id < r.nextWonderID; id++ {
		if _, ok := r.wondersByID[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// AddNation interns a nation definition.
func (r *Ruleset) AddNation(n Nation) NationID {
	id := r.nextNationID
	r.nextNationID++
	n.ID = id
	r.nationsByID[id] = &n
	r.nationsByName[n.Name] = id
	return id
}

// Nation looks up a nation definition by its dense id.
func (r *Ruleset) Nation(id NationID) (*Nation, error) {
	n, ok := r.nationsByID[id]
	if !ok {
		return nil, &RulesetInconsistencyError{Kind: "nation", ID: fmt.Sprint(int(id))}
	}
	return n, nil
}

// --- JSONC loading -----------------------------------------------------

type jsoncDoc struct {
	Resources      []jsoncResource      `json:"resources"`
	Features       []jsoncFeature       `json:"features"`
	NaturalWonders []jsoncWonder        `json:"naturalWonders"`
	Nations        []jsoncNation        `json:"nations"`
}

type jsoncResource struct {
	Name          string  `json:"name"`
	Category      string  `json:"category"` // "Luxury" | "Strategic" | "Bonus"
	Weight        float64 `json:"weight"`
	QuantityTable [5]int  `json:"quantityTable"`
	Buckets       []int   `json:"buckets"`
	MinRadius     int     `json:"minRadius"`
	MaxRadius     int     `json:"maxRadius"`
}

type jsoncFeature struct {
	Name       string `json:"name"`
	Impassable bool   `json:"impassable"`
}

type jsoncWonder struct {
	Name          string   `json:"name"`
	IsFreshWater  bool     `json:"isFreshWater"`
	OccursOnType  []string `json:"occursOnType"`
	OccursOnBase  []string `json:"occursOnBase"`
	Uniques       []string `json:"uniques"`
	TurnsIntoType string   `json:"turnsIntoType"`
	TurnsIntoBase string   `json:"turnsIntoBase"`
}

type jsoncNation struct {
	Name               string   `json:"name"`
	AlongOcean         bool     `json:"alongOcean"`
	AlongRiver         bool     `json:"alongRiver"`
	RegionTypePriority []string `json:"regionTypePriority"`
	AvoidRegionType    []string `json:"avoidRegionType"`
	CityStateType      string   `json:"cityStateType"`
}

// stripComments removes // line comments and /* ... */ block comments from
// JSON-with-comments source, outside of string literals, matching spec §6's
// "lax parser that strips // and /*…*/".
func stripComments(src []byte) []byte {
	var out bytes.Buffer
	inString := false
	inLineComment := false
	inBlockComment := false
	escaped := false

	for i := 0; i < len(src); i++ {
		c := src[i]
		var next byte
		if i+1 < len(src) {
			next = src[i+1]
		}

		if inLineComment {
			if c == '\n' {
				inLineComment = false
				out.WriteByte(c)
			}
			continue
		}
		if inBlockComment {
			if c == '*' && next == '/' {
				inBlockComment = false
				i++
			}
			continue
		}
		if inString {
			out.WriteByte(c)
			if escaped {
				escaped = false
			} else if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
			continue
		}
		if c == '"' {
			inString = true
			out.WriteByte(c)
			continue
		}
		if c == '/' && next == '/' {
			inLineComment = true
			i++
			continue
		}
		if c == '/' && next == '*' {
			inBlockComment = true
			i++
			continue
		}
		out.WriteByte(c)
	}
	return out.Bytes()
}

func categoryOf(s string) ResourceCategory {
	switch s {
	case "Strategic":
		return CategoryStrategic
	case "Bonus":
		return CategoryBonus
	default:
		return CategoryLuxury
	}
}

// Load parses a JSONC ruleset document into a fully interned Ruleset.
func Load(src []byte) (*Ruleset, error) {
	stripped := stripComments(src)
	var doc jsoncDoc
	if err := json.Unmarshal(stripped, &doc); err != nil {
		return nil, fmt.Errorf("ruleset: parse: %w", err)
	}

	rs := New()
	for _, f := range doc.Features {
		rs.AddFeature(f.Name, f.Impassable)
	}
	for _, w := range doc.NaturalWonders {
		rs.AddNaturalWonder(NaturalWonder{
			Name:          w.Name,
			IsFreshWater:  w.IsFreshWater,
			OccursOnType:  w.OccursOnType,
			OccursOnBase:  w.OccursOnBase,
			Uniques:       w.Uniques,
			TurnsIntoType: w.TurnsIntoType,
			TurnsIntoBase: w.TurnsIntoBase,
		})
	}
	for _, n := range doc.Nations {
		rs.AddNation(Nation{
			Name:               n.Name,
			AlongOcean:         n.AlongOcean,
			AlongRiver:         n.AlongRiver,
			RegionTypePriority: n.RegionTypePriority,
			AvoidRegionType:    n.AvoidRegionType,
			CityStateType:      n.CityStateType,
		})
	}
	for _, r := range doc.Resources {
		rs.AddResource(r.Name, categoryOf(r.Category), r.Weight, r.QuantityTable, r.Buckets, r.MinRadius, r.MaxRadius)
	}
	return rs, nil
}
