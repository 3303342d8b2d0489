package ruleset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/civmapgen/internal/ruleset"
)

func TestAddResource_InternsAndResolvesByName(t *testing.T) {
	rs := ruleset.New()
	id := rs.AddResource("Iron", ruleset.CategoryStrategic, 3, ruleset.QuantityTable{1, 2, 3, 4, 5}, []int{3, 4}, 1, 2)

	got, err := rs.Resource(id)
	assert.NoError(t, err)
	assert.Equal(t, "Iron", got.Name)
	assert.Equal(t, ruleset.CategoryStrategic, got.Category)

	byName, err := rs.ResourceByName("Iron")
	assert.NoError(t, err)
	assert.Equal(t, id, byName)
}

func TestResource_UnknownIDReturnsRulesetInconsistencyError(t *testing.T) {
	rs := ruleset.New()
	_, err := rs.Resource(ruleset.ResourceID(99))
	assert.Error(t, err)
	_, ok := err.(*ruleset.RulesetInconsistencyError)
	assert.True(t, ok)
}

func TestResourceByName_UnknownNameErrors(t *testing.T) {
	rs := ruleset.New()
	_, err := rs.ResourceByName("Nonexistent")
	assert.Error(t, err)
}

func TestAllResourceIDs_ReturnsEveryAddedResourceInIDOrder(t *testing.T) {
	rs := ruleset.New()
	a := rs.AddResource("Wheat", ruleset.CategoryBonus, 1, ruleset.QuantityTable{}, nil, 0, 1)
	b := rs.AddResource("Sheep", ruleset.CategoryBonus, 1, ruleset.QuantityTable{}, nil, 0, 1)
	assert.Equal(t, []ruleset.ResourceID{a, b}, rs.AllResourceIDs())
}

func TestAddFeature_InternsByNameAndID(t *testing.T) {
	rs := ruleset.New()
	id := rs.AddFeature("Forest", false)
	f, err := rs.Feature(id)
	assert.NoError(t, err)
	assert.Equal(t, "Forest", f.Name)
	assert.False(t, f.Impassable)
}

func TestAddNaturalWonder_AssignsDenseID(t *testing.T) {
	rs := ruleset.New()
	id := rs.AddNaturalWonder(ruleset.NaturalWonder{Name: "Mount Fuji", OccursOnType: []string{"Mountain"}})
	w, err := rs.NaturalWonder(id)
	assert.NoError(t, err)
	assert.Equal(t, "Mount Fuji", w.Name)
	assert.Equal(t, id, w.ID)
}

func TestAddNation_InternsByNameAndID(t *testing.T) {
	rs := ruleset.New()
	id := rs.AddNation(ruleset.Nation{Name: "Rome", AlongRiver: true})
	n, err := rs.Nation(id)
	assert.NoError(t, err)
	assert.Equal(t, "Rome", n.Name)
	assert.True(t, n.AlongRiver)
}

func TestLoad_ParsesJSONCStrippingComments(t *testing.T) {
	src := []byte(`{
		// a line comment
		"resources": [
			{"name": "Wine", "category": "Luxury", "weight": 15, "quantityTable": [0,0,0,0,0], "buckets": [11,12], "minRadius": 0, "maxRadius": 2}
		],
		"features": [ /* block comment */
			{"name": "Forest", "impassable": false}
		],
		"naturalWonders": [
			{"name": "Mount Fuji", "occursOnType": ["Mountain"], "occursOnBase": ["Grassland"]}
		],
		"nations": [
			{"name": "Rome", "alongOcean": true}
		]
	}`)

	rs, err := ruleset.Load(src)
	assert.NoError(t, err)

	wineID, err := rs.ResourceByName("Wine")
	assert.NoError(t, err)
	wine, err := rs.Resource(wineID)
	assert.NoError(t, err)
	assert.Equal(t, ruleset.CategoryLuxury, wine.Category)
	assert.Equal(t, []int{11, 12}, wine.AllowedBuckets)

	assert.Len(t, rs.AllWonderIDs(), 1)
}

func TestLoad_RejectsMalformedJSON(t *testing.T) {
	_, err := ruleset.Load([]byte(`{"resources": [}`))
	assert.Error(t, err)
}

func TestParseUnique_AdjacentExactly(t *testing.T) {
	u := ruleset.ParseUnique("Must be adjacent to 3 Mountain tiles")
	assert.Equal(t, ruleset.UniqueAdjacentExactly, u.Kind)
	assert.Equal(t, 3, u.N)
	assert.Equal(t, "Mountain", u.Filter)
}

func TestParseUnique_AdjacentRange(t *testing.T) {
	u := ruleset.ParseUnique("Must be adjacent to 2 to 4 Ocean tiles")
	assert.Equal(t, ruleset.UniqueAdjacentRange, u.Kind)
	assert.Equal(t, 2, u.N)
	assert.Equal(t, 4, u.M)
	assert.Equal(t, "Ocean", u.Filter)
}

func TestParseUnique_OnLargestLandmasses(t *testing.T) {
	u := ruleset.ParseUnique("Must be on 10 largest landmasses")
	assert.Equal(t, ruleset.UniqueOnLargestLandmasses, u.Kind)
	assert.Equal(t, 10, u.K)
}

func TestParseUnique_NotOnLargestLandmasses(t *testing.T) {
	u := ruleset.ParseUnique("Must not be on 10 largest landmasses")
	assert.Equal(t, ruleset.UniqueNotOnLargestLandmasses, u.Kind)
	assert.Equal(t, 10, u.K)
}

func TestParseUnique_UnrecognizedStringIsUnknown(t *testing.T) {
	u := ruleset.ParseUnique("some future DSL string nobody wrote yet")
	assert.Equal(t, ruleset.UniqueUnknown, u.Kind)
}

func TestParseUniques_PreservesOrder(t *testing.T) {
	out := ruleset.ParseUniques([]string{
		"Must be adjacent to 1 Coast tiles",
		"Must be on 10 largest landmasses",
	})
	assert.Len(t, out, 2)
	assert.Equal(t, ruleset.UniqueAdjacentExactly, out[0].Kind)
	assert.Equal(t, ruleset.UniqueOnLargestLandmasses, out[1].Kind)
}
