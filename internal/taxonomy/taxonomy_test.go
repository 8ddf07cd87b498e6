
package taxonomy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultGroups(t *testing.T) {
	reg := Default()

	assert.Equal(t, []Category{Manufacturer, Brand, Distributor}, reg.CategoriesInGroup(GroupRole))
	assert.Equal(t, []Category{
		Probiotics, Fortification, GutHealth, WomensHealth, CognitiveHealth, SportsNutrition,
	}, reg.CategoriesInGroup(GroupTopic))
	assert.Len(t, reg.Categories(), 9)
	assert.Equal(t, Manufacturer, reg.Categories()[0])
}

func TestLookup(t *testing.T) {
	reg := Default()

	phrases, err := reg.Lookup(Probiotics)
	require.NoError(t, err)
	assert.Contains(t, phrases, "lactobacillus")

	_, err = reg.Lookup("Astrology")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}

func TestLookupReturnsCopy(t *testing.T) {
	reg := Default()

	phrases, err := reg.Lookup(Brand)
	require.NoError(t, err)
	phrases[0] = "mutated"

	again, err := reg.Lookup(Brand)
	require.NoError(t, err)
	assert.Equal(t, "brand", again[0])
}

func TestNewLowercasesAndRejectsDuplicates(t *testing.T) {
	reg, err := New([]Definition{
		{Category: "Shouty", Group: GroupTopic, Phrases: []string{"LOUD Phrase", ""}},
	}, []string{"FOOD"})
	require.NoError(t, err)

	phrases, err := reg.Lookup("Shouty")
	require.NoError(t, err)
	assert.Equal(t, []string{"loud phrase"}, phrases)
	assert.Equal(t, []string{"food"}, reg.SectorTriggers())

	_, err = New([]Definition{
		{Category: "A", Group: GroupRole},
		{Category: "A", Group: GroupTopic},
	}, nil)
	assert.Error(t, err)

	_, err = New([]Definition{{Category: "B", Group: Group(7)}}, nil)
	assert.Error(t, err)
}
