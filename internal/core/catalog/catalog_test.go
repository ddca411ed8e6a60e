package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.Same(t, c, Default())

	assert.Greater(t, c.Len(), 400)
	assert.Equal(t, []string{
		"vegetables", "fruits", "meats", "dairy", "grains", "nuts_seeds",
		"herbs_spices", "oils_condiments", "legumes", "seaweed", "fungi",
	}, c.Categories())

	cat, ok := c.CategoryOf("Tomato ")
	require.True(t, ok)
	assert.Equal(t, "vegetables", cat)

	_, ok = c.CategoryOf("plutonium")
	assert.False(t, ok)
}

func TestDuplicateKeepsFirstCategory(t *testing.T) {
	c := Default()

	// mushroom 同時列在 vegetables 與 fungi
	cat, ok := c.CategoryOf("mushroom")
	require.True(t, ok)
	assert.Equal(t, "vegetables", cat)

	seen := map[string]bool{}
	for _, name := range c.Names() {
		assert.False(t, seen[name], "duplicate entry %q", name)
		seen[name] = true
	}
}

func TestTyposNeverShadowCatalogEntries(t *testing.T) {
	c := Default()

	for from := range c.Typos() {
		assert.False(t, c.Contains(from), "typo key %q is a catalog entry", from)
	}
	_, ok := c.Correction("peas")
	assert.False(t, ok)

	to, ok := c.Correction("tomatos")
	require.True(t, ok)
	assert.Equal(t, "tomato", to)
}

func TestNewNormalizes(t *testing.T) {
	c := New([]Category{
		{Name: "fruits", Items: []string{" Apple", "apple", ""}},
		{Name: "other", Items: []string{"APPLE", "Kiwi"}},
	}, map[string]string{"Appel": "Apple", "apple": "pear"})

	assert.Equal(t, []Entry{{Name: "apple", Category: "fruits"}, {Name: "kiwi", Category: "other"}}, c.Entries())
	assert.Equal(t, map[string]string{"appel": "apple"}, c.Typos())
}

func TestEntriesReturnsCopy(t *testing.T) {
	c := New([]Category{{Name: "fruits", Items: []string{"apple"}}}, nil)
	entries := c.Entries()
	entries[0].Name = "changed"
	assert.True(t, c.Contains("apple"))
	assert.False(t, c.Contains("changed"))
}
