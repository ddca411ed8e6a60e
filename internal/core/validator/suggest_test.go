package validator

import (
	"context"
	"testing"

	"recipe-suggester/internal/core/catalog"
	"recipe-suggester/internal/core/foodsearch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func smallCatalog() *catalog.Catalog {
	return catalog.New([]catalog.Category{
		{Name: "vegetables", Items: []string{"tomato", "cherry tomato", "onion"}},
		{Name: "fruits", Items: []string{"apple"}},
	}, nil)
}

func TestAutocompleteLocalOnly(t *testing.T) {
	s := &mockSearcher{}
	v := New(smallCatalog(), s)

	got := v.Autocomplete(context.Background(), "tom", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "tomato", got[0].Name)
	assert.Equal(t, "cherry tomato", got[1].Name)
	assert.Equal(t, "local", got[0].Source)
	assert.Equal(t, 1.0, got[0].Confidence)
	assert.Empty(t, got[0].Description)
	assert.Zero(t, s.callCount())
}

func TestAutocompleteAugmentsWithExternal(t *testing.T) {
	s := &mockSearcher{products: []foodsearch.Product{
		{
			ProductName:     "Tomato Ketchup",
			IngredientsText: "tomatoes, sugar, sun-dried tomato paste",
			CategoriesTags:  []string{"en:snacks"},
		},
		{
			ProductName:    "Tomato Shampoo",
			CategoriesTags: []string{"en:cosmetics"},
		},
	}}
	v := New(smallCatalog(), s)

	got := v.Autocomplete(context.Background(), "Tomato", 0)
	names := make([]string, len(got))
	for i, g := range got {
		names[i] = g.Name
	}

	assert.Equal(t, []string{"tomato", "cherry tomato", "tomatoes", "sun-dried tomato paste"}, names)
	assert.Equal(t, "external", got[2].Source)
	assert.Equal(t, "unknown", got[2].Category)
	assert.Equal(t, 0.8, got[2].Confidence)
	assert.Equal(t, []int{20}, s.sizes)
}

func TestSearchDescriptionsAndCategories(t *testing.T) {
	s := &mockSearcher{products: []foodsearch.Product{
		{ProductName: "Greek Yogurt Plain", CategoriesTags: []string{"en:foods", "en:dairies", "en:dairy-desserts"}},
		{ProductName: "Yogurt Raisins", CategoriesTags: []string{"en:snacks", "en:dried-fruits"}},
	}}
	v := New(smallCatalog(), s)

	got := v.Search(context.Background(), "yogurt", 0)
	require.Len(t, got, 1)
	assert.Equal(t, "yogurt", got[0].Name)
	assert.Equal(t, "dairy", got[0].Category)
	assert.Equal(t, 0.7, got[0].Confidence)
	assert.Equal(t, "yogurt (found in Greek Yogurt Plain)", got[0].Description)
	assert.Equal(t, []int{30}, s.sizes)

	local := v.Search(context.Background(), "onion", 1)
	require.Len(t, local, 1)
	assert.Equal(t, "onion (vegetables)", local[0].Description)
}

func TestSuggestShortQuery(t *testing.T) {
	s := &mockSearcher{}
	v := New(smallCatalog(), s)

	assert.Empty(t, v.Autocomplete(context.Background(), "t", 10))
	assert.Empty(t, v.Search(context.Background(), " ", 10))
	assert.Zero(t, s.callCount())
}

func TestSuggestExternalErrorSwallowed(t *testing.T) {
	v := New(smallCatalog(), &mockSearcher{err: assert.AnError})

	got := v.Autocomplete(context.Background(), "app", 10)
	require.Len(t, got, 1)
	assert.Equal(t, "apple", got[0].Name)
}

func TestInferCategory(t *testing.T) {
	assert.Equal(t, "meats", inferCategory([]string{"en:Meat-Products"}))
	assert.Equal(t, "grains", inferCategory([]string{"en:cereal-grains"}))
	assert.Equal(t, "unknown", inferCategory(nil))
}
