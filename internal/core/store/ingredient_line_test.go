package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr(f float64) *float64 { return &f }

func TestParseIngredientLine(t *testing.T) {
	tests := []struct {
		line string
		want IngredientLine
	}{
		{"2 tomatoes", IngredientLine{Quantity: ptr(2), Name: "tomatoes"}},
		{"- 1 cup rice", IngredientLine{Quantity: ptr(1), Unit: "cup", Name: "rice"}},
		{"1 1/2 tbsp olive oil", IngredientLine{Quantity: ptr(1.5), Unit: "tbsp", Name: "olive oil"}},
		{"½ lb of chicken breast", IngredientLine{Quantity: ptr(0.5), Unit: "lb", Name: "chicken breast"}},
		{"2 cloves garlic, minced", IngredientLine{Quantity: ptr(2), Unit: "clove", Name: "garlic", Preparation: "minced"}},
		{"Salt and pepper to taste", IngredientLine{Name: "salt and pepper to taste"}},
		{"a pinch of salt", IngredientLine{Name: "a pinch of salt"}},
		{"3", IngredientLine{Name: "3"}},
		{"2 cups", IngredientLine{Quantity: ptr(2), Name: "cups"}},
		{"  ", IngredientLine{}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIngredientLine(tt.line))
		})
	}
}
