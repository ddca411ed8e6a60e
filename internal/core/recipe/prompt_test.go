package recipe

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptServingSize(t *testing.T) {
	p := BuildPrompt([]string{"tomato", "onion", "garlic"}, "", 2)

	assert.Contains(t, p, "serve 2 people")
	assert.Contains(t, p, "Ingredients: tomato, onion, garlic")
	assert.NotContains(t, p, "Dietary preferences")

	assert.Contains(t, BuildPrompt([]string{"egg"}, "", 1), "serve 1 person.")
	assert.Contains(t, BuildPrompt([]string{"egg"}, "", 0), "serve 2 people.")
}

func TestBuildPromptDietary(t *testing.T) {
	p := BuildPrompt([]string{"tofu"}, " vegan ", 4)
	assert.Contains(t, p, "Dietary preferences: vegan.")
	assert.Contains(t, p, "adjusted for 4 servings")
}

func TestBuildPromptSkeleton(t *testing.T) {
	p := BuildPrompt([]string{"rice"}, "", 2)

	for _, want := range []string{"## Ingredients", "## Instructions", "1. ", "## Tips"} {
		assert.Contains(t, p, want)
	}
	assert.True(t, strings.Index(p, "## Ingredients") < strings.Index(p, "## Instructions"))
	assert.Equal(t, p, BuildPrompt([]string{"rice"}, "", 2))
}
