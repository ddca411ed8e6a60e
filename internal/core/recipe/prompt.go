package recipe

import (
	"fmt"
	"strings"
)

// BuildPrompt 組合生成食譜的 prompt，相同輸入必得相同輸出
func BuildPrompt(ingredients []string, dietaryPreferences string, servingSize int) string {
	if servingSize <= 0 {
		servingSize = DefaultServingSize
	}

	people := "people"
	if servingSize == 1 {
		people = "person"
	}

	var sb strings.Builder
	sb.WriteString("You are a helpful cooking assistant. Given the following ingredients, create a delicious and practical recipe.\n\n")
	fmt.Fprintf(&sb, "Ingredients: %s\n\n", strings.Join(ingredients, ", "))

	if prefs := strings.TrimSpace(dietaryPreferences); prefs != "" {
		fmt.Fprintf(&sb, "Dietary preferences: %s. Make sure the recipe respects these preferences.\n\n", prefs)
	}

	fmt.Fprintf(&sb, "The recipe should serve %d %s.\n\n", servingSize, people)

	sb.WriteString("Format the recipe in Markdown exactly like this:\n\n")
	sb.WriteString("# [Recipe Name]\n\n")
	sb.WriteString("## Ingredients\n")
	fmt.Fprintf(&sb, "- [quantity and ingredient, adjusted for %d servings]\n\n", servingSize)
	sb.WriteString("## Instructions\n")
	sb.WriteString("1. [First step]\n")
	sb.WriteString("2. [Second step]\n\n")
	sb.WriteString("## Tips\n")
	sb.WriteString("- [Optional tips]\n\n")
	sb.WriteString("Make sure the recipe is:\n")
	sb.WriteString("- Easy to follow\n")
	sb.WriteString("- Uses the provided ingredients as the main components\n")
	sb.WriteString("- Includes reasonable quantities and cooking times\n")
	sb.WriteString("- Safe and practical for home cooking")

	return sb.String()
}
