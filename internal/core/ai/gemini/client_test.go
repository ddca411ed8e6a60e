package gemini

import (
	"context"
	"testing"

	"recipe-suggester/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
)

func TestNewClientRequiresKey(t *testing.T) {
	c, err := NewClient(context.Background(), config.PremiumTierConfig{Model: "gemini-1.5-flash"})
	assert.Error(t, err)
	assert.Nil(t, c)
}
