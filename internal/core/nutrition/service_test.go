package nutrition

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []string
		serving     int
		want        string
	}{
		{"meat", []string{"chicken breast"}, 2, "300g chicken breast"},
		{"grain", []string{"Rice"}, 1, "80g Rice"},
		{"vegetable", []string{"tomato"}, 3, "150g tomato"},
		{"fat", []string{"olive oil"}, 2, "30g olive oil"},
		{"egg", []string{"eggs"}, 1, "60g eggs"},
		{"dairy", []string{"greek yogurt"}, 1, "120g greek yogurt"},
		{"other", []string{"saffron"}, 1, "100g saffron"},
		{"has quantity", []string{"2 cups flour"}, 4, "2 cups flour"},
		{"joined and blanks skipped", []string{"beef", " ", "1 onion"}, 1, "150g beef and 1 onion"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildQuery(tt.ingredients, tt.serving))
		})
	}
}

func newTestService(t *testing.T, apiKey string, handler http.HandlerFunc) *Service {
	t.Helper()
	common.InitNopLogger()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(config.NutritionConfig{BaseURL: srv.URL, APIKey: apiKey, Timeout: time.Second}, nil)
}

func TestFacts(t *testing.T) {
	svc := newTestService(t, "key", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("X-Api-Key"))
		assert.Equal(t, "100g tomato and 2 eggs", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(`{"items":[
			{"name":"tomato","calories":18.2,"protein_g":0.9,"carbohydrates_total_g":3.9,"fat_total_g":0.2},
			{"name":"egg","calories":147,"protein_g":12.5,"carbohydrates_total_g":null,"fat_total_g":9.7}
		]}`))
	})

	facts, err := svc.Facts(context.Background(), []string{"tomato", "2 eggs"}, 2)
	require.NoError(t, err)
	require.Len(t, facts.Items, 1)
	assert.Equal(t, "tomato", facts.Items[0]["name"])
	assert.Equal(t, "100g tomato and 2 eggs", facts.Query)
	assert.Equal(t, 2, facts.ServingSize)
}

func TestFactsNotConfigured(t *testing.T) {
	svc := NewService(config.NutritionConfig{BaseURL: "http://127.0.0.1:1"}, nil)

	_, err := svc.Facts(context.Background(), []string{"tomato"}, 1)
	assert.True(t, errors.Is(err, ErrNotConfigured))
	assert.Equal(t, http.StatusServiceUnavailable, common.StatusOf(err))
}

func TestFactsNoData(t *testing.T) {
	svc := newTestService(t, "key", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	})

	_, err := svc.Facts(context.Background(), []string{"unobtainium"}, 1)
	assert.True(t, errors.Is(err, ErrNoData))
	assert.Equal(t, http.StatusBadGateway, common.StatusOf(err))
}

func TestFactsUpstreamError(t *testing.T) {
	svc := newTestService(t, "key", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"bad key"}`))
	})

	_, err := svc.Facts(context.Background(), []string{"tomato"}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, common.ErrBadGateway))
}

func TestFactsEmptyIngredients(t *testing.T) {
	svc := newTestService(t, "key", func(w http.ResponseWriter, r *http.Request) {
		t.Error("should not call upstream")
	})

	_, err := svc.Facts(context.Background(), []string{" "}, 1)
	assert.Equal(t, http.StatusBadRequest, common.StatusOf(err))
}
