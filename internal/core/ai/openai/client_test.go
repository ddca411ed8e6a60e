package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recipe-suggester/internal/core/ai/provider"
	"recipe-suggester/internal/infrastructure/config"
	"recipe-suggester/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	common.InitNopLogger()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var req Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.Equal(t, 1000, req.MaxTokens)
		assert.InDelta(t, 0.7, req.Temperature, 1e-9)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "make soup", req.Messages[0].Content)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"# Soup"}}],"usage":{"total_tokens":12}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", "test-model", time.Second)
	out, err := c.Generate(context.Background(), "make soup", 1000, 0.7)
	require.NoError(t, err)
	assert.Equal(t, "# Soup", out)
	assert.Equal(t, "test-model", c.Name())
	assert.Equal(t, time.Second, c.Timeout())
}

func TestGenerateErrors(t *testing.T) {
	common.InitNopLogger()

	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		isEmpty bool
	}{
		{
			name:    "nested error message",
			status:  http.StatusBadRequest,
			body:    `{"error":{"message":"model decommissioned"}}`,
			wantMsg: "model decommissioned",
		},
		{
			name:    "flat error message",
			status:  http.StatusTooManyRequests,
			body:    `{"error":"quota exceeded"}`,
			wantMsg: "quota exceeded",
		},
		{
			name:    "plain text body",
			status:  http.StatusBadGateway,
			body:    `upstream down`,
			wantMsg: "upstream down",
		},
		{
			name:    "no choices",
			status:  http.StatusOK,
			body:    `{"choices":[]}`,
			isEmpty: true,
		},
		{
			name:    "blank content",
			status:  http.StatusOK,
			body:    `{"choices":[{"message":{"content":"  "}}]}`,
			isEmpty: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "secret", "m", time.Second)
			_, err := c.Generate(context.Background(), "p", 10, 0.5)
			require.Error(t, err)
			if tt.isEmpty {
				assert.True(t, errors.Is(err, provider.ErrEmptyResponse))
				return
			}
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestGenerateRespectsContext(t *testing.T) {
	common.InitNopLogger()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	c := NewClient(srv.URL, "secret", "m", 5*time.Second)
	_, err := c.Generate(ctx, "p", 10, 0.5)
	assert.Error(t, err)
}

func TestNewTier(t *testing.T) {
	common.InitNopLogger()

	assert.Nil(t, NewTier(config.FreeTierConfig{Models: []string{"a"}}))

	tier := NewTier(config.FreeTierConfig{
		BaseURL: "http://localhost",
		APIKey:  "k",
		Models:  []string{"first", " ", "second"},
	})
	require.Len(t, tier, 2)
	assert.Equal(t, "first", tier[0].Name())
	assert.Equal(t, "second", tier[1].Name())
	assert.Equal(t, provider.DefaultTimeout, tier[0].Timeout())
}
