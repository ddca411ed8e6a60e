package ingredient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipe-suggester/internal/core/validator"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockValidator struct {
	results   map[string]validator.Result
	lastQuery string
	lastLimit int
}

func (m *mockValidator) Validate(_ context.Context, s string) validator.Result {
	if r, ok := m.results[s]; ok {
		return r
	}
	return validator.Result{Original: s, Outcome: validator.NoMatch{}}
}

func (m *mockValidator) ValidateList(ctx context.Context, items []string) []validator.Result {
	out := make([]validator.Result, len(items))
	for i, s := range items {
		out[i] = m.Validate(ctx, s)
	}
	return out
}

func (m *mockValidator) Autocomplete(_ context.Context, q string, limit int) []validator.Suggestion {
	m.lastQuery, m.lastLimit = q, limit
	return []validator.Suggestion{{Name: "tomato", Category: "vegetables", Source: "local", Confidence: 1}}
}

func (m *mockValidator) Search(_ context.Context, q string, limit int) []validator.Suggestion {
	m.lastQuery, m.lastLimit = q, limit
	return []validator.Suggestion{{Name: "tomato", Category: "vegetables", Source: "local", Confidence: 1, Description: "tomato (vegetables)"}}
}

type mockDetector struct {
	got []byte
	err error
}

func (m *mockDetector) Detect(_ context.Context, data []byte) ([]string, error) {
	m.got = data
	if m.err != nil {
		return nil, m.err
	}
	return []string{"tomato", "basil"}, nil
}

func setupRouter(t *testing.T, v *mockValidator, d *mockDetector) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	common.InitNopLogger()
	require.NoError(t, common.RegisterValidations())

	decode := func(s string) ([]byte, error) {
		if !strings.HasPrefix(s, "data:image/") {
			return nil, common.ErrInvalidImage
		}
		return []byte("decoded"), nil
	}

	h := NewHandler(v, d, decode, 1<<20)
	r := gin.New()
	g := r.Group("/api/ingredients")
	g.POST("/validate", h.Validate)
	g.POST("/validate-batch", h.ValidateBatch)
	g.GET("/autocomplete", h.Autocomplete)
	g.GET("/search", h.Search)
	g.POST("/detect", h.Detect)
	return r
}

func do(r *gin.Engine, method, path, contentType string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newMockValidator() *mockValidator {
	return &mockValidator{results: map[string]validator.Result{
		"tomato":  {Original: "tomato", Outcome: validator.ExactMatch{Name: "tomato"}},
		"tomatos": {Original: "tomatos", Outcome: validator.TypoCorrection{Corrected: "tomato"}},
		"xyzzy":   {Original: "xyzzy", Outcome: validator.NoMatch{Suggestions: []string{"zucchini"}}},
	}}
}

func TestValidate(t *testing.T) {
	r := setupRouter(t, newMockValidator(), &mockDetector{})

	w := do(r, http.MethodPost, "/api/ingredients/validate", "application/json", []byte(`{"ingredient":"tomatos"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"original":"tomatos","is_valid":true,"corrected":"tomato","confidence":0.95,"suggestions":[],"source":"typo_correction"}`, w.Body.String())

	for _, body := range []string{`{}`, `{"ingredient":"   "}`, `not json`} {
		w := do(r, http.MethodPost, "/api/ingredients/validate", "application/json", []byte(body))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.JSONEq(t, `{"error":"Ingredient is required"}`, w.Body.String())
	}
}

func TestValidateBatch(t *testing.T) {
	r := setupRouter(t, newMockValidator(), &mockDetector{})

	w := do(r, http.MethodPost, "/api/ingredients/validate-batch", "application/json",
		[]byte(`{"ingredients":["tomato","xyzzy","tomatos"]}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results     []map[string]any    `json:"results"`
		Valid       []string            `json:"valid"`
		Invalid     []string            `json:"invalid"`
		Suggestions map[string][]string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 3)
	assert.Equal(t, "xyzzy", resp.Results[1]["original"])
	assert.Equal(t, []string{"tomato", "tomato"}, resp.Valid)
	assert.Equal(t, []string{"xyzzy"}, resp.Invalid)
	assert.Equal(t, map[string][]string{"xyzzy": {"zucchini"}}, resp.Suggestions)

	w = do(r, http.MethodPost, "/api/ingredients/validate-batch", "application/json", []byte(`{"ingredients":[]}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAutocompleteAndSearch(t *testing.T) {
	v := newMockValidator()
	r := setupRouter(t, v, &mockDetector{})

	w := do(r, http.MethodGet, "/api/ingredients/autocomplete?q=+tom+&limit=5", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"suggestions":[{"name":"tomato","category":"vegetables","source":"local","confidence":1}]}`, w.Body.String())
	assert.Equal(t, "tom", v.lastQuery)
	assert.Equal(t, 5, v.lastLimit)

	w = do(r, http.MethodGet, "/api/ingredients/search?q=tom&limit=abc", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"results":[`)
	assert.Contains(t, w.Body.String(), `"description":"tomato (vegetables)"`)
	assert.Equal(t, 0, v.lastLimit)

	do(r, http.MethodGet, "/api/ingredients/search?q=tom&limit=500", "", nil)
	assert.Equal(t, 50, v.lastLimit)
}

func TestDetect_Multipart(t *testing.T) {
	d := &mockDetector{}
	r := setupRouter(t, newMockValidator(), d)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("raw-image"))
	require.NoError(t, mw.Close())

	w := do(r, http.MethodPost, "/api/ingredients/detect", mw.FormDataContentType(), buf.Bytes())
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ingredients":["tomato","basil"]}`, w.Body.String())
	assert.Equal(t, []byte("raw-image"), d.got)
}

func TestDetect_DataURI(t *testing.T) {
	d := &mockDetector{}
	r := setupRouter(t, newMockValidator(), d)

	w := do(r, http.MethodPost, "/api/ingredients/detect", "application/json", []byte(`{"image":"data:image/png;base64,AAAA"}`))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("decoded"), d.got)

	w = do(r, http.MethodPost, "/api/ingredients/detect", "application/json", []byte(`{"image":"hello"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/ingredients/detect", "application/json", []byte(`{}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"No image provided"}`, w.Body.String())
}

func TestDetect_InvalidImage(t *testing.T) {
	d := &mockDetector{err: common.ErrInvalidImage.Wrap(errors.New("bad bytes"))}
	r := setupRouter(t, newMockValidator(), d)

	w := do(r, http.MethodPost, "/api/ingredients/detect", "application/json", []byte(`{"image":"data:image/png;base64,AAAA"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid image"}`, w.Body.String())
}
