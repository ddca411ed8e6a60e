// Package ingredient 食材驗證、自動完成、搜尋與照片辨識的 HTTP 處理器
package ingredient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"recipe-suggester/internal/core/validator"
	"recipe-suggester/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Validator 食材驗證
type Validator interface {
	Validate(ctx context.Context, ingredient string) validator.Result
	ValidateList(ctx context.Context, ingredients []string) []validator.Result
	Autocomplete(ctx context.Context, query string, limit int) []validator.Suggestion
	Search(ctx context.Context, query string, limit int) []validator.Suggestion
}

// Detector 照片食材辨識
type Detector interface {
	Detect(ctx context.Context, data []byte) ([]string, error)
}

// ImageDecoder 解析 data URI
type ImageDecoder func(dataURI string) ([]byte, error)

// Handler 食材處理器
type Handler struct {
	validator  Validator
	detector   Detector
	decodeURI  ImageDecoder
	maxUploads int64
}

// NewHandler 創建食材處理器
func NewHandler(v Validator, d Detector, decode ImageDecoder, maxImageBytes int64) *Handler {
	return &Handler{validator: v, detector: d, decodeURI: decode, maxUploads: maxImageBytes}
}

// ValidateRequest 單一食材驗證請求
type ValidateRequest struct {
	Ingredient string `json:"ingredient" binding:"notblank"`
}

// BatchRequest 批次驗證請求
type BatchRequest struct {
	Ingredients []string `json:"ingredients" binding:"notblank"`
}

// BatchResponse 批次驗證結果
type BatchResponse struct {
	Results     []validator.Result  `json:"results"`
	Valid       []string            `json:"valid"`
	Invalid     []string            `json:"invalid"`
	Suggestions map[string][]string `json:"suggestions"`
}

// DetectRequest JSON 形式的照片上傳
type DetectRequest struct {
	Image string `json:"image" binding:"notblank"`
}

// Validate POST /api/ingredients/validate
func (h *Handler) Validate(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, http.StatusBadRequest, "Ingredient is required")
		return
	}

	c.JSON(http.StatusOK, h.validator.Validate(c.Request.Context(), req.Ingredient))
}

// ValidateBatch POST /api/ingredients/validate-batch
func (h *Handler) ValidateBatch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.WriteError(c, http.StatusBadRequest, "Ingredients list is required")
		return
	}

	results := h.validator.ValidateList(c.Request.Context(), req.Ingredients)

	resp := BatchResponse{
		Results:     results,
		Valid:       []string{},
		Invalid:     []string{},
		Suggestions: map[string][]string{},
	}
	for _, r := range results {
		if r.IsValid() {
			name := r.Original
			if corrected := r.Corrected(); corrected != nil {
				name = *corrected
			}
			resp.Valid = append(resp.Valid, name)
			continue
		}
		resp.Invalid = append(resp.Invalid, r.Original)
		if s := r.Suggestions(); len(s) > 0 {
			resp.Suggestions[r.Original] = s
		}
	}

	common.LogDebug("batch validation completed",
		zap.Int("total", len(results)),
		zap.Int("valid", len(resp.Valid)),
		zap.String("request_id", requestid.Get(c)),
	)
	c.JSON(http.StatusOK, resp)
}

// Autocomplete GET /api/ingredients/autocomplete?q=&limit=
func (h *Handler) Autocomplete(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	limit := queryLimit(c)
	c.JSON(http.StatusOK, gin.H{"suggestions": h.validator.Autocomplete(c.Request.Context(), q, limit)})
}

// Search GET /api/ingredients/search?q=&limit=
func (h *Handler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	limit := queryLimit(c)
	c.JSON(http.StatusOK, gin.H{"results": h.validator.Search(c.Request.Context(), q, limit)})
}

// Detect POST /api/ingredients/detect，接受 multipart 欄位 image 或 JSON data URI
func (h *Handler) Detect(c *gin.Context) {
	data, err := h.readImage(c)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	ingredients, err := h.detector.Detect(c.Request.Context(), data)
	if err != nil {
		common.AbortWithError(c, err)
		return
	}

	common.LogInfo("ingredients detected",
		zap.Int("count", len(ingredients)),
		zap.String("request_id", requestid.Get(c)),
	)
	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *Handler) readImage(c *gin.Context) ([]byte, error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("image")
		if err != nil {
			return nil, common.ErrInvalidRequest.WithMessage("No image file provided")
		}
		if h.maxUploads > 0 && fh.Size > h.maxUploads {
			return nil, common.ErrInvalidImage.WithMessage("Image is too large")
		}

		f, err := fh.Open()
		if err != nil {
			return nil, common.ErrInvalidImage.Wrap(err)
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return nil, common.ErrInvalidImage.Wrap(err)
		}
		if len(data) == 0 {
			return nil, common.ErrInvalidRequest.WithMessage("No image selected")
		}
		return data, nil
	}

	var req DetectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, common.ErrInvalidImage.WithMessage("Image is too large")
		}
		return nil, common.ErrInvalidRequest.WithMessage("No image provided")
	}
	return h.decodeURI(req.Image)
}

func queryLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.Query("limit"))
	if err != nil || limit <= 0 {
		return 0
	}
	return min(limit, 50)
}
