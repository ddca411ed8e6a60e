package vision

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"strings"

	_ "image/gif" // 支援 GIF
	_ "image/png" // 支援 PNG

	"recipe-suggester/internal/pkg/common"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp" // 支援 WebP
)

// ErrInvalidImage 無法解析的圖片
var ErrInvalidImage = common.ErrInvalidImage

const jpegQuality = 85

// DecodeDataURI 解析 data:image/...;base64,... 格式
func DecodeDataURI(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "data:image/") {
		return nil, ErrInvalidImage.Wrap(fmt.Errorf("invalid image data format"))
	}

	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 || !strings.HasSuffix(parts[0], ";base64") {
		return nil, ErrInvalidImage.Wrap(fmt.Errorf("invalid base64 data format"))
	}

	data, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrInvalidImage.Wrap(fmt.Errorf("failed to decode base64 data: %w", err))
	}
	return data, nil
}

// Normalize 檢查大小與格式，縮小到 maxDimension 以內並轉成 JPEG
func Normalize(data []byte, maxDimension uint, maxBytes int64) ([]byte, error) {
	if len(data) == 0 {
		return nil, ErrInvalidImage.Wrap(fmt.Errorf("image data is empty"))
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrInvalidImage.Wrap(fmt.Errorf("image size exceeds maximum limit of %d bytes", maxBytes))
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, ErrInvalidImage.Wrap(fmt.Errorf("failed to decode image: %w", err))
	}
	if !isSupportedFormat(format) {
		return nil, ErrInvalidImage.Wrap(fmt.Errorf("unsupported image format: %s", format))
	}

	if maxDimension > 0 {
		b := img.Bounds()
		if uint(b.Dx()) > maxDimension || uint(b.Dy()) > maxDimension {
			img = resize.Thumbnail(maxDimension, maxDimension, img, resize.Lanczos3)
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image as JPEG: %w", err)
	}
	return buf.Bytes(), nil
}

// isSupportedFormat 檢查圖片格式是否支援
func isSupportedFormat(format string) bool {
	supportedFormats := map[string]bool{
		"jpeg": true,
		"png":  true,
		"gif":  true,
		"webp": true,
	}
	return supportedFormats[format]
}
