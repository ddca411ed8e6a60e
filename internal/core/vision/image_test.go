package vision

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 40, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalize_DownscalesAndEncodesJPEG(t *testing.T) {
	out, err := Normalize(pngImage(t, 400, 200), 100, 0)
	require.NoError(t, err)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 100, cfg.Width)
	assert.Equal(t, 50, cfg.Height)
}

func TestNormalize_KeepsSmallImageSize(t *testing.T) {
	out, err := Normalize(pngImage(t, 40, 30), 100, 0)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestNormalize_Rejects(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		maxBytes int64
	}{
		{"empty", nil, 0},
		{"not an image", []byte("hello world"), 0},
		{"too large", pngImage(t, 20, 20), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.data, 100, tt.maxBytes)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidImage))
		})
	}
}

func TestDecodeDataURI(t *testing.T) {
	raw := pngImage(t, 4, 4)
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	got, err := DecodeDataURI(uri)
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	for _, bad := range []string{"", "hello", "data:image/png,abc", "data:image/png;base64,***"} {
		_, err := DecodeDataURI(bad)
		assert.True(t, errors.Is(err, ErrInvalidImage), bad)
	}
}
