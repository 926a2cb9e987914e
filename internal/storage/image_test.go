package storage_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cortemaestro/barbershop-api/internal/storage"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestProcessImage(t *testing.T) {
	t.Run("re-encodes as webp", func(t *testing.T) {
		out, err := storage.ProcessImage(pngBytes(t, 40, 30), 1600)
		require.NoError(t, err)

		decoded, err := webp.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 40, decoded.Bounds().Dx())
		assert.Equal(t, 30, decoded.Bounds().Dy())
	})

	t.Run("downscales wide images keeping the aspect ratio", func(t *testing.T) {
		out, err := storage.ProcessImage(pngBytes(t, 200, 100), 50)
		require.NoError(t, err)

		decoded, err := webp.Decode(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 50, decoded.Bounds().Dx())
		assert.Equal(t, 25, decoded.Bounds().Dy())
	})

	t.Run("rejects non-image payloads", func(t *testing.T) {
		_, err := storage.ProcessImage([]byte("definitely not pixels"), 1600)
		assert.Error(t, err)
	})
}
