package imgutil

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createDummyImageData はテスト用のダミー画像を作成するヘルパーなのだ。
// noisy を指定すると圧縮しにくいノイズ画像になるのだ。
func createDummyImageData(t *testing.T, format string, size int, noisy bool) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	r := rand.New(rand.NewPCG(1, 2))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			c := color.RGBA{255, 0, 0, 255}
			if noisy {
				c = color.RGBA{uint8(r.IntN(256)), uint8(r.IntN(256)), uint8(r.IntN(256)), 255}
			}
			img.Set(x, y, c)
		}
	}

	buf := new(bytes.Buffer)
	var err error
	switch format {
	case "png":
		err = png.Encode(buf, img)
	case "jpeg":
		err = jpeg.Encode(buf, img, nil)
	default:
		t.Fatalf("unsupported format: %s", format)
	}
	require.NoError(t, err)
	return buf.Bytes()
}

func TestFitWithin(t *testing.T) {
	t.Run("上限内なら元のデータをそのまま返すのだ", func(t *testing.T) {
		data := createDummyImageData(t, "png", 10, false)

		got, mediaType, err := FitWithin(data, len(data), DefaultJPEGQuality)
		require.NoError(t, err)
		assert.Equal(t, data, got)
		assert.Equal(t, "image/png", mediaType)
	})

	t.Run("上限を超えるとJPEGに再圧縮するのだ", func(t *testing.T) {
		data := createDummyImageData(t, "png", 64, true)

		got, mediaType, err := FitWithin(data, 1, DefaultJPEGQuality)
		require.NoError(t, err)
		assert.Equal(t, "image/jpeg", mediaType)

		_, format, err := image.Decode(bytes.NewReader(got))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
	})

	t.Run("画像でないデータはエラーなのだ", func(t *testing.T) {
		_, _, err := FitWithin([]byte("not an image"), 1, DefaultJPEGQuality)
		assert.Error(t, err)
	})
}
