package imgutil

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
)

// DefaultJPEGQuality は再圧縮時のデフォルト品質なのだ。
const DefaultJPEGQuality = 75

// FitWithin は画像が maxBytes を超える場合に JPEG へ再圧縮するのだ。
// 収まっている場合や maxBytes が0以下の場合は元のデータとメディアタイプをそのまま返します。
func FitWithin(data []byte, maxBytes int, quality int) ([]byte, string, error) {
	mediaType, err := DetectMediaType(data)
	if err != nil {
		return nil, "", err
	}
	if maxBytes <= 0 || len(data) <= maxBytes {
		return data, mediaType, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("再圧縮のためのデコードに失敗しました: %w", err)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, "", fmt.Errorf("JPEGへの再圧縮に失敗しました: %w", err)
	}
	return buf.Bytes(), formatMediaTypes["jpeg"], nil
}
