package imgutil

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	_ "golang.org/x/image/webp"
)

// formatMediaTypes は image.DecodeConfig が返すフォーマット名とメディアタイプの対応なのだ。
var formatMediaTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"gif":  "image/gif",
}

// DetectMediaType は画像ヘッダーを解析してメディアタイプを判定します。
func DetectMediaType(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("画像データが空です")
	}
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("画像フォーマットを判定できませんでした: %w", err)
	}
	mediaType, ok := formatMediaTypes[format]
	if !ok {
		return "", fmt.Errorf("未対応の画像フォーマットです: %s", format)
	}
	return mediaType, nil
}

// EncodeDataURI はメディアタイプとバイト列を data URI にまとめるのだ。
func EncodeDataURI(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// DecodeDataURI は base64 形式の data URI をメディアタイプとバイト列に分解するのだ。
// 最初のカンマでヘッダーとペイロードを分けます。
func DecodeDataURI(uri string) (string, []byte, error) {
	header, payload, found := strings.Cut(uri, ",")
	if !found || !strings.HasPrefix(header, "data:") {
		return "", nil, errors.New("data URI の形式ではありません")
	}

	meta := strings.TrimPrefix(header, "data:")
	mediaType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, fmt.Errorf("base64 以外のエンコーディングには対応していません: %q", encoding)
	}

	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return "", nil, fmt.Errorf("data URI のデコードに失敗しました: %w", err)
	}
	return strings.ToLower(mediaType), data, nil
}

// IsDataURI は文字列が data URI かどうかを判定します。
func IsDataURI(s string) bool {
	return strings.HasPrefix(s, "data:")
}
