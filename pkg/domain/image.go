package domain

import "strings"

// サポートする参照画像のメディアタイプです。
const (
	MediaTypeJPEG = "image/jpeg"
	MediaTypePNG  = "image/png"
	MediaTypeWebP = "image/webp"
)

// allowedMediaTypes は参照画像として受け付けるメディアタイプの許可リストなのだ。
var allowedMediaTypes = map[string]struct{}{
	MediaTypeJPEG: {},
	MediaTypePNG:  {},
	MediaTypeWebP: {},
}

// IsAllowedMediaType は指定されたメディアタイプが参照画像として許可されているかを判定します。
func IsAllowedMediaType(mediaType string) bool {
	_, ok := allowedMediaTypes[strings.ToLower(strings.TrimSpace(mediaType))]
	return ok
}

// ReferenceImage はユーザーが指定した参照画像のスナップショットです。
// 生成1回分のみ利用され、生成器はこれを保持しません。
type ReferenceImage struct {
	MediaType string
	Data      []byte
}

// GeneratedImage は画像生成APIが返した1枚分の画像データです。
type GeneratedImage struct {
	Data     []byte
	MimeType string
}
