package domain

// ContentPart は画像編集APIが返す混在パーツの1要素です。
// ImagePart と TextPart のどちらかなのだ。
type ContentPart interface {
	isContentPart()
}

// ImagePart はインライン画像データを保持するパーツです。
type ImagePart struct {
	MIMEType string
	Data     []byte
}

// TextPart はテキストを保持するパーツです。
type TextPart struct {
	Text string
}

func (ImagePart) isContentPart() {}
func (TextPart) isContentPart()  {}

// FirstOf は parts から型 T に一致する最初のパーツを返すのだ。
func FirstOf[T ContentPart](parts []ContentPart) (T, bool) {
	for _, p := range parts {
		if v, ok := p.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
