package domain

import "strings"

// MemeRequest はミーム生成1回分の入力です。
type MemeRequest struct {
	Character      string
	ReferenceImage *ReferenceImage
	Style          OutputStyle
	UseRealtime    bool
}

// Validate は生成前に呼び出し側で行う入力チェックなのだ。
func (r MemeRequest) Validate() error {
	if strings.TrimSpace(r.Character) == "" {
		return NewValidationError(MsgBlankCharacter)
	}
	if r.ReferenceImage != nil {
		if !IsAllowedMediaType(r.ReferenceImage.MediaType) || len(r.ReferenceImage.Data) == 0 {
			return NewValidationError(MsgInvalidMediaType)
		}
	}
	return nil
}

// Normalize は参照画像の有無からスタイルとリアルタイム設定を再導出します。
// 参照画像がある場合は single-image 固定でリアルタイムは無効なのだ。
func (r MemeRequest) Normalize() MemeRequest {
	if r.ReferenceImage != nil {
		r.Style = StyleSingleImage
		r.UseRealtime = false
	}
	if !r.Style.IsValid() {
		r.Style = StyleSingleImage
	}
	return r
}

// Scenario はリアクションとトピックを組み合わせた短いフレーズです。
type Scenario struct {
	Reaction string
	Topic    string
	Category string
	// Realtime はトピックがリアルタイム検索由来かどうかを示すのだ。
	Realtime bool
}

// String はプロンプトに埋め込むシナリオ文を返します。
func (s Scenario) String() string {
	if s.Realtime {
		return s.Reaction + " the news that " + s.Topic
	}
	return s.Reaction + " " + s.Topic
}

// Source は検索グラウンディングの引用元です。
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// MemeResult は生成が成功したときに1度だけ組み立てられる成果物です。
type MemeResult struct {
	ImageURL string   `json:"imageUrl"`
	Caption  string   `json:"text"`
	Sources  []Source `json:"sources,omitempty"`
	Scenario string   `json:"scenario,omitempty"`
}

// GroundingChunk は検索グラウンディングが返す生のチャンクなのだ。Web は欠けていることがあるのだ。
type GroundingChunk struct {
	Web *WebChunk
}

// WebChunk は GroundingChunk 内の Web 参照です。
type WebChunk struct {
	URI   string
	Title string
}

// GroundedResponse は検索付きテキスト生成の結果です。
type GroundedResponse struct {
	Text   string
	Chunks []GroundingChunk
}
