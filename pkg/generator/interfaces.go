package generator

import (
	"context"

	"github.com/shouni/go-meme-kit/pkg/domain"
	"github.com/shouni/go-meme-kit/pkg/prompts"
	"github.com/shouni/go-meme-kit/pkg/trends"
)

// TextGenerator はプレーンなテキスト生成の能力です。キャプションに使うのだ。
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator はテキストプロンプトから画像を生成する能力です。
// 生成枚数は1枚、出力は PNG を要求し、0枚が返ることもあるのだ。
type ImageGenerator interface {
	GenerateImages(ctx context.Context, prompt string, aspectRatio string) ([]domain.GeneratedImage, error)
}

// ImageEditor は参照画像とプロンプトから画像とテキストの混在パーツを返す能力です。
type ImageEditor interface {
	EditImage(ctx context.Context, ref domain.ReferenceImage, prompt string) ([]domain.ContentPart, error)
}

// TrendFetcher はリアルタイムのトレンドトピックを取得します。
type TrendFetcher interface {
	FetchTrending(ctx context.Context) (*trends.Trend, error)
}

// ScenarioSampler はオフラインのカタログからシナリオを選びます。
type ScenarioSampler interface {
	Sample() domain.Scenario
	Reaction() string
}

// PromptBuilder はスタイル別のプロンプトを組み立てます。
type PromptBuilder interface {
	ImagePrompt(style domain.OutputStyle, data prompts.TemplateData) (string, error)
	CaptionPrompt(style domain.OutputStyle, data prompts.TemplateData) (string, error)
	EditPrompt(data prompts.TemplateData) (string, error)
}

// Generator は呼び出し側から見たミーム生成の窓口です。
type Generator interface {
	Generate(ctx context.Context, req domain.MemeRequest) (*domain.MemeResult, error)
}
