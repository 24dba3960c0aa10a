package builder

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-meme-kit/internal/config"
	"github.com/shouni/go-meme-kit/pkg/adapters"
	"github.com/shouni/go-meme-kit/pkg/asset"
	"github.com/shouni/go-meme-kit/pkg/catalog"
	"github.com/shouni/go-meme-kit/pkg/generator"
	"github.com/shouni/go-meme-kit/pkg/prompts"
	"github.com/shouni/go-meme-kit/pkg/publish"
	"github.com/shouni/go-meme-kit/pkg/trends"

	"github.com/patrickmn/go-cache"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/gcsfactory"
	"google.golang.org/genai"
)

// BuildAppContext は設定から全コンポーネントを組み立てるのだ。
func BuildAppContext(ctx context.Context, cfg *config.Config) (*AppContext, error) {
	cat, err := LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return nil, err
	}

	client, err := adapters.NewGenAIClient(ctx, adapters.ClientOptions{
		APIKey:      cfg.GeminiAPIKey,
		ProjectID:   cfg.ProjectID,
		Location:    cfg.LocationID,
		HTTPTimeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, err
	}

	aiClient, err := buildContentGenerator(ctx, client, cfg)
	if err != nil {
		return nil, err
	}

	gen, err := BuildGenerator(aiClient, client, cat, cfg)
	if err != nil {
		return nil, err
	}

	reader, writer := initializeRemoteIO(ctx)

	imageCache := cache.New(config.DefaultCacheTTL, config.DefaultCacheCleanup)
	loader, err := asset.NewLoader(reader, httpkit.New(cfg.HTTPTimeout), imageCache, config.DefaultCacheTTL, cfg.MaxImageBytes)
	if err != nil {
		return nil, fmt.Errorf("参照画像ローダーの初期化に失敗しました: %w", err)
	}

	pub, err := publish.NewPublisher(writer)
	if err != nil {
		return nil, fmt.Errorf("パブリッシャーの初期化に失敗しました: %w", err)
	}

	return &AppContext{
		Config:    cfg,
		Catalog:   cat,
		Generator: gen,
		Loader:    loader,
		Publisher: pub,
	}, nil
}

// LoadCatalog はファイルが指定されていればそれを、無ければ組み込みのカタログを返すのだ。
func LoadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, fmt.Errorf("カタログの読み込みに失敗しました: %w", err)
	}
	slog.Info("カスタムカタログを読み込みました", "path", path, "categories", len(cat.Categories()))
	return cat, nil
}

// buildContentGenerator はテキスト生成と画像編集を担うクライアントを選ぶのだ。
// APIキーがあれば gemini クライアント、Vertex AI なら genai だけで同じ役割を果たします。
func buildContentGenerator(ctx context.Context, client *genai.Client, cfg *config.Config) (adapters.ContentGenerator, error) {
	if cfg.GeminiAPIKey != "" {
		return adapters.NewAIClient(ctx, cfg.GeminiAPIKey, cfg.Temperature)
	}
	slog.InfoContext(ctx, "APIキーが無いため Vertex AI でテキスト生成と画像編集を行います", "project", cfg.ProjectID, "location", cfg.LocationID)
	return adapters.NewVertexContent(client, cfg.Temperature)
}

// BuildGenerator は2つのクライアントから MemeGenerator を組み立てます。
func BuildGenerator(aiClient adapters.ContentGenerator, client *genai.Client, cat *catalog.Catalog, cfg *config.Config) (*generator.MemeGenerator, error) {
	maxRetries := cfg.MaxRetries
	gemini, err := adapters.NewGeminiClient(aiClient, client, adapters.Config{
		TextModel:  cfg.TextModel,
		EditModel:  cfg.EditModel,
		ImageModel: cfg.ImageModel,
		MaxRetries: &maxRetries,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}

	fetcher, err := trends.NewFetcher(gemini)
	if err != nil {
		return nil, err
	}

	builder, err := prompts.NewBuilder()
	if err != nil {
		return nil, err
	}

	gen, err := generator.NewMemeGenerator(generator.Dependencies{
		Text:     gemini,
		Images:   gemini,
		Editor:   gemini,
		Trends:   fetcher,
		Scenario: catalog.NewSelector(cat, catalog.DefaultRandom()),
		Prompts:  builder,
	}, generator.Options{TrendFallback: cfg.TrendFallback})
	if err != nil {
		return nil, fmt.Errorf("MemeGeneratorの初期化に失敗しました: %w", err)
	}
	return gen, nil
}

// initializeRemoteIO は GCS 対応の reader/writer を用意するのだ。
// GCS の認証情報が無い環境ではローカルファイルのみで続行します。
func initializeRemoteIO(ctx context.Context) (asset.InputReader, publish.OutputWriter) {
	factory, err := gcsfactory.NewGCSClientFactory(ctx)
	if err != nil {
		slog.WarnContext(ctx, "GCSクライアントの初期化に失敗しました。ローカルファイルのみ利用できます", "error", err)
		return localFS{}, localFS{}
	}

	var reader asset.InputReader = localFS{}
	if r, err := factory.NewInputReader(); err != nil {
		slog.WarnContext(ctx, "InputReaderの取得に失敗しました。ローカルファイルのみ読み込めます", "error", err)
	} else {
		reader = r
	}

	var writer publish.OutputWriter = localFS{}
	if w, err := factory.NewOutputWriter(); err != nil {
		slog.WarnContext(ctx, "OutputWriterの取得に失敗しました。ローカルにのみ保存できます", "error", err)
	} else {
		writer = w
	}
	return reader, writer
}
