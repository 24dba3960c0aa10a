package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shouni/go-meme-kit/pkg/domain"
	"github.com/shouni/go-meme-kit/pkg/imgutil"
	"github.com/shouni/go-meme-kit/pkg/prompts"

	"golang.org/x/sync/errgroup"
)

// MemeGenerator はユーザー入力からリモート呼び出しを組み立て、ミームを1つ完成させるオーケストレーターです。
// 呼び出し間で状態を持たないのだ。
type MemeGenerator struct {
	deps Dependencies
	opts Options
}

// NewMemeGenerator は依存関係を検証して MemeGenerator を初期化するのだ。
func NewMemeGenerator(deps Dependencies, opts Options) (*MemeGenerator, error) {
	if deps.Text == nil {
		return nil, fmt.Errorf("text (TextGenerator) is required")
	}
	if deps.Images == nil {
		return nil, fmt.Errorf("images (ImageGenerator) is required")
	}
	if deps.Editor == nil {
		return nil, fmt.Errorf("editor (ImageEditor) is required")
	}
	if deps.Trends == nil {
		return nil, fmt.Errorf("trends (TrendFetcher) is required")
	}
	if deps.Scenario == nil {
		return nil, fmt.Errorf("scenario (ScenarioSampler) is required")
	}
	if deps.Prompts == nil {
		return nil, fmt.Errorf("prompts (PromptBuilder) is required")
	}
	return &MemeGenerator{deps: deps, opts: opts}, nil
}

// Generate はミームを1つ生成します。
// 参照画像がある場合はスタイルを single-image に固定し、リアルタイム検索は行わないのだ。
// 返すエラーは常に *domain.MemeError なのだ。
func (g *MemeGenerator) Generate(ctx context.Context, req domain.MemeRequest) (result *domain.MemeResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "ミーム生成中に予期しないパニックが発生しました", "panic", r)
			result = nil
			err = domain.NewUnknownError(fmt.Errorf("panic: %v", r))
		}
	}()

	req = req.Normalize()

	scenario, sources, err := g.acquireScenario(ctx, req)
	if err != nil {
		return nil, wrapFailure(err)
	}

	if req.ReferenceImage != nil {
		slog.InfoContext(ctx, "参照画像を編集してミームを生成します", "scenario", scenario.String())
		result, err = g.editMeme(ctx, req, scenario)
	} else {
		slog.InfoContext(ctx, "画像とキャプションを並列に生成します",
			"style", req.Style, "scenario", scenario.String(), "realtime", scenario.Realtime)
		result, err = g.composeMeme(ctx, req, scenario, sources)
	}
	if err != nil {
		return nil, wrapFailure(err)
	}
	return result, nil
}

// acquireScenario はシナリオを決定するのだ。後続のプロンプトはすべてこれに依存します。
func (g *MemeGenerator) acquireScenario(ctx context.Context, req domain.MemeRequest) (domain.Scenario, []domain.Source, error) {
	if !req.UseRealtime || req.ReferenceImage != nil {
		return g.deps.Scenario.Sample(), nil, nil
	}

	trend, err := g.deps.Trends.FetchTrending(ctx)
	if err != nil {
		if !g.opts.TrendFallback {
			return domain.Scenario{}, nil, err
		}
		slog.WarnContext(ctx, "トレンド取得に失敗したためオフラインのシナリオで続行します", "error", err)
		return g.deps.Scenario.Sample(), nil, nil
	}

	scenario := domain.Scenario{
		Reaction: g.deps.Scenario.Reaction(),
		Topic:    trend.Topic,
		Realtime: true,
	}
	return scenario, trend.Sources, nil
}

// editMeme は参照画像にキャラクターを合成する1回の呼び出しでミームを作るのだ。
func (g *MemeGenerator) editMeme(ctx context.Context, req domain.MemeRequest, scenario domain.Scenario) (*domain.MemeResult, error) {
	prompt, err := g.deps.Prompts.EditPrompt(prompts.TemplateData{Character: req.Character, Scenario: scenario.String()})
	if err != nil {
		return nil, domain.NewUnknownError(err)
	}

	parts, err := g.deps.Editor.EditImage(ctx, *req.ReferenceImage, prompt)
	if err != nil {
		return nil, err
	}

	img, ok := domain.FirstOf[domain.ImagePart](parts)
	if !ok || len(img.Data) == 0 {
		return nil, domain.NewGenerationError(domain.MsgNoEditedImage)
	}
	mediaType := img.MIMEType
	if mediaType == "" {
		mediaType = generatedImageMediaType
	}

	caption := FallbackCaption
	if txt, ok := domain.FirstOf[domain.TextPart](parts); ok {
		caption = CleanCaption(txt.Text)
	}

	return &domain.MemeResult{
		ImageURL: imgutil.EncodeDataURI(mediaType, img.Data),
		Caption:  caption,
		Scenario: scenario.String(),
	}, nil
}

// composeMeme は画像生成とキャプション生成を同時に発行し、両方の完了を待つのだ。
// どちらかが失敗した場合は部分的な結果を返さないのだ。
func (g *MemeGenerator) composeMeme(ctx context.Context, req domain.MemeRequest, scenario domain.Scenario, sources []domain.Source) (*domain.MemeResult, error) {
	data := prompts.TemplateData{Character: req.Character, Scenario: scenario.String()}
	imagePrompt, err := g.deps.Prompts.ImagePrompt(req.Style, data)
	if err != nil {
		return nil, domain.NewUnknownError(err)
	}
	captionPrompt, err := g.deps.Prompts.CaptionPrompt(req.Style, data)
	if err != nil {
		return nil, domain.NewUnknownError(err)
	}

	var (
		images []domain.GeneratedImage
		text   string
	)
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		images, err = g.deps.Images.GenerateImages(egCtx, imagePrompt, req.Style.AspectRatio())
		return err
	})
	eg.Go(func() error {
		var err error
		text, err = g.deps.Text.GenerateText(egCtx, captionPrompt)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if len(images) == 0 || len(images[0].Data) == 0 {
		return nil, domain.NewGenerationError(domain.MsgNoGeneratedImage)
	}

	result := &domain.MemeResult{
		ImageURL: imgutil.EncodeDataURI(generatedImageMediaType, images[0].Data),
		Caption:  CleanCaption(text),
		Scenario: scenario.String(),
	}
	if scenario.Realtime && len(sources) > 0 {
		result.Sources = sources
	}
	return result, nil
}

// wrapFailure は失敗を呼び出し元向けのエラーに揃えるのだ。
// 既に分類済みのエラーはそのまま通し、それ以外はリモート呼び出しの失敗として包みます。
func wrapFailure(err error) error {
	var me *domain.MemeError
	if errors.As(err, &me) {
		return me
	}
	return domain.NewRemoteCallError(err)
}
