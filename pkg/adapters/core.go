package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// デフォルトのモデル名なのだ。
const (
	DefaultTextModel  = "gemini-2.5-flash"
	DefaultEditModel  = "gemini-2.5-flash-image"
	DefaultImageModel = "imagen-4.0-generate-001"
)

const (
	defaultMaxRetries      = 2
	defaultInitialInterval = 500 * time.Millisecond
	defaultMaxInterval     = 5 * time.Second
)

// ContentGenerator は gemini.GenerativeModel のうちテキスト生成と画像編集に使うメソッドです。
// gemini.NewClient の戻り値がそのまま満たすのだ。
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error)
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// modelsAPI は genai.Models のうち Imagen と検索グラウンディングに使うメソッドだけを切り出したものです。
type modelsAPI interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
}

// Config は GeminiClient の設定です。
type Config struct {
	TextModel  string
	EditModel  string
	ImageModel string
	// MaxRetries は一時的な失敗 (429, 5xx) に対する再試行回数です。
	// nil ならデフォルトの2回、0 以下なら再試行しないのだ。
	MaxRetries      *int
	InitialInterval time.Duration
}

// GeminiClient は4つのリモート能力を実装します。
// テキストと画像編集は gemini.GenerativeModel、画像生成と検索付きテキストは genai を直接使うのだ。
type GeminiClient struct {
	aiClient ContentGenerator
	models   modelsAPI
	cfg      Config
	retries  int
}

// NewGeminiClient は ContentGenerator と genai.Client から GeminiClient を生成するのだ。
func NewGeminiClient(aiClient ContentGenerator, client *genai.Client, cfg Config) (*GeminiClient, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (ContentGenerator) is required")
	}
	if client == nil || client.Models == nil {
		return nil, fmt.Errorf("client (*genai.Client) is required")
	}
	return newGeminiClient(aiClient, client.Models, cfg), nil
}

func newGeminiClient(aiClient ContentGenerator, models modelsAPI, cfg Config) *GeminiClient {
	if cfg.TextModel == "" {
		cfg.TextModel = DefaultTextModel
	}
	if cfg.EditModel == "" {
		cfg.EditModel = DefaultEditModel
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = DefaultImageModel
	}
	retries := defaultMaxRetries
	if cfg.MaxRetries != nil {
		retries = max(*cfg.MaxRetries, 0)
	}
	if cfg.InitialInterval <= 0 {
		cfg.InitialInterval = defaultInitialInterval
	}
	return &GeminiClient{aiClient: aiClient, models: models, cfg: cfg, retries: retries}
}

// withRetry は一時的なAPIエラーのみ指数バックオフで再試行するのだ。
func withRetry[T any](ctx context.Context, c *GeminiClient, op string, fn func() (T, error)) (T, error) {
	b := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewExponentialBackOff(
				backoff.WithInitialInterval(c.cfg.InitialInterval),
				backoff.WithMaxInterval(defaultMaxInterval),
			),
			uint64(c.retries),
		),
		ctx,
	)

	return backoff.RetryNotifyWithData(func() (T, error) {
		v, err := fn()
		if err != nil && !isRetryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, b, func(err error, wait time.Duration) {
		slog.WarnContext(ctx, "Gemini API の一時的なエラーのため再試行します", "op", op, "wait", wait, "error", err)
	})
}

// isRetryable はレート制限とサーバーエラーを再試行対象と判定します。
func isRetryable(err error) bool {
	code, ok := apiErrorCode(err)
	if !ok {
		return false
	}
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func apiErrorCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}

// rawResponse は gemini.Response から genai のレスポンスを取り出すのだ。
func rawResponse(resp *gemini.Response) *genai.GenerateContentResponse {
	if resp == nil {
		return nil
	}
	return resp.RawResponse
}

// firstCandidate は最初の候補を返すのだ。現在は最初の候補のみを利用します。
func firstCandidate(resp *genai.GenerateContentResponse) (*genai.Candidate, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}
	return resp.Candidates[0], nil
}

// logAbnormalFinish は安全フィルター等による異常終了を記録するのだ。
func logAbnormalFinish(ctx context.Context, op string, c *genai.Candidate) {
	if c.FinishReason != "" && c.FinishReason != genai.FinishReasonUnspecified && c.FinishReason != genai.FinishReasonStop {
		slog.WarnContext(ctx, "生成が異常終了しました", "op", op, "finish_reason", c.FinishReason)
	}
}
