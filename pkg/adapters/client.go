package adapters

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ClientOptions は genai クライアントの接続設定です。
type ClientOptions struct {
	APIKey      string
	ProjectID   string
	Location    string
	HTTPTimeout time.Duration
}

// NewGenAIClient は genai のクライアントを初期化するのだ。
// APIキーが無くプロジェクトが指定されている場合は Vertex AI を使います。
func NewGenAIClient(ctx context.Context, opts ClientOptions) (*genai.Client, error) {
	cc := &genai.ClientConfig{}
	switch {
	case opts.APIKey != "":
		cc.APIKey = opts.APIKey
		cc.Backend = genai.BackendGeminiAPI
	case opts.ProjectID != "":
		cc.Project = opts.ProjectID
		cc.Location = opts.Location
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("GEMINI_API_KEY か PROJECT_ID のどちらかが必要です")
	}
	if opts.HTTPTimeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: opts.HTTPTimeout}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("AIクライアントの初期化に失敗しました: %w", err)
	}
	return client, nil
}

// NewAIClient は gemini クライアントを初期化します。
func NewAIClient(ctx context.Context, apiKey string, temperature float32) (gemini.GenerativeModel, error) {
	clientConfig := gemini.Config{
		APIKey:      apiKey,
		Temperature: genai.Ptr(temperature),
	}
	aiClient, err := gemini.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	return aiClient, nil
}

// VertexContent は APIキーの無い Vertex AI 環境で ContentGenerator を genai だけで満たすのだ。
type VertexContent struct {
	models      modelsAPI
	temperature *float32
}

// NewVertexContent は Vertex AI バックエンドの genai.Client から VertexContent を生成します。
func NewVertexContent(client *genai.Client, temperature float32) (*VertexContent, error) {
	if client == nil || client.Models == nil {
		return nil, fmt.Errorf("client (*genai.Client) is required")
	}
	return &VertexContent{models: client.Models, temperature: genai.Ptr(temperature)}, nil
}

// GenerateContent はプロンプト1つでテキストを生成します。
func (v *VertexContent) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	resp, err := v.models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{Temperature: v.temperature})
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}

// GenerateWithParts は画像とテキストの混在パーツを送り、画像とテキストの両方を要求するのだ。
func (v *VertexContent) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, _ gemini.GenerateOptions) (*gemini.Response, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage), string(genai.ModalityText)},
	}
	resp, err := v.models.GenerateContent(ctx, model, []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, cfg)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}
