package adapters

import (
	"context"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// mockAIClient は ContentGenerator のテスト用モックなのだ。
type mockAIClient struct {
	contentFunc func(ctx context.Context, model string, prompt string) (*gemini.Response, error)
	partsFunc   func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
	calls       int
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	m.calls++
	if m.contentFunc != nil {
		return m.contentFunc(ctx, model, prompt)
	}
	return nil, nil
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.calls++
	if m.partsFunc != nil {
		return m.partsFunc(ctx, model, parts, opts)
	}
	return nil, nil
}

// mockModels は modelsAPI のテスト用モックなのだ。
type mockModels struct {
	contentFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	imagesFunc  func(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error)
	calls       int
}

func (m *mockModels) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	m.calls++
	if m.contentFunc != nil {
		return m.contentFunc(ctx, model, contents, config)
	}
	return nil, nil
}

func (m *mockModels) GenerateImages(ctx context.Context, model string, prompt string, config *genai.GenerateImagesConfig) (*genai.GenerateImagesResponse, error) {
	m.calls++
	if m.imagesFunc != nil {
		return m.imagesFunc(ctx, model, prompt, config)
	}
	return nil, nil
}

// responseWithParts は最初の候補に parts を持つレスポンスを作るヘルパーなのだ。
func responseWithParts(parts ...*genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: parts},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

// geminiResponse は responseWithParts を gemini.Response で包むのだ。
func geminiResponse(parts ...*genai.Part) *gemini.Response {
	return &gemini.Response{RawResponse: responseWithParts(parts...)}
}

func intPtr(v int) *int { return &v }
