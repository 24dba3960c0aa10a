package adapters

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/go-meme-kit/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GenerateText はプロンプトからテキストを生成します。温度は gemini クライアント側の設定に従うのだ。
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := withRetry(ctx, c, "text", func() (*gemini.Response, error) {
		return c.aiClient.GenerateContent(ctx, c.cfg.TextModel, prompt)
	})
	if err != nil {
		return "", fmt.Errorf("テキスト生成に失敗しました: %w", err)
	}
	return responseText(rawResponse(resp)), nil
}

// GenerateGrounded は Google 検索グラウンディング付きでテキストを生成するのだ。
func (c *GeminiClient) GenerateGrounded(ctx context.Context, instruction string) (*domain.GroundedResponse, error) {
	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}

	resp, err := withRetry(ctx, c, "grounded", func() (*genai.GenerateContentResponse, error) {
		return c.models.GenerateContent(ctx, c.cfg.TextModel, genai.Text(instruction), cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("検索付きテキスト生成に失敗しました: %w", err)
	}
	return toGroundedResponse(resp), nil
}

// responseText は最初の候補のテキストパーツを連結するのだ。思考パーツは除きます。
func responseText(resp *genai.GenerateContentResponse) string {
	cand, err := firstCandidate(resp)
	if err != nil || cand.Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if p == nil || p.Thought || p.Text == "" {
			continue
		}
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// toGroundedResponse はテキストとグラウンディングチャンクを取り出します。
func toGroundedResponse(resp *genai.GenerateContentResponse) *domain.GroundedResponse {
	out := &domain.GroundedResponse{Text: responseText(resp)}
	cand, err := firstCandidate(resp)
	if err != nil || cand.GroundingMetadata == nil {
		return out
	}
	for _, ch := range cand.GroundingMetadata.GroundingChunks {
		if ch == nil {
			continue
		}
		chunk := domain.GroundingChunk{}
		if ch.Web != nil {
			chunk.Web = &domain.WebChunk{URI: ch.Web.URI, Title: ch.Web.Title}
		}
		out.Chunks = append(out.Chunks, chunk)
	}
	return out
}
