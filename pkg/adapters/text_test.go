package adapters

import (
	"context"
	"testing"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-meme-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiClient_GenerateText(t *testing.T) {
	ctx := context.Background()

	t.Run("テキストモデルで生成し、思考パーツは除くのだ", func(t *testing.T) {
		ai := &mockAIClient{contentFunc: func(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
			assert.Equal(t, "text-model", model)
			assert.Equal(t, "make a caption", prompt)
			return geminiResponse(
				&genai.Part{Text: "thinking...", Thought: true},
				&genai.Part{Text: "Monday "},
				&genai.Part{Text: "again."},
			), nil
		}}
		models := &mockModels{}
		c := newGeminiClient(ai, models, Config{TextModel: "text-model"})

		text, err := c.GenerateText(ctx, "make a caption")
		require.NoError(t, err)
		assert.Equal(t, "Monday again.", text)
		assert.Equal(t, 0, models.calls)
	})

	t.Run("候補や応答が無ければ空文字なのだ", func(t *testing.T) {
		for _, resp := range []*gemini.Response{nil, {}, {RawResponse: &genai.GenerateContentResponse{}}} {
			ai := &mockAIClient{contentFunc: func(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
				return resp, nil
			}}
			c := newGeminiClient(ai, &mockModels{}, Config{})

			text, err := c.GenerateText(ctx, "x")
			require.NoError(t, err)
			assert.Empty(t, text)
		}
	})
}

func TestGeminiClient_GenerateGrounded(t *testing.T) {
	ctx := context.Background()

	m := &mockModels{contentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		require.Len(t, config.Tools, 1)
		assert.NotNil(t, config.Tools[0].GoogleSearch)

		resp := responseWithParts(&genai.Part{Text: "a capybara ran for mayor"})
		resp.Candidates[0].GroundingMetadata = &genai.GroundingMetadata{
			GroundingChunks: []*genai.GroundingChunk{
				{Web: &genai.GroundingChunkWeb{URI: "a", Title: "A"}},
				{},
				nil,
				{Web: &genai.GroundingChunkWeb{URI: "", Title: "B"}},
			},
		}
		return resp, nil
	}}
	ai := &mockAIClient{}
	c := newGeminiClient(ai, m, Config{})

	got, err := c.GenerateGrounded(ctx, "find a trend")
	require.NoError(t, err)
	assert.Equal(t, "a capybara ran for mayor", got.Text)
	assert.Equal(t, []domain.GroundingChunk{
		{Web: &domain.WebChunk{URI: "a", Title: "A"}},
		{},
		{Web: &domain.WebChunk{URI: "", Title: "B"}},
	}, got.Chunks)
	assert.Equal(t, 0, ai.calls)
}
