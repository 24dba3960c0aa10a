package adapters

import (
	"context"
	"testing"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestNewVertexContent(t *testing.T) {
	_, err := NewVertexContent(nil, 0.9)
	assert.Error(t, err)
}

func TestVertexContent(t *testing.T) {
	ctx := context.Background()
	temp := float32(0.5)

	t.Run("テキスト生成は温度を付けて genai に渡すのだ", func(t *testing.T) {
		m := &mockModels{contentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			assert.Equal(t, "text-model", model)
			require.Len(t, contents, 1)
			assert.Equal(t, "hello", contents[0].Parts[0].Text)
			require.NotNil(t, config.Temperature)
			assert.Equal(t, temp, *config.Temperature)
			return responseWithParts(&genai.Part{Text: "hi"}), nil
		}}
		v := &VertexContent{models: m, temperature: &temp}

		resp, err := v.GenerateContent(ctx, "text-model", "hello")
		require.NoError(t, err)
		assert.Equal(t, "hi", responseText(rawResponse(resp)))
	})

	t.Run("パーツ付きの生成は画像とテキストの両方を要求するのだ", func(t *testing.T) {
		m := &mockModels{contentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			require.Len(t, contents, 1)
			assert.Len(t, contents[0].Parts, 2)
			assert.ElementsMatch(t, []string{"IMAGE", "TEXT"}, config.ResponseModalities)
			return responseWithParts(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("x")}}), nil
		}}
		v := &VertexContent{models: m, temperature: &temp}

		parts := []*genai.Part{genai.NewPartFromBytes([]byte{1}, "image/png"), genai.NewPartFromText("edit")}
		resp, err := v.GenerateWithParts(ctx, "edit-model", parts, gemini.GenerateOptions{})
		require.NoError(t, err)
		require.NotNil(t, resp.RawResponse)
	})
}
