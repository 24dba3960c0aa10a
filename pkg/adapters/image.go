package adapters

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shouni/go-meme-kit/pkg/domain"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

const imageOutputMIMEType = "image/png"

// GenerateImages は Imagen で画像を1枚生成します。0枚が返ることもあるのだ。
func (c *GeminiClient) GenerateImages(ctx context.Context, prompt string, aspectRatio string) ([]domain.GeneratedImage, error) {
	cfg := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		OutputMIMEType: imageOutputMIMEType,
		AspectRatio:    aspectRatio,
	}

	resp, err := withRetry(ctx, c, "generate_images", func() (*genai.GenerateImagesResponse, error) {
		return c.models.GenerateImages(ctx, c.cfg.ImageModel, prompt, cfg)
	})
	if err != nil {
		return nil, fmt.Errorf("画像生成に失敗しました: %w", err)
	}
	return toGeneratedImages(resp), nil
}

// EditImage は参照画像とプロンプトを画像モデルに渡し、画像とテキストのパーツを返すのだ。
// 候補が無い応答は空のパーツ列として返し、画像の有無の判定は呼び出し側に任せます。
func (c *GeminiClient) EditImage(ctx context.Context, ref domain.ReferenceImage, prompt string) ([]domain.ContentPart, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(ref.Data, ref.MediaType),
		genai.NewPartFromText(prompt),
	}

	resp, err := withRetry(ctx, c, "edit_image", func() (*gemini.Response, error) {
		return c.aiClient.GenerateWithParts(ctx, c.cfg.EditModel, parts, gemini.GenerateOptions{})
	})
	if err != nil {
		return nil, fmt.Errorf("画像編集に失敗しました: %w", err)
	}

	cand, err := firstCandidate(rawResponse(resp))
	if err != nil {
		slog.WarnContext(ctx, "画像編集の応答に候補がありませんでした", "model", c.cfg.EditModel, "error", err)
		return []domain.ContentPart{}, nil
	}
	logAbnormalFinish(ctx, "edit_image", cand)
	return toContentParts(cand), nil
}

// toGeneratedImages は画像バイトを持つ結果だけを取り出します。
func toGeneratedImages(resp *genai.GenerateImagesResponse) []domain.GeneratedImage {
	if resp == nil {
		return nil
	}
	var out []domain.GeneratedImage
	for _, gi := range resp.GeneratedImages {
		if gi == nil || gi.Image == nil || len(gi.Image.ImageBytes) == 0 {
			continue
		}
		mimeType := gi.Image.MIMEType
		if mimeType == "" {
			mimeType = imageOutputMIMEType
		}
		out = append(out, domain.GeneratedImage{Data: gi.Image.ImageBytes, MimeType: mimeType})
	}
	return out
}

// toContentParts は候補のパーツを ImagePart と TextPart の列に変換するのだ。
// 順序は保ち、思考パーツと空のパーツは捨てます。
func toContentParts(cand *genai.Candidate) []domain.ContentPart {
	if cand == nil || cand.Content == nil {
		return nil
	}
	var parts []domain.ContentPart
	for _, p := range cand.Content.Parts {
		switch {
		case p == nil || p.Thought:
			continue
		case p.InlineData != nil && len(p.InlineData.Data) > 0:
			parts = append(parts, domain.ImagePart{MIMEType: p.InlineData.MIMEType, Data: p.InlineData.Data})
		case p.Text != "":
			parts = append(parts, domain.TextPart{Text: p.Text})
		}
	}
	return parts
}
