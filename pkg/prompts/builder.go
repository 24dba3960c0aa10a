package prompts

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/shouni/go-meme-kit/pkg/domain"
)

// TemplateData はプロンプトテンプレートに渡す値です。
type TemplateData struct {
	Character string
	Scenario  string
}

// Builder はスタイルごとのプロンプトを組み立てます。
type Builder struct {
	templates map[string]*template.Template
}

// NewBuilder は全テンプレートを解析して Builder を初期化するのだ。
func NewBuilder() (*Builder, error) {
	parsed := make(map[string]*template.Template, len(allTemplates))
	for name, content := range allTemplates {
		if content == "" {
			return nil, fmt.Errorf("プロンプトテンプレート '%s' が空です", name)
		}
		tmpl, err := template.New(name).Option("missingkey=error").Parse(content)
		if err != nil {
			return nil, fmt.Errorf("プロンプト '%s' の解析に失敗: %w", name, err)
		}
		parsed[name] = tmpl
	}
	return &Builder{templates: parsed}, nil
}

// ImagePrompt は画像生成用のプロンプトを返します。
func (b *Builder) ImagePrompt(style domain.OutputStyle, data TemplateData) (string, error) {
	return b.build(key(purposeImage, style), data)
}

// CaptionPrompt はキャプション生成用のプロンプトを返します。
func (b *Builder) CaptionPrompt(style domain.OutputStyle, data TemplateData) (string, error) {
	return b.build(key(purposeCaption, style), data)
}

// EditPrompt は参照画像を編集するためのプロンプトを返します。
func (b *Builder) EditPrompt(data TemplateData) (string, error) {
	return b.build(keyEdit, data)
}

func (b *Builder) build(name string, data TemplateData) (string, error) {
	tmpl, ok := b.templates[name]
	if !ok {
		return "", fmt.Errorf("不明なテンプレートです: '%s'", name)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("プロンプトテンプレートの実行に失敗しました: %w", err)
	}
	return sb.String(), nil
}
