package prompts

import (
	"testing"

	"github.com/shouni/go-meme-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	data := TemplateData{Character: "a grumpy cat", Scenario: "laughing at the Monday blues"}

	t.Run("スタイルごとに画像プロンプトが切り替わるのだ", func(t *testing.T) {
		tests := []struct {
			style domain.OutputStyle
			want  string
		}{
			{domain.StyleSingleImage, "A meme of 'a grumpy cat' laughing at the Monday blues."},
			{domain.StyleWebtoon, "A 4-panel vertical webtoon comic strip."},
			{domain.StyleContrast, `A 2-panel "contrast" meme`},
		}
		for _, tt := range tests {
			t.Run(string(tt.style), func(t *testing.T) {
				got, err := b.ImagePrompt(tt.style, data)
				require.NoError(t, err)
				assert.Contains(t, got, tt.want)
				assert.Contains(t, got, "a grumpy cat")
			})
		}
	})

	t.Run("キャプションプロンプトは本文のみを返すよう指示するのだ", func(t *testing.T) {
		for _, style := range domain.OutputStyles() {
			got, err := b.CaptionPrompt(style, data)
			require.NoError(t, err)
			assert.Contains(t, got, "Character: a grumpy cat, Scenario: laughing at the Monday blues.")
			assert.Contains(t, got, "Just return the caption text, nothing else.")
		}
	})

	t.Run("編集プロンプトにキャラクターとシナリオが入るのだ", func(t *testing.T) {
		got, err := b.EditPrompt(data)
		require.NoError(t, err)
		assert.Contains(t, got, "Use this character: 'a grumpy cat'.")
		assert.Contains(t, got, "The character is laughing at the Monday blues.")
	})

	t.Run("未知のスタイルはエラーなのだ", func(t *testing.T) {
		_, err := b.ImagePrompt("poster", data)
		assert.Error(t, err)
	})
}
