package prompts

import "github.com/shouni/go-meme-kit/pkg/domain"

// テンプレートのキーは "<用途>:<スタイル>" の形式なのだ。
const (
	purposeImage   = "image"
	purposeCaption = "caption"
	keyEdit        = "edit"
)

const captionSuffix = ` Just return the caption text, nothing else.`

var allTemplates = map[string]string{
	keyEdit: `Turn this image into a meme. Use this character: '{{.Character}}'. Scenario: The character is {{.Scenario}}. ` +
		`Place the character into the image in a funny way, matching the style. ` +
		`Add a short, witty speech bubble in English that fits the scene. ` +
		`Style: Internet meme, funny, relatable, shareable.`,

	key(purposeImage, domain.StyleSingleImage): `A meme of '{{.Character}}' {{.Scenario}}. ` +
		`Style: Internet meme, funny, relatable, shareable, high quality digital art.`,
	key(purposeCaption, domain.StyleSingleImage): `Create a short, witty, and funny caption for a meme. ` +
		`The meme is about: Character: {{.Character}}, Scenario: {{.Scenario}}. ` +
		`The caption should be in English and suitable for a speech bubble. Make it impactful and viral-worthy. ` +
		`Example: "Is this... for real?".` + captionSuffix,

	key(purposeImage, domain.StyleWebtoon): `A 4-panel vertical webtoon comic strip. The character is '{{.Character}}'. ` +
		`The scenario is: {{.Scenario}}. The comic should tell a short, funny story ending with a punchline. ` +
		`Style: simple webtoon art, humorous, meme-worthy, easy to read.`,
	key(purposeCaption, domain.StyleWebtoon): `Create a short, witty, and funny caption for a 4-panel webtoon. ` +
		`The meme is about: Character: {{.Character}}, Scenario: {{.Scenario}}. ` +
		`The caption should summarize the joke or be the punchline.` + captionSuffix,

	key(purposeImage, domain.StyleContrast): `A 2-panel "contrast" meme, like "Expectation vs. Reality" or "My plans vs. 2024". ` +
		`The character is '{{.Character}}'. The scenario is: {{.Scenario}}. ` +
		`The two panels should show a funny contrast. Style: internet meme, humorous, relatable.`,
	key(purposeCaption, domain.StyleContrast): `Create a short, witty, and funny caption for a 2-panel contrast meme. ` +
		`The meme is about: Character: {{.Character}}, Scenario: {{.Scenario}}. ` +
		`The caption should highlight the contrast.` + captionSuffix,
}

func key(purpose string, style domain.OutputStyle) string {
	return purpose + ":" + string(style)
}
