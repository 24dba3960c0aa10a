package generator

// FallbackCaption はテキストが空だった場合に使う固定のキャプションなのだ。
const FallbackCaption = "Could not generate a witty comment. Please try again!"

// generatedImageMediaType は画像生成結果を data URI にするときのメディアタイプです。
const generatedImageMediaType = "image/png"

// Dependencies は MemeGenerator が利用する外部能力の集合です。
type Dependencies struct {
	Text     TextGenerator
	Images   ImageGenerator
	Editor   ImageEditor
	Trends   TrendFetcher
	Scenario ScenarioSampler
	Prompts  PromptBuilder
}

// Options は生成時の挙動を切り替える設定です。
type Options struct {
	// TrendFallback が true の場合、トレンド取得に失敗してもオフラインのシナリオで続行するのだ。
	TrendFallback bool
}
