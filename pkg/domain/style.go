package domain

import (
	"fmt"
	"strings"
)

// OutputStyle はミームの出力レイアウトを表します。
type OutputStyle string

const (
	StyleSingleImage OutputStyle = "single-image"
	StyleWebtoon     OutputStyle = "webtoon"
	StyleContrast    OutputStyle = "contrast"
)

// 画像生成APIに渡すアスペクト比なのだ。
const (
	AspectSquare = "1:1"
	AspectTall   = "9:16"
	AspectWide   = "16:9"
)

// AspectRatio はスタイルに対応するアスペクト比を返します。
func (s OutputStyle) AspectRatio() string {
	switch s {
	case StyleWebtoon:
		return AspectTall
	case StyleContrast:
		return AspectWide
	default:
		return AspectSquare
	}
}

// IsValid は定義済みのスタイルかどうかを返します。
func (s OutputStyle) IsValid() bool {
	switch s {
	case StyleSingleImage, StyleWebtoon, StyleContrast:
		return true
	}
	return false
}

func (s OutputStyle) String() string {
	return string(s)
}

// ParseOutputStyle は文字列から OutputStyle を解決するのだ。
// 空文字は single-image として扱い、"one-image" は旧名称のエイリアスなのだ。
func ParseOutputStyle(raw string) (OutputStyle, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "single-image", "single", "one-image":
		return StyleSingleImage, nil
	case "webtoon":
		return StyleWebtoon, nil
	case "contrast":
		return StyleContrast, nil
	}
	return "", NewValidationError(fmt.Sprintf("Unsupported output style: %q (use single-image, webtoon or contrast).", raw))
}

// OutputStyles は利用可能な全スタイルを返します。
func OutputStyles() []OutputStyle {
	return []OutputStyle{StyleSingleImage, StyleWebtoon, StyleContrast}
}
