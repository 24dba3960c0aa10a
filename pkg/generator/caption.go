package generator

import "strings"

// quotePairs は取り除く対象となる囲み引用符の組なのだ。
// シングルクォートはアポストロフィと区別できないので対象外です。
var quotePairs = [][2]string{
	{`"`, `"`},
	{"“", "”"},
}

// CleanCaption はキャプションを整形します。
// 前後の空白を除き、対応する囲み引用符を1組だけ取り除くのだ。結果が空なら FallbackCaption を返します。
func CleanCaption(raw string) string {
	s := strings.TrimSpace(raw)
	for _, q := range quotePairs {
		if len(s) >= len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			s = strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
			break
		}
	}
	if s == "" {
		return FallbackCaption
	}
	return s
}
