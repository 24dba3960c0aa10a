package catalog

import (
	"math/rand/v2"

	"github.com/shouni/go-meme-kit/pkg/domain"
)

// RandomSource は一様乱数を供給する抽象です。テストでは決定的な実装を差し込むのだ。
type RandomSource interface {
	// IntN は [0, n) の一様な整数を返します。
	IntN(n int) int
}

// globalRand は math/rand/v2 のトップレベル関数を使うデフォルト実装なのだ。
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// DefaultRandom はゴルーチンセーフなデフォルトの乱数源を返します。
func DefaultRandom() RandomSource { return globalRand{} }

// Selector はカタログからシナリオを無作為に選ぶコンポーネントです。
type Selector struct {
	catalog *Catalog
	rnd     RandomSource
}

// NewSelector は Selector を生成します。nil を渡した場合はデフォルトを使うのだ。
func NewSelector(c *Catalog, rnd RandomSource) *Selector {
	if c == nil {
		c = Default()
	}
	if rnd == nil {
		rnd = DefaultRandom()
	}
	return &Selector{catalog: c, rnd: rnd}
}

// Sample はカテゴリ、トピック、リアクションの順に一様に選んでシナリオを作るのだ。
func (s *Selector) Sample() domain.Scenario {
	cat := s.catalog.categories[s.rnd.IntN(len(s.catalog.categories))]
	topic := cat.Topics[s.rnd.IntN(len(cat.Topics))]
	return domain.Scenario{
		Reaction: s.Reaction(),
		Topic:    topic,
		Category: cat.Name,
	}
}

// Reaction はリアクション動詞を1つ選びます。
func (s *Selector) Reaction() string {
	return s.catalog.reactions[s.rnd.IntN(len(s.catalog.reactions))]
}
