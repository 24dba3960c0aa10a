package trends

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-meme-kit/pkg/domain"
)

// TrendingInstruction は検索グラウンディングに投げる固定の指示文なのだ。
const TrendingInstruction = "Tell me about one recent, funny, or weird trending topic or viral internet event that would make a great meme. Be specific and concise."

// GroundedSearcher は検索付きテキスト生成の能力です。
type GroundedSearcher interface {
	GenerateGrounded(ctx context.Context, instruction string) (*domain.GroundedResponse, error)
}

// Trend はリアルタイム検索で得たトピックと引用元です。
type Trend struct {
	Topic   string
	Sources []domain.Source
}

// Fetcher はリアルタイムのトレンドトピックを取得するコンポーネントです。
type Fetcher struct {
	searcher GroundedSearcher
}

// NewFetcher は Fetcher を生成します。
func NewFetcher(searcher GroundedSearcher) (*Fetcher, error) {
	if searcher == nil {
		return nil, fmt.Errorf("searcher (GroundedSearcher) is required")
	}
	return &Fetcher{searcher: searcher}, nil
}

// FetchTrending は1回の検索付き生成でトピックを1つ取得するのだ。
// 呼び出しの失敗、またはトピックが空の場合は RealtimeFetch エラーを返すのだ。
func (f *Fetcher) FetchTrending(ctx context.Context) (*Trend, error) {
	resp, err := f.searcher.GenerateGrounded(ctx, TrendingInstruction)
	if err != nil {
		slog.WarnContext(ctx, "トレンドの取得に失敗しました", "error", err)
		return nil, domain.NewRealtimeFetchError(err)
	}

	topic := ""
	var chunks []domain.GroundingChunk
	if resp != nil {
		topic = strings.TrimSpace(resp.Text)
		chunks = resp.Chunks
	}
	if topic == "" {
		slog.WarnContext(ctx, "トレンドのトピックが空でした")
		return nil, domain.NewRealtimeFetchError(errors.New(domain.MsgNoTrendingTopic))
	}

	sources := NormalizeSources(chunks)
	slog.InfoContext(ctx, "トレンドを取得しました", "topic", topic, "sources", len(sources))
	return &Trend{Topic: topic, Sources: sources}, nil
}

// NormalizeSources はチャンクを Source に変換し、URI かタイトルが欠けたものを捨てるのだ。
// 残ったチャンクの順序は維持します。
func NormalizeSources(chunks []domain.GroundingChunk) []domain.Source {
	sources := make([]domain.Source, 0, len(chunks))
	for _, c := range chunks {
		if c.Web == nil || c.Web.URI == "" || c.Web.Title == "" {
			continue
		}
		sources = append(sources, domain.Source{URI: c.Web.URI, Title: c.Web.Title})
	}
	return sources
}
