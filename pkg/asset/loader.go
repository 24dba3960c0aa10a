package asset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shouni/go-meme-kit/pkg/domain"
	"github.com/shouni/go-meme-kit/pkg/imgutil"
)

const (
	// DefaultMaxImageBytes を超える参照画像は JPEG に再圧縮するのだ。
	DefaultMaxImageBytes = 4 << 20
	// DefaultCacheTTL はダウンロードした参照画像のキャッシュ期間です。
	DefaultCacheTTL = 30 * time.Minute
	// maxReadBytes は読み込みを打ち切る上限なのだ。
	maxReadBytes = 20 << 20
)

// ErrImageTooLarge は参照画像が読み込み上限を超えたことを表すのだ。
var ErrImageTooLarge = fmt.Errorf("参照画像が大きすぎます (上限 %d MiB)", maxReadBytes>>20)

// Loader は参照画像を data URI、http(s) URL、gs:// URI、ローカルパスから読み込みます。
type Loader struct {
	reader     InputReader
	httpClient HTTPClient
	cache      ImageCacher
	cacheTTL   time.Duration
	maxBytes   int
	validate   func(rawURL string) (bool, error)
}

// NewLoader は依存関係を注入して Loader を初期化します。cache は nil を許容するのだ。
func NewLoader(reader InputReader, httpClient HTTPClient, cache ImageCacher, cacheTTL time.Duration, maxBytes int) (*Loader, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}
	return &Loader{
		reader:     reader,
		httpClient: httpClient,
		cache:      cache,
		cacheTTL:   cacheTTL,
		maxBytes:   maxBytes,
		validate:   IsSafeURL,
	}, nil
}

// Load は参照を解決して ReferenceImage を返すのだ。ref が空なら nil を返します。
// 許可リスト外のメディアタイプは Validation エラーになるのだ。
func (l *Loader) Load(ctx context.Context, ref string) (*domain.ReferenceImage, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}

	if imgutil.IsDataURI(ref) {
		return l.LoadDataURI(ref)
	}

	data, err := l.fetch(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("参照画像の取得に失敗しました (%s): %w", ref, err)
	}
	return l.toReference(data)
}

// LoadDataURI は data URI のみを受け付けて ReferenceImage を返します。
// 宣言されたメディアタイプを検証してから中身を確認するのだ。
func (l *Loader) LoadDataURI(uri string) (*domain.ReferenceImage, error) {
	declared, data, err := imgutil.DecodeDataURI(uri)
	if err != nil {
		return nil, &domain.MemeError{Kind: domain.KindValidation, Msg: domain.MsgInvalidMediaType, Err: err}
	}
	if !domain.IsAllowedMediaType(declared) {
		return nil, domain.NewValidationError(domain.MsgInvalidMediaType)
	}
	return l.toReference(data)
}

func (l *Loader) toReference(data []byte) (*domain.ReferenceImage, error) {
	mediaType, err := imgutil.DetectMediaType(data)
	if err != nil || !domain.IsAllowedMediaType(mediaType) {
		return nil, &domain.MemeError{Kind: domain.KindValidation, Msg: domain.MsgInvalidMediaType, Err: err}
	}

	fitted, fittedType, err := imgutil.FitWithin(data, l.maxBytes, imgutil.DefaultJPEGQuality)
	if err != nil {
		return nil, fmt.Errorf("参照画像の再圧縮に失敗しました: %w", err)
	}
	return &domain.ReferenceImage{MediaType: fittedType, Data: fitted}, nil
}

func (l *Loader) fetch(ctx context.Context, ref string) ([]byte, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return l.fetchURL(ctx, ref)
	}

	rc, err := l.reader.Open(ctx, ref)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxReadBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxReadBytes {
		return nil, ErrImageTooLarge
	}
	return data, nil
}

// fetchURL はキャッシュを確認し、SSRF 検証の後にダウンロードしてキャッシュへ保存するのだ。
func (l *Loader) fetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	if l.cache != nil {
		if cached, found := l.cache.Get(rawURL); found {
			if data, ok := cached.([]byte); ok {
				return data, nil
			}
			slog.WarnContext(ctx, "キャッシュデータが不正な型です", "url", rawURL, "type", fmt.Sprintf("%T", cached))
		}
	}

	safe, err := l.validate(rawURL)
	if err != nil {
		slog.WarnContext(ctx, "不正なURLをブロックしました", "url", rawURL, "error", err)
		return nil, fmt.Errorf("URLの検証に失敗しました: %w", err)
	}
	if !safe {
		slog.WarnContext(ctx, "SSRFの可能性があるURLをブロックしました", "url", rawURL)
		return nil, fmt.Errorf("安全ではないURLが指定されました: %s", rawURL)
	}

	data, err := l.httpClient.FetchBytes(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if len(data) > maxReadBytes {
		return nil, ErrImageTooLarge
	}

	if l.cache != nil {
		l.cache.Set(rawURL, data, l.cacheTTL)
	}
	return data, nil
}
