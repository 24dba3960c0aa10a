package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/shouni/go-meme-kit/pkg/domain"
	"github.com/shouni/go-meme-kit/pkg/imgutil"

	"github.com/shouni/go-utils/urlpath"
)

const (
	// DefaultBaseName は出力ファイルのデフォルトのベース名なのだ。
	DefaultBaseName = "meme"
	metadataExt     = ".json"
)

var mediaTypeExts = map[string]string{
	domain.MediaTypePNG:  ".png",
	domain.MediaTypeJPEG: ".jpg",
	domain.MediaTypeWebP: ".webp",
}

// OutputWriter は生成物をローカルや GCS に書き込むための抽象です。remoteio.OutputWriter が満たすのだ。
type OutputWriter interface {
	Write(ctx context.Context, path string, content io.Reader, contentType string) error
}

// Metadata は画像と一緒に保存するサイドカー JSON の内容です。
type Metadata struct {
	Image    string          `json:"image"`
	Caption  string          `json:"text"`
	Scenario string          `json:"scenario,omitempty"`
	Sources  []domain.Source `json:"sources,omitempty"`
}

// Output は書き込んだファイルのパスなのだ。
type Output struct {
	ImagePath    string
	MetadataPath string
}

// Publisher はミームの結果を画像ファイルとメタデータに分けて保存します。
type Publisher struct {
	writer OutputWriter
}

// NewPublisher は Publisher を生成します。
func NewPublisher(writer OutputWriter) (*Publisher, error) {
	if writer == nil {
		return nil, fmt.Errorf("writer (OutputWriter) is required")
	}
	return &Publisher{writer: writer}, nil
}

// Publish は baseDir 配下に <baseName>.<ext> と <baseName>.json を書き込むのだ。
func (p *Publisher) Publish(ctx context.Context, baseDir, baseName string, res *domain.MemeResult) (*Output, error) {
	if res == nil {
		return nil, fmt.Errorf("保存するミームがありません")
	}
	if baseName == "" {
		baseName = DefaultBaseName
	}

	mediaType, data, err := imgutil.DecodeDataURI(res.ImageURL)
	if err != nil {
		return nil, fmt.Errorf("画像データの展開に失敗しました: %w", err)
	}
	ext, ok := mediaTypeExts[mediaType]
	if !ok {
		ext = ".png"
	}

	imagePath, err := urlpath.ResolveOutputPath(baseDir, baseName+ext)
	if err != nil {
		return nil, fmt.Errorf("画像の出力パス解決に失敗しました: %w", err)
	}
	metaPath, err := urlpath.ResolveOutputPath(baseDir, baseName+metadataExt)
	if err != nil {
		return nil, fmt.Errorf("メタデータの出力パス解決に失敗しました: %w", err)
	}

	if err := p.writer.Write(ctx, imagePath, bytes.NewReader(data), mediaType); err != nil {
		return nil, fmt.Errorf("画像の保存に失敗しました (%s): %w", imagePath, err)
	}

	meta, err := json.MarshalIndent(Metadata{
		Image:    baseName + ext,
		Caption:  res.Caption,
		Scenario: res.Scenario,
		Sources:  res.Sources,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("メタデータのエンコードに失敗しました: %w", err)
	}
	if err := p.writer.Write(ctx, metaPath, bytes.NewReader(meta), "application/json; charset=utf-8"); err != nil {
		return nil, fmt.Errorf("メタデータの保存に失敗しました (%s): %w", metaPath, err)
	}

	slog.InfoContext(ctx, "ミームを保存しました", "image", imagePath, "metadata", metaPath)
	return &Output{ImagePath: imagePath, MetadataPath: metaPath}, nil
}
