package asset

import (
	"context"
	"io"
	"time"
)

// InputReader はローカルや GCS のファイルを開くための抽象です。remoteio.InputReader が満たすのだ。
type InputReader interface {
	Open(ctx context.Context, uri string) (io.ReadCloser, error)
}

// HTTPClient は URL からデータを取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// ImageCacher はダウンロード済み画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}
