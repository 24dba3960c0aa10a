package builder

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// localFS は GCS が使えない環境向けのローカルファイル専用 reader/writer なのだ。
type localFS struct{}

func (localFS) Open(_ context.Context, uri string) (io.ReadCloser, error) {
	if strings.HasPrefix(uri, "gs://") {
		return nil, fmt.Errorf("GCSが利用できないため %s を開けません", uri)
	}
	return os.Open(uri)
}

func (localFS) Write(_ context.Context, path string, content io.Reader, _ string) error {
	if strings.HasPrefix(path, "gs://") {
		return fmt.Errorf("GCSが利用できないため %s に書き込めません", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
