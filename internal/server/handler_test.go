package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shouni/go-meme-kit/pkg/catalog"
	"github.com/shouni/go-meme-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	generateFunc func(ctx context.Context, req domain.MemeRequest) (*domain.MemeResult, error)
	lastReq      domain.MemeRequest
	calls        int
}

func (m *mockGenerator) Generate(ctx context.Context, req domain.MemeRequest) (*domain.MemeResult, error) {
	m.calls++
	m.lastReq = req
	return m.generateFunc(ctx, req)
}

type mockDecoder struct {
	ref *domain.ReferenceImage
	err error
}

func (m *mockDecoder) LoadDataURI(uri string) (*domain.ReferenceImage, error) {
	return m.ref, m.err
}

func newTestServer(gen *mockGenerator, dec *mockDecoder) http.Handler {
	h := NewMemeHandler(gen, dec, catalog.Default(), 1<<10)
	return SetupRouter(h, "test")
}

func postMeme(t *testing.T, srv http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/memes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&mockGenerator{}, &mockDecoder{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestCreateMeme(t *testing.T) {
	okResult := &domain.MemeResult{
		ImageURL: "data:image/png;base64,AAAA",
		Caption:  "Monday again.",
		Sources:  []domain.Source{{URI: "https://news.example", Title: "News"}},
	}

	t.Run("成功時は imageUrl, text, sources を返すのだ", func(t *testing.T) {
		gen := &mockGenerator{generateFunc: func(ctx context.Context, req domain.MemeRequest) (*domain.MemeResult, error) {
			return okResult, nil
		}}
		rec := postMeme(t, newTestServer(gen, &mockDecoder{}), `{"character":"a cat","outputStyle":"webtoon","useRealtime":true}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, okResult.ImageURL, body["imageUrl"])
		assert.Equal(t, okResult.Caption, body["text"])
		assert.Len(t, body["sources"], 1)
		assert.Equal(t, domain.StyleWebtoon, gen.lastReq.Style)
		assert.True(t, gen.lastReq.UseRealtime)
	})

	t.Run("参照画像があればスタイルとリアルタイムを強制するのだ", func(t *testing.T) {
		gen := &mockGenerator{generateFunc: func(ctx context.Context, req domain.MemeRequest) (*domain.MemeResult, error) {
			return okResult, nil
		}}
		dec := &mockDecoder{ref: &domain.ReferenceImage{MediaType: domain.MediaTypePNG, Data: []byte{1}}}
		rec := postMeme(t, newTestServer(gen, dec), `{"character":"a cat","referenceImage":"data:image/png;base64,AQ==","outputStyle":"contrast","useRealtime":true}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, domain.StyleSingleImage, gen.lastReq.Style)
		assert.False(t, gen.lastReq.UseRealtime)
		assert.NotNil(t, gen.lastReq.ReferenceImage)
	})

	t.Run("空のキャラクターは400で生成を呼ばないのだ", func(t *testing.T) {
		gen := &mockGenerator{}
		rec := postMeme(t, newTestServer(gen, &mockDecoder{}), `{"character":"  "}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domain.MsgBlankCharacter, decodeBody(t, rec)["error"])
		assert.Equal(t, 0, gen.calls)
	})

	t.Run("不正な参照画像は400なのだ", func(t *testing.T) {
		gen := &mockGenerator{}
		dec := &mockDecoder{err: domain.NewValidationError(domain.MsgInvalidMediaType)}
		rec := postMeme(t, newTestServer(gen, dec), `{"character":"a cat","referenceImage":"data:image/gif;base64,AQ=="}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, domain.MsgInvalidMediaType, decodeBody(t, rec)["error"])
	})

	t.Run("壊れたJSONは400なのだ", func(t *testing.T) {
		rec := postMeme(t, newTestServer(&mockGenerator{}, &mockDecoder{}), `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("大きすぎるボディは413なのだ", func(t *testing.T) {
		big := `{"character":"` + strings.Repeat("a", 2<<10) + `"}`
		rec := postMeme(t, newTestServer(&mockGenerator{}, &mockDecoder{}), big)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("エラーの種類に応じたステータスとメッセージを返すのだ", func(t *testing.T) {
		tests := []struct {
			err    error
			status int
			msg    string
		}{
			{domain.NewRealtimeFetchError(errors.New("down")), http.StatusServiceUnavailable, domain.MsgRealtimeFetchFailed},
			{domain.NewGenerationError(domain.MsgNoGeneratedImage), http.StatusBadGateway, domain.FailurePrefix + domain.MsgNoGeneratedImage},
			{domain.NewRemoteCallError(errors.New("quota")), http.StatusBadGateway, "Failed to generate meme: quota"},
			{domain.NewUnknownError(errors.New("?")), http.StatusInternalServerError, domain.MsgUnknown},
			{errors.New("raw"), http.StatusInternalServerError, domain.MsgUnknown},
		}
		for _, tt := range tests {
			gen := &mockGenerator{generateFunc: func(ctx context.Context, req domain.MemeRequest) (*domain.MemeResult, error) {
				return nil, tt.err
			}}
			rec := postMeme(t, newTestServer(gen, &mockDecoder{}), `{"character":"a cat"}`)
			assert.Equal(t, tt.status, rec.Code, tt.msg)
			assert.Equal(t, tt.msg, decodeBody(t, rec)["error"])
		}
	})
}

func TestGetCatalog(t *testing.T) {
	srv := newTestServer(&mockGenerator{}, &mockDecoder{})
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/catalog", bytes.NewReader(nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CatalogResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Categories, 5)
	assert.Len(t, resp.Reactions, 8)
	assert.Equal(t, []string{"single-image", "webtoon", "contrast"}, resp.Styles)
}
