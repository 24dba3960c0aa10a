package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shouni/go-meme-kit/pkg/catalog"
	"github.com/shouni/go-meme-kit/pkg/domain"
)

// ReferenceDecoder は data URI の参照画像を ReferenceImage に変換します。
type ReferenceDecoder interface {
	LoadDataURI(uri string) (*domain.ReferenceImage, error)
}

// Generator はミーム生成の窓口です。
type Generator interface {
	Generate(ctx context.Context, req domain.MemeRequest) (*domain.MemeResult, error)
}

// CreateMemeRequest は POST /api/memes のリクエストボディなのだ。
type CreateMemeRequest struct {
	Character      string `json:"character"`
	ReferenceImage string `json:"referenceImage,omitempty"`
	OutputStyle    string `json:"outputStyle,omitempty"`
	UseRealtime    bool   `json:"useRealtime,omitempty"`
}

// CatalogResponse は GET /api/catalog のレスポンスです。
type CatalogResponse struct {
	Categories []catalog.Category `json:"categories"`
	Reactions  []string           `json:"reactions"`
	Styles     []string           `json:"styles"`
}

// MemeHandler はミーム生成 API のハンドラーです。
type MemeHandler struct {
	generator    Generator
	decoder      ReferenceDecoder
	catalog      *catalog.Catalog
	maxBodyBytes int64
}

// NewMemeHandler は MemeHandler を生成するのだ。
func NewMemeHandler(gen Generator, decoder ReferenceDecoder, cat *catalog.Catalog, maxBodyBytes int64) *MemeHandler {
	return &MemeHandler{generator: gen, decoder: decoder, catalog: cat, maxBodyBytes: maxBodyBytes}
}

// Health はサービスの稼働状態を返します。
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// CreateMeme はリクエストを検証してミームを1つ生成するのだ。
func (h *MemeHandler) CreateMeme(c *gin.Context) {
	if h.maxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	}

	var body CreateMemeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Request body is too large."})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body."})
		return
	}

	req, err := h.toMemeRequest(body)
	if err != nil {
		h.respondError(c, err)
		return
	}

	res, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetCatalog はオフラインのカタログと利用可能なスタイルを返します。
func (h *MemeHandler) GetCatalog(c *gin.Context) {
	styles := make([]string, 0, len(domain.OutputStyles()))
	for _, s := range domain.OutputStyles() {
		styles = append(styles, s.String())
	}
	c.JSON(http.StatusOK, CatalogResponse{
		Categories: h.catalog.Categories(),
		Reactions:  h.catalog.Reactions(),
		Styles:     styles,
	})
}

func (h *MemeHandler) toMemeRequest(body CreateMemeRequest) (domain.MemeRequest, error) {
	style, err := domain.ParseOutputStyle(body.OutputStyle)
	if err != nil {
		return domain.MemeRequest{}, err
	}

	req := domain.MemeRequest{
		Character:   body.Character,
		Style:       style,
		UseRealtime: body.UseRealtime,
	}
	if body.ReferenceImage != "" {
		ref, err := h.decoder.LoadDataURI(body.ReferenceImage)
		if err != nil {
			return domain.MemeRequest{}, err
		}
		req.ReferenceImage = ref
	}

	if err := req.Validate(); err != nil {
		return domain.MemeRequest{}, err
	}
	return req.Normalize(), nil
}

// respondError はエラーの種類に応じたステータスでメッセージを返すのだ。
func (h *MemeHandler) respondError(c *gin.Context, err error) {
	status := StatusFor(err)
	msg := domain.MsgUnknown
	var me *domain.MemeError
	if errors.As(err, &me) {
		msg = me.Msg
	}
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "ミーム生成に失敗しました", "kind", domain.KindOf(err), "error", err, "cause", errors.Unwrap(err))
	}
	c.JSON(status, gin.H{"error": msg})
}

// StatusFor は MemeError の種類を HTTP ステータスに対応付けます。
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindRealtimeFetch:
		return http.StatusServiceUnavailable
	case domain.KindGeneration, domain.KindRemoteCall:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
