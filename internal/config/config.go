package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義なのだ
const (
	DefaultTextModel     = "gemini-2.5-flash"
	DefaultEditModel     = "gemini-2.5-flash-image"
	DefaultImageModel    = "imagen-4.0-generate-001"
	DefaultHTTPTimeout   = 60 * time.Second
	DefaultMaxRetries    = 2
	DefaultListenAddr    = ":8080"
	DefaultOutputDir     = "output"
	DefaultCacheTTL      = 30 * time.Minute
	DefaultCacheCleanup  = 10 * time.Minute
	DefaultMaxImageBytes = 4 << 20
	DefaultMaxBodyBytes  = 10 << 20
	DefaultTemperature   = float32(0.9)
)

// Config はアプリケーション全体の環境設定（APIキーやモデル名）を保持する構造体なのだ。
type Config struct {
	ProjectID    string
	LocationID   string
	GeminiAPIKey string

	TextModel  string
	EditModel  string
	ImageModel string

	Temperature   float32
	HTTPTimeout   time.Duration
	// MaxRetries は一時的なAPIエラーの再試行回数です。0 なら再試行しないのだ。
	MaxRetries    int
	TrendFallback bool
	CatalogFile   string
	MaxImageBytes int

	ListenAddr string
	GinMode    string
}

// LoadConfig は環境変数から設定を読み込み、構造体を返すのだ！
// 数値や真偽値として解釈できない値はデフォルトに戻します。
func LoadConfig() *Config {
	return &Config{
		ProjectID:     envutil.GetEnv("PROJECT_ID", ""),
		LocationID:    envutil.GetEnv("REGION", "us-central1"),
		GeminiAPIKey:  envutil.GetEnv("GEMINI_API_KEY", ""),
		TextModel:     envutil.GetEnv("GEMINI_MODEL", DefaultTextModel),
		EditModel:     envutil.GetEnv("GEMINI_EDIT_MODEL", DefaultEditModel),
		ImageModel:    envutil.GetEnv("IMAGEN_MODEL", DefaultImageModel),
		Temperature:   parseFloat32(envutil.GetEnv("GEMINI_TEMPERATURE", ""), DefaultTemperature),
		HTTPTimeout:   parseDuration(envutil.GetEnv("HTTP_TIMEOUT", ""), DefaultHTTPTimeout),
		MaxRetries:    parseInt(envutil.GetEnv("MAX_RETRIES", ""), DefaultMaxRetries),
		TrendFallback: parseBool(envutil.GetEnv("TREND_FALLBACK", ""), false),
		CatalogFile:   envutil.GetEnv("CATALOG_FILE", ""),
		MaxImageBytes: parseInt(envutil.GetEnv("MAX_IMAGE_BYTES", ""), DefaultMaxImageBytes),
		ListenAddr:    envutil.GetEnv("LISTEN_ADDR", DefaultListenAddr),
		GinMode:       envutil.GetEnv("GIN_MODE", "release"),
	}
}

// HasCredentials は Gemini API か Vertex AI のどちらかの認証情報があるかを返すのだ。
func (c *Config) HasCredentials() bool {
	return c.GeminiAPIKey != "" || c.ProjectID != ""
}

func parseDuration(raw string, def time.Duration) time.Duration {
	if raw = strings.TrimSpace(raw); raw == "" {
		return def
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if sec, err := strconv.Atoi(raw); err == nil && sec > 0 {
		return time.Duration(sec) * time.Second
	}
	return def
}

func parseInt(raw string, def int) int {
	if v, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
		return v
	}
	return def
}

func parseFloat32(raw string, def float32) float32 {
	if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 32); err == nil {
		return float32(v)
	}
	return def
}

func parseBool(raw string, def bool) bool {
	if v, err := strconv.ParseBool(strings.TrimSpace(raw)); err == nil {
		return v
	}
	return def
}
