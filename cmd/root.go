package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shouni/go-meme-kit/internal/config"
)

const appName = "meme-kit"

// globalOptions は全コマンド共通のフラグなのだ。
type globalOptions struct {
	TextModel   string
	EditModel   string
	ImageModel  string
	HTTPTimeout time.Duration
	Verbose     bool
}

var gopts globalOptions

var rootCmd = &cobra.Command{
	Use:           appName,
	Short:         "AIでキャラクターのミーム画像とキャプションを生成します。",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&gopts.TextModel, "model", "", "テキスト生成と検索に使う Gemini モデル名です。")
	rootCmd.PersistentFlags().StringVar(&gopts.EditModel, "edit-model", "", "参照画像の編集に使うモデル名です。")
	rootCmd.PersistentFlags().StringVar(&gopts.ImageModel, "image-model", "", "画像生成に使う Imagen モデル名です。")
	rootCmd.PersistentFlags().DurationVar(&gopts.HTTPTimeout, "http-timeout", 0, "HTTPリクエストのタイムアウトです。")
	rootCmd.PersistentFlags().BoolVarP(&gopts.Verbose, "verbose", "v", false, "デバッグログを出力します。")

	rootCmd.AddCommand(generateCmd, serveCmd, catalogCmd)
}

// loadConfig は環境変数の設定に CLI フラグを上書きして返すのだ。
func loadConfig() *config.Config {
	cfg := config.LoadConfig()
	if gopts.TextModel != "" {
		cfg.TextModel = gopts.TextModel
	}
	if gopts.EditModel != "" {
		cfg.EditModel = gopts.EditModel
	}
	if gopts.ImageModel != "" {
		cfg.ImageModel = gopts.ImageModel
	}
	if gopts.HTTPTimeout > 0 {
		cfg.HTTPTimeout = gopts.HTTPTimeout
	}
	return cfg
}

// requireCredentials は Gemini を呼び出すコマンドの実行前チェックなのだ。
func requireCredentials(cmd *cobra.Command, args []string) error {
	if !loadConfig().HasCredentials() {
		return fmt.Errorf("エラー: 環境変数 GEMINI_API_KEY (または Vertex AI 用の PROJECT_ID) が設定されていません")
	}
	return nil
}

func setupLogger() {
	level := slog.LevelInfo
	if gopts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// Execute は main.go から呼び出されるエントリーポイントなのだ。
func Execute() {
	// .env が無いのは正常なので無視するのだ
	_ = godotenv.Load()

	cobra.OnInitialize(setupLogger)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
