package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shouni/go-meme-kit/internal/builder"
	"github.com/shouni/go-meme-kit/internal/config"
	"github.com/shouni/go-meme-kit/pkg/domain"
	"github.com/shouni/go-meme-kit/pkg/publish"
)

type generateOptions struct {
	Character string
	Image     string
	Style     string
	Realtime  bool
	OutputDir string
	Name      string
}

var genOpts generateOptions

// generateCmd はミームを1つ生成して保存するのだ。
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "キャラクターの説明からミーム画像とキャプションを生成します。",
	Long: `キャラクターの説明と任意の参照画像からミームを生成するのだ。
参照画像を指定すると single-image に固定され、リアルタイムトレンドは使われないのだよ。`,
	PreRunE: requireCredentials,
	RunE:    generateCommand,
}

func init() {
	generateCmd.Flags().StringVarP(&genOpts.Character, "character", "c", "", "ミームにするキャラクターの説明です。")
	generateCmd.Flags().StringVarP(&genOpts.Image, "image", "i", "", "参照画像 (ローカルパス, gs://, http(s)://, data URI) です。")
	generateCmd.Flags().StringVarP(&genOpts.Style, "style", "s", string(domain.StyleSingleImage), "出力スタイル (single-image, webtoon, contrast) です。")
	generateCmd.Flags().BoolVarP(&genOpts.Realtime, "realtime", "r", false, "リアルタイムのトレンドをシナリオに使います。")
	generateCmd.Flags().StringVarP(&genOpts.OutputDir, "output", "o", config.DefaultOutputDir, "保存先ディレクトリ (ローカル or gs://...) です。")
	generateCmd.Flags().StringVarP(&genOpts.Name, "name", "n", publish.DefaultBaseName, "保存ファイルのベース名です。")
}

func generateCommand(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := loadConfig()

	style, err := domain.ParseOutputStyle(genOpts.Style)
	if err != nil {
		return err
	}

	app, err := builder.BuildAppContext(ctx, cfg)
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗しました: %w", err)
	}

	ref, err := app.Loader.Load(ctx, genOpts.Image)
	if err != nil {
		return err
	}

	req := domain.MemeRequest{
		Character:      genOpts.Character,
		ReferenceImage: ref,
		Style:          style,
		UseRealtime:    genOpts.Realtime,
	}
	if err := req.Validate(); err != nil {
		return err
	}

	slog.InfoContext(ctx, "ミーム生成を開始します",
		"style", req.Normalize().Style,
		"realtime", req.Normalize().UseRealtime,
		"reference_image", ref != nil,
		"image_model", cfg.ImageModel)

	res, err := app.Generator.Generate(ctx, req)
	if err != nil {
		return err
	}

	out, err := app.Publisher.Publish(ctx, genOpts.OutputDir, genOpts.Name, res)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Caption: %s\n", res.Caption)
	fmt.Fprintf(w, "Scenario: %s\n", res.Scenario)
	fmt.Fprintf(w, "Image: %s\n", out.ImagePath)
	for _, s := range res.Sources {
		fmt.Fprintf(w, "Source: %s (%s)\n", s.Title, s.URI)
	}
	return nil
}
