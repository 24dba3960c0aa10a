package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shouni/go-meme-kit/internal/builder"
	"github.com/shouni/go-meme-kit/internal/config"
	"github.com/shouni/go-meme-kit/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

// serveCmd は HTTP API サーバーを起動するのだ。
var serveCmd = &cobra.Command{
	Use:     "serve",
	Short:   "ミーム生成の HTTP API を起動します。",
	PreRunE: requireCredentials,
	RunE:    serveCommand,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "待ち受けアドレスです (デフォルトは LISTEN_ADDR)。")
}

func serveCommand(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	if serveAddr != "" {
		cfg.ListenAddr = serveAddr
	}

	app, err := builder.BuildAppContext(ctx, cfg)
	if err != nil {
		return fmt.Errorf("アプリケーションの初期化に失敗しました: %w", err)
	}

	handler := server.NewMemeHandler(app.Generator, app.Loader, app.Catalog, config.DefaultMaxBodyBytes)
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           server.SetupRouter(handler, cfg.GinMode),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTPサーバーを起動しました", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("HTTPサーバーを停止します")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
