package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nanitex-official/chatbot/internal/config"
	"github.com/spf13/cobra"
	"github.com/nanitex-official/chatbot/internal/server"
	"github.com/nanitex-official/chatbot/internal/webhook"
)

var serveStub bool

func init() {
	serveCmd.Flags().BoolVar(&serveStub, "stub", false, "echo messages locally instead of calling the webhook")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat gateway HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging, os.Stdout)

	hook, err := buildWebhook(cfg, serveStub, logger)
	if err != nil {
		return err
	}

	srv := server.NewServer(hook, logger)

	addr := net.JoinHostPort(cfg.Server.Host, fmt.Sprintf("%d", cfg.Server.Port))
	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", addr, "stub", serveStub)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down gracefully")
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
	}

	logger.Info("server stopped")
	return nil
}

// buildWebhook picks the webhook client for the gateway. The webhook
// address is required unless stub is set.
func buildWebhook(cfg *config.Config, stub bool, logger *slog.Logger) (webhook.Client, error) {
	if stub {
		return &webhook.StubClient{Logger: logger}, nil
	}
	if err := cfg.RequireWebhook(); err != nil {
		return nil, err
	}

	var opts []webhook.Option
	if cfg.Webhook.Timeout > 0 {
		opts = append(opts, webhook.WithTimeout(cfg.Webhook.Timeout))
	}
	client, err := webhook.NewHTTPClient(cfg.Webhook.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating webhook client: %w", err)
	}
	return client, nil
}
