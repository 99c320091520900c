package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"reddit-search-mcp/internal/app"
)

const shutdownTimeout = 10 * time.Second

var serveCMD = &cobra.Command{
	Use:   "serve",
	Short: "Serve the REST API and MCP over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log, err := newLogger(cfg, false)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		if cfg.APIKey == "" {
			log.Warn("no API key configured, searches will fail with an authentication error")
		}

		application, err := app.Initialize(cfg, log)
		if err != nil {
			return fmt.Errorf("failed to initialize application: %w", err)
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- application.Start()
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			return nil
		case sig := <-quit:
			log.Info("shutting down server", zap.String("signal", sig.String()))
		}

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := application.Shutdown(ctx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		log.Info("server stopped")
		return nil
	},
}

func init() {
	rootCMD.AddCommand(serveCMD)
}
