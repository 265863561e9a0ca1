package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"emailform/config"
	"emailform/internal/app"
	"emailform/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		envFile string
		backend string
		port    string
	)

	cmd := &cobra.Command{
		Use:           "emailform",
		Short:         "Serve the email signup form",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(envFile)
			if backend != "" {
				cfg.StoreBackend = backend
			}
			if port != "" {
				cfg.AppPort = port
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env)")
	cmd.Flags().StringVar(&backend, "backend", "", "storage backend: file, postgres or redis (env STORE_BACKEND)")
	cmd.Flags().StringVar(&port, "port", "", "HTTP port (env APP_PORT)")

	return cmd
}

func serve(cfg *config.Config) error {
	log := logger.New(cfg.Environment, cfg.LogLevel)
	defer log.Sync()

	for _, w := range cfg.Warnings {
		log.Warn(w)
	}
	log.Info("configuration loaded",
		zap.String("environment", cfg.Environment),
		zap.String("port", cfg.AppPort),
		zap.String("app_url", cfg.AppURL),
		zap.String("backend", cfg.StoreBackend),
	)

	application, err := app.New(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", zap.Error(err))
		return err
	}
	defer application.Close()

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           application.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server started", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
