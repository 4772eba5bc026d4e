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

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"trendmindAPI/internal/composer"
	"trendmindAPI/internal/store"
	"trendmindAPI/middleware"
)

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "Listen port (overrides PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if servePort != "" {
		cfg.Server.Port = servePort
	}
	if cfg.Auth.ClerkSecretKey == "" {
		return fmt.Errorf("CLERK_SECRET_KEY environment variable is not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	a, err := newApp(startCtx, cfg, logger)
	cancel()
	if err != nil {
		return err
	}
	defer a.Close()

	collectors := append([]prometheus.Collector{}, store.Collectors()...)
	collectors = append(collectors, composer.Collectors()...)
	middleware.InitPrometheus(collectors...)

	lim := newLimiters()
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      newRouter(a, lim),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: generateWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lim.standard.Cleanup(gctx)
		return nil
	})
	g.Go(func() error {
		lim.generate.Cleanup(gctx)
		return nil
	})

	g.Go(func() error {
		logger.Info("starting server",
			zap.String("addr", server.Addr),
			zap.String("store", cfg.Store.Backend),
			zap.String("llm_provider", cfg.LLM.Provider),
			zap.String("model", cfg.LLM.ModelName()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("server shutdown error", zap.Error(err))
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server shutdown complete")
	return nil
}

// generateWriteTimeout leaves room for a full model call.
const generateWriteTimeout = 40 * time.Second
