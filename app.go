package main

import (
	"context"
	"fmt"

	"github.com/clerk/clerk-sdk-go/v2"
	"go.uber.org/zap"

	"trendmindAPI/internal/composer"
	"trendmindAPI/internal/config"
	"trendmindAPI/internal/db"
	"trendmindAPI/internal/identity"
	"trendmindAPI/internal/store"
	"trendmindAPI/middleware"
	"trendmindAPI/services"
)

// app holds the wired services shared by the server and the CLI commands.
type app struct {
	cfg    *config.Config
	logger *zap.Logger

	store    store.PostStore
	composer *composer.Composer

	posts    *services.PostService
	calendar *services.CalendarService
	generate *services.GenerateService
	users    *services.UserService
	catalog  *services.CatalogService

	webhooks    *identity.WebhookVerifier
	verifyToken middleware.TokenVerifier
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	gen, err := newGenerator(ctx, cfg)
	if err != nil {
		st.Close()
		return nil, err
	}

	catalogService, err := services.NewCatalogService()
	if err != nil {
		st.Close()
		return nil, err
	}

	webhooks, err := identity.NewWebhookVerifier(cfg.Auth.ClerkWebhookSecret)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("invalid CLERK_WEBHOOK_SECRET: %w", err)
	}
	if !webhooks.Enabled() {
		logger.Warn("CLERK_WEBHOOK_SECRET not set, webhook signatures are not verified")
	}

	clerk.SetKey(cfg.Auth.ClerkSecretKey)
	provider := identity.NewClerkProvider(cfg.Auth.ClerkSecretKey, "")

	comp := composer.New(gen, cfg.LLM.ModelName(), logger)
	posts := services.NewPostService(st, logger)

	return &app{
		cfg:         cfg,
		logger:      logger,
		store:       st,
		composer:    comp,
		posts:       posts,
		calendar:    services.NewCalendarService(st, logger),
		generate:    services.NewGenerateService(comp, posts, logger),
		users:       services.NewUserService(provider, posts, logger),
		catalog:     catalogService,
		webhooks:    webhooks,
		verifyToken: middleware.ClerkVerifier,
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.PostStore, error) {
	switch cfg.Store.Backend {
	case config.BackendPostgres:
		pool, err := db.Open(ctx, db.PoolConfig{
			URL:      cfg.Store.DatabaseURL,
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("post store ready", zap.String("backend", "postgres"))
		return store.NewPostgresStore(pool, logger), nil

	case config.BackendMemory:
		logger.Warn("using in-memory post store, posts are lost on restart")
		return store.NewMemoryStore(logger), nil

	default:
		client, err := store.OpenRedis(ctx, cfg.Store.RedisURL)
		if err != nil {
			return nil, err
		}
		logger.Info("post store ready", zap.String("backend", "redis"))
		return store.NewRedisStore(client, logger), nil
	}
}

func newGenerator(ctx context.Context, cfg *config.Config) (composer.Generator, error) {
	if cfg.LLM.Provider == config.ProviderGemini {
		return composer.NewGemini(ctx, cfg.LLM.GeminiAPIKey)
	}
	return composer.NewGroq(cfg.LLM.GroqAPIKey, cfg.LLM.GroqBaseURL), nil
}
