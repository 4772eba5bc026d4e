package main

import (
	"context"
	"net/http"
	_ "net/http/pprof"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"trendmindAPI/handlers"
	"trendmindAPI/middleware"
)

type limiters struct {
	standard *middleware.RateLimiter
	generate *middleware.RateLimiter
}

func newLimiters() limiters {
	return limiters{
		standard: middleware.NewRateLimiter("standard", 5, 30),
		// each generation is a paid model call
		generate: middleware.NewRateLimiter("generate", 0.2, 3).KeyBy(middleware.UserOrIP),
	}
}

func newRouter(a *app, lim limiters) http.Handler {
	postHandler := handlers.NewPostHandler(a.posts, a.users, a.logger)
	calendarHandler := handlers.NewCalendarHandler(a.calendar, a.logger)
	generateHandler := handlers.NewGenerateHandler(a.generate, a.logger)
	userHandler := handlers.NewUserHandler(a.users, a.logger)
	catalogHandler := handlers.NewCatalogHandler(a.catalog)
	webhookHandler := handlers.NewWebhookHandler(a.users, a.webhooks, a.logger)
	auth := middleware.NewAuth(a.verifyToken, a.logger)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recover(a.logger))
	r.Use(middleware.RequestLogger(a.logger))
	r.Use(middleware.MonitorMiddleware)
	r.Use(lim.standard.Middleware)

	r.Handle("/metrics", middleware.BasicAuth(a.cfg.Metrics.User, a.cfg.Metrics.Pass)(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofGuard(a.cfg.Metrics.PprofSecret)(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		w.Header().Set("Content-Type", "application/json")
		if err := a.store.Ping(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "post store unreachable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "trendmind-api"}`))
	}).Methods("GET")

	r.HandleFunc("/api/webhooks/clerk", webhookHandler.HandleClerkWebhook).Methods("POST")

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/catalog", catalogHandler.GetCatalog).Methods("GET")
	api.HandleFunc("/pricing", catalogHandler.GetPricing).Methods("GET")
	api.HandleFunc("/tools", catalogHandler.GetTools).Methods("GET")
	api.HandleFunc("/sitemap", catalogHandler.GetSitemap).Methods("GET")

	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Require)

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user", userHandler.DeleteAccount).Methods("DELETE")

	protected.HandleFunc("/dashboard", postHandler.Dashboard).Methods("GET")
	protected.HandleFunc("/posts", postHandler.ListPosts).Methods("GET")
	protected.HandleFunc("/posts", postHandler.CreatePost).Methods("POST")
	protected.HandleFunc("/calendar", calendarHandler.GetCalendar).Methods("GET")

	generate := protected.PathPrefix("/generate").Subrouter()
	generate.Use(lim.generate.Middleware)
	generate.HandleFunc("", generateHandler.Generate).Methods("POST")
	generate.HandleFunc("/save", generateHandler.GenerateAndSave).Methods("POST")

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins(a.cfg.Server.CorsAllowedOrigins),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Request-Id", "X-Pprof-Secret"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length", "X-Request-Id"}),
		gorillaHandlers.AllowCredentials(),
	)

	return corsHandler(r)
}
