package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"align-coach-backend/internal/ai"
	"align-coach-backend/internal/analytics"
	"align-coach-backend/internal/config"
	"align-coach-backend/internal/db"
	"align-coach-backend/internal/httpserver"
	"align-coach-backend/internal/insight"
	"align-coach-backend/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config load error: %v", err)
	}

	ctx := context.Background()

	// ----------------------
	//   AI PROVIDERS
	// ----------------------

	gemini, err := ai.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("❌ gemini init error: %v", err)
	}
	defer gemini.Close()

	engines := &ai.Engines{
		Gemini: gemini,
		OpenAI: ai.NewOpenAI(cfg.OpenAIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL),
	}
	gen, err := engines.Get(cfg.AIProvider)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if cfg.GeminiAPIKey == "" && gen.Name() == "gemini" {
		log.Println("⚠️  GEMINI_API_KEY is empty, every insight request will fail")
	}

	// ----------------------
	//   ANALYTICS (optional)
	// ----------------------

	var events analytics.Sink = analytics.Nop{}
	checkers := map[string]middleware.HealthChecker{}

	if cfg.AnalyticsEnabled() {
		database, err := connectAnalytics(ctx, cfg)
		if err != nil {
			log.Fatalf("❌ Failed to connect DB: %v", err)
		}
		defer database.Close()

		events = analytics.NewDBSink(database)
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: database}
		log.Println("✅ Connected to PostgreSQL, analytics enabled")
	}

	// ----------------------
	//   HTTP
	// ----------------------

	h := insight.New(gen, events, cfg.UserName, cfg.MaxBodyBytes)

	// No WriteTimeout: the upstream call has no deadline other than the client's.
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           httpserver.NewRouter(h, checkers),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 API server is running on %s (provider=%s)", srv.Addr, gen.Name())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func connectAnalytics(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	database, err := db.Connect(ctx, cfg.ConnString())
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(ctx, database); err != nil {
		_ = database.Close()
		return nil, err
	}
	return database, nil
}
