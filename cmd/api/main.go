package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spacesedan/commentlens/config"
	"github.com/spacesedan/commentlens/internal/analysis"
	"github.com/spacesedan/commentlens/internal/clients"
	"github.com/spacesedan/commentlens/internal/logging"
	"github.com/spacesedan/commentlens/internal/monitoring"
	"github.com/spacesedan/commentlens/internal/sentiment"
	"github.com/spacesedan/commentlens/internal/server"
	"github.com/spacesedan/commentlens/internal/server/handlers"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	logging.InitLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	classifier, analyzerHealthy := buildClassifier(ctx)
	analyzer := analysis.NewAnalyzer(classifier, analysis.NewHeuristicTokenCounter())
	analyzeHandler := handlers.NewAnalyzeHandler(analyzer, clients.GetYouTubeClient(), clients.GetRedditClient())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	srv := server.NewServer(":"+port, analyzeHandler, analyzerHealthy)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("[Main] Server listening", slog.String("port", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("[Main] Server failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	<-shutdown
	slog.Info("[Main] Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("[Main] Graceful shutdown failed", slog.String("error", err.Error()))
	}
}

// buildClassifier picks the sentiment backend. The remote service gets a
// health monitor feeding the status route; the local backends need none.
func buildClassifier(ctx context.Context) (analysis.Classifier, *atomic.Bool) {
	switch os.Getenv("CLASSIFIER_BACKEND") {
	case "huggingface":
		healthy := &atomic.Bool{}
		healthy.Store(true)
		go monitoring.MonitorAnalyzerHealth(ctx, healthy)
		return clients.GetHuggingFaceClient(), healthy
	case "openai":
		return clients.GetOpenAIClient(), nil
	default:
		slog.Info("[Main] Using in-process VADER classifier")
		return sentiment.NewVADERClassifier(), nil
	}
}
