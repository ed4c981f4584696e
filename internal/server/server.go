package server

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/spacesedan/commentlens/internal/server/handlers"
)

// Server is the HTTP surface of the analyzer: two analysis endpoints sharing
// one response shape, plus a status route.
type Server struct {
	server *http.Server
	router *chi.Mux
}

func NewServer(addr string, analyzeHandler *handlers.AnalyzeHandler, analyzerHealthy *atomic.Bool) *Server {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	// Model inference dominates request time, so the budget is generous.
	router.Use(middleware.Timeout(2 * time.Minute))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/", statusHandler(analyzerHealthy))
	router.Get("/analyze", analyzeHandler.AnalyzeYouTube)
	router.Get("/analyze_reddit_post", analyzeHandler.AnalyzeRedditPost)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute,
	}

	return &Server{
		server: httpServer,
		router: router,
	}
}

func statusHandler(analyzerHealthy *atomic.Bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		body := `{"status":"Unified Comment Analyzer is running."}`
		if analyzerHealthy != nil && !analyzerHealthy.Load() {
			body = `{"status":"Unified Comment Analyzer is running.","classifier":"unhealthy"}`
		}
		w.Write([]byte(body))
	}
}

// ListenAndServe starts the HTTP server
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
