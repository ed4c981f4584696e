package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spacesedan/commentlens/internal/analysis"
	"github.com/spacesedan/commentlens/internal/clients"
	"github.com/spacesedan/commentlens/internal/models"
)

// Analyzer runs the analysis pipeline for one fetched comment tree.
type Analyzer interface {
	Analyze(ctx context.Context, comments []models.Comment, platform models.Platform) (models.AnalysisResult, error)
}

// YouTubeSource and RedditSource are the platform comment fetchers.
type YouTubeSource interface {
	FetchVideoComments(ctx context.Context, videoID string) ([]models.Comment, error)
}

type RedditSource interface {
	FetchPostComments(ctx context.Context, postID string) ([]models.Comment, error)
}

type AnalyzeHandler struct {
	analyzer Analyzer
	youtube  YouTubeSource
	reddit   RedditSource
}

func NewAnalyzeHandler(analyzer Analyzer, youtube YouTubeSource, reddit RedditSource) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer: analyzer,
		youtube:  youtube,
		reddit:   reddit,
	}
}

// AnalyzeYouTube handles GET /analyze?video_url=...
func (h *AnalyzeHandler) AnalyzeYouTube(w http.ResponseWriter, r *http.Request) {
	videoURL := r.URL.Query().Get("video_url")
	videoID := clients.ExtractVideoID(videoURL)
	if videoID == "" {
		writeJSON(w, http.StatusOK, analysis.EmptyResult("Invalid video URL"))
		return
	}

	comments, err := h.youtube.FetchVideoComments(r.Context(), videoID)
	if err != nil {
		slog.Error("[AnalyzeHandler] YouTube fetch failed",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), comments, models.PlatformYouTube)
	if err != nil {
		slog.Error("[AnalyzeHandler] YouTube analysis failed",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// AnalyzeRedditPost handles GET /analyze_reddit_post?url=...
func (h *AnalyzeHandler) AnalyzeRedditPost(w http.ResponseWriter, r *http.Request) {
	for _, key := range []string{"REDDIT_CLIENT_ID", "REDDIT_CLIENT_SECRET", "REDDIT_USER_AGENT"} {
		if os.Getenv(key) == "" {
			writeError(w, http.StatusInternalServerError, fmt.Sprintf("Missing %s in .env", key))
			return
		}
	}

	postID := clients.ExtractPostID(r.URL.Query().Get("url"))
	if postID == "" {
		writeJSON(w, http.StatusOK, analysis.EmptyResult("Invalid Reddit URL or post ID not found."))
		return
	}

	comments, err := h.reddit.FetchPostComments(r.Context(), postID)
	if err != nil {
		slog.Error("[AnalyzeHandler] Reddit fetch failed",
			slog.String("post_id", postID),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), comments, models.PlatformReddit)
	if err != nil {
		slog.Error("[AnalyzeHandler] Reddit analysis failed",
			slog.String("post_id", postID),
			slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("[AnalyzeHandler] Failed to encode response",
			slog.String("error", err.Error()))
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
