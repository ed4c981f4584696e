package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/spacesedan/commentlens/internal/models"
)

const YOUTUBE_API_URL = "https://www.googleapis.com/youtube/v3/commentThreads"

var (
	youtubeClientInstance *YouTubeClient
	youtubeClientOnce     sync.Once
	videoIDPattern        = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[?&/]|$)`)
)

// YouTubeClient fetches comment threads through the Data API v3 with an API
// key.
type YouTubeClient struct {
	Client *http.Client
	apiKey string
}

func GetYouTubeClient() *YouTubeClient {
	youtubeClientOnce.Do(func() {
		youtubeClientInstance = &YouTubeClient{
			Client: &http.Client{
				Timeout: 30 * time.Second,
			},
			apiKey: os.Getenv("YOUTUBE_API_KEY"),
		}
	})
	return youtubeClientInstance
}

// ExtractVideoID pulls the 11-character video id out of a YouTube URL.
// Supports normal watch URLs and Shorts.
func ExtractVideoID(videoURL string) string {
	match := videoIDPattern.FindStringSubmatch(videoURL)
	if match == nil {
		return ""
	}
	return match[1]
}

// FetchVideoComments pages through every comment thread of a video and maps
// it to the unified comment model: plain text, like counts, ISO timestamps
// and one level of replies.
func (yc *YouTubeClient) FetchVideoComments(ctx context.Context, videoID string) ([]models.Comment, error) {
	var comments []models.Comment
	pageToken := ""

	for {
		page, err := yc.fetchThreadPage(ctx, videoID, pageToken)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			comments = append(comments, threadToComment(item))
		}

		if page.NextPageToken == "" {
			break
		}
		pageToken = page.NextPageToken
	}

	slog.Info("[YouTubeClient] Fetched video comments",
		slog.String("video_id", videoID),
		slog.Int("top_level", len(comments)))
	return comments, nil
}

func (yc *YouTubeClient) fetchThreadPage(ctx context.Context, videoID, pageToken string) (models.YouTubeCommentThreadsResponse, error) {
	var page models.YouTubeCommentThreadsResponse

	parsedUrl, err := url.Parse(YOUTUBE_API_URL)
	if err != nil {
		return page, fmt.Errorf("[YouTubeClient] Failed to parse URL: %w", err)
	}
	queryParams := parsedUrl.Query()
	queryParams.Add("part", "snippet,replies")
	queryParams.Add("videoId", videoID)
	queryParams.Add("maxResults", "100")
	queryParams.Add("textFormat", "plainText")
	queryParams.Add("key", yc.apiKey)
	if pageToken != "" {
		queryParams.Add("pageToken", pageToken)
	}
	parsedUrl.RawQuery = queryParams.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedUrl.String(), nil)
	if err != nil {
		return page, err
	}
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := yc.Client.Do(req)
	if err != nil {
		return page, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return page, fmt.Errorf("[YouTubeClient] commentThreads request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return page, err
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return page, fmt.Errorf("[YouTubeClient] Failed to decode commentThreads response: %w", err)
	}
	return page, nil
}

func threadToComment(thread models.YouTubeCommentThread) models.Comment {
	top := thread.Snippet.TopLevelComment.Snippet

	replies := make([]models.Comment, 0, len(thread.Replies.Comments))
	for _, reply := range thread.Replies.Comments {
		replies = append(replies, models.Comment{
			Text:        reply.Snippet.TextDisplay,
			Engagement:  reply.Snippet.LikeCount,
			PublishedAt: models.TimestampFromString(reply.Snippet.PublishedAt),
		})
	}

	return models.Comment{
		Text:        top.TextDisplay,
		Engagement:  top.LikeCount,
		PublishedAt: models.TimestampFromString(top.PublishedAt),
		Replies:     replies,
	}
}
