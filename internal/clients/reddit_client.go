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

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/spacesedan/commentlens/internal/models"
	"github.com/spacesedan/commentlens/internal/sentiment"
)

const (
	REDDIT_AUTH_URL = "https://www.reddit.com/api/v1/access_token"
	REDDIT_API_URL  = "https://oauth.reddit.com"
)

var (
	redditClientInstance *RedditClient
	redditClientOnce     sync.Once
	postIDPattern        = regexp.MustCompile(`comments/([a-z0-9]{6,})`)
)

type RedditClient struct {
	Config *clientcredentials.Config
	Client *http.Client
	mu     *sync.Mutex
}

func GetRedditClient() *RedditClient {
	redditClientOnce.Do(func() {
		oauthConf := &clientcredentials.Config{
			ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
			ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
			TokenURL:     REDDIT_AUTH_URL,
			AuthStyle:    oauth2.AuthStyleInHeader,
		}

		redditClientInstance = &RedditClient{
			Config: oauthConf,
			Client: oauthConf.Client(context.Background()),
			mu:     &sync.Mutex{},
		}
	})

	return redditClientInstance
}

func (rc *RedditClient) RefreshClient() {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	rc.Client = rc.Config.Client(context.Background())
}

// ExtractPostID pulls the post id out of a Reddit post URL, e.g.
// https://www.reddit.com/r/AskReddit/comments/abc123/example_title/
func ExtractPostID(postURL string) string {
	match := postIDPattern.FindStringSubmatch(postURL)
	if match == nil {
		return ""
	}
	return match[1]
}

// FetchPostComments fetches the full comment tree of a post: every top-level
// comment with its replies, recursively, scores and epoch timestamps intact.
func (rc *RedditClient) FetchPostComments(ctx context.Context, postID string) ([]models.Comment, error) {
	body, err := rc.getComments(ctx, postID, 0)
	if err != nil {
		return nil, err
	}

	// The comments endpoint answers with two listings: the post itself,
	// then the comment tree.
	var payload []models.RedditListing
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("[RedditClient] Failed to decode comments response: %w", err)
	}
	if len(payload) < 2 {
		return nil, fmt.Errorf("[RedditClient] Unexpected comments response shape (%d listings)", len(payload))
	}

	comments := parseCommentListing(payload[1])
	slog.Info("[RedditClient] Fetched post comments",
		slog.String("post_id", postID),
		slog.Int("top_level", len(comments)))
	return comments, nil
}

func (rc *RedditClient) getComments(ctx context.Context, postID string, attempt int) ([]byte, error) {
	parsedUrl, err := url.Parse(fmt.Sprintf("%s/comments/%s", REDDIT_API_URL, postID))
	if err != nil {
		return nil, fmt.Errorf("[RedditClient] Failed to parse URL: %w", err)
	}
	queryParams := parsedUrl.Query()
	queryParams.Add("limit", "500")
	queryParams.Add("raw_json", "1")
	parsedUrl.RawQuery = queryParams.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsedUrl.String(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", redditUserAgent())

	resp, err := rc.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		slog.Warn("[RedditClient] Token expired - Refreshing and Retrying...")
		rc.RefreshClient()
		return rc.getComments(ctx, postID, attempt)
	case http.StatusTooManyRequests:
		if attempt >= MAX_RETRIES {
			return nil, fmt.Errorf("[RedditClient] Max retries reached request failed")
		}
		backoff := INITIAL_BACKOFF << attempt
		if backoff > MAX_BACKOFF {
			backoff = MAX_BACKOFF
		}
		slog.Warn("[RedditClient] 429 Too Many Requests - Retrying with backoff",
			slog.Int("attempt", attempt+1),
			slog.Duration("backoff", backoff))
		time.Sleep(backoff)
		return rc.getComments(ctx, postID, attempt+1)
	case http.StatusOK:
		return io.ReadAll(resp.Body)
	}
	return nil, fmt.Errorf("[RedditClient] Unexpected status %d fetching comments", resp.StatusCode)
}

func parseCommentListing(listing models.RedditListing) []models.Comment {
	comments := make([]models.Comment, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		// "more" stubs carry no comment body.
		if child.Kind != "t1" {
			continue
		}
		comments = append(comments, parseComment(child.Data))
	}
	return comments
}

func parseComment(data models.RedditThingData) models.Comment {
	comment := models.Comment{
		Text:        sentiment.RemoveLinks(data.Body),
		Engagement:  data.Score,
		PublishedAt: models.TimestampFromUnix(data.CreatedUTC),
	}

	// Leaf comments carry "" instead of a listing.
	if len(data.Replies) > 0 && data.Replies[0] == '{' {
		var nested models.RedditListing
		if err := json.Unmarshal(data.Replies, &nested); err == nil {
			comment.Replies = parseCommentListing(nested)
		}
	}
	return comment
}

func redditUserAgent() string {
	if ua := os.Getenv("REDDIT_USER_AGENT"); ua != "" {
		return ua
	}
	return USER_AGENT
}
