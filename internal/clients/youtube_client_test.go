package clients

import (
	"encoding/json"
	"testing"

	"github.com/spacesedan/commentlens/internal/models"
)

func TestExtractVideoID(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":       "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                      "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/abcDEF12345/":       "abcDEF12345",
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=10s": "dQw4w9WgXcQ",
		"https://www.youtube.com/":                          "",
		"":                                                  "",
	}
	for url, want := range cases {
		if got := ExtractVideoID(url); got != want {
			t.Fatalf("ExtractVideoID(%q): want %q, got %q", url, want, got)
		}
	}
}

func TestThreadToComment(t *testing.T) {
	t.Parallel()

	raw := `{
		"snippet": {
			"topLevelComment": {
				"snippet": {
					"textDisplay": "what a video",
					"likeCount": 12,
					"publishedAt": "2024-03-01T10:00:00Z"
				}
			}
		},
		"replies": {
			"comments": [
				{
					"snippet": {
						"textDisplay": "agreed",
						"likeCount": 3,
						"publishedAt": "2024-03-01T11:00:00Z"
					}
				}
			]
		}
	}`

	var thread models.YouTubeCommentThread
	if err := json.Unmarshal([]byte(raw), &thread); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	comment := threadToComment(thread)

	if comment.Text != "what a video" || comment.Engagement != 12 {
		t.Fatalf("unexpected top-level mapping: %+v", comment)
	}
	if comment.PublishedAt.Canonical() != "2024-03-01T10:00:00Z" {
		t.Fatalf("unexpected timestamp: %q", comment.PublishedAt.Canonical())
	}
	if len(comment.Replies) != 1 {
		t.Fatalf("want 1 reply, got %d", len(comment.Replies))
	}
	if comment.Replies[0].Text != "agreed" || comment.Replies[0].Engagement != 3 {
		t.Fatalf("unexpected reply mapping: %+v", comment.Replies[0])
	}
}
