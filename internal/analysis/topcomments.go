package analysis

import (
	"sort"
	"time"

	"github.com/spacesedan/commentlens/internal/models"
)

const (
	DefaultTopN       = 5
	DefaultMaxReplies = 5
)

// TopYouTubeComments ranks by like count with recency breaking ties: comments
// are ordered newest-first before a stable selection on likes, so equally
// liked comments surface in publish order, latest first. Reply lists are kept
// whole; the platform only ever delivers one level of replies.
func TopYouTubeComments(comments []models.Comment, topN int) []models.Comment {
	valid := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.Text == "" || c.PublishedAt.IsZero() {
			continue
		}
		valid = append(valid, c)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		ti := publishedTime(valid[i])
		tj := publishedTime(valid[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return valid[i].Engagement > valid[j].Engagement
	})
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Engagement > valid[j].Engagement
	})

	if len(valid) > topN {
		valid = valid[:topN]
	}
	return valid
}

// TopRedditComments ranks purely by score; equal scores keep document order.
// Each selected comment keeps at most maxReplies replies and every kept reply
// loses its own reply tree, capping depth at one level below the comment.
func TopRedditComments(comments []models.Comment, topN, maxReplies int) []models.Comment {
	valid := make([]models.Comment, 0, len(comments))
	for _, c := range comments {
		if c.Text == "" {
			continue
		}
		valid = append(valid, c)
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Engagement > valid[j].Engagement
	})
	if len(valid) > topN {
		valid = valid[:topN]
	}

	top := make([]models.Comment, len(valid))
	for i, c := range valid {
		replies := c.Replies
		if maxReplies >= 0 && len(replies) > maxReplies {
			replies = replies[:maxReplies]
		}
		trimmed := make([]models.Comment, len(replies))
		for j, r := range replies {
			r.Replies = nil
			trimmed[j] = r
		}
		c.Replies = trimmed
		top[i] = c
	}
	return top
}

func publishedTime(c models.Comment) time.Time {
	t, _ := c.PublishedAt.Time()
	return t
}
