package analysis

import (
	"context"
	"reflect"
	"testing"

	"github.com/spacesedan/commentlens/internal/models"
)

func TestAnalyzeScenario(t *testing.T) {
	t.Parallel()

	comments := []models.Comment{
		{Text: "great video", Engagement: 10, PublishedAt: models.TimestampFromString("2024-01-01T00:00:00Z")},
		{Text: "bad video", Engagement: 50, PublishedAt: models.TimestampFromString("2024-01-02T00:00:00Z")},
	}
	classifier := &mappingClassifier{labels: map[string]models.SentimentLabel{
		"great video": models.LabelPositive,
		"bad video":   models.LabelNegative,
	}}
	analyzer := NewAnalyzer(classifier, NewHeuristicTokenCounter())

	result, err := analyzer.Analyze(context.Background(), comments, models.PlatformYouTube)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantDist := map[models.SentimentLabel]int{
		models.LabelPositive: 1,
		models.LabelNeutral:  0,
		models.LabelNegative: 1,
	}
	if !reflect.DeepEqual(result.SentimentDistribution, wantDist) {
		t.Fatalf("want distribution %v, got %v", wantDist, result.SentimentDistribution)
	}

	if len(result.TopComments) != 2 {
		t.Fatalf("want 2 top comments, got %d", len(result.TopComments))
	}
	if result.TopComments[0].Text != "bad video" || result.TopComments[1].Text != "great video" {
		t.Fatalf("unexpected top comment order: %q, %q",
			result.TopComments[0].Text, result.TopComments[1].Text)
	}
	if result.TopComments[0].Likes == nil || *result.TopComments[0].Likes != 50 {
		t.Fatalf("want likes 50, got %+v", result.TopComments[0].Likes)
	}
	if result.TopComments[0].Scores != nil {
		t.Fatal("youtube comment should not carry a scores field")
	}
	if result.TopComments[0].PublishedAt != "2024-01-02T00:00:00Z" {
		t.Fatalf("string timestamp should pass through, got %q", result.TopComments[0].PublishedAt)
	}
}

func TestAnalyzeEmptyCorpus(t *testing.T) {
	t.Parallel()

	analyzer := NewAnalyzer(&mappingClassifier{}, NewHeuristicTokenCounter())

	result, err := analyzer.Analyze(context.Background(), nil, models.PlatformReddit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for label, n := range result.SentimentDistribution {
		if n != 0 {
			t.Fatalf("label %s: want 0, got %d", label, n)
		}
	}
	if len(result.TopComments) != 1 || result.TopComments[0].Text != "No comments found." {
		t.Fatalf("unexpected top comments: %+v", result.TopComments)
	}
	if result.TopComments[0].Replies == nil || len(result.TopComments[0].Replies) != 0 {
		t.Fatalf("placeholder comment should carry an empty reply list")
	}
	if result.FrequentWords.PositiveWords[0].Word != "Positive words are not available" {
		t.Fatalf("unexpected placeholder: %q", result.FrequentWords.PositiveWords[0].Word)
	}
}

func TestAnalyzeRedditShapesEpochTimestamps(t *testing.T) {
	t.Parallel()

	comments := []models.Comment{
		{Text: "interesting take", Engagement: 3, PublishedAt: models.TimestampFromUnix(0)},
	}
	classifier := &mappingClassifier{labels: map[string]models.SentimentLabel{
		"interesting take": models.LabelNeutral,
	}}
	analyzer := NewAnalyzer(classifier, NewHeuristicTokenCounter())

	result, err := analyzer.Analyze(context.Background(), comments, models.PlatformReddit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TopComments[0].PublishedAt != "1970-01-01T00:00:00" {
		t.Fatalf("want canonical epoch form, got %q", result.TopComments[0].PublishedAt)
	}
	if result.TopComments[0].Scores == nil || *result.TopComments[0].Scores != 3 {
		t.Fatalf("want scores 3, got %+v", result.TopComments[0].Scores)
	}
	if result.TopComments[0].Likes != nil {
		t.Fatal("reddit comment should not carry a likes field")
	}
}

func TestCollectTextsDepthFirst(t *testing.T) {
	t.Parallel()

	comments := []models.Comment{
		{Text: "root1", Replies: []models.Comment{
			{Text: "r1a", Replies: []models.Comment{{Text: "r1a1"}}},
			{Text: "r1b"},
		}},
		{Text: "root2"},
		{Text: "", Replies: []models.Comment{{Text: "orphan"}}},
	}

	got := CollectTexts(comments)
	want := []string{"root1", "r1a", "r1a1", "r1b", "root2", "orphan"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestAnalyzeRepliesCountTowardDistribution(t *testing.T) {
	t.Parallel()

	comments := []models.Comment{
		{Text: "love it", Engagement: 2, PublishedAt: models.TimestampFromUnix(100), Replies: []models.Comment{
			{Text: "same here", Engagement: 1, PublishedAt: models.TimestampFromUnix(101)},
		}},
	}
	classifier := &mappingClassifier{labels: map[string]models.SentimentLabel{
		"love it":   models.LabelPositive,
		"same here": models.LabelPositive,
	}}
	analyzer := NewAnalyzer(classifier, NewHeuristicTokenCounter())

	result, err := analyzer.Analyze(context.Background(), comments, models.PlatformReddit)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SentimentDistribution[models.LabelPositive] != 2 {
		t.Fatalf("want 2 positive texts, got %d", result.SentimentDistribution[models.LabelPositive])
	}
}
