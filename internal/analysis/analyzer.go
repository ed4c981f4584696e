package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacesedan/commentlens/internal/models"
)

// Analyzer is the full comment-analysis pipeline: collect the corpus,
// classify it in batches, build the sentiment views and shape the response.
// One Analyzer serves all requests; it holds no per-request state.
type Analyzer struct {
	aggregator *Aggregator
	topN       int
	maxReplies int
}

func NewAnalyzer(classifier Classifier, counter TokenCounter) *Analyzer {
	return &Analyzer{
		aggregator: NewAggregator(classifier, counter),
		topN:       DefaultTopN,
		maxReplies: DefaultMaxReplies,
	}
}

// Analyze runs the pipeline for one comment tree. An empty corpus yields the
// canonical empty result; a classifier failure fails the whole request.
func (a *Analyzer) Analyze(ctx context.Context, comments []models.Comment, platform models.Platform) (models.AnalysisResult, error) {
	texts := CollectTexts(comments)
	if len(texts) == 0 {
		return EmptyResult("No comments found."), nil
	}

	start := time.Now()
	kept, labels, err := a.aggregator.ClassifyAll(ctx, texts)
	if err != nil {
		return models.AnalysisResult{}, fmt.Errorf("sentiment analysis: %w", err)
	}
	slog.Info("[Analyzer] Sentiment pass complete",
		slog.String("platform", string(platform)),
		slog.Int("comments", len(comments)),
		slog.Duration("elapsed", time.Since(start)))

	var top []models.Comment
	switch platform {
	case models.PlatformYouTube:
		top = TopYouTubeComments(comments, a.topN)
	default:
		top = TopRedditComments(comments, a.topN, a.maxReplies)
	}

	return models.AnalysisResult{
		SentimentDistribution: CountLabels(labels),
		FrequentWords:         BuildFrequentWords(kept, labels),
		TopComments:           ShapeTopComments(top, platform),
	}, nil
}

// CollectTexts flattens a comment tree into classifier input, depth-first in
// document order. The traversal keeps its own stack so arbitrarily deep reply
// trees cannot grow the call stack. Empty texts never reach the classifier.
func CollectTexts(comments []models.Comment) []string {
	var texts []string

	stack := make([]models.Comment, len(comments))
	for i, c := range comments {
		stack[len(comments)-1-i] = c
	}

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if c.Text != "" {
			texts = append(texts, c.Text)
		}
		for i := len(c.Replies) - 1; i >= 0; i-- {
			stack = append(stack, c.Replies[i])
		}
	}
	return texts
}

// ShapeTopComments converts selected comments to the response form: one
// canonical timestamp string per comment and the engagement count exposed
// under the platform's field name. Replies carry one level, never deeper.
func ShapeTopComments(comments []models.Comment, platform models.Platform) []models.TopComment {
	shaped := make([]models.TopComment, len(comments))
	for i, c := range comments {
		replies := make([]models.TopComment, len(c.Replies))
		for j, r := range c.Replies {
			replies[j] = shapeComment(r, platform)
			replies[j].Replies = []models.TopComment{}
		}
		shaped[i] = shapeComment(c, platform)
		shaped[i].Replies = replies
	}
	return shaped
}

func shapeComment(c models.Comment, platform models.Platform) models.TopComment {
	engagement := c.Engagement
	shaped := models.TopComment{
		Text:        c.Text,
		PublishedAt: c.PublishedAt.Canonical(),
	}
	if platform == models.PlatformYouTube {
		shaped.Likes = &engagement
	} else {
		shaped.Scores = &engagement
	}
	return shaped
}

// EmptyResult is the canonical soft-failure response: zero distribution,
// placeholder word lists and a single synthetic comment carrying the reason.
func EmptyResult(message string) models.AnalysisResult {
	zero := 0
	return models.AnalysisResult{
		SentimentDistribution: CountLabels(nil),
		FrequentWords: models.FrequentWords{
			PositiveWords: []models.FrequentWordEntry{{Word: placeholderWord(models.LabelPositive), Count: 0}},
			NeutralWords:  []models.FrequentWordEntry{{Word: placeholderWord(models.LabelNeutral), Count: 0}},
			NegativeWords: []models.FrequentWordEntry{{Word: placeholderWord(models.LabelNegative), Count: 0}},
		},
		TopComments: []models.TopComment{{
			Text:        message,
			Likes:       &zero,
			Scores:      &zero,
			PublishedAt: time.Now().UTC().Format(models.CanonicalTimeFormat),
			Replies:     []models.TopComment{},
		}},
	}
}
