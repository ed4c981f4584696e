package sentiment

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"

	"github.com/spacesedan/commentlens/internal/models"
)

const (
	positiveThreshold = 0.20
	negativeThreshold = -0.20
)

// VADERClassifier scores comments in-process with VADER. It is the default
// backend when no remote classifier is configured; the analyzer pool may call
// it from several goroutines at once, which govader tolerates for scoring.
type VADERClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

func NewVADERClassifier() *VADERClassifier {
	return &VADERClassifier{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

func RemoveLinks(input string) string {
	linkPattern := regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	input = linkPattern.ReplaceAllString(input, "$1") // Keep only the text

	urlPattern := regexp.MustCompile(`https?://\S+|www\.\S+`)
	input = urlPattern.ReplaceAllString(input, "")

	return input
}

func ConvertMarkdownToText(input string) string {
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plainText := strings.Join(strings.Fields(string(output)), " ")

	return RemoveLinks(plainText)
}

func (c *VADERClassifier) ClassifyBatch(_ context.Context, texts []string) ([]models.SentimentLabel, error) {
	labels := make([]models.SentimentLabel, len(texts))
	for i, text := range texts {
		score := c.analyzer.PolarityScores(ConvertMarkdownToText(text)).Compound

		switch {
		case score >= positiveThreshold:
			labels[i] = models.LabelPositive
		case score <= negativeThreshold:
			labels[i] = models.LabelNegative
		default:
			labels[i] = models.LabelNeutral
		}
	}
	return labels, nil
}
