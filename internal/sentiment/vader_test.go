package sentiment

import (
	"context"
	"strings"
	"testing"

	"github.com/spacesedan/commentlens/internal/models"
)

func TestClassifyBatchLabels(t *testing.T) {
	t.Parallel()

	classifier := NewVADERClassifier()
	labels, err := classifier.ClassifyBatch(context.Background(), []string{
		"This is absolutely wonderful, I love it!",
		"This is horrible, I hate it so much.",
		"The video is about cooking.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []models.SentimentLabel{models.LabelPositive, models.LabelNegative, models.LabelNeutral}
	for i, label := range want {
		if labels[i] != label {
			t.Fatalf("text %d: want %s, got %s", i, label, labels[i])
		}
	}
}

func TestClassifyBatchKeepsOrder(t *testing.T) {
	t.Parallel()

	classifier := NewVADERClassifier()
	texts := []string{"amazing", "terrible", "amazing", "terrible"}
	labels, err := classifier.ClassifyBatch(context.Background(), texts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(labels) != len(texts) {
		t.Fatalf("want %d labels, got %d", len(texts), len(labels))
	}
	if labels[0] != labels[2] || labels[1] != labels[3] {
		t.Fatalf("identical texts got different labels: %v", labels)
	}
}

func TestRemoveLinks(t *testing.T) {
	t.Parallel()

	got := RemoveLinks("check [this](https://example.com/a) out www.spam.com now")
	if strings.Contains(got, "http") || strings.Contains(got, "www.") {
		t.Fatalf("links survived: %q", got)
	}
	if !strings.Contains(got, "this") {
		t.Fatalf("link text should be kept: %q", got)
	}
}
