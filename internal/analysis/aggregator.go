package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/spacesedan/commentlens/internal/models"
)

const (
	minDominantCount = 2
	dominanceRatio   = 0.6
	maxFrequentWords = 10
)

// Classifier is the external sentiment capability: one label per input text,
// same order. It must never see a text over the model token budget.
type Classifier interface {
	ClassifyBatch(ctx context.Context, texts []string) ([]models.SentimentLabel, error)
}

// Aggregator batches a comment corpus, fans the batches out to the classifier
// and folds the per-text labels into sentiment counts and word tables.
type Aggregator struct {
	classifier Classifier
	counter    TokenCounter
	maxItems   int
	maxTokens  int
	workers    int
}

func NewAggregator(classifier Classifier, counter TokenCounter) *Aggregator {
	return &Aggregator{
		classifier: classifier,
		counter:    counter,
		maxItems:   DefaultMaxBatchItems,
		maxTokens:  DefaultMaxBatchTokens,
		workers:    runtime.NumCPU(),
	}
}

type batchJob struct {
	idx   int
	texts []string
}

// ClassifyAll classifies every text that fits the token budget and returns
// the surviving texts alongside their labels, aligned index for index.
// Batches run concurrently; results land in a slot per batch index so label
// alignment survives out-of-order completion.
func (a *Aggregator) ClassifyAll(ctx context.Context, texts []string) ([]string, []models.SentimentLabel, error) {
	batches := BatchTexts(texts, a.counter, a.maxItems, a.maxTokens)
	if len(batches) == 0 {
		return nil, nil, nil
	}

	results := make([][]models.SentimentLabel, len(batches))

	workers := a.workers
	if workers > len(batches) {
		workers = len(batches)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan batchJob)
	var wg sync.WaitGroup
	var errOnce sync.Once
	var firstErr error

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				labels, err := a.classifier.ClassifyBatch(ctx, job.texts)
				if err == nil && len(labels) != len(job.texts) {
					err = fmt.Errorf("classifier returned %d labels for %d texts", len(labels), len(job.texts))
				}
				if err != nil {
					errOnce.Do(func() { firstErr = err })
					continue
				}
				results[job.idx] = labels
			}
		}()
	}

	for idx, batch := range batches {
		jobs <- batchJob{idx: idx, texts: batch}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, nil, fmt.Errorf("batch classification failed: %w", firstErr)
	}

	kept := make([]string, 0, len(texts))
	labels := make([]models.SentimentLabel, 0, len(texts))
	for idx, batch := range batches {
		kept = append(kept, batch...)
		labels = append(labels, results[idx]...)
	}

	slog.Info("[Aggregator] Classified corpus",
		slog.Int("texts", len(kept)),
		slog.Int("batches", len(batches)),
		slog.Int("dropped", len(texts)-len(kept)))

	return kept, labels, nil
}

// CountLabels tallies the sentiment distribution. Every label the classifier
// can emit is present in the map even when zero.
func CountLabels(labels []models.SentimentLabel) map[models.SentimentLabel]int {
	counts := make(map[models.SentimentLabel]int, len(models.AllLabels))
	for _, label := range models.AllLabels {
		counts[label] = 0
	}
	for _, label := range labels {
		if _, known := counts[label]; known {
			counts[label]++
		}
	}
	return counts
}

type wordRecord struct {
	counts map[models.SentimentLabel]int
	total  int
}

// BuildFrequentWords tokenizes each classified text and attributes every
// token to its text's label, then keeps words whose dominant label holds at
// least minDominantCount occurrences and at least 60% of the word's total.
// texts and labels must be aligned.
func BuildFrequentWords(texts []string, labels []models.SentimentLabel) models.FrequentWords {
	records := make(map[string]*wordRecord)

	for i, text := range texts {
		label := labels[i]
		known := false
		for _, l := range models.AllLabels {
			if label == l {
				known = true
				break
			}
		}
		if !known {
			continue
		}

		for _, token := range Tokenize(text) {
			rec, ok := records[token]
			if !ok {
				rec = &wordRecord{counts: make(map[models.SentimentLabel]int, len(models.AllLabels))}
				records[token] = rec
			}
			rec.counts[label]++
			rec.total++
		}
	}

	lists := make(map[models.SentimentLabel][]models.FrequentWordEntry, len(models.AllLabels))
	for word, rec := range records {
		dominant := dominantLabel(rec.counts)
		count := rec.counts[dominant]
		if count >= minDominantCount && float64(count) >= dominanceRatio*float64(rec.total) {
			lists[dominant] = append(lists[dominant], models.FrequentWordEntry{Word: word, Count: count})
		}
	}

	return models.FrequentWords{
		PositiveWords: finalizeWordList(lists[models.LabelPositive], models.LabelPositive),
		NeutralWords:  finalizeWordList(lists[models.LabelNeutral], models.LabelNeutral),
		NegativeWords: finalizeWordList(lists[models.LabelNegative], models.LabelNegative),
	}
}

// dominantLabel picks the label with the strictly highest count; on equal
// counts the earlier label in models.AllLabels wins, so ties resolve
// positive > neutral > negative deterministically.
func dominantLabel(counts map[models.SentimentLabel]int) models.SentimentLabel {
	dominant := models.AllLabels[0]
	best := counts[dominant]
	for _, label := range models.AllLabels[1:] {
		if counts[label] > best {
			dominant = label
			best = counts[label]
		}
	}
	return dominant
}

func finalizeWordList(entries []models.FrequentWordEntry, label models.SentimentLabel) []models.FrequentWordEntry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Word < entries[j].Word
	})
	if len(entries) > maxFrequentWords {
		entries = entries[:maxFrequentWords]
	}
	if len(entries) == 0 {
		entries = []models.FrequentWordEntry{{Word: placeholderWord(label), Count: 0}}
	}
	return entries
}

func placeholderWord(label models.SentimentLabel) string {
	name := string(label)
	return strings.ToUpper(name[:1]) + name[1:] + " words are not available"
}
