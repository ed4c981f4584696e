package analysis

const (
	DefaultMaxBatchItems  = 64
	DefaultMaxBatchTokens = 480
)

// TokenCounter reports the model token length of a single text. It exists so
// batching decisions stay independent of the classifier call itself.
type TokenCounter interface {
	TokenLength(text string) int
}

// BatchTexts splits texts into classifier batches bounded by maxItems and a
// cumulative maxTokens budget, preserving input order. Texts whose own token
// length exceeds maxTokens can never fit and are dropped outright. A text
// that would overflow the current batch starts a fresh one, so the first
// text of a batch may sit right at the budget.
func BatchTexts(texts []string, counter TokenCounter, maxItems, maxTokens int) [][]string {
	var batches [][]string
	var current []string
	currentTokens := 0

	for _, text := range texts {
		tokens := counter.TokenLength(text)
		if tokens > maxTokens {
			continue
		}

		if currentTokens+tokens > maxTokens || len(current) >= maxItems {
			if len(current) > 0 {
				batches = append(batches, current)
			}
			current = []string{text}
			currentTokens = tokens
		} else {
			current = append(current, text)
			currentTokens += tokens
		}
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}
	return batches
}
