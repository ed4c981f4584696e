package analysis

import "strings"

const (
	subwordInflation = 1.3
	modelMaxLength   = 512
)

// HeuristicTokenCounter estimates subword token counts from whitespace words.
// Multilingual sentence-piece tokenizers emit roughly 1.3 tokens per word on
// social-media text, and the model truncates anything past its max length, so
// the estimate is capped there too.
type HeuristicTokenCounter struct {
	MaxLength int
}

func NewHeuristicTokenCounter() *HeuristicTokenCounter {
	return &HeuristicTokenCounter{MaxLength: modelMaxLength}
}

func (c *HeuristicTokenCounter) TokenLength(text string) int {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}

	// +2 for the begin/end special tokens every encoded sequence carries.
	estimate := int(float64(words)*subwordInflation) + 2
	if c.MaxLength > 0 && estimate > c.MaxLength {
		return c.MaxLength
	}
	return estimate
}
