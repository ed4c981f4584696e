package analysis

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const minTokenLength = 3

var (
	nonWordPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	digitPattern   = regexp.MustCompile(`\p{Nd}+`)
)

// Tokenize reduces raw comment text to the lowercase tokens used for the word
// frequency tables. The steps are order-sensitive: lowercase, strip
// punctuation, strip digit runs, split on whitespace, then drop stopwords and
// short tokens. No stemming.
func Tokenize(text string) []string {
	text = strings.ToLower(text)
	text = nonWordPattern.ReplaceAllString(text, "")
	text = digitPattern.ReplaceAllString(text, "")

	fields := strings.Fields(text)
	tokens := make([]string, 0, len(fields))
	for _, word := range fields {
		if utf8.RuneCountInString(word) < minTokenLength {
			continue
		}
		if _, stop := allStopwords[word]; stop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}
