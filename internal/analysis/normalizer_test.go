package analysis

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	got := Tokenize("Great video, GREAT editing!!! 123")
	want := []string{"great", "video", "great", "editing"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestTokenizeDropsStopwords(t *testing.T) {
	t.Parallel()

	got := Tokenize("this is the best video hai raha")
	want := []string{"best", "video"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	t.Parallel()

	if got := Tokenize("go ok hi"); len(got) != 0 {
		t.Fatalf("want no tokens, got %v", got)
	}
}

func TestTokenizeStripsDigitRuns(t *testing.T) {
	t.Parallel()

	// "top10list" loses its digits before the split, leaving one token.
	got := Tokenize("top10list 2024")
	want := []string{"toplist"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func TestTokenizeEmptyInput(t *testing.T) {
	t.Parallel()

	if got := Tokenize(""); len(got) != 0 {
		t.Fatalf("want no tokens, got %v", got)
	}
	if got := Tokenize("!!! ... 42"); len(got) != 0 {
		t.Fatalf("want no tokens, got %v", got)
	}
}
