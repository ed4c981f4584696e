package analysis

import (
	"reflect"
	"testing"
)

// fixedCounter reports a canned token count per text.
type fixedCounter map[string]int

func (c fixedCounter) TokenLength(text string) int { return c[text] }

func TestBatchTextsPreservesOrder(t *testing.T) {
	t.Parallel()

	texts := []string{"a", "b", "c", "d", "e"}
	counter := fixedCounter{"a": 10, "b": 10, "c": 10, "d": 10, "e": 10}

	batches := BatchTexts(texts, counter, 2, 480)

	var flat []string
	for _, batch := range batches {
		if len(batch) > 2 {
			t.Fatalf("batch exceeds item limit: %v", batch)
		}
		flat = append(flat, batch...)
	}
	if !reflect.DeepEqual(flat, texts) {
		t.Fatalf("want %v, got %v", texts, flat)
	}
}

func TestBatchTextsTokenBudget(t *testing.T) {
	t.Parallel()

	texts := []string{"big", "mid", "small"}
	counter := fixedCounter{"big": 300, "mid": 200, "small": 100}

	batches := BatchTexts(texts, counter, 64, 480)

	want := [][]string{{"big"}, {"mid", "small"}}
	if !reflect.DeepEqual(batches, want) {
		t.Fatalf("want %v, got %v", want, batches)
	}
}

func TestBatchTextsDropsOverLimitTexts(t *testing.T) {
	t.Parallel()

	texts := []string{"fits", "huge", "fits2"}
	counter := fixedCounter{"fits": 100, "huge": 481, "fits2": 100}

	batches := BatchTexts(texts, counter, 64, 480)

	want := [][]string{{"fits", "fits2"}}
	if !reflect.DeepEqual(batches, want) {
		t.Fatalf("want %v, got %v", want, batches)
	}
}

func TestBatchTextsExactBudgetStandsAlone(t *testing.T) {
	t.Parallel()

	texts := []string{"exact", "next"}
	counter := fixedCounter{"exact": 480, "next": 10}

	batches := BatchTexts(texts, counter, 64, 480)

	want := [][]string{{"exact"}, {"next"}}
	if !reflect.DeepEqual(batches, want) {
		t.Fatalf("want %v, got %v", want, batches)
	}
}

func TestBatchTextsEmptyInput(t *testing.T) {
	t.Parallel()

	if batches := BatchTexts(nil, fixedCounter{}, 64, 480); len(batches) != 0 {
		t.Fatalf("want no batches, got %v", batches)
	}
}
