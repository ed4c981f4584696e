package models

import "time"

// CanonicalTimeFormat is the single timestamp representation exposed in
// responses: ISO-8601 in UTC with no timezone suffix.
const CanonicalTimeFormat = "2006-01-02T15:04:05"

type SentimentLabel string

const (
	LabelPositive SentimentLabel = "positive"
	LabelNeutral  SentimentLabel = "neutral"
	LabelNegative SentimentLabel = "negative"
)

// AllLabels lists every label in priority order. The order is load-bearing:
// it breaks ties when a word's counts are equal across labels.
var AllLabels = []SentimentLabel{LabelPositive, LabelNeutral, LabelNegative}

type Platform string

const (
	PlatformYouTube Platform = "youtube"
	PlatformReddit  Platform = "reddit"
)

type timestampKind int

const (
	timestampUnset timestampKind = iota
	timestampUnix
	timestampString
)

// Timestamp holds a publish time in whichever representation the platform
// delivered it: Unix epoch seconds (Reddit) or an ISO-8601 string (YouTube).
type Timestamp struct {
	kind timestampKind
	unix float64
	str  string
}

func TimestampFromUnix(seconds float64) Timestamp {
	return Timestamp{kind: timestampUnix, unix: seconds}
}

func TimestampFromString(value string) Timestamp {
	return Timestamp{kind: timestampString, str: value}
}

func (t Timestamp) IsZero() bool {
	return t.kind == timestampUnset
}

// Time parses the timestamp for ordering purposes. The second return value
// is false when the timestamp is unset or the string form is unparseable.
func (t Timestamp) Time() (time.Time, bool) {
	switch t.kind {
	case timestampUnix:
		sec := int64(t.unix)
		nsec := int64((t.unix - float64(sec)) * float64(time.Second))
		return time.Unix(sec, nsec).UTC(), true
	case timestampString:
		parsed, err := time.Parse(time.RFC3339, t.str)
		if err != nil {
			return time.Time{}, false
		}
		return parsed.UTC(), true
	}
	return time.Time{}, false
}

// Canonical converts the timestamp to the canonical string form. Epoch values
// are formatted as UTC, string values pass through unchanged, and anything
// missing falls back to the current UTC instant.
func (t Timestamp) Canonical() string {
	switch t.kind {
	case timestampUnix:
		return time.Unix(int64(t.unix), 0).UTC().Format(CanonicalTimeFormat)
	case timestampString:
		return t.str
	}
	return time.Now().UTC().Format(CanonicalTimeFormat)
}

// Comment is the unified comment-tree node for both platforms. Engagement is
// the platform popularity metric (like count or net score); the platform
// specific field name only reappears at the response boundary.
type Comment struct {
	Text        string
	Engagement  int
	PublishedAt Timestamp
	Replies     []Comment
}

type FrequentWordEntry struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type FrequentWords struct {
	PositiveWords []FrequentWordEntry `json:"positive_words"`
	NeutralWords  []FrequentWordEntry `json:"neutral_words"`
	NegativeWords []FrequentWordEntry `json:"negative_words"`
}

// TopComment is the response-boundary form of a Comment: one canonical
// timestamp string and the engagement metric under its platform name.
type TopComment struct {
	Text        string       `json:"text"`
	Likes       *int         `json:"likes,omitempty"`
	Scores      *int         `json:"scores,omitempty"`
	PublishedAt string       `json:"publishedAt"`
	Replies     []TopComment `json:"replies"`
}

type AnalysisResult struct {
	SentimentDistribution map[SentimentLabel]int `json:"sentiment_distribution"`
	FrequentWords         FrequentWords          `json:"frequent_words"`
	TopComments           []TopComment           `json:"top_comments"`
}
