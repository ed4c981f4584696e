package models

import (
	"testing"
	"time"
)

func TestTimestampCanonicalEpoch(t *testing.T) {
	t.Parallel()

	if got := TimestampFromUnix(0).Canonical(); got != "1970-01-01T00:00:00" {
		t.Fatalf("want 1970-01-01T00:00:00, got %q", got)
	}
	if got := TimestampFromUnix(1704067200).Canonical(); got != "2024-01-01T00:00:00" {
		t.Fatalf("want 2024-01-01T00:00:00, got %q", got)
	}
}

func TestTimestampCanonicalStringPassthrough(t *testing.T) {
	t.Parallel()

	if got := TimestampFromString("2024-01-01T00:00:00Z").Canonical(); got != "2024-01-01T00:00:00Z" {
		t.Fatalf("string form should pass through, got %q", got)
	}
}

func TestTimestampCanonicalFallback(t *testing.T) {
	t.Parallel()

	var zero Timestamp
	got := zero.Canonical()
	parsed, err := time.Parse(CanonicalTimeFormat, got)
	if err != nil {
		t.Fatalf("fallback %q is not canonical: %v", got, err)
	}
	if time.Since(parsed) > time.Minute {
		t.Fatalf("fallback should be the current instant, got %q", got)
	}
}

func TestTimestampTime(t *testing.T) {
	t.Parallel()

	parsed, ok := TimestampFromString("2024-06-01T12:30:00Z").Time()
	if !ok {
		t.Fatal("want parseable timestamp")
	}
	if parsed.Hour() != 12 || parsed.Minute() != 30 {
		t.Fatalf("unexpected parse result: %v", parsed)
	}

	if _, ok := TimestampFromString("yesterday").Time(); ok {
		t.Fatal("malformed string should not parse")
	}

	epoch, ok := TimestampFromUnix(1700000000).Time()
	if !ok || epoch.Unix() != 1700000000 {
		t.Fatalf("unexpected epoch parse: %v %v", epoch, ok)
	}
}
