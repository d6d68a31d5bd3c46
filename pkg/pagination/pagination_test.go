package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("zero limit should default, got %d", got)
	}
	if got := NormalizeLimit(-3); got != DefaultLimit {
		t.Fatalf("negative limit should default, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("in-range limit should pass through, got %d", got)
	}
	if got := NormalizeLimit(5000); got != MaxLimit {
		t.Fatalf("oversized limit should cap, got %d", got)
	}
	if got := LimitWithBuffer(10); got != 11 {
		t.Fatalf("buffer should add one, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	created := time.Date(2024, 3, 5, 12, 30, 0, 123456789, time.UTC)
	id := uuid.New()

	encoded := Next(created, id)
	decoded, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if !decoded.CreatedAt.Equal(created) {
		t.Fatalf("created_at mismatch: %v vs %v", decoded.CreatedAt, created)
	}
	if decoded.ID != id {
		t.Fatalf("id mismatch: %v vs %v", decoded.ID, id)
	}
}

func TestParseCursorEmpty(t *testing.T) {
	cursor, err := ParseCursor("   ")
	if err != nil {
		t.Fatalf("blank cursor must not error: %v", err)
	}
	if cursor != nil {
		t.Fatalf("blank cursor must be nil, got %+v", cursor)
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	for _, value := range []string{
		"not-base64!!!",
		"aGVsbG8=", // decodes but has no separator
		"MjAyNC0wMy0wNVQwMDowMDowMFp8bm9wZQ==", // valid time, invalid uuid
	} {
		if _, err := ParseCursor(value); err == nil {
			t.Fatalf("expected error for %q", value)
		}
	}
}
