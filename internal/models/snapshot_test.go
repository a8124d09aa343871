package models

import (
	"errors"
	"testing"
	"time"
)

func TestNewSnapshot_CopiesItems(t *testing.T) {
	items := []NewsItem{{Title: "First"}, {Title: "Second"}}
	snap := NewSnapshot(3, items, time.Unix(1700000000, 0))

	items[0].Title = "Changed"

	got := snap.Items()
	if got[0].Title != "First" {
		t.Errorf("Items()[0].Title = %q, want %q", got[0].Title, "First")
	}

	got[1].Title = "Also changed"
	if again := snap.Items(); again[1].Title != "Second" {
		t.Errorf("Items() must return a copy, got %q", again[1].Title)
	}

	if snap.Generation() != 3 {
		t.Errorf("Generation() = %d, want 3", snap.Generation())
	}
	if snap.Len() != 2 {
		t.Errorf("Len() = %d, want 2", snap.Len())
	}
	if !snap.PublishedAt().Equal(time.Unix(1700000000, 0)) {
		t.Errorf("PublishedAt() = %v", snap.PublishedAt())
	}
}

func TestEmptySnapshot(t *testing.T) {
	snap := EmptySnapshot()

	if snap.Generation() != 0 {
		t.Errorf("Generation() = %d, want 0", snap.Generation())
	}
	if snap.Len() != 0 {
		t.Errorf("Len() = %d, want 0", snap.Len())
	}
	items := snap.Items()
	if items == nil || len(items) != 0 {
		t.Errorf("Items() = %#v, want empty non-nil slice", items)
	}
	if !snap.PublishedAt().IsZero() {
		t.Errorf("PublishedAt() = %v, want zero", snap.PublishedAt())
	}
}

func TestSnapshot_Each(t *testing.T) {
	snap := NewSnapshot(1, []NewsItem{{Title: "a"}, {Title: "b"}, {Title: "c"}}, time.Now())

	var seen []string
	snap.Each(func(item NewsItem) bool {
		seen = append(seen, item.Title)
		return item.Title != "b"
	})

	if len(seen) != 2 || seen[0] != "a" || seen[1] != "b" {
		t.Errorf("Each() visited %v, want [a b]", seen)
	}
}

func TestRawFetchResult_OK(t *testing.T) {
	tests := []struct {
		name   string
		result RawFetchResult
		want   bool
	}{
		{"body present", RawFetchResult{Body: []byte("<rss/>")}, true},
		{"empty body", RawFetchResult{Body: []byte{}}, true},
		{"absent body", RawFetchResult{}, false},
		{"error", RawFetchResult{Body: []byte("x"), Err: errors.New("boom")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.OK(); got != tt.want {
				t.Errorf("OK() = %v, want %v", got, tt.want)
			}
		})
	}
}
