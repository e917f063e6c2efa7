package id

import (
	"strconv"
	"testing"
	"time"
)

func TestEntry(t *testing.T) {
	at := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

	got := Entry(at)
	want := strconv.FormatInt(at.UnixMilli()*1000, 10)
	if got != want {
		t.Errorf("Entry() = %s, want %s", got, want)
	}

	// Entry IDs are digit-only so they can serve as document field keys.
	for _, r := range got {
		if r < '0' || r > '9' {
			t.Fatalf("Entry() contains non-digit %q", r)
		}
	}
}

func TestFoodOffsetFromEntry(t *testing.T) {
	at := time.Now()

	entry, _ := strconv.ParseInt(Entry(at), 10, 64)
	food, _ := strconv.ParseInt(Food(at), 10, 64)

	if food-entry != 10 {
		t.Errorf("Food-Entry = %d, want 10", food-entry)
	}
}

func TestRequestHasPrefix(t *testing.T) {
	id, err := Request("req")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(id) <= len("req-") {
		t.Errorf("unexpectedly short id: %s", id)
	}
	if id[:4] != "req-" {
		t.Errorf("id %s missing prefix", id)
	}
}
