package activity

import (
	"strings"
	"testing"
)

func TestRangeIDsAscending(t *testing.T) {
	r := Default()
	ids := r.IDs()
	if len(ids) != 14 || r.Len() != 14 {
		t.Fatalf("expected 14 ids, got %d", len(ids))
	}
	if ids[0] != "1.1" || ids[1] != "1.2" || ids[13] != "1.14" {
		t.Fatalf("unexpected order: %s", strings.Join(ids, ","))
	}
}

func TestRangeContains(t *testing.T) {
	r := Default()
	tests := map[string]bool{
		"1.1":  true,
		"1.14": true,
		"1.15": false,
		"1.0":  false,
		"2.3":  false,
		"1.":   false,
		"1.x":  false,
		"":     false,
	}
	for id, want := range tests {
		if got := r.Contains(id); got != want {
			t.Errorf("Contains(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestEmptyRange(t *testing.T) {
	r := Range{Prefix: "1", First: 3, Last: 2}
	if r.Len() != 0 || r.IDs() != nil {
		t.Fatalf("expected empty range, got %v", r.IDs())
	}
}
