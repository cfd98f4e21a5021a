package search

import (
	"fmt"
	"testing"

	"github.com/HerbHall/kartstats/pkg/models"
)

func queries(items []models.SearchHistoryItem) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Query
	}
	return out
}

func TestRecord_NewestFirstAndDeduplicated(t *testing.T) {
	var h []models.SearchHistoryItem
	h = Record(h, "mario", 3, 1000, 0)
	h = Record(h, "luigi", 1, 2000, 0)
	h = Record(h, "mario", 5, 3000, 0)

	if got := fmt.Sprint(queries(h)); got != "[mario luigi]" {
		t.Fatalf("queries = %s, want [mario luigi]", got)
	}
	if h[0].ResultCount != 5 || h[0].Timestamp != 3000 {
		t.Errorf("head = %+v, want refreshed entry", h[0])
	}
}

func TestRecord_CapsAtLimit(t *testing.T) {
	var h []models.SearchHistoryItem
	for i := 0; i < 15; i++ {
		h = Record(h, fmt.Sprintf("q%d", i), 1, int64(i), 0)
	}
	if len(h) != DefaultHistoryLimit {
		t.Fatalf("len = %d, want %d", len(h), DefaultHistoryLimit)
	}
	if h[0].Query != "q14" || h[len(h)-1].Query != "q5" {
		t.Errorf("queries = %v", queries(h))
	}

	h = Record(h, "q9", 1, 99, 3)
	if got := fmt.Sprint(queries(h)); got != "[q9 q14 q13]" {
		t.Errorf("custom limit queries = %s", got)
	}
}

func TestRecord_DoesNotModifyInput(t *testing.T) {
	in := []models.SearchHistoryItem{{Query: "a"}, {Query: "b"}}
	_ = Record(in, "b", 1, 1, 0)
	if in[0].Query != "a" || in[1].Query != "b" {
		t.Errorf("input modified: %v", queries(in))
	}
}

func TestRemove(t *testing.T) {
	in := []models.SearchHistoryItem{{Query: "a"}, {Query: "b"}, {Query: "c"}}

	out, ok := Remove(in, "b")
	if !ok || fmt.Sprint(queries(out)) != "[a c]" {
		t.Errorf("Remove(b) = %v, %v", queries(out), ok)
	}
	if fmt.Sprint(queries(in)) != "[a b c]" {
		t.Errorf("input modified: %v", queries(in))
	}

	out, ok = Remove(in, "zzz")
	if ok || len(out) != 3 {
		t.Errorf("Remove(zzz) = %v, %v", queries(out), ok)
	}
}
