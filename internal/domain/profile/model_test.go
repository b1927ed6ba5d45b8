package profile

import (
	"testing"
	"time"
)

func TestHandleFor(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "first token lowercased", in: "Max V", want: "max"},
		{name: "single token", in: "Lewis", want: "lewis"},
		{name: "leading whitespace", in: "  Charles Leclerc", want: "charles"},
		{name: "empty", in: "", want: ""},
		{name: "whitespace only", in: "   ", want: ""},
		{name: "mixed case", in: "OSCAR Piastri", want: "oscar"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := HandleFor(tc.in); got != tc.want {
				t.Fatalf("HandleFor(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDirectory_ResolveHandle_FirstCreatedWins(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dir := NewDirectory([]Profile{
		{ID: "id2", DisplayName: "Max B", CreatedAt: base.Add(time.Hour)},
		{ID: "id1", DisplayName: "Max A", CreatedAt: base},
	})

	id, ok := dir.ResolveHandle("max", "")
	if !ok {
		t.Fatalf("expected handle max to resolve")
	}
	if id != "id1" {
		t.Fatalf("expected first-created profile id1 to win, got %s", id)
	}
}

func TestDirectory_ResolveHandle_SkipsExcluded(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dir := NewDirectory([]Profile{
		{ID: "id1", DisplayName: "Max A", CreatedAt: base},
		{ID: "id2", DisplayName: "Max B", CreatedAt: base.Add(time.Hour)},
	})

	id, ok := dir.ResolveHandle("max", "id1")
	if !ok || id != "id2" {
		t.Fatalf("expected id2 after excluding id1, got %s ok=%t", id, ok)
	}

	dirSolo := NewDirectory([]Profile{
		{ID: "id1", DisplayName: "Max A", CreatedAt: base},
	})
	if _, ok := dirSolo.ResolveHandle("max", "id1"); ok {
		t.Fatalf("expected no match when only candidate is excluded")
	}
}

func TestDirectory_IgnoresEmptyHandlesAndDuplicates(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	dir := NewDirectory([]Profile{
		{ID: "id1", DisplayName: "", CreatedAt: base},
		{ID: "id1", DisplayName: "Dup Entry", CreatedAt: base},
		{ID: "id2", DisplayName: "Lewis H", CreatedAt: base},
	})

	if dir.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", dir.Len())
	}
	if _, ok := dir.ResolveHandle("", ""); ok {
		t.Fatalf("empty handle must never resolve")
	}
}
