package crdt

import (
	"errors"
	"testing"

	"github.com/dshills/weave/internal/engine/command"
	"github.com/dshills/weave/internal/engine/ident"
)

func testSite(t *testing.T, n uint64) *ident.Site {
	t.Helper()
	s, err := ident.NewSite(n)
	if err != nil {
		t.Fatalf("NewSite(%d): %v", n, err)
	}
	return s
}

func mustIntegrate(t *testing.T, s String, set command.Set) String {
	t.Helper()
	out, err := s.Integrate(set)
	if err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	return out
}

func insertSet(t *testing.T, site *ident.Site, text string, after, before ident.ID) command.Set {
	t.Helper()
	var set command.Set
	if _, err := command.MakeInsert(&set, site, []byte(text), after, before); err != nil {
		t.Fatalf("MakeInsert: %v", err)
	}
	return set
}

func deleteSet(ids ...ident.ID) command.Set {
	var set command.Set
	for _, id := range ids {
		command.MakeDelete(&set, id)
	}
	return set
}

// checkChain verifies the next chain from Begin reaches End visiting every
// node exactly once and that the prev chain is its mirror.
func checkChain(t *testing.T, s String) {
	t.Helper()

	var forward []ident.ID
	seen := make(map[ident.ID]bool)
	loc := ident.Begin
	for {
		ci, ok := s.Lookup(loc)
		if !ok {
			t.Fatalf("chain references missing node %v", loc)
		}
		if seen[loc] {
			t.Fatalf("chain visits %v twice", loc)
		}
		seen[loc] = true
		forward = append(forward, loc)
		if loc == ident.End {
			break
		}
		loc = ci.Next
	}
	if len(forward) != s.CharCount() {
		t.Fatalf("chain visits %d nodes, map holds %d", len(forward), s.CharCount())
	}

	loc = ident.End
	for i := len(forward) - 1; i >= 0; i-- {
		if loc != forward[i] {
			t.Fatalf("prev chain diverges at %v, want %v", loc, forward[i])
		}
		if loc == ident.Begin {
			break
		}
		ci, ok := s.Lookup(loc)
		if !ok {
			t.Fatalf("prev chain references missing node %v", loc)
		}
		loc = ci.Prev
	}
}

// annotationsAt returns the annotation IDs carried by the visible
// character at each offset.
func annotationsAt(s String) [][]ident.ID {
	var out [][]ident.ID
	s.walkVisible(func(_ ident.ID, ci CharInfo) bool {
		out = append(out, ci.Annotations.Keys())
		return true
	})
	return out
}

func TestEmptyRender(t *testing.T) {
	s := New()
	if got := s.Text(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if s.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", s.LineCount())
	}
	checkChain(t, s)
}

func TestSequentialInsert(t *testing.T) {
	site := testSite(t, 1)
	s := New()

	s = mustIntegrate(t, s, insertSet(t, site, "a", ident.Begin, ident.End))
	if got := s.Text(); got != "a" {
		t.Fatalf("after first insert: %q, want %q", got, "a")
	}

	s = mustIntegrate(t, s, insertSet(t, site, "b", ident.ID{Site: 1, Clock: 2}, ident.End))
	if got := s.Text(); got != "ab" {
		t.Fatalf("after second insert: %q, want %q", got, "ab")
	}

	s = mustIntegrate(t, s, deleteSet(ident.ID{Site: 1, Clock: 3}))
	if got := s.Text(); got != "a" {
		t.Fatalf("after delete: %q, want %q", got, "a")
	}
	checkChain(t, s)
}

func TestBlockInsert(t *testing.T) {
	site := testSite(t, 1)
	s := mustIntegrate(t, New(), insertSet(t, site, "hello", ident.Begin, ident.End))
	if got := s.Text(); got != "hello" {
		t.Fatalf("Render() = %q, want %q", got, "hello")
	}
	// Each byte of the run owns a consecutive clock.
	for i := 0; i < 5; i++ {
		id := ident.ID{Site: 1, Clock: 2 + uint64(i)}
		ci, ok := s.Lookup(id)
		if !ok {
			t.Fatalf("missing run character %v", id)
		}
		if ci.Chr != "hello"[i] {
			t.Errorf("char at %v = %q, want %q", id, ci.Chr, "hello"[i])
		}
	}
	checkChain(t, s)
}

func TestBoundsAt(t *testing.T) {
	site := testSite(t, 1)
	s := mustIntegrate(t, New(), insertSet(t, site, "abc", ident.Begin, ident.End))

	tests := []struct {
		offset        int
		after, before ident.ID
	}{
		{0, ident.Begin, ident.ID{Site: 1, Clock: 2}},
		{1, ident.ID{Site: 1, Clock: 2}, ident.ID{Site: 1, Clock: 3}},
		{3, ident.ID{Site: 1, Clock: 4}, ident.End},
	}
	for _, tt := range tests {
		after, before, err := s.BoundsAt(tt.offset)
		if err != nil {
			t.Fatalf("BoundsAt(%d): %v", tt.offset, err)
		}
		if after != tt.after || before != tt.before {
			t.Errorf("BoundsAt(%d) = %v, %v, want %v, %v", tt.offset, after, before, tt.after, tt.before)
		}
	}

	for _, bad := range []int{-1, 4, 100} {
		if _, _, err := s.BoundsAt(bad); !errors.Is(err, ErrOffsetOutOfRange) {
			t.Errorf("BoundsAt(%d) err = %v, want ErrOffsetOutOfRange", bad, err)
		}
	}

	// Tombstones are skipped: after deleting 'b', offset 1 brackets 'a'
	// and 'c'.
	s = mustIntegrate(t, s, deleteSet(ident.ID{Site: 1, Clock: 3}))
	after, before, err := s.BoundsAt(1)
	if err != nil {
		t.Fatalf("BoundsAt(1): %v", err)
	}
	if after != (ident.ID{Site: 1, Clock: 2}) || before != (ident.ID{Site: 1, Clock: 4}) {
		t.Errorf("BoundsAt(1) = %v, %v after delete", after, before)
	}
}

func TestVisibleRange(t *testing.T) {
	site := testSite(t, 1)
	s := mustIntegrate(t, New(), insertSet(t, site, "abcd", ident.Begin, ident.End))

	ids, err := s.VisibleRange(1, 3)
	if err != nil {
		t.Fatalf("VisibleRange: %v", err)
	}
	want := []ident.ID{{Site: 1, Clock: 3}, {Site: 1, Clock: 4}}
	if len(ids) != len(want) || ids[0] != want[0] || ids[1] != want[1] {
		t.Errorf("VisibleRange(1, 3) = %v, want %v", ids, want)
	}

	if _, err := s.VisibleRange(2, 1); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("VisibleRange(2, 1) err = %v, want ErrRangeInvalid", err)
	}
	if _, err := s.VisibleRange(2, 9); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("VisibleRange(2, 9) err = %v, want ErrRangeInvalid", err)
	}
	if ids, err := s.VisibleRange(2, 2); err != nil || len(ids) != 0 {
		t.Errorf("VisibleRange(2, 2) = %v, %v, want empty", ids, err)
	}
}

func TestDisplayMetrics(t *testing.T) {
	site := testSite(t, 1)
	s := mustIntegrate(t, New(), insertSet(t, site, "héllo", ident.Begin, ident.End))

	if got := s.Text(); got != "héllo" {
		t.Fatalf("Render() = %q", got)
	}
	if got := s.DisplayWidth(); got != 5 {
		t.Errorf("DisplayWidth() = %d, want 5", got)
	}
	if got := s.GraphemeCount(); got != 5 {
		t.Errorf("GraphemeCount() = %d, want 5", got)
	}
}
