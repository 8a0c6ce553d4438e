package avl

import (
	"math/rand"
	"sort"
	"testing"
)

func intCmp(a, b int) int { return a - b }

func TestAddLookup(t *testing.T) {
	m := New[int, string](intCmp)
	m = m.Add(2, "two").Add(1, "one").Add(3, "three")

	tests := []struct {
		key  int
		want string
		ok   bool
	}{
		{1, "one", true},
		{2, "two", true},
		{3, "three", true},
		{4, "", false},
	}
	for _, tt := range tests {
		got, ok := m.Lookup(tt.key)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Lookup(%d) = %q, %v, want %q, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestAddReplaces(t *testing.T) {
	m := New[int, string](intCmp).Add(1, "a").Add(1, "b")
	if v, _ := m.Lookup(1); v != "b" {
		t.Errorf("Lookup(1) = %q, want %q", v, "b")
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}
}

func TestPersistence(t *testing.T) {
	m1 := New[int, int](intCmp)
	for i := 0; i < 10; i++ {
		m1 = m1.Add(i, i*i)
	}

	m2 := m1.Add(100, 1)
	m3 := m1.Remove(5)

	if m1.Len() != 10 {
		t.Errorf("base Len() = %d after derived edits, want 10", m1.Len())
	}
	if m1.Contains(100) {
		t.Error("base map gained a key added to a derived map")
	}
	if !m1.Contains(5) {
		t.Error("base map lost a key removed from a derived map")
	}
	if m2.Len() != 11 || m3.Len() != 9 {
		t.Errorf("derived lens = %d, %d, want 11, 9", m2.Len(), m3.Len())
	}
}

func TestRemove(t *testing.T) {
	m := New[int, string](intCmp)
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9, 2, 6} {
		m = m.Add(k, "v")
	}

	// Removing an absent key returns an equivalent map.
	if got := m.Remove(42); got.Len() != m.Len() {
		t.Errorf("Remove(absent) changed Len to %d", got.Len())
	}

	for _, k := range []int{5, 1, 9, 3, 7, 2, 8, 4, 6} {
		m = m.Remove(k)
		if m.Contains(k) {
			t.Fatalf("key %d still present after Remove", k)
		}
	}
	if !m.IsEmpty() {
		t.Errorf("Len() = %d after removing all keys, want 0", m.Len())
	}
}

func TestAscend(t *testing.T) {
	m := New[int, int](intCmp)
	keys := []int{9, 1, 8, 2, 7, 3, 6, 4, 5}
	for _, k := range keys {
		m = m.Add(k, k)
	}

	var got []int
	m.Ascend(func(k, _ int) bool {
		got = append(got, k)
		return true
	})
	if !sort.IntsAreSorted(got) || len(got) != len(keys) {
		t.Errorf("Ascend order = %v", got)
	}

	// Early stop.
	var first []int
	m.Ascend(func(k, _ int) bool {
		first = append(first, k)
		return len(first) < 3
	})
	if len(first) != 3 {
		t.Errorf("early stop visited %d entries, want 3", len(first))
	}
}

func TestKeys(t *testing.T) {
	m := New[int, int](intCmp).Add(3, 0).Add(1, 0).Add(2, 0)
	got := m.Keys()
	want := []int{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Keys() = %v, want %v", got, want)
		}
	}
}

// TestRandomizedAgainstMap drives a long random edit sequence against a
// builtin map and checks contents and ordering at the end.
func TestRandomizedAgainstMap(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	m := New[int, int](intCmp)
	ref := make(map[int]int)

	for i := 0; i < 5000; i++ {
		k := rng.Intn(500)
		if rng.Intn(3) == 0 {
			m = m.Remove(k)
			delete(ref, k)
		} else {
			m = m.Add(k, i)
			ref[k] = i
		}
	}

	if m.Len() != len(ref) {
		t.Fatalf("Len() = %d, want %d", m.Len(), len(ref))
	}
	for k, v := range ref {
		got, ok := m.Lookup(k)
		if !ok || got != v {
			t.Fatalf("Lookup(%d) = %d, %v, want %d, true", k, got, ok, v)
		}
	}
	keys := m.Keys()
	if !sort.IntsAreSorted(keys) {
		t.Fatal("Keys() not sorted after random edits")
	}
}
