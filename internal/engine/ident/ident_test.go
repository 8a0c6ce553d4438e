package ident

import (
	"errors"
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b ID
		want int
	}{
		{"equal", ID{1, 2}, ID{1, 2}, 0},
		{"site primary", ID{1, 9}, ID{2, 2}, -1},
		{"site primary reversed", ID{2, 2}, ID{1, 9}, 1},
		{"clock secondary", ID{1, 2}, ID{1, 3}, -1},
		{"clock secondary reversed", ID{1, 3}, ID{1, 2}, 1},
		{"begin before end", Begin, End, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
			if want := tt.want < 0; tt.a.Less(tt.b) != want {
				t.Errorf("Less(%v, %v) = %v, want %v", tt.a, tt.b, !want, want)
			}
		})
	}
}

func TestSentinels(t *testing.T) {
	if !Begin.IsSentinel() || !End.IsSentinel() {
		t.Error("Begin and End should be sentinels")
	}
	if (ID{Site: 1, Clock: 0}).IsSentinel() {
		t.Error("non-reserved ID should not be a sentinel")
	}
	if Begin.Site != ReservedSite || End.Site != ReservedSite {
		t.Error("sentinels must live on the reserved site")
	}
}

func TestNewSiteReserved(t *testing.T) {
	_, err := NewSite(ReservedSite)
	if !errors.Is(err, ErrReservedSite) {
		t.Fatalf("NewSite(0) error = %v, want ErrReservedSite", err)
	}
}

func TestGenerateID(t *testing.T) {
	site, err := NewSite(1)
	if err != nil {
		t.Fatalf("NewSite: %v", err)
	}
	if got := site.GenerateID(); got != (ID{Site: 1, Clock: 2}) {
		t.Errorf("first ID = %v, want 1.2", got)
	}
	if got := site.GenerateID(); got != (ID{Site: 1, Clock: 3}) {
		t.Errorf("second ID = %v, want 1.3", got)
	}
}

func TestGenerateIDNeverSentinel(t *testing.T) {
	site, err := NewSite(7)
	if err != nil {
		t.Fatalf("NewSite: %v", err)
	}
	for i := 0; i < 100; i++ {
		if id := site.GenerateID(); id.IsSentinel() {
			t.Fatalf("minted sentinel %v", id)
		}
	}
}

func TestGenerateIDBlock(t *testing.T) {
	site, err := NewSite(2)
	if err != nil {
		t.Fatalf("NewSite: %v", err)
	}

	first, last, err := site.GenerateIDBlock(3)
	if err != nil {
		t.Fatalf("GenerateIDBlock: %v", err)
	}
	if first != (ID{Site: 2, Clock: 2}) || last != (ID{Site: 2, Clock: 4}) {
		t.Errorf("block = [%v, %v], want [2.2, 2.4]", first, last)
	}

	// The next single ID continues after the block.
	if got := site.GenerateID(); got != (ID{Site: 2, Clock: 5}) {
		t.Errorf("ID after block = %v, want 2.5", got)
	}

	if _, _, err := site.GenerateIDBlock(0); !errors.Is(err, ErrEmptyBlock) {
		t.Errorf("GenerateIDBlock(0) error = %v, want ErrEmptyBlock", err)
	}
}
