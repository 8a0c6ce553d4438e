package crdt

import (
	"bytes"

	"github.com/dshills/weave/internal/engine/avl"
	"github.com/dshills/weave/internal/engine/command"
	"github.com/dshills/weave/internal/engine/ident"
)

// CharInfo is one node of the character graph. Next and Prev form the
// rendered chain and are updated by integration; After and Before are the
// origin hints recorded at insertion and never change.
type CharInfo struct {
	Visible     bool
	Chr         byte
	Next        ident.ID
	Prev        ident.ID
	After       ident.ID
	Before      ident.ID
	Annotations avl.Map[ident.ID, struct{}]
}

// LineBreak is one entry of the circular line-break list.
type LineBreak struct {
	Prev ident.ID
	Next ident.ID
}

// String is an immutable snapshot of the replicated document. Methods that
// change state return a new String; the receiver is never modified, so a
// String may be read from many goroutines without synchronization.
type String struct {
	chars       avl.Map[ident.ID, CharInfo]
	lineBreaks  avl.Map[ident.ID, LineBreak]
	attributes  avl.Map[ident.ID, command.Attribute]
	annotations avl.Map[ident.ID, command.Annotation]
}

func newIDSet() avl.Map[ident.ID, struct{}] {
	return avl.New[ident.ID, struct{}](ident.Compare)
}

// New returns an empty document holding only the sentinels. The sentinels
// are invisible, are their own outer neighbors, and are never removed.
func New() String {
	chars := avl.New[ident.ID, CharInfo](ident.Compare)
	chars = chars.
		Add(ident.Begin, CharInfo{
			Visible:     false,
			Chr:         0,
			Next:        ident.End,
			Prev:        ident.Begin,
			After:       ident.Begin,
			Before:      ident.End,
			Annotations: newIDSet(),
		}).
		Add(ident.End, CharInfo{
			Visible:     false,
			Chr:         1,
			Next:        ident.End,
			Prev:        ident.Begin,
			After:       ident.Begin,
			Before:      ident.End,
			Annotations: newIDSet(),
		})

	lineBreaks := avl.New[ident.ID, LineBreak](ident.Compare)
	lineBreaks = lineBreaks.
		Add(ident.Begin, LineBreak{Prev: ident.End, Next: ident.End}).
		Add(ident.End, LineBreak{Prev: ident.Begin, Next: ident.Begin})

	return String{
		chars:       chars,
		lineBreaks:  lineBreaks,
		attributes:  avl.New[ident.ID, command.Attribute](ident.Compare),
		annotations: avl.New[ident.ID, command.Annotation](ident.Compare),
	}
}

// Lookup returns the graph node for id.
func (s String) Lookup(id ident.ID) (CharInfo, bool) {
	return s.chars.Lookup(id)
}

// Attribute returns the declared attribute payload for id.
func (s String) Attribute(id ident.ID) (command.Attribute, bool) {
	return s.attributes.Lookup(id)
}

// Annotation returns the annotation range for id.
func (s String) Annotation(id ident.ID) (command.Annotation, bool) {
	return s.annotations.Lookup(id)
}

// CharCount returns the number of graph nodes, sentinels and tombstones
// included.
func (s String) CharCount() int {
	return s.chars.Len()
}

// Render returns the visible character sequence.
func (s String) Render() []byte {
	var buf bytes.Buffer
	loc := ident.Begin
	for loc != ident.End {
		ci, ok := s.chars.Lookup(loc)
		if !ok {
			break
		}
		if ci.Visible {
			buf.WriteByte(ci.Chr)
		}
		loc = ci.Next
	}
	return buf.Bytes()
}

// Text returns the visible character sequence as a string.
func (s String) Text() string {
	return string(s.Render())
}

// Len returns the number of visible characters.
func (s String) Len() int {
	n := 0
	s.walkVisible(func(ident.ID, CharInfo) bool {
		n++
		return true
	})
	return n
}

// StyledRun is a maximal run of consecutive visible characters covered by
// the same annotation set, with the referenced attributes resolved. A
// dangling attribute reference resolves to nothing and the run renders
// unattributed.
type StyledRun struct {
	Text       string
	Attributes []command.Attribute
}

// RenderStyled returns the visible sequence as styled runs, for frontends
// that paint annotations.
func (s String) RenderStyled() []StyledRun {
	var (
		runs []StyledRun
		buf  bytes.Buffer
		cur  []ident.ID
	)
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		runs = append(runs, StyledRun{
			Text:       buf.String(),
			Attributes: s.resolveAttributes(cur),
		})
		buf.Reset()
	}
	s.walkVisible(func(_ ident.ID, ci CharInfo) bool {
		anns := ci.Annotations.Keys()
		if !idsEqual(anns, cur) {
			flush()
			cur = anns
		}
		buf.WriteByte(ci.Chr)
		return true
	})
	flush()
	return runs
}

// walkVisible calls fn for each visible character in rendered order.
func (s String) walkVisible(fn func(id ident.ID, ci CharInfo) bool) {
	loc := ident.Begin
	for loc != ident.End {
		ci, ok := s.chars.Lookup(loc)
		if !ok {
			return
		}
		if ci.Visible && !fn(loc, ci) {
			return
		}
		loc = ci.Next
	}
}

// resolveAttributes maps annotation IDs to their attribute payloads,
// dropping references to undeclared attributes.
func (s String) resolveAttributes(annIDs []ident.ID) []command.Attribute {
	var attrs []command.Attribute
	for _, annID := range annIDs {
		ann, ok := s.annotations.Lookup(annID)
		if !ok {
			continue
		}
		attr, ok := s.attributes.Lookup(ann.Attribute)
		if !ok {
			continue
		}
		attrs = append(attrs, attr)
	}
	return attrs
}

func idsEqual(a, b []ident.ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BoundsAt returns the IDs bracketing visible offset n: the visible
// character before the position (or Begin) and the visible character at
// the position (or End). These are the origin hints for a local insert
// at n.
func (s String) BoundsAt(offset int) (after, before ident.ID, err error) {
	if offset < 0 {
		return ident.ID{}, ident.ID{}, errOffset(offset)
	}
	after = ident.Begin
	seen := 0
	found := false
	s.walkVisible(func(id ident.ID, _ CharInfo) bool {
		if seen == offset {
			before = id
			found = true
			return false
		}
		after = id
		seen++
		return true
	})
	if found {
		return after, before, nil
	}
	if seen == offset {
		return after, ident.End, nil
	}
	return ident.ID{}, ident.ID{}, errOffset(offset)
}

// VisibleRange returns the IDs of the visible characters in [start, end).
func (s String) VisibleRange(start, end int) ([]ident.ID, error) {
	if start < 0 || end < start {
		return nil, errRange(start, end)
	}
	ids := make([]ident.ID, 0, end-start)
	seen := 0
	s.walkVisible(func(id ident.ID, _ CharInfo) bool {
		if seen >= start && seen < end {
			ids = append(ids, id)
		}
		seen++
		return seen < end
	})
	if len(ids) != end-start {
		return nil, errRange(start, end)
	}
	return ids, nil
}
