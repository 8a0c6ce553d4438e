package crdt

import (
	"bytes"
	"fmt"

	"github.com/dshills/weave/internal/engine/ident"
)

// linkLineBreak inserts a freshly-placed visible '\n' into the line-break
// list. It scans backward along the rendered chain from the splice point to
// the nearest visible '\n' (or Begin) and splices after it.
func (s *String) linkLineBreak(id, after ident.ID) error {
	p := after
	ci, ok := s.chars.Lookup(p)
	if !ok {
		return fmt.Errorf("%w: %v", ErrMissingOrigin, p)
	}
	for p != ident.Begin && (!ci.Visible || ci.Chr != '\n') {
		p = ci.Prev
		ci, ok = s.chars.Lookup(p)
		if !ok {
			return fmt.Errorf("%w: %v", ErrMissingOrigin, p)
		}
	}
	pb, ok := s.lineBreaks.Lookup(p)
	if !ok {
		return fmt.Errorf("%w: line break %v", ErrMissingOrigin, p)
	}
	nb, ok := s.lineBreaks.Lookup(pb.Next)
	if !ok {
		return fmt.Errorf("%w: line break %v", ErrMissingOrigin, pb.Next)
	}
	s.lineBreaks = s.lineBreaks.
		Add(p, LineBreak{Prev: pb.Prev, Next: id}).
		Add(id, LineBreak{Prev: p, Next: pb.Next}).
		Add(pb.Next, LineBreak{Prev: id, Next: nb.Next})
	return nil
}

// unlinkLineBreak removes a deleted '\n' from the line-break list,
// re-linking its neighbors.
func (s *String) unlinkLineBreak(id ident.ID) {
	self, ok := s.lineBreaks.Lookup(id)
	if !ok {
		return
	}
	pb, _ := s.lineBreaks.Lookup(self.Prev)
	nb, _ := s.lineBreaks.Lookup(self.Next)
	s.lineBreaks = s.lineBreaks.Remove(id).
		Add(self.Prev, LineBreak{Prev: pb.Prev, Next: self.Next}).
		Add(self.Next, LineBreak{Prev: self.Prev, Next: nb.Next})
}

// LineCount returns the number of lines. An empty document has one line.
func (s String) LineCount() int {
	return s.lineBreaks.Len() - 1
}

// lineAnchor returns the line-break entry that precedes line n: Begin for
// line 0, otherwise the ID of the (n)th visible '\n'.
func (s String) lineAnchor(n int) (ident.ID, error) {
	if n < 0 || n >= s.LineCount() {
		return ident.ID{}, fmt.Errorf("%w: %d", ErrLineOutOfRange, n)
	}
	loc := ident.Begin
	for i := 0; i < n; i++ {
		lb, ok := s.lineBreaks.Lookup(loc)
		if !ok {
			return ident.ID{}, fmt.Errorf("%w: line break %v", ErrMissingOrigin, loc)
		}
		loc = lb.Next
	}
	return loc, nil
}

// LineStart returns the ID of the character that opens line n, which is
// End when line n is empty and terminates the document.
func (s String) LineStart(n int) (ident.ID, error) {
	anchor, err := s.lineAnchor(n)
	if err != nil {
		return ident.ID{}, err
	}
	ci, ok := s.chars.Lookup(anchor)
	if !ok {
		return ident.ID{}, fmt.Errorf("%w: %v", ErrMissingOrigin, anchor)
	}
	loc := ci.Next
	for loc != ident.End {
		ci, ok = s.chars.Lookup(loc)
		if !ok {
			return ident.ID{}, fmt.Errorf("%w: %v", ErrMissingOrigin, loc)
		}
		if ci.Visible {
			return loc, nil
		}
		loc = ci.Next
	}
	return ident.End, nil
}

// LineText returns the visible text of line n without its terminating
// newline.
func (s String) LineText(n int) (string, error) {
	anchor, err := s.lineAnchor(n)
	if err != nil {
		return "", err
	}
	ci, ok := s.chars.Lookup(anchor)
	if !ok {
		return "", fmt.Errorf("%w: %v", ErrMissingOrigin, anchor)
	}
	var buf bytes.Buffer
	loc := ci.Next
	for loc != ident.End {
		ci, ok = s.chars.Lookup(loc)
		if !ok {
			return "", fmt.Errorf("%w: %v", ErrMissingOrigin, loc)
		}
		if ci.Visible {
			if ci.Chr == '\n' {
				break
			}
			buf.WriteByte(ci.Chr)
		}
		loc = ci.Next
	}
	return buf.String(), nil
}

// lineBreakIDs returns the line-break list in order, sentinels excluded.
func (s String) lineBreakIDs() []ident.ID {
	var ids []ident.ID
	loc := ident.Begin
	for {
		lb, ok := s.lineBreaks.Lookup(loc)
		if !ok {
			return ids
		}
		loc = lb.Next
		if loc == ident.End || loc == ident.Begin {
			return ids
		}
		ids = append(ids, loc)
	}
}
