package crdt

import (
	"fmt"

	"github.com/dshills/weave/internal/engine/command"
	"github.com/dshills/weave/internal/engine/ident"
)

// integrateDecl records an attribute declaration.
func (s *String) integrateDecl(id ident.ID, attr command.Attribute) {
	s.attributes = s.attributes.Add(id, attr)
}

// integrateDelDecl removes a declaration. Annotations referencing it are
// left alone; a dangling attribute reference renders as unattributed.
func (s *String) integrateDelDecl(id ident.ID) {
	s.attributes = s.attributes.Remove(id)
}

// integrateMark records an annotation and stamps its ID onto every visible
// character in [Begin, End) of the range. The walk follows the rendered
// chain, passing tombstones but updating visible characters only. The walk
// runs once, at mark time; a character inserted into the span later is not
// visited by it and carries only the annotation set it inherits from its
// after-neighbor when it is spliced in.
func (s *String) integrateMark(id ident.ID, ann command.Annotation) error {
	s.annotations = s.annotations.Add(id, ann)
	loc := ann.Begin
	for loc != ann.End {
		ci, ok := s.chars.Lookup(loc)
		if !ok {
			return fmt.Errorf("%w: annotation range %v", ErrMissingOrigin, loc)
		}
		if ci.Visible {
			ci.Annotations = ci.Annotations.Add(id, struct{}{})
			s.chars = s.chars.Add(loc, ci)
		}
		loc = ci.Next
	}
	return nil
}

// integrateDelMark clears a mark from its range and drops the annotation.
// An unknown annotation is ignored.
func (s *String) integrateDelMark(id ident.ID) error {
	ann, ok := s.annotations.Lookup(id)
	if !ok {
		return nil
	}
	loc := ann.Begin
	for loc != ann.End {
		ci, ok := s.chars.Lookup(loc)
		if !ok {
			return fmt.Errorf("%w: annotation range %v", ErrMissingOrigin, loc)
		}
		if ci.Visible {
			ci.Annotations = ci.Annotations.Remove(id)
			s.chars = s.chars.Add(loc, ci)
		}
		loc = ci.Next
	}
	s.annotations = s.annotations.Remove(id)
	return nil
}
