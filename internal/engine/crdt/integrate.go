package crdt

import (
	"fmt"

	"github.com/dshills/weave/internal/engine/command"
	"github.com/dshills/weave/internal/engine/ident"
)

// Integrate applies a batch of commands and returns the resulting snapshot.
// Every integrator is idempotent, so re-delivered commands are harmless.
// On error the receiver is unchanged and remains the caller's valid state.
//
// Convergence does not depend on batch boundaries: any replica that
// integrates the same command set, in any order consistent with causal
// delivery, reaches the same snapshot.
func (s String) Integrate(set command.Set) (String, error) {
	out := s
	for i := range set.Commands {
		cmd := &set.Commands[i]
		var err error
		switch cmd.Kind {
		case command.KindInsert:
			err = out.integrateInsert(cmd)
		case command.KindDelete:
			out.integrateDelChar(cmd.ID)
		case command.KindDecl:
			out.integrateDecl(cmd.ID, cmd.Attribute)
		case command.KindDelDecl:
			out.integrateDelDecl(cmd.ID)
		case command.KindMark:
			err = out.integrateMark(cmd.ID, cmd.Mark)
		case command.KindDelMark:
			err = out.integrateDelMark(cmd.ID)
		default:
			err = fmt.Errorf("%w: %d", ErrInvalidCommandKind, cmd.Kind)
		}
		if err != nil {
			return String{}, err
		}
	}
	return out, nil
}

// integrateInsert splices a character run. Character i of the run gets
// clock base+i; its after hint is the previous character of the run, so
// the run stays contiguous under concurrent edits.
func (s *String) integrateInsert(cmd *command.Command) error {
	if s.chars.Contains(cmd.ID) {
		// Re-delivery.
		return nil
	}
	id, after, before := cmd.ID, cmd.After, cmd.Before
	for _, c := range cmd.Characters {
		if err := s.integrateInsertChar(id, c, after, before); err != nil {
			return err
		}
		after = id
		id.Clock++
	}
	return nil
}

type windowEntry struct {
	id   ident.ID
	info CharInfo
}

// integrateInsertChar places one character. The fast path splices directly
// between the hints. When concurrent inserts have landed between them, the
// candidate window is filtered down to its spine and the tie against the
// survivors is broken by ID order. Both steps read only replica-observable
// state, so every replica picks the same position.
func (s *String) integrateInsertChar(id ident.ID, c byte, after, before ident.ID) error {
	for {
		caft, ok := s.chars.Lookup(after)
		if !ok {
			return fmt.Errorf("%w: after %v", ErrMissingOrigin, after)
		}
		cbef, ok := s.chars.Lookup(before)
		if !ok {
			return fmt.Errorf("%w: before %v", ErrMissingOrigin, before)
		}

		if caft.Next == before {
			if c == '\n' {
				if err := s.linkLineBreak(id, after); err != nil {
					return err
				}
			}
			inherited := caft.Annotations
			caft.Next = id
			cbef.Prev = id
			s.chars = s.chars.
				Add(after, caft).
				Add(id, CharInfo{
					Visible:     true,
					Chr:         c,
					Next:        before,
					Prev:        after,
					After:       after,
					Before:      before,
					Annotations: inherited,
				}).
				Add(before, cbef)
			return nil
		}

		// Candidate window [after .. before] along the rendered chain.
		window := []windowEntry{{after, caft}}
		interior := make(map[ident.ID]bool)
		for n := caft.Next; n != before; {
			cn, ok := s.chars.Lookup(n)
			if !ok {
				return fmt.Errorf("%w: window %v", ErrMissingOrigin, n)
			}
			window = append(window, windowEntry{n, cn})
			interior[n] = true
			n = cn.Next
		}
		window = append(window, windowEntry{before, cbef})

		// Keep only the window's spine: interior characters whose own
		// hints lie outside the strict interior. Characters anchored to
		// another interior character follow their anchor and cannot
		// constrain the new position; the spine is never empty, so the
		// window shrinks every round.
		filtered := window[:1:1]
		for _, e := range window[1 : len(window)-1] {
			if !interior[e.info.After] && !interior[e.info.Before] {
				filtered = append(filtered, e)
			}
		}
		filtered = append(filtered, window[len(window)-1])

		i := 1
		for i < len(filtered)-1 && filtered[i].id.Less(id) {
			i++
		}
		after = filtered[i-1].id
		before = filtered[i].id
	}
}

// integrateDelChar tombstones a character. The node keeps its place in the
// rendered chain so later concurrent inserts can still name it as an
// origin hint. Deleting an unknown or already-deleted character is a
// no-op.
func (s *String) integrateDelChar(id ident.ID) {
	ci, ok := s.chars.Lookup(id)
	if !ok || !ci.Visible {
		return
	}
	if ci.Chr == '\n' {
		s.unlinkLineBreak(id)
	}
	ci.Visible = false
	ci.Annotations = newIDSet()
	s.chars = s.chars.Add(id, ci)
}
