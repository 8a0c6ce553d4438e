package scenario

import (
	"fmt"

	"github.com/dshills/weave/internal/engine"
	"github.com/dshills/weave/internal/engine/command"
)

// Result reports one scenario run.
type Result struct {
	Name string

	// Renders holds each site's final rendered content.
	Renders map[uint64]string

	// Commands is every emitted batch flattened in delivery order, for
	// wire dumps.
	Commands command.Set

	// Converged is true when all sites rendered identically and the
	// expectation, if any, matched.
	Converged bool

	// Mismatch describes the divergence when Converged is false.
	Mismatch string
}

type replica struct {
	id      uint64
	eng     *engine.Engine
	pending []command.Set
}

// Run replays the scenario and checks convergence. Edit steps apply
// against the acting site's current view; sync steps deliver all pending
// batches to all other sites in site order.
func Run(sc *Scenario) (*Result, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}

	replicas := make([]*replica, 0, len(sc.Sites))
	byID := make(map[uint64]*replica, len(sc.Sites))
	for _, s := range sc.Sites {
		eng, err := engine.New(engine.WithSite(s.ID))
		if err != nil {
			return nil, fmt.Errorf("site %d: %w", s.ID, err)
		}
		r := &replica{id: s.ID, eng: eng}
		replicas = append(replicas, r)
		byID[s.ID] = r
	}

	res := &Result{Name: sc.Name, Renders: make(map[uint64]string)}

	for i, st := range sc.Steps {
		if st.Op == OpSync {
			if err := sync(replicas, res); err != nil {
				return nil, fmt.Errorf("step %d: %w", i, err)
			}
			continue
		}
		r := byID[st.Site]
		set, err := edit(r, st)
		if err != nil {
			return nil, fmt.Errorf("step %d (%s@%d): %w", i, st.Op, st.Site, err)
		}
		if set.Len() > 0 {
			r.pending = append(r.pending, set)
		}
	}
	if err := sync(replicas, res); err != nil {
		return nil, fmt.Errorf("final sync: %w", err)
	}

	for _, r := range replicas {
		res.Renders[r.id] = r.eng.Text()
	}
	res.Converged, res.Mismatch = verdict(sc, res.Renders)
	return res, nil
}

func edit(r *replica, st Step) (command.Set, error) {
	switch st.Op {
	case OpInsert:
		return r.eng.InsertAt(st.At, st.Text)
	case OpDelete:
		return r.eng.DeleteRange(st.At, st.At+st.Count)
	case OpMark:
		return r.eng.MarkRange(st.At, st.At+st.Count, command.Attribute{
			Name:  st.Attr,
			Color: st.Color,
		})
	}
	return command.Set{}, fmt.Errorf("%w: %q", ErrUnknownOp, st.Op)
}

// sync delivers every pending batch to every other replica, preserving
// per-site emission order.
func sync(replicas []*replica, res *Result) error {
	for _, sender := range replicas {
		for _, set := range sender.pending {
			res.Commands.Commands = append(res.Commands.Commands, set.Commands...)
			for _, receiver := range replicas {
				if receiver == sender {
					continue
				}
				if err := receiver.eng.Integrate(set); err != nil {
					return fmt.Errorf("delivering %d -> %d: %w", sender.id, receiver.id, err)
				}
			}
		}
		sender.pending = nil
	}
	return nil
}

func verdict(sc *Scenario, renders map[uint64]string) (bool, string) {
	var first string
	have := false
	for _, sSite := range sc.Sites {
		text := renders[sSite.ID]
		if !have {
			first, have = text, true
			continue
		}
		if text != first {
			return false, fmt.Sprintf("site %d rendered %q, expected %q", sSite.ID, text, first)
		}
	}
	if sc.Expect != "" && first != sc.Expect {
		return false, fmt.Sprintf("rendered %q, scenario expects %q", first, sc.Expect)
	}
	return true, ""
}
