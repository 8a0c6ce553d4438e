package engine

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/weave/internal/engine/annotate"
	"github.com/dshills/weave/internal/engine/command"
	"github.com/dshills/weave/internal/engine/crdt"
	"github.com/dshills/weave/internal/engine/ident"
)

// SnapshotID names a pinned snapshot in the registry.
type SnapshotID string

// Engine is the facade over one replica of the shared document.
//
// All operations are thread-safe. Reads serve from the current immutable
// snapshot; local edits and remote integration produce a new snapshot and
// swap it in under the write lock.
type Engine struct {
	mu sync.RWMutex

	site *ident.Site
	str  crdt.String

	snapshots map[SnapshotID]crdt.String

	seed command.Set

	// Configuration
	siteNum  uint64
	readOnly bool

	// Initialization
	initContent string
}

// New creates an Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		siteNum:   DefaultSite,
		snapshots: make(map[SnapshotID]crdt.String),
	}
	for _, opt := range opts {
		opt(e)
	}

	site, err := ident.NewSite(e.siteNum)
	if err != nil {
		return nil, err
	}
	e.site = site
	e.str = crdt.New()

	if e.initContent != "" {
		var set command.Set
		if _, err := command.MakeInsert(&set, e.site, []byte(e.initContent), ident.Begin, ident.End); err != nil {
			return nil, err
		}
		next, err := e.str.Integrate(set)
		if err != nil {
			return nil, err
		}
		e.str = next
		e.seed = set
	}
	return e, nil
}

// Site returns the replica number.
func (e *Engine) Site() uint64 {
	return e.site.ID()
}

// SeedCommands returns the batch that produced WithContent seeding, empty
// when the engine started blank.
func (e *Engine) SeedCommands() command.Set {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.seed
}

// Snapshot returns the current state as an immutable value.
func (e *Engine) Snapshot() crdt.String {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.str
}

// Integrate applies a remote command batch. On error the current snapshot
// is unchanged.
func (e *Engine) Integrate(set command.Set) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, err := e.str.Integrate(set)
	if err != nil {
		return fmt.Errorf("integrating batch: %w", err)
	}
	e.str = next
	return nil
}

// Text returns the visible content.
func (e *Engine) Text() string {
	return e.Snapshot().Text()
}

// Render returns the visible content as bytes.
func (e *Engine) Render() []byte {
	return e.Snapshot().Render()
}

// Len returns the number of visible characters.
func (e *Engine) Len() int {
	return e.Snapshot().Len()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.Snapshot().LineCount()
}

// LineText returns the text of line n without its newline.
func (e *Engine) LineText(n int) (string, error) {
	return e.Snapshot().LineText(n)
}

// InsertAt inserts text at the visible offset, integrates the edit
// locally, and returns the command batch for the transport to ship.
func (e *Engine) InsertAt(offset int, text string) (command.Set, error) {
	if text == "" {
		return command.Set{}, nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return command.Set{}, ErrReadOnly
	}
	after, before, err := e.str.BoundsAt(offset)
	if err != nil {
		return command.Set{}, err
	}
	var set command.Set
	if _, err := command.MakeInsert(&set, e.site, []byte(text), after, before); err != nil {
		return command.Set{}, err
	}
	return set, e.apply(set)
}

// DeleteRange deletes the visible characters in [start, end), integrates
// the edit locally, and returns the command batch.
func (e *Engine) DeleteRange(start, end int) (command.Set, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return command.Set{}, ErrReadOnly
	}
	ids, err := e.str.VisibleRange(start, end)
	if err != nil {
		return command.Set{}, err
	}
	var set command.Set
	for _, id := range ids {
		command.MakeDelete(&set, id)
	}
	return set, e.apply(set)
}

// MarkRange declares attr and marks the visible range [start, end) with
// it, integrates locally, and returns the command batch.
func (e *Engine) MarkRange(start, end int, attr command.Attribute) (command.Set, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.readOnly {
		return command.Set{}, ErrReadOnly
	}
	beginID, err := e.idAt(start)
	if err != nil {
		return command.Set{}, err
	}
	endID, err := e.idAt(end)
	if err != nil {
		return command.Set{}, err
	}
	var set command.Set
	attrID := command.MakeDecl(&set, e.site, attr)
	command.MakeMark(&set, e.site, command.Annotation{
		Begin:     beginID,
		End:       endID,
		Attribute: attrID,
	})
	return set, e.apply(set)
}

// idAt returns the ID of the visible character at offset, or End when
// offset equals the visible length.
func (e *Engine) idAt(offset int) (ident.ID, error) {
	_, before, err := e.str.BoundsAt(offset)
	if err != nil {
		return ident.ID{}, err
	}
	return before, nil
}

// apply integrates a locally-built batch.
func (e *Engine) apply(set command.Set) error {
	next, err := e.str.Integrate(set)
	if err != nil {
		return fmt.Errorf("applying local edit: %w", err)
	}
	e.str = next
	return nil
}

// NewEditor returns an annotation editor bound to this engine's site. The
// editor keeps pass state across calls; hold on to it for the lifetime of
// the view it maintains.
func (e *Engine) NewEditor() *annotate.Editor {
	return annotate.NewEditor(e.site)
}

// CreateSnapshot pins the current state and returns its registry ID.
func (e *Engine) CreateSnapshot() SnapshotID {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := SnapshotID(uuid.NewString())
	e.snapshots[id] = e.str
	return id
}

// GetSnapshot returns a pinned snapshot.
func (e *Engine) GetSnapshot(id SnapshotID) (crdt.String, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	s, ok := e.snapshots[id]
	if !ok {
		return crdt.String{}, fmt.Errorf("%w: %s", ErrSnapshotNotFound, id)
	}
	return s, nil
}

// DropSnapshot removes a pinned snapshot from the registry.
func (e *Engine) DropSnapshot(id SnapshotID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.snapshots, id)
}
