package annotate

import (
	"errors"

	"github.com/dshills/weave/internal/engine/command"
	"github.com/dshills/weave/internal/engine/ident"
)

// ErrNoEdit indicates AttrID or Mark was called outside a
// BeginEdit/EndEdit pass.
var ErrNoEdit = errors.New("no edit pass in progress")

// Editor diffs annotation intent across edit passes. It is bound to one
// Site and is not safe for concurrent use.
type Editor struct {
	site *ident.Site
	set  *command.Set

	lastAttr map[string]ident.ID
	newAttr  map[string]ident.ID
	lastAnn  map[string]ident.ID
	newAnn   map[string]ident.ID
}

// NewEditor creates an editor with no prior pass.
func NewEditor(site *ident.Site) *Editor {
	return &Editor{
		site:     site,
		lastAttr: make(map[string]ident.ID),
		newAttr:  make(map[string]ident.ID),
		lastAnn:  make(map[string]ident.ID),
		newAnn:   make(map[string]ident.ID),
	}
}

// BeginEdit starts a pass collecting commands into set.
func (e *Editor) BeginEdit(set *command.Set) {
	e.set = set
}

// AttrID returns the declaration ID for attr, declaring it only if neither
// this pass nor the previous one already has.
func (e *Editor) AttrID(attr command.Attribute) (ident.ID, error) {
	if e.set == nil {
		return ident.ID{}, ErrNoEdit
	}
	ser, err := attr.Canonical()
	if err != nil {
		return ident.ID{}, err
	}
	key := string(ser)
	if id, ok := e.newAttr[key]; ok {
		return id, nil
	}
	if id, ok := e.lastAttr[key]; ok {
		e.newAttr[key] = id
		delete(e.lastAttr, key)
		return id, nil
	}
	id := command.MakeDecl(e.set, e.site, attr)
	e.newAttr[key] = id
	return id, nil
}

// Mark returns the mark ID for the annotation [begin, end) with attribute
// attr, emitting a Mark command only if the annotation is not carried over
// from the previous pass.
func (e *Editor) Mark(begin, end, attr ident.ID) (ident.ID, error) {
	if e.set == nil {
		return ident.ID{}, ErrNoEdit
	}
	ann := command.Annotation{Begin: begin, End: end, Attribute: attr}
	ser, err := ann.Canonical()
	if err != nil {
		return ident.ID{}, err
	}
	key := string(ser)
	if id, ok := e.newAnn[key]; ok {
		return id, nil
	}
	if id, ok := e.lastAnn[key]; ok {
		e.newAnn[key] = id
		delete(e.lastAnn, key)
		return id, nil
	}
	id := command.MakeMark(e.set, e.site, ann)
	e.newAnn[key] = id
	return id, nil
}

// EndEdit flushes removals for everything the previous pass wanted that
// this pass did not re-request, then rolls the pass state forward.
func (e *Editor) EndEdit() {
	if e.set == nil {
		return
	}
	for _, id := range e.lastAnn {
		command.MakeDelMark(e.set, id)
	}
	for _, id := range e.lastAttr {
		command.MakeDelDecl(e.set, id)
	}
	e.lastAttr, e.newAttr = e.newAttr, make(map[string]ident.ID)
	e.lastAnn, e.newAnn = e.newAnn, make(map[string]ident.ID)
	e.set = nil
}
