// Package annotate turns a caller's desired annotation set into the
// minimum command diff against the previous edit pass.
//
// Callers declare intent: each pass they ask for the attributes and marks
// the current view needs. The Editor remembers what the previous pass
// asked for (keyed by canonical payload serialization) and emits Decl and
// Mark commands only for what is new, then DelMark and DelDecl commands
// for what the new pass no longer wants.
//
// A pass is bracketed by BeginEdit and EndEdit:
//
//	ed := annotate.NewEditor(site)
//
//	var set command.Set
//	ed.BeginEdit(&set)
//	attr, _ := ed.AttrID(command.Attribute{Name: "keyword", Color: "#0000ff"})
//	ed.Mark(beginID, endID, attr)
//	ed.EndEdit()
//
// EndEdit must run on every exit path; skipping it leaks stale marks onto
// the wire.
package annotate
