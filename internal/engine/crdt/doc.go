// Package crdt implements the replicated annotated character sequence at
// the heart of the engine.
//
// A String is one replica's view of the shared document: a character graph
// keyed by ID, a secondary index over visible line breaks, and stores for
// attribute declarations and annotation ranges. Every collection is a
// persistent map, so a String is an immutable snapshot value — Integrate
// returns a new String and the old one stays valid for concurrent readers.
//
// Convergence comes from the integration of insert commands. Each inserted
// character carries the IDs of the neighbors its author could see (the
// origin hints). When concurrent inserts land between the same neighbors,
// integration narrows the conflict window using the hints and breaks the
// remaining tie by ID order. The decision depends only on state every
// replica eventually shares, so replicas that receive the same command set
// render byte-identical content, whatever order the commands arrived in.
//
// Characters are never removed: deletion flips a tombstone flag and leaves
// the node addressable, because later concurrent inserts may name it in
// their origin hints.
//
// Basic usage:
//
//	s := crdt.New()
//	site, _ := ident.NewSite(1)
//
//	var set command.Set
//	command.MakeInsert(&set, site, []byte("hi"), ident.Begin, ident.End)
//
//	s, err := s.Integrate(set)
//	text := s.Render() // "hi"
package crdt
