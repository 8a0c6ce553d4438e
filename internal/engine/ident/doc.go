// Package ident provides replica identity and command identifiers for the
// collaborative text engine.
//
// Every command and every character carries an ID: a (site, clock) pair
// ordered lexicographically with site as the primary key. A Site owns a
// monotonic clock and mints IDs one at a time or in contiguous blocks.
//
// Site number 0 is reserved for the two fixed sentinel IDs, Begin and End,
// which bracket every replicated character sequence. A Site can therefore
// never mint an ID that collides with a sentinel.
//
// Basic usage:
//
//	site, err := ident.NewSite(1)
//	if err != nil {
//		// site number was reserved
//	}
//
//	id := site.GenerateID()
//	first, last, err := site.GenerateIDBlock(5)
package ident
