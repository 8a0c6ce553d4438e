// Package scenario loads and replays scripted multi-replica editing
// sessions, for demonstrating and checking convergence.
//
// A scenario file is TOML: a set of sites and an ordered list of steps.
// Steps between sync points run concurrently — each site edits against
// its last-synced view plus its own edits since then — and a sync step delivers every site's pending
// command batches to every other site, preserving per-site emission order
// so delivery stays causal. After the final implicit sync the runner
// renders every replica and reports whether they converged.
//
//	name = "tie-break"
//	expect = "aXY"
//
//	[[sites]]
//	id = 1
//
//	[[sites]]
//	id = 2
//
//	[[steps]]
//	site = 1
//	op = "insert"
//	at = 0
//	text = "a"
//
//	[[steps]]
//	op = "sync"
//
//	[[steps]]
//	site = 1
//	op = "insert"
//	at = 1
//	text = "X"
//
//	[[steps]]
//	site = 2
//	op = "insert"
//	at = 1
//	text = "Y"
package scenario
