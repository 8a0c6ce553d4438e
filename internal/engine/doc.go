// Package engine provides the facade for the collaborative text engine.
//
// The engine package combines the replicated character sequence, command
// construction, and annotation editing into a unified, thread-safe API.
// State lives in immutable snapshots (crdt.String values); the Engine
// holds the current snapshot behind a read-write mutex and swaps it as
// commands are integrated.
//
// # Architecture
//
// The engine is built on several sub-packages:
//
//   - ident: replica identity and (site, clock) command identifiers
//   - avl: persistent ordered map, the substrate for every collection
//   - crdt: the replicated annotated character sequence and integration
//   - command: command records, builders, and the JSON wire codec
//   - annotate: intent-diffing annotation editor
//
// # Basic Usage
//
// Create an engine bound to a site and make local edits:
//
//	e, _ := engine.New(engine.WithSite(1))
//
//	set, _ := e.InsertAt(0, "hello")
//	// ship set to the other replicas
//
//	text := e.Text() // "hello"
//
// Apply batches received from other replicas:
//
//	if err := e.Integrate(remote); err != nil {
//	    // snapshot unchanged, batch rejected
//	}
//
// Replicas that integrate the same command sets render identical text,
// regardless of delivery order, as long as the transport is causal.
//
// # Snapshots
//
// Snapshot returns the current state as a plain value that later edits
// never mutate. CreateSnapshot pins the current state in a registry under
// a generated ID for later retrieval.
package engine
