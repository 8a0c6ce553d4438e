// Package avl implements a persistent ordered map backed by an AVL tree.
//
// A Map is an immutable value: Add and Remove return a new map that shares
// unchanged subtrees with the receiver, so a revision costs O(log n) new
// nodes and the old revision stays valid. Every replicated collection in
// the engine is built on this one substrate, which is what makes engine
// snapshots plain values that many goroutines can read without locks.
//
// Basic usage:
//
//	m := avl.New[int, string](func(a, b int) int { return a - b })
//	m2 := m.Add(1, "one")
//	v, ok := m2.Lookup(1) // "one", true
//	_, ok = m.Lookup(1)   // false: m is unchanged
package avl
