// Package command defines the replicated edit commands exchanged between
// sites, the attribute and annotation payloads they carry, and a JSON wire
// codec for command batches.
//
// A Command is a tagged record: exactly the fields belonging to its Kind
// are meaningful. Commands are collected into an ordered Set and handed to
// the integration engine; the Make* builders append commands to a
// caller-owned Set, minting IDs from a caller-supplied Site.
//
// Attribute and Annotation have a stable canonical byte serialization,
// which the annotation editor uses as a deduplication key. Two payloads
// that mean the same thing always canonicalize to the same bytes.
package command
