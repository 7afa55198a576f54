// Package entrystore owns the ordered collection of recipe entries. It is the
// only writer of that collection: Add and Remove are serialized, readers get
// copies via Snapshot, and subscribers are told about every mutation in the
// order it was applied.
package entrystore
