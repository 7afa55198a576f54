// Package model defines the domain values shared across the app: recipe
// entries, the pending form draft, per-card image states, and the errors the
// store and form report. Entries are plain values and are never mutated after
// the store creates them.
package model
