// Package model defines the core data structures for form matching:
// semantic field types and their groups, form control kinds, cached and
// live form snapshots, and the structural identity used to correlate
// fields across the two.
//
// Cached structures are immutable once classified and owned by a single
// document context. Live structures are per-call snapshots of the DOM
// supplied by the caller and are never retained.
package model
