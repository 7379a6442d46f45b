// Package match aligns a live field sequence against a cached field
// sequence that may have gained, lost, or reordered fields since the form
// was classified. The alignment is a greedy forward-only scan, not an
// edit-distance solve: it tolerates insertions and deletions in the live
// sequence but never looks backward, and duplicate structural identities
// resolve to the earliest unconsumed cached field.
package match
