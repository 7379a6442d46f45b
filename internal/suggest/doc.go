// Package suggest produces deduplicated, labeled candidate values for a
// queried form field. Candidates come from stored records whose text for
// the queried semantic type matches the field's current text as a
// case-insensitive prefix; payment candidates are masked and annotated
// with their network and last four digits, identity candidates receive
// disambiguating labels from an inferred-label step.
package suggest
