// Package resolve turns a stored record and a semantic field type into the
// exact string to place in a live field. Most types resolve to the stored
// text verbatim; the exceptions are selection lists (delegated to an
// option matcher), combined year-month controls (composite expiration
// value), and split phone number inputs (prefix/suffix segments selected
// by the field's maximum length).
package resolve
