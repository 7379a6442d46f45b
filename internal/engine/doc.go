// Package engine wires the form cache, section resolver, structural
// matcher, value resolver, and suggestion engine into the request/response
// surface the surrounding system calls: forms seen, suggestion query,
// fill request, form submitted, and navigation reset.
//
// One Engine owns one document context. Everything runs synchronously on
// the caller's goroutine; the only asynchrony in the surrounding system
// (classifier upload/download) arrives as ApplyClassification input, never
// as something the engine awaits.
package engine
