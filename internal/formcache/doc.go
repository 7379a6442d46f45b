// Package formcache holds the previously analyzed form structures for one
// document context, keyed by structural signature. The cache has exactly
// one generation per document: a navigation clears it wholesale, and a
// form reparse replaces the prior entry rather than updating it.
package formcache
