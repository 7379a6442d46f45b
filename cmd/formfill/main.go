// Package main provides the entry point for the formfill CLI.
//
// Formfill parses web forms from HTML documents, classifies their fields
// into semantic types, and resolves which stored records fill which
// fields.
//
// Usage:
//
//	formfill fill --record-id <guid> page.html
//	formfill suggest --field <name> page.html
//
// See --help for all available options.
package main

// main is the entry point for formfill.
func main() {
	Execute()
}
