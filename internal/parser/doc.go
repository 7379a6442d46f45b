// Package parser extracts live form snapshots from HTML documents. It is
// the "forms are parsed" step of the surrounding system: the engine and
// the CLI consume its output, they never touch raw HTML themselves.
package parser
