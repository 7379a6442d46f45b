// Package log provides a slog.Handler wrapper that masks stored personal
// and payment values before they reach the underlying handler. The engine
// logs field values and record data at debug level; this handler makes
// sure card numbers, verification codes, and phone numbers never land in
// log output verbatim.
package log
