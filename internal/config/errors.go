package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrNoDocuments is returned when no HTML document is given.
	ErrNoDocuments = errors.New("no documents specified: provide at least one HTML file")

	// ErrNoRecordsSource is returned when neither a records file nor the
	// database is available as a record source.
	ErrNoRecordsSource = errors.New("no records source: use --records or --from-db")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrRecordsNotFound is returned when the records file does not exist.
	ErrRecordsNotFound = errors.New("records file not found")
)
