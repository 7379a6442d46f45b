package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "formfill"

	// DefaultBatchSize is the number of documents processed concurrently.
	// Document processing is CPU-bound parsing, so a small limit keeps
	// memory in check without starving throughput.
	DefaultBatchSize = 4

	// DefaultRecordsFile is the records file searched for in the current
	// directory when --records is not given.
	DefaultRecordsFile = ".formfill.yaml"
)

// Config holds all options for the formfill CLI.
// This struct is populated from CLI flags and passed through the
// application via dependency injection rather than global state.
type Config struct {
	// Documents are the HTML files to process.
	Documents []string

	// RecordsFile is the YAML file holding identity and payment records.
	RecordsFile string

	// FromDB reads records from the local database instead of a file.
	FromDB bool

	// SaveToDB persists loaded records into the local database.
	SaveToDB bool

	// DBDir is the directory of the SQLite database.
	// Defaults to the XDG data directory.
	DBDir string

	// RecordID is the explicit record identifier to fill with.
	// Empty means fill with the first record that matches the section.
	RecordID string

	// FieldName selects the field a suggest query targets.
	FieldName string

	// SourceURL overrides the document URL the parsed forms are attributed
	// to. Local files default to a file:// URL, which counts as insecure
	// for payment filling; pass an https:// URL to lift that.
	SourceURL string

	// BatchSize is the number of documents processed concurrently.
	BatchSize int

	// Verbose enables slog.LevelDebug output.
	Verbose bool

	// JSONReport selects JSON report output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown report output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to a file instead of stdout.
	ReportFile string

	// DisablePayment turns off payment autofill.
	DisablePayment bool

	// DisableIdentity turns off identity autofill.
	DisableIdentity bool
}

// NewConfig returns a Config with defaults applied.
func NewConfig() *Config {
	return &Config{
		BatchSize: DefaultBatchSize,
		DBDir:     DefaultDBDir(),
	}
}

// Validate checks the configuration for consistency.
// It returns one of the package sentinel errors on failure.
func (c *Config) Validate() error {
	if len(c.Documents) == 0 {
		return ErrNoDocuments
	}
	if c.RecordsFile == "" && !c.FromDB {
		return ErrNoRecordsSource
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}

// DefaultDBDir returns the XDG data directory for the record database
// (~/.local/share/formfill on Linux).
func DefaultDBDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}
