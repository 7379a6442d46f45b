package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nao1215/formfill/internal/record"
)

// RecordsFile is the YAML document holding the stored records the CLI
// fills from. It maps directly onto the record types.
type RecordsFile struct {
	// Profiles are identity records.
	Profiles []*record.Profile `yaml:"profiles"`

	// CreditCards are payment records.
	CreditCards []*record.CreditCard `yaml:"credit_cards"`
}

// LoadRecordsFile loads records from a YAML file.
// A missing file returns ErrRecordsNotFound so callers can distinguish
// "not there" from "malformed".
func LoadRecordsFile(path string) (*RecordsFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided records path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRecordsNotFound, path)
		}
		return nil, err
	}

	var rf RecordsFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("failed to parse records file: %w", err)
	}
	return &rf, nil
}

// Store builds an in-memory record store from the file's records.
func (rf *RecordsFile) Store() *record.MemoryStore {
	return record.NewMemoryStore(rf.Profiles, rf.CreditCards)
}

// FindRecordsFile searches for the records file in the following order:
// 1. If path is specified, use it directly
// 2. Look for .formfill.yaml in the current directory
// 3. Look for .formfill.yaml in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindRecordsFile(path string) string {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultRecordsFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultRecordsFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
