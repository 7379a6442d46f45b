// Package config holds the CLI configuration for formfill: flag-populated
// options, their validation, the YAML records file loader, and the
// default data directory resolution.
package config
