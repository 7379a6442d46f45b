package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/formfill/internal/config"
	"github.com/spf13/cobra"
)

//go:embed templates/records.yaml
var recordsTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter records file",
		Long: `Init creates a starter records file in the current directory.

The generated file includes:
- An example identity profile with all supported fields
- An example payment card
- Commented templates for additional records

Examples:
  # Create .formfill.yaml in current directory
  formfill init

  # Create the records file at a specific path
  formfill init -o myrecords.yaml

  # Force overwrite existing file
  formfill init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultRecordsFile,
		"Output file path for the records file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing records file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("records file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := recordsTemplate.ReadFile("templates/records.yaml")
	if err != nil {
		return fmt.Errorf("failed to read records template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Records hold personal data; owner-only permissions.
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write records file: %w", err)
	}

	fmt.Printf("Created records file: %s\n", outputPath)
	fmt.Println("\nEdit this file to add your own records:")
	fmt.Println("  - Identity profiles (name, address, contact data)")
	fmt.Println("  - Payment cards (number, expiration, cardholder name)")

	return nil
}
