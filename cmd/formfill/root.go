// Package main provides the entry point for the formfill CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for formfill.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "formfill",
		Short: "Form autofill engine for web forms in HTML documents",
		Long: `Formfill parses web forms from HTML documents, classifies their fields
into semantic types, and resolves which stored records fill which fields.

Records (identity profiles and payment cards) are read from a YAML file
or the local database. Use 'formfill init' to create a starter records
file.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewFillCmd())
	cmd.AddCommand(NewSuggestCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
