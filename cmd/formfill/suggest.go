package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/formfill/internal/config"
	"github.com/nao1215/formfill/internal/engine"
	"github.com/nao1215/formfill/internal/log"
	"github.com/nao1215/formfill/internal/report"
	"github.com/nao1215/formfill/internal/suggest"
	"github.com/spf13/cobra"
)

// NewSuggestCmd creates the suggest command.
func NewSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest --field <name> [html-file...]",
		Short: "Show autofill suggestions for a form field",
		Long: `Suggest parses the forms of one or more HTML documents, classifies
their fields, and produces the suggestion entries a user would see when
focusing the named field: values, disambiguating labels, icons, and
record identifiers.

Examples:
  # Suggestions for the field named "email"
  formfill suggest --field email signup.html

  # Suggestions for a card number field on a secure page
  formfill suggest --field cc-number --source-url https://shop.example/pay checkout.html`,
		Args: cobra.ArbitraryArgs,
		RunE: runSuggestCmd,
	}

	addCommonFlags(cmd)
	cmd.Flags().StringP("field", "F", "", "Name of the field to query (required)")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

// runSuggestCmd executes the suggest command.
func runSuggestCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if cfg.FieldName == "" {
		return fmt.Errorf("no field name given (use --field)")
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	store, err := loadStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	return runBatch(ctx, cfg, store, logger, func(eng *engine.Engine, doc string) (*report.Session, error) {
		return suggestDocument(eng, doc, cfg)
	})
}

// suggestDocument parses the document's forms into the engine, classifies
// them, and queries suggestions for the named field in each form that
// contains it.
func suggestDocument(eng *engine.Engine, doc string, cfg *config.Config) (*report.Session, error) {
	forms, err := parseDocument(doc, cfg)
	if err != nil {
		return nil, err
	}

	session := report.NewSession(doc)
	eng.OnFormsSeen(forms)
	session.SkippedForms = len(forms) - eng.Cache().Len()

	for i := range forms {
		live := &forms[i]
		cached := eng.Cache().Find(live)
		if cached == nil {
			continue
		}
		eng.ApplyClassification(cached.Signature(), engine.HeuristicClassification(cached))

		result := report.FormResult{
			Name:           cached.Name,
			SourceURL:      cached.SourceURL,
			Signature:      cached.Signature(),
			FieldCount:     cached.FieldCount(),
			KnownTypeCount: cached.KnownTypeCount(),
		}

		for _, field := range live.Fields {
			if field.Identity.Name != cfg.FieldName {
				continue
			}

			s, err := eng.OnQuery(live, field)
			if err != nil {
				return nil, err
			}
			result.Suggestion = suggestionResult(cfg.FieldName, s)
			break
		}

		session.AddForm(result)
	}

	return session, nil
}

// suggestionResult converts the engine's suggestion sequences into the
// session report form. A warning entry replaces the whole result.
func suggestionResult(fieldName string, s *suggest.Suggestions) *report.SuggestionResult {
	result := &report.SuggestionResult{FieldName: fieldName}
	if s == nil || s.Len() == 0 {
		return result
	}

	if s.IDs[0] == suggest.WarningID {
		result.Warning = s.Values[0]
		return result
	}

	for i := range s.Values {
		result.Entries = append(result.Entries, report.SuggestionEntry{
			Value: s.Values[i],
			Label: s.Labels[i],
			Icon:  s.Icons[i],
			ID:    s.IDs[i],
		})
	}
	return result
}
