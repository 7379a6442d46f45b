package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"

	"github.com/nao1215/formfill/internal/config"
	"github.com/nao1215/formfill/internal/database"
	"github.com/nao1215/formfill/internal/engine"
	"github.com/nao1215/formfill/internal/log"
	"github.com/nao1215/formfill/internal/model"
	"github.com/nao1215/formfill/internal/parser"
	"github.com/nao1215/formfill/internal/record"
	"github.com/nao1215/formfill/internal/report"
	"github.com/spf13/cobra"
)

// NewFillCmd creates the fill command.
func NewFillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fill [html-file...]",
		Short: "Fill web forms in HTML documents from stored records",
		Long: `Fill parses the forms of one or more HTML documents, classifies their
fields into semantic types, and resolves a stored record into each form.

Only the fields belonging to the same logical section as the initiating
field receive values; a payment record fills payment fields and an
identity record fills identity fields, never both at once.

Examples:
  # Fill forms with the first profile from .formfill.yaml
  formfill fill checkout.html

  # Fill with a specific record
  formfill fill --record-id visa checkout.html

  # Fill several documents concurrently and write a JSON report
  formfill fill --json -o report.json page1.html page2.html

  # Treat the document as served over HTTPS (allows payment filling)
  formfill fill --record-id visa --source-url https://shop.example/checkout checkout.html`,
		Args: cobra.ArbitraryArgs,
		RunE: runFillCmd,
	}

	addCommonFlags(cmd)
	cmd.Flags().StringP("record-id", "i", "",
		"Record identifier to fill with (default: first profile, then first card)")
	cmd.Flags().StringP("field", "F", "",
		"Name of the field initiating the fill (default: first classified field)")
	cmd.Flags().Bool("save-db", false,
		"Persist the loaded records into the local database")

	return cmd
}

// addCommonFlags registers the flags shared by fill and suggest.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("records", "r", "",
		"Records file path (default: .formfill.yaml in current or home directory)")
	cmd.Flags().Bool("from-db", false,
		"Read records from the local database instead of a file")
	cmd.Flags().String("db-dir", "",
		"Database directory (default: XDG data directory)")
	cmd.Flags().StringP("source-url", "u", "",
		"URL the parsed forms are attributed to (default: file:// path)")
	cmd.Flags().IntP("batch", "b", config.DefaultBatchSize,
		"Number of documents processed concurrently")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().Bool("no-payment", false,
		"Disable payment autofill")
	cmd.Flags().Bool("no-identity", false,
		"Disable identity autofill")
}

// runFillCmd executes the fill command.
func runFillCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
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
		return fillDocument(eng, doc, cfg, store)
	})
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Documents = args
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.RecordsFile, err = cmd.Flags().GetString("records")
	if err != nil {
		return nil, err
	}

	cfg.FromDB, err = cmd.Flags().GetBool("from-db")
	if err != nil {
		return nil, err
	}

	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}
	if dbDir != "" {
		cfg.DBDir = dbDir
	}

	cfg.SourceURL, err = cmd.Flags().GetString("source-url")
	if err != nil {
		return nil, err
	}

	cfg.BatchSize, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.DisablePayment, err = cmd.Flags().GetBool("no-payment")
	if err != nil {
		return nil, err
	}

	cfg.DisableIdentity, err = cmd.Flags().GetBool("no-identity")
	if err != nil {
		return nil, err
	}

	// Flags that only some subcommands register.
	if f := cmd.Flags().Lookup("record-id"); f != nil {
		cfg.RecordID = f.Value.String()
	}
	if f := cmd.Flags().Lookup("field"); f != nil {
		cfg.FieldName = f.Value.String()
	}
	if f := cmd.Flags().Lookup("save-db"); f != nil {
		cfg.SaveToDB = f.Value.String() == "true"
	}

	// Resolve the records file unless reading from the database.
	if !cfg.FromDB {
		explicit := cfg.RecordsFile != ""
		found := config.FindRecordsFile(cfg.RecordsFile)
		if found == "" {
			if explicit {
				return nil, fmt.Errorf("records file not found: %s", cfg.RecordsFile)
			}
			return nil, errors.New("no records file found (run 'formfill init' to create one, or use --from-db)")
		}
		cfg.RecordsFile = found
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// loadStore builds the record store from the records file or the database,
// persisting to the database when requested.
func loadStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (record.Store, error) {
	if cfg.FromDB {
		db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
		if err != nil {
			return nil, fmt.Errorf("failed to open record database: %w", err)
		}
		defer db.Close()

		store, err := db.LoadStore(ctx)
		if err != nil {
			return nil, err
		}
		logger.Debug("records loaded from database",
			"dir", cfg.DBDir, "profiles", len(store.Profiles()), "cards", len(store.CreditCards()))
		return store, nil
	}

	rf, err := config.LoadRecordsFile(cfg.RecordsFile)
	if err != nil {
		return nil, err
	}
	store := rf.Store()
	logger.Debug("records loaded",
		"file", cfg.RecordsFile, "profiles", len(store.Profiles()), "cards", len(store.CreditCards()))

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open record database: %w", err)
		}
		defer db.Close()

		if err := db.SaveStore(ctx, store); err != nil {
			return nil, err
		}
		logger.Info("records saved to database", "dir", cfg.DBDir)
	}

	return store, nil
}

// newEngine creates an engine honoring the per-group disable flags.
func newEngine(store record.Store, cfg *config.Config, logger *slog.Logger) *engine.Engine {
	opts := []engine.Option{engine.WithLogger(logger)}
	if cfg.DisablePayment {
		opts = append(opts, engine.WithPaymentDisabled())
	}
	if cfg.DisableIdentity {
		opts = append(opts, engine.WithIdentityDisabled())
	}
	return engine.New(store, opts...)
}

// runBatch processes every document concurrently, each on its own engine,
// and writes one session report per document.
func runBatch(ctx context.Context, cfg *config.Config, store record.Store, logger *slog.Logger,
	process func(eng *engine.Engine, doc string) (*report.Session, error)) error {
	bp := engine.NewBatchProcessor(
		func() *engine.Engine { return newEngine(store, cfg, logger) },
		engine.WithConcurrency(cfg.BatchSize),
		engine.WithBatchLogger(logger),
	)

	var mu sync.Mutex
	return bp.Run(ctx, cfg.Documents, func(_ context.Context, eng *engine.Engine, doc string) error {
		session, err := process(eng, doc)
		if err != nil {
			logger.Error("document processing failed", "document", doc, "error", err)
			return err
		}

		mu.Lock()
		defer mu.Unlock()
		return outputSession(cfg, session)
	})
}

// fillDocument parses the document's forms into the engine, classifies
// them, and fills each cached form with the configured record.
func fillDocument(eng *engine.Engine, doc string, cfg *config.Config, store record.Store) (*report.Session, error) {
	forms, err := parseDocument(doc, cfg)
	if err != nil {
		return nil, err
	}

	session := report.NewSession(doc)
	eng.OnFormsSeen(forms)
	session.SkippedForms = len(forms) - eng.Cache().Len()

	packed, err := packRecordID(eng, store, cfg.RecordID)
	if err != nil {
		return nil, err
	}

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

		if field, ok := fillTarget(cached, live, cfg.FieldName); ok {
			filled, didFill := eng.OnFill(live, field, packed)
			fill := &report.FillResult{RecordID: cfg.RecordID}
			if fill.RecordID == "" {
				fill.RecordID = defaultRecordID(store)
			}
			if didFill {
				fill.Fields = filledFields(cached, &filled)
			}
			result.Fill = fill
		}

		session.AddForm(result)
	}

	return session, nil
}

// parseDocument reads the HTML file and extracts its live forms.
func parseDocument(doc string, cfg *config.Config) ([]model.LiveForm, error) {
	f, err := os.Open(doc) //nolint:gosec // User-provided document path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open document: %w", err)
	}
	defer f.Close()

	src := cfg.SourceURL
	if src == "" {
		abs, err := filepath.Abs(doc)
		if err != nil {
			abs = doc
		}
		src = "file://" + abs
	}

	forms, err := parser.New(src).Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return forms, nil
}

// fillTarget picks the live field that initiates the fill: the named field
// when --field is given, otherwise the first field with a known type.
func fillTarget(cached *model.CachedForm, live *model.LiveForm, fieldName string) (model.LiveField, bool) {
	for _, f := range live.Fields {
		if fieldName != "" && f.Identity.Name != fieldName {
			continue
		}
		idx := cached.FindField(f)
		if idx < 0 {
			continue
		}
		if fieldName != "" || cached.Field(idx).Type != model.TypeUnknown {
			return f, true
		}
	}
	return model.LiveField{}, false
}

// packRecordID interns the configured record identifier into a packed id.
// An empty identifier falls back to the first profile, then the first card.
func packRecordID(eng *engine.Engine, store record.Store, id string) (int32, error) {
	if id == "" {
		id = defaultRecordID(store)
		if id == "" {
			return 0, errors.New("no records available to fill with")
		}
	}

	if record.CreditCardByGUID(store, id) != nil {
		return eng.Codec().Pack(id, "")
	}
	if record.ProfileByGUID(store, id) != nil {
		return eng.Codec().Pack("", id)
	}
	return 0, fmt.Errorf("unknown record id: %s", id)
}

// defaultRecordID returns the identifier of the first profile, falling
// back to the first card.
func defaultRecordID(store record.Store) string {
	if profiles := store.Profiles(); len(profiles) > 0 {
		return profiles[0].ID
	}
	if cards := store.CreditCards(); len(cards) > 0 {
		return cards[0].ID
	}
	return ""
}

// filledFields collects the autofilled fields of the result form for the
// session report, masking sensitive values.
func filledFields(cached *model.CachedForm, filled *model.LiveForm) []report.FilledField {
	var out []report.FilledField
	for _, f := range filled.Fields {
		if !f.Autofilled {
			continue
		}
		t := model.TypeUnknown
		if idx := cached.FindField(f); idx >= 0 {
			t = cached.Field(idx).Type
		}
		out = append(out, report.FilledField{
			Name:  f.Identity.Name,
			Label: f.Identity.Label,
			Type:  t.String(),
			Value: maskFilledValue(t, f.Value),
		})
	}
	return out
}

// maskFilledValue hides sensitive payment values in report output. The
// live form itself always receives the literal value.
func maskFilledValue(t model.FieldType, value string) string {
	switch t {
	case model.TypeCardNumber:
		if len(value) <= 4 {
			return value
		}
		return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
	case model.TypeCardVerification:
		return strings.Repeat("*", len(value))
	default:
		return value
	}
}

// outputSession writes the session report in the requested format.
func outputSession(cfg *config.Config, session *report.Session) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports may contain personal data; owner-only permissions.
		// Append so concurrent documents land in one file.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	switch {
	case cfg.JSONReport:
		writer = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewTextWriter(output, report.WithVerbose(cfg.Verbose))
	}

	_, err := writer.Write(session)
	return err
}
