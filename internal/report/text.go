package report

import (
	"fmt"
	"io"
	"strings"
)

// TextWriter outputs human-readable session reports.
// This format is designed for terminal display.
//
// Design decision: We use plain text with ASCII formatting rather than
// ANSI colors by default because:
// 1. It works in all terminals without compatibility issues
// 2. It's easier to pipe to files or other tools
// 3. Color can be added as an option later if needed
type TextWriter struct {
	baseWriter

	// verbose enables additional detail in the output.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose enables verbose output with additional details.
func WithVerbose(verbose bool) TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = verbose
	}
}

// NewTextWriter creates a TextWriter that outputs to the given writer.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{
		baseWriter: newBaseWriter(output),
		verbose:    false,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Write outputs the session in human-readable format.
func (w *TextWriter) Write(session *Session) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, session)

	for i := range session.Forms {
		w.writeForm(&sb, &session.Forms[i])
	}

	w.writeFooter(&sb, session)

	return w.output.Write([]byte(sb.String()))
}

// writeHeader writes the session header.
func (w *TextWriter) writeHeader(sb *strings.Builder, session *Session) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                         FORMFILL REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Document:   %s\n", session.Document))
	sb.WriteString(fmt.Sprintf("Date:       %s\n", session.GeneratedAt.Format("2006-01-02 15:04:05 MST")))
	sb.WriteString(fmt.Sprintf("Forms:      %d", len(session.Forms)))
	if session.SkippedForms > 0 {
		sb.WriteString(fmt.Sprintf(" (%d skipped, too few fillable fields)", session.SkippedForms))
	}
	sb.WriteString("\n\n")
}

// writeForm writes the result for a single form.
func (w *TextWriter) writeForm(sb *strings.Builder, form *FormResult) {
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	name := form.Name
	if name == "" {
		name = "(unnamed form)"
	}
	sb.WriteString(fmt.Sprintf("FORM %s\n", name))
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("  Fields:       %d (%d classified)\n", form.FieldCount, form.KnownTypeCount))
	if w.verbose {
		sb.WriteString(fmt.Sprintf("  Signature:    %s\n", form.Signature))
		if form.SourceURL != "" {
			sb.WriteString(fmt.Sprintf("  Source:       %s\n", form.SourceURL))
		}
	}
	sb.WriteString("\n")

	if form.Fill != nil {
		w.writeFill(sb, form.Fill)
	}
	if form.Suggestion != nil {
		w.writeSuggestion(sb, form.Suggestion)
	}
}

// writeFill writes the filled fields section.
func (w *TextWriter) writeFill(sb *strings.Builder, fill *FillResult) {
	sb.WriteString(fmt.Sprintf("  Filled with record %s:\n", fill.RecordID))
	if len(fill.Fields) == 0 {
		sb.WriteString("    (no fields filled)\n\n")
		return
	}
	for _, f := range fill.Fields {
		sb.WriteString(fmt.Sprintf("    [+] %-20s %-16s = %s\n", f.Name, f.Type, f.Value))
	}
	sb.WriteString("\n")
}

// writeSuggestion writes the suggestion section.
func (w *TextWriter) writeSuggestion(sb *strings.Builder, sug *SuggestionResult) {
	sb.WriteString(fmt.Sprintf("  Suggestions for %q:\n", sug.FieldName))

	if sug.Warning != "" {
		sb.WriteString(fmt.Sprintf("    [!] %s\n\n", sug.Warning))
		return
	}
	if len(sug.Entries) == 0 {
		sb.WriteString("    (no suggestions)\n\n")
		return
	}
	for _, e := range sug.Entries {
		line := "    * " + e.Value
		if e.Label != "" {
			line += " (" + e.Label + ")"
		}
		if e.Icon != "" {
			line += " [" + e.Icon + "]"
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
}

// writeFooter writes the report footer.
func (w *TextWriter) writeFooter(sb *strings.Builder, session *Session) {
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Total fields filled: %d\n", session.FilledFieldCount()))
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
